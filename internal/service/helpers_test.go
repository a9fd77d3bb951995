package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"family-planner/internal/model"
	"family-planner/internal/repository"
)

var fixedNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type testEnv struct {
	db         *gorm.DB
	dir        string
	users      *repository.UserRepository
	taskRepo   *repository.TaskRepository
	catRepo    *repository.CategoryRepository
	setRepo    *repository.SettingsRepository
	statRepo   *repository.StatsRepository
	accounts   *AccountService
	tasks      *TaskService
	categories *CategoryService
	settings   *SettingsService
	stats      *StatsService
	templates  *TemplateService
	transfer   *TransferService
	backups    *BackupService
	digest     *DigestService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	log := zap.NewNop()

	db, err := repository.NewDB(filepath.Join(dir, "planner.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	env := &testEnv{
		db:       db,
		dir:      dir,
		users:    repository.NewUserRepository(db),
		taskRepo: repository.NewTaskRepository(db),
		catRepo:  repository.NewCategoryRepository(db),
		setRepo:  repository.NewSettingsRepository(db),
		statRepo: repository.NewStatsRepository(db),
	}
	env.accounts = NewAccountService(env.users, log)
	env.tasks = NewTaskService(env.taskRepo, log)
	env.categories = NewCategoryService(env.catRepo, log)
	env.settings = NewSettingsService(env.setRepo, log)
	env.stats = NewStatsService(env.statRepo, clock)
	env.templates = NewTemplateService(repository.NewTemplateRepository(db), log)
	env.transfer = NewTransferService(env.taskRepo, env.catRepo, filepath.Join(dir, "exports"), clock, log)
	env.backups = NewBackupService(env.users, env.setRepo, env.transfer, filepath.Join(dir, "backups"), log)
	env.digest = NewDigestService(env.users, env.setRepo, env.taskRepo, env.statRepo, log)
	return env
}

func (e *testEnv) register(t *testing.T, username string) uint {
	t.Helper()
	user, err := e.accounts.Register(context.Background(), username, "pw")
	require.NoError(t, err)
	return user.ID
}

func (e *testEnv) add(t *testing.T, userID uint, input model.NewTask) *model.Task {
	t.Helper()
	if input.TaskDate == "" {
		input.TaskDate = model.FormatDate(fixedNow)
	}
	task, err := e.tasks.CreateTask(context.Background(), userID, input)
	require.NoError(t, err)
	return task
}
