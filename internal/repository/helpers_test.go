package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"family-planner/internal/auth"
	"family-planner/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "planner.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user, err := NewUserRepository(db).Create(context.Background(), username, auth.HashPassword("pw"))
	require.NoError(t, err)
	return user
}

var testDay = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func addTask(t *testing.T, repo *TaskRepository, userID uint, input model.NewTask) *model.Task {
	t.Helper()
	if input.TaskDate == "" {
		input.TaskDate = model.FormatDate(testDay)
	}
	task, err := repo.Create(context.Background(), userID, input)
	require.NoError(t, err)
	return task
}

func ptr[T any](v T) *T {
	return &v
}
