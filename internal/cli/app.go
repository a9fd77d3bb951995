package cli

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"family-planner/internal/config"
	"family-planner/internal/logger"
	"family-planner/internal/repository"
	"family-planner/internal/service"
)

// app holds the wired stores and services for one CLI invocation.
type app struct {
	cfg config.Config
	log *zap.Logger
	db  *gorm.DB

	accounts   *service.AccountService
	tasks      *service.TaskService
	categories *service.CategoryService
	settings   *service.SettingsService
	stats      *service.StatsService
	templates  *service.TemplateService
	transfer   *service.TransferService
	backups    *service.BackupService
	digest     *service.DigestService
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	db, err := repository.NewDB(cfg.DatabasePath, log)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("db: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	templateRepo := repository.NewTemplateRepository(db)

	transfer := service.NewTransferService(taskRepo, categoryRepo, cfg.ExportDir, time.Now, log.Named("transfer"))

	return &app{
		cfg:        cfg,
		log:        log,
		db:         db,
		accounts:   service.NewAccountService(userRepo, log.Named("accounts")),
		tasks:      service.NewTaskService(taskRepo, log.Named("tasks")),
		categories: service.NewCategoryService(categoryRepo, log.Named("categories")),
		settings:   service.NewSettingsService(settingsRepo, log.Named("settings")),
		stats:      service.NewStatsService(statsRepo, time.Now),
		templates:  service.NewTemplateService(templateRepo, log.Named("templates")),
		transfer:   transfer,
		backups:    service.NewBackupService(userRepo, settingsRepo, transfer, cfg.BackupDir, log.Named("backup")),
		digest:     service.NewDigestService(userRepo, settingsRepo, taskRepo, statsRepo, log.Named("digest")),
	}, nil
}

func (a *app) Close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.log.Sync()
}
