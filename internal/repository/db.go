package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"family-planner/internal/auth"
	"family-planner/internal/model"
)

const (
	// AdminUsername and AdminPassword seed a brand-new database.
	AdminUsername = "Admin"
	AdminPassword = "admin"
)

// NewDB opens the SQLite database, ensures the schema and, when the database
// file did not exist before, seeds the admin account.
func NewDB(dsn string, log *zap.Logger) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("database path is empty")
	}
	if log == nil {
		log = zap.NewNop()
	}

	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, err
	}
	fresh := !sqliteFileExists(dsn)

	dbLogger := logger.New(
		zap.NewStdLog(log.Named("gorm")),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         dbLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Single writer; transactions must not wait on a second connection.
	sqlDB.SetMaxOpenConns(1)

	if err := EnsureSchema(context.Background(), db, fresh); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	if fresh {
		log.Info("database created", zap.String("path", dsn))
	} else {
		log.Info("database opened", zap.String("path", dsn))
	}
	return db, nil
}

// EnsureSchema creates missing tables and indexes. With seed set it also
// creates the admin account, its settings and default categories.
func EnsureSchema(ctx context.Context, db *gorm.DB, seed bool) error {
	db = db.WithContext(ctx)
	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Task{},
		&model.Template{},
		&model.Settings{},
	); err != nil {
		return fmt.Errorf("migrate db: %w", err)
	}
	if !seed {
		return nil
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := createAccount(tx, AdminUsername, auth.HashPassword(AdminPassword))
		return err
	})
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

// createAccount inserts a user with default settings and categories. It must
// run inside a transaction.
func createAccount(tx *gorm.DB, username, passwordHash string) (*model.User, error) {
	user := model.User{Username: username, PasswordHash: passwordHash}
	if err := tx.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("user %q: %w", username, ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	settings := model.DefaultSettings(user.ID)
	if err := tx.Create(&settings).Error; err != nil {
		return nil, fmt.Errorf("create settings: %w", err)
	}

	categories := make([]model.Category, 0, len(model.DefaultCategories))
	for _, c := range model.DefaultCategories {
		categories = append(categories, model.Category{UserID: user.ID, Name: c.Name, Color: c.Color})
	}
	if err := tx.Create(&categories).Error; err != nil {
		return nil, fmt.Errorf("create default categories: %w", err)
	}
	return &user, nil
}

func sqliteFileExists(dsn string) bool {
	if isMemoryDSN(dsn) {
		return false
	}
	_, err := os.Stat(sqlitePath(dsn))
	return err == nil
}

// ensureDirForSQLite creates parent dir for SQLite file if needed.
func ensureDirForSQLite(dsn string) error {
	if isMemoryDSN(dsn) {
		return nil
	}
	dir := filepath.Dir(sqlitePath(dsn))
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}

func isMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

func sqlitePath(dsn string) string {
	clean := strings.TrimPrefix(dsn, "file:")
	return strings.Split(clean, "?")[0]
}
