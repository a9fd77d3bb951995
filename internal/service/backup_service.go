package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"family-planner/internal/repository"
)

// BackupService writes daily auto-backups for users who enabled them.
type BackupService struct {
	users     *repository.UserRepository
	settings  *repository.SettingsRepository
	transfer  *TransferService
	backupDir string
	log       *zap.Logger
}

func NewBackupService(users *repository.UserRepository, settings *repository.SettingsRepository, transfer *TransferService, backupDir string, log *zap.Logger) *BackupService {
	return &BackupService{
		users:     users,
		settings:  settings,
		transfer:  transfer,
		backupDir: backupDir,
		log:       log,
	}
}

// BackupPath is the file a backup of userID on day is written to. Later runs
// on the same day overwrite it.
func (s *BackupService) BackupPath(userID uint, day time.Time) string {
	return filepath.Join(s.backupDir, fmt.Sprintf("auto_backup_%d_%s.json", userID, day.Format("20060102")))
}

// BackupUser writes today's backup when the user's auto_backup setting is on.
// It reports whether a file was written.
func (s *BackupService) BackupUser(ctx context.Context, userID uint, now time.Time) (bool, error) {
	settings, err := s.settings.Get(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	// Accounts without a settings row fall back to the default, which is on.
	if settings != nil && !settings.AutoBackup {
		return false, nil
	}
	if err := s.transfer.ExportTo(ctx, userID, s.BackupPath(userID, now)); err != nil {
		return false, err
	}
	return true, nil
}

// BackupAll backs up every user, continuing past individual failures.
func (s *BackupService) BackupAll(ctx context.Context, now time.Time) error {
	users, err := s.users.ListSummaries(ctx)
	if err != nil {
		return err
	}

	var errs []error
	written := 0
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return err
		}
		ok, err := s.BackupUser(ctx, user.ID, now)
		if err != nil {
			s.log.Error("auto backup", zap.Uint("user_id", user.ID), zap.Error(err))
			errs = append(errs, fmt.Errorf("user %d: %w", user.ID, err))
			continue
		}
		if ok {
			written++
		}
	}
	s.log.Info("auto backup finished", zap.Int("users", len(users)), zap.Int("written", written))
	return errors.Join(errs...)
}
