package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"family-planner/internal/model"
)

// SettingsRepository reads and writes per-user preferences.
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context, userID uint) (*model.Settings, error) {
	var settings model.Settings
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&settings).Error
	switch {
	case err == nil:
		return &settings, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("find settings: %w", err)
	}
}

// Update writes only the fields set in patch.
func (r *SettingsRepository) Update(ctx context.Context, userID uint, patch model.SettingsPatch) error {
	if patch.Empty() {
		return ErrEmptyPatch
	}
	if err := validateInput(patch); err != nil {
		return err
	}

	updates := make(map[string]any)
	if patch.AutoBackup != nil {
		updates["auto_backup"] = *patch.AutoBackup
	}
	if patch.Notifications != nil {
		updates["notifications"] = *patch.Notifications
	}
	if patch.WeekStart != nil {
		updates["week_start"] = *patch.WeekStart
	}
	if patch.Theme != nil {
		updates["theme"] = *patch.Theme
	}
	if patch.Language != nil {
		updates["language"] = *patch.Language
	}

	res := r.db.WithContext(ctx).Model(&model.Settings{}).Where("user_id = ?", userID).UpdateColumns(updates)
	if res.Error != nil {
		return fmt.Errorf("update settings: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
