package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"family-planner/internal/model"
)

// TemplateRepository stores named task templates.
type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Save inserts the template or replaces the items of the one with the same name.
func (r *TemplateRepository) Save(ctx context.Context, userID uint, name string, items []model.TemplateItem) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: template name is required", ErrValidation)
	}
	if items == nil {
		items = []model.TemplateItem{}
	}

	tpl := model.Template{
		UserID:    userID,
		Name:      name,
		Data:      datatypes.JSONSlice[model.TemplateItem](items),
		CreatedAt: time.Now(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "created_at"}),
	}).Create(&tpl).Error
	if err != nil {
		return fmt.Errorf("save template: %w", err)
	}
	return nil
}

// ListNames returns the user's template names in alphabetical order.
func (r *TemplateRepository) ListNames(ctx context.Context, userID uint) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).Model(&model.Template{}).
		Where("user_id = ?", userID).
		Order("name ASC").
		Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return names, nil
}

func (r *TemplateRepository) Get(ctx context.Context, userID uint, name string) (*model.Template, error) {
	var tpl model.Template
	err := r.db.WithContext(ctx).Where("user_id = ? AND name = ?", userID, name).Take(&tpl).Error
	switch {
	case err == nil:
		return &tpl, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("find template: %w", err)
	}
}
