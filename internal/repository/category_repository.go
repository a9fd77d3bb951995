package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"family-planner/internal/model"
)

// CategoryRepository manages task categories.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID uint) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) Create(ctx context.Context, userID uint, input model.CategoryInput) (*model.Category, error) {
	input = normalizeCategory(input)
	if input.Color == "" {
		input.Color = model.DefaultCategoryColor
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	category := model.Category{UserID: userID, Name: input.Name, Color: input.Color}
	if err := r.db.WithContext(ctx).Create(&category).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("category %q: %w", input.Name, ErrConflict)
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

// Update renames a category owned by userID. An empty color keeps the
// current one.
func (r *CategoryRepository) Update(ctx context.Context, userID, categoryID uint, input model.CategoryInput) error {
	input = normalizeCategory(input)
	if err := validateInput(input); err != nil {
		return err
	}

	updates := map[string]any{"name": input.Name}
	if input.Color != "" {
		updates["color"] = input.Color
	}
	res := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Updates(updates)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return fmt.Errorf("category %q: %w", input.Name, ErrConflict)
		}
		return fmt.Errorf("update category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete detaches the category from the user's tasks and then removes it, in
// one transaction, so no task ever points at a missing category.
func (r *CategoryRepository) Delete(ctx context.Context, userID, categoryID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Task{}).
			Where("category_id = ? AND user_id = ?", categoryID, userID).
			UpdateColumn("category_id", nil).Error; err != nil {
			return fmt.Errorf("detach tasks: %w", err)
		}
		res := tx.Where("id = ? AND user_id = ?", categoryID, userID).Delete(&model.Category{})
		if res.Error != nil {
			return fmt.Errorf("delete category: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Owns reports whether categoryID exists and belongs to userID.
func (r *CategoryRepository) Owns(ctx context.Context, userID, categoryID uint) (bool, error) {
	return categoryOwned(r.db.WithContext(ctx), userID, categoryID)
}

func categoryOwned(db *gorm.DB, userID, categoryID uint) (bool, error) {
	var count int64
	if err := db.Model(&model.Category{}).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("find category: %w", err)
	}
	return count > 0, nil
}

func normalizeCategory(input model.CategoryInput) model.CategoryInput {
	input.Name = strings.TrimSpace(input.Name)
	input.Color = strings.TrimSpace(input.Color)
	return input
}
