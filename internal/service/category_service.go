package service

import (
	"context"

	"go.uber.org/zap"

	"family-planner/internal/model"
	"family-planner/internal/repository"
)

// CategoryService provides helpers around categories.
type CategoryService struct {
	repo *repository.CategoryRepository
	log  *zap.Logger
}

func NewCategoryService(repo *repository.CategoryRepository, log *zap.Logger) *CategoryService {
	return &CategoryService{repo: repo, log: log}
}

func (s *CategoryService) List(ctx context.Context, userID uint) ([]model.Category, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *CategoryService) Create(ctx context.Context, userID uint, name, color string) (*model.Category, error) {
	category, err := s.repo.Create(ctx, userID, model.CategoryInput{Name: name, Color: color})
	if err != nil {
		return nil, err
	}
	s.log.Info("category created", zap.Uint("user_id", userID), zap.Uint("category_id", category.ID))
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, userID, categoryID uint, name, color string) error {
	if err := s.repo.Update(ctx, userID, categoryID, model.CategoryInput{Name: name, Color: color}); err != nil {
		return err
	}
	s.log.Info("category updated", zap.Uint("user_id", userID), zap.Uint("category_id", categoryID))
	return nil
}

// Delete removes the category; tasks that used it keep existing without one.
func (s *CategoryService) Delete(ctx context.Context, userID, categoryID uint) error {
	if err := s.repo.Delete(ctx, userID, categoryID); err != nil {
		return err
	}
	s.log.Info("category deleted", zap.Uint("user_id", userID), zap.Uint("category_id", categoryID))
	return nil
}
