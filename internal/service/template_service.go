package service

import (
	"context"

	"go.uber.org/zap"

	"family-planner/internal/model"
	"family-planner/internal/repository"
)

// TemplateService saves and reads named task templates. Templates are never
// applied to a day here.
type TemplateService struct {
	repo *repository.TemplateRepository
	log  *zap.Logger
}

func NewTemplateService(repo *repository.TemplateRepository, log *zap.Logger) *TemplateService {
	return &TemplateService{repo: repo, log: log}
}

// Save snapshots title, mandatory flag, priority and category of each task
// under name, replacing an existing template with that name.
func (s *TemplateService) Save(ctx context.Context, userID uint, name string, tasks []model.TaskDetail) error {
	items := make([]model.TemplateItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, model.TemplateItem{
			Title:       task.Title,
			IsMandatory: task.IsMandatory,
			Priority:    task.Priority,
			CategoryID:  task.CategoryID,
		})
	}
	if err := s.repo.Save(ctx, userID, name, items); err != nil {
		return err
	}
	s.log.Info("template saved", zap.Uint("user_id", userID), zap.String("name", name), zap.Int("items", len(items)))
	return nil
}

func (s *TemplateService) List(ctx context.Context, userID uint) ([]string, error) {
	return s.repo.ListNames(ctx, userID)
}

func (s *TemplateService) Get(ctx context.Context, userID uint, name string) ([]model.TemplateItem, error) {
	tpl, err := s.repo.Get(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	return tpl.Data, nil
}
