package service

import (
	"context"

	"go.uber.org/zap"

	"family-planner/internal/model"
	"family-planner/internal/repository"
)

type SettingsService struct {
	repo *repository.SettingsRepository
	log  *zap.Logger
}

func NewSettingsService(repo *repository.SettingsRepository, log *zap.Logger) *SettingsService {
	return &SettingsService{repo: repo, log: log}
}

func (s *SettingsService) Get(ctx context.Context, userID uint) (*model.Settings, error) {
	return s.repo.Get(ctx, userID)
}

func (s *SettingsService) Update(ctx context.Context, userID uint, patch model.SettingsPatch) error {
	if err := s.repo.Update(ctx, userID, patch); err != nil {
		return err
	}
	s.log.Info("settings updated", zap.Uint("user_id", userID))
	return nil
}
