package service

import (
	"context"
	"time"

	"family-planner/internal/model"
	"family-planner/internal/repository"
)

// StatsService computes task statistics relative to the current day.
type StatsService struct {
	repo *repository.StatsRepository
	now  func() time.Time
}

func NewStatsService(repo *repository.StatsRepository, now func() time.Time) *StatsService {
	if now == nil {
		now = time.Now
	}
	return &StatsService{repo: repo, now: now}
}

func (s *StatsService) Compute(ctx context.Context, userID uint) (model.Stats, error) {
	return s.repo.Compute(ctx, userID, model.FormatDate(s.now()))
}
