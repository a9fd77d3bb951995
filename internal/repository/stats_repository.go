package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"family-planner/internal/model"
)

// StatsRepository runs aggregate counts over a user's tasks.
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

type priorityCount struct {
	Priority model.Priority
	Count    int64
}

// Compute aggregates the user's tasks. today is a task date (YYYY-MM-DD);
// tasks before it that are not done count as overdue.
func (r *StatsRepository) Compute(ctx context.Context, userID uint, today string) (model.Stats, error) {
	stats := model.Stats{PriorityStats: make(map[model.Priority]int64)}
	tasks := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.Task{}).Where("user_id = ?", userID)
	}

	if err := tasks().Count(&stats.Total).Error; err != nil {
		return stats, fmt.Errorf("count tasks: %w", err)
	}
	if err := tasks().Where("done = ?", true).Count(&stats.Completed).Error; err != nil {
		return stats, fmt.Errorf("count completed: %w", err)
	}
	if err := tasks().Where("task_date = ?", today).Count(&stats.Today).Error; err != nil {
		return stats, fmt.Errorf("count today: %w", err)
	}
	if err := tasks().Where("task_date < ? AND done = ?", today, false).Count(&stats.Overdue).Error; err != nil {
		return stats, fmt.Errorf("count overdue: %w", err)
	}

	var counts []priorityCount
	if err := tasks().Select("priority, COUNT(*) AS count").Group("priority").Scan(&counts).Error; err != nil {
		return stats, fmt.Errorf("count by priority: %w", err)
	}
	for _, pc := range counts {
		stats.PriorityStats[pc.Priority] = pc.Count
	}

	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total) * 100
	}
	return stats, nil
}
