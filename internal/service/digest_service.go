package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"family-planner/internal/model"
	"family-planner/internal/repository"
)

const (
	markOpen      = "[ ]"
	markDone      = "[x]"
	markMandatory = "!"
)

// DigestService builds plain-text day summaries for users with notifications on.
type DigestService struct {
	users    *repository.UserRepository
	settings *repository.SettingsRepository
	tasks    *repository.TaskRepository
	stats    *repository.StatsRepository
	log      *zap.Logger
}

func NewDigestService(users *repository.UserRepository, settings *repository.SettingsRepository, tasks *repository.TaskRepository, stats *repository.StatsRepository, log *zap.Logger) *DigestService {
	return &DigestService{users: users, settings: settings, tasks: tasks, stats: stats, log: log}
}

// DaySummary renders the user's tasks for the day of now in display order.
func (s *DigestService) DaySummary(ctx context.Context, userID uint, now time.Time) (string, error) {
	tasks, err := s.tasks.ListByDate(ctx, userID, now)
	if err != nil {
		return "", err
	}
	stats, err := s.stats.Compute(ctx, userID, model.FormatDate(now))
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Tasks for %s\n", model.FormatDate(now)))
	if len(tasks) == 0 {
		builder.WriteString("  no tasks\n")
	}
	for _, task := range tasks {
		builder.WriteString(formatTask(task))
	}
	if stats.Overdue > 0 {
		builder.WriteString(fmt.Sprintf("Overdue: %d\n", stats.Overdue))
	}
	return strings.TrimSpace(builder.String()), nil
}

// NotifyAll logs the day summary of every user whose notifications are on.
func (s *DigestService) NotifyAll(ctx context.Context, now time.Time) error {
	users, err := s.users.ListSummaries(ctx)
	if err != nil {
		return err
	}
	var errs []error
	for _, user := range users {
		settings, err := s.settings.Get(ctx, user.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			errs = append(errs, err)
			continue
		}
		if settings != nil && !settings.Notifications {
			continue
		}
		summary, err := s.DaySummary(ctx, user.ID, now)
		if err != nil {
			errs = append(errs, fmt.Errorf("user %d: %w", user.ID, err))
			continue
		}
		s.log.Info("daily digest", zap.String("username", user.Username), zap.String("summary", summary))
	}
	return errors.Join(errs...)
}

func formatTask(task model.TaskDetail) string {
	var sb strings.Builder

	mark := markOpen
	if task.Done {
		mark = markDone
	}
	sb.WriteString("  " + mark + " ")
	if task.IsMandatory {
		sb.WriteString(markMandatory + " ")
	}
	sb.WriteString(strings.TrimSpace(task.Title))
	sb.WriteString(fmt.Sprintf(" (%s)", task.Priority))

	if task.CategoryName != nil {
		if name := strings.TrimSpace(*task.CategoryName); name != "" {
			sb.WriteString(" #" + name)
		}
	}
	if desc := strings.TrimSpace(task.Description); desc != "" {
		sb.WriteString("\n      " + desc)
	}

	sb.WriteByte('\n')
	return sb.String()
}
