package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"family-planner/internal/model"
	"family-planner/internal/repository"
)

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo *repository.TaskRepository
	log      *zap.Logger
}

func NewTaskService(taskRepo *repository.TaskRepository, log *zap.Logger) *TaskService {
	return &TaskService{taskRepo: taskRepo, log: log}
}

func (s *TaskService) CreateTask(ctx context.Context, userID uint, input model.NewTask) (*model.Task, error) {
	task, err := s.taskRepo.Create(ctx, userID, input)
	if err != nil {
		return nil, err
	}
	s.log.Info("task created", zap.Uint("user_id", userID), zap.Uint("task_id", task.ID), zap.String("date", task.TaskDate))
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, userID, taskID uint) (*model.TaskDetail, error) {
	return s.taskRepo.FindByID(ctx, userID, taskID)
}

// ListDay returns one day's tasks: open before done, mandatory first, then by
// priority and creation order.
func (s *TaskService) ListDay(ctx context.Context, userID uint, day time.Time) ([]model.TaskDetail, error) {
	return s.taskRepo.ListByDate(ctx, userID, day)
}

// ListWeek returns seven days of tasks starting at start, keyed by date.
func (s *TaskService) ListWeek(ctx context.Context, userID uint, start time.Time) (map[string][]model.TaskDetail, error) {
	return s.taskRepo.ListByWeek(ctx, userID, start)
}

func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID uint, patch model.TaskPatch) error {
	if err := s.taskRepo.Update(ctx, userID, taskID, patch); err != nil {
		return err
	}
	s.log.Info("task updated", zap.Uint("user_id", userID), zap.Uint("task_id", taskID))
	return nil
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID uint) error {
	if err := s.taskRepo.Delete(ctx, userID, taskID); err != nil {
		return err
	}
	s.log.Info("task deleted", zap.Uint("user_id", userID), zap.Uint("task_id", taskID))
	return nil
}

// ToggleDone returns the new done state.
func (s *TaskService) ToggleDone(ctx context.Context, userID, taskID uint) (bool, error) {
	done, err := s.taskRepo.ToggleDone(ctx, userID, taskID)
	if err != nil {
		return false, err
	}
	s.log.Info("task status changed", zap.Uint("user_id", userID), zap.Uint("task_id", taskID), zap.Bool("done", done))
	return done, nil
}

// ToggleMandatory returns the new mandatory state.
func (s *TaskService) ToggleMandatory(ctx context.Context, userID, taskID uint) (bool, error) {
	mandatory, err := s.taskRepo.ToggleMandatory(ctx, userID, taskID)
	if err != nil {
		return false, err
	}
	s.log.Info("task mandatory changed", zap.Uint("user_id", userID), zap.Uint("task_id", taskID), zap.Bool("mandatory", mandatory))
	return mandatory, nil
}

// ClearAll irreversibly deletes every task of the user.
func (s *TaskService) ClearAll(ctx context.Context, userID uint) (int64, error) {
	removed, err := s.taskRepo.DeleteAll(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.log.Warn("all tasks cleared", zap.Uint("user_id", userID), zap.Int64("removed", removed))
	return removed, nil
}
