package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"family-planner/internal/model"
)

const (
	taskDetailColumns = "t.*, c.name AS category_name, c.color AS category_color"
	taskCategoryJoin  = "LEFT JOIN categories c ON c.id = t.category_id AND c.user_id = t.user_id"

	// Unfinished first, then mandatory, then by priority, then creation order.
	dayOrder = "t.done ASC, t.is_mandatory DESC, t.priority DESC, t.created_at ASC, t.id ASC"
	// Ties inside a day after priority are left to the engine.
	weekOrder = "t.task_date ASC, t.done ASC, t.is_mandatory DESC, t.priority DESC"
)

// WeekDays is the length of the week view window.
const WeekDays = 7

// TaskRepository handles CRUD for tasks. Every query is scoped by user id.
type TaskRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db, now: time.Now}
}

func (r *TaskRepository) details(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("tasks AS t").Select(taskDetailColumns).Joins(taskCategoryJoin)
}

// Create validates and inserts a task. Title is trimmed and must not be empty;
// a category, when given, must belong to the same user.
func (r *TaskRepository) Create(ctx context.Context, userID uint, input model.NewTask) (*model.Task, error) {
	var task *model.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		task, err = insertTask(tx, userID, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// CreateBatch inserts all tasks or none.
func (r *TaskRepository) CreateBatch(ctx context.Context, userID uint, inputs []model.NewTask) (int, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, input := range inputs {
			if _, err := insertTask(tx, userID, input); err != nil {
				return fmt.Errorf("task %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(inputs), nil
}

func insertTask(tx *gorm.DB, userID uint, input model.NewTask) (*model.Task, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Priority == 0 {
		input.Priority = model.PriorityLow
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.CategoryID != nil {
		owned, err := categoryOwned(tx, userID, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if !owned {
			return nil, fmt.Errorf("%w: category %d does not exist", ErrValidation, *input.CategoryID)
		}
	}

	task := model.Task{
		UserID:      userID,
		Title:       input.Title,
		TaskDate:    input.TaskDate,
		Description: input.Description,
		Priority:    input.Priority,
		IsMandatory: input.IsMandatory,
		CategoryID:  input.CategoryID,
	}
	if err := tx.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return &task, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID uint) (*model.TaskDetail, error) {
	var tasks []model.TaskDetail
	if err := r.details(ctx).
		Where("t.id = ? AND t.user_id = ?", taskID, userID).
		Limit(1).
		Scan(&tasks).Error; err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	if len(tasks) == 0 {
		return nil, ErrNotFound
	}
	return &tasks[0], nil
}

// ListByDate returns the tasks of one day in display order.
func (r *TaskRepository) ListByDate(ctx context.Context, userID uint, day time.Time) ([]model.TaskDetail, error) {
	var tasks []model.TaskDetail
	if err := r.details(ctx).
		Where("t.user_id = ? AND t.task_date = ?", userID, model.FormatDate(day)).
		Order(dayOrder).
		Scan(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks by date: %w", err)
	}
	return tasks, nil
}

// ListByWeek returns the tasks from start through start+6 days keyed by date.
// Days without tasks are absent from the map.
func (r *TaskRepository) ListByWeek(ctx context.Context, userID uint, start time.Time) (map[string][]model.TaskDetail, error) {
	end := start.AddDate(0, 0, WeekDays-1)

	var tasks []model.TaskDetail
	if err := r.details(ctx).
		Where("t.user_id = ? AND t.task_date BETWEEN ? AND ?", userID, model.FormatDate(start), model.FormatDate(end)).
		Order(weekOrder).
		Scan(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks by week: %w", err)
	}

	byDay := make(map[string][]model.TaskDetail)
	for _, task := range tasks {
		byDay[task.TaskDate] = append(byDay[task.TaskDate], task)
	}
	return byDay, nil
}

// ListAll returns every task of the user ordered by date.
func (r *TaskRepository) ListAll(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("task_date ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Update writes only the fields set in patch and bumps updated_at. An empty
// patch writes nothing and returns ErrEmptyPatch.
func (r *TaskRepository) Update(ctx context.Context, userID, taskID uint, patch model.TaskPatch) error {
	if patch.Empty() {
		return ErrEmptyPatch
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		patch.Title = &title
	}
	if err := validateInput(patch); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if patch.CategoryID != nil && !patch.ClearCategory {
			owned, err := categoryOwned(tx, userID, *patch.CategoryID)
			if err != nil {
				return err
			}
			if !owned {
				return fmt.Errorf("%w: category %d does not exist", ErrValidation, *patch.CategoryID)
			}
		}

		updates := taskPatchColumns(patch)
		updates["updated_at"] = r.now()

		res := tx.Model(&model.Task{}).
			Where("id = ? AND user_id = ?", taskID, userID).
			UpdateColumns(updates)
		if res.Error != nil {
			return fmt.Errorf("update task: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func taskPatchColumns(patch model.TaskPatch) map[string]any {
	updates := make(map[string]any)
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.TaskDate != nil {
		updates["task_date"] = *patch.TaskDate
	}
	if patch.Priority != nil {
		updates["priority"] = *patch.Priority
	}
	if patch.IsMandatory != nil {
		updates["is_mandatory"] = *patch.IsMandatory
	}
	switch {
	case patch.ClearCategory:
		updates["category_id"] = nil
	case patch.CategoryID != nil:
		updates["category_id"] = *patch.CategoryID
	}
	return updates
}

// Delete removes a task for the given user.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", taskID, userID).Delete(&model.Task{})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleDone flips the done flag and returns the new value. A missing task
// yields ErrNotFound, never a plain false.
func (r *TaskRepository) ToggleDone(ctx context.Context, userID, taskID uint) (bool, error) {
	return r.toggle(ctx, userID, taskID, "done", func(t model.Task) bool { return t.Done })
}

// ToggleMandatory flips the mandatory flag and returns the new value.
func (r *TaskRepository) ToggleMandatory(ctx context.Context, userID, taskID uint) (bool, error) {
	return r.toggle(ctx, userID, taskID, "is_mandatory", func(t model.Task) bool { return t.IsMandatory })
}

func (r *TaskRepository) toggle(ctx context.Context, userID, taskID uint, column string, current func(model.Task) bool) (bool, error) {
	var next bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task model.Task
		if err := tx.Where("id = ? AND user_id = ?", taskID, userID).Take(&task).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("find task: %w", err)
		}
		next = !current(task)
		if err := tx.Model(&model.Task{}).
			Where("id = ? AND user_id = ?", taskID, userID).
			UpdateColumns(map[string]any{column: next, "updated_at": r.now()}).Error; err != nil {
			return fmt.Errorf("toggle %s: %w", column, err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return next, nil
}

// DeleteAll removes every task of the user and returns how many were removed.
func (r *TaskRepository) DeleteAll(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Task{})
	if res.Error != nil {
		return 0, fmt.Errorf("clear tasks: %w", res.Error)
	}
	return res.RowsAffected, nil
}
