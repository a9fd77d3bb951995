package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the on-disk format of Task.TaskDate.
const DateLayout = "2006-01-02"

// Priority ranks tasks within a day; higher sorts first.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Task represents a single item in the planner.
type Task struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index:idx_tasks_user_date,priority:1;index:idx_tasks_user_done,priority:1;index:idx_tasks_user_priority,priority:1" json:"user_id"`
	Title       string    `gorm:"not null" json:"title"`
	TaskDate    string    `gorm:"not null;index:idx_tasks_user_date,priority:2" json:"task_date"`
	Description string    `json:"description"`
	Priority    Priority  `gorm:"not null;default:1;index:idx_tasks_user_priority,priority:2" json:"priority"`
	IsMandatory bool      `gorm:"not null;default:false" json:"is_mandatory"`
	Done        bool      `gorm:"not null;default:false;index:idx_tasks_user_done,priority:2" json:"done"`
	CategoryID  *uint     `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskDetail is a task joined with its category. Both category fields are nil
// when the task has no category or the category is gone.
type TaskDetail struct {
	Task
	CategoryName  *string `json:"category_name"`
	CategoryColor *string `json:"category_color"`
}

// NewTask carries the fields accepted when a task is added.
type NewTask struct {
	Title       string   `validate:"required"`
	TaskDate    string   `validate:"required,datetime=2006-01-02"`
	Description string
	CategoryID  *uint
	Priority    Priority `validate:"min=1,max=3"`
	IsMandatory bool
}

// TaskPatch is a partial update: only non-nil fields are written.
type TaskPatch struct {
	Title       *string   `validate:"omitempty,min=1"`
	Description *string
	TaskDate    *string   `validate:"omitempty,datetime=2006-01-02"`
	Priority    *Priority `validate:"omitempty,min=1,max=3"`
	IsMandatory *bool
	CategoryID  *uint
	// ClearCategory detaches the task from its category; CategoryID is ignored.
	ClearCategory bool
}

// Empty reports whether the patch would change nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.TaskDate == nil &&
		p.Priority == nil && p.IsMandatory == nil && p.CategoryID == nil && !p.ClearCategory
}

// FormatDate renders a day in the on-disk task date format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a task date in the on-disk format.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ParsePriority accepts a priority name (low, medium, high) or its number.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "1":
		return PriorityLow, nil
	case "medium", "2":
		return PriorityMedium, nil
	case "high", "3":
		return PriorityHigh, nil
	}
	return 0, fmt.Errorf("unknown priority %q", s)
}
