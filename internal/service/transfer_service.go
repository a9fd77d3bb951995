package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"family-planner/internal/model"
	"family-planner/internal/repository"
)

// ExportVersion tags every export document.
const ExportVersion = "2.0"

// ExportDocument is the on-disk shape of an export or backup file.
type ExportDocument struct {
	ExportDate time.Time        `json:"export_date"`
	UserID     uint             `json:"user_id"`
	Version    string           `json:"version"`
	TasksCount int              `json:"tasks_count"`
	Categories []ExportCategory `json:"categories"`
	Tasks      []ExportTask     `json:"tasks"`
}

type ExportCategory struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type ExportTask struct {
	ID          uint           `json:"id"`
	UserID      uint           `json:"user_id"`
	Title       string         `json:"title"`
	TaskDate    string         `json:"task_date"`
	Description string         `json:"description"`
	Priority    model.Priority `json:"priority"`
	IsMandatory bool           `json:"is_mandatory"`
	Done        bool           `json:"done"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// importTask mirrors ExportTask with optional fields left nil when absent.
type importTask struct {
	Title       string          `json:"title"`
	TaskDate    string          `json:"task_date"`
	Description *string         `json:"description"`
	Priority    *model.Priority `json:"priority"`
	IsMandatory *bool           `json:"is_mandatory"`
}

type importDocument struct {
	Tasks []importTask `json:"tasks"`
}

// TransferService writes and reads JSON export files.
type TransferService struct {
	taskRepo     *repository.TaskRepository
	categoryRepo *repository.CategoryRepository
	exportDir    string
	now          func() time.Time
	log          *zap.Logger
}

func NewTransferService(taskRepo *repository.TaskRepository, categoryRepo *repository.CategoryRepository, exportDir string, now func() time.Time, log *zap.Logger) *TransferService {
	if now == nil {
		now = time.Now
	}
	return &TransferService{
		taskRepo:     taskRepo,
		categoryRepo: categoryRepo,
		exportDir:    exportDir,
		now:          now,
		log:          log,
	}
}

// Export writes the user's tasks and categories into the export directory and
// returns the file path. Only the base name of name is used; an empty name
// generates backup_<user>_<timestamp>.json.
func (s *TransferService) Export(ctx context.Context, userID uint, name string) (string, error) {
	if name == "" {
		name = fmt.Sprintf("backup_%d_%s.json", userID, s.now().Format("20060102_150405"))
	} else {
		name = filepath.Base(name)
	}
	path := filepath.Join(s.exportDir, name)
	if err := s.ExportTo(ctx, userID, path); err != nil {
		return "", err
	}
	return path, nil
}

// ExportTo writes the export document to path, creating its directory.
func (s *TransferService) ExportTo(ctx context.Context, userID uint, path string) error {
	doc, err := s.buildDocument(ctx, userID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	s.log.Info("tasks exported", zap.Uint("user_id", userID), zap.String("path", path), zap.Int("tasks", doc.TasksCount))
	return nil
}

func (s *TransferService) buildDocument(ctx context.Context, userID uint) (ExportDocument, error) {
	tasks, err := s.taskRepo.ListAll(ctx, userID)
	if err != nil {
		return ExportDocument{}, err
	}
	categories, err := s.categoryRepo.ListByUser(ctx, userID)
	if err != nil {
		return ExportDocument{}, err
	}

	doc := ExportDocument{
		ExportDate: s.now(),
		UserID:     userID,
		Version:    ExportVersion,
		TasksCount: len(tasks),
		Categories: make([]ExportCategory, 0, len(categories)),
		Tasks:      make([]ExportTask, 0, len(tasks)),
	}
	for _, c := range categories {
		doc.Categories = append(doc.Categories, ExportCategory{ID: c.ID, Name: c.Name, Color: c.Color})
	}
	for _, t := range tasks {
		doc.Tasks = append(doc.Tasks, ExportTask{
			ID:          t.ID,
			UserID:      t.UserID,
			Title:       t.Title,
			TaskDate:    t.TaskDate,
			Description: t.Description,
			Priority:    t.Priority,
			IsMandatory: t.IsMandatory,
			Done:        t.Done,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		})
	}
	return doc, nil
}

// Import adds every task of the document at path as a new task of userID and
// returns how many were added. Ids, owner, done state and categories of the
// source are not carried over, and importing the same file twice duplicates
// its tasks. A missing or out-of-range priority becomes low. Either all tasks
// are added or none.
func (s *TransferService) Import(ctx context.Context, userID uint, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read import: %w", err)
	}
	var doc importDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("%w: decode import: %w", repository.ErrValidation, err)
	}

	inputs := make([]model.NewTask, 0, len(doc.Tasks))
	for _, t := range doc.Tasks {
		input := model.NewTask{
			Title:    t.Title,
			TaskDate: t.TaskDate,
			Priority: model.PriorityLow,
		}
		if t.Description != nil {
			input.Description = *t.Description
		}
		// Out-of-range priorities fall back to low instead of failing the file.
		if t.Priority != nil && *t.Priority >= model.PriorityLow && *t.Priority <= model.PriorityHigh {
			input.Priority = *t.Priority
		}
		if t.IsMandatory != nil {
			input.IsMandatory = *t.IsMandatory
		}
		inputs = append(inputs, input)
	}

	n, err := s.taskRepo.CreateBatch(ctx, userID, inputs)
	if err != nil {
		s.log.Error("import tasks", zap.Uint("user_id", userID), zap.String("path", path), zap.Error(err))
		return 0, err
	}
	s.log.Info("tasks imported", zap.Uint("user_id", userID), zap.String("path", path), zap.Int("tasks", n))
	return n, nil
}
