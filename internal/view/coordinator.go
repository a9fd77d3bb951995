package view

import (
	"context"
	"errors"
	"sync"
	"time"

	"family-planner/internal/model"
)

// State is either Closed or Open.
type State interface {
	isState()
}

// Closed means no day is shown; navigation only moves the marker.
type Closed struct{}

// Open means the task list of Date is shown.
type Open struct {
	Date time.Time
}

func (Closed) isState() {}
func (Open) isState() {}

// TaskStore is the subset of task operations the coordinator drives.
type TaskStore interface {
	ListDay(ctx context.Context, userID uint, day time.Time) ([]model.TaskDetail, error)
	CreateTask(ctx context.Context, userID uint, input model.NewTask) (*model.Task, error)
	UpdateTask(ctx context.Context, userID, taskID uint, patch model.TaskPatch) error
	DeleteTask(ctx context.Context, userID, taskID uint) error
	ToggleDone(ctx context.Context, userID, taskID uint) (bool, error)
	ToggleMandatory(ctx context.Context, userID, taskID uint) (bool, error)
	ClearAll(ctx context.Context, userID uint) (int64, error)
}

// Coordinator keeps the calendar marker and the open day list of one user in
// step with the store. The shown list is only ever replaced by a fresh query.
type Coordinator struct {
	store  TaskStore
	userID uint
	now    func() time.Time

	mu     sync.Mutex
	marker time.Time
	state  State
	tasks  []model.TaskDetail
}

func NewCoordinator(store TaskStore, userID uint, now func() time.Time) *Coordinator {
	if now == nil {
		now = time.Now
	}
	return &Coordinator{
		store:  store,
		userID: userID,
		now:    now,
		marker: day(now()),
		state:  Closed{},
	}
}

// Marker is the date highlighted on the calendar.
func (c *Coordinator) Marker() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.marker
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Tasks returns a copy of the list fetched for the open day; nil when closed.
func (c *Coordinator) Tasks() []model.TaskDetail {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tasks == nil {
		return nil
	}
	out := make([]model.TaskDetail, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Click opens date, or reloads it when a day is already open.
func (c *Coordinator) Click(ctx context.Context, date time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.marker = day(date)
	c.state = Open{Date: c.marker}
	return c.refresh(ctx)
}

// Navigate moves the marker. The list follows only while a day is open.
func (c *Coordinator) Navigate(ctx context.Context, date time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.marker = day(date)
	if _, open := c.state.(Open); !open {
		return nil
	}
	c.state = Open{Date: c.marker}
	return c.refresh(ctx)
}

func (c *Coordinator) PrevMonth(ctx context.Context) error {
	return c.Navigate(ctx, shiftMonth(c.Marker(), -1))
}

func (c *Coordinator) NextMonth(ctx context.Context) error {
	return c.Navigate(ctx, shiftMonth(c.Marker(), 1))
}

func (c *Coordinator) Today(ctx context.Context) error {
	return c.Navigate(ctx, c.now())
}

// Close hides the list. No queries run until a day is clicked again.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Closed{}
	c.tasks = nil
}

// Add creates a task. An empty TaskDate defaults to the marker date.
func (c *Coordinator) Add(ctx context.Context, input model.NewTask) (*model.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if input.TaskDate == "" {
		input.TaskDate = model.FormatDate(c.marker)
	}
	task, err := c.store.CreateTask(ctx, c.userID, input)
	return task, c.afterMutation(ctx, err)
}

func (c *Coordinator) Edit(ctx context.Context, taskID uint, patch model.TaskPatch) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.store.UpdateTask(ctx, c.userID, taskID, patch)
	return c.afterMutation(ctx, err)
}

func (c *Coordinator) Remove(ctx context.Context, taskID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.store.DeleteTask(ctx, c.userID, taskID)
	return c.afterMutation(ctx, err)
}

func (c *Coordinator) ToggleDone(ctx context.Context, taskID uint) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	done, err := c.store.ToggleDone(ctx, c.userID, taskID)
	return done, c.afterMutation(ctx, err)
}

func (c *Coordinator) ToggleMandatory(ctx context.Context, taskID uint) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	mandatory, err := c.store.ToggleMandatory(ctx, c.userID, taskID)
	return mandatory, c.afterMutation(ctx, err)
}

func (c *Coordinator) ClearAll(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed, err := c.store.ClearAll(ctx, c.userID)
	return removed, c.afterMutation(ctx, err)
}

// afterMutation reloads the open day whether or not the mutation succeeded.
// Caller holds mu.
func (c *Coordinator) afterMutation(ctx context.Context, mutationErr error) error {
	if _, open := c.state.(Open); !open {
		return mutationErr
	}
	return errors.Join(mutationErr, c.refresh(ctx))
}

// refresh replaces the shown list with the store's view of the open day. On
// failure the list is emptied rather than left stale. Caller holds mu.
func (c *Coordinator) refresh(ctx context.Context) error {
	open, ok := c.state.(Open)
	if !ok {
		return nil
	}
	tasks, err := c.store.ListDay(ctx, c.userID, open.Date)
	if err != nil {
		c.tasks = []model.TaskDetail{}
		return err
	}
	if tasks == nil {
		tasks = []model.TaskDetail{}
	}
	c.tasks = tasks
	return nil
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// shiftMonth moves by whole months, clamping the day to the target month's
// length so Jan 31 + 1 month is the last day of February.
func shiftMonth(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}
