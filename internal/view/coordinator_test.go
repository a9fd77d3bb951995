package view

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"family-planner/internal/model"
	"family-planner/internal/repository"
	"family-planner/internal/service"
)

var today = time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return today }

type fakeStore struct {
	queries []string
	listErr error
	mutErr  error
	tasks   map[string][]model.TaskDetail
}

func newFakeStore() *fakeStore {
	return &fakeStore{tasks: make(map[string][]model.TaskDetail)}
}

func (f *fakeStore) ListDay(_ context.Context, _ uint, day time.Time) ([]model.TaskDetail, error) {
	f.queries = append(f.queries, model.FormatDate(day))
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tasks[model.FormatDate(day)], nil
}

func (f *fakeStore) CreateTask(_ context.Context, userID uint, input model.NewTask) (*model.Task, error) {
	if f.mutErr != nil {
		return nil, f.mutErr
	}
	f.tasks[input.TaskDate] = append(f.tasks[input.TaskDate], model.TaskDetail{Task: model.Task{UserID: userID, Title: input.Title, TaskDate: input.TaskDate}})
	return &model.Task{Title: input.Title, TaskDate: input.TaskDate}, nil
}

func (f *fakeStore) UpdateTask(context.Context, uint, uint, model.TaskPatch) error { return f.mutErr }
func (f *fakeStore) DeleteTask(context.Context, uint, uint) error { return f.mutErr }
func (f *fakeStore) ToggleDone(context.Context, uint, uint) (bool, error) { return true, f.mutErr }
func (f *fakeStore) ToggleMandatory(context.Context, uint, uint) (bool, error) { return true, f.mutErr }
func (f *fakeStore) ClearAll(context.Context, uint) (int64, error) { return 0, f.mutErr }

func TestNavigationWhileClosedDoesNotQuery(t *testing.T) {
	store := newFakeStore()
	c := NewCoordinator(store, 1, fixedClock)
	ctx := context.Background()

	assert.Equal(t, Closed{}, c.State())
	require.NoError(t, c.NextMonth(ctx))
	require.NoError(t, c.PrevMonth(ctx))
	require.NoError(t, c.Navigate(ctx, today.AddDate(0, 0, 3)))
	require.NoError(t, c.Today(ctx))

	assert.Empty(t, store.queries)
	assert.Equal(t, Closed{}, c.State())
	assert.Equal(t, "2024-03-15", model.FormatDate(c.Marker()))
	assert.Nil(t, c.Tasks())
}

func TestClickOpensAndNavigationFollows(t *testing.T) {
	store := newFakeStore()
	c := NewCoordinator(store, 1, fixedClock)
	ctx := context.Background()

	require.NoError(t, c.Click(ctx, today))
	assert.Equal(t, Open{Date: day(today)}, c.State())
	assert.Equal(t, []string{"2024-03-15"}, store.queries)
	assert.NotNil(t, c.Tasks())

	require.NoError(t, c.NextMonth(ctx))
	assert.Equal(t, Open{Date: time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)}, c.State())

	require.NoError(t, c.Today(ctx))
	require.NoError(t, c.Click(ctx, today.AddDate(0, 0, 1)))
	assert.Equal(t, []string{"2024-03-15", "2024-04-15", "2024-03-15", "2024-03-16"}, store.queries)
}

func TestOpenEmptyDayIsNotClosed(t *testing.T) {
	c := NewCoordinator(newFakeStore(), 1, fixedClock)
	assert.Nil(t, c.Tasks())

	require.NoError(t, c.Click(context.Background(), today))
	tasks := c.Tasks()
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestTasksReturnsCopy(t *testing.T) {
	store := newFakeStore()
	store.tasks["2024-03-15"] = []model.TaskDetail{{Task: model.Task{Title: "x"}}}
	c := NewCoordinator(store, 1, fixedClock)
	require.NoError(t, c.Click(context.Background(), today))

	tasks := c.Tasks()
	tasks[0].Title = "changed"
	assert.Equal(t, "x", c.Tasks()[0].Title)
}

func TestCloseStopsQueries(t *testing.T) {
	store := newFakeStore()
	c := NewCoordinator(store, 1, fixedClock)
	ctx := context.Background()

	require.NoError(t, c.Click(ctx, today))
	c.Close()
	assert.Equal(t, Closed{}, c.State())
	assert.Nil(t, c.Tasks())

	require.NoError(t, c.NextMonth(ctx))
	_, err := c.ToggleDone(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, store.queries, 1)
}

func TestMutationAlwaysRequeries(t *testing.T) {
	store := newFakeStore()
	c := NewCoordinator(store, 1, fixedClock)
	ctx := context.Background()
	require.NoError(t, c.Click(ctx, today))

	_, err := c.Add(ctx, model.NewTask{Title: "walk dog"})
	require.NoError(t, err)
	require.Len(t, c.Tasks(), 1)
	assert.Equal(t, "walk dog", c.Tasks()[0].Title)

	require.NoError(t, c.Edit(ctx, 1, model.TaskPatch{}))
	require.NoError(t, c.Remove(ctx, 1))
	_, err = c.ToggleMandatory(ctx, 1)
	require.NoError(t, err)
	_, err = c.ClearAll(ctx)
	require.NoError(t, err)

	assert.Len(t, store.queries, 6)
}

func TestFailedMutationStillRefreshes(t *testing.T) {
	store := newFakeStore()
	c := NewCoordinator(store, 1, fixedClock)
	ctx := context.Background()
	require.NoError(t, c.Click(ctx, today))

	store.mutErr = repository.ErrNotFound
	_, err := c.ToggleDone(ctx, 99)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Len(t, store.queries, 2)
}

func TestFailedQueryEmptiesList(t *testing.T) {
	store := newFakeStore()
	store.tasks["2024-03-15"] = []model.TaskDetail{{Task: model.Task{Title: "x"}}}
	c := NewCoordinator(store, 1, fixedClock)
	ctx := context.Background()
	require.NoError(t, c.Click(ctx, today))
	require.Len(t, c.Tasks(), 1)

	boom := errors.New("disk gone")
	store.listErr = boom
	assert.ErrorIs(t, c.Click(ctx, today), boom)
	assert.Empty(t, c.Tasks())
	assert.Equal(t, Open{Date: day(today)}, c.State())
}

func TestShiftMonthClampsDay(t *testing.T) {
	jan31 := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-02-29", model.FormatDate(shiftMonth(jan31, 1)))
	assert.Equal(t, "2023-12-31", model.FormatDate(shiftMonth(jan31, -1)))

	mar31 := time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2023-02-28", model.FormatDate(shiftMonth(mar31, -1)))
}

func TestCoordinatorWithTaskService(t *testing.T) {
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "planner.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	ctx := context.Background()

	users := repository.NewUserRepository(db)
	user, err := users.Create(ctx, "alice", "hash")
	require.NoError(t, err)

	tasks := service.NewTaskService(repository.NewTaskRepository(db), zap.NewNop())
	c := NewCoordinator(tasks, user.ID, fixedClock)
	require.NoError(t, c.Click(ctx, today))
	assert.Empty(t, c.Tasks())

	low, err := c.Add(ctx, model.NewTask{Title: "low"})
	require.NoError(t, err)
	_, err = c.Add(ctx, model.NewTask{Title: "urgent", Priority: model.PriorityHigh})
	require.NoError(t, err)

	shown := c.Tasks()
	require.Len(t, shown, 2)
	assert.Equal(t, "urgent", shown[0].Title)

	mandatory, err := c.ToggleMandatory(ctx, low.ID)
	require.NoError(t, err)
	assert.True(t, mandatory)
	assert.Equal(t, "low", c.Tasks()[0].Title)

	done, err := c.ToggleDone(ctx, low.ID)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, "urgent", c.Tasks()[0].Title)

	_, err = c.ToggleDone(ctx, 9999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Len(t, c.Tasks(), 2)

	require.NoError(t, c.NextMonth(ctx))
	assert.Empty(t, c.Tasks())
	require.NoError(t, c.PrevMonth(ctx))
	assert.Len(t, c.Tasks(), 2)

	removed, err := c.ClearAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)
	assert.Empty(t, c.Tasks())
}
