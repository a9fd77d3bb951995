package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"family-planner/internal/model"
)

func TestStatsUseInjectedClock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")

	env.add(t, alice, model.NewTask{Title: "today", Priority: model.PriorityHigh})
	env.add(t, alice, model.NewTask{Title: "late", TaskDate: "2024-03-01"})
	finished := env.add(t, alice, model.NewTask{Title: "finished late", TaskDate: "2024-03-02"})
	env.add(t, alice, model.NewTask{Title: "future", TaskDate: "2024-04-01", Priority: model.PriorityMedium})
	_, err := env.tasks.ToggleDone(ctx, alice, finished.ID)
	require.NoError(t, err)

	stats, err := env.stats.Compute(ctx, alice)
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.Total)
	assert.EqualValues(t, 1, stats.Completed)
	assert.EqualValues(t, 1, stats.Today)
	assert.EqualValues(t, 1, stats.Overdue)
	assert.InDelta(t, 25.0, stats.CompletionRate, 0.001)
	assert.EqualValues(t, 2, stats.PriorityStats[model.PriorityLow])
	assert.EqualValues(t, 1, stats.PriorityStats[model.PriorityMedium])
	assert.EqualValues(t, 1, stats.PriorityStats[model.PriorityHigh])
}
