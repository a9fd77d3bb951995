package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"family-planner/internal/model"
)

func TestDaySummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")

	cats, err := env.categories.List(ctx, alice)
	require.NoError(t, err)
	family := cats[0]
	for _, c := range cats {
		if c.Name == "Family" {
			family = c
		}
	}

	env.add(t, alice, model.NewTask{Title: "pick up kids", Priority: model.PriorityHigh, IsMandatory: true, CategoryID: &family.ID})
	done := env.add(t, alice, model.NewTask{Title: "water plants"})
	_, err = env.tasks.ToggleDone(ctx, alice, done.ID)
	require.NoError(t, err)
	env.add(t, alice, model.NewTask{Title: "old chore", TaskDate: "2024-03-10"})

	summary, err := env.digest.DaySummary(ctx, alice, fixedNow)
	require.NoError(t, err)

	lines := strings.Split(summary, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Tasks for 2024-03-15", lines[0])
	assert.Equal(t, "  [ ] ! pick up kids (high) #Family", lines[1])
	assert.Equal(t, "  [x] water plants (low)", lines[2])
	assert.Equal(t, "Overdue: 1", lines[3])
}

func TestDaySummaryEmpty(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")

	summary, err := env.digest.DaySummary(context.Background(), alice, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "Tasks for 2024-03-15\n  no tasks", summary)
}

func TestNotifyAllSkipsMutedUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")

	off := false
	require.NoError(t, env.settings.Update(ctx, alice, model.SettingsPatch{Notifications: &off}))
	assert.NoError(t, env.digest.NotifyAll(ctx, fixedNow))
}
