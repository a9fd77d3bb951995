package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"family-planner/internal/model"
	"family-planner/internal/repository"
)

func TestTemplateSaveFromDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")

	env.add(t, alice, model.NewTask{Title: "school run", IsMandatory: true, Priority: model.PriorityHigh})
	env.add(t, alice, model.NewTask{Title: "stretch", Description: "not kept"})

	day, err := env.tasks.ListDay(ctx, alice, fixedNow)
	require.NoError(t, err)
	require.NoError(t, env.templates.Save(ctx, alice, "weekday", day))

	names, err := env.templates.List(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []string{"weekday"}, names)

	items, err := env.templates.Get(ctx, alice, "weekday")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "school run", items[0].Title)
	assert.True(t, items[0].IsMandatory)
	assert.Equal(t, model.PriorityHigh, items[0].Priority)
	assert.Equal(t, "stretch", items[1].Title)

	require.NoError(t, env.templates.Save(ctx, alice, "weekday", day[:1]))
	items, err = env.templates.Get(ctx, alice, "weekday")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = env.templates.Get(ctx, alice, "weekend")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
