package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"family-planner/internal/model"
)

func TestTemplateSaveUpsertsByName(t *testing.T) {
	db := newTestDB(t)
	repo := NewTemplateRepository(db)
	ctx := context.Background()
	user := newTestUser(t, db, "alice")

	catID := uint(3)
	require.NoError(t, repo.Save(ctx, user.ID, "morning", []model.TemplateItem{
		{Title: "stretch", Priority: model.PriorityLow},
	}))
	require.NoError(t, repo.Save(ctx, user.ID, "morning", []model.TemplateItem{
		{Title: "run", Priority: model.PriorityHigh, IsMandatory: true, CategoryID: &catID},
		{Title: "shower", Priority: model.PriorityMedium},
	}))

	tpl, err := repo.Get(ctx, user.ID, "morning")
	require.NoError(t, err)
	require.Len(t, tpl.Data, 2)
	assert.Equal(t, "run", tpl.Data[0].Title)
	assert.True(t, tpl.Data[0].IsMandatory)
	require.NotNil(t, tpl.Data[0].CategoryID)
	assert.Equal(t, catID, *tpl.Data[0].CategoryID)

	var count int64
	require.NoError(t, db.Model(&model.Template{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestTemplateListNamesScopedAndSorted(t *testing.T) {
	db := newTestDB(t)
	repo := NewTemplateRepository(db)
	ctx := context.Background()
	alice := newTestUser(t, db, "alice")
	bob := newTestUser(t, db, "bob")

	for _, name := range []string{"weekend", "evening", "morning"} {
		require.NoError(t, repo.Save(ctx, alice.ID, name, nil))
	}
	require.NoError(t, repo.Save(ctx, bob.ID, "bobs", nil))

	names, err := repo.ListNames(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"evening", "morning", "weekend"}, names)

	_, err = repo.Get(ctx, bob.ID, "morning")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Save(ctx, alice.ID, " ", nil), ErrValidation)
}
