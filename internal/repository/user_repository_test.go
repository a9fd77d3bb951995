package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"family-planner/internal/auth"
	"family-planner/internal/model"
)

func TestUserCreateSeedsDefaults(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := newTestUser(t, db, "alice")
	assert.NotZero(t, user.ID)

	categories, err := NewCategoryRepository(db).ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, categories, len(model.DefaultCategories))

	_, err = NewSettingsRepository(db).Get(ctx, user.ID)
	assert.NoError(t, err)
}

func TestUserCreateConflictKeepsOriginal(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first, err := repo.Create(ctx, "alice", auth.HashPassword("pw1"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, "alice", auth.HashPassword("pw2"))
	require.ErrorIs(t, err, ErrConflict)

	stored, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.True(t, auth.CheckPassword(stored.PasswordHash, "pw1"))

	var categories int64
	require.NoError(t, db.Model(&model.Category{}).Where("user_id = ?", first.ID).Count(&categories).Error)
	assert.EqualValues(t, len(model.DefaultCategories), categories)
}

func TestUsernamesAreCaseSensitive(t *testing.T) {
	db := newTestDB(t)
	newTestUser(t, db, "bob")
	newTestUser(t, db, "Bob")

	_, err := NewUserRepository(db).FindByUsername(context.Background(), "BOB")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListSummariesOrderedByUsername(t *testing.T) {
	db := newTestDB(t)
	newTestUser(t, db, "zoe")
	newTestUser(t, db, "Carl")
	newTestUser(t, db, "mia")

	users, err := NewUserRepository(db).ListSummaries(context.Background())
	require.NoError(t, err)

	var names []string
	for _, u := range users {
		assert.NotZero(t, u.ID)
		names = append(names, u.Username)
	}
	assert.Equal(t, []string{AdminUsername, "Carl", "mia", "zoe"}, names)
}
