package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"family-planner/internal/model"
)

func TestSettingsPartialUpdate(t *testing.T) {
	db := newTestDB(t)
	repo := NewSettingsRepository(db)
	ctx := context.Background()
	user := newTestUser(t, db, "alice")

	require.NoError(t, repo.Update(ctx, user.ID, model.SettingsPatch{
		AutoBackup: ptr(false),
		WeekStart:  ptr(model.WeekStartSunday),
	}))

	got, err := repo.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, got.AutoBackup)
	assert.True(t, got.Notifications)
	assert.Equal(t, model.WeekStartSunday, got.WeekStart)
	assert.Equal(t, "light", got.Theme)
}

func TestSettingsUpdateErrors(t *testing.T) {
	db := newTestDB(t)
	repo := NewSettingsRepository(db)
	ctx := context.Background()
	user := newTestUser(t, db, "alice")

	assert.ErrorIs(t, repo.Update(ctx, user.ID, model.SettingsPatch{}), ErrEmptyPatch)
	assert.ErrorIs(t, repo.Update(ctx, user.ID, model.SettingsPatch{WeekStart: ptr("friday")}), ErrValidation)
	assert.ErrorIs(t, repo.Update(ctx, 9999, model.SettingsPatch{Theme: ptr("dark")}), ErrNotFound)

	_, err := repo.Get(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
