package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	for in, want := range map[string]Priority{"low": PriorityLow, "2": PriorityMedium, " High ": PriorityHigh} {
		got, err := ParsePriority(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParsePriority("urgent")
	assert.Error(t, err)
}

func TestTaskPatchEmpty(t *testing.T) {
	assert.True(t, TaskPatch{}.Empty())
	assert.False(t, TaskPatch{ClearCategory: true}.Empty())
	title := "x"
	assert.False(t, TaskPatch{Title: &title}.Empty())
}
