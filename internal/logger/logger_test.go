package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSONFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	log, err := New(dir, "info")
	require.NoError(t, err)

	log.Info("task created", zap.Uint("user_id", 7))
	log.Debug("dropped")
	_ = log.Sync()

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"task created"`)
	assert.Contains(t, string(data), `"user_id":7`)
	assert.Contains(t, string(data), `"timestamp"`)
	assert.NotContains(t, string(data), "dropped")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(t.TempDir(), "loud")
	assert.Error(t, err)
}
