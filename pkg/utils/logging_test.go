package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "api.log")
	l, err := NewLogger(LogOptions{Level: "info", File: path})
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("visible")
	_ = l.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"visible"`)
	assert.NotContains(t, string(b), "hidden")
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := NewLogger(LogOptions{Level: "chatty"})
	assert.Error(t, err)
}
