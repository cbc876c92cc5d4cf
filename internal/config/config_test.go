package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFileOverDefaults(t *testing.T) {
	path := writeFile(t, `
http:
  port: 9090
  read_timeout: 3s
model:
  path: /srv/model.gob
  required: true
log:
  level: debug
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, c.HTTP.Port)
	assert.Equal(t, 3*time.Second, c.HTTP.ReadTimeout)
	assert.Equal(t, 10*time.Second, c.HTTP.WriteTimeout)
	assert.Equal(t, "/srv/model.gob", c.Model.Path)
	assert.True(t, c.Model.Required)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "http:\n  port: 9090\n")
	t.Setenv("PORT", "7070")
	t.Setenv("MODEL_PATH", "other.gob")
	t.Setenv("MODEL_REQUIRED", "true")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, c.HTTP.Port)
	assert.Equal(t, "other.gob", c.Model.Path)
	assert.True(t, c.Model.Required)
}

func TestLoadRejectsInvalid(t *testing.T) {
	_, err := Load(writeFile(t, "log:\n  level: loud\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "http:\n  port: 70000\n"))
	assert.Error(t, err)

	t.Setenv("PORT", "eighty")
	_, err = Load(writeFile(t, ""))
	assert.Error(t, err)
}

func TestExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDefaultsValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
