package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.Store.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Store.Timeout())
	assert.Equal(t, "development", cfg.Logger.Mode)
	assert.Equal(t, ":8000", cfg.Stub.Listen)
}

func TestMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  base_url: https://store.example.com
  timeout_seconds: 3
logger:
  mode: production
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://store.example.com", cfg.Store.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Store.Timeout())
	assert.Equal(t, "production", cfg.Logger.Mode)
	assert.Equal(t, ":8000", cfg.Stub.Listen, "unset keys keep their defaults")
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  base_url: https://file.example.com\n"), 0o644))
	t.Setenv("SHELFLYFE_STORE_URL", "https://env.example.com")
	t.Setenv("SHELFLYFE_STORE_TIMEOUT", "30")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.Store.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Store.Timeout())
}

func TestValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, os.WriteFile(path, []byte("logger:\n  mode: verbose\n"), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "logger.mode")

	require.NoError(t, os.WriteFile(path, []byte("store:\n  timeout_seconds: -1\n"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "timeout_seconds")
}

func TestMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: [not a mapping"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
