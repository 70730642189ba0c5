package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Loader.Timeout)
	assert.Equal(t, 3, cfg.Loader.RetryMax)
	assert.Equal(t, time.Second, cfg.Loader.RetryWaitMin)
	assert.Equal(t, 30*time.Second, cfg.Loader.RetryWaitMax)
	assert.Equal(t, float64(0), cfg.Loader.RequestsPerSecond)
	assert.Equal(t, "Lumen/1.0 (headless)", cfg.Loader.UserAgent)
	assert.False(t, cfg.Parser.Sanitize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LUMEN_LOADER_TIMEOUT", "5s")
	t.Setenv("LUMEN_LOADER_RETRY_MAX", "1")
	t.Setenv("LUMEN_LOADER_RPS", "2.5")
	t.Setenv("LUMEN_LOADER_USER_AGENT", "custom-agent")
	t.Setenv("LUMEN_PARSER_SANITIZE", "true")
	t.Setenv("LUMEN_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Loader.Timeout)
	assert.Equal(t, 1, cfg.Loader.RetryMax)
	assert.Equal(t, 2.5, cfg.Loader.RequestsPerSecond)
	assert.Equal(t, "custom-agent", cfg.Loader.UserAgent)
	assert.True(t, cfg.Parser.Sanitize)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadInvalidValue(t *testing.T) {
	t.Setenv("LUMEN_LOADER_TIMEOUT", "not-a-duration")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	t.Setenv("LUMEN_LOADER_RETRY_MAX", "not-a-number")

	cfg := LoadOrDefault()
	require.NotNil(t, cfg)
	assert.Equal(t, 3, cfg.Loader.RetryMax)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 30*time.Second, cfg.Loader.Timeout)
	assert.Equal(t, "Lumen/1.0 (headless)", cfg.Loader.UserAgent)
	assert.Equal(t, "info", cfg.Logging.Level)
}
