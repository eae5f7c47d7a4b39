package config

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HORIZON_DB", "")
	t.Setenv("HORIZON_CONSTANTS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.DB)
	assert.Empty(t, cfg.Constants)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HORIZON_DB", "/tmp/horizon.db")
	t.Setenv("HORIZON_CONSTANTS", "sets/heavy.cue")
	t.Setenv("HORIZON_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/horizon.db", cfg.DB)
	assert.Equal(t, "sets/heavy.cue", cfg.Constants)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
}

func TestLoadInvalidLevel(t *testing.T) {
	t.Setenv("HORIZON_LOG_LEVEL", "chatty")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{LogLevel: slog.LevelInfo}

	cfg.Logger(&buf, false).Debug("hidden")
	assert.Empty(t, buf.String())

	cfg.Logger(&buf, true).Debug("shown", "operation", "observer.dilation")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "operation=observer.dilation")
}
