package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/rangler/internal/logger"
)

func TestApplyDefaults(t *testing.T) {
	t.Parallel()

	cfg := logger.Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, logger.FormatConsole, cfg.Format)

	cfg = logger.Config{Level: "debug", Format: logger.FormatJSON}
	cfg.ApplyDefaults()
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, logger.FormatJSON, cfg.Format)
}

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "warn", Format: logger.FormatJSON, Timestamp: true}, &buf)

	log.Info().Msg("hidden")
	log.Warn().Str("step", "trim").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "trim", entry["step"])
	assert.Contains(t, entry, "time")
}

func TestNewConsole(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.Config{Format: "Console", NoColor: true}, &buf)

	log.Debug().Msg("hidden")
	log.Info().Msg("hello")

	assert.Contains(t, buf.String(), "INF hello")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewUnknownLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "loud", Format: logger.FormatJSON}, &buf)

	log.Debug().Msg("hidden")
	log.Info().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
