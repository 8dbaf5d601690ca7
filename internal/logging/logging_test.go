package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/helixedit/internal/config"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, level, err := New(&buf, config.LogConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)

	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.Warn("rejected", "kind", "cut")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "rejected", rec["msg"])
	assert.Equal(t, "cut", rec["kind"])

	buf.Reset()
	level.Set(slog.LevelDebug)
	logger.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(&buf, config.LogConfig{Level: "DEBUG"})
	require.NoError(t, err)
	logger.Debug("applied", "outcome", "push")
	assert.Contains(t, buf.String(), "outcome=push")
}

func TestNewErrors(t *testing.T) {
	_, _, err := New(&bytes.Buffer{}, config.LogConfig{Level: "loud"})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	_, _, err = New(&bytes.Buffer{}, config.LogConfig{Level: "info", Format: "xml"})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
