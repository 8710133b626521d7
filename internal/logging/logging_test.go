package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo).With("component", "tracking")

	logger.Info("off route", "distance", 25.0)

	m := decode(t, &buf)
	assert.Equal(t, "[tracking] off route", m["message"])
	assert.Equal(t, "INFO", m["severity"])
	assert.Equal(t, "tracking", m["component"])
	assert.Equal(t, 25.0, m["distance"])
}

func TestRecordComponentOverrides(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelInfo).Info("hello", "component", "search")
	assert.Equal(t, "[search] hello", decode(t, &buf)["message"])
}

func TestNoComponent(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelInfo).Warn("plain")
	m := decode(t, &buf)
	assert.Equal(t, "plain", m["message"])
	assert.Equal(t, "WARN", m["severity"])
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelWarn).Info("dropped")
	assert.Zero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}
