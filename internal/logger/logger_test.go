package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)
	log.WithField("category", "Python").Info("catalog loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "catalog loaded", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Python", entry["category"])
	assert.Contains(t, entry, "timestamp")
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter("warn", &buf)

	log.Info("should be dropped")
	assert.Zero(t, buf.Len())

	log.Warn("should appear")
	assert.Contains(t, buf.String(), "should appear")
	assert.Contains(t, buf.String(), `"level":"warning"`)
}

func TestWithModule(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter("debug", &buf)
	log.WithModule("query").Debug("routing")

	assert.Contains(t, buf.String(), `"module":"query"`)
}

func TestFanoutHandler_DispatchesToAll(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	fan := NewFanoutHandler(
		slog.NewJSONHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
		nil, // skipped
	)
	log := slog.New(fan)
	log.Info("fan out", "key", "value")

	for _, buf := range []*bytes.Buffer{&a, &b} {
		assert.Contains(t, buf.String(), "fan out")
		assert.Contains(t, buf.String(), `"key":"value"`)
	}
}

func TestFanoutHandler_EnabledRespectsLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	errOnly := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError})
	fan := NewFanoutHandler(errOnly)

	assert.False(t, fan.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, fan.Enabled(context.Background(), slog.LevelError))
}

func TestFanoutHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	fan := NewFanoutHandler(slog.NewJSONHandler(&buf, nil))
	log := slog.New(fan.WithAttrs([]slog.Attr{slog.String("instance", "test")}))
	log.Info("attr check")

	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, `"instance":"test"`)
}

func TestFormattedHelpers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter("debug", &buf)
	log.Infof("loaded %d courses", 42)

	assert.Contains(t, buf.String(), "loaded 42 courses")
}
