package parser

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopLogger(t *testing.T) {
	l := NopLogger{}
	l.Debug("test message", "key", "value")
	l.Info("test message", "key", "value")
	l.Warn("test message", "key", "value")
	l.Error("test message", "key", "value")

	_, ok := l.With("key", "value").(NopLogger)
	assert.True(t, ok, "With should return NopLogger")
}

func TestSlogAdapter(t *testing.T) {
	t.Run("NewSlogAdapter with nil uses default", func(t *testing.T) {
		adapter := NewSlogAdapter(nil)
		require.NotNil(t, adapter.logger)
	})

	t.Run("levels", func(t *testing.T) {
		var buf bytes.Buffer
		adapter := NewTextLogger(&buf, slog.LevelDebug)

		adapter.Debug("debug message", "foo", "bar")
		adapter.Info("info message")
		adapter.Warn("warn message")
		adapter.Error("error message")

		out := buf.String()
		assert.Contains(t, out, "level=DEBUG msg=\"debug message\" foo=bar")
		assert.Contains(t, out, "level=INFO")
		assert.Contains(t, out, "level=WARN")
		assert.Contains(t, out, "level=ERROR")
	})

	t.Run("threshold filters lower levels", func(t *testing.T) {
		var buf bytes.Buffer
		adapter := NewTextLogger(&buf, slog.LevelWarn)
		adapter.Info("hidden")
		adapter.Warn("shown")
		assert.False(t, strings.Contains(buf.String(), "hidden"))
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("With adds attributes", func(t *testing.T) {
		var buf bytes.Buffer
		adapter := NewTextLogger(&buf, slog.LevelDebug)
		child := adapter.With("run_id", "abc")
		child.Info("annotated")
		assert.Contains(t, buf.String(), "run_id=abc")

		_, ok := child.(*SlogAdapter)
		assert.True(t, ok)
	})
}

func TestFetchLogsLoadedDocument(t *testing.T) {
	var buf bytes.Buffer
	p := New()
	p.Logger = NewTextLogger(&buf, slog.LevelDebug)

	_, err := p.Parse("../testdata/petstore-2.0.json")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "loaded document")
	assert.Contains(t, buf.String(), "dialect=swagger2")
}
