package cliutil

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("simulated write error")
}

func noColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	DisableColor()
	t.Cleanup(func() { color.NoColor = prev })
}

func TestWritef(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []any
		want   string
	}{
		{name: "no args", format: "Operations: 3", want: "Operations: 3"},
		{name: "one arg", format: "Dialect: %s\n", args: []any{"oas3"}, want: "Dialect: oas3\n"},
		{name: "mixed args", format: "%s: %d hits, %v", args: []any{"Sampler Cache", 4, true}, want: "Sampler Cache: 4 hits, true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Writef(&buf, tt.format, tt.args...)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestStatusWriters(t *testing.T) {
	noColor(t)

	tests := []struct {
		name  string
		write func(io.Writer)
		want  string
	}{
		{
			name:  "success",
			write: func(w io.Writer) { Success(w, "Annotated %d operations", 3) },
			want:  "✓ Annotated 3 operations\n",
		},
		{
			name:  "failure",
			write: func(w io.Writer) { Failure(w, "%d operation(s) failed", 1) },
			want:  "✗ 1 operation(s) failed\n",
		},
		{
			name:  "warning",
			write: func(w io.Writer) { Warning(w, "no paths") },
			want:  "⚠ no paths\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.write(&buf)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteErrorsAreIgnored(t *testing.T) {
	noColor(t)

	assert.NotPanics(t, func() {
		Writef(failingWriter{}, "lost %s", "output")
		Success(failingWriter{}, "lost")
		Failure(failingWriter{}, "lost")
	})
}
