// Package cliutil holds the terminal output helpers shared by the oasexample
// commands.
package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	failureColor = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
)

// Writef writes formatted output to w. Write failures are reported on
// stderr and otherwise ignored.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		reportWriteError(err)
	}
}

// Success writes a "✓" status line in green.
func Success(w io.Writer, format string, args ...any) {
	status(w, successColor, "✓ ", format, args...)
}

// Failure writes a "✗" status line in bold red.
func Failure(w io.Writer, format string, args ...any) {
	status(w, failureColor, "✗ ", format, args...)
}

// Warning writes a "⚠" status line in yellow.
func Warning(w io.Writer, format string, args ...any) {
	status(w, warningColor, "⚠ ", format, args...)
}

// DisableColor turns off colored output for all status writers. Colors are
// already off when stdout is not a terminal or NO_COLOR is set.
func DisableColor() {
	color.NoColor = true
}

func status(w io.Writer, c *color.Color, symbol, format string, args ...any) {
	if _, err := c.Fprintf(w, symbol+format+"\n", args...); err != nil {
		reportWriteError(err)
	}
}

func reportWriteError(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
}
