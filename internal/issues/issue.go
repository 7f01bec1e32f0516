// Package issues provides the issue type shared by the legacy converter and
// the annotator for problems that do not abort processing.
package issues

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasexample/internal/severity"
)

// Issue represents a single problem found while converting or annotating a
// document.
type Issue struct {
	// Path is the dotted path to the affected node (e.g., "paths./pets.get.responses.200")
	Path string `json:"path"`
	// Message is a human-readable description of the issue
	Message string `json:"message"`
	// Severity indicates the severity level of the issue
	Severity severity.Severity `json:"severity"`
	// Field is the specific field name that has the issue (optional)
	Field string `json:"field,omitempty"`
	// Value is the problematic value (optional)
	Value any `json:"value,omitempty"`
	// Context provides additional information about the issue (optional)
	Context string `json:"context,omitempty"`
	// Source is the sub-document the issue came from, for Swagger 1.x API
	// declarations (empty for the main document)
	Source string `json:"source,omitempty"`
	// Operation identifies the operation the issue belongs to. Nil when not applicable.
	Operation *OperationContext `json:"operation,omitempty"`
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	where := i.Path
	if i.Operation != nil && !i.Operation.IsEmpty() {
		where = fmt.Sprintf("%s %s", i.Path, i.Operation.String())
	}
	if i.Source != "" {
		where = fmt.Sprintf("%s [%s]", where, i.Source)
	}

	result := fmt.Sprintf("%s %s: %s", symbol, where, i.Message)
	if i.Context != "" {
		result += fmt.Sprintf("\n    Context: %s", i.Context)
	}
	return result
}

// Counts tallies issues per severity.
type Counts struct {
	Info     int `json:"info"`
	Warning  int `json:"warning"`
	Error    int `json:"error"`
	Critical int `json:"critical"`
}

// Count returns the per-severity totals of list.
func Count(list []Issue) Counts {
	var c Counts
	for _, i := range list {
		switch i.Severity {
		case severity.SeverityInfo:
			c.Info++
		case severity.SeverityWarning:
			c.Warning++
		case severity.SeverityError:
			c.Error++
		case severity.SeverityCritical:
			c.Critical++
		}
	}
	return c
}

// FormatPath joins path segments with dots.
func FormatPath(segments ...string) string {
	return strings.Join(segments, ".")
}
