// Package severity provides severity level constants for issues reported by
// the legacy converter and the annotator.
//
// The levels are:
//   - SeverityInfo: informational notes about choices made (e.g. a dropped 1.x field)
//   - SeverityWarning: degraded output, such as an example set to null
//   - SeverityError: an operation whose params could not be extracted
//   - SeverityCritical: content that could not be processed at all
package severity

import "fmt"

// Severity indicates the severity level of an issue.
type Severity int

const (
	// SeverityError indicates a part of the document that could not be
	// annotated, such as an operation left without params.
	SeverityError Severity = iota

	// SeverityWarning indicates degraded output that processing recovered
	// from, such as an example set to null.
	SeverityWarning

	// SeverityInfo indicates informational messages about processing choices.
	SeverityInfo

	// SeverityCritical indicates content that was lost entirely.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity as its name, so issues serialize
// readably in JSON and YAML output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "info":
		*s = SeverityInfo
	case "warning":
		*s = SeverityWarning
	case "error":
		*s = SeverityError
	case "critical":
		*s = SeverityCritical
	default:
		return fmt.Errorf("severity: unknown level %q", text)
	}
	return nil
}
