// Package options provides the validation shared by the functional options
// of the parser and annotator packages.
package options

import (
	"fmt"

	"github.com/erraggy/oasexample/oaserrors"
)

// ValidateSingleInputSource ensures exactly one input source is specified.
// sources is a variadic list of booleans indicating whether each source is set.
// noSourceMsg is the error message when no source is specified.
// multiSourceMsg is the error message when multiple sources are specified.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	sourceCount := 0
	for _, hasSource := range sources {
		if hasSource {
			sourceCount++
		}
	}

	switch {
	case sourceCount == 0:
		return &oaserrors.ConfigError{Option: "input", Message: noSourceMsg}
	case sourceCount > 1:
		return &oaserrors.ConfigError{Option: "input", Value: sourceCount, Message: multiSourceMsg}
	}
	return nil
}

// ValidateNonNegative rejects negative limits. Zero selects a default.
func ValidateNonNegative[T ~int | ~int64](option string, value T) error {
	if value < 0 {
		return &oaserrors.ConfigError{Option: option, Value: value, Message: fmt.Sprintf("%s cannot be negative", option)}
	}
	return nil
}
