package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates a document could not be decoded.
	ErrParse = errors.New("parse error")

	// ErrRetrieval indicates a document or sub-document could not be retrieved.
	ErrRetrieval = errors.New("retrieval error")

	// ErrConversion indicates a legacy multi-document conversion failure.
	ErrConversion = errors.New("conversion error")

	// ErrSchemaInference indicates a response or parameter schema could not be read.
	ErrSchemaInference = errors.New("schema inference error")

	// ErrParameterExtraction indicates an operation's parameters did not have
	// the shape expected for its dialect.
	ErrParameterExtraction = errors.New("parameter extraction error")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to decode a document.
type ParseError struct {
	// Path is the file path, URL, or source identifier
	Path string
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// RetrievalError represents a failure to fetch a document.
// It is fatal to the annotation call that triggered it.
type RetrievalError struct {
	// Location is the file path or URL that was requested
	Location string
	// StatusCode is the HTTP status code, when the failure came from an HTTP response
	StatusCode int
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *RetrievalError) Error() string {
	msg := "retrieval error"
	if e.Location != "" {
		msg += ": " + e.Location
	}
	if e.StatusCode > 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *RetrievalError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *RetrievalError) Is(target error) bool {
	return target == ErrRetrieval
}

// ConversionError represents a failure while merging a legacy (1.x) resource
// listing and its API declarations into a single 2.0 document.
type ConversionError struct {
	// SourceVersion is the legacy swaggerVersion (e.g., "1.2")
	SourceVersion string
	// TargetVersion is the produced version (e.g., "2.0")
	TargetVersion string
	// Path is the location in the source document where conversion failed
	Path string
	// Message describes the conversion failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConversionError) Error() string {
	msg := "conversion error"
	if e.SourceVersion != "" && e.TargetVersion != "" {
		msg += fmt.Sprintf(" (%s -> %s)", e.SourceVersion, e.TargetVersion)
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

// SchemaInferenceError represents a response or parameter whose schema could
// not be read. It is contained locally: the affected example becomes null.
type SchemaInferenceError struct {
	// Path is the JSON path of the response or parameter (e.g., "paths./pets.get.responses.200")
	Path string
	// Message describes what was malformed
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *SchemaInferenceError) Error() string {
	msg := "schema inference error"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SchemaInferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SchemaInferenceError) Is(target error) bool {
	return target == ErrSchemaInference
}

// ParameterExtractionError represents an operation whose parameters deviate
// from the structure expected by its dialect. It is contained locally: the
// operation is left without params.
type ParameterExtractionError struct {
	// Path is the JSON path of the offending node, relative to the operation
	// when no operation path is known (e.g., "parameters[2].type")
	Path string
	// Dialect is the dialect extraction ran under ("v2" or "v3")
	Dialect string
	// Message describes the deviation
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParameterExtractionError) Error() string {
	msg := "parameter extraction error"
	if e.Dialect != "" {
		msg += " (" + e.Dialect + ")"
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParameterExtractionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParameterExtractionError) Is(target error) bool {
	return target == ErrParameterExtraction
}

// ResourceLimitError represents a resource exhaustion condition.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded
	// Common values: "file_size", "sub_documents", "legacy_depth"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as ResourceLimitError has no underlying cause.
func (e *ResourceLimitError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
