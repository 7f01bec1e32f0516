// Package httputil provides HTTP method and status code helpers used when
// walking and converting API descriptions.
package httputil

import (
	"mime"
	"strconv"
	"strings"
)

// HTTP Status Code Constants
const (
	StatusCodeLength = 3   // Standard length of HTTP status codes (e.g., "200", "404")
	MinStatusCode    = 100 // Minimum valid HTTP status code
	MaxStatusCode    = 599 // Maximum valid HTTP status code
	WildcardChar     = 'X' // Wildcard character used in status code patterns (e.g., "2XX")
)

// HTTP Method Constants, in the lower-case form used as path item keys.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
)

// OperationMethods lists the path item keys that hold operations. Other keys
// of a path item ("parameters", "summary", "$ref", extensions) are skipped.
var OperationMethods = []string{
	MethodGet, MethodPut, MethodPost, MethodDelete,
	MethodOptions, MethodHead, MethodPatch, MethodTrace,
}

var operationMethodSet = func() map[string]bool {
	m := make(map[string]bool, len(OperationMethods))
	for _, method := range OperationMethods {
		m[method] = true
	}
	return m
}()

// IsOperationMethod reports whether key names an operation in a path item.
// The comparison is case-sensitive: path item keys are lower-case.
func IsOperationMethod(key string) bool {
	return operationMethodSet[key]
}

// ValidateStatusCode checks if a status code string is valid as a response key.
// Valid values are:
//   - "default" for default response
//   - Extension fields starting with "x-"
//   - Wildcard patterns: 1XX, 2XX, 3XX, 4XX, 5XX
//   - Numeric codes: 100-599
func ValidateStatusCode(code string) bool {
	if code == "default" || strings.HasPrefix(code, "x-") {
		return true
	}
	if len(code) != StatusCodeLength {
		return false
	}
	if code[1] == WildcardChar && code[2] == WildcardChar {
		return code[0] >= '1' && code[0] <= '5'
	}
	statusCode, err := strconv.Atoi(code)
	return err == nil && statusCode >= MinStatusCode && statusCode <= MaxStatusCode
}

// IsValidMediaType validates a media type string according to RFC 2045/2046.
// Handles wildcards (*/* and type/*) and prevents invalid combinations (*/subtype).
func IsValidMediaType(mediaType string) bool {
	if mediaType == "*/*" {
		return true
	}

	if major, ok := strings.CutSuffix(mediaType, "/*"); ok {
		return major != "" && major != "*" && !strings.Contains(major, "/")
	}

	_, _, err := mime.ParseMediaType(mediaType)
	return err == nil
}
