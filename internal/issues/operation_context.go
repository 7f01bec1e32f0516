package issues

import "fmt"

// OperationContext identifies the operation an issue belongs to.
type OperationContext struct {
	// Method is the lower-case HTTP method
	Method string `json:"method,omitempty"`
	// Path is the API path pattern (e.g., "/users/{id}")
	Path string `json:"path,omitempty"`
	// OperationID is the operationId if defined (may be empty)
	OperationID string `json:"operationId,omitempty"`
}

// String returns a formatted string representation of the operation context.
// Returns empty string if the context is empty.
func (c OperationContext) String() string {
	switch {
	case c.IsEmpty():
		return ""
	case c.OperationID != "":
		return fmt.Sprintf("(operationId: %s)", c.OperationID)
	case c.Method != "":
		return fmt.Sprintf("(%s %s)", c.Method, c.Path)
	default:
		return fmt.Sprintf("(path: %s)", c.Path)
	}
}

// IsEmpty returns true if the context has no meaningful information.
func (c OperationContext) IsEmpty() bool {
	return c.Method == "" && c.Path == "" && c.OperationID == ""
}
