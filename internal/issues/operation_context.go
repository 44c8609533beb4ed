package issues

import "fmt"

// EndpointContext identifies the endpoint operation an issue was found under.
type EndpointContext struct {
	// Method is the HTTP method (GET, POST) - empty for path-level issues
	Method string
	// Path is the endpoint path (e.g., "/connect/authorize")
	Path string
	// OperationID is the operationId if defined (may be empty)
	OperationID string
	// Placeholder is true for paths tagged as not yet described
	Placeholder bool
}

// String returns a formatted representation, or "" when the context is empty.
func (c EndpointContext) String() string {
	switch {
	case c.IsEmpty():
		return ""
	case c.Placeholder:
		return fmt.Sprintf("(placeholder: %s)", c.Path)
	case c.OperationID != "":
		return fmt.Sprintf("(operationId: %s)", c.OperationID)
	case c.Method != "":
		return fmt.Sprintf("(%s %s)", c.Method, c.Path)
	default:
		return fmt.Sprintf("(path: %s)", c.Path)
	}
}

// IsEmpty returns true if the context has no meaningful information.
func (c EndpointContext) IsEmpty() bool {
	return c.Method == "" && c.Path == "" && c.OperationID == ""
}
