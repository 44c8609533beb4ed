// Package issues provides the issue type reported by document validation.
package issues

import (
	"fmt"

	"github.com/erraggy/idpdocs/internal/severity"
)

// Issue represents a single problem found in a generated document.
type Issue struct {
	// Path is the JSON path to the problematic field (e.g., "$.paths['/connect/token'].post")
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Field is the specific field name that has the issue
	Field string
	// Value is the problematic value (optional)
	Value any
	// Endpoint identifies the operation the issue belongs to. Nil for
	// document-level issues.
	Endpoint *EndpointContext
}

// String returns a formatted string representation of the issue, prefixed
// with the severity symbol.
func (i Issue) String() string {
	path := i.Path
	if i.Endpoint != nil && !i.Endpoint.IsEmpty() {
		path = fmt.Sprintf("%s %s", i.Path, i.Endpoint.String())
	}
	return fmt.Sprintf("%s %s: %s", i.Severity.Symbol(), path, i.Message)
}

// IsError reports whether the issue invalidates the document.
func (i Issue) IsError() bool {
	return i.Severity == severity.SeverityError
}
