// Package oaserrors provides structured error types for idpdocs.
//
// The types support errors.Is and errors.As so callers can tell a dangling
// schema reference apart from an endpoint that is deliberately not described,
// or from a bad option value.
//
// # Error Categories
//
//   - ReferenceError: a $ref that does not resolve to a component schema
//   - UnsupportedEndpointError: an endpoint the catalog marks as not implemented
//   - ConfigError: invalid configuration or input options
//   - SerializationError: JSON or YAML rendering failures
//
// # Usage with errors.As
//
//	doc, err := catalog.New(catalog.WithStrict()).Build(issuer)
//	if err != nil {
//	    var unsupported *oaserrors.UnsupportedEndpointError
//	    if errors.As(err, &unsupported) {
//	        log.Printf("%s is not described yet", unsupported.Path)
//	    }
//	}
package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrReference indicates a schema reference that does not resolve.
	ErrReference = errors.New("reference error")

	// ErrNotImplemented indicates an endpoint without a document description.
	ErrNotImplemented = errors.New("not implemented")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")

	// ErrSerialization indicates a document could not be rendered.
	ErrSerialization = errors.New("serialization error")
)

// ReferenceError represents a $ref that points at a missing component.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// Path is the JSON path of the node holding the reference
	Path string
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.Ref != "" {
		msg += ": " + e.Ref
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
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrReference
}

// UnsupportedEndpointError reports an endpoint that has no description.
// The catalog raises it in strict mode instead of emitting a guessed schema.
type UnsupportedEndpointError struct {
	// Name is the catalog name of the endpoint (e.g., "userinfo")
	Name string
	// Path is the URL path of the endpoint (e.g., "/connect/userinfo")
	Path string
}

// Error returns a human-readable error message.
func (e *UnsupportedEndpointError) Error() string {
	msg := "endpoint not implemented"
	if e.Name != "" {
		msg += ": " + e.Name
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" (%s)", e.Path)
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *UnsupportedEndpointError) Is(target error) bool {
	return target == ErrNotImplemented
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

// SerializationError represents a failure to render a document.
type SerializationError struct {
	// Format is the output format ("json" or "yaml")
	Format string
	// Cause is the underlying encoder error
	Cause error
}

// Error returns a human-readable error message.
func (e *SerializationError) Error() string {
	msg := "serialization error"
	if e.Format != "" {
		msg += " (" + e.Format + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SerializationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SerializationError) Is(target error) bool {
	return target == ErrSerialization
}
