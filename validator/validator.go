package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/erraggy/idpdocs/internal/issues"
	"github.com/erraggy/idpdocs/internal/severity"
	"github.com/erraggy/idpdocs/oaserrors"
	"github.com/erraggy/idpdocs/openapi"
)

// Severity indicates the severity level of a validation issue
type Severity = severity.Severity

const (
	// SeverityError indicates a problem that makes the document invalid
	SeverityError = severity.SeverityError
	// SeverityWarning indicates a problem worth surfacing that does not invalidate the document
	SeverityWarning = severity.SeverityWarning
	// SeverityInfo indicates informational messages
	SeverityInfo = severity.SeverityInfo
)

// ValidationError represents a single validation issue
type ValidationError = issues.Issue

// EndpointContext identifies the operation a validation issue belongs to
type EndpointContext = issues.EndpointContext

// ValidationResult contains the results of validating a document
type ValidationResult struct {
	// Valid is true if no errors were found (warnings are allowed)
	Valid bool
	// Version is the document's openapi version string
	Version string
	// Errors contains all validation errors
	Errors []ValidationError
	// Warnings contains all validation warnings
	Warnings []ValidationError
	// ErrorCount is the total number of errors
	ErrorCount int
	// WarningCount is the total number of warnings
	WarningCount int
}

// Validate checks doc and returns every issue found. The returned error is
// reserved for unusable input (a nil document); an invalid document is
// reported through ValidationResult.Valid.
func Validate(doc *openapi.Document, opts ...Option) (*ValidationResult, error) {
	if doc == nil {
		return nil, &oaserrors.ConfigError{Option: "document", Message: "validator: document is nil"}
	}
	v := &validator{cfg: applyOptions(opts...), doc: doc, result: &ValidationResult{Version: doc.OpenAPI}}
	v.validateDocument()

	r := v.result
	if !v.cfg.includeWarnings {
		r.Warnings = nil
	}
	r.ErrorCount = len(r.Errors)
	r.WarningCount = len(r.Warnings)
	r.Valid = r.ErrorCount == 0
	return r, nil
}

// Err returns the result's errors joined into one error, or nil when the
// document is valid.
func (r *ValidationResult) Err() error {
	if r == nil || r.Valid {
		return nil
	}
	errs := make([]error, 0, len(r.Errors))
	for _, e := range r.Errors {
		errs = append(errs, errors.New(e.String()))
	}
	return fmt.Errorf("validator: %d error(s): %w", r.ErrorCount, errors.Join(errs...))
}

type validator struct {
	cfg    *validateConfig
	doc    *openapi.Document
	result *ValidationResult
}

func (v *validator) addError(path, message string, opts ...func(*ValidationError)) {
	err := ValidationError{Path: path, Message: message, Severity: SeverityError}
	for _, opt := range opts {
		opt(&err)
	}
	v.result.Errors = append(v.result.Errors, err)
}

func (v *validator) addWarning(path, message string, opts ...func(*ValidationError)) {
	warn := ValidationError{Path: path, Message: message, Severity: SeverityWarning}
	for _, opt := range opts {
		opt(&warn)
	}
	v.result.Warnings = append(v.result.Warnings, warn)
}

// withField sets the Field on a ValidationError.
func withField(field string) func(*ValidationError) {
	return func(e *ValidationError) { e.Field = field }
}

// withValue sets the Value on a ValidationError.
func withValue(value any) func(*ValidationError) {
	return func(e *ValidationError) { e.Value = value }
}

// withEndpoint sets the endpoint context on a ValidationError.
func withEndpoint(ctx *EndpointContext) func(*ValidationError) {
	return func(e *ValidationError) { e.Endpoint = ctx }
}

func (v *validator) validateDocument() {
	if !strings.HasPrefix(v.doc.OpenAPI, "3.0.") {
		v.addError("$.openapi", fmt.Sprintf("unsupported OpenAPI version %q, want 3.0.x", v.doc.OpenAPI),
			withField("openapi"), withValue(v.doc.OpenAPI))
	}
	v.validateInfo()
	v.validateServers()
	v.validatePaths()
	v.validateComponents()
	v.validateRefs()
	v.validateSchemas()
	if v.cfg.examples {
		v.validateExamples()
	}
}

func (v *validator) validateInfo() {
	info := v.doc.Info
	if info == nil {
		v.addError("$.info", "info object is required", withField("info"))
		return
	}
	if info.Title == "" {
		v.addError("$.info.title", "info object must have a title", withField("title"))
	}
	if info.Version == "" {
		v.addError("$.info.version", "info object must have a version", withField("version"))
	}
}

// validateServers enforces the single issuer server entry every generated document carries.
func (v *validator) validateServers() {
	if len(v.doc.Servers) != 1 {
		v.addError("$.servers", fmt.Sprintf("expected exactly one server, found %d", len(v.doc.Servers)),
			withField("servers"), withValue(len(v.doc.Servers)))
		return
	}
	if s := v.doc.Servers[0]; s == nil || strings.TrimSpace(s.URL) == "" {
		v.addError("$.servers[0].url", "server url must not be empty", withField("url"))
	}
}

func (v *validator) validateComponents() {
	if v.doc.Components == nil {
		return
	}
	for _, name := range sortedKeys(v.doc.Components.Schemas) {
		if v.doc.Components.Schemas[name] == nil {
			v.addError("$.components.schemas."+name, "component schema is null", withField(name))
		}
	}
}

func (v *validator) validateRefs() {
	for _, use := range v.doc.UnresolvedRefs() {
		v.addError(use.Path, fmt.Sprintf("$ref %q does not resolve to a component schema", use.Ref),
			withField("$ref"), withValue(use.Ref))
	}
}

// validateSchemas checks required names against declared properties and
// duplicate enum values on every schema node.
func (v *validator) validateSchemas() {
	v.doc.WalkSchemas(func(path string, s *openapi.Schema) {
		if s.IsRef() {
			return
		}
		for _, name := range s.Required {
			if _, ok := s.Properties[name]; !ok {
				v.addError(path+".required", fmt.Sprintf("required property %q is not declared", name),
					withField("required"), withValue(name))
			}
		}
		seen := make(map[string]bool, len(s.Enum))
		for _, val := range s.Enum {
			if seen[val] {
				v.addWarning(path+".enum", fmt.Sprintf("duplicate enum value %q", val),
					withField("enum"), withValue(val))
			}
			seen[val] = true
		}
	})
}
