// Package serializer renders idpdocs documents in the OpenAPI 3.0 wire format.
//
// JSON is the default output; YAML is available with [WithFormat]. Before any
// bytes are produced the document's schema references are checked: a $ref that
// does not resolve to Components.Schemas is a programmer error, and [Serialize]
// panics with a *oaserrors.ReferenceError rather than emit a broken document.
// Callers that prefer an error value call [CheckReferences] first.
package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/idpdocs/oaserrors"
	"github.com/erraggy/idpdocs/openapi"
)

// Format is an output format.
type Format string

// Supported output formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ContentType returns the HTTP media type for the format.
func (f Format) ContentType() string {
	if f == FormatYAML {
		return "application/yaml"
	}
	return openapi.MediaTypeJSON
}

// ParseFormat parses "json", "yaml" or "yml", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", &oaserrors.ConfigError{
			Option:  "format",
			Value:   s,
			Message: "must be json or yaml",
		}
	}
}

// Option configures serialization.
type Option func(*config)

type config struct {
	format Format
	indent string
}

// WithFormat selects the output format. The default is JSON.
func WithFormat(f Format) Option {
	return func(c *config) {
		c.format = f
	}
}

// WithIndent sets the JSON indentation string. YAML output ignores it.
// The default is compact JSON.
func WithIndent(indent string) Option {
	return func(c *config) {
		c.indent = indent
	}
}

// CheckReferences returns a *oaserrors.ReferenceError describing the first
// dangling $ref in doc, or nil when every reference resolves.
func CheckReferences(doc *openapi.Document) error {
	if dangling := doc.UnresolvedRefs(); len(dangling) > 0 {
		return &oaserrors.ReferenceError{
			Ref:     dangling[0].Ref,
			Path:    dangling[0].Path,
			Message: fmt.Sprintf("component schema is not defined (%d dangling)", len(dangling)),
		}
	}
	return nil
}

// Serialize renders doc in the configured format.
// It panics if doc contains a $ref that does not resolve.
func Serialize(doc *openapi.Document, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, doc, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders doc to w in the configured format.
// It panics if doc contains a $ref that does not resolve.
func Write(w io.Writer, doc *openapi.Document, opts ...Option) error {
	cfg := &config{format: FormatJSON}
	for _, opt := range opts {
		opt(cfg)
	}

	if doc == nil {
		return &oaserrors.ConfigError{Option: "document", Message: "document is nil"}
	}
	if err := CheckReferences(doc); err != nil {
		panic(err)
	}

	switch cfg.format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if cfg.indent != "" {
			enc.SetIndent("", cfg.indent)
		}
		if err := enc.Encode(doc); err != nil {
			return &oaserrors.SerializationError{Format: string(FormatJSON), Cause: err}
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(doc); err != nil {
			return &oaserrors.SerializationError{Format: string(FormatYAML), Cause: err}
		}
		if err := enc.Close(); err != nil {
			return &oaserrors.SerializationError{Format: string(FormatYAML), Cause: err}
		}
	default:
		return &oaserrors.ConfigError{Option: "format", Value: string(cfg.format), Message: "must be json or yaml"}
	}
	return nil
}
