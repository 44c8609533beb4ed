package openapi

// Version is the OpenAPI Specification version emitted by idpdocs.
const Version = "3.0.1"

// Schema type names.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
)

// Media types used in request and response content maps.
const (
	MediaTypeJSON      = "application/json"
	MediaTypeForm      = "application/x-www-form-urlencoded"
	MediaTypeMultipart = "multipart/form-data"
)

// ExtensionNotImplemented marks a path item whose endpoint has no description yet.
const ExtensionNotImplemented = "x-not-implemented"

// Document is the root of an OpenAPI 3.0 document.
type Document struct {
	OpenAPI    string      `yaml:"openapi" json:"openapi"` // Required: "3.0.x"
	Info       *Info       `yaml:"info" json:"info"`       // Required
	Servers    []*Server   `yaml:"servers,omitempty" json:"servers,omitempty"`
	Paths      Paths       `yaml:"paths" json:"paths"` // Required in 3.0
	Components *Components `yaml:"components,omitempty" json:"components,omitempty"`
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Info provides metadata about the API
type Info struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Version     string `yaml:"version" json:"version"`
}

// Server represents a server URL
type Server struct {
	URL         string `yaml:"url" json:"url"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Components holds reusable schemas
type Components struct {
	Schemas map[string]*Schema `yaml:"schemas,omitempty" json:"schemas,omitempty"`
}

// ExternalDocs points at additional documentation for an operation
type ExternalDocs struct {
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	URL         string `yaml:"url" json:"url"`
}

// Paths maps URL paths to their path items
type Paths map[string]*PathItem

// PathItem describes the operations available on a single path.
// Only GET and POST are used by identity provider endpoints.
type PathItem struct {
	Summary     string     `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Get         *Operation `yaml:"get,omitempty" json:"get,omitempty"`
	Post        *Operation `yaml:"post,omitempty" json:"post,omitempty"`
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Operations returns the non-nil operations of the path item keyed by lowercase method.
func (p *PathItem) Operations() map[string]*Operation {
	ops := make(map[string]*Operation, 2)
	if p == nil {
		return ops
	}
	if p.Get != nil {
		ops["get"] = p.Get
	}
	if p.Post != nil {
		ops["post"] = p.Post
	}
	return ops
}

// IsPlaceholder reports whether the path item marks an endpoint with no description.
func (p *PathItem) IsPlaceholder() bool {
	if p == nil {
		return false
	}
	v, ok := p.Extra[ExtensionNotImplemented].(bool)
	return ok && v
}

// Operation describes a single API operation on a path
type Operation struct {
	Tags         []string      `yaml:"tags,omitempty" json:"tags,omitempty"`
	Summary      string        `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description  string        `yaml:"description,omitempty" json:"description,omitempty"`
	ExternalDocs *ExternalDocs `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`
	OperationID  string        `yaml:"operationId,omitempty" json:"operationId,omitempty"`
	Parameters   []*Parameter  `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBody  *RequestBody  `yaml:"requestBody,omitempty" json:"requestBody,omitempty"`
	Responses    *Responses    `yaml:"responses" json:"responses"`
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Parameter describes a single operation parameter.
// Identity provider endpoints only use query parameters.
type Parameter struct {
	Name        string  `yaml:"name" json:"name"`
	In          string  `yaml:"in" json:"in"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool    `yaml:"required,omitempty" json:"required,omitempty"`
	Schema      *Schema `yaml:"schema,omitempty" json:"schema,omitempty"`
}

// Parameter locations
const (
	ParameterInQuery = "query"
)

// RequestBody describes a request body
type RequestBody struct {
	Description string                `yaml:"description,omitempty" json:"description,omitempty"`
	Content     map[string]*MediaType `yaml:"content" json:"content"`
	Required    bool                  `yaml:"required,omitempty" json:"required,omitempty"`
}

// MediaType provides a schema and an example for a media type
type MediaType struct {
	Schema  *Schema `yaml:"schema,omitempty" json:"schema,omitempty"`
	Example any     `yaml:"example,omitempty" json:"example,omitempty"`
}

// Responses is a container for the expected responses of an operation
type Responses struct {
	Default *Response            `yaml:"default,omitempty" json:"default,omitempty"`
	Codes   map[string]*Response `yaml:",inline" json:"-"` // Handled by custom marshaler
}

// Response describes a single response from an API operation
type Response struct {
	Description string                `yaml:"description" json:"description"`
	Content     map[string]*MediaType `yaml:"content,omitempty" json:"content,omitempty"`
}

// Schema is a node of the schema tree.
// A schema with a non-empty Ref is a reference node and marshals as {"$ref": Ref} only.
type Schema struct {
	Ref                  string             `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Type                 string             `yaml:"type,omitempty" json:"type,omitempty"`
	Format               string             `yaml:"format,omitempty" json:"format,omitempty"`
	Description          string             `yaml:"description,omitempty" json:"description,omitempty"`
	Enum                 []string           `yaml:"enum,omitempty" json:"enum,omitempty"`
	Items                *Schema            `yaml:"items,omitempty" json:"items,omitempty"`
	Properties           map[string]*Schema `yaml:"properties,omitempty" json:"properties,omitempty"`
	Required             []string           `yaml:"required,omitempty" json:"required,omitempty"`
	AdditionalProperties any                `yaml:"additionalProperties,omitempty" json:"additionalProperties,omitempty"` // bool or *Schema
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// IsRef reports whether the schema is a reference node.
func (s *Schema) IsRef() bool {
	return s != nil && s.Ref != ""
}
