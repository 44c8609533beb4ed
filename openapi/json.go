package openapi

import (
	"encoding/json"

	"github.com/erraggy/idpdocs/openapi/internal/jsonhelpers"
)

// MarshalJSON implements custom JSON marshaling for Document.
// Extension fields from Extra are merged at the top level.
func (d *Document) MarshalJSON() ([]byte, error) {
	if len(d.Extra) == 0 {
		type Alias Document
		return json.Marshal((*Alias)(d))
	}

	m := map[string]any{
		"openapi": d.OpenAPI,
		"info":    d.Info,
		"paths":   d.Paths,
	}
	jsonhelpers.SetIfSliceNotEmpty(m, "servers", d.Servers)
	if d.Components != nil {
		m["components"] = d.Components
	}
	return jsonhelpers.MarshalWithExtras(m, d.Extra)
}

// MarshalJSON implements custom JSON marshaling for PathItem.
func (p *PathItem) MarshalJSON() ([]byte, error) {
	if len(p.Extra) == 0 {
		type Alias PathItem
		return json.Marshal((*Alias)(p))
	}

	m := make(map[string]any)
	jsonhelpers.SetIfNotEmpty(m, "summary", p.Summary)
	jsonhelpers.SetIfNotEmpty(m, "description", p.Description)
	if p.Get != nil {
		m["get"] = p.Get
	}
	if p.Post != nil {
		m["post"] = p.Post
	}
	return jsonhelpers.MarshalWithExtras(m, p.Extra)
}

// MarshalJSON implements custom JSON marshaling for Operation.
func (o *Operation) MarshalJSON() ([]byte, error) {
	if len(o.Extra) == 0 {
		type Alias Operation
		return json.Marshal((*Alias)(o))
	}

	m := map[string]any{
		"responses": o.Responses, // Required field, always include
	}
	jsonhelpers.SetIfSliceNotEmpty(m, "tags", o.Tags)
	jsonhelpers.SetIfNotEmpty(m, "summary", o.Summary)
	jsonhelpers.SetIfNotEmpty(m, "description", o.Description)
	if o.ExternalDocs != nil {
		m["externalDocs"] = o.ExternalDocs
	}
	jsonhelpers.SetIfNotEmpty(m, "operationId", o.OperationID)
	jsonhelpers.SetIfSliceNotEmpty(m, "parameters", o.Parameters)
	if o.RequestBody != nil {
		m["requestBody"] = o.RequestBody
	}
	return jsonhelpers.MarshalWithExtras(m, o.Extra)
}

// MarshalJSON implements custom JSON marshaling for Responses.
// Status codes are emitted as sibling keys of "default".
func (r *Responses) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(r.Codes)+1)
	if r.Default != nil {
		m["default"] = r.Default
	}
	for code, response := range r.Codes {
		m[code] = response
	}
	return json.Marshal(m)
}

// MarshalJSON implements custom JSON marshaling for Schema.
// Reference nodes are emitted as {"$ref": "..."} with every sibling dropped.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s.Ref != "" {
		return json.Marshal(map[string]string{"$ref": s.Ref})
	}
	if len(s.Extra) == 0 {
		type Alias Schema
		return json.Marshal((*Alias)(s))
	}

	m := make(map[string]any)
	jsonhelpers.SetIfNotEmpty(m, "type", s.Type)
	jsonhelpers.SetIfNotEmpty(m, "format", s.Format)
	jsonhelpers.SetIfNotEmpty(m, "description", s.Description)
	jsonhelpers.SetIfSliceNotEmpty(m, "enum", s.Enum)
	if s.Items != nil {
		m["items"] = s.Items
	}
	jsonhelpers.SetIfMapNotEmpty(m, "properties", s.Properties)
	jsonhelpers.SetIfSliceNotEmpty(m, "required", s.Required)
	jsonhelpers.SetIfNotNil(m, "additionalProperties", s.AdditionalProperties)
	return jsonhelpers.MarshalWithExtras(m, s.Extra)
}

// MarshalYAML implements yaml.Marshaler for Schema so reference nodes
// carry no sibling keys in YAML output either.
func (s *Schema) MarshalYAML() (any, error) {
	if s.Ref != "" {
		return map[string]string{"$ref": s.Ref}, nil
	}
	type Alias Schema
	return (*Alias)(s), nil
}
