package openapi

import (
	"fmt"
	"slices"
	"strings"
)

// SchemaRefPrefix is the JSON pointer prefix of component schema references.
const SchemaRefPrefix = "#/components/schemas/"

// SchemaRef returns a reference node pointing at the named component schema.
func SchemaRef(name string) *Schema {
	return &Schema{Ref: SchemaRefPrefix + name}
}

// RefName returns the component name of a schema reference, or false when the
// reference does not point into Components.Schemas.
func RefName(ref string) (string, bool) {
	name, ok := strings.CutPrefix(ref, SchemaRefPrefix)
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}

// RefUse is a single $ref occurrence in a document.
type RefUse struct {
	// Ref is the reference string (e.g., "#/components/schemas/TokenResponse")
	Ref string
	// Path is the JSON path of the schema node holding the reference
	Path string
}

// ResolveRef returns the component schema a reference points at.
func (d *Document) ResolveRef(ref string) (*Schema, bool) {
	name, ok := RefName(ref)
	if !ok || d == nil || d.Components == nil {
		return nil, false
	}
	s, ok := d.Components.Schemas[name]
	return s, ok && s != nil
}

// Refs returns every $ref in the document in a stable order.
func (d *Document) Refs() []RefUse {
	var refs []RefUse
	d.WalkSchemas(func(path string, s *Schema) {
		if s.Ref != "" {
			refs = append(refs, RefUse{Ref: s.Ref, Path: path})
		}
	})
	return refs
}

// UnresolvedRefs returns the references that do not resolve against Components.Schemas.
func (d *Document) UnresolvedRefs() []RefUse {
	var dangling []RefUse
	for _, use := range d.Refs() {
		if _, ok := d.ResolveRef(use.Ref); !ok {
			dangling = append(dangling, use)
		}
	}
	return dangling
}

// WalkSchemas calls fn for every schema node reachable from the document:
// component schemas, parameter schemas, request bodies and responses, and
// their nested properties, items and additionalProperties. Map keys are
// visited in sorted order so the traversal is deterministic.
func (d *Document) WalkSchemas(fn func(path string, s *Schema)) {
	if d == nil {
		return
	}
	if d.Components != nil {
		for _, name := range sortedKeys(d.Components.Schemas) {
			walkSchema(fmt.Sprintf("$.components.schemas.%s", name), d.Components.Schemas[name], fn)
		}
	}
	for _, path := range sortedKeys(d.Paths) {
		item := d.Paths[path]
		ops := item.Operations()
		for _, method := range sortedKeys(ops) {
			walkOperation(fmt.Sprintf("$.paths['%s'].%s", path, method), ops[method], fn)
		}
	}
}

func walkOperation(base string, op *Operation, fn func(string, *Schema)) {
	for i, param := range op.Parameters {
		if param != nil {
			walkSchema(fmt.Sprintf("%s.parameters[%d].schema", base, i), param.Schema, fn)
		}
	}
	if op.RequestBody != nil {
		walkContent(base+".requestBody.content", op.RequestBody.Content, fn)
	}
	if op.Responses == nil {
		return
	}
	if op.Responses.Default != nil {
		walkContent(base+".responses.default.content", op.Responses.Default.Content, fn)
	}
	for _, code := range sortedKeys(op.Responses.Codes) {
		if resp := op.Responses.Codes[code]; resp != nil {
			walkContent(fmt.Sprintf("%s.responses['%s'].content", base, code), resp.Content, fn)
		}
	}
}

func walkContent(base string, content map[string]*MediaType, fn func(string, *Schema)) {
	for _, mt := range sortedKeys(content) {
		if media := content[mt]; media != nil {
			walkSchema(fmt.Sprintf("%s['%s'].schema", base, mt), media.Schema, fn)
		}
	}
}

func walkSchema(path string, s *Schema, fn func(string, *Schema)) {
	if s == nil {
		return
	}
	fn(path, s)
	for _, name := range sortedKeys(s.Properties) {
		walkSchema(path+".properties."+name, s.Properties[name], fn)
	}
	walkSchema(path+".items", s.Items, fn)
	if ap, ok := s.AdditionalProperties.(*Schema); ok {
		walkSchema(path+".additionalProperties", ap, fn)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
