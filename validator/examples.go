package validator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/erraggy/idpdocs/openapi"
)

// maxInlineDepth bounds reference inlining so a self-referencing component cannot recurse forever.
const maxInlineDepth = 32

// validateExamples checks each media type example against its schema.
func (v *validator) validateExamples() {
	for _, path := range sortedKeys(v.doc.Paths) {
		item := v.doc.Paths[path]
		ops := item.Operations()
		for _, method := range sortedKeys(ops) {
			op := ops[method]
			if op.Responses == nil {
				continue
			}
			ctx := &EndpointContext{Method: strings.ToUpper(method), Path: path, OperationID: op.OperationID}
			for _, code := range sortedKeys(op.Responses.Codes) {
				resp := op.Responses.Codes[code]
				if resp == nil {
					continue
				}
				for _, mt := range sortedKeys(resp.Content) {
					media := resp.Content[mt]
					if media == nil || media.Example == nil || media.Schema == nil {
						continue
					}
					at := fmt.Sprintf("$.paths['%s'].%s.responses['%s'].content['%s'].example", path, method, code, mt)
					v.validateExample(at, media, ctx)
				}
			}
		}
	}
}

func (v *validator) validateExample(path string, media *openapi.MediaType, ctx *EndpointContext) {
	schema, err := v.inline(media.Schema, 0)
	if err != nil {
		// Dangling references are already reported by validateRefs.
		return
	}
	schemaBytes, err := json.Marshal(schema)
	if err != nil {
		v.addError(path, fmt.Sprintf("failed to marshal schema: %v", err), withEndpoint(ctx))
		return
	}
	exampleBytes, err := json.Marshal(media.Example)
	if err != nil {
		v.addError(path, fmt.Sprintf("failed to marshal example: %v", err), withEndpoint(ctx))
		return
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(exampleBytes),
	)
	if err != nil {
		v.addError(path, fmt.Sprintf("schema could not be evaluated: %v", err), withEndpoint(ctx))
		return
	}
	for _, desc := range result.Errors() {
		v.addError(path, fmt.Sprintf("example does not match schema: %s: %s", desc.Field(), desc.Description()),
			withField(desc.Field()), withEndpoint(ctx))
	}
}

// inline returns a copy of s with every component reference replaced by the
// schema it points at.
func (v *validator) inline(s *openapi.Schema, depth int) (*openapi.Schema, error) {
	if s == nil {
		return nil, nil
	}
	if depth > maxInlineDepth {
		return nil, fmt.Errorf("schema nesting exceeds %d levels", maxInlineDepth)
	}
	if s.IsRef() {
		target, ok := v.doc.ResolveRef(s.Ref)
		if !ok {
			return nil, fmt.Errorf("unresolved $ref %q", s.Ref)
		}
		return v.inline(target, depth+1)
	}

	out := *s
	out.Extra = nil
	var err error
	if out.Items, err = v.inline(s.Items, depth+1); err != nil {
		return nil, err
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*openapi.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			if out.Properties[name], err = v.inline(prop, depth+1); err != nil {
				return nil, err
			}
		}
	}
	if ap, ok := s.AdditionalProperties.(*openapi.Schema); ok {
		if out.AdditionalProperties, err = v.inline(ap, depth+1); err != nil {
			return nil, err
		}
	}
	return &out, nil
}
