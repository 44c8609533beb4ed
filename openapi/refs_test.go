package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refDoc() *Document {
	return &Document{
		OpenAPI: Version,
		Info:    &Info{Title: "t", Version: "v1"},
		Paths: Paths{
			"/connect/token": {
				Post: &Operation{
					RequestBody: &RequestBody{Content: map[string]*MediaType{
						MediaTypeForm: {Schema: &Schema{
							Type:       TypeObject,
							Properties: map[string]*Schema{"extra": SchemaRef("Extra")},
						}},
					}},
					Responses: &Responses{Codes: map[string]*Response{
						"200": {Description: "OK", Content: map[string]*MediaType{
							MediaTypeJSON: {Schema: SchemaRef("TokenResponse")},
						}},
					}},
				},
			},
			"/.well-known/openid-configuration": {
				Get: &Operation{
					Parameters: []*Parameter{{Name: "q", In: ParameterInQuery, Schema: &Schema{Type: TypeString}}},
					Responses:  &Responses{Codes: map[string]*Response{"200": {Description: "OK"}}},
				},
			},
		},
		Components: &Components{Schemas: map[string]*Schema{
			"TokenResponse": {Type: TypeObject},
		}},
	}
}

func TestRefName(t *testing.T) {
	tests := []struct {
		ref  string
		name string
		ok   bool
	}{
		{"#/components/schemas/TokenResponse", "TokenResponse", true},
		{"#/components/schemas/", "", false},
		{"#/components/responses/Error", "", false},
		{"#/components/schemas/A/properties/b", "", false},
		{"other.yaml#/components/schemas/A", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			name, ok := RefName(tt.ref)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestDocumentRefs(t *testing.T) {
	doc := refDoc()

	refs := doc.Refs()
	require.Len(t, refs, 2)
	assert.Equal(t, RefUse{
		Ref:  "#/components/schemas/Extra",
		Path: "$.paths['/connect/token'].post.requestBody.content['application/x-www-form-urlencoded'].schema.properties.extra",
	}, refs[0])
	assert.Equal(t, RefUse{
		Ref:  "#/components/schemas/TokenResponse",
		Path: "$.paths['/connect/token'].post.responses['200'].content['application/json'].schema",
	}, refs[1])

	dangling := doc.UnresolvedRefs()
	require.Len(t, dangling, 1)
	assert.Equal(t, "#/components/schemas/Extra", dangling[0].Ref)

	s, ok := doc.ResolveRef("#/components/schemas/TokenResponse")
	assert.True(t, ok)
	assert.Equal(t, TypeObject, s.Type)

	_, ok = doc.ResolveRef("#/components/schemas/Extra")
	assert.False(t, ok)
}

func TestWalkSchemasIsDeterministic(t *testing.T) {
	doc := refDoc()
	var first, second []string
	doc.WalkSchemas(func(path string, _ *Schema) { first = append(first, path) })
	doc.WalkSchemas(func(path string, _ *Schema) { second = append(second, path) })
	assert.Equal(t, first, second)
	assert.Equal(t, "$.components.schemas.TokenResponse", first[0])
	assert.Contains(t, first, "$.paths['/.well-known/openid-configuration'].get.parameters[0].schema")
}

func TestWalkSchemasNilDocument(t *testing.T) {
	var doc *Document
	assert.Empty(t, doc.Refs())
}
