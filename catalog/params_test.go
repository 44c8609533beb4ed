package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/idpdocs/openapi"
)

func TestParamSpecSchema(t *testing.T) {
	tests := []struct {
		name string
		spec ParamSpec
		want *openapi.Schema
	}{
		{
			name: "defaults to string",
			spec: ParamSpec{Name: "nonce"},
			want: &openapi.Schema{Type: openapi.TypeString},
		},
		{
			name: "enum",
			spec: ParamSpec{Name: "prompt", Enum: Prompts},
			want: &openapi.Schema{Type: openapi.TypeString, Enum: []string{"none", "login"}},
		},
		{
			name: "array enum goes to items",
			spec: ParamSpec{Name: "acr_values", Type: openapi.TypeArray, Enum: AcrValues},
			want: &openapi.Schema{
				Type:  openapi.TypeArray,
				Items: &openapi.Schema{Type: openapi.TypeString, Enum: []string{"idp:name_of_idp", "tenant:name_of_tenant"}},
			},
		},
		{
			name: "explicit type",
			spec: ParamSpec{Name: "max_age", Type: openapi.TypeInteger},
			want: &openapi.Schema{Type: openapi.TypeInteger},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.spec.schema())
		})
	}
}

func TestFormSchemaMatchesQueryParameters(t *testing.T) {
	specs := AuthorizeParams()
	params := queryParameters(specs)
	form := formSchema(specs)

	require.Len(t, params, len(specs))
	require.Len(t, form.Properties, len(specs))
	for i, spec := range specs {
		assert.Equal(t, spec.Name, params[i].Name)
		assert.Equal(t, spec.Required, params[i].Required)
		assert.Contains(t, form.Properties, spec.Name)
	}
	assert.Equal(t, []string{"client_id", "scope", "redirect_uri", "response_type"}, form.Required)
}

func TestFormBodyMediaTypes(t *testing.T) {
	body := formBody(AuthorizeParams(), openapi.MediaTypeForm, openapi.MediaTypeMultipart)
	assert.True(t, body.Required)
	require.Contains(t, body.Content, openapi.MediaTypeForm)
	require.Contains(t, body.Content, openapi.MediaTypeMultipart)
	assert.NotSame(t, body.Content[openapi.MediaTypeForm].Schema, body.Content[openapi.MediaTypeMultipart].Schema)

	body = formBody(TokenParams(), openapi.MediaTypeForm)
	assert.Len(t, body.Content, 1)
	assert.Contains(t, body.Content, openapi.MediaTypeForm)
}

func TestCloneParams(t *testing.T) {
	original := []ParamSpec{{Name: "prompt", Enum: []string{"none"}}}
	cloned := cloneParams(original)
	cloned[0].Enum[0] = "login"
	assert.Equal(t, "none", original[0].Enum[0])
}

func TestTableNamesAreUnique(t *testing.T) {
	for name, table := range map[string][]ParamSpec{"authorize": AuthorizeParams(), "token": TokenParams()} {
		t.Run(name, func(t *testing.T) {
			seen := map[string]bool{}
			for _, spec := range table {
				assert.False(t, seen[spec.Name], "duplicate %s", spec.Name)
				seen[spec.Name] = true
				assert.NotEmpty(t, spec.Description, spec.Name)
			}
		})
	}
}
