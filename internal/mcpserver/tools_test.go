package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/idpdocs/catalog"
)

const testIssuer = "https://idp.example.org"

// withConfig overrides the package config for one test.
func withConfig(t *testing.T, mutate func(*serverConfig)) {
	t.Helper()
	saved := *cfg
	mutate(cfg)
	docCache.reset()
	t.Cleanup(func() {
		*cfg = saved
		docCache.reset()
	})
}

func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	if tc, ok := r.Content[0].(*mcp.TextContent); ok {
		return tc.Text
	}
	return ""
}

func TestGenerateTool(t *testing.T) {
	withConfig(t, func(*serverConfig) {})

	res, output, err := handleGenerate(context.Background(), &mcp.CallToolRequest{}, generateInput{
		docInput: docInput{Issuer: testIssuer},
	})
	require.NoError(t, err)
	require.Nil(t, res)
	assert.Equal(t, testIssuer, output.Issuer)
	assert.Equal(t, "json", output.Format)
	assert.Equal(t, 3, output.PathCount)
	assert.Equal(t, 3, output.SchemaCount)
	assert.Equal(t, len(output.Document), output.Size)
	assert.Contains(t, output.Document, `"title":"IdentityServer4"`)
	assert.False(t, output.Truncated)
}

func TestGenerateTool_YAML(t *testing.T) {
	withConfig(t, func(*serverConfig) {})

	res, output, err := handleGenerate(context.Background(), &mcp.CallToolRequest{}, generateInput{
		docInput: docInput{Issuer: testIssuer},
		Format:   "yaml",
	})
	require.NoError(t, err)
	require.Nil(t, res)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(output.Document), &doc))
	assert.Equal(t, "3.0.1", doc["openapi"])
}

func TestGenerateTool_Query(t *testing.T) {
	withConfig(t, func(*serverConfig) {})

	res, output, err := handleGenerate(context.Background(), &mcp.CallToolRequest{}, generateInput{
		docInput: docInput{Issuer: testIssuer},
		Query:    "servers.0.url",
	})
	require.NoError(t, err)
	require.Nil(t, res)
	assert.Equal(t, testIssuer, output.QueryResult)
	assert.Empty(t, output.Document)
}

func TestGenerateTool_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   generateInput
		wantMsg string
	}{
		{"missing issuer", generateInput{}, "issuer is required"},
		{"bad format", generateInput{docInput: docInput{Issuer: testIssuer}, Format: "xml"}, "format"},
		{"query with yaml", generateInput{docInput: docInput{Issuer: testIssuer}, Format: "yaml", Query: "info"}, "query requires json"},
		{"query miss", generateInput{docInput: docInput{Issuer: testIssuer}, Query: "nope.nothing"}, "matched nothing"},
		{"bad mode", generateInput{docInput: docInput{Issuer: testIssuer, UnsupportedMode: "sometimes"}}, "unsupported_mode"},
		{"strict", generateInput{docInput: docInput{Issuer: testIssuer, UnsupportedMode: "strict"}}, "not implemented"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withConfig(t, func(*serverConfig) {})

			res, _, err := handleGenerate(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.True(t, res.IsError)
			assert.Contains(t, resultText(res), tt.wantMsg)
		})
	}
}

func TestGenerateTool_Truncated(t *testing.T) {
	withConfig(t, func(c *serverConfig) { c.MaxInlineSize = 16 })

	res, output, err := handleGenerate(context.Background(), &mcp.CallToolRequest{}, generateInput{
		docInput: docInput{Issuer: testIssuer},
	})
	require.NoError(t, err)
	require.Nil(t, res)
	assert.True(t, output.Truncated)
	assert.Empty(t, output.Document)
	assert.Greater(t, output.Size, 16)
}

func TestGenerateTool_ConfigDefaults(t *testing.T) {
	withConfig(t, func(c *serverConfig) {
		c.Issuer = "https://env.example.org"
		c.UnsupportedMode = catalog.PlaceholderUnsupported
	})

	res, output, err := handleGenerate(context.Background(), &mcp.CallToolRequest{}, generateInput{})
	require.NoError(t, err)
	require.Nil(t, res)
	assert.Equal(t, "https://env.example.org", output.Issuer)
	assert.Equal(t, 3+len(catalog.Unsupported()), output.PathCount)
}

func TestGenerateTool_Cache(t *testing.T) {
	withConfig(t, func(c *serverConfig) { c.CacheEnabled = true })

	in := generateInput{docInput: docInput{Issuer: testIssuer}}
	_, _, err := handleGenerate(context.Background(), &mcp.CallToolRequest{}, in)
	require.NoError(t, err)
	_, _, err = handleGenerate(context.Background(), &mcp.CallToolRequest{}, in)
	require.NoError(t, err)
	assert.Equal(t, 1, docCache.size())

	static := true
	in.StaticExample = &static
	_, _, err = handleGenerate(context.Background(), &mcp.CallToolRequest{}, in)
	require.NoError(t, err)
	assert.Equal(t, 2, docCache.size())
}

func TestListEndpointsTool(t *testing.T) {
	tests := []struct {
		status string
		want   int
	}{
		{"", len(catalog.Endpoints())},
		{"supported", 3},
		{"unsupported", len(catalog.Unsupported())},
	}
	for _, tt := range tests {
		t.Run("status="+tt.status, func(t *testing.T) {
			res, output, err := handleListEndpoints(context.Background(), &mcp.CallToolRequest{},
				listEndpointsInput{Status: tt.status, Issuer: testIssuer + "/"})
			require.NoError(t, err)
			require.Nil(t, res)
			assert.Equal(t, tt.want, output.Total)
			for _, e := range output.Endpoints {
				assert.True(t, strings.HasPrefix(e.URL, testIssuer+"/"), e.URL)
				if tt.status != "" {
					assert.Equal(t, tt.status, e.Status)
				}
			}
		})
	}

	res, _, err := handleListEndpoints(context.Background(), &mcp.CallToolRequest{}, listEndpointsInput{Status: "broken"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestValidateTool(t *testing.T) {
	withConfig(t, func(*serverConfig) {})

	res, output, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, validateInput{
		docInput: docInput{Issuer: testIssuer},
	})
	require.NoError(t, err)
	require.Nil(t, res)
	assert.True(t, output.Valid)
	assert.Equal(t, "3.0.1", output.Version)
	assert.Zero(t, output.ErrorCount)
	assert.Empty(t, output.Errors)
}

func TestValidateTool_Placeholders(t *testing.T) {
	withConfig(t, func(*serverConfig) {})

	in := validateInput{docInput: docInput{Issuer: testIssuer, UnsupportedMode: "placeholder"}, Limit: 2}
	res, output, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, in)
	require.NoError(t, err)
	require.Nil(t, res)
	assert.True(t, output.Valid)
	assert.Equal(t, len(catalog.Unsupported()), output.WarningCount)
	assert.Len(t, output.Warnings, 2)
	assert.Equal(t, 2, output.Returned)
	assert.Contains(t, output.Warnings[0].Endpoint, "placeholder")

	noWarnings := true
	in.NoWarnings = &noWarnings
	_, output, err = handleValidate(context.Background(), &mcp.CallToolRequest{}, in)
	require.NoError(t, err)
	assert.Zero(t, output.WarningCount)
	assert.Empty(t, output.Warnings)
}

func TestValidateTool_Error(t *testing.T) {
	withConfig(t, func(*serverConfig) {})

	res, _, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, validateInput{})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.IsError)
}

func TestPaginate(t *testing.T) {
	withConfig(t, func(c *serverConfig) {
		c.DefaultLimit = 2
		c.MaxLimit = 3
	})
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, paginate(items, 0, 0))
	assert.Equal(t, []int{3, 4, 5}, paginate(items, 2, 10))
	assert.Equal(t, []int{5}, paginate(items, 4, 3))
	assert.Nil(t, paginate(items, 5, 1))
	assert.Nil(t, paginate(items, -1, 1))
}

func TestSanitizeError(t *testing.T) {
	assert.Empty(t, sanitizeError(nil))
	assert.Equal(t, "open <path>: denied", sanitizeError(errString("open /home/me/secret.json: denied")))
}

type errString string

func (e errString) Error() string { return string(e) }
