package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sort"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/erraggy/idpdocs/oaserrors"
	"github.com/erraggy/idpdocs/openapi"
)

const testIssuer = "https://idp.example.org"

func mustBuild(t *testing.T, b *Builder, issuer string) *openapi.Document {
	t.Helper()
	doc, err := b.Build(issuer)
	require.NoError(t, err)
	require.NotNil(t, doc)
	return doc
}

func TestBuildServers(t *testing.T) {
	issuers := []string{
		"https://idp.example.org",
		"https://idp.example.org/",
		"http://localhost:5000",
		"https://example.com/tenants/acme",
	}
	for _, issuer := range issuers {
		t.Run(issuer, func(t *testing.T) {
			doc := mustBuild(t, New(), issuer)
			require.Len(t, doc.Servers, 1)
			assert.Equal(t, issuer, doc.Servers[0].URL)
		})
	}
}

func TestBuildEmptyIssuer(t *testing.T) {
	for _, issuer := range []string{"", "   "} {
		doc, err := Build(issuer)
		assert.Nil(t, doc)
		require.Error(t, err)
		assert.ErrorIs(t, err, oaserrors.ErrConfig)

		var cfgErr *oaserrors.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "issuer", cfgErr.Option)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	b := New()
	first := mustBuild(t, b, testIssuer)
	second := mustBuild(t, b, testIssuer)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("documents differ (-first +second):\n%s", diff)
	}

	a, err := json.Marshal(first)
	require.NoError(t, err)
	c, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(c))
}

func TestBuildDoesNotShareState(t *testing.T) {
	b := New()
	first := mustBuild(t, b, testIssuer)
	first.Components.Schemas[SchemaTokenResponse].Properties["access_token"].Type = "mutated"
	first.Paths["/connect/authorize"].Get.Parameters[5].Schema.Enum[0] = "mutated"

	second := mustBuild(t, b, testIssuer)
	assert.Equal(t, openapi.TypeString, second.Components.Schemas[SchemaTokenResponse].Properties["access_token"].Type)
	assert.Equal(t, "id_token", second.Paths["/connect/authorize"].Get.Parameters[5].Schema.Enum[0])
	assert.Equal(t, "id_token", ResponseTypes[0])
}

func TestBuildConcurrent(t *testing.T) {
	b := New(WithPlaceholders())
	var wg sync.WaitGroup
	docs := make([]*openapi.Document, 8)
	for i := range docs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doc, err := b.Build(testIssuer)
			if err == nil {
				docs[i] = doc
			}
		}(i)
	}
	wg.Wait()
	for _, doc := range docs {
		require.NotNil(t, doc)
		assert.Empty(t, cmp.Diff(docs[0], doc))
	}
}

func TestEveryRefResolves(t *testing.T) {
	for _, mode := range []UnsupportedMode{OmitUnsupported, PlaceholderUnsupported} {
		t.Run(mode.String(), func(t *testing.T) {
			doc := mustBuild(t, New(WithUnsupportedMode(mode)), testIssuer)
			refs := doc.Refs()
			require.NotEmpty(t, refs)
			for _, use := range refs {
				_, ok := doc.ResolveRef(use.Ref)
				assert.True(t, ok, "unresolved %s at %s", use.Ref, use.Path)
			}
			assert.Empty(t, doc.UnresolvedRefs())
		})
	}
}

func TestComponentSchemas(t *testing.T) {
	doc := mustBuild(t, New(), testIssuer)
	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{SchemaAuthorizeResponse, SchemaDiscoveryDocument, SchemaTokenResponse}, names)
}

func TestDiscoveryRequiredProperties(t *testing.T) {
	doc := mustBuild(t, New(), testIssuer)
	op := doc.Paths["/.well-known/openid-configuration"].Get
	require.NotNil(t, op)

	media := op.Responses.Codes["200"].Content[openapi.MediaTypeJSON]
	require.NotNil(t, media)
	schema, ok := doc.ResolveRef(media.Schema.Ref)
	require.True(t, ok)

	assert.ElementsMatch(t,
		[]string{"issuer", "subject_types_supported", "code_challenge_methods_supported"},
		schema.Required)
	assert.Equal(t, true, schema.AdditionalProperties)
	for _, name := range schema.Required {
		assert.Contains(t, schema.Properties, name)
	}
}

func TestAuthorizeGetPostParity(t *testing.T) {
	doc := mustBuild(t, New(), testIssuer)
	item := doc.Paths["/connect/authorize"]
	require.NotNil(t, item.Get)
	require.NotNil(t, item.Post)

	var getNames, requiredGet []string
	for _, p := range item.Get.Parameters {
		assert.Equal(t, openapi.ParameterInQuery, p.In)
		getNames = append(getNames, p.Name)
		if p.Required {
			requiredGet = append(requiredGet, p.Name)
		}
	}

	for _, mt := range []string{openapi.MediaTypeForm, openapi.MediaTypeMultipart} {
		t.Run(mt, func(t *testing.T) {
			body := item.Post.RequestBody.Content[mt]
			require.NotNil(t, body)
			var postNames []string
			for name := range body.Schema.Properties {
				postNames = append(postNames, name)
			}
			assert.ElementsMatch(t, getNames, postNames)
			assert.ElementsMatch(t, requiredGet, body.Schema.Required)

			for _, p := range item.Get.Parameters {
				prop := body.Schema.Properties[p.Name]
				assert.Equal(t, p.Schema.Type, prop.Type, p.Name)
				assert.Equal(t, p.Schema.Enum, prop.Enum, p.Name)
				assert.Equal(t, p.Description, prop.Description, p.Name)
			}
		})
	}
}

func TestAuthorizeParityWithCustomTable(t *testing.T) {
	params := []ParamSpec{
		{Name: "client_id", Required: true},
		{Name: "display", Enum: []string{"page", "popup"}},
	}
	doc := mustBuild(t, New(WithAuthorizeParams(params)), testIssuer)
	item := doc.Paths["/connect/authorize"]
	require.Len(t, item.Get.Parameters, 2)
	assert.Equal(t, []string{"page", "popup"}, item.Get.Parameters[1].Schema.Enum)
	form := item.Post.RequestBody.Content[openapi.MediaTypeForm].Schema
	assert.Len(t, form.Properties, 2)
	assert.Equal(t, []string{"client_id"}, form.Required)
}

func TestAuthorizeEnums(t *testing.T) {
	doc := mustBuild(t, New(), testIssuer)
	params := map[string]*openapi.Parameter{}
	for _, p := range doc.Paths["/connect/authorize"].Get.Parameters {
		params[p.Name] = p
	}

	tests := []struct {
		name string
		want []string
	}{
		{"response_type", []string{"id_token", "token", "id_token token", "code", "code id_token", "code id_token token"}},
		{"response_mode", []string{"form_post"}},
		{"prompt", []string{"none", "login"}},
		{"code_challenge_method", []string{"plain", "S256"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := params[tt.name]
			require.True(t, ok)
			assert.Equal(t, tt.want, p.Schema.Enum)
		})
	}

	acr := params["acr_values"]
	require.NotNil(t, acr)
	assert.Equal(t, openapi.TypeArray, acr.Schema.Type)
	assert.Equal(t, AcrValues, acr.Schema.Items.Enum)

	for _, name := range []string{"client_id", "scope", "redirect_uri", "response_type"} {
		assert.True(t, params[name].Required, name)
	}
	assert.False(t, params["state"].Required)
}

func TestTokenEndpoint(t *testing.T) {
	doc := mustBuild(t, New(), testIssuer)
	item := doc.Paths["/connect/token"]
	require.NotNil(t, item.Post)
	assert.Nil(t, item.Get)

	require.Len(t, item.Post.RequestBody.Content, 1)
	assert.NotContains(t, item.Post.RequestBody.Content, openapi.MediaTypeMultipart)
	body := item.Post.RequestBody.Content[openapi.MediaTypeForm].Schema
	assert.Equal(t, []string{"client_id", "client_secret", "grant_type"}, body.Required)
	assert.Equal(t, []string{
		"authorization_code",
		"client_credentials",
		"password",
		"refresh_token",
		"urn:ietf:params:oauth:grant-type:device_code",
	}, body.Properties["grant_type"].Enum)
	for _, optional := range []string{"code", "refresh_token", "device_code", "username", "password", "code_verifier"} {
		assert.Contains(t, body.Properties, optional)
		assert.NotContains(t, body.Required, optional)
	}

	assert.Equal(t, "#/components/schemas/TokenResponse",
		item.Post.Responses.Codes["200"].Content[openapi.MediaTypeJSON].Schema.Ref)
}

func TestComponentSchemasAllowAdditionalProperties(t *testing.T) {
	doc := mustBuild(t, New(), testIssuer)
	for _, name := range []string{SchemaDiscoveryDocument, SchemaAuthorizeResponse, SchemaTokenResponse} {
		t.Run(name, func(t *testing.T) {
			schema := doc.Components.Schemas[name]
			require.NotNil(t, schema)
			assert.Equal(t, true, schema.AdditionalProperties)
		})
	}
}

func TestAuthorizeResponseErrorEnum(t *testing.T) {
	doc := mustBuild(t, New(), testIssuer)
	errProp := doc.Components.Schemas[SchemaAuthorizeResponse].Properties["error"]
	require.NotNil(t, errProp)
	assert.Equal(t, AuthorizeErrors, errProp.Enum)
	assert.Len(t, errProp.Enum, 15)
}

func TestBuildJSONScenario(t *testing.T) {
	doc := mustBuild(t, New(), "https://idp.example.org")
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.True(t, gjson.ValidBytes(data))

	assert.Equal(t, "IdentityServer4", gjson.GetBytes(data, "info.title").String())
	assert.Equal(t, "https://idp.example.org", gjson.GetBytes(data, "servers.0.url").String())
	assert.Equal(t, "#/components/schemas/TokenResponse",
		gjson.GetBytes(data, `paths./connect/token.post.responses.200.content.application/json.schema.$ref`).String())
	assert.Equal(t, "3.0.1", gjson.GetBytes(data, "openapi").String())

	var types []string
	for _, v := range gjson.GetBytes(data, `paths./connect/authorize.get.parameters.#(name=="response_type").schema.enum`).Array() {
		types = append(types, v.String())
	}
	assert.Equal(t, ResponseTypes, types)
}

func TestDiscoveryExample(t *testing.T) {
	t.Run("derived from issuer", func(t *testing.T) {
		doc := mustBuild(t, New(), "https://idp.example.org/")
		example, ok := doc.Paths["/.well-known/openid-configuration"].Get.
			Responses.Codes["200"].Content[openapi.MediaTypeJSON].Example.(*DiscoveryExample)
		require.True(t, ok)
		assert.Equal(t, "https://idp.example.org/", example.Issuer)
		assert.Equal(t, "https://idp.example.org/connect/token", example.TokenEndpoint)
		assert.Equal(t, "https://idp.example.org/.well-known/openid-configuration/jwks", example.JwksURI)
	})

	t.Run("static demo payload", func(t *testing.T) {
		doc := mustBuild(t, New(WithStaticDiscoveryExample()), testIssuer)
		example := doc.Paths["/.well-known/openid-configuration"].Get.
			Responses.Codes["200"].Content[openapi.MediaTypeJSON].Example.(*DiscoveryExample)
		assert.Equal(t, DemoIssuer, example.Issuer)
		assert.Equal(t, testIssuer, doc.Servers[0].URL)
	})
}

func TestUnsupportedModes(t *testing.T) {
	unsupportedPaths := []string{
		"/connect/userinfo",
		"/connect/deviceauthorization",
		"/connect/introspect",
		"/connect/revocation",
		"/connect/endsession",
		"/connect/checksession",
	}

	t.Run("omit", func(t *testing.T) {
		doc := mustBuild(t, New(), testIssuer)
		assert.Len(t, doc.Paths, 3)
		for _, p := range unsupportedPaths {
			assert.NotContains(t, doc.Paths, p)
		}
	})

	t.Run("placeholder", func(t *testing.T) {
		doc := mustBuild(t, New(WithPlaceholders()), testIssuer)
		assert.Len(t, doc.Paths, 9)
		for _, p := range unsupportedPaths {
			item := doc.Paths[p]
			require.NotNil(t, item, p)
			assert.True(t, item.IsPlaceholder(), p)
			assert.Empty(t, item.Operations(), p)
		}
		assert.Contains(t, doc.Paths["/connect/userinfo"].Description, "userinfo.html")
	})

	t.Run("strict", func(t *testing.T) {
		doc, err := New(WithStrict()).Build(testIssuer)
		assert.Nil(t, doc)
		require.Error(t, err)
		assert.ErrorIs(t, err, oaserrors.ErrNotImplemented)

		var unsupported *oaserrors.UnsupportedEndpointError
		require.True(t, errors.As(err, &unsupported))
		assert.Equal(t, EndpointUserInfo, unsupported.Name)
		for _, p := range unsupportedPaths {
			assert.Contains(t, err.Error(), p)
		}
	})
}

func TestWithEndpointOverride(t *testing.T) {
	userinfo := Endpoint{
		Name:   EndpointUserInfo,
		Path:   "/connect/userinfo",
		Status: StatusSupported,
		Item: func(string) *openapi.PathItem {
			return &openapi.PathItem{Get: &openapi.Operation{
				Responses: &openapi.Responses{Codes: map[string]*openapi.Response{"200": {Description: "OK"}}},
			}}
		},
	}

	b := New(WithEndpoint(userinfo), WithPlaceholders())
	assert.Len(t, b.Unsupported(), 5)
	doc := mustBuild(t, b, testIssuer)
	assert.False(t, doc.Paths["/connect/userinfo"].IsPlaceholder())
	assert.NotNil(t, doc.Paths["/connect/userinfo"].Get)

	t.Run("appends new paths", func(t *testing.T) {
		b := New(WithEndpoint(Endpoint{Name: "ciba", Path: "/connect/ciba", Status: StatusUnsupported}), WithPlaceholders())
		endpoints := b.Endpoints()
		assert.Equal(t, "/connect/ciba", endpoints[len(endpoints)-1].Path)
		doc := mustBuild(t, b, testIssuer)
		assert.True(t, doc.Paths["/connect/ciba"].IsPlaceholder())
	})

	t.Run("supported without item", func(t *testing.T) {
		_, err := New(WithEndpoint(Endpoint{Path: "/connect/userinfo"})).Build(testIssuer)
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
	})
}

func TestWithSchemaOverride(t *testing.T) {
	b := New(WithSchema(SchemaTokenResponse, func() *openapi.Schema {
		s := TokenResponseSchema()
		s.Required = []string{"access_token"}
		return s
	}))
	doc := mustBuild(t, b, testIssuer)
	assert.Equal(t, []string{"access_token"}, doc.Components.Schemas[SchemaTokenResponse].Required)

	// The default builder is unaffected.
	doc = mustBuild(t, New(), testIssuer)
	assert.Empty(t, doc.Components.Schemas[SchemaTokenResponse].Required)
}

func TestDanglingRefIsRejected(t *testing.T) {
	b := New(WithSchema(SchemaTokenResponse, nil))
	doc, err := b.Build(testIssuer)
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, oaserrors.ErrReference)

	var refErr *oaserrors.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "#/components/schemas/TokenResponse", refErr.Ref)
}

func TestWithInfo(t *testing.T) {
	doc := mustBuild(t, New(WithInfo(openapi.Info{Title: "Acme IdP", Version: "v2"})), testIssuer)
	assert.Equal(t, "Acme IdP", doc.Info.Title)
	assert.Equal(t, "v2", doc.Info.Version)

	doc = mustBuild(t, New(), testIssuer)
	assert.Equal(t, DefaultInfo(), *doc.Info)
}

func TestGenerate(t *testing.T) {
	doc, err := New().Generate(context.Background(), testIssuer)
	require.NoError(t, err)
	assert.Equal(t, testIssuer, doc.Servers[0].URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = New().Generate(ctx, testIssuer)
	assert.ErrorIs(t, err, context.Canceled)

	var g Generator = GeneratorFunc(func(_ context.Context, issuer string) (*openapi.Document, error) {
		return Build(issuer)
	})
	doc, err = g.Generate(context.Background(), testIssuer)
	require.NoError(t, err)
	assert.Len(t, doc.Paths, 3)
}

func TestOperationMetadata(t *testing.T) {
	doc := mustBuild(t, New(), testIssuer)

	discovery := doc.Paths["/.well-known/openid-configuration"]
	assert.Equal(t, "getDiscovery", discovery.Get.OperationID)
	assert.Equal(t, "Discovery Endpoint", discovery.Get.ExternalDocs.Description)
	assert.Equal(t, "http://docs.identityserver.io/en/latest/endpoints/discovery.html", discovery.Get.ExternalDocs.URL)

	authorize := doc.Paths["/connect/authorize"]
	assert.Equal(t, "getAuthorize", authorize.Get.OperationID)
	assert.Equal(t, "postAuthorize", authorize.Post.OperationID)
	assert.Contains(t, authorize.Get.Responses.Codes, "302")

	token := doc.Paths["/connect/token"]
	assert.Equal(t, "postToken", token.Post.OperationID)
	assert.Equal(t, []string{"Token"}, token.Post.Tags)

	var ids []string
	for _, item := range doc.Paths {
		for _, op := range item.Operations() {
			ids = append(ids, op.OperationID)
		}
	}
	slices.Sort(ids)
	assert.Equal(t, slices.Compact(slices.Clone(ids)), ids, "operation ids must be unique")
}
