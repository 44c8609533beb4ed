package catalog

import (
	"net/http"

	"github.com/erraggy/idpdocs/openapi"
)

func (e Endpoint) externalDocs() *openapi.ExternalDocs {
	if e.DocsURL == "" {
		return nil
	}
	return &openapi.ExternalDocs{Description: e.DisplayName(), URL: e.DocsURL}
}

func (e Endpoint) operation(method, description string) *openapi.Operation {
	return &openapi.Operation{
		Tags:         []string{e.Tag()},
		Summary:      e.DisplayName(),
		Description:  description,
		ExternalDocs: e.externalDocs(),
		OperationID:  e.operationID(method),
	}
}

func jsonResponse(description string, schema *openapi.Schema, example any) *openapi.Response {
	return &openapi.Response{
		Description: description,
		Content: map[string]*openapi.MediaType{
			openapi.MediaTypeJSON: {Schema: schema, Example: example},
		},
	}
}

func (b *Builder) discoveryItem(e Endpoint) PathItemFunc {
	return func(issuer string) *openapi.PathItem {
		exampleIssuer := issuer
		if b.staticExample {
			exampleIssuer = DemoIssuer
		}

		op := e.operation(http.MethodGet, "Retrieve metadata about your IdentityServer")
		op.Responses = &openapi.Responses{Codes: map[string]*openapi.Response{
			"200": jsonResponse("OK",
				openapi.SchemaRef(SchemaDiscoveryDocument),
				NewDiscoveryExample(exampleIssuer)),
		}}
		return &openapi.PathItem{Description: e.Description, Get: op}
	}
}

func (b *Builder) authorizeItem(e Endpoint) PathItemFunc {
	const description = "Request tokens or authorization codes via the browser"
	return func(string) *openapi.PathItem {
		get := e.operation(http.MethodGet, description)
		get.Parameters = queryParameters(b.authorizeParams)
		get.Responses = &openapi.Responses{Codes: map[string]*openapi.Response{
			"302": {Description: "Redirect to the client's redirect_uri carrying the authorize response"},
		}}

		post := e.operation(http.MethodPost, description)
		post.RequestBody = formBody(b.authorizeParams, openapi.MediaTypeForm, openapi.MediaTypeMultipart)
		post.Responses = &openapi.Responses{Codes: map[string]*openapi.Response{
			"200": jsonResponse("OK", openapi.SchemaRef(SchemaAuthorizeResponse), nil),
		}}

		return &openapi.PathItem{Description: e.Description, Get: get, Post: post}
	}
}

func (b *Builder) tokenItem(e Endpoint) PathItemFunc {
	return func(string) *openapi.PathItem {
		post := e.operation(http.MethodPost, e.Description)
		post.RequestBody = formBody(b.tokenParams, openapi.MediaTypeForm)
		post.Responses = &openapi.Responses{Codes: map[string]*openapi.Response{
			"200": jsonResponse("OK", openapi.SchemaRef(SchemaTokenResponse), nil),
		}}
		return &openapi.PathItem{Description: e.Description, Post: post}
	}
}

// placeholderItem marks an endpoint as known but not described. It carries no
// operations and no schema.
func placeholderItem(e Endpoint) *openapi.PathItem {
	desc := e.Description + " This endpoint is not described yet."
	if e.DocsURL != "" {
		desc += " See " + e.DocsURL
	}
	return &openapi.PathItem{
		Summary:     e.DisplayName(),
		Description: desc,
		Extra:       map[string]any{openapi.ExtensionNotImplemented: true},
	}
}
