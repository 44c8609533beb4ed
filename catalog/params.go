package catalog

import (
	"slices"

	"github.com/erraggy/idpdocs/openapi"
)

// Fixed value sets for enumerated OAuth2 and OpenID Connect parameters.
var (
	ResponseTypes = []string{
		"id_token",
		"token",
		"id_token token",
		"code",
		"code id_token",
		"code id_token token",
	}

	ResponseModes = []string{"form_post"}

	Prompts = []string{"none", "login"}

	CodeChallengeMethods = []string{"plain", "S256"}

	GrantTypes = []string{
		"authorization_code",
		"client_credentials",
		"password",
		"refresh_token",
		"urn:ietf:params:oauth:grant-type:device_code",
	}

	// AcrValues lists the proprietary acr_values IdentityServer special cases.
	AcrValues = []string{"idp:name_of_idp", "tenant:name_of_tenant"}

	// AuthorizeErrors lists the error codes an authorize response may carry.
	AuthorizeErrors = []string{
		"invalid_request",
		"unauthorized_client",
		"access_denied",
		"unsupported_response_type",
		"server_error",
		"temporarily_unavailable",
		"interaction_required",
		"login_required",
		"account_selection_required",
		"invalid_request_uri",
		"invalid_request_object",
		"request_not_supported",
		"request_uri_not_supported",
		"registration_not_supported",
		"invalid_target",
	}
)

// ParamSpec is one row of a parameter table.
// Type defaults to string. For arrays, Enum constrains the items.
type ParamSpec struct {
	Name        string
	Required    bool
	Type        string
	Enum        []string
	Description string
}

// AuthorizeParams returns the authorize endpoint parameter table in declaration order.
func AuthorizeParams() []ParamSpec {
	return []ParamSpec{
		{Name: "client_id", Required: true, Description: "identifier of the client"},
		{Name: "request", Description: "instead of providing all parameters as individual query string parameters, you can provide a subset or all of them as a JWT"},
		{Name: "request_uri", Description: "URL of a pre-packaged JWT containing request parameters"},
		{Name: "scope", Required: true, Description: "one or more registered scopes"},
		{Name: "redirect_uri", Required: true, Description: "must exactly match one of the allowed redirect URIs for that client"},
		{Name: "response_type", Required: true, Enum: ResponseTypes, Description: "the response type: code, identity token and/or access token"},
		{Name: "response_mode", Enum: ResponseModes, Description: "sends the token response as a form post instead of a fragment encoded redirect"},
		{Name: "state", Description: "identityserver will echo back the state value on the token response, this is for round tripping state between client and provider, correlating request and response and CSRF/replay protection. (recommended)"},
		{Name: "nonce", Description: "identityserver will echo back the nonce value in the identity token, this is for replay protection. Required for identity tokens via implicit grant"},
		{Name: "prompt", Enum: Prompts, Description: "the login UI will be shown or not"},
		{Name: "code_challenge", Description: "sends the code challenge for PKCE"},
		{Name: "code_challenge_method", Enum: CodeChallengeMethods, Description: "plain indicates that the challenge is using plain text (not recommended) S256 indicates the challenge is hashed with SHA256"},
		{Name: "login_hint", Description: "can be used to pre-fill the username field on the login page"},
		{Name: "ui_locales", Description: "gives a hint about the desired display language of the login UI"},
		{Name: "max_age", Description: "if the user's logon session exceeds the max age (in seconds), the login UI will be shown"},
		{Name: "acr_values", Type: openapi.TypeArray, Enum: AcrValues, Description: "allows passing in additional authentication related information - identityserver special cases the following proprietary acr_values"},
	}
}

// TokenParams returns the token endpoint form body table in declaration order.
// Conditional requiredness (code for authorization_code, username for password,
// and so on) is documented in descriptions and not encoded in the schema.
func TokenParams() []ParamSpec {
	return []ParamSpec{
		{Name: "client_id", Required: true, Description: "client identifier"},
		{Name: "client_secret", Required: true, Description: "client secret either in the post body, or as a basic authentication header. Optional."},
		{Name: "grant_type", Required: true, Enum: GrantTypes, Description: "custom grant types can be added"},
		{Name: "scope", Description: "one or more registered scopes. If not specified, a token for all explicitly allowed scopes will be issued."},
		{Name: "redirect_uri", Description: "required for the authorization_code grant type"},
		{Name: "code", Description: "the authorization code (required for authorization_code grant type)"},
		{Name: "code_verifier", Description: "PKCE proof key"},
		{Name: "username", Description: "resource owner username (required for password grant type)"},
		{Name: "password", Description: "resource owner password (required for password grant type)"},
		{Name: "refresh_token", Description: "the refresh token (required for refresh_token grant type)"},
		{Name: "device_code", Description: "the device code (required for urn:ietf:params:oauth:grant-type:device_code grant type)"},
		{Name: "acr_values", Type: openapi.TypeArray, Enum: AcrValues, Description: "allows passing in additional authentication related information for the password grant type - identityserver special cases the following proprietary acr_values"},
	}
}

// schema renders the value schema of a parameter. Enum slices are cloned so
// documents built from the same table never share backing arrays.
func (p ParamSpec) schema() *openapi.Schema {
	typ := p.Type
	if typ == "" {
		typ = openapi.TypeString
	}
	if typ == openapi.TypeArray {
		return &openapi.Schema{
			Type:  openapi.TypeArray,
			Items: &openapi.Schema{Type: openapi.TypeString, Enum: slices.Clone(p.Enum)},
		}
	}
	return &openapi.Schema{Type: typ, Enum: slices.Clone(p.Enum)}
}

// queryParameters renders a parameter table as an operation's query parameter list.
func queryParameters(specs []ParamSpec) []*openapi.Parameter {
	params := make([]*openapi.Parameter, 0, len(specs))
	for _, spec := range specs {
		params = append(params, &openapi.Parameter{
			Name:        spec.Name,
			In:          openapi.ParameterInQuery,
			Description: spec.Description,
			Required:    spec.Required,
			Schema:      spec.schema(),
		})
	}
	return params
}

// formSchema renders a parameter table as an object schema for a form body.
// Property and required sets come from the same rows as queryParameters.
func formSchema(specs []ParamSpec) *openapi.Schema {
	schema := &openapi.Schema{
		Type:       openapi.TypeObject,
		Properties: make(map[string]*openapi.Schema, len(specs)),
	}
	for _, spec := range specs {
		prop := spec.schema()
		prop.Description = spec.Description
		schema.Properties[spec.Name] = prop
		if spec.Required {
			schema.Required = append(schema.Required, spec.Name)
		}
	}
	return schema
}

// formBody renders a parameter table as a request body for each given form
// encoding. Every media type gets its own schema tree.
func formBody(specs []ParamSpec, mediaTypes ...string) *openapi.RequestBody {
	body := &openapi.RequestBody{
		Required: true,
		Content:  make(map[string]*openapi.MediaType, len(mediaTypes)),
	}
	for _, mt := range mediaTypes {
		body.Content[mt] = &openapi.MediaType{Schema: formSchema(specs)}
	}
	return body
}

func cloneParams(specs []ParamSpec) []ParamSpec {
	out := make([]ParamSpec, len(specs))
	for i, spec := range specs {
		spec.Enum = slices.Clone(spec.Enum)
		out[i] = spec
	}
	return out
}
