package catalog

import (
	"slices"

	"github.com/erraggy/idpdocs/openapi"
)

// Component schema names.
const (
	SchemaDiscoveryDocument = "DiscoveryDocument"
	SchemaAuthorizeResponse = "AuthorizeResponse"
	SchemaTokenResponse     = "TokenResponse"
)

// SchemaFunc returns a freshly allocated component schema.
type SchemaFunc func() *openapi.Schema

// propertyGroup is a set of property names sharing one schema shape.
type propertyGroup struct {
	names []string
	shape func() *openapi.Schema
}

func stringProp() *openapi.Schema { return &openapi.Schema{Type: openapi.TypeString} }

func boolProp() *openapi.Schema { return &openapi.Schema{Type: openapi.TypeBoolean} }

func stringArrayProp() *openapi.Schema {
	return &openapi.Schema{Type: openapi.TypeArray, Items: stringProp()}
}

func objectSchema(groups ...propertyGroup) *openapi.Schema {
	s := &openapi.Schema{
		Type:       openapi.TypeObject,
		Properties: make(map[string]*openapi.Schema),
	}
	for _, g := range groups {
		for _, name := range g.names {
			s.Properties[name] = g.shape()
		}
	}
	return s
}

// DiscoveryDocumentSchema describes the OpenID Connect discovery metadata.
// Unknown metadata keys are allowed.
func DiscoveryDocumentSchema() *openapi.Schema {
	s := objectSchema(
		propertyGroup{shape: stringProp, names: []string{
			"issuer",
			"jwks_uri",
			"authorization_endpoint",
			"token_endpoint",
			"userinfo_endpoint",
			"end_session_endpoint",
			"check_session_iframe",
			"revocation_endpoint",
			"introspection_endpoint",
			"device_authorization_endpoint",
			"mtls_endpoint_aliases",
		}},
		propertyGroup{shape: boolProp, names: []string{
			"frontchannel_logout_supported",
			"frontchannel_logout_session_supported",
			"backchannel_logout_supported",
			"backchannel_logout_session_supported",
			"request_parameter_supported",
			"request_uri_parameter_supported",
			"tls_client_certificate_bound_access_tokens",
		}},
		propertyGroup{shape: stringArrayProp, names: []string{
			"scopes_supported",
			"claims_supported",
			"grant_types_supported",
			"response_types_supported",
			"response_modes_supported",
			"token_endpoint_auth_methods_supported",
			"id_token_signing_alg_values_supported",
			"subject_types_supported",
			"code_challenge_methods_supported",
		}},
	)
	s.Required = []string{"issuer", "subject_types_supported", "code_challenge_methods_supported"}
	s.AdditionalProperties = true
	return s
}

// AuthorizeResponseSchema describes the values returned to the redirect URI.
func AuthorizeResponseSchema() *openapi.Schema {
	s := objectSchema(propertyGroup{shape: stringProp, names: []string{
		"scope",
		"code",
		"access_token",
		"token_endpoint",
		"expires_in",
		"token_type",
		"refresh_token",
		"id_token",
		"state",
		"error",
		"error_description",
	}})
	s.Properties["error"].Enum = slices.Clone(AuthorizeErrors)
	s.AdditionalProperties = true
	return s
}

// TokenResponseSchema describes the token endpoint's JSON response.
func TokenResponseSchema() *openapi.Schema {
	s := objectSchema(propertyGroup{shape: stringProp, names: []string{
		"access_token",
		"expires_in",
		"token_type",
		"refresh_token",
		"id_token",
		"scope",
		"error",
		"error_description",
	}})
	s.AdditionalProperties = true
	return s
}

// defaultSchemas returns the component schema constructors keyed by name.
func defaultSchemas() map[string]SchemaFunc {
	return map[string]SchemaFunc{
		SchemaDiscoveryDocument: DiscoveryDocumentSchema,
		SchemaAuthorizeResponse: AuthorizeResponseSchema,
		SchemaTokenResponse:     TokenResponseSchema,
	}
}
