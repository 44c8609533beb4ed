package catalog

import "strings"

// DemoIssuer is the issuer shown by the static discovery example.
const DemoIssuer = "https://demo.identityserver.io"

// DiscoveryExample is the illustrative payload attached to the discovery response.
// Field order follows a typical IdentityServer discovery document.
type DiscoveryExample struct {
	Issuer                             string   `json:"issuer" yaml:"issuer"`
	JwksURI                            string   `json:"jwks_uri" yaml:"jwks_uri"`
	AuthorizationEndpoint              string   `json:"authorization_endpoint" yaml:"authorization_endpoint"`
	TokenEndpoint                      string   `json:"token_endpoint" yaml:"token_endpoint"`
	UserinfoEndpoint                   string   `json:"userinfo_endpoint" yaml:"userinfo_endpoint"`
	EndSessionEndpoint                 string   `json:"end_session_endpoint" yaml:"end_session_endpoint"`
	CheckSessionIframe                 string   `json:"check_session_iframe" yaml:"check_session_iframe"`
	RevocationEndpoint                 string   `json:"revocation_endpoint" yaml:"revocation_endpoint"`
	IntrospectionEndpoint              string   `json:"introspection_endpoint" yaml:"introspection_endpoint"`
	DeviceAuthorizationEndpoint        string   `json:"device_authorization_endpoint" yaml:"device_authorization_endpoint"`
	FrontchannelLogoutSupported        bool     `json:"frontchannel_logout_supported" yaml:"frontchannel_logout_supported"`
	FrontchannelLogoutSessionSupported bool     `json:"frontchannel_logout_session_supported" yaml:"frontchannel_logout_session_supported"`
	BackchannelLogoutSupported         bool     `json:"backchannel_logout_supported" yaml:"backchannel_logout_supported"`
	BackchannelLogoutSessionSupported  bool     `json:"backchannel_logout_session_supported" yaml:"backchannel_logout_session_supported"`
	ScopesSupported                    []string `json:"scopes_supported" yaml:"scopes_supported"`
	ClaimsSupported                    []string `json:"claims_supported" yaml:"claims_supported"`
	GrantTypesSupported                []string `json:"grant_types_supported" yaml:"grant_types_supported"`
	ResponseTypesSupported             []string `json:"response_types_supported" yaml:"response_types_supported"`
	ResponseModesSupported             []string `json:"response_modes_supported" yaml:"response_modes_supported"`
	TokenEndpointAuthMethodsSupported  []string `json:"token_endpoint_auth_methods_supported" yaml:"token_endpoint_auth_methods_supported"`
	IDTokenSigningAlgValuesSupported   []string `json:"id_token_signing_alg_values_supported" yaml:"id_token_signing_alg_values_supported"`
	SubjectTypesSupported              []string `json:"subject_types_supported" yaml:"subject_types_supported"`
	CodeChallengeMethodsSupported      []string `json:"code_challenge_methods_supported" yaml:"code_challenge_methods_supported"`
	RequestParameterSupported          bool     `json:"request_parameter_supported" yaml:"request_parameter_supported"`
}

// NewDiscoveryExample returns the example discovery payload for an issuer.
// Endpoint URLs are derived from the issuer so the example never drifts from
// the document's server entry.
func NewDiscoveryExample(issuer string) *DiscoveryExample {
	base := strings.TrimRight(issuer, "/")
	return &DiscoveryExample{
		Issuer:                             issuer,
		JwksURI:                            base + "/.well-known/openid-configuration/jwks",
		AuthorizationEndpoint:              base + "/connect/authorize",
		TokenEndpoint:                      base + "/connect/token",
		UserinfoEndpoint:                   base + "/connect/userinfo",
		EndSessionEndpoint:                 base + "/connect/endsession",
		CheckSessionIframe:                 base + "/connect/checksession",
		RevocationEndpoint:                 base + "/connect/revocation",
		IntrospectionEndpoint:              base + "/connect/introspect",
		DeviceAuthorizationEndpoint:        base + "/connect/deviceauthorization",
		FrontchannelLogoutSupported:        true,
		FrontchannelLogoutSessionSupported: true,
		BackchannelLogoutSupported:         true,
		BackchannelLogoutSessionSupported:  true,
		ScopesSupported: []string{
			"openid", "profile", "email", "api",
			"policyserver.runtime", "policyserver.management", "offline_access",
		},
		ClaimsSupported: []string{
			"sub", "name", "family_name", "given_name", "middle_name", "nickname",
			"preferred_username", "profile", "picture", "website", "gender",
			"birthdate", "zoneinfo", "locale", "updated_at", "email", "email_verified",
		},
		GrantTypesSupported: []string{
			"authorization_code", "client_credentials", "refresh_token", "implicit",
			"password", "urn:ietf:params:oauth:grant-type:device_code",
		},
		ResponseTypesSupported: []string{
			"code", "token", "id_token", "id_token token",
			"code id_token", "code token", "code id_token token",
		},
		ResponseModesSupported:            []string{"form_post", "query", "fragment"},
		TokenEndpointAuthMethodsSupported: []string{"client_secret_basic", "client_secret_post"},
		IDTokenSigningAlgValuesSupported:  []string{"RS256"},
		SubjectTypesSupported:             []string{"public"},
		CodeChallengeMethodsSupported:     []string{"plain", "S256"},
		RequestParameterSupported:         true,
	}
}
