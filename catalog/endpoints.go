package catalog

import (
	"strings"

	"github.com/erraggy/idpdocs/openapi"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status tags an endpoint as described or not.
type Status int

const (
	// StatusSupported marks an endpoint with a full description.
	StatusSupported Status = iota
	// StatusUnsupported marks an endpoint that is known but not described.
	StatusUnsupported
)

// String returns "supported" or "unsupported".
func (s Status) String() string {
	switch s {
	case StatusSupported:
		return "supported"
	case StatusUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// PathItemFunc builds the path item of a supported endpoint for an issuer.
type PathItemFunc func(issuer string) *openapi.PathItem

// Endpoint is one entry of the endpoint catalog.
type Endpoint struct {
	// Name is the snake_case catalog name (e.g., "device_authorization")
	Name string
	// Path is the URL path relative to the issuer
	Path string
	// Description is the path item description
	Description string
	// DocsURL links the IdentityServer documentation page, when one exists
	DocsURL string
	// Status tells whether Item is expected
	Status Status
	// Item builds the path item; nil for unsupported endpoints
	Item PathItemFunc
}

// Supported reports whether the endpoint has a description.
func (e Endpoint) Supported() bool {
	return e.Status == StatusSupported
}

// DisplayName returns the human name of the endpoint, e.g. "Device Authorization Endpoint".
func (e Endpoint) DisplayName() string {
	return e.title() + " Endpoint"
}

// Tag returns the operation tag used for the endpoint, e.g. "Discovery".
func (e Endpoint) Tag() string {
	return e.title()
}

// title creates a Caser per call; Casers are stateful and not safe to share.
func (e Endpoint) title() string {
	return cases.Title(language.English).String(strings.ReplaceAll(e.Name, "_", " "))
}

// operationID returns a camelCase operation id such as "getDiscovery" or "postDeviceAuthorization".
func (e Endpoint) operationID(method string) string {
	return strings.ToLower(method) + strings.ReplaceAll(e.title(), " ", "")
}

// URL joins the issuer and the endpoint path.
func (e Endpoint) URL(issuer string) string {
	return strings.TrimRight(issuer, "/") + e.Path
}

// Catalog names of the IdentityServer endpoints.
const (
	EndpointDiscovery           = "discovery"
	EndpointAuthorize           = "authorize"
	EndpointToken               = "token"
	EndpointUserInfo            = "userinfo"
	EndpointDeviceAuthorization = "device_authorization"
	EndpointIntrospection       = "introspection"
	EndpointRevocation          = "revocation"
	EndpointEndSession          = "end_session"
	EndpointCheckSession        = "check_session"
)

const docsBase = "http://docs.identityserver.io/en/latest/endpoints/"

// baseEndpoints returns the fixed catalog without Item functions, in document order.
func baseEndpoints() []Endpoint {
	return []Endpoint{
		{
			Name:        EndpointDiscovery,
			Path:        "/.well-known/openid-configuration",
			Description: "The discovery endpoint can be used to retrieve metadata about your IdentityServer - it returns information like the issuer name, key material, supported scopes etc.",
			DocsURL:     docsBase + "discovery.html",
		},
		{
			Name:        EndpointAuthorize,
			Path:        "/connect/authorize",
			Description: "The authorize endpoint can be used to request tokens or authorization codes via the browser. This process typically involves authentication of the end-user and optionally consent.",
			DocsURL:     docsBase + "authorize.html",
		},
		{
			Name:        EndpointToken,
			Path:        "/connect/token",
			Description: "The token endpoint can be used to programmatically request tokens.",
			DocsURL:     docsBase + "token.html",
		},
		{
			Name:        EndpointUserInfo,
			Path:        "/connect/userinfo",
			Description: "The UserInfo endpoint can be used to retrieve identity information about a user.",
			DocsURL:     docsBase + "userinfo.html",
			Status:      StatusUnsupported,
		},
		{
			Name:        EndpointDeviceAuthorization,
			Path:        "/connect/deviceauthorization",
			Description: "The device authorization endpoint can be used to request device and user codes.",
			DocsURL:     docsBase + "device_authorization.html",
			Status:      StatusUnsupported,
		},
		{
			Name:        EndpointIntrospection,
			Path:        "/connect/introspect",
			Description: "The introspection endpoint is an implementation of RFC 7662 and can be used to validate reference tokens.",
			DocsURL:     docsBase + "introspection.html",
			Status:      StatusUnsupported,
		},
		{
			Name:        EndpointRevocation,
			Path:        "/connect/revocation",
			Description: "The revocation endpoint allows revoking access tokens (reference tokens only) and refresh tokens as described in RFC 7009.",
			DocsURL:     docsBase + "revocation.html",
			Status:      StatusUnsupported,
		},
		{
			Name:        EndpointEndSession,
			Path:        "/connect/endsession",
			Description: "The end session endpoint can be used to trigger single sign-out.",
			DocsURL:     docsBase + "endsession.html",
			Status:      StatusUnsupported,
		},
		{
			Name:        EndpointCheckSession,
			Path:        "/connect/checksession",
			Description: "The check session endpoint serves the OpenID Connect session management iframe.",
			Status:      StatusUnsupported,
		},
	}
}
