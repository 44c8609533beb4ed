package catalog

import (
	"maps"

	"github.com/erraggy/idpdocs/openapi"
)

// UnsupportedMode selects how unsupported endpoints appear in a built document.
type UnsupportedMode int

const (
	// OmitUnsupported leaves unsupported paths out of the document. This is the default.
	OmitUnsupported UnsupportedMode = iota
	// PlaceholderUnsupported emits a path item marked x-not-implemented with no operations.
	PlaceholderUnsupported
	// StrictUnsupported makes Build fail with an UnsupportedEndpointError per unsupported endpoint.
	StrictUnsupported
)

// String returns the mode name used by the CLI and MCP server.
func (m UnsupportedMode) String() string {
	switch m {
	case OmitUnsupported:
		return "omit"
	case PlaceholderUnsupported:
		return "placeholder"
	case StrictUnsupported:
		return "strict"
	default:
		return "unknown"
	}
}

// ParseUnsupportedMode parses "omit", "placeholder" or "strict".
func ParseUnsupportedMode(s string) (UnsupportedMode, bool) {
	switch s {
	case "", "omit":
		return OmitUnsupported, true
	case "placeholder":
		return PlaceholderUnsupported, true
	case "strict":
		return StrictUnsupported, true
	default:
		return OmitUnsupported, false
	}
}

// DefaultInfo returns the info block of the IdentityServer4 document.
func DefaultInfo() openapi.Info {
	return openapi.Info{
		Title:       "IdentityServer4",
		Description: "IdentityServer4 is an OpenID Connect and OAuth 2.0 framework for ASP.NET Core.",
		Version:     "v1",
	}
}

// Option configures a Builder.
type Option func(*builderConfig)

type builderConfig struct {
	info            openapi.Info
	authorizeParams []ParamSpec
	tokenParams     []ParamSpec
	overrides       []Endpoint
	schemas         map[string]SchemaFunc
	unsupported     UnsupportedMode
	staticExample   bool
	logger          openapi.Logger
}

func defaultBuilderConfig() *builderConfig {
	return &builderConfig{
		info:            DefaultInfo(),
		authorizeParams: AuthorizeParams(),
		tokenParams:     TokenParams(),
		schemas:         defaultSchemas(),
		logger:          openapi.NopLogger{},
	}
}

// WithInfo replaces the document info block.
func WithInfo(info openapi.Info) Option {
	return func(cfg *builderConfig) {
		cfg.info = info
	}
}

// WithAuthorizeParams replaces the authorize parameter table.
// Both the GET parameters and the POST form body are rendered from it.
func WithAuthorizeParams(params []ParamSpec) Option {
	return func(cfg *builderConfig) {
		cfg.authorizeParams = cloneParams(params)
	}
}

// WithTokenParams replaces the token form body table.
func WithTokenParams(params []ParamSpec) Option {
	return func(cfg *builderConfig) {
		cfg.tokenParams = cloneParams(params)
	}
}

// WithEndpoint replaces the catalog entry with the same path, or appends a new one.
// Use it to describe an endpoint the default catalog marks unsupported:
//
//	catalog.WithEndpoint(catalog.Endpoint{
//		Name:   catalog.EndpointUserInfo,
//		Path:   "/connect/userinfo",
//		Status: catalog.StatusSupported,
//		Item:   userInfoPathItem,
//	})
func WithEndpoint(e Endpoint) Option {
	return func(cfg *builderConfig) {
		cfg.overrides = append(cfg.overrides, e)
	}
}

// WithSchema adds or replaces a component schema. fn is called on every Build.
func WithSchema(name string, fn SchemaFunc) Option {
	return func(cfg *builderConfig) {
		schemas := maps.Clone(cfg.schemas)
		schemas[name] = fn
		cfg.schemas = schemas
	}
}

// WithUnsupportedMode sets how unsupported endpoints are rendered.
func WithUnsupportedMode(mode UnsupportedMode) Option {
	return func(cfg *builderConfig) {
		cfg.unsupported = mode
	}
}

// WithPlaceholders renders unsupported endpoints as x-not-implemented path items.
func WithPlaceholders() Option {
	return WithUnsupportedMode(PlaceholderUnsupported)
}

// WithStrict makes Build fail when the catalog contains unsupported endpoints.
func WithStrict() Option {
	return WithUnsupportedMode(StrictUnsupported)
}

// WithStaticDiscoveryExample shows the fixed demo.identityserver.io payload as the
// discovery example instead of one derived from the issuer.
func WithStaticDiscoveryExample() Option {
	return func(cfg *builderConfig) {
		cfg.staticExample = true
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(logger openapi.Logger) Option {
	return func(cfg *builderConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
