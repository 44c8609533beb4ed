package catalog

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/erraggy/idpdocs/oaserrors"
	"github.com/erraggy/idpdocs/openapi"
)

// Builder assembles IdentityServer documents from the endpoint catalog.
type Builder struct {
	info            openapi.Info
	authorizeParams []ParamSpec
	tokenParams     []ParamSpec
	endpoints       []Endpoint
	schemas         map[string]SchemaFunc
	unsupported     UnsupportedMode
	staticExample   bool
	logger          openapi.Logger
}

// New creates a Builder with the given options applied over the defaults.
func New(opts ...Option) *Builder {
	cfg := defaultBuilderConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	b := &Builder{
		info:            cfg.info,
		authorizeParams: cfg.authorizeParams,
		tokenParams:     cfg.tokenParams,
		schemas:         maps.Clone(cfg.schemas),
		unsupported:     cfg.unsupported,
		staticExample:   cfg.staticExample,
		logger:          cfg.logger,
	}
	b.endpoints = b.resolveEndpoints(cfg.overrides)
	return b
}

// resolveEndpoints attaches the built-in path item builders to the base catalog
// and applies WithEndpoint overrides by path.
func (b *Builder) resolveEndpoints(overrides []Endpoint) []Endpoint {
	endpoints := baseEndpoints()
	for i := range endpoints {
		e := &endpoints[i]
		switch e.Name {
		case EndpointDiscovery:
			e.Item = b.discoveryItem(*e)
		case EndpointAuthorize:
			e.Item = b.authorizeItem(*e)
		case EndpointToken:
			e.Item = b.tokenItem(*e)
		}
	}

	for _, o := range overrides {
		idx := slices.IndexFunc(endpoints, func(e Endpoint) bool { return e.Path == o.Path })
		if idx >= 0 {
			endpoints[idx] = o
		} else {
			endpoints = append(endpoints, o)
		}
	}
	return endpoints
}

// Endpoints returns a copy of the builder's catalog in document order.
func (b *Builder) Endpoints() []Endpoint {
	return slices.Clone(b.endpoints)
}

// Unsupported returns the catalog entries tagged StatusUnsupported.
func (b *Builder) Unsupported() []Endpoint {
	var out []Endpoint
	for _, e := range b.endpoints {
		if !e.Supported() {
			out = append(out, e)
		}
	}
	return out
}

// Mode returns the builder's unsupported endpoint mode.
func (b *Builder) Mode() UnsupportedMode {
	return b.unsupported
}

// Build assembles the document for issuerURI.
//
// The issuer is used verbatim as the single server URL and, unless
// WithStaticDiscoveryExample is set, as the base of the discovery example.
// An empty issuer returns a *oaserrors.ConfigError. In strict mode every
// unsupported endpoint yields a *oaserrors.UnsupportedEndpointError.
func (b *Builder) Build(issuerURI string) (*openapi.Document, error) {
	if strings.TrimSpace(issuerURI) == "" {
		return nil, fmt.Errorf("catalog: %w", &oaserrors.ConfigError{
			Option:  "issuer",
			Message: "issuer URI must not be empty",
		})
	}

	if b.unsupported == StrictUnsupported {
		var errs []error
		for _, e := range b.Unsupported() {
			errs = append(errs, &oaserrors.UnsupportedEndpointError{Name: e.Name, Path: e.Path})
		}
		if len(errs) > 0 {
			return nil, fmt.Errorf("catalog: %w", errors.Join(errs...))
		}
	}

	info := b.info
	doc := &openapi.Document{
		OpenAPI:    openapi.Version,
		Info:       &info,
		Servers:    []*openapi.Server{{URL: issuerURI}},
		Paths:      make(openapi.Paths, len(b.endpoints)),
		Components: &openapi.Components{Schemas: b.buildSchemas()},
	}

	for _, e := range b.endpoints {
		switch {
		case e.Supported():
			if e.Item == nil {
				return nil, fmt.Errorf("catalog: %w", &oaserrors.ConfigError{
					Option:  "endpoint",
					Value:   e.Path,
					Message: "supported endpoint has no path item builder",
				})
			}
			doc.Paths[e.Path] = e.Item(issuerURI)
		case b.unsupported == PlaceholderUnsupported:
			doc.Paths[e.Path] = placeholderItem(e)
		default:
			b.logger.Debug("omitting unsupported endpoint", "endpoint", e.Name, "path", e.Path)
		}
	}

	// Refuse to hand out a document the serializer would reject.
	if dangling := doc.UnresolvedRefs(); len(dangling) > 0 {
		return nil, fmt.Errorf("catalog: %w", &oaserrors.ReferenceError{
			Ref:     dangling[0].Ref,
			Path:    dangling[0].Path,
			Message: "component schema is not defined",
		})
	}

	b.logger.Debug("built document",
		"issuer", issuerURI,
		"paths", len(doc.Paths),
		"schemas", len(doc.Components.Schemas),
		"unsupported_mode", b.unsupported.String())
	return doc, nil
}

// Generate implements Generator. It honours context cancellation before building.
func (b *Builder) Generate(ctx context.Context, issuerURI string) (*openapi.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return b.Build(issuerURI)
}

func (b *Builder) buildSchemas() map[string]*openapi.Schema {
	schemas := make(map[string]*openapi.Schema, len(b.schemas))
	for name, fn := range b.schemas {
		if fn == nil {
			continue
		}
		schemas[name] = fn()
	}
	return schemas
}

var defaultBuilder = New()

// Build assembles the default document for issuerURI.
func Build(issuerURI string) (*openapi.Document, error) {
	return defaultBuilder.Build(issuerURI)
}

// Endpoints returns the default endpoint catalog in document order.
func Endpoints() []Endpoint {
	return defaultBuilder.Endpoints()
}

// Unsupported returns the default catalog's unsupported endpoints.
func Unsupported() []Endpoint {
	return defaultBuilder.Unsupported()
}
