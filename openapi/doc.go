// Package openapi provides the OpenAPI 3.0 object model that idpdocs builds and serializes.
//
// The model covers the subset of the OpenAPI Specification needed to describe an
// identity provider's OAuth2 and OpenID Connect endpoints: [Document], [Info],
// [Server], [Components], [PathItem], [Operation], [Parameter], [RequestBody],
// [MediaType], [Responses], [Response], [Schema] and [ExternalDocs].
//
// Every type carries both yaml and json struct tags. Types that allow specification
// extensions keep them in an Extra map, which is inlined when marshalled:
//
//	item := &openapi.PathItem{
//	    Description: "not described yet",
//	    Extra:       map[string]any{"x-not-implemented": true},
//	}
//
// # References
//
// Reusable schemas live in Components.Schemas and are referenced with [SchemaRef]:
//
//	schema := openapi.SchemaRef("TokenResponse")
//	// {"$ref": "#/components/schemas/TokenResponse"}
//
// [Document.Refs] lists every reference in a document together with its JSON path,
// and [Document.ResolveRef] looks a reference up in the components.
//
// # Logging
//
// [Logger] is the structured logging interface accepted by the catalog and handler
// packages. [NewSlogAdapter] wraps a *slog.Logger; [NopLogger] discards everything.
package openapi
