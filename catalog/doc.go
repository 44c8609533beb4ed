// Package catalog builds the OpenAPI 3.0 document describing IdentityServer4's
// OAuth2 and OpenID Connect endpoints.
//
// The endpoint set is fixed: discovery, authorize, token, userinfo, device
// authorization, introspection, revocation, end session and check session.
// Discovery, authorize and token are fully described. The remaining endpoints
// are carried in the catalog with [StatusUnsupported] and are never given a
// guessed schema; see [UnsupportedMode] for how they surface in a document.
//
// # Quick Start
//
//	doc, err := catalog.Build("https://idp.example.org")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(doc.Servers[0].URL)
//
// # Parameter Tables
//
// The authorize endpoint's GET query parameters and its POST form body are both
// rendered from one ordered table of [ParamSpec] values, so the two shapes always
// expose the same names. The token endpoint's form body is rendered from its own
// table. Both tables can be replaced with [WithAuthorizeParams] and [WithTokenParams].
//
// # Customization
//
// Builders are configured with options rather than subclassing:
//
//	b := catalog.New(
//		catalog.WithPlaceholders(),
//		catalog.WithSchema("TokenResponse", myTokenSchema),
//	)
//
// A *Builder is immutable after New and safe for concurrent use; every call to
// Build allocates a fresh document.
package catalog
