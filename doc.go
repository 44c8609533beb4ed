// Package idpdocs generates OpenAPI 3.0 documents describing the endpoints of
// an IdentityServer4 deployment and serves them over HTTP.
//
// # Overview
//
// The module is split into a few packages:
//
//   - openapi: the OpenAPI 3.0 object model and the Logger interface
//   - catalog: the endpoint catalog and the document builder
//   - serializer: JSON and YAML output with reference checking
//   - handler: the HTTP handler and middleware serving /swagger/v1/swagger.json
//   - validator: structural and example validation of built documents
//   - instrumentation: OpenTelemetry metrics and tracing for the handler
//   - oaserrors: sentinel and typed errors shared by all packages
//
// The discovery, authorize and token endpoints are fully described, with
// request parameters and the DiscoveryDocument, AuthorizeResponse and
// TokenResponse component schemas. The remaining six endpoints (userinfo,
// device authorization, introspection, revocation, end session and check
// session) are listed in the catalog as unsupported. By default they are
// left out of the document. They can instead appear as placeholders, or
// make the build fail.
//
// # Quick Start
//
// Build a document for an issuer:
//
//	doc, err := catalog.Build("https://idp.example.org")
//	if err != nil {
//		log.Fatal(err)
//	}
//	data, err := serializer.Serialize(doc, serializer.WithIndent("  "))
//
// Serve it next to an existing application:
//
//	h := handler.New()
//	defer h.Close()
//	http.ListenAndServe(":8080", h.Middleware(app))
//
// The handler takes the issuer from the request context (see
// handler.WithIssuer) and otherwise derives it from the request scheme and host.
//
// # Command-Line Interface
//
//	# Print the document
//	idpdocs generate https://idp.example.org
//
//	# Serve it with Prometheus metrics
//	idpdocs serve --addr :8080 --metrics
//
//	# Validate the placeholder rendition
//	idpdocs validate --mode placeholder https://idp.example.org
//
// Install the CLI:
//
//	go install github.com/erraggy/idpdocs/cmd/idpdocs@latest
package idpdocs
