// Package handler serves the generated OpenAPI document over HTTP.
//
// A [Handler] answers GET and HEAD at /swagger/v1/swagger.json (configurable
// with [WithPath]). The issuer the document describes is read from the
// request context (see [WithIssuer]); when absent it falls back to the
// configured static issuer, then to the scheme and host the request was
// addressed to. Without [WithGenerator] the handler builds documents with
// catalog.New().
//
// JSON is the default body. A format=yaml query parameter or an Accept header
// preferring application/yaml selects YAML.
//
// Mount it directly, wrap an existing handler with [Handler.Middleware], or
// use [Handler.Router] for a chi router that also recovers panics and, when
// Prometheus instrumentation is configured, serves /metrics.
package handler
