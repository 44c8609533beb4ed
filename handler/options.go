package handler

import (
	"github.com/erraggy/idpdocs/catalog"
	"github.com/erraggy/idpdocs/instrumentation"
	"github.com/erraggy/idpdocs/openapi"
)

// DefaultPath is where the document is served.
const DefaultPath = "/swagger/v1/swagger.json"

// Option configures a Handler.
type Option func(*Handler)

// WithGenerator sets the document generator. A nil generator keeps the default catalog builder.
func WithGenerator(g catalog.Generator) Option {
	return func(h *Handler) {
		if g != nil {
			h.generator = g
		}
	}
}

// WithPath sets the URL path the document is served at.
// Default: DefaultPath
func WithPath(path string) Option {
	return func(h *Handler) {
		if path != "" {
			h.path = path
		}
	}
}

// WithLogger sets the logger for request failures.
// Default: openapi.NopLogger
func WithLogger(logger openapi.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithInstrumentation enables metrics and tracing.
func WithInstrumentation(inst *instrumentation.Instrumentation) Option {
	return func(h *Handler) {
		h.inst = inst
	}
}

// WithRateLimit limits each client to requestsPerSecond with the given burst.
// Clients are identified by IP address.
func WithRateLimit(requestsPerSecond, burst int) Option {
	return func(h *Handler) {
		h.rateLimit = requestsPerSecond
		h.rateBurst = burst
	}
}

// WithTrustProxy trusts X-Forwarded-* headers from a fronting proxy: rate-limited
// clients are identified by the leftmost X-Forwarded-For address, and the derived
// issuer honours X-Forwarded-Proto and X-Forwarded-Host.
func WithTrustProxy(trust bool) Option {
	return func(h *Handler) {
		h.trustProxy = trust
	}
}

// WithStaticIssuer sets the issuer used when the request context carries none.
func WithStaticIssuer(issuer string) Option {
	return func(h *Handler) {
		h.staticIssuer = issuer
	}
}

// WithIndent pretty-prints JSON responses.
func WithIndent(indent string) Option {
	return func(h *Handler) {
		h.indent = indent
	}
}
