package handler

import (
	"context"
	"strings"
)

type issuerKey struct{}

// WithIssuer returns a copy of ctx carrying the issuer URI the document should describe.
func WithIssuer(ctx context.Context, issuer string) context.Context {
	return context.WithValue(ctx, issuerKey{}, issuer)
}

// IssuerFromContext returns the issuer stored by WithIssuer.
// Blank issuers are reported as absent.
func IssuerFromContext(ctx context.Context) (string, bool) {
	issuer, ok := ctx.Value(issuerKey{}).(string)
	if !ok || strings.TrimSpace(issuer) == "" {
		return "", false
	}
	return issuer, true
}
