package catalog

import (
	"context"

	"github.com/erraggy/idpdocs/openapi"
)

// Generator produces the document for an issuer.
// Hosts inject alternate implementations through this interface.
type Generator interface {
	Generate(ctx context.Context, issuerURI string) (*openapi.Document, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, issuerURI string) (*openapi.Document, error)

// Generate calls f(ctx, issuerURI).
func (f GeneratorFunc) Generate(ctx context.Context, issuerURI string) (*openapi.Document, error) {
	return f(ctx, issuerURI)
}

var _ Generator = (*Builder)(nil)
