package mcpserver

import (
	"context"
	"errors"
	"strings"

	"github.com/erraggy/idpdocs/catalog"
	"github.com/erraggy/idpdocs/oaserrors"
	"github.com/erraggy/idpdocs/openapi"
)

// docInput selects the document a tool works on.
type docInput struct {
	Issuer          string `json:"issuer,omitempty"           jsonschema:"Issuer base URI the document describes (defaults to IDPDOCS_ISSUER)"`
	UnsupportedMode string `json:"unsupported_mode,omitempty" jsonschema:"How undescribed endpoints appear: omit (default), placeholder or strict"`
	StaticExample   *bool  `json:"static_example,omitempty"   jsonschema:"Use the fixed demo discovery example instead of one derived from the issuer"`
}

// resolve builds the document, consulting the cache first.
func (in docInput) resolve(ctx context.Context) (*openapi.Document, error) {
	issuer := strings.TrimSpace(in.Issuer)
	if issuer == "" {
		issuer = cfg.Issuer
	}
	if issuer == "" {
		return nil, errors.New("issuer is required (set it in the call or via IDPDOCS_ISSUER)")
	}

	mode := cfg.UnsupportedMode
	if in.UnsupportedMode != "" {
		var ok bool
		if mode, ok = catalog.ParseUnsupportedMode(in.UnsupportedMode); !ok {
			return nil, &oaserrors.ConfigError{
				Option:  "unsupported_mode",
				Value:   in.UnsupportedMode,
				Message: "must be omit, placeholder or strict",
			}
		}
	}
	static := cfg.StaticExample
	if in.StaticExample != nil {
		static = *in.StaticExample
	}

	key := cacheKey(issuer, mode.String(), static)
	if cfg.CacheEnabled {
		if doc := docCache.get(key); doc != nil {
			return doc, nil
		}
	}

	opts := []catalog.Option{catalog.WithUnsupportedMode(mode)}
	if static {
		opts = append(opts, catalog.WithStaticDiscoveryExample())
	}
	doc, err := catalog.New(opts...).Generate(ctx, issuer)
	if err != nil {
		return nil, err
	}
	if cfg.CacheEnabled {
		docCache.put(key, doc, cfg.CacheTTL)
	}
	return doc, nil
}
