// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes idpdocs document generation as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/idpdocs"
)

const serverInstructions = `idpdocs MCP server: generates, lists and validates OpenAPI 3.0 documents for IdentityServer4 endpoints.

Configuration: defaults come from IDPDOCS_* environment variables set in your MCP client config.

Key settings:
- IDPDOCS_ISSUER: issuer used when a call names none
- IDPDOCS_UNSUPPORTED_MODE (default: omit): omit, placeholder or strict
- IDPDOCS_STATIC_EXAMPLE (default: false): use the fixed demo discovery example
- IDPDOCS_CACHE_ENABLED (default: true), IDPDOCS_CACHE_TTL (default: 15m)
- IDPDOCS_MAX_INLINE_SIZE (default: 1MiB): larger documents are summarized instead of returned inline
- IDPDOCS_VALIDATE_STRICT, IDPDOCS_VALIDATE_NO_WARNINGS (default: false)`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		docCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "idpdocs", Version: idpdocs.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_document",
		Description: "Generate the OpenAPI 3.0 document describing an IdentityServer4 deployment at the given issuer. Returns JSON (default) or YAML. Use query with a gjson path (e.g. paths./connect/token.post) to return only part of the document; large documents are summarized unless a query is given.",
	}, handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_endpoints",
		Description: "List the IdentityServer4 endpoints in the catalog with their paths, documentation links and whether the document describes them (supported) or not (unsupported). Filter with status.",
	}, handleListEndpoints)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_document",
		Description: "Generate the document for an issuer and validate it: references resolve, examples match their schemas, status codes and media types are well-formed. Returns errors and warnings with JSON path locations. Use offset/limit to paginate.",
	}, handleValidate)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.DefaultLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.DefaultLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// pathPattern matches absolute filesystem paths so they never reach MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
