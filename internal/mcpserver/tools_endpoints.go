package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/idpdocs/catalog"
)

type listEndpointsInput struct {
	Status string `json:"status,omitempty" jsonschema:"Filter by status: supported or unsupported"`
	Issuer string `json:"issuer,omitempty" jsonschema:"When set, each endpoint's absolute URL is included"`
}

type endpointSummary struct {
	Name    string `json:"name"`
	Display string `json:"display_name"`
	Path    string `json:"path"`
	Status  string `json:"status"`
	DocsURL string `json:"docs_url,omitempty"`
	URL     string `json:"url,omitempty"`
}

type listEndpointsOutput struct {
	Total     int               `json:"total"`
	Endpoints []endpointSummary `json:"endpoints,omitempty"`
}

func handleListEndpoints(_ context.Context, _ *mcp.CallToolRequest, input listEndpointsInput) (*mcp.CallToolResult, listEndpointsOutput, error) {
	switch input.Status {
	case "", catalog.StatusSupported.String(), catalog.StatusUnsupported.String():
	default:
		return errResult(fmt.Errorf("invalid status %q; valid values: supported, unsupported", input.Status)), listEndpointsOutput{}, nil
	}

	endpoints := catalog.Endpoints()
	output := listEndpointsOutput{Endpoints: makeSlice[endpointSummary](len(endpoints))}
	for _, e := range endpoints {
		if input.Status != "" && e.Status.String() != input.Status {
			continue
		}
		s := endpointSummary{
			Name:    e.Name,
			Display: e.DisplayName(),
			Path:    e.Path,
			Status:  e.Status.String(),
			DocsURL: e.DocsURL,
		}
		if input.Issuer != "" {
			s.URL = e.URL(input.Issuer)
		}
		output.Endpoints = append(output.Endpoints, s)
	}
	output.Total = len(output.Endpoints)
	return nil, output, nil
}
