package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/tidwall/gjson"

	"github.com/erraggy/idpdocs/serializer"
)

type generateInput struct {
	docInput
	Format string `json:"format,omitempty" jsonschema:"Output format: json (default) or yaml"`
	Query  string `json:"query,omitempty"  jsonschema:"gjson path selecting part of the JSON document, e.g. components.schemas.TokenResponse"`
}

type generateOutput struct {
	Issuer      string `json:"issuer"`
	Format      string `json:"format"`
	Size        int    `json:"size"`
	PathCount   int    `json:"path_count"`
	SchemaCount int    `json:"schema_count"`
	Document    string `json:"document,omitempty"`
	Query       string `json:"query,omitempty"`
	QueryResult any    `json:"query_result,omitempty"`
	Truncated   bool   `json:"truncated,omitempty"`
}

func handleGenerate(ctx context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	format, err := serializer.ParseFormat(input.Format)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}
	if input.Query != "" && format != serializer.FormatJSON {
		return errResult(fmt.Errorf("query requires json format")), generateOutput{}, nil
	}

	doc, err := input.resolve(ctx)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}
	if err := serializer.CheckReferences(doc); err != nil {
		return errResult(err), generateOutput{}, nil
	}
	data, err := serializer.Serialize(doc, serializer.WithFormat(format))
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output := generateOutput{
		Issuer:    doc.Servers[0].URL,
		Format:    string(format),
		Size:      len(data),
		PathCount: len(doc.Paths),
	}
	if doc.Components != nil {
		output.SchemaCount = len(doc.Components.Schemas)
	}

	if input.Query != "" {
		res := gjson.GetBytes(data, input.Query)
		if !res.Exists() {
			return errResult(fmt.Errorf("query %q matched nothing", input.Query)), generateOutput{}, nil
		}
		output.Query = input.Query
		output.QueryResult = res.Value()
		return nil, output, nil
	}

	if len(data) > cfg.MaxInlineSize {
		output.Truncated = true
		return nil, output, nil
	}
	output.Document = string(data)
	return nil, output, nil
}
