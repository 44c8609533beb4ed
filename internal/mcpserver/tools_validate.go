package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/idpdocs/validator"
)

type validateInput struct {
	docInput
	Strict     *bool `json:"strict,omitempty"      jsonschema:"Enable strict validation mode"`
	NoWarnings *bool `json:"no_warnings,omitempty" jsonschema:"Suppress warnings from output"`
	Examples   *bool `json:"examples,omitempty"    jsonschema:"Validate response examples against their schemas (default true)"`
	Offset     int   `json:"offset,omitempty"      jsonschema:"Skip the first N errors/warnings (for pagination)"`
	Limit      int   `json:"limit,omitempty"       jsonschema:"Maximum number of errors/warnings to return (default 100). Applied independently to errors and warnings arrays."`
}

type validateIssue struct {
	Path     string `json:"path"`
	Message  string `json:"message"`
	Field    string `json:"field,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
}

type validateOutput struct {
	Valid        bool            `json:"valid"`
	Version      string          `json:"version"`
	ErrorCount   int             `json:"error_count"`
	WarningCount int             `json:"warning_count"`
	Returned     int             `json:"returned"`
	Errors       []validateIssue `json:"errors,omitempty"`
	Warnings     []validateIssue `json:"warnings,omitempty"`
}

func toIssue(e validator.ValidationError) validateIssue {
	issue := validateIssue{Path: e.Path, Message: e.Message, Field: e.Field}
	if e.Endpoint != nil {
		issue.Endpoint = e.Endpoint.String()
	}
	return issue
}

func handleValidate(ctx context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	// Apply config defaults when input fields are omitted (nil).
	strict := cfg.ValidateStrict
	if input.Strict != nil {
		strict = *input.Strict
	}
	noWarnings := cfg.ValidateNoWarnings
	if input.NoWarnings != nil {
		noWarnings = *input.NoWarnings
	}
	examples := true
	if input.Examples != nil {
		examples = *input.Examples
	}

	doc, err := input.resolve(ctx)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	result, err := validator.Validate(doc,
		validator.WithStrictMode(strict),
		validator.WithIncludeWarnings(!noWarnings),
		validator.WithExamples(examples),
	)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	output := validateOutput{
		Valid:        result.Valid,
		Version:      result.Version,
		ErrorCount:   result.ErrorCount,
		WarningCount: result.WarningCount,
	}
	output.Errors = makeSlice[validateIssue](len(result.Errors))
	for _, e := range result.Errors {
		output.Errors = append(output.Errors, toIssue(e))
	}
	output.Warnings = makeSlice[validateIssue](len(result.Warnings))
	for _, w := range result.Warnings {
		output.Warnings = append(output.Warnings, toIssue(w))
	}

	output.Errors = paginate(output.Errors, input.Offset, input.Limit)
	output.Warnings = paginate(output.Warnings, input.Offset, input.Limit)
	output.Returned = len(output.Errors) + len(output.Warnings)

	return nil, output, nil
}
