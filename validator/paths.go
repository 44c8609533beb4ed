package validator

import (
	"fmt"
	"strings"

	"github.com/erraggy/idpdocs/internal/httputil"
	"github.com/erraggy/idpdocs/openapi"
)

func (v *validator) validatePaths() {
	if len(v.doc.Paths) == 0 {
		v.addError("$.paths", "document has no paths", withField("paths"))
		return
	}
	operationIDs := make(map[string]string)
	for _, path := range sortedKeys(v.doc.Paths) {
		item := v.doc.Paths[path]
		base := fmt.Sprintf("$.paths['%s']", path)
		if !strings.HasPrefix(path, "/") {
			v.addError(base, "path must begin with '/'", withField("paths"), withValue(path))
		}
		if item == nil {
			v.addError(base, "path item is null")
			continue
		}
		ops := item.Operations()
		if item.IsPlaceholder() {
			v.addWarning(base, "endpoint is not described",
				withEndpoint(&EndpointContext{Path: path, Placeholder: true}))
			if len(ops) > 0 {
				v.addError(base, "placeholder path item must not declare operations",
					withEndpoint(&EndpointContext{Path: path, Placeholder: true}))
			}
			continue
		}
		if len(ops) == 0 {
			v.addError(base, "path item has no operations", withEndpoint(&EndpointContext{Path: path}))
			continue
		}
		for _, method := range sortedKeys(ops) {
			op := ops[method]
			ctx := &EndpointContext{Method: strings.ToUpper(method), Path: path, OperationID: op.OperationID}
			opPath := base + "." + method
			if op.OperationID != "" {
				if prev, dup := operationIDs[op.OperationID]; dup {
					v.addError(opPath+".operationId",
						fmt.Sprintf("duplicate operationId %q, first used at %s", op.OperationID, prev),
						withField("operationId"), withValue(op.OperationID), withEndpoint(ctx))
				} else {
					operationIDs[op.OperationID] = opPath
				}
			}
			v.validateOperation(opPath, op, ctx)
		}
	}
}

func (v *validator) validateOperation(path string, op *openapi.Operation, ctx *EndpointContext) {
	v.validateParameters(path, op.Parameters, ctx)

	if op.RequestBody != nil {
		if len(op.RequestBody.Content) == 0 {
			v.addError(path+".requestBody.content", "request body must declare at least one media type",
				withField("content"), withEndpoint(ctx))
		}
		v.validateContent(path+".requestBody.content", op.RequestBody.Content, ctx)
	}

	if op.Responses == nil || (op.Responses.Default == nil && len(op.Responses.Codes) == 0) {
		v.addError(path+".responses", "operation must declare at least one response",
			withField("responses"), withEndpoint(ctx))
		return
	}
	for _, code := range sortedKeys(op.Responses.Codes) {
		respPath := fmt.Sprintf("%s.responses['%s']", path, code)
		if !httputil.ValidateStatusCode(code) {
			v.addError(respPath, fmt.Sprintf("invalid HTTP status code: %s", code),
				withValue(code), withEndpoint(ctx))
		} else if v.cfg.strictMode && !strings.HasPrefix(code, "x-") && !strings.Contains(code, "XX") &&
			!httputil.IsStandardStatusCode(code) {
			v.addWarning(respPath, fmt.Sprintf("non-standard HTTP status code: %s", code),
				withValue(code), withEndpoint(ctx))
		}
		v.validateResponse(respPath, op.Responses.Codes[code], ctx)
	}
	if op.Responses.Default != nil {
		v.validateResponse(path+".responses.default", op.Responses.Default, ctx)
	}
}

func (v *validator) validateResponse(path string, resp *openapi.Response, ctx *EndpointContext) {
	if resp == nil {
		v.addError(path, "response is null", withEndpoint(ctx))
		return
	}
	if resp.Description == "" {
		v.addError(path+".description", "response must have a description",
			withField("description"), withEndpoint(ctx))
	}
	v.validateContent(path+".content", resp.Content, ctx)
}

func (v *validator) validateContent(path string, content map[string]*openapi.MediaType, ctx *EndpointContext) {
	for _, mt := range sortedKeys(content) {
		if !httputil.IsValidMediaType(mt) {
			v.addError(fmt.Sprintf("%s['%s']", path, mt), fmt.Sprintf("invalid media type: %s", mt),
				withValue(mt), withEndpoint(ctx))
		}
	}
}

// validateParameters requires query parameters with unique names.
func (v *validator) validateParameters(path string, params []*openapi.Parameter, ctx *EndpointContext) {
	seen := make(map[string]bool, len(params))
	for i, p := range params {
		pPath := fmt.Sprintf("%s.parameters[%d]", path, i)
		if p == nil {
			v.addError(pPath, "parameter is null", withEndpoint(ctx))
			continue
		}
		if p.Name == "" {
			v.addError(pPath+".name", "parameter must have a name", withField("name"), withEndpoint(ctx))
		}
		if p.In != openapi.ParameterInQuery {
			v.addError(pPath+".in", fmt.Sprintf("unsupported parameter location %q", p.In),
				withField("in"), withValue(p.In), withEndpoint(ctx))
		}
		if seen[p.Name] {
			v.addError(pPath+".name", fmt.Sprintf("duplicate parameter %q", p.Name),
				withField("name"), withValue(p.Name), withEndpoint(ctx))
		}
		seen[p.Name] = true
		if p.Schema == nil {
			v.addError(pPath+".schema", "parameter must have a schema", withField("schema"), withEndpoint(ctx))
		}
	}
}
