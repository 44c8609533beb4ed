package issues

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpointContextString(t *testing.T) {
	tests := []struct {
		name     string
		ctx      EndpointContext
		expected string
	}{
		{"empty", EndpointContext{}, ""},
		{"operation id wins", EndpointContext{Method: "GET", Path: "/connect/authorize", OperationID: "getAuthorize"}, "(operationId: getAuthorize)"},
		{"method and path", EndpointContext{Method: "POST", Path: "/connect/token"}, "(POST /connect/token)"},
		{"path only", EndpointContext{Path: "/connect/userinfo"}, "(path: /connect/userinfo)"},
		{"placeholder", EndpointContext{Path: "/connect/revocation", Placeholder: true}, "(placeholder: /connect/revocation)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.ctx.String())
			assert.Equal(t, tt.expected == "", tt.ctx.IsEmpty())
		})
	}
}
