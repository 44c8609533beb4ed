package issues

import (
	"testing"

	"github.com/erraggy/idpdocs/internal/severity"
	"github.com/stretchr/testify/assert"
)

func TestIssueString(t *testing.T) {
	tests := []struct {
		name     string
		issue    Issue
		expected string
	}{
		{
			name: "error without endpoint",
			issue: Issue{
				Path:     "$.info.title",
				Message:  "title is required",
				Severity: severity.SeverityError,
			},
			expected: "✗ $.info.title: title is required",
		},
		{
			name: "warning with operation id",
			issue: Issue{
				Path:     "$.paths['/connect/token'].post",
				Message:  "duplicate enum value",
				Severity: severity.SeverityWarning,
				Endpoint: &EndpointContext{Method: "POST", Path: "/connect/token", OperationID: "postToken"},
			},
			expected: "⚠ $.paths['/connect/token'].post (operationId: postToken): duplicate enum value",
		},
		{
			name: "empty endpoint context is ignored",
			issue: Issue{
				Path:     "$.servers",
				Message:  "expected one server",
				Severity: severity.SeverityInfo,
				Endpoint: &EndpointContext{},
			},
			expected: "ℹ $.servers: expected one server",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.issue.String())
		})
	}
}

func TestIssueIsError(t *testing.T) {
	assert.True(t, Issue{Severity: severity.SeverityError}.IsError())
	assert.False(t, Issue{Severity: severity.SeverityWarning}.IsError())
}
