package issues

import (
	"encoding/json"
	"testing"

	"github.com/erraggy/oasexample/internal/severity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueString(t *testing.T) {
	tests := []struct {
		name  string
		issue Issue
		want  string
	}{
		{
			name:  "error",
			issue: Issue{Path: "paths./pets.get", Message: "bad params", Severity: severity.SeverityError},
			want:  "✗ paths./pets.get: bad params",
		},
		{
			name:  "critical",
			issue: Issue{Path: "apis", Message: "lost", Severity: severity.SeverityCritical},
			want:  "✗ apis: lost",
		},
		{
			name:  "warning with operation",
			issue: Issue{Path: "paths./pets.get.responses.200", Message: "no schema", Severity: severity.SeverityWarning, Operation: &OperationContext{Method: "get", Path: "/pets"}},
			want:  "⚠ paths./pets.get.responses.200 (get /pets): no schema",
		},
		{
			name:  "info with source and context",
			issue: Issue{Path: "apis[0]", Message: "dropped", Severity: severity.SeverityInfo, Source: "pet.json", Context: "authorizations are not converted"},
			want:  "ℹ apis[0] [pet.json]: dropped\n    Context: authorizations are not converted",
		},
		{
			name:  "unknown severity",
			issue: Issue{Path: "x", Message: "y", Severity: severity.Severity(9)},
			want:  "? x: y",
		},
		{
			name:  "empty operation context is ignored",
			issue: Issue{Path: "x", Message: "y", Severity: severity.SeverityInfo, Operation: &OperationContext{}},
			want:  "ℹ x: y",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.issue.String())
		})
	}
}

func TestOperationContextString(t *testing.T) {
	assert.Equal(t, "", OperationContext{}.String())
	assert.Equal(t, "(operationId: listPets)", OperationContext{Method: "get", Path: "/pets", OperationID: "listPets"}.String())
	assert.Equal(t, "(post /pets)", OperationContext{Method: "post", Path: "/pets"}.String())
	assert.Equal(t, "(path: /pets)", OperationContext{Path: "/pets"}.String())
}

func TestCount(t *testing.T) {
	list := []Issue{
		{Severity: severity.SeverityInfo},
		{Severity: severity.SeverityWarning},
		{Severity: severity.SeverityWarning},
		{Severity: severity.SeverityError},
		{Severity: severity.SeverityCritical},
	}
	assert.Equal(t, Counts{Info: 1, Warning: 2, Error: 1, Critical: 1}, Count(list))
	assert.Equal(t, Counts{}, Count(nil))
}

func TestFormatPath(t *testing.T) {
	assert.Equal(t, "", FormatPath())
	assert.Equal(t, "paths", FormatPath("paths"))
	assert.Equal(t, "paths./pets.get.parameters[0]", FormatPath("paths", "/pets", "get", "parameters[0]"))
}

func TestIssueJSON(t *testing.T) {
	data, err := json.Marshal(Issue{Path: "p", Message: "m", Severity: severity.SeverityWarning})
	require.NoError(t, err)
	assert.JSONEq(t, `{"path": "p", "message": "m", "severity": "warning"}`, string(data))
}
