package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/erraggy/oasexample/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupParamsFlags(t *testing.T) {
	fs, flags := SetupParamsFlags()
	assert.Equal(t, FormatJSON, flags.Format)

	require.NoError(t, fs.Parse([]string{"--path", "/pets", "-m", "GET", "-f", "yaml", "--correct-required-key", "in.json"}))
	assert.Equal(t, "/pets", flags.Path)
	assert.Equal(t, "GET", flags.Method)
	assert.Equal(t, FormatYAML, flags.Format)
	assert.True(t, flags.CorrectRequiredKey)
}

func TestRunParams(t *testing.T) {
	t.Run("all operations", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := runParams(context.Background(), []string{"../../../testdata/petstore-3.0.yaml"}, nil, &stdout, &stderr)
		require.NoError(t, err)

		out, err := document.DecodeObject(stdout.Bytes())
		require.NoError(t, err)
		assert.Equal(t, []string{"/pets", "/pets/{petId}"}, out.Keys())
		pets, _ := out.Object("/pets")
		assert.Equal(t, []string{"get", "post"}, pets.Keys())
	})

	t.Run("one operation", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := runParams(context.Background(), []string{"--path", "/pets", "-m", "GET", "--correct-required-key", "../../../testdata/petstore-2.0.json"}, nil, &stdout, &stderr)
		require.NoError(t, err)

		out, err := document.DecodeObject(stdout.Bytes())
		require.NoError(t, err)
		rec, err := document.ResolvePointer(out, "#/~1pets/get")
		require.NoError(t, err)
		data, err := document.Marshal(rec)
		require.NoError(t, err)
		assert.Equal(t,
			`{"bodyParamsType":"object","bodyParams":[],"queryParams":[{"name":"limit","type":["number"],"required":false},{"name":"status","type":["string"],"required":true}]}`,
			string(data))
	})

	t.Run("failed operations are reported", func(t *testing.T) {
		src := `{"swagger": "2.0", "paths": {"/x": {"get": {"parameters": [{"name": "q", "in": "query"}]}, "put": {}}}}`
		var stdout, stderr bytes.Buffer
		err := runParams(context.Background(), []string{"-"}, strings.NewReader(src), &stdout, &stderr)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 operation(s)")
		assert.Contains(t, stderr.String(), "✗ GET /x:")

		out, derr := document.DecodeObject(stdout.Bytes())
		require.NoError(t, derr)
		x, _ := out.Object("/x")
		assert.Equal(t, []string{"put"}, x.Keys())
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name    string
			args    []string
			stdin   string
			wantErr string
		}{
			{name: "no args", args: []string{}, wantErr: "requires exactly one"},
			{name: "bad format", args: []string{"-f", "text", "a.json"}, wantErr: "invalid format"},
			{name: "bad method", args: []string{"-m", "fetch", "a.json"}, wantErr: "invalid method"},
			{name: "swagger 1.x", args: []string{"../../../testdata/swagger12/api-docs.json"}, wantErr: "use annotate"},
			{name: "no match", args: []string{"--path", "/nope", "../../../testdata/petstore-2.0.json"}, wantErr: "no operation matches"},
			{name: "bad stdin", args: []string{"-"}, stdin: "[1, 2]", wantErr: "parsing stdin"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				var stdout, stderr bytes.Buffer
				err := runParams(context.Background(), tt.args, strings.NewReader(tt.stdin), &stdout, &stderr)
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			})
		}
	})
}
