package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsTool(t *testing.T) {
	specCache.reset()

	t.Run("all operations", func(t *testing.T) {
		res, output, err := handleParams(context.Background(), &mcp.CallToolRequest{}, paramsInput{
			Spec: specInput{File: "../../testdata/petstore-3.0.yaml"},
		})
		require.NoError(t, err)
		require.Nil(t, res)
		assert.Equal(t, "oas3", output.Dialect)
		require.Len(t, output.Operations, 3)
		assert.Zero(t, output.FailedCount)

		create := output.Operations[1]
		assert.Equal(t, "/pets", create.Path)
		assert.Equal(t, "post", create.Method)
		assert.Equal(t, "createPet", create.OperationID)
		assert.Equal(t, "object", create.BodyParamsType)
		require.Len(t, create.BodyParams, 4)
		assert.Equal(t, paramEntry{Name: "id", Type: []string{"number"}, Required: true, RequiredKey: "required"}, create.BodyParams[0])
	})

	t.Run("filtered swagger 2.0 query params", func(t *testing.T) {
		_, output, err := handleParams(context.Background(), &mcp.CallToolRequest{}, paramsInput{
			Spec:   specInput{File: "../../testdata/petstore-2.0.json"},
			Path:   "/pets",
			Method: "GET",
		})
		require.NoError(t, err)
		require.Len(t, output.Operations, 1)
		op := output.Operations[0]
		assert.Equal(t, "listPets", op.OperationID)
		require.Len(t, op.QueryParams, 2)
		assert.Equal(t, "requierd", op.QueryParams[0].RequiredKey)
		assert.Equal(t, "status", op.QueryParams[1].Name)
		assert.True(t, op.QueryParams[1].Required)
	})

	t.Run("failures are listed", func(t *testing.T) {
		src := `{"swagger": "2.0", "paths": {"/x": {"get": {"parameters": [{"name": "q", "in": "query"}]}}}}`
		_, output, err := handleParams(context.Background(), &mcp.CallToolRequest{}, paramsInput{Spec: specInput{Content: src}})
		require.NoError(t, err)
		assert.Equal(t, 1, output.FailedCount)
		require.Len(t, output.Operations, 1)
		assert.NotEmpty(t, output.Operations[0].Error)
		assert.Empty(t, output.Operations[0].QueryParams)
	})

	t.Run("no paths", func(t *testing.T) {
		_, output, err := handleParams(context.Background(), &mcp.CallToolRequest{}, paramsInput{Spec: specInput{Content: `{"openapi": "3.0.0"}`}})
		require.NoError(t, err)
		assert.Empty(t, output.Operations)
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name  string
			input paramsInput
		}{
			{name: "bad method", input: paramsInput{Spec: specInput{Content: `{"swagger": "2.0"}`}, Method: "fetch"}},
			{name: "swagger 1.x", input: paramsInput{Spec: specInput{File: "../../testdata/swagger12/api-docs.json"}}},
			{name: "no input", input: paramsInput{}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				res, _, err := handleParams(context.Background(), &mcp.CallToolRequest{}, tt.input)
				require.NoError(t, err)
				require.NotNil(t, res)
				assert.True(t, res.IsError)
			})
		}
	})
}
