package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/oasexample/annotator"
	"github.com/erraggy/oasexample/document"
	"github.com/erraggy/oasexample/sampler"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type sampleInput struct {
	Spec     specInput `json:"spec"                jsonschema:"A JSON schema\\, or a document containing the schema"`
	Pointer  string    `json:"pointer,omitempty"   jsonschema:"JSON pointer to the schema inside the document (e.g. #/definitions/Pet). Defaults to the whole document."`
	MaxDepth int       `json:"max_depth,omitempty" jsonschema:"Maximum schema nesting sampled"`
	Compact  bool      `json:"compact,omitempty"   jsonschema:"Serialize the example on a single line"`
}

type sampleOutput struct {
	HasExample bool   `json:"has_example"`
	Example    string `json:"example,omitempty"`
	CacheHits  int    `json:"cache_hits"`
}

func handleSample(ctx context.Context, _ *mcp.CallToolRequest, input sampleInput) (*mcp.CallToolResult, sampleOutput, error) {
	if input.MaxDepth < 0 {
		return errResult(fmt.Errorf("max_depth must be non-negative")), sampleOutput{}, nil
	}

	pr, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), sampleOutput{}, nil
	}

	var schema any = pr.Document
	if input.Pointer != "" {
		schema, err = document.ResolvePointer(pr.Document, input.Pointer)
		if err != nil {
			return errResult(err), sampleOutput{}, nil
		}
	}

	maxDepth := cfg.MaxDepth
	if input.MaxDepth > 0 {
		maxDepth = input.MaxDepth
	}
	s := sampler.New(
		sampler.WithRefLookup(annotator.RefLookup(pr.Document)),
		sampler.WithMaxDepth(maxDepth),
	)
	value, ok := s.Sample(schema)
	output := sampleOutput{HasExample: ok, CacheHits: s.Stats().Hits}
	if !ok {
		return nil, output, nil
	}

	indent := "  "
	if input.Compact {
		indent = ""
	}
	data, err := document.MarshalIndent(value, "", indent)
	if err != nil {
		return errResult(err), sampleOutput{}, nil
	}
	output.Example = string(data)
	return nil, output, nil
}
