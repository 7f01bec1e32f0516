package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/erraggy/oasexample/annotator"
	"github.com/erraggy/oasexample/document"
	"github.com/erraggy/oasexample/internal/httputil"
	"github.com/erraggy/oasexample/params"
	"github.com/erraggy/oasexample/parser"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type paramsInput struct {
	Spec               specInput `json:"spec"                           jsonschema:"The Swagger 2.0 or OpenAPI 3.x document"`
	Path               string    `json:"path,omitempty"                 jsonschema:"Only extract the operations of this path template"`
	Method             string    `json:"method,omitempty"               jsonschema:"Only extract operations with this HTTP method"`
	CorrectRequiredKey *bool     `json:"correct_required_key,omitempty" jsonschema:"Emit required instead of the historical requierd key on Swagger 2.0 query params"`
}

type paramEntry struct {
	Name     string   `json:"name"`
	Type     []string `json:"type"`
	Required bool     `json:"required"`
	// RequiredKey is the key the flag is emitted under in the params record.
	RequiredKey string `json:"required_key"`
}

type paramsOperation struct {
	Path           string       `json:"path"`
	Method         string       `json:"method"`
	OperationID    string       `json:"operation_id,omitempty"`
	BodyParamsType string       `json:"body_params_type,omitempty"`
	BodyParams     []paramEntry `json:"body_params,omitempty"`
	QueryParams    []paramEntry `json:"query_params,omitempty"`
	Error          string       `json:"error,omitempty"`
}

type paramsOutput struct {
	Dialect     string            `json:"dialect"`
	Operations  []paramsOperation `json:"operations"`
	FailedCount int               `json:"failed_count"`
}

func handleParams(ctx context.Context, _ *mcp.CallToolRequest, input paramsInput) (*mcp.CallToolResult, paramsOutput, error) {
	method := strings.ToLower(input.Method)
	if method != "" && !httputil.IsOperationMethod(method) {
		return errResult(fmt.Errorf("invalid method %q; valid methods: %s", input.Method, strings.Join(httputil.OperationMethods, ", "))), paramsOutput{}, nil
	}

	pr, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), paramsOutput{}, nil
	}

	var dialect params.Dialect
	switch pr.Dialect {
	case parser.DialectSwagger2:
		dialect = params.DialectV2
	case parser.DialectOAS3:
		dialect = params.DialectV3
	default:
		return errResult(fmt.Errorf("params are extracted from Swagger 2.0 and OpenAPI 3.x documents; got %s (use the annotate tool for Swagger 1.x)", pr.Dialect)), paramsOutput{}, nil
	}

	correctKey := cfg.CorrectRequiredKey
	if input.CorrectRequiredKey != nil {
		correctKey = *input.CorrectRequiredKey
	}
	lookup := annotator.RefLookup(pr.Document)
	opts := []params.Option{
		params.WithRefLookup(lookup),
		params.WithCorrectRequiredKey(correctKey),
	}

	output := paramsOutput{Dialect: pr.Dialect.String(), Operations: []paramsOperation{}}
	paths, _ := pr.Document.Object("paths")
	if paths == nil {
		return nil, output, nil
	}
	paths.Range(func(path string, raw any) bool {
		if input.Path != "" && path != input.Path {
			return true
		}
		item, ok := raw.(*document.Object)
		if !ok {
			return true
		}
		if ref, has := item.String("$ref"); has {
			if target, found := lookup(ref); found {
				item = target
			}
		}
		item.Range(func(m string, rawOp any) bool {
			if !httputil.IsOperationMethod(m) || (method != "" && m != method) {
				return true
			}
			op, ok := rawOp.(*document.Object)
			if !ok {
				return true
			}
			entry := paramsOperation{Path: path, Method: m}
			entry.OperationID, _ = op.String("operationId")
			result, err := params.Extract(op, dialect, opts...)
			if err != nil {
				entry.Error = sanitizeError(err)
				output.FailedCount++
			} else {
				entry.BodyParamsType = result.BodyParamsType
				entry.BodyParams = paramEntries(result.BodyParams)
				entry.QueryParams = paramEntries(result.QueryParams)
			}
			output.Operations = append(output.Operations, entry)
			return true
		})
		return true
	})
	return nil, output, nil
}

func paramEntries(list []params.Parameter) []paramEntry {
	out := makeSlice[paramEntry](len(list))
	for _, p := range list {
		key := p.RequiredKey
		if key == "" {
			key = params.RequiredKey
		}
		out = append(out, paramEntry{Name: p.Name, Type: p.Type, Required: p.Required, RequiredKey: key})
	}
	return out
}
