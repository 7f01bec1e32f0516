package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/erraggy/oasexample/annotator"
	"github.com/erraggy/oasexample/document"
	"github.com/erraggy/oasexample/parser"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type annotateInput struct {
	Spec               specInput `json:"spec"                           jsonschema:"The API description to annotate (Swagger 1.x\\, 2.0 or OpenAPI 3.x)"`
	CorrectRequiredKey *bool     `json:"correct_required_key,omitempty" jsonschema:"Emit required instead of the historical requierd key on Swagger 2.0 query params"`
	MaxDepth           int       `json:"max_depth,omitempty"            jsonschema:"Maximum schema nesting sampled per example"`
	Format             string    `json:"format,omitempty"               jsonschema:"Format of the annotated document: json or yaml (default: source format)"`
	Output             string    `json:"output,omitempty"               jsonschema:"File path to write the annotated document. If omitted the document is returned inline."`
}

type annotateIssue struct {
	Severity string `json:"severity"`
	Path     string `json:"path"`
	Message  string `json:"message"`
	Source   string `json:"source,omitempty"`
}

type annotateOutput struct {
	Dialect          string          `json:"dialect"`
	SourceVersion    string          `json:"source_version"`
	OperationCount   int             `json:"operation_count"`
	ExampleCount     int             `json:"example_count"`
	DeclarationCount int             `json:"declaration_count,omitempty"`
	FailedCount      int             `json:"failed_count"`
	IssueCount       int             `json:"issue_count"`
	Issues           []annotateIssue `json:"issues,omitempty"`
	RunID            string          `json:"run_id"`
	WrittenTo        string          `json:"written_to,omitempty"`
	Document         string          `json:"document,omitempty"`
}

func handleAnnotate(ctx context.Context, _ *mcp.CallToolRequest, input annotateInput) (*mcp.CallToolResult, annotateOutput, error) {
	format, err := documentFormat(input.Format)
	if err != nil {
		return errResult(err), annotateOutput{}, nil
	}
	if input.MaxDepth < 0 {
		return errResult(fmt.Errorf("max_depth must be non-negative")), annotateOutput{}, nil
	}

	pr, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), annotateOutput{}, nil
	}

	correctKey := cfg.CorrectRequiredKey
	if input.CorrectRequiredKey != nil {
		correctKey = *input.CorrectRequiredKey
	}
	maxDepth := cfg.MaxDepth
	if input.MaxDepth > 0 {
		maxDepth = input.MaxDepth
	}

	result, err := annotator.AnnotateWithOptions(ctx,
		annotator.WithParsed(pr),
		annotator.WithHTTPClient(httpClient()),
		annotator.WithMaxDepth(maxDepth),
		annotator.WithMaxConcurrency(cfg.MaxConcurrency),
		annotator.WithCorrectRequiredKey(correctKey),
	)
	if err != nil {
		return errResult(err), annotateOutput{}, nil
	}

	output := annotateOutput{
		Dialect:          result.Dialect.String(),
		SourceVersion:    result.SourceVersion,
		OperationCount:   result.OperationCount,
		ExampleCount:     result.ExampleCount,
		DeclarationCount: result.DeclarationCount,
		FailedCount:      len(result.FailedOperations()),
		IssueCount:       len(result.Issues),
		RunID:            result.RunID,
	}
	output.Issues = makeSlice[annotateIssue](len(result.Issues))
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, annotateIssue{
			Severity: issue.Severity.String(),
			Path:     issue.Path,
			Message:  issue.Message,
			Source:   issue.Source,
		})
	}

	if format == parser.SourceFormatUnknown {
		format = result.SourceFormat
	}
	data, err := marshalDocument(result.Document, format)
	if err != nil {
		return errResult(err), annotateOutput{}, nil
	}

	if input.Output != "" {
		if err := os.WriteFile(input.Output, data, 0o644); err != nil { //nolint:gosec // G306 - annotated documents are not secret
			return errResult(fmt.Errorf("failed to write output file: %w", err)), annotateOutput{}, nil
		}
		output.WrittenTo = input.Output
	} else {
		output.Document = string(data)
	}

	return nil, output, nil
}

// documentFormat parses a requested document format. An empty format yields
// SourceFormatUnknown, meaning the source format is kept.
func documentFormat(format string) (parser.SourceFormat, error) {
	switch format {
	case "":
		return parser.SourceFormatUnknown, nil
	case "json":
		return parser.SourceFormatJSON, nil
	case "yaml":
		return parser.SourceFormatYAML, nil
	default:
		return parser.SourceFormatUnknown, fmt.Errorf("invalid format %q; valid formats: json, yaml", format)
	}
}

// marshalDocument renders v as indented JSON or as YAML, keeping key order.
func marshalDocument(v any, format parser.SourceFormat) ([]byte, error) {
	if format == parser.SourceFormatJSON {
		return document.MarshalIndent(v, "", "  ")
	}
	return document.MarshalYAML(v)
}
