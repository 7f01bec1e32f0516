// Package oasexample annotates API description documents with request
// parameter summaries and synthesized examples.
//
// oasexample reads Swagger 1.x, Swagger 2.0, and OpenAPI 3.x documents and
// rewrites each operation so that clients and documentation tools have
// ready-made sample payloads to show.
//
// # Overview
//
// The library consists of the following packages:
//
//   - parser: Load documents from files, URLs, readers, or byte slices and detect their dialect
//   - document: Ordered document tree with JSON/YAML codecs and JSON pointer resolution
//   - sampler: Synthesize an example value from a JSON schema
//   - params: Summarize an operation's body and query parameters
//   - legacy: Convert Swagger 1.x API declarations and repair legacy items references
//   - annotator: Attach params and example fields to every operation of a document
//   - oaserrors: Error types shared by all packages
//
// # Quick Start
//
// Annotate a document:
//
//	import "github.com/erraggy/oasexample/annotator"
//
//	result, err := annotator.New().Annotate(ctx, "openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Annotated %d operations\n", result.OperationCount)
//	for _, issue := range result.Issues {
//		fmt.Println(issue.String())
//	}
//
// Sample a single schema:
//
//	import "github.com/erraggy/oasexample/sampler"
//
//	s := sampler.New()
//	text, ok, err := s.Example(schema)
//
// # Annotated Output
//
// Every operation receives a params field describing its body and query
// parameters. Responses, parameters, and request bodies with a schema
// receive an example field holding the serialized sample, indented with
// two spaces. Swagger 1.x listings are fetched declaration by declaration
// and converted before annotation.
//
// # Command-Line Tool
//
// The oasexample command exposes the library:
//
//	oasexample annotate openapi.yaml -o annotated.yaml
//	oasexample sample -p '#/definitions/Pet' swagger.json
//	oasexample params -m get --path /pets openapi.yaml
//	oasexample mcp
//
// The mcp command serves the annotate, sample, and params tools over the
// Model Context Protocol on stdin/stdout.
package oasexample
