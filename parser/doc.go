// Package parser loads API description documents into order-preserving
// document trees.
//
// Swagger 1.x, Swagger 2.0, and OpenAPI 3.x documents are read from local
// files, http(s) URLs, readers, or byte slices, in YAML or JSON. The parser
// does not resolve references or build typed models: the result is the raw
// tree (see package document) plus the detected Dialect and version string.
//
// # Quick Start
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("openapi.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Dialect, result.Version)
//
// A Parser also serves as the document fetcher for the annotator. Fetch
// honors the caller's context, and ResolveLocation computes where a Swagger
// 1.x API declaration lives relative to its resource listing:
//
//	p := parser.New()
//	loc, _ := parser.ResolveLocation("https://host/api-docs", "/pet")
//	decl, err := p.Fetch(ctx, loc)
//
// # Errors
//
// Failures to obtain bytes (missing file, HTTP status other than 200,
// transport error) are *oaserrors.RetrievalError. Content that is not a YAML
// or JSON mapping is *oaserrors.ParseError. Documents larger than
// MaxFileSize are *oaserrors.ResourceLimitError.
package parser
