// Package annotator attaches derived example data to the operations of an
// API description.
//
// For every operation of a Swagger 2.0 or OpenAPI 3.x document the
// annotator sets:
//
//   - params: the normalized parameter record produced by the params package
//   - example on every response: the synthesized example of the response
//     schema, serialized as JSON indented with two spaces, or null when the
//     response has no schema
//   - example on every parameter, derived the same way from its schema
//
// A Swagger 1.x resource listing is handled by fetching its API
// declarations concurrently, repairing their array item references, and
// converting the set to Swagger 2.0 before annotating the result.
//
// # Usage
//
//	result, err := annotator.AnnotateWithOptions(ctx,
//	    annotator.WithFilePath("petstore.yaml"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, _ := document.MarshalIndent(result.Document, "", "  ")
//
// # Failures
//
// Only retrieval and conversion failures abort a run (as
// *oaserrors.RetrievalError and *oaserrors.ConversionError). A malformed
// operation is recorded in AnnotationResult.Operations: its params field is
// omitted, or the affected example is null, and the remaining operations are
// annotated as usual.
package annotator
