// Package oaserrors provides structured error types for oasexample.
//
// Import path: github.com/erraggy/oasexample/oaserrors
//
// The types split into two groups by how far they propagate.
//
// Fatal to the whole annotation call:
//
//   - [RetrievalError]: a document or legacy sub-document could not be fetched
//   - [ConversionError]: a legacy resource listing could not be merged into 2.0
//   - [ParseError]: fetched bytes could not be decoded
//   - [ConfigError]: invalid options
//   - [ResourceLimitError]: size, count, or depth limits exceeded
//
// Contained to one operation (reported through annotator.OperationOutcome):
//
//   - [SchemaInferenceError]: the example for one response or parameter is null
//   - [ParameterExtractionError]: the operation is left without params
//
// Each type matches its sentinel through errors.Is:
//
//	result, err := annotator.AnnotateWithOptions(annotator.WithFilePath("api.json"))
//	if errors.Is(err, oaserrors.ErrRetrieval) {
//	    // network or file failure
//	}
//
//	var convErr *oaserrors.ConversionError
//	if errors.As(err, &convErr) {
//	    fmt.Println(convErr.Path)
//	}
package oaserrors
