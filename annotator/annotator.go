package annotator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/erraggy/oasexample"
	"github.com/erraggy/oasexample/document"
	"github.com/erraggy/oasexample/internal/httputil"
	"github.com/erraggy/oasexample/internal/issues"
	"github.com/erraggy/oasexample/internal/schemautil"
	"github.com/erraggy/oasexample/internal/severity"
	"github.com/erraggy/oasexample/legacy"
	"github.com/erraggy/oasexample/oaserrors"
	"github.com/erraggy/oasexample/params"
	"github.com/erraggy/oasexample/parser"
	"github.com/erraggy/oasexample/sampler"
)

// DefaultMaxConcurrency is the number of Swagger 1.x API declarations
// fetched at once when MaxConcurrency is not set.
const DefaultMaxConcurrency = 8

// Fetcher loads the document at location. Relative locations are resolved
// by the caller. *parser.Parser implements Fetcher.
type Fetcher interface {
	Fetch(ctx context.Context, location string) (*parser.ParseResult, error)
}

var _ Fetcher = (*parser.Parser)(nil)

// Annotator attaches params records and serialized examples to the
// operations of an API description.
type Annotator struct {
	// Fetcher loads documents by location. If nil, a *parser.Parser configured
	// with UserAgent, HTTPClient, and Logger is used.
	Fetcher Fetcher
	// Converter merges Swagger 1.x documents into Swagger 2.0.
	// If nil, legacy.NewSwaggerConverter() is used.
	Converter legacy.Converter
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger parser.Logger
	// MaxDepth bounds example synthesis recursion. Zero means sampler.DefaultMaxDepth.
	MaxDepth int
	// MaxConcurrency bounds concurrent API declaration fetches.
	// Zero means DefaultMaxConcurrency.
	MaxConcurrency int
	// CorrectRequiredKey emits Swagger 2.0 query parameters under "required"
	// instead of the historical "requierd".
	CorrectRequiredKey bool
	// UserAgent is the User-Agent string used by the default Fetcher
	// Defaults to "oasexample/<version>" if not set
	UserAgent string
	// HTTPClient is the HTTP client used by the default Fetcher
	HTTPClient *http.Client
}

// New creates a new Annotator with default settings
func New() *Annotator {
	return &Annotator{
		UserAgent: oasexample.UserAgent(),
	}
}

// AnnotationResult describes an annotated document.
type AnnotationResult struct {
	// Document is the annotated document. For Swagger 1.x input it is the
	// converted Swagger 2.0 document; otherwise it is the input tree itself.
	Document *document.Object
	// Dialect is the dialect of the input document
	Dialect parser.Dialect
	// SourceVersion is the version string declared by the input document
	SourceVersion string
	// SourcePath is the location the input was read from, if known
	SourcePath string
	// SourceFormat is the format of the input, if known
	SourceFormat parser.SourceFormat
	// Operations holds one outcome per annotated operation, in document order
	Operations []OperationOutcome
	// Issues contains conversion issues followed by per-operation issues
	Issues []issues.Issue
	// OperationCount is the number of annotated operations
	OperationCount int
	// ExampleCount is the number of example fields set to a serialized value
	ExampleCount int
	// DeclarationCount is the number of Swagger 1.x API declarations fetched
	DeclarationCount int
	// SamplerStats reports example cache activity for this run
	SamplerStats sampler.CacheStats
	// RunID identifies this run in log output
	RunID string
	// Duration is the time the run took, fetches included
	Duration time.Duration
}

// HasErrors reports whether any operation was left without params.
func (r *AnnotationResult) HasErrors() bool {
	return issues.Count(r.Issues).Error > 0
}

// FailedOperations returns the outcomes that recorded an error.
func (r *AnnotationResult) FailedOperations() []OperationOutcome {
	var out []OperationOutcome
	for _, o := range r.Operations {
		if !o.OK() {
			out = append(out, o)
		}
	}
	return out
}

// OperationOutcome records what happened to one operation.
type OperationOutcome struct {
	// Path is the path template the operation is declared under
	Path string
	// Method is the lower-case HTTP method
	Method string
	// OperationID is the operationId, if declared
	OperationID string
	// Params is the extracted params record; nil when extraction failed
	Params *params.Result
	// ParamsErr is the extraction failure; the operation has no params field
	ParamsErr error
	// ExampleErrs are the responses and parameters whose example was set to null
	ExampleErrs []error
	// Examples is the number of examples attached to the operation
	Examples int
}

// OK reports whether the operation was annotated without local failures.
func (o OperationOutcome) OK() bool {
	return o.ParamsErr == nil && len(o.ExampleErrs) == 0
}

func (o OperationOutcome) context() *issues.OperationContext {
	return &issues.OperationContext{Method: o.Method, Path: o.Path, OperationID: o.OperationID}
}

// Issues converts the local failures of the operation into issues.
func (o OperationOutcome) Issues() []issues.Issue {
	var out []issues.Issue
	if o.ParamsErr != nil {
		out = append(out, issues.Issue{
			Path:      issues.FormatPath("paths", o.Path, o.Method, "params"),
			Message:   "params omitted: " + o.ParamsErr.Error(),
			Severity:  severity.SeverityError,
			Operation: o.context(),
		})
	}
	for _, err := range o.ExampleErrs {
		path := issues.FormatPath("paths", o.Path, o.Method)
		var sie *oaserrors.SchemaInferenceError
		if errors.As(err, &sie) && sie.Path != "" {
			path = sie.Path
		}
		out = append(out, issues.Issue{
			Path:      path,
			Message:   "example set to null: " + err.Error(),
			Severity:  severity.SeverityWarning,
			Operation: o.context(),
		})
	}
	return out
}

func (a *Annotator) log() parser.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return parser.NopLogger{}
}

func (a *Annotator) fetcher() Fetcher {
	if a.Fetcher != nil {
		return a.Fetcher
	}
	p := parser.New()
	if a.UserAgent != "" {
		p.UserAgent = a.UserAgent
	}
	p.HTTPClient = a.HTTPClient
	p.Logger = a.Logger
	return p
}

func (a *Annotator) converter() legacy.Converter {
	if a.Converter != nil {
		return a.Converter
	}
	return legacy.NewSwaggerConverter()
}

func (a *Annotator) maxConcurrency() int {
	if a.MaxConcurrency > 0 {
		return a.MaxConcurrency
	}
	return DefaultMaxConcurrency
}

// Annotate loads the document at location (a file path or URL) and
// annotates it.
func (a *Annotator) Annotate(ctx context.Context, location string) (*AnnotationResult, error) {
	pr, err := a.fetcher().Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	return a.AnnotateParsed(ctx, pr)
}

// AnnotateParsed annotates an already loaded document. The document in pr
// is modified in place; use pr.Copy() first to keep the original.
func (a *Annotator) AnnotateParsed(ctx context.Context, pr *parser.ParseResult) (*AnnotationResult, error) {
	if pr == nil || pr.Document == nil {
		return nil, &oaserrors.ConfigError{Option: "parsed", Message: "parse result has no document"}
	}
	res, err := a.AnnotateDocument(ctx, pr.Document, pr.SourcePath)
	if err != nil {
		return nil, err
	}
	res.SourceFormat = pr.SourceFormat
	return res, nil
}

// AnnotateDocument annotates doc in place. location is where doc was read
// from; Swagger 1.x API declarations are resolved against it.
//
// Only failures to retrieve or convert Swagger 1.x documents abort the
// run. Operations whose params or examples cannot be derived are recorded
// in AnnotationResult.Operations and the rest of the document is still
// annotated.
//
// A tree must be annotated only once. Swagger 2.0 non-body parameters are
// their own schema, so a second pass reads the example string written by
// the first and serializes it again. Annotate a document.DeepCopy to
// produce several annotated versions of one source tree.
func (a *Annotator) AnnotateDocument(ctx context.Context, doc *document.Object, location string) (*AnnotationResult, error) {
	if doc == nil {
		return nil, &oaserrors.ConfigError{Option: "document", Message: "document is nil"}
	}
	start := time.Now()
	runID := uuid.NewString()

	r := &run{
		a:   a,
		ctx: ctx,
		log: a.log().With("run_id", runID),
		result: &AnnotationResult{
			SourcePath: location,
			RunID:      runID,
		},
	}
	r.result.Dialect, r.result.SourceVersion = parser.DetectDialect(doc)

	if err := r.annotate(doc, location, 0); err != nil {
		r.log.Error("annotation failed", "source", location, "error", err)
		return nil, err
	}

	res := r.result
	for _, o := range res.Operations {
		res.Issues = append(res.Issues, o.Issues()...)
	}
	res.OperationCount = len(res.Operations)
	res.Duration = time.Since(start)

	r.log.Info("annotated document",
		"source", location,
		"dialect", res.Dialect.String(),
		"operations", res.OperationCount,
		"examples", res.ExampleCount,
		"failed", len(res.FailedOperations()),
		"duration", res.Duration,
	)
	return res, nil
}

// run holds the state of one AnnotateDocument call.
type run struct {
	a      *Annotator
	ctx    context.Context
	log    parser.Logger
	result *AnnotationResult
}

func (r *run) annotate(doc *document.Object, location string, pass int) error {
	dialect, version := parser.DetectDialect(doc)
	r.log.Debug("detected dialect", "dialect", dialect.String(), "version", version, "pass", pass)

	if dialect.IsLegacy() {
		if pass > 0 {
			return &oaserrors.ConversionError{
				SourceVersion: version,
				TargetVersion: legacy.TargetVersion,
				Message:       "converted document is still Swagger 1.x",
			}
		}
		converted, err := r.convertLegacy(doc, location, version)
		if err != nil {
			return err
		}
		return r.annotate(converted, location, pass+1)
	}

	r.result.Document = doc
	return r.annotateOperations(doc, dialect)
}

func (r *run) annotateOperations(doc *document.Object, dialect parser.Dialect) error {
	lookup := newRefLookup(doc)
	smp := sampler.New(sampler.WithRefLookup(sampler.RefLookup(lookup)), sampler.WithMaxDepth(r.a.MaxDepth))
	defer func() {
		r.result.SamplerStats = smp.Stats()
	}()

	op := &operationAnnotator{
		dialect: dialect,
		lookup:  lookup,
		sampler: smp,
		paramOpts: []params.Option{
			params.WithRefLookup(lookup),
			params.WithCorrectRequiredKey(r.a.CorrectRequiredKey),
		},
	}

	paths, ok := doc.Object("paths")
	if !ok {
		r.log.Warn("document has no paths")
		return nil
	}

	var err error
	paths.Range(func(path string, raw any) bool {
		if err = r.ctx.Err(); err != nil {
			err = fmt.Errorf("annotator: %w", err)
			return false
		}
		item, ok := lookup.resolve(raw)
		if !ok {
			r.log.Warn("path item is not an object", "path", path)
			return true
		}
		item.Range(func(method string, rawOp any) bool {
			if !httputil.IsOperationMethod(method) {
				return true
			}
			operation, ok := rawOp.(*document.Object)
			if !ok {
				r.log.Warn("operation is not an object", "path", path, "method", method)
				return true
			}
			outcome := op.annotate(path, method, operation)
			if outcome.ParamsErr != nil {
				r.log.Warn("params extraction failed", "path", path, "method", method, "error", outcome.ParamsErr)
			}
			for _, e := range outcome.ExampleErrs {
				r.log.Debug("example set to null", "path", path, "method", method, "error", e)
			}
			r.result.ExampleCount += outcome.Examples
			r.result.Operations = append(r.result.Operations, outcome)
			return true
		})
		return true
	})
	return err
}

// operationAnnotator annotates the operations of one document.
type operationAnnotator struct {
	dialect   parser.Dialect
	lookup    refLookup
	sampler   *sampler.Sampler
	paramOpts []params.Option
}

func (oa *operationAnnotator) paramsDialect() params.Dialect {
	if oa.dialect == parser.DialectOAS3 {
		return params.DialectV3
	}
	return params.DialectV2
}

func (oa *operationAnnotator) annotate(path, method string, op *document.Object) OperationOutcome {
	outcome := OperationOutcome{Path: path, Method: method}
	outcome.OperationID, _ = op.String("operationId")

	if res, err := params.Extract(op, oa.paramsDialect(), oa.paramOpts...); err != nil {
		outcome.ParamsErr = err
	} else {
		op.Set("params", res.ToObject())
		outcome.Params = res
	}

	base := issues.FormatPath("paths", path, method)

	if responses, ok := op.Object("responses"); ok {
		responses.Range(func(code string, raw any) bool {
			at := issues.FormatPath(base, "responses", code)
			resp, ok := raw.(*document.Object)
			if !ok {
				outcome.ExampleErrs = append(outcome.ExampleErrs, inferenceError(at, "response is not an object", nil))
				return true
			}
			schema, err := oa.responseSchema(resp, at)
			if err != nil {
				resp.Set("example", nil)
				outcome.ExampleErrs = append(outcome.ExampleErrs, err)
				return true
			}
			if err := oa.attach(resp, schema, at, &outcome); err != nil {
				outcome.ExampleErrs = append(outcome.ExampleErrs, err)
			}
			return true
		})
	}

	if v, ok := op.Get("parameters"); ok && v != nil {
		list, ok := v.([]any)
		if !ok {
			outcome.ExampleErrs = append(outcome.ExampleErrs,
				inferenceError(issues.FormatPath(base, "parameters"), "parameters is not a sequence", nil))
			return outcome
		}
		for i, raw := range list {
			at := fmt.Sprintf("%s.parameters[%d]", base, i)
			param, ok := raw.(*document.Object)
			if !ok {
				outcome.ExampleErrs = append(outcome.ExampleErrs, inferenceError(at, "parameter is not an object", nil))
				continue
			}
			target, _ := oa.lookup.resolve(param)
			if err := oa.attach(param, schemaOf(target), at, &outcome); err != nil {
				outcome.ExampleErrs = append(outcome.ExampleErrs, err)
			}
		}
	}
	return outcome
}

// responseSchema returns the schema describing resp, or nil when it has
// none. An error means the response could not be read.
func (oa *operationAnnotator) responseSchema(resp *document.Object, at string) (*document.Object, error) {
	target, _ := oa.lookup.resolve(resp)
	if oa.dialect != parser.DialectOAS3 {
		return schemaOf(target), nil
	}

	v, ok := target.Get("content")
	if !ok || v == nil {
		return nil, nil
	}
	content, ok := v.(*document.Object)
	if !ok {
		return nil, inferenceError(at+".content", fmt.Sprintf("expected an object, got %s", document.TypeName(v)), nil)
	}
	mediaType, media, ok := content.First()
	if !ok {
		return nil, nil
	}
	mediaObj, ok := media.(*document.Object)
	if !ok {
		return nil, inferenceError(issues.FormatPath(at, "content", mediaType), "media type is not an object", nil)
	}
	return schemaOf(mediaObj), nil
}

// attach sets node's example from schema: the serialized sample, null when
// schema is nil, and nothing when the schema yields no value.
func (oa *operationAnnotator) attach(node, schema *document.Object, at string, outcome *OperationOutcome) error {
	if schema == nil {
		node.Set("example", nil)
		return nil
	}
	text, ok, err := oa.sampler.Example(schema)
	if err != nil {
		node.Set("example", nil)
		return inferenceError(at, "example could not be serialized", err)
	}
	if !ok {
		return nil
	}
	node.Set("example", text)
	outcome.Examples++
	return nil
}

// schemaOf returns the "schema" field of a response, parameter, or media
// type object, or the node itself when it describes its own shape.
func schemaOf(node *document.Object) *document.Object {
	if node == nil {
		return nil
	}
	return schemautil.InferSchema(node)
}

func inferenceError(path, message string, cause error) error {
	return &oaserrors.SchemaInferenceError{Path: path, Message: message, Cause: cause}
}
