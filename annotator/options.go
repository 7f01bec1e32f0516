package annotator

import (
	"context"
	"fmt"
	"net/http"

	"github.com/erraggy/oasexample"
	"github.com/erraggy/oasexample/internal/options"
	"github.com/erraggy/oasexample/legacy"
	"github.com/erraggy/oasexample/parser"
)

// Option is a function that configures an annotation run
type Option func(*annotateConfig) error

// annotateConfig holds configuration for an annotation run
type annotateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.ParseResult

	fetcher            Fetcher
	converter          legacy.Converter
	logger             parser.Logger
	maxDepth           int
	maxConcurrency     int
	correctRequiredKey bool
	userAgent          string
	httpClient         *http.Client
}

// AnnotateWithOptions annotates a document using functional options.
// Exactly one input source must be given.
//
// Example:
//
//	result, err := annotator.AnnotateWithOptions(ctx,
//	    annotator.WithFilePath("https://petstore.swagger.io/v2/swagger.json"),
//	    annotator.WithMaxConcurrency(4),
//	)
func AnnotateWithOptions(ctx context.Context, opts ...Option) (*AnnotationResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("annotator: invalid options: %w", err)
	}

	a := &Annotator{
		Fetcher:            cfg.fetcher,
		Converter:          cfg.converter,
		Logger:             cfg.logger,
		MaxDepth:           cfg.maxDepth,
		MaxConcurrency:     cfg.maxConcurrency,
		CorrectRequiredKey: cfg.correctRequiredKey,
		UserAgent:          cfg.userAgent,
		HTTPClient:         cfg.httpClient,
	}

	if cfg.filePath != nil {
		return a.Annotate(ctx, *cfg.filePath)
	}
	return a.AnnotateParsed(ctx, cfg.parsed)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*annotateConfig, error) {
	cfg := &annotateConfig{
		userAgent: oasexample.UserAgent(),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"annotator: must specify an input source (use WithFilePath or WithParsed)",
		"annotator: must specify exactly one input source",
		cfg.filePath != nil, cfg.parsed != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a file path or URL as the input source
func WithFilePath(path string) Option {
	return func(cfg *annotateConfig) error {
		if path == "" {
			return fmt.Errorf("annotator: file path cannot be empty")
		}
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies an already loaded document as the input source.
// Its document is annotated in place.
func WithParsed(result *parser.ParseResult) Option {
	return func(cfg *annotateConfig) error {
		if result == nil {
			return fmt.Errorf("annotator: parse result cannot be nil")
		}
		cfg.parsed = result
		return nil
	}
}

// WithFetcher sets the Fetcher used to load the input and Swagger 1.x API
// declarations.
func WithFetcher(f Fetcher) Option {
	return func(cfg *annotateConfig) error {
		cfg.fetcher = f
		return nil
	}
}

// WithConverter sets the Swagger 1.x converter.
func WithConverter(c legacy.Converter) Option {
	return func(cfg *annotateConfig) error {
		cfg.converter = c
		return nil
	}
}

// WithLogger sets a structured logger for debug output.
// By default, no logging is performed (nil logger).
func WithLogger(l parser.Logger) Option {
	return func(cfg *annotateConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithMaxDepth bounds example synthesis recursion.
// A value of 0 means use the default (sampler.DefaultMaxDepth).
func WithMaxDepth(depth int) Option {
	return func(cfg *annotateConfig) error {
		if err := options.ValidateNonNegative("maxDepth", depth); err != nil {
			return err
		}
		cfg.maxDepth = depth
		return nil
	}
}

// WithMaxConcurrency bounds concurrent Swagger 1.x declaration fetches.
// A value of 0 means use the default (8).
func WithMaxConcurrency(n int) Option {
	return func(cfg *annotateConfig) error {
		if err := options.ValidateNonNegative("maxConcurrency", n); err != nil {
			return err
		}
		cfg.maxConcurrency = n
		return nil
	}
}

// WithCorrectRequiredKey emits Swagger 2.0 query parameters under
// "required" instead of the historical "requierd".
func WithCorrectRequiredKey(enabled bool) Option {
	return func(cfg *annotateConfig) error {
		cfg.correctRequiredKey = enabled
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
// Default: "oasexample/vX.Y.Z"
func WithUserAgent(ua string) Option {
	return func(cfg *annotateConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client for fetching URLs.
// If the client is nil, this option has no effect (default client is used).
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *annotateConfig) error {
		cfg.httpClient = client
		return nil
	}
}
