package parser

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/erraggy/oasexample"
	"github.com/erraggy/oasexample/internal/options"
)

// Option configures a ParseWithOptions call.
type Option func(*parseConfig) error

// parseConfig is a Parser plus the single input it should load.
type parseConfig struct {
	Parser

	ctx        context.Context
	location   *string
	reader     io.Reader
	data       []byte
	sourceName string
}

// ParseWithOptions loads one document. Exactly one of WithFilePath,
// WithReader, or WithBytes must be given; the other options configure the
// Parser that loads it.
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("https://petstore.swagger.io/v2/swagger.json"),
//	    parser.WithLogger(parser.NewSlogAdapter(slog.Default())),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}

	var result *ParseResult
	switch {
	case cfg.location != nil:
		result, err = cfg.Fetch(cfg.ctx, *cfg.location)
	case cfg.reader != nil:
		result, err = cfg.ParseReader(cfg.reader)
	default:
		result, err = cfg.ParseBytes(cfg.data)
	}
	if err != nil {
		return nil, err
	}
	if cfg.sourceName != "" {
		result.SourcePath = cfg.sourceName
	}
	return result, nil
}

func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{
		Parser: Parser{UserAgent: oasexample.UserAgent()},
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if err := options.ValidateSingleInputSource(
		"parser: must specify an input source (use WithFilePath, WithReader, or WithBytes)",
		"parser: must specify exactly one input source",
		cfg.location != nil, cfg.reader != nil, cfg.data != nil,
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithFilePath loads the document from a local path or an http(s) URL.
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.location = &path
		return nil
	}
}

// WithReader loads the document from r.
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return errors.New("parser: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes loads the document from data.
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return errors.New("parser: bytes cannot be nil")
		}
		cfg.data = data
		return nil
	}
}

// WithContext bounds URL retrieval. It has no effect on the other inputs.
func WithContext(ctx context.Context) Option {
	return func(cfg *parseConfig) error {
		if ctx == nil {
			return errors.New("parser: context cannot be nil")
		}
		cfg.ctx = ctx
		return nil
	}
}

// WithUserAgent sets Parser.UserAgent.
func WithUserAgent(ua string) Option {
	return func(cfg *parseConfig) error {
		cfg.UserAgent = ua
		return nil
	}
}

// WithHTTPClient sets Parser.HTTPClient. A nil client keeps the default.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *parseConfig) error {
		cfg.HTTPClient = client
		return nil
	}
}

// WithInsecureSkipVerify sets Parser.InsecureSkipVerify.
func WithInsecureSkipVerify(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.InsecureSkipVerify = enabled
		return nil
	}
}

// WithLogger sets Parser.Logger.
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.Logger = l
		return nil
	}
}

// WithMaxFileSize sets Parser.MaxFileSize. Zero keeps DefaultMaxFileSize.
func WithMaxFileSize(size int64) Option {
	return func(cfg *parseConfig) error {
		if err := options.ValidateNonNegative("maxFileSize", size); err != nil {
			return err
		}
		cfg.MaxFileSize = size
		return nil
	}
}

// WithSourceName overrides ParseResult.SourcePath, which otherwise names
// the reader or byte-slice method for those inputs.
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = name
		return nil
	}
}
