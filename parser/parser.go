package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/erraggy/oasexample"
	"github.com/erraggy/oasexample/document"
	"github.com/erraggy/oasexample/oaserrors"
)

// DefaultMaxFileSize is the largest document the parser reads when
// MaxFileSize is not set.
const DefaultMaxFileSize int64 = 10 << 20

// Parser loads API description documents from files, URLs, readers, or
// byte slices into document trees.
type Parser struct {
	// UserAgent is the User-Agent string used when fetching URLs
	// Defaults to "oasexample/<version>" if not set
	UserAgent string
	// HTTPClient is the HTTP client used for fetching URLs.
	// If nil, a default client with 30-second timeout is created.
	// When set, InsecureSkipVerify is ignored (configure TLS on your client's transport).
	HTTPClient *http.Client
	// InsecureSkipVerify disables TLS certificate verification when fetching URLs.
	// Use with caution - only enable for testing or internal servers with self-signed certs
	InsecureSkipVerify bool
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
	// MaxFileSize is the maximum document size in bytes.
	// Default: 10MB
	MaxFileSize int64
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{
		UserAgent: oasexample.UserAgent(),
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return DefaultMaxFileSize
}

// SourceFormat represents the format of the source document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult contains a loaded document and metadata about where it came
// from.
type ParseResult struct {
	// SourcePath is the file path or URL the document was read from.
	// Note: if the source was not a file path, this will be set to the name of the method
	// and end in '.yaml' or '.json' based on the detected format
	SourcePath string
	// SourceFormat is the format of the source (JSON or YAML)
	SourceFormat SourceFormat
	// Dialect is the detected description dialect
	Dialect Dialect
	// Version is the declared version string ("1.2", "2.0", "3.0.3", ...)
	Version string
	// Document is the document tree with keys in source order
	Document *document.Object
	// LoadTime is the time taken to load the source data (file, URL, etc.)
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
}

// Copy returns a ParseResult whose document can be modified without
// affecting the original.
func (pr *ParseResult) Copy() *ParseResult {
	if pr == nil {
		return nil
	}
	c := *pr
	if pr.Document != nil {
		c.Document = document.DeepCopy(pr.Document).(*document.Object)
	}
	return &c
}

// Parse loads a document from a file path or URL.
// For URLs (http:// or https://), the content is fetched and parsed
// For local files, the file is read and parsed
func (p *Parser) Parse(specPath string) (*ParseResult, error) {
	return p.Fetch(context.Background(), specPath)
}

// Fetch loads a document from a file path or URL, honoring ctx for network
// requests. Failures to obtain the bytes are reported as
// *oaserrors.RetrievalError; undecodable content as *oaserrors.ParseError.
func (p *Parser) Fetch(ctx context.Context, location string) (*ParseResult, error) {
	var data []byte
	var format SourceFormat
	var err error

	loadStart := time.Now()
	if isURL(location) {
		var contentType string
		data, contentType, err = p.fetchURL(ctx, location)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromURL(location, contentType)
	} else {
		data, err = p.readFile(location)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromPath(location)
	}
	loadTime := time.Since(loadStart)

	res, err := p.parseBytes(data, location)
	if err != nil {
		return nil, err
	}
	res.SourcePath = location
	res.LoadTime = loadTime
	if format != SourceFormatUnknown {
		res.SourceFormat = format
	}

	p.log().Debug("loaded document",
		"source", location,
		"dialect", res.Dialect.String(),
		"version", res.Version,
		"size", FormatBytes(res.SourceSize),
		"duration", loadTime,
	)
	return res, nil
}

// ParseReader parses a document from an io.Reader
// Note: since there is no actual ParseResult.SourcePath, it will be set to: ParseReader.yaml or ParseReader.json
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := readLimited(r, p.maxFileSize())
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, err
	}
	res, err := p.parseBytes(data, "")
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	if res.SourceFormat == SourceFormatJSON {
		res.SourcePath = "ParseReader.json"
	} else {
		res.SourcePath = "ParseReader.yaml"
	}
	return res, nil
}

// ParseBytes parses a document from a byte slice
// Note: since there is no actual ParseResult.SourcePath, it will be set to: ParseBytes.yaml or ParseBytes.json
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	res, err := p.parseBytes(data, "")
	if err != nil {
		return nil, err
	}
	if res.SourceFormat == SourceFormatJSON {
		res.SourcePath = "ParseBytes.json"
	} else {
		res.SourcePath = "ParseBytes.yaml"
	}
	return res, nil
}

func (p *Parser) parseBytes(data []byte, path string) (*ParseResult, error) {
	if int64(len(data)) > p.maxFileSize() {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        p.maxFileSize(),
			Actual:       int64(len(data)),
		}
	}
	doc, err := document.DecodeObject(data)
	if err != nil {
		var limitErr *oaserrors.ResourceLimitError
		if errors.As(err, &limitErr) {
			return nil, err
		}
		return nil, &oaserrors.ParseError{Path: path, Message: "failed to decode document", Cause: err}
	}
	dialect, version := DetectDialect(doc)
	return &ParseResult{
		SourceFormat: detectFormatFromContent(data),
		Dialect:      dialect,
		Version:      version,
		Document:     doc,
		SourceSize:   int64(len(data)),
	}, nil
}

func (p *Parser) readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &oaserrors.RetrievalError{Location: path, Message: "failed to read file", Cause: err}
	}
	defer func() {
		_ = f.Close()
	}()
	data, err := readLimited(f, p.maxFileSize())
	if err != nil {
		var limitErr *oaserrors.ResourceLimitError
		if errors.As(err, &limitErr) {
			return nil, err
		}
		return nil, &oaserrors.RetrievalError{Location: path, Message: "failed to read file", Cause: err}
	}
	return data, nil
}

// readLimited reads at most limit bytes and reports a ResourceLimitError
// when r holds more.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}
	if n > limit {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        limit,
			Message:      "document exceeds the maximum size",
		}
	}
	return buf.Bytes(), nil
}
