package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/erraggy/oasexample/parser"
)

// specInput represents the three ways a document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an API description file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch an API description from"`
	Content string `json:"content,omitempty" jsonschema:"Inline API description content (JSON or YAML)"`
}

// sources reports how many of the three inputs are set.
func (s specInput) sources() int {
	n := 0
	for _, v := range []string{s.File, s.URL, s.Content} {
		if v != "" {
			n++
		}
	}
	return n
}

func (s specInput) validate() error {
	if n := s.sources(); n != 1 {
		return fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", n)
	}
	if int64(len(s.Content)) > cfg.MaxInlineSize {
		return fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASEXAMPLE_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}
	return nil
}

// cacheKey keys files by absolute path and modification time, content by
// its SHA-256, and URLs verbatim, each with its own TTL. An empty key means
// the input is not cached.
func (s specInput) cacheKey() (string, time.Duration) {
	switch {
	case s.File != "":
		abs, err := filepath.Abs(s.File)
		if err != nil {
			return "", 0
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", 0
		}
		return fmt.Sprintf("file:%s:%d", abs, info.ModTime().UnixNano()), cfg.CacheFileTTL
	case s.URL != "":
		return "url:" + s.URL, cfg.CacheURLTTL
	case s.Content != "":
		sum := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(sum[:]), cfg.CacheContentTTL
	}
	return "", 0
}

func (s specInput) parseOptions(ctx context.Context) []parser.Option {
	switch {
	case s.File != "":
		return []parser.Option{parser.WithFilePath(s.File)}
	case s.URL != "":
		return []parser.Option{parser.WithContext(ctx), parser.WithFilePath(s.URL), parser.WithHTTPClient(httpClient())}
	default:
		return []parser.Option{parser.WithReader(strings.NewReader(s.Content))}
	}
}

// resolve loads the document from whichever input was provided. The
// returned result belongs to the caller, who may modify it.
func (s specInput) resolve(ctx context.Context) (*parser.ParseResult, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key, ttl = s.cacheKey()
	}
	if key != "" {
		if cached := specCache.get(key); cached != nil {
			return cached, nil
		}
	}

	result, err := parser.ParseWithOptions(s.parseOptions(ctx)...)
	if err != nil {
		return nil, err
	}
	if key != "" {
		specCache.put(key, result, ttl)
	}
	return result, nil
}
