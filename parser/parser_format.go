package parser

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/erraggy/oasexample"
	"github.com/erraggy/oasexample/oaserrors"
)

// FormatBytes formats a byte count into a human-readable string using binary units (KiB, MiB, etc.)
func FormatBytes(size int64) string {
	if size < 0 {
		return fmt.Sprintf("%d B", size)
	}

	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

// detectFormatFromPath detects the source format from a file path
func detectFormatFromPath(p string) SourceFormat {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent attempts to detect the format from the content bytes
// JSON typically starts with '{' or '[', while YAML does not
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// isURL determines if the given path is a URL (http:// or https://)
func isURL(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

func (p *Parser) httpClient() *http.Client {
	if p.HTTPClient != nil {
		if p.InsecureSkipVerify {
			p.log().Warn("InsecureSkipVerify ignored when HTTPClient provided; configure TLS on your client's transport")
		}
		return p.HTTPClient
	}
	if p.InsecureSkipVerify {
		return &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true, //nolint:gosec // User explicitly requested insecure mode
					MinVersion:         tls.VersionTLS12,
				},
			},
		}
	}
	return &http.Client{Timeout: 30 * time.Second}
}

// fetchURL fetches content from a URL and returns the bytes and Content-Type header
func (p *Parser) fetchURL(ctx context.Context, urlStr string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, "", &oaserrors.RetrievalError{Location: urlStr, Message: "failed to create request", Cause: err}
	}

	userAgent := p.UserAgent
	if userAgent == "" {
		userAgent = oasexample.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.httpClient().Do(req) //nolint:gosec // G704 - URL is user-provided input
	if err != nil {
		return nil, "", &oaserrors.RetrievalError{Location: urlStr, Message: "failed to fetch URL", Cause: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &oaserrors.RetrievalError{
			Location:   urlStr,
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}

	data, err := readLimited(resp.Body, p.maxFileSize())
	if err != nil {
		var limitErr *oaserrors.ResourceLimitError
		if errors.As(err, &limitErr) {
			return nil, "", err
		}
		return nil, "", &oaserrors.RetrievalError{Location: urlStr, Message: "failed to read response body", Cause: err}
	}

	return data, resp.Header.Get("Content-Type"), nil
}

// detectFormatFromURL attempts to detect the format from a URL path and Content-Type header
func detectFormatFromURL(urlStr string, contentType string) SourceFormat {
	parsedURL, err := url.Parse(urlStr)
	if err == nil && parsedURL.Path != "" {
		format := detectFormatFromPath(parsedURL.Path)
		if format != SourceFormatUnknown {
			return format
		}
	}

	if contentType != "" {
		contentType = strings.ToLower(contentType)
		if idx := strings.Index(contentType, ";"); idx != -1 {
			contentType = contentType[:idx]
		}
		switch strings.TrimSpace(contentType) {
		case "application/json":
			return SourceFormatJSON
		case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
			return SourceFormatYAML
		}
	}

	return SourceFormatUnknown
}

// ResolveLocation resolves a Swagger 1.x API declaration path against the
// location of its resource listing.
//
// A listing whose location ends in ".json" is a file, so ref resolves next to
// it; any other location is treated as a directory, so ref resolves beneath
// it. A leading "/" on ref is ignored. Absolute URLs in ref are returned as is.
//
//	ResolveLocation("https://host/api-docs", "/pet")      // https://host/api-docs/pet
//	ResolveLocation("https://host/api-docs.json", "/pet") // https://host/pet
//	ResolveLocation("specs/listing.json", "pet.json")     // specs/pet.json
func ResolveLocation(base, ref string) (string, error) {
	if isURL(ref) {
		return ref, nil
	}
	ref = strings.TrimPrefix(ref, "/")
	asFile := strings.HasSuffix(base, ".json")

	if isURL(base) {
		if !asFile && !strings.HasSuffix(base, "/") {
			base += "/"
		}
		baseURL, err := url.Parse(base)
		if err != nil {
			return "", &oaserrors.RetrievalError{Location: base, Message: "invalid base URL", Cause: err}
		}
		refURL, err := url.Parse(ref)
		if err != nil {
			return "", &oaserrors.RetrievalError{Location: ref, Message: "invalid reference", Cause: err}
		}
		return baseURL.ResolveReference(refURL).String(), nil
	}

	dir := base
	if asFile {
		dir = filepath.Dir(base)
	}
	// Cleaning against "/" keeps ref from climbing above dir.
	rel := strings.TrimPrefix(path.Clean("/"+ref), "/")
	return filepath.Join(dir, filepath.FromSlash(rel)), nil
}
