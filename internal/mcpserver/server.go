// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasexample capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/oasexample"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oasexample MCP server: attaches params records and serialized example payloads to Swagger 1.x, Swagger 2.0 and OpenAPI 3.x documents.

Configuration: All defaults are configurable via OASEXAMPLE_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- OASEXAMPLE_MAX_DEPTH (default: 64): maximum schema nesting sampled per example
- OASEXAMPLE_MAX_CONCURRENCY (default: 8): concurrent Swagger 1.x API declaration fetches
- OASEXAMPLE_CORRECT_REQUIRED_KEY (default: false): emit "required" instead of "requierd" on Swagger 2.0 query params
- OASEXAMPLE_ALLOW_PRIVATE_IPS (default: false): allow fetching from private networks
- OASEXAMPLE_FETCH_TIMEOUT (default: 30s): timeout for one document fetch
- OASEXAMPLE_CACHE_FILE_TTL (default: 15m): cache TTL for local file documents
- OASEXAMPLE_CACHE_URL_TTL (default: 5m): cache TTL for URL-fetched documents
- OASEXAMPLE_CACHE_ENABLED (default: true): disable document caching entirely

Caching: Parsed documents are cached per session. File entries use path+mtime as key (auto-invalidated on change). URL entries are cached with a shorter TTL. Every tool call works on its own copy. A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasexample", Version: oasexample.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "annotate",
		Description: "Annotate every operation of an API description. Each operation gets a params record (bodyParamsType, bodyParams, queryParams), each response and parameter gets an example holding a serialized JSON payload. Swagger 1.x resource listings are fetched with their API declarations and converted to Swagger 2.0 first. Returns counts, issues for operations that could not be fully annotated, and the annotated document (or writes it to output).",
	}, handleAnnotate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sample",
		Description: "Synthesize an example value for a JSON schema. Provide a bare schema, or a whole document plus a pointer such as #/definitions/Pet or #/components/schemas/Pet. References are resolved against the whole input; recursive schemas are cut with an empty object. Schemas of type file yield no example.",
	}, handleSample)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "params",
		Description: "Extract the normalized params record of each operation of a Swagger 2.0 or OpenAPI 3.x document without modifying it. Filter by path template or method. Operations whose params cannot be extracted are listed with an error.",
	}, handleParams)
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
