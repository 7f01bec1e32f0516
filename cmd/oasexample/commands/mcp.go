package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasexample/internal/cliutil"
	"github.com/erraggy/oasexample/internal/mcpserver"
)

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasexample mcp\n\n")
		cliutil.Writef(fs.Output(), "Run an MCP (Model Context Protocol) server over stdio exposing the annotate, sample and params tools.\n\n")
		cliutil.Writef(fs.Output(), "Configuration is read from OASEXAMPLE_* environment variables:\n")
		cliutil.Writef(fs.Output(), "  OASEXAMPLE_MAX_DEPTH            maximum schema nesting sampled (default: 64)\n")
		cliutil.Writef(fs.Output(), "  OASEXAMPLE_MAX_CONCURRENCY      concurrent Swagger 1.x declaration fetches (default: 8)\n")
		cliutil.Writef(fs.Output(), "  OASEXAMPLE_CORRECT_REQUIRED_KEY emit \"required\" instead of \"requierd\" (default: false)\n")
		cliutil.Writef(fs.Output(), "  OASEXAMPLE_ALLOW_PRIVATE_IPS    allow fetching from private networks (default: false)\n")
		cliutil.Writef(fs.Output(), "  OASEXAMPLE_FETCH_TIMEOUT        timeout for one document fetch (default: 30s)\n")
	}
	return fs
}

// HandleMCP executes the mcp command
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
