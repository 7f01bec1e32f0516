package main

import (
	"fmt"
	"os"

	"github.com/erraggy/oasexample"
	"github.com/erraggy/oasexample/cmd/oasexample/commands"
	"github.com/erraggy/oasexample/internal/cliutil"
)

// commandNames lists the subcommands suggested for typos.
var commandNames = []string{"annotate", "sample", "params", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	var err error

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasexample v%s\n", oasexample.Version())
		fmt.Printf("commit: %s\n", oasexample.Commit())
		fmt.Printf("built: %s\n", oasexample.BuildTime())
		fmt.Printf("go: %s\n", oasexample.GoVersion())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "annotate":
		err = commands.HandleAnnotate(os.Args[2:])
	case "sample":
		err = commands.HandleSample(os.Args[2:])
	case "params":
		err = commands.HandleParams(os.Args[2:])
	case "mcp":
		err = commands.HandleMCP(os.Args[2:])
	default:
		cliutil.Writef(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			cliutil.Writef(os.Stderr, "Did you mean: %s?\n", suggestion)
		}
		cliutil.Writef(os.Stderr, "\n")
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		cliutil.Writef(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the known command closest to input, or "" when none
// is within an edit distance of 2.
func suggestCommand(input string) string {
	best := ""
	bestDist := 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	cliutil.Writef(os.Stderr, `oasexample - attach params records and example payloads to API descriptions

Usage:
  oasexample <command> [options]

Commands:
  annotate    Annotate every operation of a Swagger 1.x, 2.0 or OpenAPI 3.x document
  sample      Synthesize an example value for a JSON schema
  params      Extract the normalized params record of each operation
  mcp         Run an MCP server over stdio
  version     Show version information
  help        Show this help message

Run 'oasexample <command> --help' for more information on a command.
`)
}
