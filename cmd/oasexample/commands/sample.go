package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/erraggy/oasexample/annotator"
	"github.com/erraggy/oasexample/document"
	"github.com/erraggy/oasexample/internal/cliutil"
	"github.com/erraggy/oasexample/parser"
	"github.com/erraggy/oasexample/sampler"
)

// SampleFlags contains flags for the sample command
type SampleFlags struct {
	Pointer  string
	Output   string
	MaxDepth int
	Compact  bool
}

// SetupSampleFlags creates and configures a FlagSet for the sample command.
// Returns the FlagSet and a SampleFlags struct with bound flag variables.
func SetupSampleFlags() (*flag.FlagSet, *SampleFlags) {
	fs := flag.NewFlagSet("sample", flag.ContinueOnError)
	flags := &SampleFlags{}

	fs.StringVar(&flags.Pointer, "p", "", "JSON pointer to the schema inside the document (default: the whole document)")
	fs.StringVar(&flags.Pointer, "pointer", "", "JSON pointer to the schema inside the document (default: the whole document)")
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.IntVar(&flags.MaxDepth, "max-depth", 0, "maximum schema nesting sampled (default: 64)")
	fs.BoolVar(&flags.Compact, "compact", false, "write the example on a single line")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasexample sample [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "Synthesize an example value for a JSON schema.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasexample sample pet.schema.json\n")
		cliutil.Writef(fs.Output(), "  oasexample sample -p '#/definitions/Pet' swagger.json\n")
		cliutil.Writef(fs.Output(), "  oasexample sample -p '#/components/schemas/Pet' --compact openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  echo '{\"type\": \"array\", \"items\": {\"type\": \"integer\"}}' | oasexample sample -\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - References are resolved against the whole input document\n")
		cliutil.Writef(fs.Output(), "  - Schemas of type file yield no example\n")
	}

	return fs, flags
}

// HandleSample executes the sample command
func HandleSample(args []string) error {
	return runSample(context.Background(), args, os.Stdin, os.Stdout, os.Stderr)
}

func runSample(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs, flags := SetupSampleFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("sample command requires exactly one file path, URL, or '-' for stdin")
	}
	if flags.MaxDepth < 0 {
		return fmt.Errorf("max-depth must be non-negative, got %d", flags.MaxDepth)
	}
	specPath := fs.Arg(0)
	if flags.Output != "" {
		if err := ValidateOutputPath(flags.Output, []string{specPath}); err != nil {
			return err
		}
	}

	res, err := loadDocument(ctx, specPath, stdin)
	if err != nil {
		return err
	}

	var schema any = res.Document
	if flags.Pointer != "" {
		schema, err = document.ResolvePointer(res.Document, flags.Pointer)
		if err != nil {
			return fmt.Errorf("selecting schema: %w", err)
		}
	}

	s := sampler.New(
		sampler.WithRefLookup(annotator.RefLookup(res.Document)),
		sampler.WithMaxDepth(flags.MaxDepth),
	)
	value, ok := s.Sample(schema)
	if !ok {
		cliutil.Warning(stderr, "schema yields no example")
		return nil
	}

	indent := "  "
	if flags.Compact {
		indent = ""
	}
	data, err := document.MarshalIndent(value, "", indent)
	if err != nil {
		return fmt.Errorf("serializing example: %w", err)
	}
	data = append(data, '\n')

	if flags.Output == "" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("writing to stdout: %w", err)
		}
		return nil
	}
	return WriteOutput(flags.Output, data)
}

// loadDocument reads a document from a file, a URL, or stdin.
func loadDocument(ctx context.Context, specPath string, stdin io.Reader) (*parser.ParseResult, error) {
	p := parser.New()
	if specPath == StdinFilePath {
		res, err := p.ParseReader(stdin)
		if err != nil {
			return nil, fmt.Errorf("parsing stdin: %w", err)
		}
		return res, nil
	}
	res, err := p.Fetch(ctx, specPath)
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}
	return res, nil
}
