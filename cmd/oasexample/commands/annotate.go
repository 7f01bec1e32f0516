package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/erraggy/oasexample/annotator"
	"github.com/erraggy/oasexample/internal/cliutil"
	"github.com/erraggy/oasexample/internal/issues"
	"github.com/erraggy/oasexample/internal/severity"
	"github.com/erraggy/oasexample/parser"
)

// AnnotateFlags contains flags for the annotate command
type AnnotateFlags struct {
	Output             string
	Format             string
	Quiet              bool
	NoWarnings         bool
	Strict             bool
	CorrectRequiredKey bool
	MaxDepth           int
	Concurrency        int
	Timeout            time.Duration
	Debug              bool
	NoColor            bool
}

// SetupAnnotateFlags creates and configures a FlagSet for the annotate command.
// Returns the FlagSet and an AnnotateFlags struct with bound flag variables.
func SetupAnnotateFlags() (*flag.FlagSet, *AnnotateFlags) {
	fs := flag.NewFlagSet("annotate", flag.ContinueOnError)
	flags := &AnnotateFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Format, "f", "", "output document format: json or yaml (default: source format)")
	fs.StringVar(&flags.Format, "format", "", "output document format: json or yaml (default: source format)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.NoWarnings, "no-warnings", false, "suppress warning and info messages")
	fs.BoolVar(&flags.Strict, "strict", false, "fail when any operation could not be annotated")
	fs.BoolVar(&flags.CorrectRequiredKey, "correct-required-key", false, "emit \"required\" instead of the historical \"requierd\" key on Swagger 2.0 query params")
	fs.IntVar(&flags.MaxDepth, "max-depth", 0, "maximum schema nesting sampled per example (default: 64)")
	fs.IntVar(&flags.Concurrency, "concurrency", annotator.DefaultMaxConcurrency, "maximum concurrent Swagger 1.x API declaration fetches")
	fs.DurationVar(&flags.Timeout, "timeout", 0, "abort the run after this duration (default: no limit)")
	fs.BoolVar(&flags.Debug, "debug", false, "write debug logs to stderr")
	fs.BoolVar(&flags.NoColor, "no-color", false, "disable colored status output")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasexample annotate [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "Attach params records and serialized examples to every operation of an API description.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nSupported Inputs:\n")
		cliutil.Writef(fs.Output(), "  - Swagger 1.x resource listings (API declarations are fetched relative to the listing)\n")
		cliutil.Writef(fs.Output(), "  - Swagger 2.0\n")
		cliutil.Writef(fs.Output(), "  - OpenAPI 3.x\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasexample annotate swagger.json -o annotated.json\n")
		cliutil.Writef(fs.Output(), "  oasexample annotate https://petstore.swagger.io/v2/swagger.json\n")
		cliutil.Writef(fs.Output(), "  oasexample annotate --concurrency 2 https://example.com/api-docs\n")
		cliutil.Writef(fs.Output(), "  cat openapi.yaml | oasexample annotate -q -f json - > annotated.json\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Swagger 1.x input is converted to Swagger 2.0 before annotation\n")
		cliutil.Writef(fs.Output(), "  - Operations whose params cannot be extracted are reported and left without params\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Annotation successful\n")
		cliutil.Writef(fs.Output(), "  1    Annotation failed, or operations failed (in --strict mode)\n")
	}

	return fs, flags
}

// HandleAnnotate executes the annotate command
func HandleAnnotate(args []string) error {
	return runAnnotate(context.Background(), args, os.Stdin, os.Stderr)
}

func runAnnotate(ctx context.Context, args []string, stdin io.Reader, stderr io.Writer) error {
	fs, flags := SetupAnnotateFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("annotate command requires exactly one file path, URL, or '-' for stdin")
	}
	if err := ValidateDocumentFormat(flags.Format); err != nil {
		return err
	}
	if flags.MaxDepth < 0 {
		return fmt.Errorf("max-depth must be non-negative, got %d", flags.MaxDepth)
	}
	if flags.Concurrency < 0 {
		return fmt.Errorf("concurrency must be non-negative, got %d", flags.Concurrency)
	}

	specPath := fs.Arg(0)
	if flags.Output != "" {
		if err := ValidateOutputPath(flags.Output, []string{specPath}); err != nil {
			return err
		}
	}
	if flags.NoColor {
		cliutil.DisableColor()
	}

	a := annotator.New()
	a.MaxDepth = flags.MaxDepth
	a.MaxConcurrency = flags.Concurrency
	a.CorrectRequiredKey = flags.CorrectRequiredKey
	if flags.Debug {
		a.Logger = parser.NewTextLogger(stderr, slog.LevelDebug)
	}

	if flags.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flags.Timeout)
		defer cancel()
	}

	var result *annotator.AnnotationResult
	var err error
	if specPath == StdinFilePath {
		p := parser.New()
		p.Logger = a.Logger
		parseResult, perr := p.ParseReader(stdin)
		if perr != nil {
			return fmt.Errorf("parsing stdin: %w", perr)
		}
		result, err = a.AnnotateParsed(ctx, parseResult)
	} else {
		result, err = a.Annotate(ctx, specPath)
	}
	if err != nil {
		return fmt.Errorf("annotating document: %w", err)
	}

	if !flags.Quiet {
		printAnnotateSummary(stderr, specPath, result, flags.NoWarnings)
	}

	data, err := MarshalDocument(result.Document, OutputFormat(flags.Format, result.SourceFormat))
	if err != nil {
		return fmt.Errorf("marshaling annotated document: %w", err)
	}
	if err := WriteOutput(flags.Output, data); err != nil {
		return err
	}
	if flags.Output != "" && !flags.Quiet {
		cliutil.Writef(stderr, "\nOutput written to: %s\n", flags.Output)
	}

	if flags.Strict && result.HasErrors() {
		return fmt.Errorf("%d operation(s) could not be annotated", len(result.FailedOperations()))
	}
	return nil
}

func printAnnotateSummary(w io.Writer, specPath string, result *annotator.AnnotationResult, noWarnings bool) {
	cliutil.Writef(w, "OpenAPI Example Annotator\n")
	cliutil.Writef(w, "=========================\n\n")
	OutputSpecHeader(w, specPath)
	cliutil.Writef(w, "Dialect: %s\n", result.Dialect)
	cliutil.Writef(w, "Source Version: %s\n", result.SourceVersion)
	if result.DeclarationCount > 0 {
		cliutil.Writef(w, "API Declarations: %d\n", result.DeclarationCount)
	}
	cliutil.Writef(w, "Operations: %d\n", result.OperationCount)
	cliutil.Writef(w, "Examples: %d\n", result.ExampleCount)
	cliutil.Writef(w, "Sampler Cache: %d hits, %d misses\n", result.SamplerStats.Hits, result.SamplerStats.Misses)
	cliutil.Writef(w, "Total Time: %v\n\n", result.Duration)

	shown := filterIssues(result.Issues, noWarnings)
	if len(shown) > 0 {
		cliutil.Writef(w, "Issues (%d):\n", len(shown))
		for _, issue := range shown {
			cliutil.Writef(w, "  %s\n", issue.String())
		}
		cliutil.Writef(w, "\n")
	}

	counts := issues.Count(result.Issues)
	if failed := len(result.FailedOperations()); failed > 0 || counts.Error > 0 || counts.Critical > 0 {
		cliutil.Failure(w, "Annotation completed with %d failed operation(s), %d warning(s)", failed, counts.Warning)
		return
	}
	if counts.Warning > 0 || counts.Info > 0 {
		cliutil.Success(w, "Annotation successful (%d info, %d warnings)", counts.Info, counts.Warning)
		return
	}
	cliutil.Success(w, "Annotation successful")
}

// filterIssues drops warnings and info messages when noWarnings is set.
func filterIssues(list []issues.Issue, noWarnings bool) []issues.Issue {
	if !noWarnings {
		return list
	}
	var out []issues.Issue
	for _, i := range list {
		if i.Severity == severity.SeverityError || i.Severity == severity.SeverityCritical {
			out = append(out, i)
		}
	}
	return out
}
