package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/erraggy/oasexample/annotator"
	"github.com/erraggy/oasexample/document"
	"github.com/erraggy/oasexample/internal/cliutil"
	"github.com/erraggy/oasexample/internal/httputil"
	"github.com/erraggy/oasexample/params"
	"github.com/erraggy/oasexample/parser"
)

// ParamsFlags contains flags for the params command
type ParamsFlags struct {
	Path               string
	Method             string
	Format             string
	Output             string
	CorrectRequiredKey bool
}

// SetupParamsFlags creates and configures a FlagSet for the params command.
// Returns the FlagSet and a ParamsFlags struct with bound flag variables.
func SetupParamsFlags() (*flag.FlagSet, *ParamsFlags) {
	fs := flag.NewFlagSet("params", flag.ContinueOnError)
	flags := &ParamsFlags{}

	fs.StringVar(&flags.Path, "path", "", "only extract the operations of this path template")
	fs.StringVar(&flags.Method, "m", "", "only extract operations with this HTTP method")
	fs.StringVar(&flags.Method, "method", "", "only extract operations with this HTTP method")
	fs.StringVar(&flags.Format, "f", FormatJSON, "output format: json or yaml")
	fs.StringVar(&flags.Format, "format", FormatJSON, "output format: json or yaml")
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.BoolVar(&flags.CorrectRequiredKey, "correct-required-key", false, "emit \"required\" instead of the historical \"requierd\" key on Swagger 2.0 query params")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasexample params [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "Extract the normalized params record of each operation of a Swagger 2.0 or OpenAPI 3.x document.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasexample params swagger.json\n")
		cliutil.Writef(fs.Output(), "  oasexample params --path /pets -m post openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oasexample params -f yaml https://petstore.swagger.io/v2/swagger.json\n")
		cliutil.Writef(fs.Output(), "\nOutput:\n")
		cliutil.Writef(fs.Output(), "  An object keyed by path and then method, holding bodyParamsType, bodyParams and queryParams.\n")
		cliutil.Writef(fs.Output(), "  Operations whose params cannot be extracted are reported on stderr and left out.\n")
	}

	return fs, flags
}

// HandleParams executes the params command
func HandleParams(args []string) error {
	return runParams(context.Background(), args, os.Stdin, os.Stdout, os.Stderr)
}

func runParams(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs, flags := SetupParamsFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("params command requires exactly one file path, URL, or '-' for stdin")
	}
	if flags.Format != FormatJSON && flags.Format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", flags.Format, FormatJSON, FormatYAML)
	}
	method := strings.ToLower(flags.Method)
	if method != "" && !httputil.IsOperationMethod(method) {
		return fmt.Errorf("invalid method '%s'. Valid methods: %s", flags.Method, strings.Join(httputil.OperationMethods, ", "))
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

	var dialect params.Dialect
	switch res.Dialect {
	case parser.DialectSwagger2:
		dialect = params.DialectV2
	case parser.DialectOAS3:
		dialect = params.DialectV3
	default:
		return fmt.Errorf("params are extracted from Swagger 2.0 and OpenAPI 3.x documents; got %s (use annotate for Swagger 1.x)", res.Dialect)
	}

	lookup := annotator.RefLookup(res.Document)
	opts := []params.Option{
		params.WithRefLookup(lookup),
		params.WithCorrectRequiredKey(flags.CorrectRequiredKey),
	}

	out := document.NewObject()
	failed := 0
	paths, _ := res.Document.Object("paths")
	if paths != nil {
		paths.Range(func(path string, raw any) bool {
			if flags.Path != "" && path != flags.Path {
				return true
			}
			item, ok := raw.(*document.Object)
			if !ok {
				return true
			}
			if ref, has := item.String("$ref"); has {
				if target, found := lookup(ref); found {
					item = target
				}
			}
			records := document.NewObject()
			item.Range(func(m string, rawOp any) bool {
				if !httputil.IsOperationMethod(m) || (method != "" && m != method) {
					return true
				}
				op, ok := rawOp.(*document.Object)
				if !ok {
					return true
				}
				result, err := params.Extract(op, dialect, opts...)
				if err != nil {
					failed++
					cliutil.Failure(stderr, "%s %s: %v", strings.ToUpper(m), path, err)
					return true
				}
				records.Set(m, result.ToObject())
				return true
			})
			if records.Len() > 0 {
				out.Set(path, records)
			}
			return true
		})
	}

	if out.Len() == 0 && failed == 0 && (flags.Path != "" || method != "") {
		return fmt.Errorf("no operation matches the given path and method")
	}

	var data []byte
	if flags.Format == FormatYAML {
		data, err = MarshalDocument(out, parser.SourceFormatYAML)
	} else {
		data, err = MarshalDocument(out, parser.SourceFormatJSON)
	}
	if err != nil {
		return fmt.Errorf("marshaling params: %w", err)
	}

	if flags.Output == "" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("writing to stdout: %w", err)
		}
	} else if err := WriteOutput(flags.Output, data); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("params extraction failed for %d operation(s)", failed)
	}
	return nil
}
