// Package commands provides CLI command handlers for oasexample.
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/erraggy/oasexample"
	"github.com/erraggy/oasexample/document"
	"github.com/erraggy/oasexample/internal/cliutil"
	"github.com/erraggy/oasexample/parser"
)

// Output format constants
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ValidateDocumentFormat validates the format an output document is written
// in. An empty format keeps the source format.
func ValidateDocumentFormat(format string) error {
	if format != "" && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", format, FormatJSON, FormatYAML)
	}
	return nil
}

// MarshalDocument marshals a document tree to bytes in the specified format,
// keeping the key order of every object.
func MarshalDocument(doc any, format parser.SourceFormat) ([]byte, error) {
	if format == parser.SourceFormatJSON {
		data, err := document.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return document.MarshalYAML(doc)
}

// OutputFormat picks the format an output document is written in: the
// requested one, else the source format, else YAML.
func OutputFormat(requested string, source parser.SourceFormat) parser.SourceFormat {
	switch requested {
	case FormatJSON:
		return parser.SourceFormatJSON
	case FormatYAML:
		return parser.SourceFormatYAML
	}
	if source == parser.SourceFormatJSON {
		return parser.SourceFormatJSON
	}
	return parser.SourceFormatYAML
}

// ValidateOutputPath checks if the output path is safe to write to
func ValidateOutputPath(outputPath string, inputPaths []string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	for _, inputPath := range inputPaths {
		if inputPath == StdinFilePath {
			continue
		}
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}
		if absOutputPath == absInputPath {
			return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}
	return RejectSymlinkOutput(filepath.Clean(outputPath))
}

// RejectSymlinkOutput checks if the output path is a symlink and returns an error if so.
// This prevents symlink attacks where a symlink could redirect output to an unintended location.
func RejectSymlinkOutput(cleanedPath string) error {
	info, err := os.Lstat(cleanedPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("commands: refusing to write to symlink: %s", cleanedPath)
	}
	return nil
}

// WriteOutput writes data to outputPath, or to stdout when outputPath is empty.
func WriteOutput(outputPath string, data []byte) error {
	if outputPath == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("writing to stdout: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(outputPath, data, 0600); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}

// FormatSpecPath returns a display-friendly path for the input document.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// OutputSpecHeader writes the tool version and input document lines to w.
func OutputSpecHeader(w io.Writer, specPath string) {
	cliutil.Writef(w, "oasexample version: %s\n", oasexample.Version())
	cliutil.Writef(w, "Specification: %s\n", FormatSpecPath(specPath))
}
