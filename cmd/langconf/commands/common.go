// Package commands provides CLI command handlers for langconf.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/erraggy/langconf/expander"
	"github.com/erraggy/langconf/internal/cliutil"
	"github.com/erraggy/langconf/internal/config"
	"github.com/erraggy/langconf/parser"
	"github.com/erraggy/langconf/source"
)

// Output format constants
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// Streams are the standard streams a command reads from and writes to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process's standard streams.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// ExpansionFlags are the flags shared by every command that expands a
// document.
type ExpansionFlags struct {
	Indent         string
	Recursive      bool
	MaxDepth       int
	CheckStructure bool
	Timeout        time.Duration
	Quiet          bool
	LogLevel       string
	LogFormat      string
}

// addLoggingFlags binds the logging flags every command takes.
func addLoggingFlags(fs *pflag.FlagSet, f *ExpansionFlags) {
	fs.BoolVarP(&f.Quiet, "quiet", "q", false, "quiet mode: only errors are logged")
	fs.StringVar(&f.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (env LANGCONF_LOG_LEVEL)")
	fs.StringVar(&f.LogFormat, "log-format", "", "log format: console or json (env LANGCONF_LOG_FORMAT)")
	fs.DurationVar(&f.Timeout, "timeout", 0, "HTTP request timeout, e.g. 10s (env LANGCONF_HTTP_TIMEOUT)")
}

// addExpansionFlags binds the expansion and logging flags.
func addExpansionFlags(fs *pflag.FlagSet, f *ExpansionFlags) {
	fs.StringVar(&f.Indent, "indent", "", "indent unit: 'tab', a number of spaces, or whitespace (env LANGCONF_INDENT)")
	fs.BoolVarP(&f.Recursive, "recursive", "r", false, "follow extends through every ancestor (env LANGCONF_RECURSIVE)")
	fs.IntVar(&f.MaxDepth, "max-depth", 0, "maximum extends hops in recursive mode (env LANGCONF_MAX_DEPTH)")
	fs.BoolVar(&f.CheckStructure, "check-structure", false, "run the advisory structure check on the result (env LANGCONF_CHECK_STRUCTURE)")
	addLoggingFlags(fs, f)
}

// overlay returns the configuration values the flags set. Zero values
// leave the environment in charge.
func (f *ExpansionFlags) overlay() *config.Config {
	level := f.LogLevel
	if f.Quiet && level == "" {
		level = "error"
	}
	return &config.Config{
		Indent:         f.Indent,
		Recursive:      f.Recursive,
		MaxDepth:       f.MaxDepth,
		CheckStructure: f.CheckStructure,
		HTTPTimeout:    f.Timeout,
		LogLevel:       level,
		LogFormat:      f.LogFormat,
	}
}

// runtime is what a command builds from its flags and the environment.
type runtime struct {
	cfg    *config.Config
	logger parser.Logger
	loader *source.Loader
}

func newRuntime(overlay *config.Config, streams Streams) (*runtime, error) {
	cfg, err := config.Load(overlay)
	if err != nil {
		return nil, err
	}
	logger := parser.NewZerologAdapter(cfg.NewLogger(streams.Err))
	return &runtime{cfg: cfg, logger: logger, loader: cfg.NewLoader(logger)}, nil
}

// expand runs the expander on input, which is a path, URL, or "-" for
// stdin. extra is applied after the configured options.
func (r *runtime) expand(ctx context.Context, input string, in io.Reader, extra ...expander.Option) (*expander.ExpandResult, error) {
	opts := append(r.cfg.ExpanderOptions(r.loader, r.logger), extra...)
	if input != StdinFilePath {
		return expander.ExpandWithOptions(ctx, append(opts, expander.WithReference(input))...)
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	doc, err := parser.ParseNamed(data, FormatInputPath(input))
	if err != nil {
		return nil, err
	}
	return expander.ExpandWithOptions(ctx, append(opts, expander.WithDocument(doc, source.Origin{}))...)
}

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", format, FormatJSON, FormatYAML)
	}
	return nil
}

// ValidateOutputPath checks that outputPath would not overwrite inputPath.
func ValidateOutputPath(outputPath, inputPath string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	if source.IsURL(inputPath) || inputPath == StdinFilePath {
		return nil
	}
	absInputPath, err := filepath.Abs(inputPath)
	if err != nil {
		return fmt.Errorf("invalid input path %s: %w", inputPath, err)
	}
	if absOutputPath == absInputPath {
		return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
	}
	return nil
}

// FormatInputPath returns a display-friendly name for an input.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatInputPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}

// usage returns a pflag Usage function printing the header, the flag
// table and the footer lines to w.
func usage(fs *pflag.FlagSet, w io.Writer, header string, footer ...string) func() {
	return func() {
		Writef(w, "%s\n", header)
		if fs.HasFlags() {
			Writef(w, "\nFlags:\n%s", fs.FlagUsages())
		}
		cliutil.Writeln(w, footer...)
	}
}
