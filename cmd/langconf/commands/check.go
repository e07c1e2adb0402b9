package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/erraggy/langconf/parser"
	"github.com/erraggy/langconf/source"
)

// CheckFlags contains flags for the check command
type CheckFlags struct {
	ExpansionFlags
	Expand bool
}

// SetupCheckFlags creates and configures a FlagSet for the check command.
// Returns the FlagSet and a CheckFlags struct with bound flag variables.
func SetupCheckFlags(streams Streams) (*pflag.FlagSet, *CheckFlags) {
	fs := pflag.NewFlagSet("check", pflag.ContinueOnError)
	fs.SetOutput(streams.Err)
	flags := &CheckFlags{}
	fs.BoolVarP(&flags.Expand, "expand", "e", false, "expand extends and overrides before checking")
	fs.BoolVarP(&flags.Recursive, "recursive", "r", false, "with --expand, follow extends through every ancestor")
	addLoggingFlags(fs, &flags.ExpansionFlags)

	fs.Usage = usage(fs, streams.Err,
		"Usage: langconf check [flags] <input|url|->\n\n"+
			"Parse a language configuration and report keys an editor expects that\n"+
			"are missing or have the wrong shape.",
		"",
		"Examples:",
		"  langconf check language-configuration.json",
		"  langconf check --expand child.json",
		"",
		"Exit Codes:",
		"  0    The document was checked (issues are advisory)",
		"  1    The document could not be loaded or parsed",
	)
	return fs, flags
}

// HandleCheck executes the check command
func HandleCheck(ctx context.Context, args []string, streams Streams) error {
	fs, flags := SetupCheckFlags(streams)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("check command requires exactly one input path, URL, or '-' for stdin")
	}
	input := fs.Arg(0)

	rt, err := newRuntime(flags.overlay(), streams)
	if err != nil {
		return err
	}

	var doc *parser.Document
	if flags.Expand {
		result, err := rt.expand(ctx, input, streams.In)
		if err != nil {
			return fmt.Errorf("expanding %s: %w", FormatInputPath(input), err)
		}
		doc = result.Document
	} else {
		doc, err = rt.load(ctx, input, streams.In)
		if err != nil {
			return err
		}
	}

	issues := parser.CheckStructure(doc)
	if len(issues) == 0 {
		Writef(streams.Out, "%s: OK\n", FormatInputPath(input))
		return nil
	}
	Writef(streams.Out, "%s: %d structure issue(s)\n", FormatInputPath(input), len(issues))
	for _, issue := range issues {
		Writef(streams.Out, "  - %s\n", issue)
	}
	return nil
}

// load reads and parses input without expanding it.
func (r *runtime) load(ctx context.Context, input string, in io.Reader) (*parser.Document, error) {
	if input == StdinFilePath {
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return parser.ParseNamed(data, FormatInputPath(input))
	}
	content, err := r.loader.Fetch(ctx, input, source.Origin{})
	if err != nil {
		return nil, err
	}
	return parser.ParseNamed(content.Data, content.Location)
}
