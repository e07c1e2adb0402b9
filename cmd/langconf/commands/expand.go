package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/erraggy/langconf/expander"
	"github.com/erraggy/langconf/internal/fileutil"
)

// ExpandFlags contains flags for the expand command
type ExpandFlags struct {
	ExpansionFlags
}

// SetupExpandFlags creates and configures a FlagSet for the expand command.
// Returns the FlagSet and an ExpandFlags struct with bound flag variables.
func SetupExpandFlags(streams Streams) (*pflag.FlagSet, *ExpandFlags) {
	fs := pflag.NewFlagSet("expand", pflag.ContinueOnError)
	fs.SetOutput(streams.Err)
	flags := &ExpandFlags{}
	addExpansionFlags(fs, &flags.ExpansionFlags)

	fs.Usage = usage(fs, streams.Err,
		"Usage: langconf expand [flags] <input|url|-> <output>\n\n"+
			"Resolve the extends and overrides keys of a language configuration and\n"+
			"write the expanded document to <output>. Nothing is written on failure.",
		"",
		"Examples:",
		"  langconf expand language-configuration.json out/language-configuration.json",
		"  langconf expand --recursive --indent 2 child.json expanded.json",
		"  langconf expand https://raw.githubusercontent.com/o/r/HEAD/lc.json lc.json",
		"",
		"Exit Codes:",
		"  0    Expansion successful (merge conflicts are reported but do not fail)",
		"  1    The input or a parent could not be fetched or parsed",
	)
	return fs, flags
}

// HandleExpand executes the expand command
func HandleExpand(ctx context.Context, args []string, streams Streams) error {
	fs, flags := SetupExpandFlags(streams)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("expand command requires an input and an output path")
	}
	input, output := fs.Arg(0), fs.Arg(1)
	if err := ValidateOutputPath(output, input); err != nil {
		return err
	}
	cleanOutput, err := fileutil.SanitizeOutputPath(output)
	if err != nil {
		return err
	}

	rt, err := newRuntime(flags.overlay(), streams)
	if err != nil {
		return err
	}
	result, err := rt.expand(ctx, input, streams.In, expander.WithOutputPath(cleanOutput))
	if err != nil {
		return fmt.Errorf("expanding %s: %w", FormatInputPath(input), err)
	}

	if !flags.Quiet {
		Writef(streams.Err, "Expanded %s -> %s\n", FormatInputPath(input), output)
		if len(result.Chain) > 0 {
			Writef(streams.Err, "Chain: %d document(s)\n", len(result.Chain))
		}
		Writef(streams.Err, "Conflicts: %d\n", len(result.Conflicts))
		if rt.cfg.CheckStructure {
			Writef(streams.Err, "Structure issues: %d\n", len(result.StructureIssues))
		}
	}
	return nil
}
