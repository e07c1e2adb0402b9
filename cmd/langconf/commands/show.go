package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/erraggy/langconf/serializer"
)

// ShowFlags contains flags for the show command
type ShowFlags struct {
	ExpansionFlags
	Format string
}

// SetupShowFlags creates and configures a FlagSet for the show command.
// Returns the FlagSet and a ShowFlags struct with bound flag variables.
func SetupShowFlags(streams Streams) (*pflag.FlagSet, *ShowFlags) {
	fs := pflag.NewFlagSet("show", pflag.ContinueOnError)
	fs.SetOutput(streams.Err)
	flags := &ShowFlags{}
	addExpansionFlags(fs, &flags.ExpansionFlags)
	fs.StringVarP(&flags.Format, "format", "f", FormatJSON, "output format: json or yaml")

	fs.Usage = usage(fs, streams.Err,
		"Usage: langconf show [flags] <input|url|->\n\n"+
			"Expand a language configuration and print it to stdout.",
		"",
		"Examples:",
		"  langconf show language-configuration.json",
		"  langconf show --format yaml --recursive child.json",
		"  cat child.json | langconf show -q -",
	)
	return fs, flags
}

// HandleShow executes the show command
func HandleShow(ctx context.Context, args []string, streams Streams) error {
	fs, flags := SetupShowFlags(streams)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("show command requires exactly one input path, URL, or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	input := fs.Arg(0)

	rt, err := newRuntime(flags.overlay(), streams)
	if err != nil {
		return err
	}
	result, err := rt.expand(ctx, input, streams.In)
	if err != nil {
		return fmt.Errorf("expanding %s: %w", FormatInputPath(input), err)
	}

	switch flags.Format {
	case FormatYAML:
		data, err := result.Document.MarshalYAMLBytes()
		if err != nil {
			return fmt.Errorf("marshaling to yaml: %w", err)
		}
		Writef(streams.Out, "%s", data)
	default:
		text, err := serializer.Serialize(result.Document, rt.cfg.IndentUnit())
		if err != nil {
			return err
		}
		Writef(streams.Out, "%s", text)
	}
	return nil
}
