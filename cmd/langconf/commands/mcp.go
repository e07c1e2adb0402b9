package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/erraggy/langconf/internal/mcpserver"
)

// MCPFlags contains flags for the mcp command
type MCPFlags struct {
	ExpansionFlags
}

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
// Returns the FlagSet and an MCPFlags struct with bound flag variables.
func SetupMCPFlags(streams Streams) (*pflag.FlagSet, *MCPFlags) {
	fs := pflag.NewFlagSet("mcp", pflag.ContinueOnError)
	fs.SetOutput(streams.Err)
	flags := &MCPFlags{}
	addLoggingFlags(fs, &flags.ExpansionFlags)

	fs.Usage = usage(fs, streams.Err,
		"Usage: langconf mcp [flags]\n\n"+
			"Run the MCP server on stdin/stdout. Logs go to stderr.",
		"",
		"Tools:",
		"  expand            expand a document given as a file, URL or inline content",
		"  check_structure   run the advisory structure check",
		"",
		"Expansion defaults come from LANGCONF_* environment variables.",
	)
	return fs, flags
}

// HandleMCP executes the mcp command
func HandleMCP(ctx context.Context, args []string, streams Streams) error {
	fs, flags := SetupMCPFlags(streams)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	rt, err := newRuntime(flags.overlay(), streams)
	if err != nil {
		return err
	}
	rt.logger.Info("starting MCP server on stdio")
	return mcpserver.Run(ctx, rt.cfg, rt.logger)
}
