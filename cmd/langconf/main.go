package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/langconf"
	"github.com/erraggy/langconf/cmd/langconf/commands"
)

// commandNames lists the subcommands, in help order.
var commandNames = []string{"expand", "show", "check", "commit-sha", "mcp", "version", "help"}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], commands.StdStreams())
	stop()
	os.Exit(code)
}

// run executes the command named by args[0] and returns the exit status.
func run(ctx context.Context, args []string, streams commands.Streams) int {
	if len(args) < 1 {
		printUsage(streams.Err)
		return 1
	}

	var handler func(context.Context, []string, commands.Streams) error
	switch command := args[0]; command {
	case "version", "-v", "--version":
		commands.Writef(streams.Out, "langconf v%s\n", langconf.Version())
		commands.Writef(streams.Out, "%s\n", langconf.BuildInfo())
		return 0
	case "help", "-h", "--help":
		printUsage(streams.Out)
		return 0
	case "expand":
		handler = commands.HandleExpand
	case "show":
		handler = commands.HandleShow
	case "check":
		handler = commands.HandleCheck
	case "commit-sha":
		handler = commands.HandleCommitSHA
	case "mcp":
		handler = commands.HandleMCP
	default:
		commands.Writef(streams.Err, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			commands.Writef(streams.Err, "Did you mean '%s'?\n", suggestion)
		}
		commands.Writef(streams.Err, "\n")
		printUsage(streams.Err)
		return 1
	}

	if err := handler(ctx, args[1:], streams); err != nil {
		commands.Writef(streams.Err, "Error: %v\n", err)
		return 1
	}
	return 0
}

// suggestCommand returns the command closest to input, or "" when none is
// within an edit distance of 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

const usageText = `langconf - expand editor language configuration files

Usage:
  langconf <command> [flags] [arguments]

Commands:
  expand       Expand extends/overrides and write the result to a file
  show         Expand and print the result as json or yaml
  check        Report missing or malformed language configuration keys
  commit-sha   Print the commit sha a GitHub ref points at
  mcp          Run the MCP server on stdio
  version      Show version information
  help         Show this help message

Run 'langconf <command> --help' for the flags of a command.

Environment:
  GITHUB_TOKEN             token for GitHub API requests
  LANGCONF_INDENT          default indent (tab)
  LANGCONF_RECURSIVE       follow extends through every ancestor (false)
  LANGCONF_LOG_LEVEL       log level (info)
  LANGCONF_LOG_FORMAT      console or json (console)
`

func printUsage(w io.Writer) {
	commands.Writef(w, "%s", usageText)
}
