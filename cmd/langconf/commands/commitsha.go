package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/erraggy/langconf/source"
)

// CommitSHAFlags contains flags for the commit-sha command
type CommitSHAFlags struct {
	ExpansionFlags
	APIURL string
}

// SetupCommitSHAFlags creates and configures a FlagSet for the commit-sha command.
// Returns the FlagSet and a CommitSHAFlags struct with bound flag variables.
func SetupCommitSHAFlags(streams Streams) (*pflag.FlagSet, *CommitSHAFlags) {
	fs := pflag.NewFlagSet("commit-sha", pflag.ContinueOnError)
	fs.SetOutput(streams.Err)
	flags := &CommitSHAFlags{}
	fs.StringVar(&flags.APIURL, "api-url", "", "GitHub API base URL (env LANGCONF_GITHUB_API_URL)")
	addLoggingFlags(fs, &flags.ExpansionFlags)

	fs.Usage = usage(fs, streams.Err,
		"Usage: langconf commit-sha [flags] <owner/repo> [ref]\n\n"+
			"Print the sha of the commit ref points at (default "+source.DefaultCommitRef+").\n"+
			"Use it to pin extends URLs to an exact revision. Set GITHUB_TOKEN to\n"+
			"raise the API rate limit.",
		"",
		"Examples:",
		"  langconf commit-sha microsoft/vscode",
		"  langconf commit-sha microsoft/vscode release/1.90",
	)
	return fs, flags
}

// HandleCommitSHA executes the commit-sha command
func HandleCommitSHA(ctx context.Context, args []string, streams Streams) error {
	fs, flags := SetupCommitSHAFlags(streams)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return fmt.Errorf("commit-sha command requires a repository and an optional ref")
	}
	repo, ref := fs.Arg(0), fs.Arg(1)

	overlay := flags.overlay()
	overlay.GitHubAPIURL = flags.APIURL
	rt, err := newRuntime(overlay, streams)
	if err != nil {
		return err
	}
	sha, err := rt.loader.CommitSHA(ctx, repo, ref)
	if err != nil {
		return err
	}
	Writef(streams.Out, "%s\n", sha)
	return nil
}
