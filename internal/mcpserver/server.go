// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes langconf expansion as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/langconf"
	"github.com/erraggy/langconf/internal/config"
	"github.com/erraggy/langconf/parser"
	"github.com/erraggy/langconf/source"
)

const serverInstructions = `langconf MCP server: expands editor language configuration files that use "extends" and "overrides".

Configuration: defaults come from the same LANGCONF_* environment variables as the CLI (LANGCONF_RECURSIVE, LANGCONF_MAX_DEPTH, LANGCONF_INDENT, LANGCONF_CHECK_STRUCTURE, LANGCONF_HTTP_TIMEOUT, GITHUB_TOKEN). Set them in your MCP client config.

Server settings:
- LANGCONF_MCP_ALLOW_PRIVATE_IPS (default: false): allow URL fetches that resolve to private or loopback addresses
- LANGCONF_MCP_MAX_INLINE_SIZE (default: 1048576): maximum size in bytes of inline document content

Every call fetches its extends chain afresh; nothing is cached between calls.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context, cfg *config.Config, logger parser.Logger) error {
	server, err := newServer(cfg, logger)
	if err != nil {
		return err
	}
	return server.Run(ctx, &mcp.StdioTransport{})
}

func newServer(cfg *config.Config, logger parser.Logger) (*mcp.Server, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = parser.NopLogger{}
	}
	t := newToolset(cfg, settings, logger)

	server := mcp.NewServer(
		&mcp.Implementation{Name: "langconf", Version: langconf.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	t.register(server)
	return server, nil
}

// toolset carries what every tool handler needs.
type toolset struct {
	cfg      *config.Config
	settings settings
	fetcher  source.Fetcher
	logger   parser.Logger
}

func newToolset(cfg *config.Config, s settings, logger parser.Logger) *toolset {
	t := &toolset{cfg: cfg, settings: s, logger: logger.With("component", "mcp")}
	if s.AllowPrivateIPs {
		t.fetcher = cfg.NewLoader(t.logger)
	} else {
		t.fetcher = newSafeLoader(cfg, t.logger)
	}
	return t
}

func (t *toolset) register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "expand",
		Description: "Expand a language configuration document: load the document named by its \"extends\" key, merge the child over it (arrays are concatenated base first, scalars and objects of the child win, mismatched kinds are reported as conflicts), then apply the \"overrides\" object. Returns the expanded document as text together with conflicts and the chain of loaded locations. Use recursive=true to follow extends through every ancestor. Use output to write the result to a file.",
	}, t.handleExpand)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_structure",
		Description: "Check that a language configuration document has the keys an editor expects (brackets, autoClosingPairs, surroundingPairs, wordPattern) with the right shape. The check is advisory. Set expand=true to check the expanded document instead of the input as written.",
	}, t.handleCheckStructure)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// errResultf is errResult for a formatted message.
func errResultf(format string, args ...any) *mcp.CallToolResult {
	return errResult(fmt.Errorf(format, args...))
}
