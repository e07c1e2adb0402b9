package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/langconf/expander"
	"github.com/erraggy/langconf/parser"
	"github.com/erraggy/langconf/source"
)

type checkInput struct {
	Document documentInput `json:"document"         jsonschema:"The language configuration document to check"`
	Expand   bool          `json:"expand,omitempty" jsonschema:"Expand extends and overrides before checking"`
}

type checkOutput struct {
	Valid      bool          `json:"valid"`
	IssueCount int           `json:"issue_count"`
	Issues     []issueOutput `json:"issues,omitempty"`
	Keys       []string      `json:"keys"`
}

func (t *toolset) handleCheckStructure(ctx context.Context, _ *mcp.CallToolRequest, input checkInput) (*mcp.CallToolResult, checkOutput, error) {
	if err := input.Document.validate(t.settings.MaxInlineSize); err != nil {
		return errResult(err), checkOutput{}, nil
	}

	doc, err := t.checkTarget(ctx, input)
	if err != nil {
		return errResult(err), checkOutput{}, nil
	}

	issues := parser.CheckStructure(doc)
	return nil, checkOutput{
		Valid:      len(issues) == 0,
		IssueCount: len(issues),
		Issues:     issuesOutput(issues),
		Keys:       doc.Keys(),
	}, nil
}

// checkTarget loads the document to check, expanded when requested.
func (t *toolset) checkTarget(ctx context.Context, input checkInput) (*parser.Document, error) {
	if input.Expand {
		inputOpt, err := input.Document.expanderInput()
		if err != nil {
			return nil, err
		}
		opts := append(t.cfg.ExpanderOptions(t.fetcher, t.logger), inputOpt)
		result, err := expander.ExpandWithOptions(ctx, opts...)
		if err != nil {
			return nil, err
		}
		return result.Document, nil
	}

	if ref, ok := input.Document.reference(); ok {
		content, err := t.fetcher.Fetch(ctx, ref, source.Origin{})
		if err != nil {
			return nil, err
		}
		return parser.ParseNamed(content.Data, content.Location)
	}
	doc, _, err := input.Document.parseContent()
	if err != nil {
		return nil, fmt.Errorf("cannot parse content: %w", err)
	}
	return doc, nil
}
