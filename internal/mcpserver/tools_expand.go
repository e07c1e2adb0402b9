package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/langconf/expander"
	"github.com/erraggy/langconf/internal/fileutil"
	"github.com/erraggy/langconf/parser"
	"github.com/erraggy/langconf/serializer"
)

type expandInput struct {
	Document       documentInput `json:"document"                  jsonschema:"The language configuration document to expand"`
	Recursive      bool          `json:"recursive,omitempty"       jsonschema:"Follow extends through every ancestor instead of a single parent"`
	MaxDepth       int           `json:"max_depth,omitempty"       jsonschema:"Maximum number of extends hops in recursive mode"`
	Indent         string        `json:"indent,omitempty"          jsonschema:"Indent unit of the returned text: 'tab', a number of spaces, or literal whitespace"`
	CheckStructure bool          `json:"check_structure,omitempty" jsonschema:"Also run the advisory structure check on the expanded document"`
	Output         string        `json:"output,omitempty"          jsonschema:"File path to write the expanded document to"`
}

type conflictOutput struct {
	Category  string `json:"category"`
	Key       string `json:"key"`
	BaseKind  string `json:"base_kind,omitempty"`
	ChildKind string `json:"child_kind"`
	Reference string `json:"reference"`
	Message   string `json:"message"`
	Severity  string `json:"severity"`
}

type issueOutput struct {
	Key      string `json:"key"`
	Expected string `json:"expected,omitempty"`
	Found    string `json:"found,omitempty"`
	Message  string `json:"message"`
}

type expandOutput struct {
	Document        string           `json:"document"`
	Conflicts       []conflictOutput `json:"conflicts,omitempty"`
	StructureIssues []issueOutput    `json:"structure_issues,omitempty"`
	Chain           []string         `json:"chain,omitempty"`
	WrittenTo       string           `json:"written_to,omitempty"`
}

func (t *toolset) handleExpand(ctx context.Context, _ *mcp.CallToolRequest, input expandInput) (*mcp.CallToolResult, expandOutput, error) {
	if err := input.Document.validate(t.settings.MaxInlineSize); err != nil {
		return errResult(err), expandOutput{}, nil
	}

	indent := t.cfg.IndentUnit()
	if input.Indent != "" {
		parsed, err := serializer.ParseIndent(input.Indent)
		if err != nil {
			return errResult(err), expandOutput{}, nil
		}
		indent = parsed
	}
	if input.MaxDepth < 0 {
		return errResultf("max_depth must not be negative, got %d", input.MaxDepth), expandOutput{}, nil
	}

	opts := t.cfg.ExpanderOptions(t.fetcher, t.logger)
	opts = append(opts, expander.WithIndent(indent))
	if input.Recursive {
		opts = append(opts, expander.WithRecursive(true))
	}
	if input.MaxDepth > 0 {
		opts = append(opts, expander.WithMaxDepth(input.MaxDepth))
	}
	if input.CheckStructure {
		opts = append(opts, expander.WithCheckStructure(true))
	}

	var writtenTo string
	if input.Output != "" {
		cleanPath, err := fileutil.SanitizeOutputPath(input.Output)
		if err != nil {
			return errResult(err), expandOutput{}, nil
		}
		opts = append(opts, expander.WithOutputPath(cleanPath))
		writtenTo = cleanPath
	}

	inputOpt, err := input.Document.expanderInput()
	if err != nil {
		return errResult(err), expandOutput{}, nil
	}
	result, err := expander.ExpandWithOptions(ctx, append(opts, inputOpt)...)
	if err != nil {
		return errResult(err), expandOutput{}, nil
	}

	text, err := serializer.Serialize(result.Document, indent)
	if err != nil {
		return errResult(err), expandOutput{}, nil
	}

	output := expandOutput{
		Document:        text,
		Conflicts:       makeSlice[conflictOutput](len(result.Conflicts)),
		StructureIssues: issuesOutput(result.StructureIssues),
		Chain:           result.Chain,
		WrittenTo:       writtenTo,
	}
	for _, c := range result.Conflicts {
		output.Conflicts = append(output.Conflicts, conflictOutput{
			Category:  string(c.Category),
			Key:       c.Key,
			BaseKind:  string(c.BaseKind),
			ChildKind: string(c.ChildKind),
			Reference: c.Reference,
			Message:   c.Message,
			Severity:  c.Severity.String(),
		})
	}
	return nil, output, nil
}

// expanderInput returns the expander option selecting this document.
func (d documentInput) expanderInput() (expander.Option, error) {
	if ref, ok := d.reference(); ok {
		return expander.WithReference(ref), nil
	}
	doc, origin, err := d.parseContent()
	if err != nil {
		return nil, fmt.Errorf("cannot parse content: %w", err)
	}
	return expander.WithDocument(doc, origin), nil
}

func issuesOutput(issues []parser.StructureIssue) []issueOutput {
	out := makeSlice[issueOutput](len(issues))
	for _, issue := range issues {
		out = append(out, issueOutput{
			Key:      issue.Key,
			Expected: string(issue.Expected),
			Found:    string(issue.Found),
			Message:  issue.String(),
		})
	}
	return out
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}
