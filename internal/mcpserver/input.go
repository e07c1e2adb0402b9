package mcpserver

import (
	"fmt"

	"github.com/erraggy/langconf/internal/options"
	"github.com/erraggy/langconf/parser"
	"github.com/erraggy/langconf/source"
)

// documentInput represents the three ways a configuration document can be
// provided to a tool. Exactly one of File, URL, or Content must be set.
type documentInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a language configuration file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch a language configuration document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON with comments and trailing commas allowed)"`
	Base    string `json:"base,omitempty"    jsonschema:"Directory or URL that relative extends references in inline content resolve against. Defaults to the server's working directory."`
}

// inlineName is the source name reported in parse errors for content input.
const inlineName = "<content>"

// validate checks that exactly one source is set and that inline content
// is within maxInline bytes.
func (d documentInput) validate(maxInline int64) error {
	if err := options.RequireExactlyOne("document",
		options.Source{Name: "file", Set: d.File != ""},
		options.Source{Name: "url", Set: d.URL != ""},
		options.Source{Name: "content", Set: d.Content != ""},
	); err != nil {
		return err
	}
	if d.Base != "" && d.Content == "" {
		return fmt.Errorf("base only applies to content input")
	}
	if int64(len(d.Content)) > maxInline {
		return fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set LANGCONF_MCP_MAX_INLINE_SIZE to increase",
			len(d.Content), maxInline)
	}
	return nil
}

// reference returns the path or URL to load, or false for content input.
func (d documentInput) reference() (string, bool) {
	switch {
	case d.File != "":
		return d.File, true
	case d.URL != "":
		return d.URL, true
	}
	return "", false
}

// parseContent parses inline content and returns the origin its extends
// reference resolves against.
func (d documentInput) parseContent() (*parser.Document, source.Origin, error) {
	doc, err := parser.ParseNamed([]byte(d.Content), inlineName)
	if err != nil {
		return nil, source.Origin{}, err
	}
	switch {
	case d.Base == "":
		return doc, source.Origin{}, nil
	case source.IsURL(d.Base):
		return doc, source.OriginForURL(d.Base), nil
	default:
		return doc, source.Origin{Dir: d.Base}, nil
	}
}
