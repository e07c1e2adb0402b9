package expander

import (
	"github.com/erraggy/langconf/parser"
	"github.com/erraggy/langconf/serializer"
	"github.com/erraggy/langconf/source"
)

// DefaultMaxDepth bounds the number of extends hops ExpandAll follows.
const DefaultMaxDepth = 32

// Option configures an Expander or an ExpandWithOptions call.
type Option func(*config)

type config struct {
	fetcher        source.Fetcher
	logger         parser.Logger
	recursive      bool
	maxDepth       int
	checkStructure bool
	indent         string

	// Input selection, used by ExpandWithOptions only
	reference    *string
	document     *parser.Document
	origin       source.Origin
	outputPath   string
	hasReference bool
	hasDocument  bool
}

func defaultConfig() config {
	return config{
		maxDepth: DefaultMaxDepth,
		indent:   serializer.DefaultIndent,
	}
}

// WithFetcher sets how extends references are loaded. Defaults to a
// source.Loader with default settings.
func WithFetcher(f source.Fetcher) Option {
	return func(c *config) { c.fetcher = f }
}

// WithLogger sets the logger for conflicts, structure issues and failures.
func WithLogger(l parser.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithRecursive makes ExpandReference, ExpandFile and ExpandWithOptions
// resolve the whole extends chain instead of a single parent.
func WithRecursive(enabled bool) Option {
	return func(c *config) { c.recursive = enabled }
}

// WithMaxDepth bounds recursive expansion. Values below one mean
// DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}

// WithCheckStructure runs the advisory language-configuration check on the
// merged document.
func WithCheckStructure(enabled bool) Option {
	return func(c *config) { c.checkStructure = enabled }
}

// WithIndent sets the indent unit ExpandFile serializes with.
func WithIndent(indent string) Option {
	return func(c *config) { c.indent = indent }
}

// WithReference selects a path or URL as the input of ExpandWithOptions.
func WithReference(ref string) Option {
	return func(c *config) {
		c.reference = &ref
		c.hasReference = true
	}
}

// WithDocument selects an already parsed document as the input of
// ExpandWithOptions. origin resolves its extends reference.
func WithDocument(doc *parser.Document, origin source.Origin) Option {
	return func(c *config) {
		c.document = doc
		c.origin = origin
		c.hasDocument = doc != nil
	}
}

// WithOutputPath makes ExpandWithOptions write the serialized result to
// path, as ExpandFile does.
func WithOutputPath(path string) Option {
	return func(c *config) { c.outputPath = path }
}
