package expander

import (
	"context"
	"fmt"

	"github.com/erraggy/langconf/internal/fileutil"
	"github.com/erraggy/langconf/internal/options"
	"github.com/erraggy/langconf/lcerrors"
	"github.com/erraggy/langconf/parser"
	"github.com/erraggy/langconf/serializer"
	"github.com/erraggy/langconf/source"
)

// Expander resolves extends/overrides. It holds no per-call state and is
// safe for concurrent use.
type Expander struct {
	fetcher        source.Fetcher
	logger         parser.Logger
	recursive      bool
	maxDepth       int
	checkStructure bool
	indent         string
}

// New creates an Expander.
func New(opts ...Option) *Expander {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newExpander(cfg)
}

func newExpander(cfg config) *Expander {
	if cfg.logger == nil {
		cfg.logger = parser.NopLogger{}
	}
	if cfg.fetcher == nil {
		cfg.fetcher = source.NewLoader(source.WithLogger(cfg.logger))
	}
	if cfg.maxDepth < 1 {
		cfg.maxDepth = DefaultMaxDepth
	}
	return &Expander{
		fetcher:        cfg.fetcher,
		logger:         cfg.logger,
		recursive:      cfg.recursive,
		maxDepth:       cfg.maxDepth,
		checkStructure: cfg.checkStructure,
		indent:         cfg.indent,
	}
}

// ExpandWithOptions expands a reference or document selected with
// WithReference or WithDocument. With WithOutputPath the result is also
// written to disk.
//
// Example:
//
//	result, err := expander.ExpandWithOptions(ctx,
//	    expander.WithReference("syntaxes/child.json"),
//	    expander.WithRecursive(true),
//	)
func ExpandWithOptions(ctx context.Context, opts ...Option) (*ExpandResult, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := options.RequireExactlyOne("input document",
		options.Source{Name: "WithReference", Set: cfg.hasReference},
		options.Source{Name: "WithDocument", Set: cfg.hasDocument},
	); err != nil {
		return nil, fmt.Errorf("expander: invalid options: %w", err)
	}

	e := newExpander(cfg)
	if cfg.hasReference && cfg.outputPath != "" {
		return e.ExpandFile(ctx, *cfg.reference, cfg.outputPath)
	}

	var (
		result *ExpandResult
		err    error
	)
	switch {
	case cfg.hasReference:
		result, err = e.ExpandReference(ctx, *cfg.reference, source.Origin{})
	case e.recursive:
		result, err = e.ExpandAll(ctx, cfg.document, cfg.origin)
	default:
		result, err = e.Expand(ctx, cfg.document, cfg.origin)
	}
	if err != nil {
		return nil, err
	}
	if cfg.outputPath != "" {
		if err := e.write(result, cfg.outputPath); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Expand resolves the extends reference of doc, if any, one level deep.
// A parent that itself declares extends is merged as it is, so its extends
// and overrides keys pass through as ordinary keys. Use ExpandAll to
// resolve the whole chain.
func (e *Expander) Expand(ctx context.Context, doc *parser.Document, origin source.Origin) (*ExpandResult, error) {
	result := &ExpandResult{}
	ref, ok, err := extendsRef(doc)
	if err != nil {
		return nil, err
	}
	if !ok {
		return e.finish(result, doc.Clone()), nil
	}

	base, content, err := e.loadParent(ctx, ref, origin)
	if err != nil {
		return nil, err
	}
	result.Chain = append(result.Chain, content.Location)
	if base.Has(parser.KeyExtends) {
		e.logger.Warn("parent declares extends; not resolved in single-level expansion",
			"parent", content.Location)
	}
	return e.finish(result, e.merge(base, doc, ref, result)), nil
}

// ExpandAll resolves the whole extends chain of doc. Each parent is
// expanded relative to its own location before the child is merged into
// it. A chain that revisits a location fails with *lcerrors.CycleError.
func (e *Expander) ExpandAll(ctx context.Context, doc *parser.Document, origin source.Origin) (*ExpandResult, error) {
	return e.expandAll(ctx, doc, origin, nil)
}

func (e *Expander) expandAll(ctx context.Context, doc *parser.Document, origin source.Origin, visited []string) (*ExpandResult, error) {
	result := &ExpandResult{}
	merged, err := e.expandChain(ctx, doc, origin, visited, result)
	if err != nil {
		return nil, err
	}
	return e.finish(result, merged), nil
}

// expandChain returns doc with its full extends chain merged in. path holds
// the locations already on the chain, root first.
func (e *Expander) expandChain(ctx context.Context, doc *parser.Document, origin source.Origin, path []string, result *ExpandResult) (*parser.Document, error) {
	ref, ok, err := extendsRef(doc)
	if err != nil {
		return nil, err
	}
	if !ok {
		return doc.Clone(), nil
	}
	if hops := len(result.Chain); hops >= e.maxDepth {
		return nil, &lcerrors.ExpansionError{
			Reference: ref,
			Message:   fmt.Sprintf("extends chain is deeper than %d levels", e.maxDepth),
		}
	}

	base, content, err := e.loadParent(ctx, ref, origin)
	if err != nil {
		return nil, err
	}
	for _, seen := range path {
		if seen == content.Location {
			chain := append(append([]string{}, path...), content.Location)
			e.logger.Error("cyclic extends chain", "chain", chain)
			return nil, &lcerrors.CycleError{Chain: chain}
		}
	}
	result.Chain = append(result.Chain, content.Location)

	expandedBase, err := e.expandChain(ctx, base, content.Origin, append(path, content.Location), result)
	if err != nil {
		return nil, err
	}
	return e.merge(expandedBase, doc, ref, result), nil
}

// ExpandReference loads the document at ref and expands it, recursively
// when the Expander was created WithRecursive.
func (e *Expander) ExpandReference(ctx context.Context, ref string, origin source.Origin) (*ExpandResult, error) {
	content, err := e.fetcher.Fetch(ctx, ref, origin)
	if err != nil {
		return nil, err
	}
	doc, err := parser.ParseNamed(content.Data, content.Location)
	if err != nil {
		return nil, err
	}

	var result *ExpandResult
	if e.recursive {
		result, err = e.expandAll(ctx, doc, content.Origin, []string{content.Location})
	} else {
		result, err = e.Expand(ctx, doc, content.Origin)
	}
	if err != nil {
		return nil, err
	}
	result.Chain = append([]string{content.Location}, result.Chain...)
	return result, nil
}

// ExpandFile reads the document at inRef, expands it, serializes it and
// writes it to outPath. Nothing is written unless every step succeeds; an
// existing file at outPath is replaced in one rename.
func (e *Expander) ExpandFile(ctx context.Context, inRef, outPath string) (*ExpandResult, error) {
	result, err := e.ExpandReference(ctx, inRef, source.Origin{})
	if err != nil {
		e.logger.Error("expansion failed; no output written", "input", inRef, "error", err)
		return nil, err
	}
	if err := e.write(result, outPath); err != nil {
		e.logger.Error("cannot write expanded configuration", "output", outPath, "error", err)
		return nil, err
	}
	e.logger.Info("wrote expanded configuration", "input", inRef, "output", outPath,
		"conflicts", len(result.Conflicts))
	return result, nil
}

func (e *Expander) write(result *ExpandResult, outPath string) error {
	text, err := serializer.Serialize(result.Document, e.indent)
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(outPath, []byte(text), fileutil.ReadableByAll)
}

// loadParent fetches and parses the document an extends reference names.
func (e *Expander) loadParent(ctx context.Context, ref string, origin source.Origin) (*parser.Document, *source.Content, error) {
	content, err := e.fetcher.Fetch(ctx, ref, origin)
	if err != nil {
		return nil, nil, &lcerrors.ExpansionError{Reference: ref, Cause: err}
	}
	base, err := parser.ParseNamed(content.Data, content.Location)
	if err != nil {
		return nil, nil, &lcerrors.ExpansionError{Reference: ref, Cause: err}
	}
	e.logger.Debug("loaded parent", "ref", ref, "location", content.Location, "keys", base.Len())
	return base, content, nil
}

func (e *Expander) finish(result *ExpandResult, merged *parser.Document) *ExpandResult {
	result.Document = merged
	if e.checkStructure {
		result.StructureIssues = parser.CheckStructure(merged)
		for _, issue := range result.StructureIssues {
			e.logger.Warn(issue.String(), "key", issue.Key)
		}
	}
	return result
}

// extendsRef returns the extends reference of doc. A non-string value is
// an error.
func extendsRef(doc *parser.Document) (string, bool, error) {
	v, ok := doc.Get(parser.KeyExtends)
	if !ok {
		return "", false, nil
	}
	ref, isString := v.(string)
	if !isString {
		return "", false, &lcerrors.ExpansionError{
			Message: fmt.Sprintf("'%s' must be a string, got %s", parser.KeyExtends, parser.KindOf(v)),
		}
	}
	return ref, true, nil
}
