// Package langconf expands hierarchical JSON configuration documents.
//
// A configuration document may name a parent through the "extends" key.
// langconf fetches that parent (from disk or over HTTP(S)), merges the two
// and applies the child's "overrides", producing a single self-contained
// document. The result is written back as JSON in a layout where every
// top-level array element sits on its own line in compact form, which keeps
// files such as VS Code language configurations easy to diff.
//
// # Packages
//
//   - parser: ordered Document model, comment-tolerant JSON parsing, and the
//     advisory language-configuration structure check
//   - source: content loading from files and URLs, with redirect and
//     rate-limit handling
//   - expander: the expansion engine (extends, merge rules, overrides)
//   - serializer: the structural JSON writer
//   - lcerrors: typed errors usable with errors.Is and errors.As
//
// # Quick Start
//
// Expand a file and write the result:
//
//	e := expander.New(expander.WithFetcher(source.NewLoader()))
//	result, err := e.ExpandFile(ctx, "language-configuration.json", "out.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Chain)
//
// Expand an in-memory document and inspect merge conflicts:
//
//	doc, err := parser.Parse(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := e.Expand(ctx, doc, source.OriginForFile("configs/child.json"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, c := range result.Conflicts {
//		fmt.Println(c)
//	}
//	text, _ := serializer.Serialize(result.Document, serializer.DefaultIndent)
//
// Set expander.WithRecursive(true) to follow "extends" through every ancestor
// instead of a single parent.
//
// # Command line
//
// The langconf binary wraps the same operations:
//
//	langconf expand language-configuration.json out/language-configuration.json
//	langconf show --format yaml https://example.com/base.json
//	langconf check --expand language-configuration.json
//	langconf commit-sha microsoft/vscode main
//	langconf mcp
package langconf
