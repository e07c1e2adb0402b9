// Package parser provides the configuration document model and its decoder.
//
// A configuration document is JSON that may contain // line comments,
// /* block comments */ and trailing commas. Parse strips those and then
// decodes the remaining text strictly: anything that is not well-formed JSON
// with an object at the top level is rejected with an *lcerrors.ParseError.
//
// # Documents
//
// The decoded value is a *Document, an ordered mapping. Key order from the
// source text is kept through expansion and serialization, so expanded files
// list keys in the same order as the files they were built from.
//
//	doc, err := parser.Parse([]byte(`{
//		// inherited from the base language
//		"extends": "../base/language-configuration.json",
//		"brackets": [["{", "}"]]
//	}`))
//	if err != nil {
//		log.Fatal(err)
//	}
//	ref, _ := doc.Get(parser.KeyExtends)
//
// Numbers decode as json.Number and are written back with their original
// literal.
//
// # Structure check
//
// CheckStructure reports keys a VS Code language configuration is expected
// to have (brackets, autoClosingPairs, surroundingPairs, wordPattern). The
// check is advisory: callers log the issues and carry on.
//
// # Logging
//
// Logger is the structured logging interface shared by all langconf
// packages. NopLogger discards everything; ZerologAdapter bridges to
// github.com/rs/zerolog.
package parser
