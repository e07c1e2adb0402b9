package parser_test

import (
	"fmt"
	"log"

	"github.com/erraggy/langconf/parser"
)

// Example demonstrates parsing a language configuration with comments.
func Example() {
	doc, err := parser.Parse([]byte(`{
	// inherit everything from the base language
	"extends": "../base/language-configuration.json",
	"brackets": [["{", "}"], ["[", "]"]],
}`))
	if err != nil {
		log.Fatalf("failed to parse: %v", err)
	}
	ref, _ := doc.Get(parser.KeyExtends)
	fmt.Println("Keys:", doc.Keys())
	fmt.Println("Extends:", ref)
	// Output:
	// Keys: [extends brackets]
	// Extends: ../base/language-configuration.json
}

// ExampleCheckStructure demonstrates the advisory structure check.
func ExampleCheckStructure() {
	doc, err := parser.Parse([]byte(`{"brackets": [], "autoClosingPairs": {}}`))
	if err != nil {
		log.Fatalf("failed to parse: %v", err)
	}
	for _, issue := range parser.CheckStructure(doc) {
		fmt.Println(issue)
	}
	// Output:
	// 'autoClosingPairs' is object, expected array
	// cannot find 'surroundingPairs' or it is not an array
	// cannot find 'wordPattern'
}

// ExampleDocument_MarshalYAMLBytes demonstrates YAML output in document order.
func ExampleDocument_MarshalYAMLBytes() {
	doc, err := parser.Parse([]byte(`{"name": "go", "tabSize": 4, "enabled": true}`))
	if err != nil {
		log.Fatalf("failed to parse: %v", err)
	}
	out, err := doc.MarshalYAMLBytes()
	if err != nil {
		log.Fatalf("failed to marshal: %v", err)
	}
	fmt.Print(string(out))
	// Output:
	// name: go
	// tabSize: 4
	// enabled: true
}
