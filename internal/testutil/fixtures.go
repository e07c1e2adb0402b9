// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/langconf/parser"
)

// CompleteConfig is a language configuration with every key the structure
// check expects.
const CompleteConfig = `{
	"brackets": [["(", ")"]],
	"autoClosingPairs": [{"open": "(", "close": ")"}],
	"surroundingPairs": [["(", ")"]],
	"wordPattern": "\\w+"
}`

// NewCompleteDocument returns CompleteConfig parsed.
func NewCompleteDocument() *parser.Document {
	doc, err := parser.Parse([]byte(CompleteConfig))
	if err != nil {
		panic(err)
	}
	return doc
}

// NewChildDocument creates a document that extends ref, adds one bracket
// pair and overrides the word pattern.
func NewChildDocument(ref string) *parser.Document {
	doc := parser.NewDocument()
	doc.Set(parser.KeyExtends, ref)
	doc.Set("brackets", []any{[]any{"[", "]"}})
	overrides := parser.NewDocument()
	overrides.Set("wordPattern", "[\\w-]+")
	doc.Set(parser.KeyOverrides, overrides)
	return doc
}

// WriteFixture writes data to dir/name, creating parent directories.
// Returns the path to the file.
func WriteFixture(t *testing.T, dir, name, data string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("Failed to write fixture %s: %v", name, err)
	}
	return path
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}

	return WriteFixture(t, t.TempDir(), "language-configuration.json", string(data))
}
