package expander

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/langconf/internal/testutil"
	"github.com/erraggy/langconf/lcerrors"
	"github.com/erraggy/langconf/parser"
	"github.com/erraggy/langconf/serializer"
	"github.com/erraggy/langconf/source"
)

func TestExpandFile(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFixture(t, dir, "base/language-configuration.json", `{
	// shared by every C-like language
	"comments": {"lineComment": "//", "blockComment": ["/*", "*/"]},
	"brackets": [["{", "}"], ["[", "]"]],
	"autoClosingPairs": [{"open": "{", "close": "}"}],
	"surroundingPairs": [["{", "}"]],
	"wordPattern": "\\w+",
}`)
	in := testutil.WriteFixture(t, dir, "child/language-configuration.json", `{
	"extends": "../base/language-configuration.json",
	"brackets": [["(", ")"]],
	"autoClosingPairs": [{"open": "\"", "close": "\"", "notIn": ["string"]}],
	/* the child keeps its own pattern */
	"overrides": {"wordPattern": "[\\w-]+"}
}`)
	out := filepath.Join(dir, "out", "language-configuration.json")
	require.NoError(t, os.Mkdir(filepath.Dir(out), 0o755))

	result, err := New(WithFetcher(source.NewLoader()), WithCheckStructure(true)).ExpandFile(context.Background(), in, out)
	require.NoError(t, err)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.StructureIssues)
	assert.Equal(t, []string{in, filepath.Join(dir, "base", "language-configuration.json")}, result.Chain)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "{\n"+
		"\t\"comments\": {\n"+
		"\t\t\"lineComment\": \"//\",\n"+
		"\t\t\"blockComment\": [\n"+
		"\t\t\t\"/*\",\n"+
		"\t\t\t\"*/\"\n"+
		"\t\t]\n"+
		"\t},\n"+
		"\t\"brackets\": [\n"+
		"\t\t[\"{\", \"}\"],\n"+
		"\t\t[\"[\", \"]\"],\n"+
		"\t\t[\"(\", \")\"]\n"+
		"\t],\n"+
		"\t\"autoClosingPairs\": [\n"+
		"\t\t{\"open\":\"{\", \"close\":\"}\"},\n"+
		"\t\t{\"open\":\"\\\"\", \"close\":\"\\\"\", \"notIn\":[\"string\"]}\n"+
		"\t],\n"+
		"\t\"surroundingPairs\": [\n"+
		"\t\t[\"{\", \"}\"]\n"+
		"\t],\n"+
		"\t\"wordPattern\": \"[\\\\w-]+\"\n"+
		"}\n", string(data))

	// the written file parses back to the expanded document
	reparsed, err := parser.Parse(data)
	require.NoError(t, err)
	assert.True(t, reparsed.Equal(result.Document))
	assert.Equal(t, result.Document.Keys(), reparsed.Keys())
}

func TestExpandFile_UnfetchableParentWritesNothing(t *testing.T) {
	dir := t.TempDir()
	in := testutil.WriteFixture(t, dir, "child.json", `{"extends": "missing.json", "brackets": []}`)
	out := filepath.Join(dir, "out.json")

	var logs bytes.Buffer
	logger := parser.NewZerologAdapter(zerolog.New(&logs))

	result, err := New(WithLogger(logger)).ExpandFile(context.Background(), in, out)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, lcerrors.ErrExpansion))
	assert.True(t, errors.Is(err, lcerrors.ErrFetch))
	assert.Contains(t, err.Error(), "missing.json")
	assert.Contains(t, logs.String(), "no output written")

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "output file must not be created")
}

func TestExpandFile_FailureKeepsExistingOutput(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFixture(t, dir, "base.json", `{"brackets": [`)
	in := testutil.WriteFixture(t, dir, "child.json", `{"extends": "base.json"}`)
	out := testutil.WriteFixture(t, dir, "out.json", "previous\n")

	_, err := New().ExpandFile(context.Background(), in, out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, lcerrors.ErrParse))

	data, readErr := os.ReadFile(out)
	require.NoError(t, readErr)
	assert.Equal(t, "previous\n", string(data))
}

func TestExpandFile_MissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := New().ExpandFile(context.Background(), filepath.Join(dir, "nope.json"), filepath.Join(dir, "out.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, lcerrors.ErrFetch))
	assert.False(t, errors.Is(err, lcerrors.ErrExpansion), "the root document is not an extends reference")
}

func TestExpandFile_Recursive(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFixture(t, dir, "a/root.json", `{"brackets": [["(", ")"]]}`)
	testutil.WriteFixture(t, dir, "b/middle.json", `{"extends": "../a/root.json", "brackets": [["[", "]"]]}`)
	in := testutil.WriteFixture(t, dir, "c/leaf.json", `{"extends": "../b/middle.json", "brackets": [["{", "}"]]}`)
	out := filepath.Join(dir, "out.json")

	result, err := New(WithRecursive(true), WithIndent("  ")).ExpandFile(context.Background(), in, out)
	require.NoError(t, err)
	assert.Len(t, result.Chain, 3)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"brackets\": [\n    [\"(\", \")\"],\n    [\"[\", \"]\"],\n    [\"{\", \"}\"]\n  ]\n}\n", string(data))
}

func TestExpandReference_RecursiveCycleThroughRoot(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WriteFixture(t, dir, "a.json", `{"extends": "b.json"}`)
	b := testutil.WriteFixture(t, dir, "b.json", `{"extends": "a.json"}`)

	_, err := New(WithRecursive(true)).ExpandReference(context.Background(), a, source.Origin{})
	require.Error(t, err)

	var cycleErr *lcerrors.CycleError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, []string{a, b, a}, cycleErr.Chain)
}

func TestExpandReference_RemoteParent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/old/base.json":
			http.Redirect(w, r, "/new/base.json", http.StatusMovedPermanently)
		case "/new/base.json":
			_, _ = w.Write([]byte(`{"extends": "shared.json", "brackets": [["(", ")"]]}`))
		case "/new/shared.json":
			_, _ = w.Write([]byte(`{"wordPattern": "\\w+"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	in := testutil.WriteFixture(t, dir, "child.json", `{"extends": "`+srv.URL+`/old/base.json", "brackets": [["[", "]"]]}`)

	result, err := New(WithRecursive(true)).ExpandReference(context.Background(), in, source.Origin{})
	require.NoError(t, err)

	want, err := parser.Parse([]byte(`{"wordPattern": "\\w+", "brackets": [["(", ")"], ["[", "]"]]}`))
	require.NoError(t, err)
	assert.True(t, result.Document.Equal(want), "got %v", result.Document.ToMap())
	assert.Equal(t, []string{in, srv.URL + "/new/base.json", srv.URL + "/new/shared.json"}, result.Chain)
}

func TestExpand_RoundTripProperty(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFixture(t, dir, "base.json", `{"brackets": [["(", ")"]], "folding": {"markers": {"start": "^\\s*//#region"}}, "n": 1.0}`)
	children := []string{
		`{}`,
		`{"extends": "base.json"}`,
		`{"extends": "base.json", "brackets": [["\"", "\""]], "colorizedBracketPairs": []}`,
		`{"extends": "base.json", "n": 2, "overrides": {"folding": {"offSide": true}}}`,
		`{"extends": "base.json", "brackets": [[",", ","], [1, ","]], "autoClosingPairs": [{"open": ",", "close": ","}]}`,
	}
	e := New()
	for _, data := range children {
		doc, err := parser.Parse([]byte(data))
		require.NoError(t, err)
		result, err := e.Expand(context.Background(), doc, source.Origin{Dir: dir})
		require.NoError(t, err)

		text, err := serializer.Serialize(result.Document, serializer.DefaultIndent)
		require.NoError(t, err)
		back, err := parser.Parse([]byte(text))
		require.NoError(t, err)
		assert.True(t, back.Equal(result.Document), "round trip of %s", data)
	}
}

func TestExpandWithOptions_ReferenceToFile(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFixture(t, dir, "base.json", `{"a": [1]}`)
	in := testutil.WriteFixture(t, dir, "child.json", `{"extends": "base.json", "a": [2]}`)
	out := filepath.Join(dir, "out.json")

	result, err := ExpandWithOptions(context.Background(),
		WithReference(in),
		WithOutputPath(out),
		WithIndent("  "),
	)
	require.NoError(t, err)
	assert.Len(t, result.Chain, 2)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": [\n    1,\n    2\n  ]\n}\n", string(data))
}
