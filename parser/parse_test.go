package parser

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/langconf/lcerrors"
)

func TestParse_PreservesKeyOrder(t *testing.T) {
	doc, err := Parse([]byte(`{"wordPattern": "w", "brackets": [], "comments": {"lineComment": "//"}}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"wordPattern", "brackets", "comments"}, doc.Keys())

	comments, ok := doc.Get("comments")
	require.True(t, ok)
	nested, ok := comments.(*Document)
	require.True(t, ok, "nested objects should decode as *Document, got %T", comments)
	assert.Equal(t, []string{"lineComment"}, nested.Keys())
}

func TestParse_StripsComments(t *testing.T) {
	data := []byte(`{
	// the parent document
	"extends": "base.json", /* inline */
	"brackets": [
		["(", ")"], // trailing comma follows
	],
}`)
	doc, err := Parse(data)
	require.NoError(t, err)

	ext, _ := doc.Get(KeyExtends)
	assert.Equal(t, "base.json", ext)

	brackets, _ := doc.Get("brackets")
	assert.Equal(t, []any{[]any{"(", ")"}}, brackets)
}

func TestParse_CommentMarkersInsideStrings(t *testing.T) {
	doc, err := Parse([]byte(`{"lineComment": "//", "blockComment": ["/*", "*/"]}`))
	require.NoError(t, err)

	lc, _ := doc.Get("lineComment")
	assert.Equal(t, "//", lc)
	bc, _ := doc.Get("blockComment")
	assert.Equal(t, []any{"/*", "*/"}, bc)
}

func TestParse_ValueTypes(t *testing.T) {
	doc, err := Parse([]byte(`{"s": "x", "n": 1.50, "i": 3, "t": true, "f": false, "z": null, "a": [], "o": {}}`))
	require.NoError(t, err)

	tests := []struct {
		key  string
		want any
		kind Kind
	}{
		{"s", "x", KindString},
		{"n", json.Number("1.50"), KindNumber},
		{"i", json.Number("3"), KindNumber},
		{"t", true, KindBoolean},
		{"f", false, KindBoolean},
		{"z", nil, KindNull},
		{"a", []any{}, KindArray},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v, ok := doc.Get(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, v)
			assert.Equal(t, tt.kind, KindOf(v))
		})
	}

	o, _ := doc.Get("o")
	assert.Equal(t, KindObject, KindOf(o))
	assert.Equal(t, 0, o.(*Document).Len())
}

func TestParse_DuplicateKeysLastWins(t *testing.T) {
	doc, err := Parse([]byte(`{"a": 1, "b": 2, "a": 3}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, doc.Keys())
	a, _ := doc.Get("a")
	assert.Equal(t, json.Number("3"), a)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		line int
	}{
		{"empty", "", 0},
		{"comment only", "// nothing here", 0},
		{"top-level array", `[1, 2]`, 0},
		{"top-level string", `"x"`, 0},
		{"missing value", "{\n\"a\": }", 2},
		{"missing comma", "{\"a\": 1\n \"b\": 2}", 2},
		{"unterminated", `{"a": [1, 2`, 1},
		{"trailing data", `{"a": 1} {"b": 2}`, 1},
		{"single quotes", `{'a': 1}`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseNamed([]byte(tt.data), "broken.json")
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.True(t, errors.Is(err, lcerrors.ErrParse), "expected ErrParse, got %v", err)

			var parseErr *lcerrors.ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, "broken.json", parseErr.Path)
			if tt.line > 0 {
				assert.Equal(t, tt.line, parseErr.Line)
			}
		})
	}
}

func TestParse_ErrorLocationAccountsForComments(t *testing.T) {
	data := []byte("{\n  /* a\n     block */\n  \"a\": tru\n}")
	_, err := Parse(data)
	require.Error(t, err)

	var parseErr *lcerrors.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 4, parseErr.Line)
}

func TestDocument_UnmarshalJSON(t *testing.T) {
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(`{"z": 1, "a": [true]}`), &doc))
	assert.Equal(t, []string{"z", "a"}, doc.Keys())

	var bad Document
	assert.Error(t, json.Unmarshal([]byte(`{"z": }`), &bad))
}

func TestLineColumn(t *testing.T) {
	data := []byte("ab\ncd\nef")
	tests := []struct {
		offset    int64
		line, col int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{7, 3, 2},
		{100, 3, 3},
	}
	for _, tt := range tests {
		line, col := lineColumn(data, tt.offset)
		assert.Equal(t, tt.line, line, "offset %d", tt.offset)
		assert.Equal(t, tt.col, col, "offset %d", tt.offset)
	}
}
