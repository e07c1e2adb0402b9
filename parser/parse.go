package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/jsonc"

	"github.com/erraggy/langconf/lcerrors"
)

// Parse decodes a configuration document. Line comments, block comments
// and trailing commas are stripped first; what remains must be strict JSON
// whose top-level value is an object.
func Parse(data []byte) (*Document, error) {
	return ParseNamed(data, "")
}

// ParseNamed is Parse with a source name (path or URL) recorded on any
// returned *lcerrors.ParseError.
func ParseNamed(data []byte, name string) (*Document, error) {
	// jsonc.ToJSON blanks comments out with spaces, so decoder offsets still
	// point at the right line and column of the original text.
	return decodeDocument(jsonc.ToJSON(data), name)
}

// UnmarshalJSON implements json.Unmarshaler with strict decoding and key
// order preserved.
func (d *Document) UnmarshalJSON(data []byte) error {
	parsed, err := decodeDocument(data, "")
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}

func decodeDocument(data []byte, name string) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &lcerrors.ParseError{Path: name, Message: "empty document"}
		}
		return nil, newParseError(name, data, dec, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, &lcerrors.ParseError{
			Path:    name,
			Message: fmt.Sprintf("top-level value must be an object, got %v", describeToken(tok)),
		}
	}

	doc, err := decodeObject(dec)
	if err != nil {
		return nil, newParseError(name, data, dec, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level object")
		}
		return nil, newParseError(name, data, dec, err)
	}
	return doc, nil
}

// decodeObject reads key/value pairs up to and including the closing brace.
// The opening brace has already been consumed.
func decodeObject(dec *json.Decoder) (*Document, error) {
	doc := NewDocument()
	for dec.More() {
		tok, err := nextToken(dec)
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", describeToken(tok))
		}
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		doc.Set(key, value)
	}
	if _, err := nextToken(dec); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	items := make([]any, 0)
	for dec.More() {
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		items = append(items, value)
	}
	if _, err := nextToken(dec); err != nil {
		return nil, err
	}
	return items, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := nextToken(dec)
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", rune(v))
	default:
		// string, json.Number, bool or nil
		return v, nil
	}
}

// nextToken reads a token inside an object or array, where running out of
// input means the document was truncated.
func nextToken(dec *json.Decoder) (json.Token, error) {
	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, io.ErrUnexpectedEOF
	}
	return tok, err
}

func describeToken(tok json.Token) string {
	switch v := tok.(type) {
	case json.Delim:
		if v == '[' {
			return "array"
		}
		return string(v)
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	}
	return fmt.Sprintf("%T", tok)
}

// newParseError builds a ParseError located at the decoder's current input
// offset. The decoder does not advance past a bad token, so the offset points
// at the token or value that failed.
func newParseError(name string, data []byte, dec *json.Decoder, err error) *lcerrors.ParseError {
	line, col := lineColumn(data, dec.InputOffset())
	return &lcerrors.ParseError{
		Path:   name,
		Line:   line,
		Column: col,
		Cause:  err,
	}
}

// lineColumn converts a byte offset into a 1-based line and column.
func lineColumn(data []byte, offset int64) (int, int) {
	if offset < 0 {
		return 0, 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	prefix := data[:offset]
	line := bytes.Count(prefix, []byte{'\n'}) + 1
	col := int(offset) - bytes.LastIndexByte(prefix, '\n')
	return line, col
}
