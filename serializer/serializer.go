// Package serializer writes documents as JSON in the layout used for
// checked-in language configuration files.
//
// Top-level keys are written one per line. A top-level array is written
// with each element on its own line as compact JSON:
//
//	{
//		"brackets": [
//			["{", "}"],
//			["[", "]"]
//		],
//		"comments": {
//			"lineComment": "//"
//		}
//	}
//
// Inside element text a space follows every comma that separates two
// strings, so ["{","}"] reads as ["{", "}"]. Every other value is pretty
// printed as standard indented JSON.
package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/erraggy/langconf/parser"
)

// DefaultIndent is the indent unit of checked-in configuration files.
const DefaultIndent = "\t"

// maxIndent caps the indent unit at ten characters.
const maxIndent = 10

// Serialize renders doc. The output always ends with a single newline; an
// empty or nil document renders as "{\n}\n". Values outside the document
// model cause an error.
func Serialize(doc *parser.Document, indent string) (string, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, key := range doc.Keys() {
		if i > 0 {
			b.WriteByte(',')
		}
		value, _ := doc.Get(key)

		b.WriteString("\n" + indent)
		name, err := parser.MarshalValue(key)
		if err != nil {
			return "", err
		}
		b.Write(name)
		b.WriteString(": ")

		if items, ok := value.([]any); ok {
			if err := writeArray(&b, items, indent); err != nil {
				return "", fmt.Errorf("serializer: key %q: %w", key, err)
			}
			continue
		}

		text, err := pretty(value, indent)
		if err != nil {
			return "", fmt.Errorf("serializer: key %q: %w", key, err)
		}
		b.WriteString(strings.ReplaceAll(text, "\n", "\n"+indent))
	}
	b.WriteString("\n}\n")
	return b.String(), nil
}

func writeArray(b *strings.Builder, items []any, indent string) error {
	b.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			b.WriteByte(',')
		}
		compact, err := parser.MarshalValue(item)
		if err != nil {
			return err
		}
		b.WriteString("\n" + indent + indent)
		b.WriteString(SpaceStringCommas(string(compact)))
	}
	b.WriteString("\n" + indent + "]")
	return nil
}

// pretty renders v as indented JSON. Empty containers stay "{}" and "[]",
// and an empty indent yields compact output.
func pretty(v any, indent string) (string, error) {
	compact, err := parser.MarshalValue(v)
	if err != nil {
		return "", err
	}
	if indent == "" {
		return string(compact), nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", indent); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SpaceStringCommas inserts a space between a closing quote and a comma
// that is followed by an opening quote, in compact JSON text. Quotes and
// commas inside string values are left alone.
func SpaceStringCommas(s string) string {
	if !strings.Contains(s, `","`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	inString, escape := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		b.WriteByte(c)
		switch {
		case escape:
			escape = false
		case inString && c == '\\':
			escape = true
		case c == '"':
			inString = !inString
			if !inString && strings.HasPrefix(s[i+1:], `,"`) {
				b.WriteString(", ")
				i++
			}
		}
	}
	return b.String()
}

// IndentSpaces returns an indent unit of n spaces, capped at ten.
func IndentSpaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", min(n, maxIndent))
}

// ParseIndent interprets a configured indent. An empty string means
// DefaultIndent, a number means that many spaces, "tab" or `\t` means a
// tab; otherwise s must consist of spaces and tabs and is used as is.
func ParseIndent(s string) (string, error) {
	switch s {
	case "":
		return DefaultIndent, nil
	case "tab", `\t`:
		return "\t", nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return "", fmt.Errorf("serializer: negative indent %d", n)
		}
		return IndentSpaces(n), nil
	}
	if strings.Trim(s, " \t") != "" {
		return "", fmt.Errorf("serializer: indent %q must be a number, \"tab\", or whitespace", s)
	}
	if len(s) > maxIndent {
		s = s[:maxIndent]
	}
	return s, nil
}
