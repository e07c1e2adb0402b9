package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// MarshalJSON implements json.Marshaler. The output is compact, keeps key
// order, and leaves <, > and & unescaped.
func (d *Document) MarshalJSON() ([]byte, error) {
	return MarshalValue(d)
}

// MarshalValue encodes a document value as compact JSON with no
// insignificant whitespace. It fails on values that are not part of the
// document model.
func MarshalValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCompact(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCompact(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case string:
		writeString(buf, val)
	case json.Number:
		if !json.Valid([]byte(val)) {
			return fmt.Errorf("parser: invalid number literal %q", string(val))
		}
		buf.WriteString(string(val))
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Errorf("parser: encoding number: %w", err)
		}
		buf.Write(b)
	case []any:
		buf.WriteByte('[')
		for i, e := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCompact(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *Document:
		if val == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('{')
		for i, k := range val.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, k)
			buf.WriteByte(':')
			if err := writeCompact(buf, val.values[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, k)
			buf.WriteByte(':')
			if err := writeCompact(buf, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("parser: unsupported value type %T", v)
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte{'\n'}))
}
