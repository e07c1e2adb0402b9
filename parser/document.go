package parser

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
)

// Control keys interpreted by the expansion engine. They are never treated
// as payload in the document that declares them.
const (
	KeyExtends   = "extends"
	KeyOverrides = "overrides"
)

// Document is an ordered mapping from string keys to values.
//
// A value is one of: nil, bool, string, a number (json.Number when decoded;
// float64 and the integer kinds are accepted for programmatically built
// documents), []any, or a nested *Document.
//
// Key order is insertion order. Setting an existing key replaces its value
// in place, so the key keeps its original position.
//
// The zero value is an empty document ready to use.
type Document struct {
	keys   []string
	values map[string]any
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{values: make(map[string]any)}
}

// Len returns the number of keys.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Keys returns the keys in document order. The returned slice is a copy.
func (d *Document) Keys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, len(d.keys))
	copy(keys, d.keys)
	return keys
}

// Get returns the value stored at key.
func (d *Document) Get(key string) (any, bool) {
	if d == nil || d.values == nil {
		return nil, false
	}
	v, ok := d.values[key]
	return v, ok
}

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// Set stores value at key. A new key is appended; an existing key keeps
// its position.
func (d *Document) Set(key string, value any) {
	if d.values == nil {
		d.values = make(map[string]any)
	}
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Delete removes key if present.
func (d *Document) Delete(key string) {
	if d == nil || d.values == nil {
		return
	}
	if _, exists := d.values[key]; !exists {
		return
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i:i], d.keys[i+1:]...)
			break
		}
	}
}

// Clone returns a deep copy. Slices and nested documents of the copy share
// no memory with the receiver.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		keys:   make([]string, len(d.keys)),
		values: make(map[string]any, len(d.values)),
	}
	copy(out.keys, d.keys)
	for k, v := range d.values {
		out.values[k] = CloneValue(v)
	}
	return out
}

// Equal reports whether two documents are structurally equal. Key order is
// ignored and numbers are compared by value.
func (d *Document) Equal(other *Document) bool {
	if d.Len() != other.Len() {
		return false
	}
	for _, k := range d.keys {
		ov, ok := other.Get(k)
		if !ok {
			return false
		}
		if !ValuesEqual(d.values[k], ov) {
			return false
		}
	}
	return true
}

// ToMap converts the document into nested map[string]any and []any values.
// Numbers stay json.Number.
func (d *Document) ToMap() map[string]any {
	if d == nil {
		return nil
	}
	m := make(map[string]any, len(d.keys))
	for _, k := range d.keys {
		m[k] = toPlain(d.values[k])
	}
	return m
}

func toPlain(v any) any {
	switch val := v.(type) {
	case *Document:
		return val.ToMap()
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = toPlain(e)
		}
		return out
	default:
		return v
	}
}

// FromMap builds a document from a plain map. Keys are sorted because map
// iteration order is undefined; nested maps become nested documents.
func FromMap(m map[string]any) *Document {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	d := NewDocument()
	for _, k := range keys {
		d.Set(k, fromPlain(m[k]))
	}
	return d
}

func fromPlain(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return FromMap(val)
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = fromPlain(e)
		}
		return out
	default:
		return v
	}
}

// CloneValue returns a deep copy of a document value.
func CloneValue(v any) any {
	switch val := v.(type) {
	case *Document:
		return val.Clone()
	case []any:
		if val == nil {
			return []any(nil)
		}
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = CloneValue(e)
		}
		return out
	case map[string]any:
		return FromMap(val)
	default:
		return v
	}
}

// Kind names the JSON shape of a value.
type Kind string

const (
	KindNull    Kind = "null"
	KindBoolean Kind = "boolean"
	KindNumber  Kind = "number"
	KindString  Kind = "string"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	KindUnknown Kind = "unknown"
)

// KindOf returns the JSON kind of v.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBoolean
	case string:
		return KindString
	case json.Number, float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return KindNumber
	case []any:
		return KindArray
	case *Document, map[string]any:
		return KindObject
	default:
		return KindUnknown
	}
}

// ValuesEqual reports whether two document values are structurally equal.
func ValuesEqual(a, b any) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return false
	}
	switch ka {
	case KindNull:
		return true
	case KindBoolean:
		return a.(bool) == b.(bool)
	case KindString:
		return a.(string) == b.(string)
	case KindNumber:
		return numbersEqual(a, b)
	case KindArray:
		as, bs := a.([]any), b.([]any)
		if len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !ValuesEqual(as[i], bs[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return asDocument(a).Equal(asDocument(b))
	default:
		return false
	}
}

func asDocument(v any) *Document {
	switch val := v.(type) {
	case *Document:
		return val
	case map[string]any:
		return FromMap(val)
	}
	return nil
}

func numbersEqual(a, b any) bool {
	if na, ok := a.(json.Number); ok {
		if nb, ok := b.(json.Number); ok && na == nb {
			return true
		}
	}
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	return okA && okB && fa == fb
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil && !math.IsInf(f, 0)
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
