package parser

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// ToYAMLNode converts the document into a yaml.Node tree that keeps the
// document's key order when marshaled.
func (d *Document) ToYAMLNode() (*yaml.Node, error) {
	return valueToNode(d)
}

// MarshalYAMLBytes marshals the document to YAML in document order.
func (d *Document) MarshalYAMLBytes() ([]byte, error) {
	node, err := d.ToYAMLNode()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

func valueToNode(v any) (*yaml.Node, error) {
	switch val := v.(type) {
	case nil:
		return scalar("!!null", "null"), nil
	case bool:
		return scalar("!!bool", strconv.FormatBool(val)), nil
	case string:
		return scalar("!!str", val), nil
	case json.Number:
		return numberNode(string(val)), nil
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		b, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		return numberNode(string(b)), nil
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range val {
			child, err := valueToNode(e)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, child)
		}
		return seq, nil
	case *Document:
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range val.keys {
			child, err := valueToNode(val.values[k])
			if err != nil {
				return nil, err
			}
			m.Content = append(m.Content, scalar("!!str", k), child)
		}
		return m, nil
	case map[string]any:
		return valueToNode(FromMap(val))
	default:
		return nil, fmt.Errorf("parser: unsupported value type %T", v)
	}
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func numberNode(literal string) *yaml.Node {
	if strings.ContainsAny(literal, ".eE") {
		return scalar("!!float", literal)
	}
	return scalar("!!int", literal)
}
