package document

import (
	"bytes"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"
)

// MarshalJSON writes the object as JSON with keys in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	return Marshal(o)
}

// MarshalYAML implements yaml.Marshaler so objects embedded in other values
// keep their key order.
func (o *Object) MarshalYAML() (any, error) {
	return ToYAMLNode(o)
}

// Marshal encodes a tree value as compact JSON.
func Marshal(v any) ([]byte, error) {
	return MarshalIndent(v, "", "")
}

// MarshalIndent encodes a tree value as JSON. When indent is non-empty the
// layout matches JSON.stringify(v, null, indent): one entry per line, empty
// objects and arrays written as {} and [].
// HTML characters are not escaped.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	e := &jsonEncoder{prefix: prefix, indent: indent}
	if err := e.encode(v, 0); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

type jsonEncoder struct {
	buf    bytes.Buffer
	prefix string
	indent string
}

func (e *jsonEncoder) newline(depth int) {
	if e.indent == "" {
		return
	}
	e.buf.WriteByte('\n')
	e.buf.WriteString(e.prefix)
	e.buf.WriteString(strings.Repeat(e.indent, depth))
}

func (e *jsonEncoder) writeKey(key string) error {
	data, err := json.MarshalNoEscape(key)
	if err != nil {
		return err
	}
	e.buf.Write(data)
	e.buf.WriteByte(':')
	if e.indent != "" {
		e.buf.WriteByte(' ')
	}
	return nil
}

func (e *jsonEncoder) encode(v any, depth int) error {
	switch val := v.(type) {
	case *Object:
		if val == nil {
			e.buf.WriteString("null")
			return nil
		}
		return e.encodeEntries(val.keys, val.values, depth)

	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		return e.encodeEntries(keys, val, depth)

	case []any:
		if len(val) == 0 {
			e.buf.WriteString("[]")
			return nil
		}
		e.buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			e.newline(depth + 1)
			if err := e.encode(item, depth+1); err != nil {
				return err
			}
		}
		e.newline(depth)
		e.buf.WriteByte(']')
		return nil

	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("document: unsupported float value %v", val)
		}
	}

	data, err := json.MarshalNoEscape(v)
	if err != nil {
		return fmt.Errorf("document: failed to encode %s: %w", TypeName(v), err)
	}
	e.buf.Write(data)
	return nil
}

func (e *jsonEncoder) encodeEntries(keys []string, values map[string]any, depth int) error {
	if len(keys) == 0 {
		e.buf.WriteString("{}")
		return nil
	}
	e.buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		if err := e.writeKey(k); err != nil {
			return err
		}
		if err := e.encode(values[k], depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.buf.WriteByte('}')
	return nil
}

// MarshalYAML encodes a tree value as YAML with keys in insertion order.
func MarshalYAML(v any) ([]byte, error) {
	node, err := ToYAMLNode(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

// ToYAMLNode converts a tree value into a yaml.Node.
func ToYAMLNode(v any) (*yaml.Node, error) {
	switch val := v.(type) {
	case nil:
		return scalarNode("!!null", "null"), nil
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(val)), nil
	case int:
		return scalarNode("!!int", strconv.Itoa(val)), nil
	case int64:
		return scalarNode("!!int", strconv.FormatInt(val, 10)), nil
	case uint64:
		return scalarNode("!!int", strconv.FormatUint(val, 10)), nil
	case float64:
		return scalarNode("!!float", strconv.FormatFloat(val, 'f', -1, 64)), nil
	case string:
		return scalarNode("!!str", val), nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Content: make([]*yaml.Node, 0, len(val))}
		for _, item := range val {
			child, err := ToYAMLNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case *Object:
		if val == nil {
			return scalarNode("!!null", "null"), nil
		}
		node := &yaml.Node{Kind: yaml.MappingNode, Content: make([]*yaml.Node, 0, 2*len(val.keys))}
		for _, k := range val.keys {
			child, err := ToYAMLNode(val.values[k])
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, scalarNode("!!str", k), child)
		}
		return node, nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		obj := NewObject()
		for _, k := range keys {
			obj.Set(k, val[k])
		}
		return ToYAMLNode(obj)
	default:
		node := &yaml.Node{}
		if err := node.Encode(v); err != nil {
			return nil, fmt.Errorf("document: failed to encode %T as YAML: %w", v, err)
		}
		return node, nil
	}
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
