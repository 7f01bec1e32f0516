package document

import (
	"fmt"

	"github.com/erraggy/oasexample/oaserrors"
	"go.yaml.in/yaml/v4"
)

const (
	// maxAliasDepth bounds alias expansion so a self-referencing YAML anchor
	// cannot recurse forever.
	maxAliasDepth = 64

	// Alias expansion may produce at most aliasExpansionRatio values per
	// node in the source tree, plus minValueBudget.
	aliasExpansionRatio = 10
	minValueBudget      = 4096
)

// Decode parses YAML or JSON bytes into a document tree.
// JSON is handled by the YAML decoder since JSON is a subset of YAML 1.2.
func Decode(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("document: failed to parse YAML/JSON: %w", err)
	}
	return FromNode(&root)
}

// DecodeObject parses bytes and requires the top-level value to be a mapping.
func DecodeObject(data []byte) (*Object, error) {
	v, err := Decode(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*Object)
	if !ok || obj == nil {
		return nil, fmt.Errorf("document: top-level value must be a mapping, got %s", TypeName(v))
	}
	return obj, nil
}

// FromNode converts a yaml.Node tree into a document tree, preserving
// mapping key order.
//
// Aliases are expanded in place. When the expansion would build many more
// values than the source tree holds, FromNode fails with
// *oaserrors.ResourceLimitError.
func FromNode(node *yaml.Node) (any, error) {
	c := &nodeConverter{budget: minValueBudget + aliasExpansionRatio*countNodes(node)}
	return c.convert(node, 0)
}

// countNodes counts the nodes of a tree without following aliases.
func countNodes(node *yaml.Node) int {
	if node == nil {
		return 0
	}
	n := 1
	for _, child := range node.Content {
		n += countNodes(child)
	}
	return n
}

type nodeConverter struct {
	budget int
	built  int
}

func (c *nodeConverter) convert(node *yaml.Node, aliasDepth int) (any, error) {
	if node == nil {
		return nil, nil
	}
	if node.Kind != yaml.DocumentNode && node.Kind != yaml.AliasNode {
		c.built++
		if c.built > c.budget {
			return nil, &oaserrors.ResourceLimitError{
				ResourceType: "yaml_nodes",
				Limit:        int64(c.budget),
				Message:      fmt.Sprintf("alias expansion at line %d builds too many values", node.Line),
			}
		}
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return c.convert(node.Content[0], aliasDepth)

	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]
			if keyNode.Kind == yaml.ScalarNode && keyNode.ShortTag() == "!!merge" {
				if err := c.mergeInto(obj, valNode, aliasDepth); err != nil {
					return nil, err
				}
				continue
			}
			val, err := c.convert(valNode, aliasDepth)
			if err != nil {
				return nil, err
			}
			obj.Set(keyNode.Value, val)
		}
		return obj, nil

	case yaml.SequenceNode:
		seq := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			val, err := c.convert(child, aliasDepth)
			if err != nil {
				return nil, err
			}
			seq = append(seq, val)
		}
		return seq, nil

	case yaml.AliasNode:
		if aliasDepth >= maxAliasDepth {
			return nil, fmt.Errorf("document: alias nesting exceeds %d levels at line %d", maxAliasDepth, node.Line)
		}
		return c.convert(node.Alias, aliasDepth+1)

	default:
		return scalarValue(node)
	}
}

// mergeInto applies a YAML merge key ("<<") value onto obj without
// overriding keys that are already set.
func (c *nodeConverter) mergeInto(obj *Object, node *yaml.Node, aliasDepth int) error {
	val, err := c.convert(node, aliasDepth+1)
	if err != nil {
		return err
	}
	var sources []*Object
	switch v := val.(type) {
	case *Object:
		sources = append(sources, v)
	case []any:
		for _, item := range v {
			if o, ok := item.(*Object); ok {
				sources = append(sources, o)
			}
		}
	}
	for _, src := range sources {
		src.Range(func(k string, v any) bool {
			if !obj.Has(k) {
				obj.Set(k, v)
			}
			return true
		})
	}
	return nil
}

// scalarValue resolves a scalar node to its native Go value.
// Timestamps and unknown tags stay strings.
func scalarValue(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool", "!!int", "!!float":
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("document: invalid scalar %q at line %d: %w", node.Value, node.Line, err)
		}
		return v, nil
	default:
		return node.Value, nil
	}
}

// TypeName returns a JSON-flavored name for a tree value, for messages.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case *Object:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64, uint64, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
