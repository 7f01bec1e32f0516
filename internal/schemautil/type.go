// Package schemautil provides the small normalization helpers used when
// reading schema nodes out of a document tree.
//
// This package centralizes the type assertion patterns for the shapes the
// three dialects produce: string types (1.x, 2.0, 3.0), type arrays for
// nullable support (3.1+), and schemas whose type is only implied by the
// presence of properties or items.
package schemautil

import (
	"strings"

	"github.com/erraggy/oasexample/document"
)

// Objectify returns v as an object view. Anything that is not an object
// yields an empty object, so callers can read fields without nil checks.
func Objectify(v any) *document.Object {
	if obj, ok := v.(*document.Object); ok && obj != nil {
		return obj
	}
	return document.NewObject()
}

// NormalizeArray returns v unchanged when it is a sequence, otherwise wraps
// it in a one element sequence.
func NormalizeArray(v any) []any {
	if seq, ok := v.([]any); ok {
		return seq
	}
	return []any{v}
}

// Get returns the value at a dotted path ("schema.properties.id"), or
// defaultValue when any segment is missing or a non-object is reached.
// A stored nil counts as present.
func Get(v any, path string, defaultValue any) any {
	current := v
	for _, key := range strings.Split(path, ".") {
		obj, ok := current.(*document.Object)
		if !ok || obj == nil {
			return defaultValue
		}
		next, ok := obj.Get(key)
		if !ok {
			return defaultValue
		}
		current = next
	}
	return current
}

// GetSchemaTypes returns the declared type(s) of a schema, handling both
// string (2.0/3.0) and sequence (3.1+) representations.
//
// Examples:
//   - {"type": "string"} returns ["string"]
//   - {"type": ["string", "null"]} returns ["string", "null"]
func GetSchemaTypes(schema *document.Object) []string {
	if schema == nil {
		return nil
	}
	switch t := schema.Value("type").(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		result := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				result = append(result, s)
			}
		}
		return result
	}
	return nil
}

// GetPrimaryType returns the first non-null declared type, or the empty
// string when the schema declares none.
func GetPrimaryType(schema *document.Object) string {
	types := GetSchemaTypes(schema)
	for _, t := range types {
		if t != "null" {
			return t
		}
	}
	if len(types) > 0 {
		return types[0]
	}
	return ""
}

// InferType returns the declared primary type, falling back to "object" when
// the schema has properties and to "array" when it has items. It returns the
// empty string for an opaque schema.
func InferType(schema *document.Object) string {
	if t := GetPrimaryType(schema); t != "" {
		return t
	}
	if schema.Has("properties") {
		return "object"
	}
	if schema.Has("items") {
		return "array"
	}
	return ""
}

// InferSchema returns the schema that describes a response, parameter, or
// media type object: its "schema" field when that is an object, otherwise
// the node itself. The node is never modified.
func InferSchema(node *document.Object) *document.Object {
	if s, ok := node.Object("schema"); ok {
		return s
	}
	return node
}

// HasType checks if the schema declares the given type.
func HasType(schema *document.Object, targetType string) bool {
	for _, t := range GetSchemaTypes(schema) {
		if t == targetType {
			return true
		}
	}
	return false
}
