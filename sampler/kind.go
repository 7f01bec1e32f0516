package sampler

import (
	"github.com/erraggy/oasexample/document"
	"github.com/erraggy/oasexample/internal/schemautil"
)

// Kind is the variant a schema node is synthesized as. It is computed once
// per node by Classify before dispatch.
type Kind int

const (
	// KindUnknown is an opaque schema: no type, no properties, no items.
	// It produces no example.
	KindUnknown Kind = iota
	// KindObject is an object schema, declared or implied by properties.
	KindObject
	// KindArray is an array schema, declared or implied by items.
	KindArray
	// KindEnum is a non-container schema carrying an enum.
	KindEnum
	// KindFile is a binary payload. It produces no example.
	KindFile
	// KindPrimitive is any other declared scalar type.
	KindPrimitive
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindEnum:
		return "enum"
	case KindFile:
		return "file"
	case KindPrimitive:
		return "primitive"
	default:
		return "unknown"
	}
}

// Classify determines the Kind of a schema node.
//
// Order matters: object and array win over enum, and enum wins over file, so
// an enum on a file-typed schema still yields its first value.
func Classify(schema *document.Object) Kind {
	t := schemautil.GetPrimaryType(schema)
	if t == "" {
		switch {
		case schema.Has("properties"):
			return KindObject
		case schema.Has("items"):
			return KindArray
		default:
			return KindUnknown
		}
	}

	switch t {
	case "object":
		return KindObject
	case "array":
		return KindArray
	}
	if schema.Value("enum") != nil {
		return KindEnum
	}
	if t == "file" {
		return KindFile
	}
	return KindPrimitive
}
