// Package sampler synthesizes representative example values from schema
// nodes.
//
// Synthesis is deterministic: the same schema always yields the same value,
// and objects list their properties in declaration order. The mapping is:
//
//   - object: every property is sampled recursively, except a property named
//     "code" which is always "0"; additionalProperties adds additionalProp1
//     (an empty object when true, or three numbered copies of a sampled
//     schema)
//   - array: a one element sequence holding the sample of items
//   - enum: the default when present, otherwise the first enum value
//   - file: no example
//   - primitive: the schema's own example, else a fixed value per
//     type/format, else "Unknown Type: <type>"
//
// # Usage
//
//	s := sampler.New(sampler.WithRefLookup(lookup))
//	text, ok, err := s.Example(schema)
//	if err != nil {
//		return err
//	}
//	if ok {
//		fmt.Println(text)
//	}
//
// A Sampler memoizes by node identity and guards against recursive
// references, so it is meant to live for the processing of one document.
package sampler
