// Package document provides the insertion-ordered, JSON-compatible tree that
// oasexample reads API description documents into and writes derived data onto.
//
// A document tree is built from these value types only:
//
//   - *Object for mappings (keys keep their source order)
//   - []any for sequences
//   - string, bool, int, int64, uint64, float64 and nil for scalars
//
// Key order matters: synthesized examples are serialized in property
// declaration order, and annotated documents are written back in the order
// they were read, so plain Go maps cannot be used.
package document

import "slices"

// Object is an insertion-ordered mapping from string keys to tree values.
// The zero value is an empty object ready to use.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{}
}

// Len returns the number of entries.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns a copy of the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return slices.Clone(o.keys)
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.values[key]
	return ok
}

// Get returns the value stored under key and whether it was present.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Value returns the value stored under key, or nil when absent.
func (o *Object) Value(key string) any {
	v, _ := o.Get(key)
	return v
}

// Set stores value under key. An existing key keeps its position;
// a new key is appended.
func (o *Object) Set(key string, value any) {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Delete removes key. Deleting a missing key is a no-op.
func (o *Object) Delete(key string) {
	if o == nil {
		return
	}
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	if i := slices.Index(o.keys, key); i >= 0 {
		o.keys = slices.Delete(o.keys, i, i+1)
	}
}

// Rename moves the value stored under oldKey to newKey, keeping its
// position. An existing newKey entry is replaced. It reports whether oldKey
// was present.
func (o *Object) Rename(oldKey, newKey string) bool {
	if o == nil {
		return false
	}
	v, ok := o.values[oldKey]
	if !ok {
		return false
	}
	if oldKey == newKey {
		return true
	}
	o.Delete(newKey)
	i := slices.Index(o.keys, oldKey)
	o.keys[i] = newKey
	delete(o.values, oldKey)
	o.values[newKey] = v
	return true
}

// Range calls fn for each entry in insertion order until fn returns false.
// The key set is snapshotted first, so fn may modify the object.
func (o *Object) Range(fn func(key string, value any) bool) {
	if o == nil {
		return
	}
	for _, k := range slices.Clone(o.keys) {
		v, ok := o.values[k]
		if !ok {
			continue
		}
		if !fn(k, v) {
			return
		}
	}
}

// First returns the first entry in insertion order.
func (o *Object) First() (string, any, bool) {
	if o.Len() == 0 {
		return "", nil, false
	}
	k := o.keys[0]
	return k, o.values[k], true
}

// Object returns the value under key when it is an *Object.
func (o *Object) Object(key string) (*Object, bool) {
	obj, ok := o.Value(key).(*Object)
	return obj, ok && obj != nil
}

// String returns the value under key when it is a string.
func (o *Object) String(key string) (string, bool) {
	s, ok := o.Value(key).(string)
	return s, ok
}

// Slice returns the value under key when it is a sequence.
func (o *Object) Slice(key string) ([]any, bool) {
	s, ok := o.Value(key).([]any)
	return s, ok
}

// Bool returns the value under key when it is a bool.
func (o *Object) Bool(key string) (bool, bool) {
	b, ok := o.Value(key).(bool)
	return b, ok
}

// FromPairs builds an Object from alternating key/value arguments.
// It panics if a key is not a string; it is intended for literals in tests
// and fixtures.
//
//	document.FromPairs("type", "object", "properties", props)
func FromPairs(pairs ...any) *Object {
	o := NewObject()
	for i := 0; i+1 < len(pairs); i += 2 {
		o.Set(pairs[i].(string), pairs[i+1])
	}
	return o
}

// DeepCopy returns a deep copy of a tree value. Objects and sequences are
// duplicated; scalars are returned as-is.
func DeepCopy(v any) any {
	switch val := v.(type) {
	case *Object:
		if val == nil {
			return (*Object)(nil)
		}
		out := &Object{keys: slices.Clone(val.keys), values: make(map[string]any, len(val.values))}
		for k, child := range val.values {
			out.values[k] = DeepCopy(child)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = DeepCopy(child)
		}
		return out
	default:
		return v
	}
}
