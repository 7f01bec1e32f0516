package annotator

import (
	"strings"

	"github.com/erraggy/oasexample/document"
)

// maxRefHops bounds how many chained $ref values resolve follows.
const maxRefHops = 32

// refLookup resolves local references against one document.
type refLookup func(ref string) (*document.Object, bool)

// newRefLookup returns a lookup for local JSON pointers ("#/definitions/Pet")
// and for the bare model names left by Swagger 1.x conversion ("Pet"), which
// are looked up under definitions and then components/schemas.
func newRefLookup(root *document.Object) refLookup {
	return func(ref string) (*document.Object, bool) {
		if !strings.HasPrefix(ref, "#") {
			if strings.Contains(ref, "/") || strings.Contains(ref, ":") {
				// External references are not followed.
				return nil, false
			}
			for _, section := range [][]string{{"definitions"}, {"components", "schemas"}} {
				node, ok := lookupPath(root, append(section, ref)...)
				if ok {
					return node, true
				}
			}
			return nil, false
		}
		v, err := document.ResolvePointer(root, ref)
		if err != nil {
			return nil, false
		}
		obj, ok := v.(*document.Object)
		return obj, ok
	}
}

func lookupPath(root *document.Object, keys ...string) (*document.Object, bool) {
	current := root
	for _, key := range keys {
		next, ok := current.Object(key)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// resolve returns v as an object, following "$ref" chains. An unresolvable
// reference yields the referencing node.
func (l refLookup) resolve(v any) (*document.Object, bool) {
	obj, ok := v.(*document.Object)
	if !ok || obj == nil {
		return nil, false
	}
	for range maxRefHops {
		ref, has := obj.String("$ref")
		if !has {
			return obj, true
		}
		target, found := l(ref)
		if !found {
			return obj, true
		}
		obj = target
	}
	return obj, true
}

// RefLookup returns the reference lookup the annotator uses for root. It can
// be passed to sampler.WithRefLookup and params.WithRefLookup to sample or
// extract nodes of root outside an annotation run.
func RefLookup(root *document.Object) func(ref string) (*document.Object, bool) {
	return newRefLookup(root)
}
