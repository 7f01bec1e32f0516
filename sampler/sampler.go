package sampler

import (
	"fmt"

	"github.com/erraggy/oasexample/document"
	"github.com/erraggy/oasexample/internal/schemautil"
)

// DefaultMaxDepth bounds how deep synthesis descends before it stops with a
// placeholder.
const DefaultMaxDepth = 64

// DefaultMaxNodes bounds how many schema nodes a single Sample call may
// expand, counting cached sub-results at their full size.
const DefaultMaxNodes = 20000

// codeProperty is always sampled as "0", whatever its declared schema.
const codeProperty = "code"

// RefLookup resolves a "$ref" value to the schema it names.
// It returns false when the reference cannot be resolved.
type RefLookup func(ref string) (*document.Object, bool)

// Option configures a Sampler.
type Option func(*Sampler)

// WithRefLookup sets the function used to follow "$ref" pointers.
func WithRefLookup(lookup RefLookup) Option {
	return func(s *Sampler) {
		s.Lookup = lookup
	}
}

// WithMaxDepth sets the recursion bound. Non-positive values use DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(s *Sampler) {
		s.MaxDepth = depth
	}
}

// WithMaxNodes sets the per-call expansion budget. Non-positive values use
// DefaultMaxNodes.
func WithMaxNodes(n int) Option {
	return func(s *Sampler) {
		s.MaxNodes = n
	}
}

// Sampler synthesizes example values from schema nodes.
//
// A Sampler memoizes results by node identity, so repeated calls on shared
// sub-schemas (typically the targets of $ref) are computed once. Create one
// Sampler per document; a Sampler is not safe for concurrent use.
type Sampler struct {
	// Lookup follows "$ref" pointers. When nil, references are treated as
	// opaque schemas.
	Lookup RefLookup
	// MaxDepth bounds recursion. Zero means DefaultMaxDepth.
	MaxDepth int
	// MaxNodes bounds the nodes expanded by one Sample call. Once spent,
	// remaining sub-schemas yield the empty object placeholder. Zero means
	// DefaultMaxNodes.
	MaxNodes int

	remaining  int
	cache      map[*document.Object]cacheEntry
	active     map[*document.Object]bool
	activeRefs map[string]bool
	stats      CacheStats
}

type cacheEntry struct {
	value any
	ok    bool
	// size is the budget the entry consumed when it was built.
	size int
}

// CacheStats reports memoization activity.
type CacheStats struct {
	Hits    int
	Misses  int
	Entries int
}

// New creates a Sampler.
func New(opts ...Option) *Sampler {
	s := &Sampler{
		cache:      make(map[*document.Object]cacheEntry),
		active:     make(map[*document.Object]bool),
		activeRefs: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sample synthesizes an example value for schema. The second result is
// false when the schema yields no example (file payloads, opaque schemas).
//
// Recursion through a $ref name or a node that is already being sampled on
// the current path yields an empty object placeholder instead of looping.
// The same placeholder stands in for sub-schemas reached after the
// MaxNodes budget is spent.
func (s *Sampler) Sample(schema any) (any, bool) {
	s.init()
	s.remaining = s.maxNodes()
	v, ok, _ := s.sample(schema, 0)
	return v, ok
}

// Example synthesizes an example and serializes it as JSON indented with two
// spaces. The second result is false when the schema yields no example.
func (s *Sampler) Example(schema any) (string, bool, error) {
	v, ok := s.Sample(schema)
	if !ok {
		return "", false, nil
	}
	data, err := document.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", false, fmt.Errorf("sampler: failed to serialize example: %w", err)
	}
	return string(data), true, nil
}

// Stats returns the cache statistics collected so far.
func (s *Sampler) Stats() CacheStats {
	st := s.stats
	st.Entries = len(s.cache)
	return st
}

// Reset drops all memoized results.
func (s *Sampler) Reset() {
	s.cache = make(map[*document.Object]cacheEntry)
	s.stats = CacheStats{}
}

func (s *Sampler) init() {
	if s.cache == nil {
		s.cache = make(map[*document.Object]cacheEntry)
	}
	if s.active == nil {
		s.active = make(map[*document.Object]bool)
	}
	if s.activeRefs == nil {
		s.activeRefs = make(map[string]bool)
	}
}

func (s *Sampler) maxNodes() int {
	if s.MaxNodes > 0 {
		return s.MaxNodes
	}
	return DefaultMaxNodes
}

func (s *Sampler) maxDepth() int {
	if s.MaxDepth > 0 {
		return s.MaxDepth
	}
	return DefaultMaxDepth
}

// sample returns the value, whether there is one, and whether it is complete.
// Results cut short by the cycle, depth, or budget guard are incomplete and
// never cached, since the same node reached from another path may expand
// further.
func (s *Sampler) sample(v any, depth int) (any, bool, bool) {
	node, isNode := v.(*document.Object)
	if !isNode || node == nil {
		// Non-objects are opaque.
		return nil, false, true
	}

	if ref, ok := node.String("$ref"); ok && s.Lookup != nil {
		if s.activeRefs[ref] {
			return document.NewObject(), true, false
		}
		if target, found := s.Lookup(ref); found {
			s.activeRefs[ref] = true
			defer delete(s.activeRefs, ref)
			return s.sample(target, depth+1)
		}
	}

	if depth > s.maxDepth() {
		return document.NewObject(), true, false
	}

	if cached, hit := s.cache[node]; hit {
		if cached.size > s.remaining {
			return document.NewObject(), true, false
		}
		s.remaining -= cached.size
		s.stats.Hits++
		return cached.value, cached.ok, true
	}
	if s.active[node] {
		return document.NewObject(), true, false
	}
	if s.remaining <= 0 {
		return document.NewObject(), true, false
	}
	s.stats.Misses++

	before := s.remaining
	s.remaining--
	s.active[node] = true
	value, ok, complete := s.generate(node, depth)
	delete(s.active, node)

	if complete {
		s.cache[node] = cacheEntry{value: value, ok: ok, size: before - s.remaining}
	}
	return value, ok, complete
}

func (s *Sampler) generate(schema *document.Object, depth int) (any, bool, bool) {
	switch Classify(schema) {
	case KindObject:
		return s.sampleObject(schema, depth)

	case KindArray:
		item, ok, complete := s.sample(schema.Value("items"), depth+1)
		if !ok {
			item = nil
		}
		return []any{item}, true, complete

	case KindEnum:
		if v, ok := schema.Get("default"); ok {
			return v, true, true
		}
		values := schemautil.NormalizeArray(schema.Value("enum"))
		if len(values) == 0 {
			return nil, false, true
		}
		return values[0], true, true

	case KindFile:
		return nil, false, true

	case KindPrimitive:
		if v, ok := schema.Get("example"); ok {
			return v, true, true
		}
		typ := schemautil.GetPrimaryType(schema)
		format, _ := schema.String("format")
		if v, ok := Primitive(typ, format); ok {
			return v, true, true
		}
		return "Unknown Type: " + typ, true, true

	default:
		return nil, false, true
	}
}

func (s *Sampler) sampleObject(schema *document.Object, depth int) (any, bool, bool) {
	obj := document.NewObject()
	complete := true

	schemautil.Objectify(schema.Value("properties")).Range(func(name string, prop any) bool {
		if name == codeProperty {
			obj.Set(codeProperty, "0")
			return true
		}
		v, ok, c := s.sample(prop, depth+1)
		complete = complete && c
		if ok {
			obj.Set(name, v)
		}
		return true
	})

	switch ap := schema.Value("additionalProperties").(type) {
	case bool:
		if ap {
			obj.Set("additionalProp1", document.NewObject())
		}
	case *document.Object:
		v, ok, c := s.sample(ap, depth+1)
		complete = complete && c
		if ok {
			for i := 1; i <= 3; i++ {
				obj.Set(fmt.Sprintf("additionalProp%d", i), v)
			}
		}
	}

	return obj, true, complete
}
