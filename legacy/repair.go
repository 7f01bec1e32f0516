package legacy

import "github.com/erraggy/oasexample/document"

// RepairTypeReferences rewrites, in place, every array whose items name a
// model through "type" so that the model is named through "$ref" instead:
//
//	{"type": "array", "items": {"type": "Pet"}}  =>  {"type": "array", "items": {"$ref": "Pet"}}
//
// Only names present in models are rewritten. The walk is depth-first and
// visits every object and sequence value regardless of key name. It returns
// the number of rewritten nodes.
func RepairTypeReferences(fragment any, models *document.Object) int {
	if models.Len() == 0 {
		return 0
	}
	return repair(fragment, models)
}

func repair(v any, models *document.Object) int {
	n := 0
	switch node := v.(type) {
	case *document.Object:
		if t, _ := node.String("type"); t == "array" {
			if items, ok := node.Object("items"); ok {
				if name, ok := items.String("type"); ok && models.Has(name) {
					items.Rename("type", "$ref")
					n++
				}
			}
		}
		node.Range(func(_ string, child any) bool {
			n += repair(child, models)
			return true
		})
	case []any:
		for _, child := range node {
			n += repair(child, models)
		}
	}
	return n
}
