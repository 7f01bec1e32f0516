package document

import (
	"fmt"
	"strconv"
	"strings"
)

// ResolvePointer resolves a local JSON pointer reference ("#/a/b/0") against
// root. "#" and "#/" resolve to root itself.
func ResolvePointer(root any, ref string) (any, error) {
	ref = strings.TrimPrefix(ref, "#")
	if ref == "" || ref == "/" {
		return root, nil
	}
	if !strings.HasPrefix(ref, "/") {
		return nil, fmt.Errorf("document: not a local JSON pointer: %q", ref)
	}

	parts := strings.Split(strings.TrimPrefix(ref, "/"), "/")
	current := root
	for i, part := range parts {
		part = unescapePointerToken(part)

		switch v := current.(type) {
		case *Object:
			next, ok := v.Get(part)
			if !ok {
				return nil, fmt.Errorf("document: reference not found: #/%s (missing key: %s)", strings.Join(parts[:i+1], "/"), part)
			}
			current = next

		case []any:
			index, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("document: invalid array index '%s' in reference: #/%s", part, strings.Join(parts[:i+1], "/"))
			}
			if index < 0 || index >= len(v) {
				return nil, fmt.Errorf("document: array index %d out of bounds (length %d) in reference: #/%s", index, len(v), strings.Join(parts[:i+1], "/"))
			}
			current = v[index]

		default:
			return nil, fmt.Errorf("document: cannot traverse into %s at #/%s", TypeName(v), strings.Join(parts[:i], "/"))
		}
	}
	return current, nil
}

// unescapePointerToken applies RFC 6901 unescaping: ~1 is / and ~0 is ~.
func unescapePointerToken(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}

// EscapePointerToken applies RFC 6901 escaping to a single token.
func EscapePointerToken(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	return strings.ReplaceAll(token, "/", "~1")
}
