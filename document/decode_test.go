package document

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/erraggy/oasexample/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nestedAnchors builds a document whose last anchor expands to 10^levels
// scalars.
func nestedAnchors(levels int) []byte {
	var b strings.Builder
	b.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= levels; i++ {
		refs := make([]string, 10)
		for j := range refs {
			refs[j] = fmt.Sprintf("*l%d", i-1)
		}
		fmt.Fprintf(&b, "l%d: &l%d [%s]\n", i, i, strings.Join(refs, ", "))
	}
	return []byte(b.String())
}

func TestDecodeAliasExpansionLimit(t *testing.T) {
	_, err := Decode(nestedAnchors(6))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrResourceLimit))

	var limitErr *oaserrors.ResourceLimitError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, "yaml_nodes", limitErr.ResourceType)
}

func TestDecodeAliases(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, obj *Object)
	}{
		{
			name:  "shallow nesting stays within budget",
			input: string(nestedAnchors(2)),
			check: func(t *testing.T, obj *Object) {
				outer, ok := obj.Value("l2").([]any)
				require.True(t, ok)
				require.Len(t, outer, 10)
				inner, ok := outer[9].([]any)
				require.True(t, ok)
				assert.Len(t, inner, 10)
			},
		},
		{
			name:  "reused schema",
			input: "definitions:\n  Id: &id\n    type: integer\n  Ref:\n    id: *id\n",
			check: func(t *testing.T, obj *Object) {
				ref, ok := obj.Value("definitions").(*Object).Value("Ref").(*Object)
				require.True(t, ok)
				id, ok := ref.Value("id").(*Object)
				require.True(t, ok)
				assert.Equal(t, "integer", id.Value("type"))
			},
		},
		{
			name:  "merge key keeps local values",
			input: "base: &base\n  type: string\n  format: uuid\nchild:\n  <<: *base\n  format: date\n",
			check: func(t *testing.T, obj *Object) {
				child, ok := obj.Value("child").(*Object)
				require.True(t, ok)
				assert.Equal(t, "string", child.Value("type"))
				assert.Equal(t, "date", child.Value("format"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := DecodeObject([]byte(tt.input))
			require.NoError(t, err)
			tt.check(t, obj)
		})
	}
}
