package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rpath/pkg/adapter"
	"github.com/roach88/rpath/pkg/adapters"
	"github.com/roach88/rpath/pkg/expr"
)

func sampleGraph() map[string]any {
	return map[string]any{
		"name":    "a",
		"content": "top",
		"adjacent": []any{
			map[string]any{"name": "b", "x": "y", "content": 1.5},
			map[string]any{"name": "c"},
		},
	}
}

func TestValue(t *testing.T) {
	root := expr.NewRoot()

	testCases := []struct {
		name string
		expr expr.Expression
		want string
	}{
		{"vertex", root, `{"content":"top","vertex":"a"}`},
		{"vertex without content", root.Child("c").First(), `{"vertex":"c"}`},
		{"vertex array", root.Adjacent(), `[{"content":1.5,"vertex":"b"},{"vertex":"c"}]`},
		{"empty array", root.Child("z"), `[]`},
		{"scalar", root.Child("b").Attr("x"), `"y"`},
		{"absent", root.Child("z").Attr("x"), Absent},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := adapters.MapGraph{}
			result, err := tc.expr.Eval(sampleGraph(), a)
			require.NoError(t, err)

			v, err := Value(tc.expr, result, a)
			require.NoError(t, err)

			text, err := Text(v)
			require.NoError(t, err)
			assert.Equal(t, tc.want, text)
		})
	}
}

// nameOnly supports names but not content.
type nameOnly struct {
	adapter.Base
}

func (nameOnly) Name(v adapter.Vertex) (string, error) { return v.(string), nil }

func TestValue_UnsupportedContentIsOmitted(t *testing.T) {
	v, err := Value(expr.NewRoot(), "leaf", nameOnly{})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"vertex": "leaf"}, v)
}

func TestValue_WrongResultType(t *testing.T) {
	_, err := Value(expr.NewRoot().Adjacent(), "not a slice", adapters.MapGraph{})
	assert.Error(t, err)
}
