package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rpath/pkg/adapter"
	"github.com/roach88/rpath/pkg/expr"
)

func sampleMapGraph() map[string]any {
	return map[string]any{
		"name":    "a",
		"content": "root",
		"adjacent": []any{
			map[string]any{"name": "b", "attr": map[string]any{"x": "y"}},
			map[string]any{"name": "b", "x": "z", "n": 2, "content": "second"},
			map[string]any{"name": 7},
		},
	}
}

func TestMapGraph_ConcreteScenario(t *testing.T) {
	graph := map[string]any{
		"name":     "a",
		"adjacent": []map[string]any{{"name": "b", "attr": map[string]any{"x": "y"}}},
	}

	e, err := expr.NewRoot().Child("b").Subscript("x")
	require.NoError(t, err)

	got, err := e.Eval(graph, MapGraph{})
	require.NoError(t, err)
	assert.Equal(t, "y", got)
}

func TestMapGraph_Expressions(t *testing.T) {
	root := expr.NewRoot()
	bs := root.Child("b")

	testCases := []struct {
		name string
		expr expr.Expression
		want any
	}{
		{"root content", root.Content(), "root"},
		{"attr map", bs.Attr("x"), "y"},
		{"top-level key", bs.At(1).Attr("x"), "z"},
		{"where across int types", bs.Where(expr.Conditions{"n": int64(2)}).Content(), "second"},
		{"non-string name", root.Child("7").Attr("x"), nil},
		{"reserved key is not an attribute", root.Attr("content"), nil},
		{"no content", bs.Content(), nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.expr.Eval(sampleMapGraph(), MapGraph{})
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMapGraph_Name(t *testing.T) {
	name, err := MapGraph{}.Name(map[string]any{"name": 7})
	require.NoError(t, err)
	assert.Equal(t, "7", name)

	name, err = MapGraph{}.Name(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "", name)
}

func TestMapGraph_Adjacent(t *testing.T) {
	adj, err := MapGraph{}.Adjacent(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, []adapter.Vertex{}, adj)

	_, err = MapGraph{}.Adjacent(map[string]any{"adjacent": []any{"not a map"}})
	assert.Error(t, err)

	_, err = MapGraph{}.Adjacent(map[string]any{"adjacent": "nope"})
	assert.Error(t, err)
}

func TestMapGraph_Attributes(t *testing.T) {
	attrs, err := MapGraph{}.Attributes(map[string]any{
		"name":    "b",
		"content": "c",
		"x":       "top",
		"attr":    map[string]any{"x": "nested", "y": 1},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": "nested", "y": 1}, attrs)
}

func TestMapGraph_AdaptsTo(t *testing.T) {
	assert.True(t, MapGraph{}.AdaptsTo(map[string]any{}))
	assert.False(t, MapGraph{}.AdaptsTo(map[string]string{}))
}
