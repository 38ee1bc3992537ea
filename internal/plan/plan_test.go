package plan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rpath/pkg/adapter"
	"github.com/roach88/rpath/pkg/expr"
)

func TestBuild(t *testing.T) {
	testCases := []struct {
		name  string
		steps []Step
		want  string
	}{
		{"empty", nil, "root"},
		{"child attr", []Step{{Op: OpChild, Name: "b"}, {Op: OpAttr, Name: "x"}}, "root.b[0][x]"},
		{"adjacent named at", []Step{{Op: OpAdjacent}, {Op: OpNamed, Name: "b"}, {Op: OpAt, Index: -1}}, "root.b[-1]"},
		{"where", []Step{{Op: OpAdjacent}, {Op: OpWhere, Where: map[string]any{"x": "y"}}}, "root.[x: y]"},
		{"forwarded content", []Step{{Op: OpChild, Name: "b"}, {Op: OpContent}}, "root.b[0]:content"},
		{"forwarded adjacent", []Step{{Op: OpChild, Name: "b"}, {Op: OpAdjacent}}, "root.b[0]."},
		{"root content", []Step{{Op: OpContent}}, "root:content"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := Build(tc.steps)
			require.NoError(t, err)
			assert.Equal(t, tc.want, e.String())
		})
	}
}

func TestBuild_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		steps []Step
		index int
		want  string
	}{
		{"at on vertex", []Step{{Op: OpAt, Index: 0}}, 0, "not applicable to vertex"},
		{"where on vertex", []Step{{Op: OpWhere}}, 0, "not applicable to vertex"},
		{"named on vertex", []Step{{Op: OpNamed, Name: "x"}}, 0, "not applicable to vertex"},
		{"after scalar", []Step{{Op: OpAttr, Name: "x"}, {Op: OpContent}}, 1, "nothing can follow scalar"},
		{"missing name", []Step{{Op: OpChild}}, 0, "name is required"},
		{"unknown op", []Step{{Op: OpAdjacent}, {Op: "parent"}}, 1, "unknown op"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Build(tc.steps)
			require.Error(t, err)

			var stepErr *StepError
			require.True(t, errors.As(err, &stepErr))
			assert.Equal(t, tc.index, stepErr.Index)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestFromExpression_RoundTrip(t *testing.T) {
	root := expr.NewRoot()
	exprs := []expr.Expression{
		root,
		root.Child("b").Child("d").Content(),
		root.Adjacent().Where(expr.Conditions{"n": 1, "x": "y"}).At(2).Attr("z"),
		root.Child("b").Attr("x"),
	}

	for _, e := range exprs {
		t.Run(e.String(), func(t *testing.T) {
			steps, err := FromExpression(e)
			require.NoError(t, err)

			rebuilt, err := Build(steps)
			require.NoError(t, err)
			assert.Equal(t, e.String(), rebuilt.String())
		})
	}
}

func TestFromExpression_Selector(t *testing.T) {
	e := expr.NewRoot().Adjacent().Select(func(adapter.Vertex) bool { return true })

	_, err := FromExpression(e)
	assert.ErrorContains(t, err, "selector")
}

func writePlan(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	files := map[string]string{
		"plan.yaml": `
description: first book id
steps:
  - {op: child, name: library}
  - {op: child, name: book}
  - {op: where, where: {lang: en, year: 1965}}
  - {op: attr, name: id}
`,
		"plan.json": `{"steps": [
  {"op": "child", "name": "library"},
  {"op": "child", "name": "book"},
  {"op": "where", "where": {"lang": "en", "year": 1965}},
  {"op": "attr", "name": "id"}
]}`,
		"plan.cue": `
description: "first book id"
steps: [
	{op: "child", name: "library"},
	{op: "child", name: "book"},
	{op: "where", where: {lang: "en", year: 1965}},
	{op: "attr", name: "id"},
]
`,
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			f, err := Load(writePlan(t, name, content))
			require.NoError(t, err)

			e, err := f.Expression()
			require.NoError(t, err)
			assert.Equal(t, "root.library[0].book[lang: en, year: 1965][0][id]", e.String())
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(writePlan(t, "plan.txt", "steps: []"))
	assert.ErrorContains(t, err, "unsupported extension")

	_, err = Load(writePlan(t, "plan.yaml", "steps: [{name: x}]"))
	assert.ErrorContains(t, err, "no op")

	_, err = Load(writePlan(t, "plan.cue", "steps: [{op: string}]"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
