package adapters

import (
	"testing"

	"cuelang.org/go/cue"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/rpath/pkg/errs"
	"github.com/roach88/rpath/pkg/expr"
	"github.com/roach88/rpath/pkg/registry"
	"github.com/roach88/rpath/pkg/xmltree"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"filesystem", "xml", "yaml", "cue", "map_graph"}, Names())
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			a, err := New(name)
			require.NoError(t, err)
			assert.Equal(t, registry.ID(name), registry.DefaultID(a))
		})
	}

	_, err := New("nokogiri")
	require.Error(t, err)
	assert.Equal(t, errs.CodeUnknownBuiltin, errs.CodeOf(err))
	assert.Contains(t, err.Error(), "map_graph")
}

func TestInference_AcrossBuiltins(t *testing.T) {
	r := registry.New()
	for _, name := range Names() {
		a, err := New(name)
		require.NoError(t, err)
		r.Register(a, "")
	}

	doc, err := xmltree.ParseString("<a/>")
	require.NoError(t, err)

	assert.IsType(t, XML{}, r.Infer(doc))
	assert.IsType(t, YAML{}, r.Infer(&yaml.Node{}))
	assert.IsType(t, MapGraph{}, r.Infer(map[string]any{}))
	assert.Nil(t, r.Infer("/tmp"))
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/g/doc.xml":    `<a><b x="y"/></a>`,
		"/g/doc.yaml":   "b:\n  x: y\n",
		"/g/doc.json":   `{"name": "a", "adjacent": [{"name": "b", "attr": {"x": "y"}}]}`,
		"/g/doc.cue":    `b: x: "y"`,
		"/g/doc.txt":    "plain",
		"/g/broken.xml": "<a>",
	}
	for path, data := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(data), 0o644))
	}

	testCases := []struct {
		path    string
		adapter string
		expr    expr.Expression
	}{
		{"/g/doc.xml", NameXML, expr.NewRoot().Child("a").Child("b").Attr("x")},
		{"/g/doc.yaml", NameYAML, expr.NewRoot().Child("b").Attr("x")},
		{"/g/doc.json", NameMapGraph, expr.NewRoot().Child("b").Attr("x")},
		{"/g/doc.cue", NameCUE, expr.NewRoot().Child("b").Attr("x")},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			graph, name, err := Load(fs, tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.adapter, name)

			a, err := New(name)
			require.NoError(t, err)
			got, err := tc.expr.Eval(graph, a)
			require.NoError(t, err)
			assert.Equal(t, "y", got)
		})
	}

	graph, name, err := Load(fs, "/g")
	require.NoError(t, err)
	assert.Equal(t, NameFilesystem, name)
	assert.Equal(t, "/g", graph)

	_, _, err = Load(fs, "/g/doc.txt")
	assert.ErrorContains(t, err, "unsupported extension")

	_, _, err = Load(fs, "/g/broken.xml")
	assert.Error(t, err)

	_, _, err = Load(fs, "/g/missing.xml")
	assert.Error(t, err)
}

func TestLoad_CUEValueIsGraph(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/v.cue", []byte(`a: 1`), 0o644))

	graph, _, err := Load(fs, "/v.cue")
	require.NoError(t, err)
	assert.IsType(t, cue.Value{}, graph)
}
