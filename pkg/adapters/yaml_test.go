package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/rpath/pkg/adapter"
	"github.com/roach88/rpath/pkg/expr"
)

const serviceYAML = `
name: api
defaults: &defaults
  retries: 3
  timeout: 1.5
servers:
  - host: a.example.com
    port: 8080
    tls: true
  - host: b.example.com
    port: 9090
backup: *defaults
empty:
`

func parseService(t *testing.T) *yaml.Node {
	t.Helper()
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(serviceYAML), &node))
	return &node
}

func TestYAML_Root(t *testing.T) {
	node := parseService(t)

	root := YAML{}.Root(node)
	require.IsType(t, YAMLVertex{}, root)
	assert.Equal(t, yaml.MappingNode, root.(YAMLVertex).Node.Kind)
	assert.Equal(t, "", root.(YAMLVertex).Key)

	assert.Nil(t, YAML{}.Root(&yaml.Node{Kind: yaml.DocumentNode}))
	assert.Nil(t, YAML{}.Root("name: x"))
}

func TestYAML_Adjacent(t *testing.T) {
	y := YAML{}
	root := y.Root(parseService(t))

	adj, err := y.Adjacent(root)
	require.NoError(t, err)

	var names []string
	for _, v := range adj {
		name, err := y.Name(v)
		require.NoError(t, err)
		names = append(names, name)
	}
	assert.Equal(t, []string{"name", "defaults", "servers", "backup", "empty"}, names)

	servers, err := y.Adjacent(adj[2])
	require.NoError(t, err)
	require.Len(t, servers, 2)
	assert.Equal(t, "1", servers[1].(YAMLVertex).Key)

	leaf, err := y.Adjacent(adj[0])
	require.NoError(t, err)
	assert.Equal(t, []adapter.Vertex{}, leaf)
}

func TestYAML_Expressions(t *testing.T) {
	node := parseService(t)
	root := expr.NewRoot()
	servers := root.Child("servers").Adjacent()

	testCases := []struct {
		name string
		expr expr.Expression
		want any
	}{
		{"scalar attribute", root.Attr("name"), "api"},
		{"scalar child content", root.Child("name").Content(), "api"},
		{"int attribute", servers.First().Attr("port"), 8080},
		{"bool attribute", servers.First().Attr("tls"), true},
		{"float through alias", root.Child("backup").Attr("timeout"), 1.5},
		{"where on int", servers.Where(expr.Conditions{"port": 9090}).Attr("host"), "b.example.com"},
		{"index name", root.Child("servers").Child("1").Attr("host"), "b.example.com"},
		{"mapping attribute is absent", root.Attr("servers"), nil},
		{"null content is absent", root.Child("empty").Content(), nil},
		{"mapping content is absent", root.Child("defaults").Content(), nil},
		{"missing", servers.At(2).Attr("host"), nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.expr.Eval(node, YAML{})
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestYAML_Attributes(t *testing.T) {
	y := YAML{}
	node := parseService(t)

	v, err := expr.NewRoot().Child("backup").First().Eval(node, y)
	require.NoError(t, err)

	attrs, err := y.Attributes(v)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"retries": 3, "timeout": 1.5}, attrs)

	root := y.Root(node)
	attrs, err = y.Attributes(root)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "api"}, attrs)
}
