package adapters

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/roach88/rpath/pkg/adapter"
)

// YAMLVertex is a YAML node together with the key it was reached by.
// Mapping values are keyed by their mapping key, sequence items by their
// decimal index. The root has an empty key.
type YAMLVertex struct {
	Key  string
	Node *yaml.Node
}

// YAML adapts *yaml.Node trees. Vertices are YAMLVertex values.
//
// Scalar mapping entries are both attributes of the mapping and adjacent
// vertices with content, so these are equivalent:
//
//	root.Child("server").Attr("port")
//	root.Child("server").Child("port").Content()
type YAML struct {
	adapter.Base
}

// AdaptsTo reports whether graph is a *yaml.Node.
func (YAML) AdaptsTo(graph any) bool {
	_, ok := graph.(*yaml.Node)
	return ok
}

// Root unwraps a document node to its content.
func (YAML) Root(graph any) adapter.Vertex {
	n, ok := graph.(*yaml.Node)
	if !ok || n == nil {
		return nil
	}
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		n = n.Content[0]
	}
	return YAMLVertex{Node: n}
}

// Name returns the key the vertex was reached by.
func (YAML) Name(v adapter.Vertex) (string, error) {
	yv, err := yamlVertexOf(v)
	if err != nil {
		return "", err
	}
	return yv.Key, nil
}

// Adjacent returns the entries of a mapping or the items of a sequence.
// Scalars have no adjacent vertices.
func (YAML) Adjacent(v adapter.Vertex) ([]adapter.Vertex, error) {
	yv, err := yamlVertexOf(v)
	if err != nil {
		return nil, err
	}

	n := resolveAlias(yv.Node)
	switch n.Kind {
	case yaml.MappingNode:
		out := make([]adapter.Vertex, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			out = append(out, YAMLVertex{Key: n.Content[i].Value, Node: n.Content[i+1]})
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([]adapter.Vertex, len(n.Content))
		for i, item := range n.Content {
			out[i] = YAMLVertex{Key: strconv.Itoa(i), Node: item}
		}
		return out, nil
	}
	return []adapter.Vertex{}, nil
}

// Attribute returns the decoded scalar value of key name of a mapping.
// Keys holding mappings or sequences, and non-mapping vertices, are absent.
func (YAML) Attribute(v adapter.Vertex, name string) (any, error) {
	yv, err := yamlVertexOf(v)
	if err != nil {
		return nil, err
	}

	n := resolveAlias(yv.Node)
	if n.Kind != yaml.MappingNode {
		return nil, nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == name {
			return scalarValue(n.Content[i+1])
		}
	}
	return nil, nil
}

// Attributes returns every scalar entry of a mapping.
func (y YAML) Attributes(v adapter.Vertex) (map[string]any, error) {
	yv, err := yamlVertexOf(v)
	if err != nil {
		return nil, err
	}

	out := map[string]any{}
	n := resolveAlias(yv.Node)
	if n.Kind != yaml.MappingNode {
		return out, nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		value, err := scalarValue(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		if value != nil {
			out[n.Content[i].Value] = value
		}
	}
	return out, nil
}

// Content returns the decoded value of a scalar, or nil for mappings,
// sequences and null.
func (YAML) Content(v adapter.Vertex) (any, error) {
	yv, err := yamlVertexOf(v)
	if err != nil {
		return nil, err
	}
	return scalarValue(yv.Node)
}

func scalarValue(n *yaml.Node) (any, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.ScalarNode {
		return nil, nil
	}
	var value any
	if err := n.Decode(&value); err != nil {
		return nil, fmt.Errorf("yaml: decode scalar at line %d: %w", n.Line, err)
	}
	return value, nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func yamlVertexOf(v adapter.Vertex) (YAMLVertex, error) {
	yv, ok := v.(YAMLVertex)
	if !ok || yv.Node == nil {
		return YAMLVertex{}, fmt.Errorf("yaml: vertex is %T, want YAMLVertex", v)
	}
	return yv, nil
}
