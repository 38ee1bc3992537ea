package adapters

import (
	"fmt"

	"github.com/roach88/rpath/pkg/adapter"
)

// Reserved MapGraph keys.
const (
	KeyName     = "name"
	KeyAdjacent = "adjacent"
	KeyContent  = "content"
	KeyAttr     = "attr"
)

// MapGraph adapts JSON-shaped maps. Vertices are map[string]any:
//
//	{"name": "a", "content": "text", "attr": {"x": "y"}, "adjacent": [{...}, ...]}
//
// Attributes are read from the "attr" map first; any other key that is not
// reserved is an attribute too, so {"name": "b", "x": "y"} also has x = y.
type MapGraph struct {
	adapter.Base
}

// AdaptsTo reports whether graph is a map[string]any.
func (MapGraph) AdaptsTo(graph any) bool {
	_, ok := graph.(map[string]any)
	return ok
}

// Root returns the map itself.
func (MapGraph) Root(graph any) adapter.Vertex {
	m, ok := graph.(map[string]any)
	if !ok || m == nil {
		return nil
	}
	return m
}

// Name returns the "name" key. Non-string names are formatted with %v.
func (MapGraph) Name(v adapter.Vertex) (string, error) {
	m, err := mapOf(v)
	if err != nil {
		return "", err
	}
	switch name := m[KeyName].(type) {
	case nil:
		return "", nil
	case string:
		return name, nil
	default:
		return fmt.Sprint(name), nil
	}
}

// Adjacent returns the maps listed under "adjacent".
func (MapGraph) Adjacent(v adapter.Vertex) ([]adapter.Vertex, error) {
	m, err := mapOf(v)
	if err != nil {
		return nil, err
	}

	switch adj := m[KeyAdjacent].(type) {
	case nil:
		return []adapter.Vertex{}, nil
	case []map[string]any:
		out := make([]adapter.Vertex, len(adj))
		for i, c := range adj {
			out[i] = c
		}
		return out, nil
	case []any:
		out := make([]adapter.Vertex, 0, len(adj))
		for i, c := range adj {
			child, ok := c.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("map_graph: adjacent[%d] is %T, want map[string]any", i, c)
			}
			out = append(out, child)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("map_graph: adjacent is %T, want a list of maps", adj)
	}
}

// Attribute returns attribute name, or nil if the vertex has none.
func (MapGraph) Attribute(v adapter.Vertex, name string) (any, error) {
	m, err := mapOf(v)
	if err != nil {
		return nil, err
	}
	if attrs, ok := m[KeyAttr].(map[string]any); ok {
		if value, ok := attrs[name]; ok {
			return value, nil
		}
	}
	if reserved(name) {
		return nil, nil
	}
	return m[name], nil
}

// Attributes returns every attribute of the vertex.
func (MapGraph) Attributes(v adapter.Vertex) (map[string]any, error) {
	m, err := mapOf(v)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(m))
	for k, value := range m {
		if !reserved(k) && value != nil {
			out[k] = value
		}
	}
	if attrs, ok := m[KeyAttr].(map[string]any); ok {
		for k, value := range attrs {
			if value != nil {
				out[k] = value
			}
		}
	}
	return out, nil
}

// Content returns the "content" key.
func (MapGraph) Content(v adapter.Vertex) (any, error) {
	m, err := mapOf(v)
	if err != nil {
		return nil, err
	}
	return m[KeyContent], nil
}

func reserved(key string) bool {
	switch key {
	case KeyName, KeyAdjacent, KeyContent, KeyAttr:
		return true
	}
	return false
}

func mapOf(v adapter.Vertex) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("map_graph: vertex is %T, want map[string]any", v)
	}
	return m, nil
}
