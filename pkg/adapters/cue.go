package adapters

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/roach88/rpath/pkg/adapter"
)

// CUE adapts evaluated CUE values. Vertices are cue.Value.
//
// Structs are adjacent to their regular fields and lists to their
// elements. A vertex is named by the last selector of its path, so list
// elements are named by their index.
type CUE struct {
	adapter.Base
}

// AdaptsTo reports whether graph is a cue.Value.
func (CUE) AdaptsTo(graph any) bool {
	_, ok := graph.(cue.Value)
	return ok
}

// Root returns the value itself.
func (CUE) Root(graph any) adapter.Vertex {
	v, ok := graph.(cue.Value)
	if !ok || !v.Exists() {
		return nil
	}
	return v
}

// Name returns the last path selector, unquoted.
func (CUE) Name(v adapter.Vertex) (string, error) {
	val, err := cueValueOf(v)
	if err != nil {
		return "", err
	}

	selectors := val.Path().Selectors()
	if len(selectors) == 0 {
		return "", nil
	}
	sel := selectors[len(selectors)-1]
	if sel.LabelType() == cue.StringLabel {
		return sel.Unquoted(), nil
	}
	return sel.String(), nil
}

// Adjacent returns the regular fields of a struct or the elements of a
// list. Other values have no adjacent vertices.
func (CUE) Adjacent(v adapter.Vertex) ([]adapter.Vertex, error) {
	val, err := cueValueOf(v)
	if err != nil {
		return nil, err
	}

	out := []adapter.Vertex{}
	switch val.IncompleteKind() {
	case cue.StructKind:
		iter, err := val.Fields()
		if err != nil {
			return nil, fmt.Errorf("cue: fields of %s: %w", val.Path(), err)
		}
		for iter.Next() {
			out = append(out, iter.Value())
		}
	case cue.ListKind:
		iter, err := val.List()
		if err != nil {
			return nil, fmt.Errorf("cue: elements of %s: %w", val.Path(), err)
		}
		for iter.Next() {
			out = append(out, iter.Value())
		}
	}
	return out, nil
}

// Attribute returns the concrete scalar at field name of a struct.
func (CUE) Attribute(v adapter.Vertex, name string) (any, error) {
	val, err := cueValueOf(v)
	if err != nil {
		return nil, err
	}
	if val.IncompleteKind() != cue.StructKind {
		return nil, nil
	}

	field := val.LookupPath(cue.MakePath(cue.Str(name)))
	if !field.Exists() {
		return nil, nil
	}
	return concreteScalar(field)
}

// Attributes returns every concrete scalar field of a struct.
func (CUE) Attributes(v adapter.Vertex) (map[string]any, error) {
	val, err := cueValueOf(v)
	if err != nil {
		return nil, err
	}

	out := map[string]any{}
	if val.IncompleteKind() != cue.StructKind {
		return out, nil
	}

	iter, err := val.Fields()
	if err != nil {
		return nil, fmt.Errorf("cue: fields of %s: %w", val.Path(), err)
	}
	for iter.Next() {
		value, err := concreteScalar(iter.Value())
		if err != nil {
			return nil, err
		}
		if value != nil {
			out[iter.Selector().Unquoted()] = value
		}
	}
	return out, nil
}

// Content returns the value as a Go scalar, or nil if it is not a concrete
// scalar.
func (CUE) Content(v adapter.Vertex) (any, error) {
	val, err := cueValueOf(v)
	if err != nil {
		return nil, err
	}
	return concreteScalar(val)
}

// concreteScalar converts a concrete CUE scalar to bool, int64, float64 or
// string. Structs, lists, null and incomplete values yield nil.
func concreteScalar(v cue.Value) (any, error) {
	if !v.IsConcrete() {
		return nil, nil
	}

	switch v.Kind() {
	case cue.BoolKind:
		return v.Bool()
	case cue.IntKind:
		i, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("cue: %s: %w", v.Path(), err)
		}
		return i, nil
	case cue.FloatKind:
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("cue: %s: %w", v.Path(), err)
		}
		return f, nil
	case cue.StringKind:
		return v.String()
	case cue.BytesKind:
		b, err := v.Bytes()
		if err != nil {
			return nil, err
		}
		return string(b), nil
	}
	return nil, nil
}

func cueValueOf(v adapter.Vertex) (cue.Value, error) {
	val, ok := v.(cue.Value)
	if !ok {
		return cue.Value{}, fmt.Errorf("cue: vertex is %T, want cue.Value", v)
	}
	return val, nil
}
