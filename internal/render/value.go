// Package render turns evaluation results into plain, JSON-ready values
// and canonical JSON text.
package render

import (
	"fmt"

	"github.com/roach88/rpath/pkg/adapter"
	"github.com/roach88/rpath/pkg/errs"
	"github.com/roach88/rpath/pkg/expr"
)

// Absent is the text rendering of an absent result.
const Absent = "<absent>"

// Value converts the result of evaluating e into a value MarshalCanonical
// accepts. Vertices are opaque, so they are described through a:
//
//	vertex          {"vertex": name, "content": content}
//	vertex array    [{"vertex": ...}, ...]
//	scalar          unchanged
//	absent          nil
//
// "content" is omitted when the vertex has none or the adapter does not
// support content.
func Value(e expr.Expression, result any, a adapter.Adapter) (any, error) {
	if result == nil {
		return nil, nil
	}

	switch e.(type) {
	case expr.VertexExpression:
		return describeVertex(result, a)
	case expr.VertexArrayExpression:
		vertices, ok := result.([]adapter.Vertex)
		if !ok {
			return nil, fmt.Errorf("render %s: result is %T, want vertex array", e, result)
		}
		out := make([]any, len(vertices))
		for i, v := range vertices {
			d, err := describeVertex(v, a)
			if err != nil {
				return nil, fmt.Errorf("render %s[%d]: %w", e, i, err)
			}
			out[i] = d
		}
		return out, nil
	default:
		return result, nil
	}
}

func describeVertex(v adapter.Vertex, a adapter.Adapter) (map[string]any, error) {
	name, err := a.Name(v)
	if err != nil {
		return nil, err
	}
	d := map[string]any{"vertex": name}

	content, err := a.Content(v)
	if err != nil && !errs.IsUnsupportedCapability(err) {
		return nil, err
	}
	if content != nil {
		d["content"] = content
	}
	return d, nil
}

// Text renders a value produced by Value as canonical JSON, or Absent for nil.
func Text(v any) (string, error) {
	if v == nil {
		return Absent, nil
	}
	data, err := MarshalCanonical(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
