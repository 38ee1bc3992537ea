// Package expr implements rpath expressions: lazy, immutable pipelines over
// an abstract vertex graph.
//
// An expression is a singly-linked chain of nodes rooted at a Root. Each
// node holds the prior node it extends. Nodes come in three families:
//
//	VertexExpression       evaluates to zero or one vertex  (Root, At)
//	VertexArrayExpression  evaluates to zero or more vertices (Adjacent, Named, Where)
//	ScalarExpression       evaluates to a value              (Attribute, Content)
//
// Evaluation resolves an adapter (explicit, by registered id, or inferred
// from the graph) and then descends the chain. When any step is absent,
// every later step is absent too, and the adapter is not consulted again.
// Absent results are returned as nil with a nil error.
//
// # Traversal sugar
//
// Child(name) on a vertex expression is Adjacent().Named(name). Array
// expressions forward operations they do not define themselves to their
// first element, so on an array expression:
//
//	Child(name)    == At(0).Child(name)
//	Adjacent()     == At(0).Adjacent()
//	Content()      == At(0).Content()
//	Attr(name)     == At(0).Attr(name)
//	Subscript("x") == At(0).Subscript("x")
//
// This makes Root().Child("foo").Child("bar") mean: children of the root
// named foo, the first of those, its children named bar.
package expr

import (
	"context"
	"fmt"

	"github.com/roach88/rpath/pkg/adapter"
	"github.com/roach88/rpath/pkg/errs"
	"github.com/roach88/rpath/pkg/registry"
)

// Expression is a node of an rpath expression chain.
//
// This is a sealed interface - only types in this package implement it.
type Expression interface {
	fmt.Stringer

	// Prior returns the expression this node extends, or nil for Root.
	Prior() Expression

	// Eval evaluates the expression on graph. ref selects the adapter: an
	// adapter.Adapter is used directly, a registry.ID or string is looked up
	// in the registry, and nil asks the registry to infer one from graph.
	//
	// Returns nil, nil when the result is absent.
	Eval(graph any, ref any, opts ...EvalOption) (any, error)

	evaluate(graph any, a adapter.Adapter) (any, bool, error)
}

// VertexExpression evaluates to zero or one vertex.
type VertexExpression interface {
	Expression

	// Adjacent returns an expression producing the vertex's adjacent vertices.
	Adjacent() *Adjacent

	// Content returns an expression producing the vertex's content.
	Content() *Content

	// Attr returns an expression producing the value of attribute name.
	Attr(name string) *Attribute

	// Child returns an expression producing the adjacent vertices named name.
	Child(name string) *Named

	// Subscript accepts a string or Ident and returns an Attribute.
	Subscript(sub any) (Expression, error)

	evalVertex(graph any, a adapter.Adapter) (adapter.Vertex, bool, error)
}

// VertexArrayExpression evaluates to zero or more vertices.
type VertexArrayExpression interface {
	Expression

	// Where returns an expression selecting the vertices whose attributes
	// equal all of conditions.
	Where(conditions Conditions) *Where

	// Select returns an expression selecting the vertices for which
	// selector returns true.
	Select(selector Selector) *Where

	// Named returns an expression selecting the vertices named name.
	Named(name string) *Named

	// At returns an expression producing the vertex at index.
	At(index int) *At

	// First is At(0).
	First() *At

	Adjacent() *Adjacent
	Content() *Content
	Attr(name string) *Attribute
	Child(name string) *Named

	// Subscript accepts an integer (At), Conditions or map[string]any
	// (Where), or a string or Ident (attribute of the first vertex).
	Subscript(sub any) (Expression, error)

	evalVertices(graph any, a adapter.Adapter) ([]adapter.Vertex, bool, error)
}

// ScalarExpression evaluates to an attribute value or content.
type ScalarExpression interface {
	Expression

	evalValue(graph any, a adapter.Adapter) (any, bool, error)
}

// EvalOption configures a single evaluation.
type EvalOption func(*evalConfig)

type evalConfig struct {
	registry *registry.Registry
}

// WithRegistry resolves adapter ids and inference against r instead of
// registry.Default().
func WithRegistry(r *registry.Registry) EvalOption {
	return func(c *evalConfig) {
		c.registry = r
	}
}

// WithContext resolves adapter ids and inference against the registry
// carried by ctx (see registry.NewContext).
func WithContext(ctx context.Context) EvalOption {
	return func(c *evalConfig) {
		c.registry = registry.FromContext(ctx)
	}
}

// Resolve determines the adapter for an evaluation of graph.
//
//   - an adapter.Adapter is returned as is
//   - a registry.ID or string is looked up in reg
//   - nil is inferred from graph by reg
//
// Any other ref fails with INVALID_ADAPTER_REFERENCE.
func Resolve(graph any, ref any, reg *registry.Registry) (adapter.Adapter, error) {
	if reg == nil {
		reg = registry.Default()
	}

	switch r := ref.(type) {
	case nil:
		a := reg.Infer(graph)
		if a == nil {
			return nil, errs.NewCannotInferAdapter(graph)
		}
		return a, nil
	case adapter.Adapter:
		return r, nil
	case registry.ID:
		return find(reg, r)
	case string:
		return find(reg, registry.ID(r))
	default:
		return nil, errs.NewInvalidAdapterReference(ref)
	}
}

func find(reg *registry.Registry, id registry.ID) (adapter.Adapter, error) {
	a := reg.Find(id)
	if a == nil {
		return nil, errs.NewAdapterNotFound(string(id))
	}
	return a, nil
}

// eval is the shared Eval implementation for all node types.
func eval(e Expression, graph any, ref any, opts []EvalOption) (any, error) {
	cfg := evalConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	a, err := Resolve(graph, ref, cfg.registry)
	if err != nil {
		return nil, err
	}

	value, ok, err := e.evaluate(graph, a)
	if err != nil || !ok {
		return nil, err
	}
	return value, nil
}

// Chain returns the nodes of e from Root to e.
func Chain(e Expression) []Expression {
	var nodes []Expression
	for n := e; n != nil; n = n.Prior() {
		nodes = append(nodes, n)
	}
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	return nodes
}
