// Package rpath builds and evaluates rpath expressions: lazy, composable
// queries over any graph an adapter understands.
//
// Build an expression once, then evaluate it on as many graphs as you like:
//
//	rpath.Use("xml")
//	e := rpath.Build(func(root *expr.Root) expr.Expression {
//	    return root.Child("library").Child("book").Attr("id")
//	})
//	id, err := e.Eval(doc, nil) // adapter inferred from doc
//
// Or build and evaluate in one step:
//
//	id, err := rpath.Evaluate(doc, "xml", func(root *expr.Root) expr.Expression {
//	    return root.Child("library").Child("book").Attr("id")
//	})
//
// An absent result is (nil, nil). Adapters are looked up in the
// process-wide registry.Default(); code that needs isolation should build a
// registry.New() and pass it with expr.WithRegistry.
package rpath

import (
	"github.com/roach88/rpath/pkg/adapter"
	"github.com/roach88/rpath/pkg/adapters"
	"github.com/roach88/rpath/pkg/expr"
	"github.com/roach88/rpath/pkg/registry"
)

// BuildFunc extends the root of a new expression.
type BuildFunc func(root *expr.Root) expr.Expression

// Root returns the root of a new expression.
func Root() *expr.Root {
	return expr.NewRoot()
}

// Build constructs an expression by passing a new Root to fn. A nil fn, or
// one that returns nil, yields the Root itself.
func Build(fn BuildFunc) expr.Expression {
	root := expr.NewRoot()
	if fn == nil {
		return root
	}
	if e := fn(root); e != nil {
		return e
	}
	return root
}

// Evaluate builds an expression with fn and evaluates it on graph. ref
// selects the adapter as for expr.Expression.Eval.
func Evaluate(graph any, ref any, fn BuildFunc, opts ...expr.EvalOption) (any, error) {
	return Build(fn).Eval(graph, ref, opts...)
}

// On evaluates the expression built by fn on graph with the adapter
// registered under id.
func On(graph any, id registry.ID, fn BuildFunc, opts ...expr.EvalOption) (any, error) {
	return Evaluate(graph, id, fn, opts...)
}

// Register adds a to the default registry under id, or under the snake_case
// name of its type when id is empty. It returns the id used.
func Register(a adapter.Adapter, id registry.ID) registry.ID {
	return registry.Default().Register(a, id)
}

// Use registers the built-in adapter called name (see Builtins) in the
// default registry. The adapter is registered under id if given, else under
// name.
func Use(name string, id ...registry.ID) (registry.ID, error) {
	a, err := adapters.New(name)
	if err != nil {
		return "", err
	}

	rid := registry.ID(name)
	if len(id) > 0 && id[0] != "" {
		rid = id[0]
	}
	return Register(a, rid), nil
}

// Find returns the adapter registered under id in the default registry, or
// nil.
func Find(id registry.ID) adapter.Adapter {
	return registry.Default().Find(id)
}

// Clear empties the default registry.
func Clear() {
	registry.Default().Clear()
}

// Builtins returns the names accepted by Use.
func Builtins() []string {
	return adapters.Names()
}
