// Package adapter defines the contract a graph type must satisfy for rpath
// expressions to be evaluated on it.
//
// An adapter translates a concrete graph (an XML document, a directory tree,
// a YAML node, a CUE value) into the primitives the expression tree
// consumes. Vertices are opaque to everything except the adapter that
// produced them.
//
// To build an adapter, embed Base and implement Name, Adjacent, Attribute,
// and Content:
//
//	type Shelf struct {
//	    adapter.Base
//	}
//
//	func (Shelf) Name(v adapter.Vertex) (string, error) { ... }
//
// A capability left unimplemented fails loudly through Base with an
// UNSUPPORTED_CAPABILITY error rather than reporting absence.
package adapter

import "github.com/roach88/rpath/pkg/errs"

// Vertex is an adapter-defined node of a graph. A nil Vertex is absent.
type Vertex = any

// Capability names, as reported by UNSUPPORTED_CAPABILITY errors.
const (
	CapName      = "name"
	CapAdjacent  = "adjacent"
	CapAttribute = "attribute"
	CapContent   = "content"
)

// Adapter is the capability set consumed by the expression tree.
type Adapter interface {
	// AdaptsTo reports whether the adapter can evaluate expressions on graph.
	// Used only for inference; the first registered adapter returning true
	// is chosen.
	AdaptsTo(graph any) bool

	// Root returns the vertex where evaluation begins.
	Root(graph any) Vertex

	// Name returns the name of v.
	Name(v Vertex) (string, error)

	// Adjacent returns the vertices adjacent to v. A vertex with no
	// adjacent vertices yields an empty, non-nil slice.
	Adjacent(v Vertex) ([]Vertex, error)

	// Attribute returns the value of attribute name of v, or nil if v has
	// no such attribute.
	Attribute(v Vertex, name string) (any, error)

	// Content returns the content of v, or nil if v has none.
	Content(v Vertex) (any, error)
}

// AttributeLister is implemented by adapters that can enumerate the
// attributes of a vertex. It is optional; the snapshot store uses it to
// persist attributes.
type AttributeLister interface {
	Attributes(v Vertex) (map[string]any, error)
}

// Base provides the default behaviour of the adapter contract. AdaptsTo
// returns false so the adapter is never inferred, and Root returns the graph
// itself. Name, Adjacent, Attribute, and Content fail with an
// UNSUPPORTED_CAPABILITY error.
type Base struct{}

// AdaptsTo returns false.
func (Base) AdaptsTo(graph any) bool {
	return false
}

// Root returns graph unchanged.
func (Base) Root(graph any) Vertex {
	return graph
}

func (Base) Name(v Vertex) (string, error) {
	return "", errs.NewUnsupportedCapability(CapName, nil)
}

func (Base) Adjacent(v Vertex) ([]Vertex, error) {
	return nil, errs.NewUnsupportedCapability(CapAdjacent, nil)
}

func (Base) Attribute(v Vertex, name string) (any, error) {
	return nil, errs.NewUnsupportedCapability(CapAttribute, nil)
}

func (Base) Content(v Vertex) (any, error) {
	return nil, errs.NewUnsupportedCapability(CapContent, nil)
}
