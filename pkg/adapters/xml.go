package adapters

import (
	"fmt"

	"github.com/roach88/rpath/pkg/adapter"
	"github.com/roach88/rpath/pkg/xmltree"
)

// XML adapts documents parsed by xmltree. Vertices are *xmltree.Element.
//
// Evaluating on a *xmltree.Document starts at the synthetic document node,
// so the document element is reached with Child:
//
//	root.Child("library").Child("book")
type XML struct {
	adapter.Base
}

// AdaptsTo reports whether graph is an *xmltree.Document or *xmltree.Element.
func (XML) AdaptsTo(graph any) bool {
	switch graph.(type) {
	case *xmltree.Document, *xmltree.Element:
		return true
	}
	return false
}

// Root returns the document node of a Document, or an Element unchanged.
func (XML) Root(graph any) adapter.Vertex {
	switch g := graph.(type) {
	case *xmltree.Document:
		return g.Node()
	case *xmltree.Element:
		return g
	}
	return nil
}

// Name returns the local name of the element.
func (XML) Name(v adapter.Vertex) (string, error) {
	el, err := elementOf(v)
	if err != nil {
		return "", err
	}
	return el.Name.Local, nil
}

// Adjacent returns the child elements.
func (XML) Adjacent(v adapter.Vertex) ([]adapter.Vertex, error) {
	el, err := elementOf(v)
	if err != nil {
		return nil, err
	}
	out := make([]adapter.Vertex, len(el.Children))
	for i, c := range el.Children {
		out[i] = c
	}
	return out, nil
}

// Attribute returns the value of the attribute with local name name.
func (XML) Attribute(v adapter.Vertex, name string) (any, error) {
	el, err := elementOf(v)
	if err != nil {
		return nil, err
	}
	value, ok := el.Attribute(name)
	if !ok {
		return nil, nil
	}
	return value, nil
}

// Attributes returns all attributes by local name.
func (XML) Attributes(v adapter.Vertex) (map[string]any, error) {
	el, err := elementOf(v)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(el.Attr))
	for _, a := range el.Attr {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		out[a.Name.Local] = a.Value
	}
	return out, nil
}

// Content returns the element's direct text, or nil when it has none.
func (XML) Content(v adapter.Vertex) (any, error) {
	el, err := elementOf(v)
	if err != nil {
		return nil, err
	}
	text := el.Text()
	if text == "" {
		return nil, nil
	}
	return text, nil
}

func elementOf(v adapter.Vertex) (*xmltree.Element, error) {
	el, ok := v.(*xmltree.Element)
	if !ok || el == nil {
		return nil, fmt.Errorf("xml: vertex is %T, want *xmltree.Element", v)
	}
	return el, nil
}
