// Package xmltree builds a minimal element tree from an XML document.
//
// Only elements, their attributes and their direct character data are kept.
// Comments, processing instructions and directives are dropped.
package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DocumentName is the name of the synthetic node at the top of a Document.
const DocumentName = "#document"

// Element is one XML element.
type Element struct {
	Name     xml.Name
	Attr     []xml.Attr
	Children []*Element
	Parent   *Element

	text strings.Builder
}

// Text returns the element's direct character data with surrounding
// whitespace trimmed. Text of child elements is not included.
func (e *Element) Text() string {
	return strings.TrimSpace(e.text.String())
}

// Attribute returns the value of the attribute with the given local name.
func (e *Element) Attribute(local string) (string, bool) {
	for _, a := range e.Attr {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// Elements returns the child elements with the given local name.
func (e *Element) Elements(local string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name.Local == local {
			out = append(out, c)
		}
	}
	return out
}

// Document is a parsed XML document.
type Document struct {
	node *Element
}

// Node returns the synthetic document node. Its only child is the
// document element.
func (d *Document) Node() *Element {
	return d.node
}

// Root returns the document element.
func (d *Document) Root() *Element {
	return d.node.Children[0]
}

// Parse reads an XML document from r.
func Parse(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)
	doc := &Element{Name: xml.Name{Local: DocumentName}}
	current := doc

	for {
		t, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		switch tok := t.(type) {
		case xml.StartElement:
			if current == doc && len(doc.Children) > 0 {
				return nil, fmt.Errorf("parse xml: multiple root elements (<%s> after <%s>)",
					tok.Name.Local, doc.Children[0].Name.Local)
			}
			el := &Element{
				Name:   tok.Name,
				Attr:   append([]xml.Attr(nil), tok.Attr...),
				Parent: current,
			}
			current.Children = append(current.Children, el)
			current = el

		case xml.EndElement:
			current = current.Parent

		case xml.CharData:
			if current != doc {
				current.text.Write(tok)
			}
		}
	}

	if len(doc.Children) == 0 {
		return nil, errors.New("parse xml: no root element")
	}
	return &Document{node: doc}, nil
}

// ParseString parses an XML document held in s.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}
