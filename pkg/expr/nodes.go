package expr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/rpath/pkg/adapter"
)

// Root evaluates to the root of the graph.
type Root struct{}

// NewRoot creates a Root.
func NewRoot() *Root {
	return &Root{}
}

func (r *Root) String() string { return "root" }
func (r *Root) Prior() Expression { return nil }
func (r *Root) Adjacent() *Adjacent { return NewAdjacent(r) }
func (r *Root) Content() *Content { return NewContent(r) }
func (r *Root) Attr(name string) *Attribute { return NewAttribute(r, name) }
func (r *Root) Child(name string) *Named { return NewNamed(NewAdjacent(r), name) }

func (r *Root) Subscript(sub any) (Expression, error) {
	return vertexSubscript(r, sub)
}

func (r *Root) Eval(graph any, ref any, opts ...EvalOption) (any, error) {
	return eval(r, graph, ref, opts)
}

func (r *Root) evaluate(graph any, a adapter.Adapter) (any, bool, error) {
	return r.evalVertex(graph, a)
}

func (r *Root) evalVertex(graph any, a adapter.Adapter) (adapter.Vertex, bool, error) {
	v := a.Root(graph)
	return v, v != nil, nil
}

// Adjacent, given a prior expression producing vertex V, evaluates to V's
// adjacent vertices.
type Adjacent struct {
	prior VertexExpression
}

// NewAdjacent creates an Adjacent extending prior.
func NewAdjacent(prior VertexExpression) *Adjacent {
	return &Adjacent{prior: prior}
}

func (n *Adjacent) String() string { return n.prior.String() + "." }
func (n *Adjacent) Prior() Expression { return n.prior }

func (n *Adjacent) Eval(graph any, ref any, opts ...EvalOption) (any, error) {
	return eval(n, graph, ref, opts)
}

func (n *Adjacent) evaluate(graph any, a adapter.Adapter) (any, bool, error) {
	return n.evalVertices(graph, a)
}

func (n *Adjacent) evalVertices(graph any, a adapter.Adapter) ([]adapter.Vertex, bool, error) {
	v, ok, err := n.prior.evalVertex(graph, a)
	if err != nil || !ok {
		return nil, false, err
	}

	vertices, err := a.Adjacent(v)
	if err != nil {
		return nil, false, err
	}
	if vertices == nil {
		vertices = []adapter.Vertex{}
	}
	return vertices, true, nil
}

// Named, given a prior expression producing vertex array A, evaluates to the
// vertices in A with a certain name.
type Named struct {
	prior VertexArrayExpression
	name  string
}

// NewNamed creates a Named extending prior.
func NewNamed(prior VertexArrayExpression, name string) *Named {
	return &Named{prior: prior, name: name}
}

// Name returns the name vertices must have.
func (n *Named) Name() string { return n.name }

func (n *Named) String() string { return n.prior.String() + n.name }
func (n *Named) Prior() Expression { return n.prior }

func (n *Named) Eval(graph any, ref any, opts ...EvalOption) (any, error) {
	return eval(n, graph, ref, opts)
}

func (n *Named) evaluate(graph any, a adapter.Adapter) (any, bool, error) {
	return n.evalVertices(graph, a)
}

func (n *Named) evalVertices(graph any, a adapter.Adapter) ([]adapter.Vertex, bool, error) {
	vertices, ok, err := n.prior.evalVertices(graph, a)
	if err != nil || !ok {
		return nil, false, err
	}

	selected := make([]adapter.Vertex, 0, len(vertices))
	for _, v := range vertices {
		name, err := a.Name(v)
		if err != nil {
			return nil, false, err
		}
		if name == n.name {
			selected = append(selected, v)
		}
	}
	return selected, true, nil
}

// Conditions maps attribute names to expected values.
type Conditions map[string]any

// Selector reports whether a vertex should be selected.
type Selector func(v adapter.Vertex) bool

// Where, given a prior expression producing vertex array A, evaluates to the
// vertices in A that match a selector or a set of attribute conditions.
//
// With conditions, a vertex matches when every attribute equals its expected
// value. With a selector, the selector decides and conditions are ignored.
type Where struct {
	prior      VertexArrayExpression
	conditions Conditions
	selector   Selector
}

// NewWhere creates a Where extending prior. If selector is non-nil it takes
// precedence and conditions are ignored.
func NewWhere(prior VertexArrayExpression, conditions Conditions, selector Selector) *Where {
	w := &Where{prior: prior, selector: selector}
	if selector == nil {
		w.conditions = make(Conditions, len(conditions))
		for k, v := range conditions {
			w.conditions[k] = v
		}
	}
	return w
}

// Conditions returns a copy of the attribute conditions, or nil when the
// Where uses a selector.
func (n *Where) Conditions() Conditions {
	if n.selector != nil {
		return nil
	}
	c := make(Conditions, len(n.conditions))
	for k, v := range n.conditions {
		c[k] = v
	}
	return c
}

// HasSelector reports whether the Where uses a selector.
func (n *Where) HasSelector() bool { return n.selector != nil }

func (n *Where) String() string {
	if n.selector != nil {
		return n.prior.String() + "[selector]"
	}

	keys := make([]string, 0, len(n.conditions))
	for k := range n.conditions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %v", k, n.conditions[k])
	}
	return n.prior.String() + "[" + strings.Join(parts, ", ") + "]"
}

func (n *Where) Prior() Expression { return n.prior }

func (n *Where) Eval(graph any, ref any, opts ...EvalOption) (any, error) {
	return eval(n, graph, ref, opts)
}

func (n *Where) evaluate(graph any, a adapter.Adapter) (any, bool, error) {
	return n.evalVertices(graph, a)
}

func (n *Where) evalVertices(graph any, a adapter.Adapter) ([]adapter.Vertex, bool, error) {
	vertices, ok, err := n.prior.evalVertices(graph, a)
	if err != nil || !ok {
		return nil, false, err
	}

	selected := make([]adapter.Vertex, 0, len(vertices))
	for _, v := range vertices {
		match, err := n.matches(v, a)
		if err != nil {
			return nil, false, err
		}
		if match {
			selected = append(selected, v)
		}
	}
	return selected, true, nil
}

func (n *Where) matches(v adapter.Vertex, a adapter.Adapter) (bool, error) {
	if n.selector != nil {
		return n.selector(v), nil
	}
	for name, want := range n.conditions {
		got, err := a.Attribute(v, name)
		if err != nil {
			return false, err
		}
		if !ValuesEqual(got, want) {
			return false, nil
		}
	}
	return true, nil
}

// At, given a prior expression producing vertex array A, evaluates to the
// vertex in A at a given index. Negative indexes count from the end.
// An index outside A is absent.
type At struct {
	prior VertexArrayExpression
	index int
}

// NewAt creates an At extending prior.
func NewAt(prior VertexArrayExpression, index int) *At {
	return &At{prior: prior, index: index}
}

// Index returns the index of the vertex to produce.
func (n *At) Index() int { return n.index }

func (n *At) String() string { return fmt.Sprintf("%s[%d]", n.prior, n.index) }
func (n *At) Prior() Expression { return n.prior }
func (n *At) Adjacent() *Adjacent { return NewAdjacent(n) }
func (n *At) Content() *Content { return NewContent(n) }
func (n *At) Attr(name string) *Attribute { return NewAttribute(n, name) }
func (n *At) Child(name string) *Named { return NewNamed(NewAdjacent(n), name) }

func (n *At) Subscript(sub any) (Expression, error) {
	return vertexSubscript(n, sub)
}

func (n *At) Eval(graph any, ref any, opts ...EvalOption) (any, error) {
	return eval(n, graph, ref, opts)
}

func (n *At) evaluate(graph any, a adapter.Adapter) (any, bool, error) {
	return n.evalVertex(graph, a)
}

func (n *At) evalVertex(graph any, a adapter.Adapter) (adapter.Vertex, bool, error) {
	vertices, ok, err := n.prior.evalVertices(graph, a)
	if err != nil || !ok {
		return nil, false, err
	}

	i := n.index
	if i < 0 {
		i += len(vertices)
	}
	if i < 0 || i >= len(vertices) {
		return nil, false, nil
	}
	v := vertices[i]
	return v, v != nil, nil
}

// Attribute, given a prior expression producing vertex V, evaluates to the
// value of the attribute of V with the given name.
type Attribute struct {
	prior VertexExpression
	name  string
}

// NewAttribute creates an Attribute extending prior.
func NewAttribute(prior VertexExpression, name string) *Attribute {
	return &Attribute{prior: prior, name: name}
}

// Name returns the attribute name.
func (n *Attribute) Name() string { return n.name }

func (n *Attribute) String() string { return fmt.Sprintf("%s[%s]", n.prior, n.name) }
func (n *Attribute) Prior() Expression { return n.prior }

func (n *Attribute) Eval(graph any, ref any, opts ...EvalOption) (any, error) {
	return eval(n, graph, ref, opts)
}

func (n *Attribute) evaluate(graph any, a adapter.Adapter) (any, bool, error) {
	return n.evalValue(graph, a)
}

func (n *Attribute) evalValue(graph any, a adapter.Adapter) (any, bool, error) {
	v, ok, err := n.prior.evalVertex(graph, a)
	if err != nil || !ok {
		return nil, false, err
	}

	value, err := a.Attribute(v, n.name)
	if err != nil {
		return nil, false, err
	}
	return value, value != nil, nil
}

// Content, given a prior expression producing vertex V, evaluates to V's content.
type Content struct {
	prior VertexExpression
}

// NewContent creates a Content extending prior.
func NewContent(prior VertexExpression) *Content {
	return &Content{prior: prior}
}

func (n *Content) String() string { return n.prior.String() + ":content" }
func (n *Content) Prior() Expression { return n.prior }

func (n *Content) Eval(graph any, ref any, opts ...EvalOption) (any, error) {
	return eval(n, graph, ref, opts)
}

func (n *Content) evaluate(graph any, a adapter.Adapter) (any, bool, error) {
	return n.evalValue(graph, a)
}

func (n *Content) evalValue(graph any, a adapter.Adapter) (any, bool, error) {
	v, ok, err := n.prior.evalVertex(graph, a)
	if err != nil || !ok {
		return nil, false, err
	}

	value, err := a.Content(v)
	if err != nil {
		return nil, false, err
	}
	return value, value != nil, nil
}
