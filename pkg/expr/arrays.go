package expr

// Operations shared by the vertex array expressions. Operations arrays do
// not define themselves are forwarded to the first vertex.

func (n *Adjacent) Where(conditions Conditions) *Where { return NewWhere(n, conditions, nil) }
func (n *Adjacent) Select(selector Selector) *Where { return NewWhere(n, nil, selector) }
func (n *Adjacent) Named(name string) *Named { return NewNamed(n, name) }
func (n *Adjacent) At(index int) *At { return NewAt(n, index) }
func (n *Adjacent) First() *At { return NewAt(n, 0) }
func (n *Adjacent) Adjacent() *Adjacent { return n.First().Adjacent() }
func (n *Adjacent) Content() *Content { return n.First().Content() }
func (n *Adjacent) Attr(name string) *Attribute { return n.First().Attr(name) }
func (n *Adjacent) Child(name string) *Named { return n.First().Child(name) }

func (n *Adjacent) Subscript(sub any) (Expression, error) {
	return arraySubscript(n, sub)
}

func (n *Named) Where(conditions Conditions) *Where { return NewWhere(n, conditions, nil) }
func (n *Named) Select(selector Selector) *Where { return NewWhere(n, nil, selector) }
func (n *Named) Named(name string) *Named { return NewNamed(n, name) }
func (n *Named) At(index int) *At { return NewAt(n, index) }
func (n *Named) First() *At { return NewAt(n, 0) }
func (n *Named) Adjacent() *Adjacent { return n.First().Adjacent() }
func (n *Named) Content() *Content { return n.First().Content() }
func (n *Named) Attr(name string) *Attribute { return n.First().Attr(name) }
func (n *Named) Child(name string) *Named { return n.First().Child(name) }

func (n *Named) Subscript(sub any) (Expression, error) {
	return arraySubscript(n, sub)
}

func (n *Where) Where(conditions Conditions) *Where { return NewWhere(n, conditions, nil) }
func (n *Where) Select(selector Selector) *Where { return NewWhere(n, nil, selector) }
func (n *Where) Named(name string) *Named { return NewNamed(n, name) }
func (n *Where) At(index int) *At { return NewAt(n, index) }
func (n *Where) First() *At { return NewAt(n, 0) }
func (n *Where) Adjacent() *Adjacent { return n.First().Adjacent() }
func (n *Where) Content() *Content { return n.First().Content() }
func (n *Where) Attr(name string) *Attribute { return n.First().Attr(name) }
func (n *Where) Child(name string) *Named { return n.First().Child(name) }

func (n *Where) Subscript(sub any) (Expression, error) {
	return arraySubscript(n, sub)
}
