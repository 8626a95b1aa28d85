package jsast

func (*Identifier) isPat()         {}
func (*ObjectPattern) isPat()      {}
func (*ArrayPattern) isPat()       {}
func (*AssignmentPattern) isPat()  {}
func (*RestElement) isPat()        {}
func (*PatternProperty) isPat()    {}

// ObjectPattern is a destructuring pattern `{ a, b: c, ...rest }`. Each
// element is either a *PatternProperty or a *RestElement.
type ObjectPattern struct {
	Properties []Pat
	NodeSpan       Span
}

func (o *ObjectPattern) Span() Span { return o.NodeSpan }
func (o *ObjectPattern) Accept(v Visitor) {
	if v.EnterPat(o) {
		for _, p := range o.Properties {
			p.Accept(v)
		}
	}
	v.ExitPat(o)
}

// PatternProperty is one `key: value` (or shorthand `key`) entry of an
// ObjectPattern. For shorthand properties Value is the same Identifier as
// Key (so iterating Value alone is sufficient to find the bound name).
type PatternProperty struct {
	Key       Expr
	Value     Pat
	Computed  bool
	Shorthand bool
	NodeSpan      Span
}

func (p *PatternProperty) Span() Span { return p.NodeSpan }
func (p *PatternProperty) Accept(v Visitor) {
	if v.EnterPat(p) {
		if !p.Shorthand {
			p.Key.Accept(v)
		}
		p.Value.Accept(v)
	}
	v.ExitPat(p)
}

// ArrayPattern is `[a, , b]`; a nil element represents an elided slot.
type ArrayPattern struct {
	Elements []Pat
	NodeSpan     Span
}

func (a *ArrayPattern) Span() Span { return a.NodeSpan }
func (a *ArrayPattern) Accept(v Visitor) {
	if v.EnterPat(a) {
		for _, e := range a.Elements {
			if e != nil {
				e.Accept(v)
			}
		}
	}
	v.ExitPat(a)
}

// AssignmentPattern is a pattern with a default value (`x = 1` inside a
// parameter list or destructuring pattern).
type AssignmentPattern struct {
	Left  Pat
	Right Expr
	NodeSpan  Span
}

func (a *AssignmentPattern) Span() Span { return a.NodeSpan }
func (a *AssignmentPattern) Accept(v Visitor) {
	if v.EnterPat(a) {
		a.Left.Accept(v)
		a.Right.Accept(v)
	}
	v.ExitPat(a)
}

// RestElement is `...x` in a parameter list, array pattern, or object
// pattern.
type RestElement struct {
	Argument Pat
	NodeSpan     Span
}

func (r *RestElement) Span() Span { return r.NodeSpan }
func (r *RestElement) Accept(v Visitor) {
	if v.EnterPat(r) {
		r.Argument.Accept(v)
	}
	v.ExitPat(r)
}

// FindBindingIdentifiers reduces a binding target to the set of
// identifiers it ultimately binds, recursing structurally through
// destructuring patterns exactly as described in §4.2. A pattern shape
// outside this set is a programmer error in the parser (it should never
// construct one), so it panics rather than silently under-counting
// bindings.
func FindBindingIdentifiers(pat Pat) []*Identifier {
	var out []*Identifier
	var walk func(Pat)
	walk = func(p Pat) {
		switch n := p.(type) {
		case *Identifier:
			out = append(out, n)
		case *RestElement:
			walk(n.Argument)
		case *AssignmentPattern:
			walk(n.Left)
		case *ObjectPattern:
			for _, prop := range n.Properties {
				walk(prop)
			}
		case *ArrayPattern:
			for _, el := range n.Elements {
				if el != nil {
					walk(el)
				}
			}
		case *PatternProperty:
			walk(n.Value)
		default:
			panic("jsast: unknown pattern shape in FindBindingIdentifiers")
		}
	}
	walk(pat)
	return out
}
