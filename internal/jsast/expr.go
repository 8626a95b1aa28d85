package jsast

func (*Identifier) isExpr()            {}
func (*Literal) isExpr()               {}
func (*TemplateLiteral) isExpr()       {}
func (*CallExpression) isExpr()        {}
func (*NewExpression) isExpr()         {}
func (*MemberExpression) isExpr()      {}
func (*ObjectExpression) isExpr()      {}
func (*ArrayExpression) isExpr()       {}
func (*FunctionExpression) isExpr()    {}
func (*ArrowFunctionExpression) isExpr() {}
func (*ClassExpression) isExpr()       {}
func (*AssignmentExpression) isExpr()  {}
func (*BinaryExpression) isExpr()      {}
func (*LogicalExpression) isExpr()     {}
func (*UnaryExpression) isExpr()       {}
func (*UpdateExpression) isExpr()      {}
func (*ConditionalExpression) isExpr() {}
func (*SequenceExpression) isExpr()    {}
func (*SpreadElement) isExpr()         {}
func (*AwaitExpression) isExpr()       {}
func (*YieldExpression) isExpr()       {}
func (*ImportExpression) isExpr()      {}
func (*ThisExpression) isExpr()        {}

// Identifier names a binding or a property; its role (declaring,
// referring, or member-selector) is determined by syntactic position, not
// by anything on the node itself. Implements both Expr and Pat since bare
// identifiers appear in both positions.
type Identifier struct {
	Name string
	NodeSpan Span
}

func NewIdentifier(name string, span Span) *Identifier { return &Identifier{Name: name, NodeSpan: span} }
func (i *Identifier) Span() Span                        { return i.NodeSpan }
func (i *Identifier) Accept(v Visitor) {
	if v.EnterExpr(i) {
	}
	v.ExitExpr(i)
}

type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBool
	LiteralNull
	LiteralRegex
)

// Literal is a string/number/bool/null/regex literal. Str holds the
// decoded value for LiteralString (used as the module specifier text).
type Literal struct {
	Kind LiteralKind
	Str  string
	NodeSpan Span
}

func (l *Literal) Span() Span { return l.NodeSpan }
func (l *Literal) Accept(v Visitor) {
	v.EnterExpr(l)
	v.ExitExpr(l)
}

// TemplateLiteral is a template string; only its interpolated expressions
// can reference identifiers, so only those are modeled and walked.
type TemplateLiteral struct {
	Expressions []Expr
	NodeSpan        Span
}

func (t *TemplateLiteral) Span() Span { return t.NodeSpan }
func (t *TemplateLiteral) Accept(v Visitor) {
	if v.EnterExpr(t) {
		for _, e := range t.Expressions {
			e.Accept(v)
		}
	}
	v.ExitExpr(t)
}

// CallExpression also represents `require('m')` and `import('m')` calls;
// the import recognizer distinguishes them by inspecting Callee.
type CallExpression struct {
	Callee    Expr
	Arguments []Expr
	NodeSpan      Span
}

func (c *CallExpression) Span() Span { return c.NodeSpan }
func (c *CallExpression) Accept(v Visitor) {
	if v.EnterExpr(c) {
		c.Callee.Accept(v)
		for _, a := range c.Arguments {
			a.Accept(v)
		}
	}
	v.ExitExpr(c)
}

// NewExpression is `new Callee(Arguments)`, recognized equally to
// CallExpression for require-style binding (per §4.4 case 1).
type NewExpression struct {
	Callee    Expr
	Arguments []Expr
	NodeSpan      Span
}

func (n *NewExpression) Span() Span { return n.NodeSpan }
func (n *NewExpression) Accept(v Visitor) {
	if v.EnterExpr(n) {
		n.Callee.Accept(v)
		for _, a := range n.Arguments {
			a.Accept(v)
		}
	}
	v.ExitExpr(n)
}

// MemberExpression is `Object.Property` (Computed=false) or
// `Object[Property]` (Computed=true). Both Object and Property are always
// walked regardless of Computed, per the walker-completeness requirement
// in §4.3 — the globals extractor is responsible for refusing to treat a
// non-computed Property as a referring use, not the walker.
type MemberExpression struct {
	Object   Expr
	Property Expr
	Computed bool
	NodeSpan     Span
}

func (m *MemberExpression) Span() Span { return m.NodeSpan }
func (m *MemberExpression) Accept(v Visitor) {
	if v.EnterExpr(m) {
		m.Object.Accept(v)
		m.Property.Accept(v)
	}
	v.ExitExpr(m)
}

// StaticMemberName returns the textual member name for both a non-computed
// property (an Identifier) and a computed property that happens to be a
// string literal; ok is false for any other computed property shape
// (e.g. a variable), which cannot be resolved statically.
func (m *MemberExpression) StaticMemberName() (name string, ok bool) {
	if !m.Computed {
		if id, isIdent := m.Property.(*Identifier); isIdent {
			return id.Name, true
		}
		return "", false
	}
	if lit, isLit := m.Property.(*Literal); isLit && lit.Kind == LiteralString {
		return lit.Str, true
	}
	return "", false
}

// ObjectExpression is an object literal.
type ObjectExpression struct {
	Properties []ObjElem
	NodeSpan       Span
}

func (o *ObjectExpression) Span() Span { return o.NodeSpan }
func (o *ObjectExpression) Accept(v Visitor) {
	if v.EnterExpr(o) {
		for _, p := range o.Properties {
			p.Accept(v)
		}
	}
	v.ExitExpr(o)
}

// ArrayExpression is an array literal; a nil element represents elision
// (`[1, , 3]`).
type ArrayExpression struct {
	Elements []Expr
	NodeSpan     Span
}

func (a *ArrayExpression) Span() Span { return a.NodeSpan }
func (a *ArrayExpression) Accept(v Visitor) {
	if v.EnterExpr(a) {
		for _, e := range a.Elements {
			if e != nil {
				e.Accept(v)
			}
		}
	}
	v.ExitExpr(a)
}

// Param is a single function parameter: a pattern with an optional default
// already folded into an AssignmentPattern by the parser.
type Param struct {
	Pattern Pat
}

// FunctionExpression covers plain and async/generator function expressions.
type FunctionExpression struct {
	Id        *Identifier // nil for anonymous function expressions
	Params    []Param
	Body      *BlockStatement
	Async     bool
	Generator bool
	NodeSpan      Span
}

func (f *FunctionExpression) Span() Span { return f.NodeSpan }
func (f *FunctionExpression) Accept(v Visitor) {
	if v.EnterExpr(f) {
		if f.Id != nil {
			f.Id.Accept(v)
		}
		for _, p := range f.Params {
			p.Pattern.Accept(v)
		}
		f.Body.Accept(v)
	}
	v.ExitExpr(f)
}

// ArrowFunctionExpression's Body is either a *BlockStatement or a bare
// Expr (concise arrow body, e.g. `x => x + 1`).
type ArrowFunctionExpression struct {
	Params []Param
	Body   Node // *BlockStatement or Expr
	Async  bool
	NodeSpan   Span
}

func (a *ArrowFunctionExpression) Span() Span { return a.NodeSpan }
func (a *ArrowFunctionExpression) Accept(v Visitor) {
	if v.EnterExpr(a) {
		for _, p := range a.Params {
			p.Pattern.Accept(v)
		}
		a.Body.Accept(v)
	}
	v.ExitExpr(a)
}

// ClassExpression mirrors ClassDeclaration but appears in expression
// position (e.g. `const C = class extends Base { ... }`).
type ClassExpression struct {
	Id         *Identifier
	SuperClass Expr
	Body       []ClassElem
	NodeSpan       Span
}

func (c *ClassExpression) Span() Span { return c.NodeSpan }
func (c *ClassExpression) Accept(v Visitor) {
	if v.EnterExpr(c) {
		if c.Id != nil {
			c.Id.Accept(v)
		}
		if c.SuperClass != nil {
			c.SuperClass.Accept(v)
		}
		for _, e := range c.Body {
			e.Accept(v)
		}
	}
	v.ExitExpr(c)
}

// AssignmentExpression's Left is a Pat since it may itself be a
// destructuring target (`[a, b] = pair`), not just a plain Expr.
type AssignmentExpression struct {
	Operator string
	Left     Pat
	Right    Expr
	NodeSpan     Span
}

func (a *AssignmentExpression) Span() Span { return a.NodeSpan }
func (a *AssignmentExpression) Accept(v Visitor) {
	if v.EnterExpr(a) {
		a.Left.Accept(v)
		a.Right.Accept(v)
	}
	v.ExitExpr(a)
}

type BinaryExpression struct {
	Operator    string
	Left, Right Expr
	NodeSpan        Span
}

func (b *BinaryExpression) Span() Span { return b.NodeSpan }
func (b *BinaryExpression) Accept(v Visitor) {
	if v.EnterExpr(b) {
		b.Left.Accept(v)
		b.Right.Accept(v)
	}
	v.ExitExpr(b)
}

type LogicalExpression struct {
	Operator    string
	Left, Right Expr
	NodeSpan        Span
}

func (l *LogicalExpression) Span() Span { return l.NodeSpan }
func (l *LogicalExpression) Accept(v Visitor) {
	if v.EnterExpr(l) {
		l.Left.Accept(v)
		l.Right.Accept(v)
	}
	v.ExitExpr(l)
}

type UnaryExpression struct {
	Operator string
	Argument Expr
	NodeSpan     Span
}

func (u *UnaryExpression) Span() Span { return u.NodeSpan }
func (u *UnaryExpression) Accept(v Visitor) {
	if v.EnterExpr(u) {
		u.Argument.Accept(v)
	}
	v.ExitExpr(u)
}

type UpdateExpression struct {
	Operator string
	Argument Expr
	Prefix   bool
	NodeSpan     Span
}

func (u *UpdateExpression) Span() Span { return u.NodeSpan }
func (u *UpdateExpression) Accept(v Visitor) {
	if v.EnterExpr(u) {
		u.Argument.Accept(v)
	}
	v.ExitExpr(u)
}

type ConditionalExpression struct {
	Test, Consequent, Alternate Expr
	NodeSpan                        Span
}

func (c *ConditionalExpression) Span() Span { return c.NodeSpan }
func (c *ConditionalExpression) Accept(v Visitor) {
	if v.EnterExpr(c) {
		c.Test.Accept(v)
		c.Consequent.Accept(v)
		c.Alternate.Accept(v)
	}
	v.ExitExpr(c)
}

type SequenceExpression struct {
	Expressions []Expr
	NodeSpan        Span
}

func (s *SequenceExpression) Span() Span { return s.NodeSpan }
func (s *SequenceExpression) Accept(v Visitor) {
	if v.EnterExpr(s) {
		for _, e := range s.Expressions {
			e.Accept(v)
		}
	}
	v.ExitExpr(s)
}

// SpreadElement is `...Argument` inside a call, array, or object literal.
type SpreadElement struct {
	Argument Expr
	NodeSpan     Span
}

func (s *SpreadElement) Span() Span { return s.NodeSpan }
func (s *SpreadElement) Accept(v Visitor) {
	if v.EnterExpr(s) {
		s.Argument.Accept(v)
	}
	v.ExitExpr(s)
}
func (*SpreadElement) isObjElem() {}

type AwaitExpression struct {
	Argument Expr
	NodeSpan     Span
}

func (a *AwaitExpression) Span() Span { return a.NodeSpan }
func (a *AwaitExpression) Accept(v Visitor) {
	if v.EnterExpr(a) {
		a.Argument.Accept(v)
	}
	v.ExitExpr(a)
}

// Unwrap strips a leading await so callers that recognize an initializer
// shape (e.g. `require(...)`) don't need to special-case `await require(...)`
// or `await import('m')` separately, per §4.4's note on dynamic import.
func Unwrap(e Expr) Expr {
	for {
		a, ok := e.(*AwaitExpression)
		if !ok {
			return e
		}
		e = a.Argument
	}
}

type YieldExpression struct {
	Argument Expr // nil for a bare `yield`
	Delegate bool
	NodeSpan     Span
}

func (y *YieldExpression) Span() Span { return y.NodeSpan }
func (y *YieldExpression) Accept(v Visitor) {
	if v.EnterExpr(y) {
		if y.Argument != nil {
			y.Argument.Accept(v)
		}
	}
	v.ExitExpr(y)
}

// ImportExpression is the dynamic `import(Source)` call form. It is
// recognized by the import recognizer exactly like a require call when
// Source is a string literal (§4.4).
type ImportExpression struct {
	Source Expr
	NodeSpan   Span
}

func (i *ImportExpression) Span() Span { return i.NodeSpan }
func (i *ImportExpression) Accept(v Visitor) {
	if v.EnterExpr(i) {
		i.Source.Accept(v)
	}
	v.ExitExpr(i)
}

type ThisExpression struct {
	NodeSpan Span
}

func (t *ThisExpression) Span() Span { return t.NodeSpan }
func (t *ThisExpression) Accept(v Visitor) {
	v.EnterExpr(t)
	v.ExitExpr(t)
}
