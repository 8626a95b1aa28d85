package jsast

func (*ExpressionStatement) isStmt() {}
func (*BlockStatement) isStmt()      {}
func (*ReturnStatement) isStmt()     {}
func (*IfStatement) isStmt()         {}
func (*ForStatement) isStmt()        {}
func (*ForInStatement) isStmt()      {}
func (*ForOfStatement) isStmt()      {}
func (*WhileStatement) isStmt()      {}
func (*DoWhileStatement) isStmt()    {}
func (*ThrowStatement) isStmt()      {}
func (*TryStatement) isStmt()        {}
func (*SwitchStatement) isStmt()     {}
func (*DeclStmt) isStmt()            {}
func (*EmptyStatement) isStmt()      {}

type ExpressionStatement struct {
	Expression Expr
	NodeSpan       Span
}

func (e *ExpressionStatement) Span() Span { return e.NodeSpan }
func (e *ExpressionStatement) Accept(v Visitor) {
	if v.EnterStmt(e) {
		e.Expression.Accept(v)
	}
	v.ExitStmt(e)
}

// BlockStatement is the one node kind the traversal driver treats
// specially for scope management (§4.2/§4.3): it is visited via
// EnterBlock/ExitBlock rather than EnterStmt/ExitStmt even though it can
// appear anywhere a Stmt can.
type BlockStatement struct {
	Body []Stmt
	NodeSpan Span
}

func (b *BlockStatement) Span() Span { return b.NodeSpan }
func (b *BlockStatement) Accept(v Visitor) {
	if v.EnterBlock(b) {
		for _, s := range b.Body {
			s.Accept(v)
		}
	}
	v.ExitBlock(b)
}

// DeclStmt wraps a Decl so it can occupy a Stmt slot (Program.Body,
// BlockStatement.Body): variable/function/class/import/export
// declarations are Decls first and Stmts only by virtue of this wrapper.
type DeclStmt struct {
	D    Decl
	NodeSpan Span
}

func (d *DeclStmt) Span() Span { return d.NodeSpan }
func (d *DeclStmt) Accept(v Visitor) {
	if v.EnterStmt(d) {
		d.D.Accept(v)
	}
	v.ExitStmt(d)
}

type ReturnStatement struct {
	Argument Expr // nil for a bare `return`
	NodeSpan     Span
}

func (r *ReturnStatement) Span() Span { return r.NodeSpan }
func (r *ReturnStatement) Accept(v Visitor) {
	if v.EnterStmt(r) {
		if r.Argument != nil {
			r.Argument.Accept(v)
		}
	}
	v.ExitStmt(r)
}

type IfStatement struct {
	Test       Expr
	Consequent Stmt
	Alternate  Stmt // nil if no else branch
	NodeSpan       Span
}

func (i *IfStatement) Span() Span { return i.NodeSpan }
func (i *IfStatement) Accept(v Visitor) {
	if v.EnterStmt(i) {
		i.Test.Accept(v)
		i.Consequent.Accept(v)
		if i.Alternate != nil {
			i.Alternate.Accept(v)
		}
	}
	v.ExitStmt(i)
}

// ForStatement's Init is a *DeclStmt (for `for (let i = 0; ...)`), an
// Expr, or nil.
type ForStatement struct {
	Init   Node
	Test   Expr
	Update Expr
	Body   Stmt
	NodeSpan   Span
}

func (f *ForStatement) Span() Span { return f.NodeSpan }
func (f *ForStatement) Accept(v Visitor) {
	if v.EnterStmt(f) {
		if f.Init != nil {
			f.Init.Accept(v)
		}
		if f.Test != nil {
			f.Test.Accept(v)
		}
		if f.Update != nil {
			f.Update.Accept(v)
		}
		f.Body.Accept(v)
	}
	v.ExitStmt(f)
}

// ForInStatement / ForOfStatement's Left is a *DeclStmt wrapping a
// VarDecl with a single declarator (no Init), or a bare Pat for the
// assignment-target form (`for (x of xs)`).
type ForInStatement struct {
	Left  Node
	Right Expr
	Body  Stmt
	NodeSpan  Span
}

func (f *ForInStatement) Span() Span { return f.NodeSpan }
func (f *ForInStatement) Accept(v Visitor) {
	if v.EnterStmt(f) {
		f.Left.Accept(v)
		f.Right.Accept(v)
		f.Body.Accept(v)
	}
	v.ExitStmt(f)
}

type ForOfStatement struct {
	Left  Node
	Right Expr
	Body  Stmt
	Await bool
	NodeSpan  Span
}

func (f *ForOfStatement) Span() Span { return f.NodeSpan }
func (f *ForOfStatement) Accept(v Visitor) {
	if v.EnterStmt(f) {
		f.Left.Accept(v)
		f.Right.Accept(v)
		f.Body.Accept(v)
	}
	v.ExitStmt(f)
}

type WhileStatement struct {
	Test Expr
	Body Stmt
	NodeSpan Span
}

func (w *WhileStatement) Span() Span { return w.NodeSpan }
func (w *WhileStatement) Accept(v Visitor) {
	if v.EnterStmt(w) {
		w.Test.Accept(v)
		w.Body.Accept(v)
	}
	v.ExitStmt(w)
}

type DoWhileStatement struct {
	Body Stmt
	Test Expr
	NodeSpan Span
}

func (d *DoWhileStatement) Span() Span { return d.NodeSpan }
func (d *DoWhileStatement) Accept(v Visitor) {
	if v.EnterStmt(d) {
		d.Body.Accept(v)
		d.Test.Accept(v)
	}
	v.ExitStmt(d)
}

type ThrowStatement struct {
	Argument Expr
	NodeSpan     Span
}

func (t *ThrowStatement) Span() Span { return t.NodeSpan }
func (t *ThrowStatement) Accept(v Visitor) {
	if v.EnterStmt(t) {
		t.Argument.Accept(v)
	}
	v.ExitStmt(t)
}

type CatchClause struct {
	Param Pat // nil for a parameter-less `catch {`
	Body  *BlockStatement
}

type TryStatement struct {
	Block     *BlockStatement
	Handler   *CatchClause
	Finalizer *BlockStatement
	NodeSpan      Span
}

func (t *TryStatement) Span() Span { return t.NodeSpan }
func (t *TryStatement) Accept(v Visitor) {
	if v.EnterStmt(t) {
		t.Block.Accept(v)
		if t.Handler != nil {
			if t.Handler.Param != nil {
				t.Handler.Param.Accept(v)
			}
			t.Handler.Body.Accept(v)
		}
		if t.Finalizer != nil {
			t.Finalizer.Accept(v)
		}
	}
	v.ExitStmt(t)
}

type SwitchCase struct {
	Test       Expr // nil for `default:`
	Consequent []Stmt
}

type SwitchStatement struct {
	Discriminant Expr
	Cases        []SwitchCase
	NodeSpan         Span
}

func (s *SwitchStatement) Span() Span { return s.NodeSpan }
func (s *SwitchStatement) Accept(v Visitor) {
	if v.EnterStmt(s) {
		s.Discriminant.Accept(v)
		for _, c := range s.Cases {
			if c.Test != nil {
				c.Test.Accept(v)
			}
			for _, st := range c.Consequent {
				st.Accept(v)
			}
		}
	}
	v.ExitStmt(s)
}

type EmptyStatement struct {
	NodeSpan Span
}

func (e *EmptyStatement) Span() Span { return e.NodeSpan }
func (e *EmptyStatement) Accept(v Visitor) {
	v.EnterStmt(e)
	v.ExitStmt(e)
}
