package jsast

func (*VariableDeclaration) isDecl()    {}
func (*FunctionDeclaration) isDecl()    {}
func (*ClassDeclaration) isDecl()       {}
func (*ImportDeclaration) isDecl()      {}
func (*ExportNamedDeclaration) isDecl() {}
func (*ExportDefaultDeclaration) isDecl() {}
func (*ExportAllDeclaration) isDecl()   {}

// VarKind distinguishes the function-scoped `var` from the block-scoped
// `let`/`const`, per §4.2's declaration-scope rule.
type VarKind int

const (
	VarKindVar VarKind = iota
	VarKindLet
	VarKindConst
)

func (k VarKind) IsFunctionScoped() bool { return k == VarKindVar }

type VariableDeclarator struct {
	Id   Pat
	Init Expr // nil when there is no initializer
}

type VariableDeclaration struct {
	Kind         VarKind
	Declarations []*VariableDeclarator
	NodeSpan         Span
}

func (d *VariableDeclaration) Span() Span { return d.NodeSpan }
func (d *VariableDeclaration) Accept(v Visitor) {
	if v.EnterDecl(d) {
		for _, decl := range d.Declarations {
			decl.Id.Accept(v)
			if decl.Init != nil {
				decl.Init.Accept(v)
			}
		}
	}
	v.ExitDecl(d)
}

type FunctionDeclaration struct {
	Id        *Identifier
	Params    []Param
	Body      *BlockStatement
	Async     bool
	Generator bool
	NodeSpan      Span
}

func (f *FunctionDeclaration) Span() Span { return f.NodeSpan }
func (f *FunctionDeclaration) Accept(v Visitor) {
	if v.EnterDecl(f) {
		if f.Id != nil {
			f.Id.Accept(v)
		}
		for _, p := range f.Params {
			p.Pattern.Accept(v)
		}
		f.Body.Accept(v)
	}
	v.ExitDecl(f)
}

type ClassDeclaration struct {
	Id         *Identifier
	SuperClass Expr
	Body       []ClassElem
	NodeSpan       Span
}

func (c *ClassDeclaration) Span() Span { return c.NodeSpan }
func (c *ClassDeclaration) Accept(v Visitor) {
	if v.EnterDecl(c) {
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
	v.ExitDecl(c)
}

func (*ImportDefaultSpecifier) isImportSpecifier()   {}
func (*ImportNamespaceSpecifier) isImportSpecifier() {}
func (*ImportNamedSpecifier) isImportSpecifier()     {}

// ImportDefaultSpecifier is the `D` in `import D from 'm'`.
type ImportDefaultSpecifier struct {
	Local *Identifier
	NodeSpan  Span
}

func (s *ImportDefaultSpecifier) Span() Span       { return s.NodeSpan }
func (s *ImportDefaultSpecifier) Accept(v Visitor) {}

// ImportNamespaceSpecifier is the `* as F` in `import * as F from 'm'`.
type ImportNamespaceSpecifier struct {
	Local *Identifier
	NodeSpan  Span
}

func (s *ImportNamespaceSpecifier) Span() Span       { return s.NodeSpan }
func (s *ImportNamespaceSpecifier) Accept(v Visitor) {}

// ImportNamedSpecifier is one entry of `import { Imported as Local } from 'm'`
// (Imported == Local for the common unaliased form).
type ImportNamedSpecifier struct {
	Imported *Identifier
	Local    *Identifier
	NodeSpan     Span
}

func (s *ImportNamedSpecifier) Span() Span       { return s.NodeSpan }
func (s *ImportNamedSpecifier) Accept(v Visitor) {}

// ImportDeclaration is `import ... from 'source'` or the side-effect-only
// `import 'source'` (no specifiers). Source is always a string literal;
// the parser rejects any other shape at this position.
type ImportDeclaration struct {
	Specifiers []ImportSpecifier
	Source     *Literal
	NodeSpan       Span
}

func (i *ImportDeclaration) Span() Span { return i.NodeSpan }
func (i *ImportDeclaration) Accept(v Visitor) {
	if v.EnterDecl(i) {
		for _, s := range i.Specifiers {
			s.Accept(v)
		}
	}
	v.ExitDecl(i)
}

// ExportSpecifier is one entry of `export { Local as Exported }`, used
// both for plain named exports and for `export { X } from 'm'` re-exports.
type ExportSpecifier struct {
	Local    *Identifier
	Exported *Identifier
}

// ExportNamedDeclaration covers `export const x = ...`, `export function f(){}`,
// `export { a, b }`, and `export { a, b } from 'm'`. Exactly one of
// Declaration or Specifiers is populated.
type ExportNamedDeclaration struct {
	Declaration Decl // nil when this is a specifier-list export
	Specifiers  []ExportSpecifier
	Source      *Literal // non-nil only for a re-export
	NodeSpan        Span
}

func (e *ExportNamedDeclaration) Span() Span { return e.NodeSpan }
func (e *ExportNamedDeclaration) Accept(v Visitor) {
	if v.EnterDecl(e) {
		if e.Declaration != nil {
			e.Declaration.Accept(v)
		}
	}
	v.ExitDecl(e)
}

// ExportDefaultDeclaration is `export default <expr-or-decl>`.
type ExportDefaultDeclaration struct {
	Declaration Node // Expr, or a FunctionDeclaration/ClassDeclaration
	NodeSpan        Span
}

func (e *ExportDefaultDeclaration) Span() Span { return e.NodeSpan }
func (e *ExportDefaultDeclaration) Accept(v Visitor) {
	if v.EnterDecl(e) {
		e.Declaration.Accept(v)
	}
	v.ExitDecl(e)
}

// ExportAllDeclaration is `export * from 'm'` or `export * as ns from 'm'`.
// Per §4.6 case 1, a literal source here cannot have its re-exported
// members enumerated and is logged as a warning by the member tracer.
type ExportAllDeclaration struct {
	Exported *Identifier // non-nil only for the `as ns` form
	Source   *Literal
	NodeSpan     Span
}

func (e *ExportAllDeclaration) Span() Span { return e.NodeSpan }
func (e *ExportAllDeclaration) Accept(v Visitor) {
	v.EnterDecl(e)
	v.ExitDecl(e)
}

// Program is the root of a parsed source file.
type Program struct {
	Body []Stmt
	NodeSpan Span
}

func NewProgram(body []Stmt, span Span) *Program { return &Program{Body: body, NodeSpan: span} }
func (p *Program) Span() Span                     { return p.NodeSpan }
func (p *Program) Accept(v Visitor) {
	if v.EnterProgram(p) {
		for _, s := range p.Body {
			s.Accept(v)
		}
	}
	v.ExitProgram(p)
}
