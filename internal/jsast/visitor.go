package jsast

// Visitor receives Enter/Exit callbacks as a tree is walked via Accept.
// Enter callbacks return false to suppress descent into that node's
// children; ExitX is still called for a node whose EnterX returned false.
type Visitor interface {
	EnterProgram(p *Program) bool
	ExitProgram(p *Program)

	EnterStmt(s Stmt) bool
	ExitStmt(s Stmt)

	EnterDecl(d Decl) bool
	ExitDecl(d Decl)

	EnterExpr(e Expr) bool
	ExitExpr(e Expr)

	EnterPat(p Pat) bool
	ExitPat(p Pat)

	EnterBlock(b *BlockStatement) bool
	ExitBlock(b *BlockStatement)

	EnterClassElem(c ClassElem) bool
	ExitClassElem(c ClassElem)

	EnterObjElem(o ObjElem) bool
	ExitObjElem(o ObjElem)
}

// DefaultVisitor is an embeddable no-op Visitor: every Enter returns true
// (descend everywhere) and every Exit does nothing. Analyzers embed this
// and override only the callbacks they care about.
type DefaultVisitor struct{}

func (DefaultVisitor) EnterProgram(p *Program) bool { return true }
func (DefaultVisitor) ExitProgram(p *Program)        {}

func (DefaultVisitor) EnterStmt(s Stmt) bool { return true }
func (DefaultVisitor) ExitStmt(s Stmt)       {}

func (DefaultVisitor) EnterDecl(d Decl) bool { return true }
func (DefaultVisitor) ExitDecl(d Decl)       {}

func (DefaultVisitor) EnterExpr(e Expr) bool { return true }
func (DefaultVisitor) ExitExpr(e Expr)       {}

func (DefaultVisitor) EnterPat(p Pat) bool { return true }
func (DefaultVisitor) ExitPat(p Pat)       {}

func (DefaultVisitor) EnterBlock(b *BlockStatement) bool { return true }
func (DefaultVisitor) ExitBlock(b *BlockStatement)       {}

func (DefaultVisitor) EnterClassElem(c ClassElem) bool { return true }
func (DefaultVisitor) ExitClassElem(c ClassElem)       {}

func (DefaultVisitor) EnterObjElem(o ObjElem) bool { return true }
func (DefaultVisitor) ExitObjElem(o ObjElem)       {}
