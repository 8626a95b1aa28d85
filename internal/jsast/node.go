// Package jsast defines the typed AST node set produced by internal/jsparser
// and consumed by internal/traverse and internal/capture. It models only the
// subset of ECMAScript syntax the capability extractor needs to reason
// about: declarations, destructuring patterns, import/export forms, and the
// expression shapes that can reference a module or a global.
package jsast

// Node is the root interface implemented by every AST node.
type Node interface {
	Span() Span
	Accept(v Visitor)
}

// Stmt is a statement-position node.
type Stmt interface {
	Node
	isStmt()
}

// Expr is an expression-position node.
type Expr interface {
	Node
	isExpr()
}

// Decl is a node that introduces one or more bindings at the position it
// appears in (wrapped in a DeclStmt when it appears in statement position).
type Decl interface {
	Node
	isDecl()
}

// Pat is a binding-target node: the left-hand side of a declaration,
// assignment, or parameter list, possibly a destructuring pattern.
type Pat interface {
	Node
	isPat()
}

// ClassElem is a member of a class body (method or field).
type ClassElem interface {
	Node
	isClassElem()
}

// ObjElem is a member of an object expression (property or spread).
type ObjElem interface {
	Node
	isObjElem()
}

// ImportSpecifier is one binding introduced by an import declaration.
type ImportSpecifier interface {
	Node
	isImportSpecifier()
}
