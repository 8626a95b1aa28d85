// Package traverse implements the depth-first traversal driver described
// in §4.3: it walks a jsast.Program maintaining an ancestor stack and an
// active capscope.Environment pointer, dispatching to the capture
// analyzers in the fixed order the spec requires (scope update, binding
// declaration, import recognition, globals collection, member-access
// collection) before recursing into children.
package traverse

import (
	"github.com/cybertier/npm-dependency-guardian/internal/capscope"
	"github.com/cybertier/npm-dependency-guardian/internal/capture"
	"github.com/cybertier/npm-dependency-guardian/internal/jsast"
)

type frame struct {
	node      jsast.Node
	envPushed bool
}

// Driver is a jsast.Visitor that owns the ancestor stack and environment
// pointer for a single file's traversal. It is not safe for concurrent
// use by design (§5): create one Driver per file.
type Driver struct {
	stack []frame
	env   *capscope.Environment
	acc   *capture.Accumulator
}

// New creates a Driver that accumulates into acc.
func New(acc *capture.Accumulator) *Driver {
	return &Driver{acc: acc}
}

// Run walks prog to completion with a fresh Driver; everything it finds
// goes into acc.
func Run(prog *jsast.Program, acc *capture.Accumulator) {
	d := New(acc)
	prog.Accept(d)
}

func (d *Driver) push(n jsast.Node) {
	d.stack = append(d.stack, frame{node: n})
}

// pushEnv pushes n as the new ancestor-stack top AND replaces the active
// environment with child, recording that this frame owns an environment
// so pop() restores it on exit.
func (d *Driver) pushEnv(n jsast.Node, child *capscope.Environment) {
	d.stack = append(d.stack, frame{node: n, envPushed: true})
	d.env = child
}

func (d *Driver) pop() {
	top := d.stack[len(d.stack)-1]
	d.stack = d.stack[:len(d.stack)-1]
	if top.envPushed {
		d.env = d.env.Parent
	}
}

// ancestors returns the ancestor stack, innermost (current) node last,
// NOT including the node currently being entered (callers add that
// themselves when needed since it's the argument to the Enter* callback).
func (d *Driver) ancestors() []jsast.Node {
	out := make([]jsast.Node, len(d.stack))
	for i, f := range d.stack {
		out[i] = f.node
	}
	return out
}

func (d *Driver) EnterProgram(p *jsast.Program) bool {
	d.env = capscope.NewRoot()
	d.push(p)
	return true
}
func (d *Driver) ExitProgram(p *jsast.Program) { d.pop() }

func (d *Driver) EnterBlock(b *jsast.BlockStatement) bool {
	kind, params := blockScopeKind(d.ancestors())
	child := d.env.PushScope(kind)
	if kind == capscope.Function || kind == capscope.Method {
		for _, p := range params {
			for _, id := range jsast.FindBindingIdentifiers(p.Pattern) {
				child.AddBinding(&capscope.Binding{Name: id.Name})
				d.acc.MarkDeclared(id)
			}
		}
	}
	d.pushEnv(b, child)
	return true
}
func (d *Driver) ExitBlock(b *jsast.BlockStatement) { d.pop() }

// blockScopeKind applies the scope-construction rule from §4.2: look at
// the node whose body this block is to decide Function vs Method vs Block,
// and where to find the parameter list to pre-populate.
func blockScopeKind(ancestors []jsast.Node) (capscope.Kind, []jsast.Param) {
	if len(ancestors) == 0 {
		return capscope.Block, nil
	}
	top := ancestors[len(ancestors)-1]
	switch n := top.(type) {
	case *jsast.FunctionDeclaration:
		return capscope.Function, n.Params
	case *jsast.FunctionExpression:
		if len(ancestors) >= 2 {
			if _, ok := ancestors[len(ancestors)-2].(*jsast.MethodDefinition); ok {
				return capscope.Method, n.Params
			}
		}
		return capscope.Function, n.Params
	case *jsast.ArrowFunctionExpression:
		return capscope.Function, n.Params
	default:
		return capscope.Block, nil
	}
}

func (d *Driver) EnterStmt(s jsast.Stmt) bool {
	d.push(s)
	// Catch bindings aren't routed through a dedicated block scope (see
	// blockScopeKind); approximated here by binding directly into the
	// enclosing scope, which is slightly wider than the catch block but
	// avoids misreporting the catch parameter as an undeclared global.
	if t, ok := s.(*jsast.TryStatement); ok && t.Handler != nil && t.Handler.Param != nil {
		for _, id := range jsast.FindBindingIdentifiers(t.Handler.Param) {
			d.env.AddBinding(&capscope.Binding{Name: id.Name})
			d.acc.MarkDeclared(id)
		}
	}
	return true
}
func (d *Driver) ExitStmt(s jsast.Stmt) { d.pop() }

func (d *Driver) EnterDecl(decl jsast.Decl) bool {
	d.push(decl)
	switch dd := decl.(type) {
	case *jsast.VariableDeclaration:
		for _, declr := range dd.Declarations {
			capture.ProcessVariableDeclarator(d.env, dd.Kind, declr, d.acc)
		}
	case *jsast.FunctionDeclaration:
		if dd.Id != nil {
			d.env.AddBindingFunctionScoped(&capscope.Binding{Name: dd.Id.Name})
			d.acc.MarkDeclared(dd.Id)
		}
		// Params are visited (via Accept) before EnterBlock fires for the
		// body, so they must be marked non-referring here, ahead of that
		// traversal, not inside EnterBlock where the scope binding happens.
		for _, p := range dd.Params {
			for _, id := range jsast.FindBindingIdentifiers(p.Pattern) {
				d.acc.MarkDeclared(id)
			}
		}
	case *jsast.ClassDeclaration:
		if dd.Id != nil {
			d.env.AddBinding(&capscope.Binding{Name: dd.Id.Name})
			d.acc.MarkDeclared(dd.Id)
		}
	case *jsast.ImportDeclaration:
		capture.ProcessImportDeclaration(d.env, dd, d.acc)
	case *jsast.ExportNamedDeclaration:
		capture.ProcessExportNamed(dd, d.acc)
	case *jsast.ExportAllDeclaration:
		capture.ProcessExportAll(dd, d.acc)
	}
	return true
}
func (d *Driver) ExitDecl(decl jsast.Decl) { d.pop() }

func (d *Driver) EnterExpr(e jsast.Expr) bool {
	ancestors := d.ancestors()
	d.push(e)
	switch ee := e.(type) {
	case *jsast.Identifier:
		capture.ProcessIdentifierReference(d.env, ancestors, ee, d.acc)
	case *jsast.MemberExpression:
		capture.ProcessMemberExpression(d.env, ee, d.acc)
	case *jsast.CallExpression:
		// A require('m') call reaches m wherever it appears, including a
		// bare side-effect `require('m');` statement.
		if callee, ok := ee.Callee.(*jsast.Identifier); ok && callee.Name == "require" && len(ee.Arguments) > 0 {
			if lit, ok := ee.Arguments[0].(*jsast.Literal); ok && lit.Kind == jsast.LiteralString {
				d.acc.Modules.Add(lit.Str)
			}
		}
	case *jsast.FunctionExpression:
		if ee.Id != nil {
			d.acc.MarkDeclared(ee.Id)
		}
		for _, p := range ee.Params {
			for _, id := range jsast.FindBindingIdentifiers(p.Pattern) {
				d.acc.MarkDeclared(id)
			}
		}
	case *jsast.ClassExpression:
		if ee.Id != nil {
			d.acc.MarkDeclared(ee.Id)
		}
	case *jsast.ArrowFunctionExpression:
		for _, p := range ee.Params {
			for _, id := range jsast.FindBindingIdentifiers(p.Pattern) {
				d.acc.MarkDeclared(id)
			}
		}
		if _, isBlock := ee.Body.(*jsast.BlockStatement); !isBlock {
			child := d.env.PushScope(capscope.Function)
			for _, p := range ee.Params {
				for _, id := range jsast.FindBindingIdentifiers(p.Pattern) {
					child.AddBinding(&capscope.Binding{Name: id.Name})
				}
			}
			// Replace the already-pushed plain frame with an env-owning one.
			d.stack[len(d.stack)-1].envPushed = true
			d.env = child
		}
	}
	return true
}
func (d *Driver) ExitExpr(e jsast.Expr) { d.pop() }

func (d *Driver) EnterPat(p jsast.Pat) bool { d.push(p); return true }
func (d *Driver) ExitPat(p jsast.Pat)       { d.pop() }

func (d *Driver) EnterClassElem(c jsast.ClassElem) bool { d.push(c); return true }
func (d *Driver) ExitClassElem(c jsast.ClassElem)       { d.pop() }

func (d *Driver) EnterObjElem(o jsast.ObjElem) bool { d.push(o); return true }
func (d *Driver) ExitObjElem(o jsast.ObjElem) { d.pop() }
