package traverse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cybertier/npm-dependency-guardian/internal/capture"
	"github.com/cybertier/npm-dependency-guardian/internal/jsast"
	"github.com/cybertier/npm-dependency-guardian/internal/traverse"
)

func ident(name string) *jsast.Identifier { return jsast.NewIdentifier(name, jsast.Span{}) }

func strLit(s string) *jsast.Literal { return &jsast.Literal{Kind: jsast.LiteralString, Str: s} }

func requireCall(module string) *jsast.CallExpression {
	return &jsast.CallExpression{Callee: ident("require"), Arguments: []jsast.Expr{strLit(module)}}
}

func constDecl(name string, init jsast.Expr) *jsast.DeclStmt {
	return &jsast.DeclStmt{D: &jsast.VariableDeclaration{
		Kind:         jsast.VarKindConst,
		Declarations: []*jsast.VariableDeclarator{{Id: ident(name), Init: init}},
	}}
}

func exprStmt(e jsast.Expr) *jsast.ExpressionStatement { return &jsast.ExpressionStatement{Expression: e} }

func member(obj jsast.Expr, prop string) *jsast.MemberExpression {
	return &jsast.MemberExpression{Object: obj, Property: ident(prop)}
}

func call(callee jsast.Expr, args ...jsast.Expr) *jsast.CallExpression {
	return &jsast.CallExpression{Callee: callee, Arguments: args}
}

func run(body []jsast.Stmt) *capture.Accumulator {
	acc := capture.NewAccumulator()
	prog := jsast.NewProgram(body, jsast.Span{})
	traverse.Run(prog, acc)
	return acc
}

func TestRequireThenMemberAccess(t *testing.T) {
	// const fs = require('fs'); fs.readFile(x)
	body := []jsast.Stmt{
		constDecl("fs", requireCall("fs")),
		exprStmt(call(member(ident("fs"), "readFile"), ident("x"))),
	}
	acc := run(body)
	assert.True(t, acc.Modules.Contains("fs"))
	assert.True(t, acc.ModuleMembers.Contains("fs.readFile"))
}

func TestDestructuredRequire(t *testing.T) {
	// const {readFile, writeFile: wf} = require('fs')
	pat := &jsast.ObjectPattern{Properties: []jsast.Pat{
		&jsast.PatternProperty{Key: ident("readFile"), Value: ident("readFile"), Shorthand: true},
		&jsast.PatternProperty{Key: ident("writeFile"), Value: ident("wf")},
	}}
	body := []jsast.Stmt{
		&jsast.DeclStmt{D: &jsast.VariableDeclaration{
			Kind:         jsast.VarKindConst,
			Declarations: []*jsast.VariableDeclarator{{Id: pat, Init: requireCall("fs")}},
		}},
	}
	acc := run(body)
	assert.True(t, acc.Modules.Contains("fs"))
	assert.True(t, acc.ModuleMembers.Contains("fs.readFile"))
	assert.True(t, acc.ModuleMembers.Contains("fs.writeFile"))
}

func TestGlobalMemberAccess(t *testing.T) {
	// console.log(x)
	body := []jsast.Stmt{
		exprStmt(call(member(ident("console"), "log"), ident("x"))),
	}
	acc := run(body)
	assert.True(t, acc.Globals.Contains("console"))
	assert.True(t, acc.GlobalMembers.Contains("console.log"))
}

func TestParameterShadowingSuppressesModuleMember(t *testing.T) {
	// function f(fs) { fs.readFile(); }
	fn := &jsast.FunctionDeclaration{
		Id:     ident("f"),
		Params: []jsast.Param{{Pattern: ident("fs")}},
		Body: &jsast.BlockStatement{Body: []jsast.Stmt{
			exprStmt(call(member(ident("fs"), "readFile"))),
		}},
	}
	body := []jsast.Stmt{&jsast.DeclStmt{D: fn}}
	acc := run(body)
	assert.False(t, acc.Modules.Contains("fs"))
	assert.Equal(t, 0, acc.ModuleMembers.Len())
}

func TestAliasPropagation(t *testing.T) {
	// const a = require('fs'); const b = a; b.readFile();
	body := []jsast.Stmt{
		constDecl("a", requireCall("fs")),
		constDecl("b", ident("a")),
		exprStmt(call(member(ident("b"), "readFile"))),
	}
	acc := run(body)
	assert.True(t, acc.ModuleMembers.Contains("fs.readFile"))
}

func TestNonComputedPropertyIsNotAGlobal(t *testing.T) {
	// x.console (console here is a property name, not a global reference)
	body := []jsast.Stmt{
		exprStmt(member(ident("x"), "console")),
	}
	acc := run(body)
	assert.False(t, acc.Globals.Contains("console"))
}

func TestExportAllWarnsInsteadOfEnumerating(t *testing.T) {
	body := []jsast.Stmt{
		&jsast.DeclStmt{D: &jsast.ExportAllDeclaration{Source: strLit("fs")}},
	}
	acc := run(body)
	assert.True(t, acc.Modules.Contains("fs"))
	assert.Len(t, acc.Warnings, 1)
}
