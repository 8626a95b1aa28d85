package jsparser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybertier/npm-dependency-guardian/internal/jsast"
	"github.com/cybertier/npm-dependency-guardian/internal/jsparser"
)

func parse(t *testing.T, src string) *jsast.Program {
	t.Helper()
	prog, err := jsparser.Parse(jsparser.Source{Path: "input.js", Contents: src})
	require.NoError(t, err)
	require.NotNil(t, prog)
	return prog
}

func TestParseRequireAndMemberAccess(t *testing.T) {
	prog := parse(t, `const fs = require('fs');
fs.readFileSync('x');`)
	require.Len(t, prog.Body, 2)

	decl, ok := prog.Body[0].(*jsast.DeclStmt)
	require.True(t, ok)
	varDecl, ok := decl.D.(*jsast.VariableDeclaration)
	require.True(t, ok)
	assert.Equal(t, jsast.VarKindConst, varDecl.Kind)
	require.Len(t, varDecl.Declarations, 1)

	call, ok := varDecl.Declarations[0].Init.(*jsast.CallExpression)
	require.True(t, ok)
	callee, ok := call.Callee.(*jsast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "require", callee.Name)
	require.Len(t, call.Arguments, 1)
	lit, ok := call.Arguments[0].(*jsast.Literal)
	require.True(t, ok)
	assert.Equal(t, "fs", lit.Str)

	exprStmt, ok := prog.Body[1].(*jsast.ExpressionStatement)
	require.True(t, ok)
	outerCall, ok := exprStmt.Expression.(*jsast.CallExpression)
	require.True(t, ok)
	member, ok := outerCall.Callee.(*jsast.MemberExpression)
	require.True(t, ok)
	assert.False(t, member.Computed)
	prop, ok := member.Property.(*jsast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "readFileSync", prop.Name)
}

func TestParseDestructuredRequire(t *testing.T) {
	prog := parse(t, `const { readFile, writeFile: wf } = require('fs');`)
	require.Len(t, prog.Body, 1)
	decl := prog.Body[0].(*jsast.DeclStmt).D.(*jsast.VariableDeclaration)
	pat, ok := decl.Declarations[0].Id.(*jsast.ObjectPattern)
	require.True(t, ok)
	require.Len(t, pat.Properties, 2)

	p0 := pat.Properties[0].(*jsast.PatternProperty)
	assert.True(t, p0.Shorthand)
	assert.Equal(t, "readFile", p0.Value.(*jsast.Identifier).Name)

	p1 := pat.Properties[1].(*jsast.PatternProperty)
	assert.False(t, p1.Shorthand)
	assert.Equal(t, "writeFile", p1.Key.(*jsast.Identifier).Name)
	assert.Equal(t, "wf", p1.Value.(*jsast.Identifier).Name)
}

func TestParseImportForms(t *testing.T) {
	prog := parse(t, `
import def, { a, b as c } from 'mod1';
import * as ns from 'mod2';
import 'mod3';
export * from 'mod4';
export { x } from 'mod5';
`)
	require.Len(t, prog.Body, 5)

	imp1 := prog.Body[0].(*jsast.DeclStmt).D.(*jsast.ImportDeclaration)
	assert.Equal(t, "mod1", imp1.Source.Str)
	require.Len(t, imp1.Specifiers, 3)
	_, isDefault := imp1.Specifiers[0].(*jsast.ImportDefaultSpecifier)
	assert.True(t, isDefault)
	named, isNamed := imp1.Specifiers[2].(*jsast.ImportNamedSpecifier)
	require.True(t, isNamed)
	assert.Equal(t, "b", named.Imported.Name)
	assert.Equal(t, "c", named.Local.Name)

	imp2 := prog.Body[1].(*jsast.DeclStmt).D.(*jsast.ImportDeclaration)
	_, isNs := imp2.Specifiers[0].(*jsast.ImportNamespaceSpecifier)
	assert.True(t, isNs)

	imp3 := prog.Body[2].(*jsast.DeclStmt).D.(*jsast.ImportDeclaration)
	assert.Empty(t, imp3.Specifiers)
	assert.Equal(t, "mod3", imp3.Source.Str)

	exp4 := prog.Body[3].(*jsast.DeclStmt).D.(*jsast.ExportAllDeclaration)
	assert.Equal(t, "mod4", exp4.Source.Str)

	exp5 := prog.Body[4].(*jsast.DeclStmt).D.(*jsast.ExportNamedDeclaration)
	assert.Equal(t, "mod5", exp5.Source.Str)
	require.Len(t, exp5.Specifiers, 1)
	assert.Equal(t, "x", exp5.Specifiers[0].Local.Name)
}

func TestParseArrowFunctionsAndParenDisambiguation(t *testing.T) {
	prog := parse(t, `
const f = x => x + 1;
const g = (a, b) => { return a + b; };
const h = (a, b);
`)
	require.Len(t, prog.Body, 3)

	f := prog.Body[0].(*jsast.DeclStmt).D.(*jsast.VariableDeclaration).Declarations[0].Init
	arrowF, ok := f.(*jsast.ArrowFunctionExpression)
	require.True(t, ok)
	require.Len(t, arrowF.Params, 1)
	if _, isBlock := arrowF.Body.(*jsast.BlockStatement); isBlock {
		t.Fatal("expected concise arrow body")
	}

	g := prog.Body[1].(*jsast.DeclStmt).D.(*jsast.VariableDeclaration).Declarations[0].Init
	arrowG, ok := g.(*jsast.ArrowFunctionExpression)
	require.True(t, ok)
	require.Len(t, arrowG.Params, 2)
	_, isBlock := arrowG.Body.(*jsast.BlockStatement)
	assert.True(t, isBlock)

	h := prog.Body[2].(*jsast.DeclStmt).D.(*jsast.VariableDeclaration).Declarations[0].Init
	_, isSeq := h.(*jsast.SequenceExpression)
	assert.True(t, isSeq, "expected a parenthesized sequence expression, not an arrow function")
}

func TestParseClassWithMethodsAndFields(t *testing.T) {
	prog := parse(t, `
class Service extends Base {
	static count = 0;
	#secret = require('crypto');
	constructor(opts) {
		super(opts);
		this.opts = opts;
	}
	async run() {
		return await this.opts.handler();
	}
	get ready() { return true; }
}
`)
	require.Len(t, prog.Body, 1)
	cls := prog.Body[0].(*jsast.DeclStmt).D.(*jsast.ClassDeclaration)
	assert.Equal(t, "Service", cls.Id.Name)
	require.NotNil(t, cls.SuperClass)

	var methodKinds []jsast.MethodKind
	for _, elem := range cls.Body {
		if m, ok := elem.(*jsast.MethodDefinition); ok {
			methodKinds = append(methodKinds, m.Kind)
		}
	}
	assert.Contains(t, methodKinds, jsast.MethodKindConstructor)
	assert.Contains(t, methodKinds, jsast.MethodKindGet)
}

func TestParseForVariants(t *testing.T) {
	prog := parse(t, `
for (let i = 0; i < 10; i++) { log(i); }
for (const key in obj) { use(key); }
for (const item of items) { use(item); }
`)
	require.Len(t, prog.Body, 3)
	_, isFor := prog.Body[0].(*jsast.ForStatement)
	assert.True(t, isFor)
	_, isForIn := prog.Body[1].(*jsast.ForInStatement)
	assert.True(t, isForIn)
	_, isForOf := prog.Body[2].(*jsast.ForOfStatement)
	assert.True(t, isForOf)
}

func TestParseTryCatchFinally(t *testing.T) {
	prog := parse(t, `
try {
	risky();
} catch (err) {
	handle(err);
} finally {
	cleanup();
}
`)
	require.Len(t, prog.Body, 1)
	tryStmt := prog.Body[0].(*jsast.TryStatement)
	require.NotNil(t, tryStmt.Handler)
	require.NotNil(t, tryStmt.Handler.Param)
	assert.Equal(t, "err", tryStmt.Handler.Param.(*jsast.Identifier).Name)
	require.NotNil(t, tryStmt.Finalizer)
}

func TestParseTemplateLiteralInterpolations(t *testing.T) {
	prog := parse(t, "const msg = `hello ${name}, you have ${count + 1} items`;")
	require.Len(t, prog.Body, 1)
	decl := prog.Body[0].(*jsast.DeclStmt).D.(*jsast.VariableDeclaration)
	tmpl, ok := decl.Declarations[0].Init.(*jsast.TemplateLiteral)
	require.True(t, ok)
	require.Len(t, tmpl.Expressions, 2)
	_, isIdent := tmpl.Expressions[0].(*jsast.Identifier)
	assert.True(t, isIdent)
	_, isBinary := tmpl.Expressions[1].(*jsast.BinaryExpression)
	assert.True(t, isBinary)
}

func TestParseDynamicImportThroughAwait(t *testing.T) {
	prog := parse(t, `async function load() { const m = await import('left-pad'); return m; }`)
	fn := prog.Body[0].(*jsast.DeclStmt).D.(*jsast.FunctionDeclaration)
	decl := fn.Body.Body[0].(*jsast.DeclStmt).D.(*jsast.VariableDeclaration)
	await, ok := decl.Declarations[0].Init.(*jsast.AwaitExpression)
	require.True(t, ok)
	unwrapped := jsast.Unwrap(await)
	imp, ok := unwrapped.(*jsast.ImportExpression)
	require.True(t, ok)
	lit := imp.Source.(*jsast.Literal)
	assert.Equal(t, "left-pad", lit.Str)
}
