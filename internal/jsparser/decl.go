package jsparser

import "github.com/cybertier/npm-dependency-guardian/internal/jsast"

func (p *Parser) parseVariableDeclaration() *jsast.VariableDeclaration {
	start := p.cur.Span.Start
	var kind jsast.VarKind
	switch {
	case p.eatKeyword("var"):
		kind = jsast.VarKindVar
	case p.eatKeyword("let"):
		kind = jsast.VarKindLet
	case p.eatKeyword("const"):
		kind = jsast.VarKindConst
	default:
		p.fail("expected var/let/const")
	}
	var decls []*jsast.VariableDeclarator
	for {
		id := p.parseBindingTarget()
		var init jsast.Expr
		// parseBindingTarget folds a trailing `= expr` into an
		// AssignmentPattern; at the top of a declarator that `=` is the
		// initializer, so split it back into Id and Init.
		if ap, ok := id.(*jsast.AssignmentPattern); ok {
			id, init = ap.Left, ap.Right
		} else if p.eatPunct("=") {
			init = p.parseAssignExpr()
		}
		decls = append(decls, &jsast.VariableDeclarator{Id: id, Init: init})
		if !p.eatPunct(",") {
			break
		}
	}
	end := decls[len(decls)-1].Id.Span().End
	if last := decls[len(decls)-1]; last.Init != nil {
		end = last.Init.Span().End
	}
	p.consumeSemi()
	return &jsast.VariableDeclaration{Kind: kind, Declarations: decls, NodeSpan: jsast.NewSpan(start, end)}
}

func (p *Parser) parseFunctionDeclaration(async bool) *jsast.FunctionDeclaration {
	start := p.cur.Span.Start
	p.expectKeyword("function")
	generator := p.eatPunct("*")
	var id *jsast.Identifier
	if p.cur.Kind == TIdent || (p.cur.Kind == TKeyword && !p.atPunct("(")) {
		tok := p.advance()
		id = jsast.NewIdentifier(tok.Value, tok.Span)
	}
	params := p.parseParams()
	body := p.parseBlock()
	return &jsast.FunctionDeclaration{
		Id: id, Params: params, Body: body, Async: async, Generator: generator,
		NodeSpan: jsast.NewSpan(start, body.Span().End),
	}
}

func (p *Parser) expectKeyword(v string) {
	if !p.eatKeyword(v) {
		p.fail("expected '" + v + "'")
	}
}

func (p *Parser) parseFunctionExpr(async bool) jsast.Expr {
	start := p.cur.Span.Start
	p.expectKeyword("function")
	generator := p.eatPunct("*")
	var id *jsast.Identifier
	if p.cur.Kind == TIdent {
		tok := p.advance()
		id = jsast.NewIdentifier(tok.Value, tok.Span)
	}
	params := p.parseParams()
	body := p.parseBlock()
	return &jsast.FunctionExpression{
		Id: id, Params: params, Body: body, Async: async, Generator: generator,
		NodeSpan: jsast.NewSpan(start, body.Span().End),
	}
}

// finishFunctionExpr parses a function expression's params+body only,
// used by method and property definitions that already consumed the
// `function`-equivalent prefix (a method has none — the key is the name).
func (p *Parser) finishFunctionExpr(start jsast.Location, async, generator bool) *jsast.FunctionExpression {
	params := p.parseParams()
	body := p.parseBlock()
	return &jsast.FunctionExpression{
		Params: params, Body: body, Async: async, Generator: generator,
		NodeSpan: jsast.NewSpan(start, body.Span().End),
	}
}

func (p *Parser) parseClassBody() ([]jsast.ClassElem, jsast.Location) {
	p.expectPunct("{")
	var elems []jsast.ClassElem
	for !p.atPunct("}") && p.cur.Kind != TEOF {
		if p.eatPunct(";") {
			continue
		}
		elems = append(elems, p.parseClassElem())
	}
	end := p.expectPunct("}").End
	return elems, end
}

func (p *Parser) parseClassElem() jsast.ClassElem {
	start := p.cur.Span.Start
	static := false
	if p.atKeyword("static") && !p.peekN(1).Is(TPunct, "(") && !p.peekN(1).Is(TPunct, "=") {
		static = true
		p.advance()
	}
	async := false
	generator := false
	kind := jsast.MethodKindMethod
	if (p.atKeyword("get") || p.atKeyword("set")) && !p.peekN(1).Is(TPunct, "(") && !p.peekN(1).Is(TPunct, "=") && !p.peekN(1).Is(TPunct, ";") {
		if p.atKeyword("get") {
			kind = jsast.MethodKindGet
		} else {
			kind = jsast.MethodKindSet
		}
		p.advance()
	} else if p.atKeyword("async") && !p.peekN(1).Is(TPunct, "(") && !p.peekN(1).Is(TPunct, "=") {
		async = true
		p.advance()
	}
	if p.eatPunct("*") {
		generator = true
	}

	computed := false
	var key jsast.Expr
	if p.eatPunct("[") {
		computed = true
		key = p.parseAssignExpr()
		p.expectPunct("]")
	} else {
		tok := p.advance()
		switch tok.Kind {
		case TString:
			key = &jsast.Literal{Kind: jsast.LiteralString, Str: tok.Value, NodeSpan: tok.Span}
		case TNumber:
			key = &jsast.Literal{Kind: jsast.LiteralNumber, NodeSpan: tok.Span}
		default:
			key = jsast.NewIdentifier(tok.Value, tok.Span)
		}
	}

	if p.atPunct("(") {
		if id, ok := key.(*jsast.Identifier); ok && id.Name == "constructor" {
			kind = jsast.MethodKindConstructor
		}
		fn := p.finishFunctionExpr(start, async, generator)
		return &jsast.MethodDefinition{
			Key: key, Value: fn, Kind: kind, Static: static, Computed: computed,
			NodeSpan: jsast.NewSpan(start, fn.Span().End),
		}
	}

	var value jsast.Expr
	end := key.Span().End
	if p.eatPunct("=") {
		value = p.parseAssignExpr()
		end = value.Span().End
	}
	p.consumeSemi()
	return &jsast.PropertyDefinition{
		Key: key, Value: value, Static: static, Computed: computed,
		NodeSpan: jsast.NewSpan(start, end),
	}
}

func (p *Parser) parseClassTail() (id *jsast.Identifier, super jsast.Expr, body []jsast.ClassElem, end jsast.Location) {
	if p.cur.Kind == TIdent {
		tok := p.advance()
		id = jsast.NewIdentifier(tok.Value, tok.Span)
	}
	if p.eatKeyword("extends") {
		super = p.parseCallOrMember(p.parsePrimary())
	}
	body, end = p.parseClassBody()
	return id, super, body, end
}

func (p *Parser) parseClassDeclaration() *jsast.ClassDeclaration {
	start := p.advance().Span.Start // 'class'
	id, super, body, end := p.parseClassTail()
	return &jsast.ClassDeclaration{Id: id, SuperClass: super, Body: body, NodeSpan: jsast.NewSpan(start, end)}
}

func (p *Parser) parseClassExpr() jsast.Expr {
	start := p.advance().Span.Start // 'class'
	id, super, body, end := p.parseClassTail()
	return &jsast.ClassExpression{Id: id, SuperClass: super, Body: body, NodeSpan: jsast.NewSpan(start, end)}
}

// --- import/export ---

func (p *Parser) parseImportDeclaration() *jsast.ImportDeclaration {
	start := p.advance().Span.Start // 'import'

	// Side-effect-only: `import 'mod'`
	if p.cur.Kind == TString {
		src := p.advance()
		p.consumeSemi()
		return &jsast.ImportDeclaration{
			Source:   &jsast.Literal{Kind: jsast.LiteralString, Str: src.Value, NodeSpan: src.Span},
			NodeSpan: jsast.NewSpan(start, src.Span.End),
		}
	}

	var specs []jsast.ImportSpecifier

	if p.cur.Kind == TIdent {
		tok := p.advance()
		specs = append(specs, &jsast.ImportDefaultSpecifier{Local: jsast.NewIdentifier(tok.Value, tok.Span), NodeSpan: tok.Span})
		p.eatPunct(",")
	}

	if p.eatPunct("*") {
		p.expectKeyword("as")
		tok := p.advance()
		specs = append(specs, &jsast.ImportNamespaceSpecifier{Local: jsast.NewIdentifier(tok.Value, tok.Span), NodeSpan: tok.Span})
	} else if p.atPunct("{") {
		specs = append(specs, p.parseNamedImportSpecifiers()...)
	}

	p.expectKeyword("from")
	src := p.expectString()
	p.consumeSemi()
	return &jsast.ImportDeclaration{
		Specifiers: specs,
		Source:     &jsast.Literal{Kind: jsast.LiteralString, Str: src.Value, NodeSpan: src.Span},
		NodeSpan:   jsast.NewSpan(start, src.Span.End),
	}
}

func (p *Parser) parseNamedImportSpecifiers() []jsast.ImportSpecifier {
	p.expectPunct("{")
	var specs []jsast.ImportSpecifier
	for !p.atPunct("}") && p.cur.Kind != TEOF {
		importedTok := p.advance()
		imported := jsast.NewIdentifier(importedTok.Value, importedTok.Span)
		local := imported
		if p.eatKeyword("as") {
			localTok := p.advance()
			local = jsast.NewIdentifier(localTok.Value, localTok.Span)
		}
		specs = append(specs, &jsast.ImportNamedSpecifier{
			Imported: imported, Local: local,
			NodeSpan: jsast.NewSpan(importedTok.Span.Start, local.Span().End),
		})
		if !p.eatPunct(",") {
			break
		}
	}
	p.expectPunct("}")
	return specs
}

func (p *Parser) expectString() Token {
	if p.cur.Kind == TString {
		return p.advance()
	}
	p.fail("expected a string literal")
	return p.advance()
}

// parseExportDeclaration covers every `export` form: a wrapped
// declaration, `export default`, a named specifier list with an optional
// re-export source, and `export * [as ns] from 'm'`.
func (p *Parser) parseExportDeclaration() jsast.Decl {
	start := p.advance().Span.Start // 'export'

	if p.eatPunct("*") {
		var exported *jsast.Identifier
		if p.eatKeyword("as") {
			tok := p.advance()
			exported = jsast.NewIdentifier(tok.Value, tok.Span)
		}
		p.expectKeyword("from")
		src := p.expectString()
		p.consumeSemi()
		return &jsast.ExportAllDeclaration{
			Exported: exported,
			Source:   &jsast.Literal{Kind: jsast.LiteralString, Str: src.Value, NodeSpan: src.Span},
			NodeSpan: jsast.NewSpan(start, src.Span.End),
		}
	}

	if p.eatKeyword("default") {
		var decl jsast.Node
		switch {
		case p.atKeyword("function"):
			decl = p.parseFunctionDeclaration(false)
		case p.atKeyword("async") && p.peekN(1).Is(TKeyword, "function"):
			p.advance()
			decl = p.parseFunctionDeclaration(true)
		case p.atKeyword("class"):
			decl = p.parseClassDeclaration()
		default:
			decl = p.parseAssignExpr()
			p.consumeSemi()
		}
		return &jsast.ExportDefaultDeclaration{Declaration: decl, NodeSpan: jsast.NewSpan(start, decl.Span().End)}
	}

	if p.atPunct("{") {
		specs, end := p.parseExportSpecifiers()
		var src *jsast.Literal
		if p.eatKeyword("from") {
			tok := p.expectString()
			src = &jsast.Literal{Kind: jsast.LiteralString, Str: tok.Value, NodeSpan: tok.Span}
			end = tok.Span.End
		}
		p.consumeSemi()
		return &jsast.ExportNamedDeclaration{Specifiers: specs, Source: src, NodeSpan: jsast.NewSpan(start, end)}
	}

	// export <var|function|class declaration>
	decl := p.parseDeclarationKeyword()
	return &jsast.ExportNamedDeclaration{Declaration: decl, NodeSpan: jsast.NewSpan(start, decl.Span().End)}
}

func (p *Parser) parseExportSpecifiers() ([]jsast.ExportSpecifier, jsast.Location) {
	p.expectPunct("{")
	var specs []jsast.ExportSpecifier
	for !p.atPunct("}") && p.cur.Kind != TEOF {
		localTok := p.advance()
		local := jsast.NewIdentifier(localTok.Value, localTok.Span)
		exported := local
		if p.eatKeyword("as") {
			expTok := p.advance()
			exported = jsast.NewIdentifier(expTok.Value, expTok.Span)
		}
		specs = append(specs, jsast.ExportSpecifier{Local: local, Exported: exported})
		if !p.eatPunct(",") {
			break
		}
	}
	end := p.expectPunct("}").End
	return specs, end
}

// parseDeclarationKeyword dispatches on a var/function/class declaration
// keyword, shared between a bare statement-position declaration and one
// wrapped by `export`.
func (p *Parser) parseDeclarationKeyword() jsast.Decl {
	switch {
	case p.atKeyword("var"), p.atKeyword("let"), p.atKeyword("const"):
		return p.parseVariableDeclaration()
	case p.atKeyword("function"):
		return p.parseFunctionDeclaration(false)
	case p.atKeyword("async") && p.peekN(1).Is(TKeyword, "function"):
		p.advance()
		return p.parseFunctionDeclaration(true)
	case p.atKeyword("class"):
		return p.parseClassDeclaration()
	default:
		p.fail("expected a declaration")
		p.advance()
		return &jsast.VariableDeclaration{Kind: jsast.VarKindVar}
	}
}
