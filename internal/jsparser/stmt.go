package jsparser

import "github.com/cybertier/npm-dependency-guardian/internal/jsast"

func (p *Parser) parseBlock() *jsast.BlockStatement {
	start := p.expectPunct("{").Start
	var body []jsast.Stmt
	for !p.atPunct("}") && p.cur.Kind != TEOF {
		s := p.parseStmtRecovering()
		if s != nil {
			body = append(body, s)
		}
	}
	end := p.expectPunct("}").End
	return &jsast.BlockStatement{Body: body, NodeSpan: jsast.NewSpan(start, end)}
}

// parseStmt dispatches on the current token to the right statement form.
// break/continue/labeled statements are not modeled distinctly: a label
// prefix is dropped in favor of its inner statement, and a bare
// break/continue collapses to an EmptyStatement, since neither can ever
// reference a module or a global.
func (p *Parser) parseStmt() jsast.Stmt {
	switch {
	case p.atPunct("{"):
		return p.parseBlock()
	case p.atPunct(";"):
		tok := p.advance()
		return &jsast.EmptyStatement{NodeSpan: tok.Span}
	case p.atKeyword("var"), p.atKeyword("let"), p.atKeyword("const"):
		d := p.parseVariableDeclaration()
		return &jsast.DeclStmt{D: d, NodeSpan: d.NodeSpan}
	case p.atKeyword("function"):
		d := p.parseFunctionDeclaration(false)
		return &jsast.DeclStmt{D: d, NodeSpan: d.NodeSpan}
	case p.atKeyword("async") && p.peekN(1).Is(TKeyword, "function"):
		p.advance()
		d := p.parseFunctionDeclaration(true)
		return &jsast.DeclStmt{D: d, NodeSpan: d.NodeSpan}
	case p.atKeyword("class"):
		d := p.parseClassDeclaration()
		return &jsast.DeclStmt{D: d, NodeSpan: d.NodeSpan}
	case p.atKeyword("import") && !p.peekN(1).Is(TPunct, "("):
		d := p.parseImportDeclaration()
		return &jsast.DeclStmt{D: d, NodeSpan: d.NodeSpan}
	case p.atKeyword("export"):
		d := p.parseExportDeclaration()
		return &jsast.DeclStmt{D: d, NodeSpan: d.Span()}
	case p.atKeyword("if"):
		return p.parseIf()
	case p.atKeyword("for"):
		return p.parseFor()
	case p.atKeyword("while"):
		return p.parseWhile()
	case p.atKeyword("do"):
		return p.parseDoWhile()
	case p.atKeyword("switch"):
		return p.parseSwitch()
	case p.atKeyword("try"):
		return p.parseTry()
	case p.atKeyword("throw"):
		return p.parseThrow()
	case p.atKeyword("return"):
		return p.parseReturn()
	case p.atKeyword("break"), p.atKeyword("continue"):
		tok := p.advance()
		if p.cur.Kind == TIdent && !p.cur.NewlineBefore {
			p.advance() // label
		}
		p.consumeSemi()
		return &jsast.EmptyStatement{NodeSpan: tok.Span}
	case p.cur.Kind == TIdent && p.peekN(1).Is(TPunct, ":"):
		p.advance() // label
		p.advance() // ':'
		return p.parseStmt()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() *jsast.ExpressionStatement {
	start := p.cur.Span.Start
	expr := p.parseExpression()
	p.consumeSemi()
	return &jsast.ExpressionStatement{Expression: expr, NodeSpan: jsast.NewSpan(start, expr.Span().End)}
}

func (p *Parser) parseIf() *jsast.IfStatement {
	start := p.advance().Span.Start // 'if'
	p.expectPunct("(")
	test := p.parseExpression()
	p.expectPunct(")")
	cons := p.parseStmt()
	var alt jsast.Stmt
	end := cons.Span().End
	if p.eatKeyword("else") {
		alt = p.parseStmt()
		end = alt.Span().End
	}
	return &jsast.IfStatement{Test: test, Consequent: cons, Alternate: alt, NodeSpan: jsast.NewSpan(start, end)}
}

func (p *Parser) parseWhile() *jsast.WhileStatement {
	start := p.advance().Span.Start // 'while'
	p.expectPunct("(")
	test := p.parseExpression()
	p.expectPunct(")")
	body := p.parseStmt()
	return &jsast.WhileStatement{Test: test, Body: body, NodeSpan: jsast.NewSpan(start, body.Span().End)}
}

func (p *Parser) parseDoWhile() *jsast.DoWhileStatement {
	start := p.advance().Span.Start // 'do'
	body := p.parseStmt()
	p.expectKeyword("while")
	p.expectPunct("(")
	test := p.parseExpression()
	end := p.expectPunct(")").End
	p.consumeSemi()
	return &jsast.DoWhileStatement{Body: body, Test: test, NodeSpan: jsast.NewSpan(start, end)}
}

func (p *Parser) parseThrow() *jsast.ThrowStatement {
	start := p.advance().Span.Start // 'throw'
	arg := p.parseExpression()
	p.consumeSemi()
	return &jsast.ThrowStatement{Argument: arg, NodeSpan: jsast.NewSpan(start, arg.Span().End)}
}

func (p *Parser) parseReturn() *jsast.ReturnStatement {
	tok := p.advance() // 'return'
	var arg jsast.Expr
	end := tok.Span.End
	if !p.atPunct(";") && !p.atPunct("}") && p.cur.Kind != TEOF && !p.cur.NewlineBefore {
		arg = p.parseExpression()
		end = arg.Span().End
	}
	p.consumeSemi()
	return &jsast.ReturnStatement{Argument: arg, NodeSpan: jsast.NewSpan(tok.Span.Start, end)}
}

func (p *Parser) parseTry() *jsast.TryStatement {
	start := p.advance().Span.Start // 'try'
	block := p.parseBlock()
	end := block.NodeSpan.End
	var handler *jsast.CatchClause
	if p.eatKeyword("catch") {
		var param jsast.Pat
		if p.eatPunct("(") {
			param = p.parseBindingTarget()
			p.expectPunct(")")
		}
		body := p.parseBlock()
		handler = &jsast.CatchClause{Param: param, Body: body}
		end = body.NodeSpan.End
	}
	var finalizer *jsast.BlockStatement
	if p.eatKeyword("finally") {
		finalizer = p.parseBlock()
		end = finalizer.NodeSpan.End
	}
	return &jsast.TryStatement{Block: block, Handler: handler, Finalizer: finalizer, NodeSpan: jsast.NewSpan(start, end)}
}

func (p *Parser) parseSwitch() *jsast.SwitchStatement {
	start := p.advance().Span.Start // 'switch'
	p.expectPunct("(")
	disc := p.parseExpression()
	p.expectPunct(")")
	p.expectPunct("{")
	var cases []jsast.SwitchCase
	for !p.atPunct("}") && p.cur.Kind != TEOF {
		var test jsast.Expr
		if p.eatKeyword("case") {
			test = p.parseExpression()
		} else {
			p.expectKeyword("default")
		}
		p.expectPunct(":")
		var body []jsast.Stmt
		for !p.atKeyword("case") && !p.atKeyword("default") && !p.atPunct("}") && p.cur.Kind != TEOF {
			s := p.parseStmtRecovering()
			if s != nil {
				body = append(body, s)
			}
		}
		cases = append(cases, jsast.SwitchCase{Test: test, Consequent: body})
	}
	end := p.expectPunct("}").End
	return &jsast.SwitchStatement{Discriminant: disc, Cases: cases, NodeSpan: jsast.NewSpan(start, end)}
}

// parseFor handles all three head shapes: classic `for(;;)`, `for...in`,
// and `for...of` (including `for await...of`), disambiguated by what
// follows the initializer clause.
func (p *Parser) parseFor() jsast.Stmt {
	start := p.advance().Span.Start // 'for'
	isAwait := p.eatKeyword("await")
	p.expectPunct("(")

	if p.atPunct(";") {
		return p.finishClassicFor(start, nil)
	}

	if p.atKeyword("var") || p.atKeyword("let") || p.atKeyword("const") {
		var kind jsast.VarKind
		switch {
		case p.eatKeyword("var"):
			kind = jsast.VarKindVar
		case p.eatKeyword("let"):
			kind = jsast.VarKindLet
		default:
			p.eatKeyword("const")
			kind = jsast.VarKindConst
		}
		target := p.parseBindingTarget()
		if p.atKeyword("in") || p.atKeyword("of") {
			return p.finishForInOf(start, isAwait, &jsast.DeclStmt{D: &jsast.VariableDeclaration{
				Kind: kind, Declarations: []*jsast.VariableDeclarator{{Id: target}}, NodeSpan: target.Span(),
			}})
		}
		var init jsast.Expr
		if p.eatPunct("=") {
			init = p.parseAssignExpr()
		}
		decls := []*jsast.VariableDeclarator{{Id: target, Init: init}}
		for p.eatPunct(",") {
			id := p.parseBindingTarget()
			var in jsast.Expr
			if p.eatPunct("=") {
				in = p.parseAssignExpr()
			}
			decls = append(decls, &jsast.VariableDeclarator{Id: id, Init: in})
		}
		decl := &jsast.DeclStmt{D: &jsast.VariableDeclaration{Kind: kind, Declarations: decls}}
		return p.finishClassicFor(start, decl)
	}

	expr := p.parseExpression()
	if p.atKeyword("in") || p.atKeyword("of") {
		return p.finishForInOf(start, isAwait, exprToPattern(expr))
	}
	exprStmt := &jsast.ExpressionStatement{Expression: expr, NodeSpan: expr.Span()}
	return p.finishClassicFor(start, exprStmt)
}

func (p *Parser) finishForInOf(start jsast.Location, isAwait bool, left jsast.Node) jsast.Stmt {
	of := p.eatKeyword("of")
	if !of {
		p.expectKeyword("in")
	}
	right := p.parseAssignExpr()
	p.expectPunct(")")
	body := p.parseStmt()
	span := jsast.NewSpan(start, body.Span().End)
	if of {
		return &jsast.ForOfStatement{Left: left, Right: right, Body: body, Await: isAwait, NodeSpan: span}
	}
	return &jsast.ForInStatement{Left: left, Right: right, Body: body, NodeSpan: span}
}

func (p *Parser) finishClassicFor(start jsast.Location, init jsast.Node) jsast.Stmt {
	p.expectPunct(";")
	var test jsast.Expr
	if !p.atPunct(";") {
		test = p.parseExpression()
	}
	p.expectPunct(";")
	var update jsast.Expr
	if !p.atPunct(")") {
		update = p.parseExpression()
	}
	p.expectPunct(")")
	body := p.parseStmt()
	return &jsast.ForStatement{Init: init, Test: test, Update: update, Body: body, NodeSpan: jsast.NewSpan(start, body.Span().End)}
}
