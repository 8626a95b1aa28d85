package jsparser

import "github.com/cybertier/npm-dependency-guardian/internal/jsast"

// parseBindingTarget parses a pattern wherever one binds a name: a
// declarator's Id, a parameter, a destructuring element. Defaults
// (`x = 1`) are folded into an AssignmentPattern here rather than left to
// the caller, since every binding position allows one identically; for a
// declarator's Id, parseVariableDeclaration splits that pattern back into
// the Id and its initializer.
func (p *Parser) parseBindingTarget() jsast.Pat {
	var pat jsast.Pat
	switch {
	case p.atPunct("{"):
		pat = p.parseObjectPattern()
	case p.atPunct("["):
		pat = p.parseArrayPattern()
	case p.cur.Kind == TIdent || p.cur.Kind == TKeyword:
		tok := p.advance()
		pat = jsast.NewIdentifier(tok.Value, tok.Span)
	default:
		p.fail("expected a binding pattern")
		tok := p.advance()
		pat = jsast.NewIdentifier(tok.Value, tok.Span)
	}
	if p.eatPunct("=") {
		start := pat.Span().Start
		def := p.parseAssignExpr()
		pat = &jsast.AssignmentPattern{Left: pat, Right: def, NodeSpan: jsast.NewSpan(start, def.Span().End)}
	}
	return pat
}

func (p *Parser) parseObjectPattern() *jsast.ObjectPattern {
	start := p.expectPunct("{").Start
	var props []jsast.Pat
	for !p.atPunct("}") && p.cur.Kind != TEOF {
		if p.eatPunct("...") {
			restStart := p.cur.Span.Start
			target := p.parseBindingTarget()
			props = append(props, &jsast.RestElement{Argument: target, NodeSpan: jsast.NewSpan(restStart, target.Span().End)})
		} else {
			props = append(props, p.parsePatternProperty())
		}
		if !p.eatPunct(",") {
			break
		}
	}
	end := p.expectPunct("}").End
	return &jsast.ObjectPattern{Properties: props, NodeSpan: jsast.NewSpan(start, end)}
}

func (p *Parser) parsePatternProperty() *jsast.PatternProperty {
	keyStart := p.cur.Span.Start
	computed := false
	var key jsast.Expr
	if p.eatPunct("[") {
		computed = true
		key = p.parseAssignExpr()
		p.expectPunct("]")
	} else {
		tok := p.advance()
		if tok.Kind == TString {
			key = &jsast.Literal{Kind: jsast.LiteralString, Str: tok.Value, NodeSpan: tok.Span}
		} else if tok.Kind == TNumber {
			key = &jsast.Literal{Kind: jsast.LiteralNumber, NodeSpan: tok.Span}
		} else {
			key = jsast.NewIdentifier(tok.Value, tok.Span)
		}
	}
	if p.eatPunct(":") {
		value := p.parseBindingTarget()
		return &jsast.PatternProperty{
			Key: key, Value: value, Computed: computed,
			NodeSpan: jsast.NewSpan(keyStart, value.Span().End),
		}
	}
	id, ok := key.(*jsast.Identifier)
	if !ok {
		p.fail("expected shorthand property name")
		id = jsast.NewIdentifier("", key.Span())
	}
	var value jsast.Pat = id
	span := jsast.NewSpan(keyStart, id.Span().End)
	if p.eatPunct("=") {
		def := p.parseAssignExpr()
		span = jsast.NewSpan(keyStart, def.Span().End)
		value = &jsast.AssignmentPattern{Left: id, Right: def, NodeSpan: span}
	}
	return &jsast.PatternProperty{Key: id, Value: value, Shorthand: true, NodeSpan: span}
}

func (p *Parser) parseArrayPattern() *jsast.ArrayPattern {
	start := p.expectPunct("[").Start
	var elems []jsast.Pat
	for !p.atPunct("]") && p.cur.Kind != TEOF {
		if p.atPunct(",") {
			elems = append(elems, nil)
			p.advance()
			continue
		}
		if p.eatPunct("...") {
			restStart := p.cur.Span.Start
			target := p.parseBindingTarget()
			elems = append(elems, &jsast.RestElement{Argument: target, NodeSpan: jsast.NewSpan(restStart, target.Span().End)})
		} else {
			elems = append(elems, p.parseBindingTarget())
		}
		if !p.eatPunct(",") {
			break
		}
	}
	end := p.expectPunct("]").End
	return &jsast.ArrayPattern{Elements: elems, NodeSpan: jsast.NewSpan(start, end)}
}

// parseParams parses a parenthesized parameter list shared by function
// declarations/expressions, methods, and parenthesized arrow functions.
func (p *Parser) parseParams() []jsast.Param {
	p.expectPunct("(")
	var params []jsast.Param
	for !p.atPunct(")") && p.cur.Kind != TEOF {
		if p.eatPunct("...") {
			restStart := p.cur.Span.Start
			target := p.parseBindingTarget()
			params = append(params, jsast.Param{Pattern: &jsast.RestElement{
				Argument: target, NodeSpan: jsast.NewSpan(restStart, target.Span().End),
			}})
		} else {
			params = append(params, jsast.Param{Pattern: p.parseBindingTarget()})
		}
		if !p.eatPunct(",") {
			break
		}
	}
	p.expectPunct(")")
	return params
}

// exprToPattern reinterprets an already-parsed expression as an assignment
// target, needed because `[a, b] = pair` and `({a, b} = obj)` parse their
// left-hand side through the expression grammar (object/array literals)
// before it's known to be a pattern.
func exprToPattern(e jsast.Expr) jsast.Pat {
	switch n := e.(type) {
	case *jsast.Identifier:
		return n
	case *jsast.ArrayExpression:
		elems := make([]jsast.Pat, len(n.Elements))
		for i, el := range n.Elements {
			if el == nil {
				continue
			}
			if sp, ok := el.(*jsast.SpreadElement); ok {
				elems[i] = &jsast.RestElement{Argument: exprToPattern(sp.Argument), NodeSpan: sp.NodeSpan}
				continue
			}
			elems[i] = exprToPattern(el)
		}
		return &jsast.ArrayPattern{Elements: elems, NodeSpan: n.NodeSpan}
	case *jsast.ObjectExpression:
		props := make([]jsast.Pat, 0, len(n.Properties))
		for _, prop := range n.Properties {
			switch pr := prop.(type) {
			case *jsast.ObjectProperty:
				props = append(props, &jsast.PatternProperty{
					Key: pr.Key, Value: exprToPattern(pr.Value), Computed: pr.Computed,
					Shorthand: pr.Shorthand, NodeSpan: pr.NodeSpan,
				})
			case *jsast.SpreadElement:
				props = append(props, &jsast.RestElement{Argument: exprToPattern(pr.Argument), NodeSpan: pr.NodeSpan})
			}
		}
		return &jsast.ObjectPattern{Properties: props, NodeSpan: n.NodeSpan}
	case *jsast.AssignmentExpression:
		return &jsast.AssignmentPattern{Left: n.Left, Right: n.Right, NodeSpan: n.NodeSpan}
	default:
		if pat, ok := e.(jsast.Pat); ok {
			return pat
		}
		return jsast.NewIdentifier("", e.Span())
	}
}
