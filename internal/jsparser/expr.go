package jsparser

import "github.com/cybertier/npm-dependency-guardian/internal/jsast"

var binaryPrecedence = map[string]int{
	"??": 1,
	"||": 2,
	"&&": 3,
	"|":  4,
	"^":  5,
	"&":  6,
	"==": 7, "!=": 7, "===": 7, "!==": 7,
	"<": 8, ">": 8, "<=": 8, ">=": 8, "instanceof": 8, "in": 8,
	"<<": 9, ">>": 9, ">>>": 9,
	"+": 10, "-": 10,
	"*": 11, "/": 11, "%": 11,
	"**": 12,
}

var assignmentOperators = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"**=": true, "<<=": true, ">>=": true, ">>>=": true, "&=": true,
	"|=": true, "^=": true, "&&=": true, "||=": true, "??=": true,
}

// parseExpression parses a full expression, including the comma operator.
func (p *Parser) parseExpression() jsast.Expr {
	first := p.parseAssignExpr()
	if !p.atPunct(",") {
		return first
	}
	exprs := []jsast.Expr{first}
	for p.eatPunct(",") {
		exprs = append(exprs, p.parseAssignExpr())
	}
	return &jsast.SequenceExpression{
		Expressions: exprs,
		NodeSpan:    jsast.NewSpan(first.Span().Start, exprs[len(exprs)-1].Span().End),
	}
}

func (p *Parser) parseAssignExpr() jsast.Expr {
	if arrow, ok := p.tryParseArrow(); ok {
		return arrow
	}
	if p.atKeyword("yield") {
		return p.parseYield()
	}
	left := p.parseConditional()
	if p.cur.Kind == TPunct && assignmentOperators[p.cur.Value] {
		op := p.advance().Value
		right := p.parseAssignExpr()
		return &jsast.AssignmentExpression{
			Operator: op, Left: exprToPattern(left), Right: right,
			NodeSpan: jsast.NewSpan(left.Span().Start, right.Span().End),
		}
	}
	return left
}

func (p *Parser) parseYield() jsast.Expr {
	start := p.advance().Span.Start // 'yield'
	delegate := p.eatPunct("*")
	var arg jsast.Expr
	end := start
	if !p.atPunct(")") && !p.atPunct("]") && !p.atPunct("}") && !p.atPunct(";") &&
		!p.atPunct(",") && p.cur.Kind != TEOF && !p.cur.NewlineBefore {
		arg = p.parseAssignExpr()
		end = arg.Span().End
	}
	return &jsast.YieldExpression{Argument: arg, Delegate: delegate, NodeSpan: jsast.NewSpan(start, end)}
}

// tryParseArrow speculatively parses an arrow function. It handles both
// `ident => body` (no parens) and `(params) => body`, backtracking to a
// normal expression parse when no `=>` follows a parenthesized group —
// the one shape (params vs. a parenthesized expression) this grammar can't
// tell apart without looking past the closing paren.
func (p *Parser) tryParseArrow() (jsast.Expr, bool) {
	async := false
	snap := p.snapshot()
	if p.atKeyword("async") && !p.peekN(1).NewlineBefore &&
		(p.peekN(1).Kind == TIdent || p.peekN(1).Is(TPunct, "(")) {
		async = true
		p.advance()
	}

	start := p.cur.Span.Start
	if (p.cur.Kind == TIdent) && p.peekN(1).Is(TPunct, "=>") {
		id := p.advance()
		p.advance() // =>
		body := p.parseArrowBody()
		return &jsast.ArrowFunctionExpression{
			Params: []jsast.Param{{Pattern: jsast.NewIdentifier(id.Value, id.Span)}},
			Body:   body, Async: async,
			NodeSpan: jsast.NewSpan(start, body.Span().End),
		}, true
	}

	if p.atPunct("(") {
		params, ok := p.tryParseParenAsArrowParams()
		if ok && p.atPunct("=>") {
			p.advance()
			body := p.parseArrowBody()
			return &jsast.ArrowFunctionExpression{
				Params: params, Body: body, Async: async,
				NodeSpan: jsast.NewSpan(start, body.Span().End),
			}, true
		}
	}

	p.restore(snap)
	return nil, false
}

// tryParseParenAsArrowParams attempts to read a `(...)` group as an arrow
// parameter list. It always consumes the parens (the caller only commits
// to the result when `=>` follows); any internal parse error means the
// caller's subsequent restore() is what actually undoes the attempt.
func (p *Parser) tryParseParenAsArrowParams() ([]jsast.Param, bool) {
	before := len(p.errors)
	params := p.parseParams()
	return params, len(p.errors) == before
}

func (p *Parser) parseArrowBody() jsast.Node {
	if p.atPunct("{") {
		return p.parseBlock()
	}
	return p.parseAssignExpr()
}

func (p *Parser) parseConditional() jsast.Expr {
	test := p.parseBinary(1)
	if !p.eatPunct("?") {
		return test
	}
	cons := p.parseAssignExpr()
	p.expectPunct(":")
	alt := p.parseAssignExpr()
	return &jsast.ConditionalExpression{
		Test: test, Consequent: cons, Alternate: alt,
		NodeSpan: jsast.NewSpan(test.Span().Start, alt.Span().End),
	}
}

func (p *Parser) parseBinary(minPrec int) jsast.Expr {
	left := p.parseUnary()
	for {
		op, logical, ok := p.peekBinaryOp()
		prec := binaryPrecedence[op]
		if !ok || prec < minPrec {
			return left
		}
		p.advance()
		nextMin := prec + 1
		if op == "**" {
			nextMin = prec // ** is right-associative
		}
		right := p.parseBinary(nextMin)
		span := jsast.NewSpan(left.Span().Start, right.Span().End)
		if logical {
			left = &jsast.LogicalExpression{Operator: op, Left: left, Right: right, NodeSpan: span}
		} else {
			left = &jsast.BinaryExpression{Operator: op, Left: left, Right: right, NodeSpan: span}
		}
	}
}

func (p *Parser) peekBinaryOp() (op string, logical bool, ok bool) {
	switch p.cur.Kind {
	case TPunct:
		if _, known := binaryPrecedence[p.cur.Value]; known {
			logical = p.cur.Value == "&&" || p.cur.Value == "||" || p.cur.Value == "??"
			return p.cur.Value, logical, true
		}
	case TKeyword:
		if p.cur.Value == "instanceof" || p.cur.Value == "in" {
			return p.cur.Value, false, true
		}
	}
	return "", false, false
}

var unaryOps = map[string]bool{"+": true, "-": true, "!": true, "~": true}

func (p *Parser) parseUnary() jsast.Expr {
	if p.cur.Kind == TPunct && unaryOps[p.cur.Value] {
		tok := p.advance()
		arg := p.parseUnary()
		return &jsast.UnaryExpression{Operator: tok.Value, Argument: arg, NodeSpan: jsast.NewSpan(tok.Span.Start, arg.Span().End)}
	}
	if p.cur.Kind == TKeyword && (p.cur.Value == "typeof" || p.cur.Value == "void" || p.cur.Value == "delete") {
		tok := p.advance()
		arg := p.parseUnary()
		return &jsast.UnaryExpression{Operator: tok.Value, Argument: arg, NodeSpan: jsast.NewSpan(tok.Span.Start, arg.Span().End)}
	}
	if p.cur.Kind == TKeyword && p.cur.Value == "await" {
		tok := p.advance()
		arg := p.parseUnary()
		return &jsast.AwaitExpression{Argument: arg, NodeSpan: jsast.NewSpan(tok.Span.Start, arg.Span().End)}
	}
	if p.atPunct("++") || p.atPunct("--") {
		tok := p.advance()
		arg := p.parseUnary()
		return &jsast.UpdateExpression{Operator: tok.Value, Argument: arg, Prefix: true, NodeSpan: jsast.NewSpan(tok.Span.Start, arg.Span().End)}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() jsast.Expr {
	expr := p.parseCallOrMember(p.parsePrimary())
	if (p.atPunct("++") || p.atPunct("--")) && !p.cur.NewlineBefore {
		tok := p.advance()
		expr = &jsast.UpdateExpression{Operator: tok.Value, Argument: expr, Prefix: false, NodeSpan: jsast.NewSpan(expr.Span().Start, tok.Span.End)}
	}
	return expr
}

// parseCallOrMember parses the postfix chain of member accesses, calls,
// and tagged template literals off an already-parsed base expression.
func (p *Parser) parseCallOrMember(base jsast.Expr) jsast.Expr {
	for {
		switch {
		case p.eatPunct("."):
			prop := p.advance()
			base = &jsast.MemberExpression{
				Object: base, Property: jsast.NewIdentifier(prop.Value, prop.Span),
				Computed: false, NodeSpan: jsast.NewSpan(base.Span().Start, prop.Span.End),
			}
		case p.atPunct("?."):
			p.advance()
			if p.atPunct("(") {
				args, end := p.parseArguments()
				base = &jsast.CallExpression{Callee: base, Arguments: args, NodeSpan: jsast.NewSpan(base.Span().Start, end)}
				continue
			}
			if p.atPunct("[") {
				p.advance()
				prop := p.parseExpression()
				end := p.expectPunct("]").End
				base = &jsast.MemberExpression{Object: base, Property: prop, Computed: true, NodeSpan: jsast.NewSpan(base.Span().Start, end)}
				continue
			}
			prop := p.advance()
			base = &jsast.MemberExpression{
				Object: base, Property: jsast.NewIdentifier(prop.Value, prop.Span),
				Computed: false, NodeSpan: jsast.NewSpan(base.Span().Start, prop.Span.End),
			}
		case p.atPunct("["):
			p.advance()
			prop := p.parseExpression()
			end := p.expectPunct("]").End
			base = &jsast.MemberExpression{Object: base, Property: prop, Computed: true, NodeSpan: jsast.NewSpan(base.Span().Start, end)}
		case p.atPunct("("):
			args, end := p.parseArguments()
			base = &jsast.CallExpression{Callee: base, Arguments: args, NodeSpan: jsast.NewSpan(base.Span().Start, end)}
		default:
			return base
		}
	}
}

func (p *Parser) parseArguments() ([]jsast.Expr, jsast.Location) {
	p.expectPunct("(")
	var args []jsast.Expr
	for !p.atPunct(")") && p.cur.Kind != TEOF {
		if p.eatPunct("...") {
			start := p.cur.Span.Start
			arg := p.parseAssignExpr()
			args = append(args, &jsast.SpreadElement{Argument: arg, NodeSpan: jsast.NewSpan(start, arg.Span().End)})
		} else {
			args = append(args, p.parseAssignExpr())
		}
		if !p.eatPunct(",") {
			break
		}
	}
	end := p.expectPunct(")").End
	return args, end
}

func (p *Parser) parsePrimary() jsast.Expr {
	tok := p.cur
	switch {
	case tok.Kind == TNumber:
		p.advance()
		return &jsast.Literal{Kind: jsast.LiteralNumber, NodeSpan: tok.Span}
	case tok.Kind == TString:
		p.advance()
		return &jsast.Literal{Kind: jsast.LiteralString, Str: tok.Value, NodeSpan: tok.Span}
	case tok.Kind == TRegex:
		p.advance()
		return &jsast.Literal{Kind: jsast.LiteralRegex, Str: tok.Value, NodeSpan: tok.Span}
	case tok.Is(TKeyword, "true"), tok.Is(TKeyword, "false"):
		p.advance()
		return &jsast.Literal{Kind: jsast.LiteralBool, NodeSpan: tok.Span}
	case tok.Is(TKeyword, "null"):
		p.advance()
		return &jsast.Literal{Kind: jsast.LiteralNull, NodeSpan: tok.Span}
	case tok.Is(TKeyword, "this"):
		p.advance()
		return &jsast.ThisExpression{NodeSpan: tok.Span}
	case tok.Is(TKeyword, "super"):
		p.advance()
		return jsast.NewIdentifier("super", tok.Span)
	case tok.Is(TKeyword, "new"):
		return p.parseNew()
	case tok.Is(TKeyword, "function"):
		return p.parseFunctionExpr(false)
	case tok.Is(TKeyword, "class"):
		return p.parseClassExpr()
	case tok.Is(TKeyword, "async") && p.peekN(1).Is(TKeyword, "function"):
		p.advance()
		return p.parseFunctionExpr(true)
	case tok.Is(TKeyword, "import") && p.peekN(1).Is(TPunct, "("):
		p.advance()
		p.expectPunct("(")
		src := p.parseAssignExpr()
		end := p.expectPunct(")").End
		return &jsast.ImportExpression{Source: src, NodeSpan: jsast.NewSpan(tok.Span.Start, end)}
	case tok.Kind == TPunct && tok.Value == "(":
		return p.parseParenExpr()
	case tok.Kind == TPunct && tok.Value == "[":
		return p.parseArrayLiteral()
	case tok.Kind == TPunct && tok.Value == "{":
		return p.parseObjectLiteral()
	case tok.Kind == TPunct && tok.Value == "`":
		return p.parseTemplateLiteral()
	case tok.Kind == TIdent || tok.Kind == TKeyword:
		p.advance()
		return jsast.NewIdentifier(tok.Value, tok.Span)
	default:
		p.fail("expected an expression")
		p.advance()
		return jsast.NewIdentifier("", tok.Span)
	}
}

func (p *Parser) parseNew() jsast.Expr {
	start := p.advance().Span.Start // 'new'
	if p.atPunct(".") {
		// new.target; modeled as an opaque identifier since it can't
		// statically resolve to a module or global.
		p.advance()
		end := p.advance().Span.End
		return jsast.NewIdentifier("new.target", jsast.NewSpan(start, end))
	}
	callee := p.parseCallOrMemberNoCall(p.parsePrimary())
	var args []jsast.Expr
	end := callee.Span().End
	if p.atPunct("(") {
		args, end = p.parseArguments()
	}
	expr := jsast.Expr(&jsast.NewExpression{Callee: callee, Arguments: args, NodeSpan: jsast.NewSpan(start, end)})
	return p.parseCallOrMember(expr)
}

// parseCallOrMemberNoCall parses only member-access chains (`.`/`[]`), not
// calls, since `new a.b.c()` must bind the call to the whole chain, not to
// a single segment the way ordinary postfix parsing would.
func (p *Parser) parseCallOrMemberNoCall(base jsast.Expr) jsast.Expr {
	for {
		switch {
		case p.eatPunct("."):
			prop := p.advance()
			base = &jsast.MemberExpression{
				Object: base, Property: jsast.NewIdentifier(prop.Value, prop.Span),
				Computed: false, NodeSpan: jsast.NewSpan(base.Span().Start, prop.Span.End),
			}
		case p.atPunct("["):
			p.advance()
			prop := p.parseExpression()
			end := p.expectPunct("]").End
			base = &jsast.MemberExpression{Object: base, Property: prop, Computed: true, NodeSpan: jsast.NewSpan(base.Span().Start, end)}
		default:
			return base
		}
	}
}

func (p *Parser) parseParenExpr() jsast.Expr {
	p.advance() // (
	expr := p.parseExpression()
	p.expectPunct(")")
	return expr
}

func (p *Parser) parseArrayLiteral() jsast.Expr {
	start := p.advance().Span.Start // [
	var elems []jsast.Expr
	for !p.atPunct("]") && p.cur.Kind != TEOF {
		if p.atPunct(",") {
			elems = append(elems, nil)
			p.advance()
			continue
		}
		if p.eatPunct("...") {
			elStart := p.cur.Span.Start
			arg := p.parseAssignExpr()
			elems = append(elems, &jsast.SpreadElement{Argument: arg, NodeSpan: jsast.NewSpan(elStart, arg.Span().End)})
		} else {
			elems = append(elems, p.parseAssignExpr())
		}
		if !p.eatPunct(",") {
			break
		}
	}
	end := p.expectPunct("]").End
	return &jsast.ArrayExpression{Elements: elems, NodeSpan: jsast.NewSpan(start, end)}
}

func (p *Parser) parseObjectLiteral() jsast.Expr {
	start := p.advance().Span.Start // {
	var props []jsast.ObjElem
	for !p.atPunct("}") && p.cur.Kind != TEOF {
		props = append(props, p.parseObjectElem())
		if !p.eatPunct(",") {
			break
		}
	}
	end := p.expectPunct("}").End
	return &jsast.ObjectExpression{Properties: props, NodeSpan: jsast.NewSpan(start, end)}
}

func (p *Parser) parseObjectElem() jsast.ObjElem {
	if p.eatPunct("...") {
		start := p.cur.Span.Start
		arg := p.parseAssignExpr()
		return &jsast.SpreadElement{Argument: arg, NodeSpan: jsast.NewSpan(start, arg.Span().End)}
	}

	async := false
	generator := false
	kind := jsast.MethodKindMethod
	if (p.atKeyword("get") || p.atKeyword("set")) && !p.peekBeginsValueOnly() {
		if p.atKeyword("get") {
			kind = jsast.MethodKindGet
		} else {
			kind = jsast.MethodKindSet
		}
		p.advance()
	} else if p.atKeyword("async") && !p.peekN(1).Is(TPunct, ":") && !p.peekN(1).Is(TPunct, "(") &&
		!p.peekN(1).Is(TPunct, ",") && !p.peekN(1).Is(TPunct, "}") {
		async = true
		p.advance()
	}
	if p.eatPunct("*") {
		generator = true
	}

	keyStart := p.cur.Span.Start
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
		fn := p.finishFunctionExpr(keyStart, async, generator)
		return &jsast.ObjectProperty{Key: key, Value: fn, Computed: computed, NodeSpan: jsast.NewSpan(keyStart, fn.Span().End)}
	}

	if p.eatPunct(":") {
		value := p.parseAssignExpr()
		return &jsast.ObjectProperty{Key: key, Value: value, Computed: computed, NodeSpan: jsast.NewSpan(keyStart, value.Span().End)}
	}

	// Shorthand property, possibly with a default (valid only inside a
	// pattern reparse, but accepted here too so `({a = 1} = x)` round-trips).
	id, _ := key.(*jsast.Identifier)
	if id == nil {
		id = jsast.NewIdentifier("", key.Span())
	}
	var value jsast.Expr = id
	span := jsast.NewSpan(keyStart, id.Span().End)
	if p.eatPunct("=") {
		def := p.parseAssignExpr()
		span = jsast.NewSpan(keyStart, def.Span().End)
		value = &jsast.AssignmentExpression{Operator: "=", Left: id, Right: def, NodeSpan: span}
	}
	_ = kind
	return &jsast.ObjectProperty{Key: id, Value: value, Shorthand: true, NodeSpan: span}
}

// peekBeginsValueOnly reports whether the token after a `get`/`set`
// keyword can only start a property value, meaning `get`/`set` here is
// itself the shorthand property name rather than an accessor marker.
func (p *Parser) peekBeginsValueOnly() bool {
	next := p.peekN(1)
	return next.Is(TPunct, ":") || next.Is(TPunct, ",") || next.Is(TPunct, "}") || next.Is(TPunct, "(")
}

func (p *Parser) parseTemplateLiteral() jsast.Expr {
	start := p.cur.Span.Start
	// p.cur is the opening backtick and the lexer sits just after it.
	segments := p.lexer.ScanTemplateSegments()
	end := p.lexer.Loc()
	var exprs []jsast.Expr
	for _, seg := range segments {
		sub := NewLexer(Source{Path: p.path, Contents: seg})
		subParser := newParserFromLexer(p.path, sub)
		exprs = append(exprs, subParser.parseExpression())
		p.errors = append(p.errors, subParser.errors...)
	}
	p.cur = p.lexer.Next() // resume tokenizing after the closing backtick
	return &jsast.TemplateLiteral{Expressions: exprs, NodeSpan: jsast.NewSpan(start, end)}
}

func newParserFromLexer(path string, l *Lexer) *Parser {
	p := &Parser{path: path, lexer: l}
	p.cur = p.lexer.Next()
	return p
}
