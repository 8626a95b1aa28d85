package jsparser

import "github.com/cybertier/npm-dependency-guardian/internal/jsast"

// TokenKind tags what a Token holds. JS has far more keyword and
// punctuator spellings than escalier's own grammar, so rather than one
// struct per spelling (as escalier's Token sum type does) a single
// Token carries its Kind plus a Value string; keywords and punctuators
// are told apart by comparing Value against the keywords/punctuator
// tables below.
type TokenKind int

const (
	TEOF TokenKind = iota
	TIdent
	TKeyword
	TNumber
	TString
	TRegex
	TPunct
)

// Token is one lexical unit plus the span it covers.
type Token struct {
	Kind  TokenKind
	Value string
	Num   float64
	Span  jsast.Span
	// NewlineBefore records whether a line terminator separated this
	// token from the previous one, which the parser uses for its lenient
	// automatic-semicolon-insertion handling.
	NewlineBefore bool
}

func (t Token) Is(kind TokenKind, value string) bool {
	return t.Kind == kind && t.Value == value
}

var keywords = map[string]bool{
	"var": true, "let": true, "const": true, "function": true, "return": true,
	"if": true, "else": true, "for": true, "while": true, "do": true,
	"switch": true, "case": true, "default": true, "break": true, "continue": true,
	"new": true, "class": true, "extends": true, "static": true, "get": true, "set": true,
	"throw": true, "try": true, "catch": true, "finally": true,
	"typeof": true, "instanceof": true, "in": true, "of": true, "void": true, "delete": true,
	"yield": true, "async": true, "await": true, "this": true, "super": true,
	"null": true, "true": true, "false": true,
	"import": true, "export": true, "from": true, "as": true,
}

// multiCharPunctuators is ordered longest-first so the lexer's greedy
// match picks `===` over `==` over `=`.
var multiCharPunctuators = []string{
	">>>=", "...", "===", "!==", "**=", "<<=", ">>=", ">>>", "&&=", "||=", "??=",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "?.", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "**", "<<", ">>",
}

var singleCharPunctuators = "{}()[].;,<>+-*/%&|^!~?:=#"
