// Package jsparser turns JavaScript source text into the jsast tree that
// internal/traverse walks. It implements only the subset of ECMAScript
// grammar a static capability scan needs: declarations, destructuring,
// import/export forms, and every expression shape that can reach a module
// or a global. Type annotations, JSX, and decorators are not recognized;
// a file using them degrades to a best-effort parse (see Parse).
package jsparser

import (
	"strings"

	"github.com/cybertier/npm-dependency-guardian/internal/jsast"
)

// Parser wraps a Lexer with a small token buffer so the grammar can peek
// one or two tokens ahead (e.g. to tell `(a, b)` a parenthesized sequence
// from `(a, b) => ...` an arrow parameter list).
type Parser struct {
	path   string
	lexer  *Lexer
	cur    Token
	peeked []Token
	errors []*Error
}

// Parse scans and parses one source file into a Program. The Program is
// always returned; when any syntax error was recovered, the returned error
// is non-nil and joins all of them, and the Program holds whatever the
// parser recovered around them.
func Parse(source Source) (*jsast.Program, error) {
	source.Contents = stripShebang(source.Contents)
	p := newParser(source)
	prog := p.parseProgram()
	if len(p.errors) == 0 {
		return prog, nil
	}
	return prog, joinErrors(p.errors)
}

func stripShebang(src string) string {
	if strings.HasPrefix(src, "#!") {
		if i := strings.IndexByte(src, '\n'); i >= 0 {
			return src[i:]
		}
		return ""
	}
	return src
}

func joinErrors(errs []*Error) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return &multiError{msgs: msgs}
}

type multiError struct{ msgs []string }

func (m *multiError) Error() string { return strings.Join(m.msgs, "; ") }

func newParser(source Source) *Parser {
	p := &Parser{path: source.Path, lexer: NewLexer(source)}
	p.cur = p.lexer.Next()
	return p
}

// --- token buffer ---

// peekN returns the token n tokens ahead of cur (peekN(0) == cur).
func (p *Parser) peekN(n int) Token {
	if n == 0 {
		return p.cur
	}
	for len(p.peeked) < n {
		p.peeked = append(p.peeked, p.lexer.Next())
	}
	return p.peeked[n-1]
}

func (p *Parser) advance() Token {
	t := p.cur
	if len(p.peeked) > 0 {
		p.cur = p.peeked[0]
		p.peeked = p.peeked[1:]
	} else {
		p.cur = p.lexer.Next()
	}
	return t
}

func (p *Parser) at(kind TokenKind, value string) bool { return p.cur.Is(kind, value) }
func (p *Parser) atPunct(v string) bool                { return p.at(TPunct, v) }
func (p *Parser) atKeyword(v string) bool              { return p.at(TKeyword, v) }

func (p *Parser) eatPunct(v string) bool {
	if p.atPunct(v) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) eatKeyword(v string) bool {
	if p.atKeyword(v) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expectPunct(v string) jsast.Span {
	tok := p.cur
	if p.atPunct(v) {
		p.advance()
		return tok.Span
	}
	p.fail("expected '" + v + "'")
	return tok.Span
}

func (p *Parser) fail(msg string) {
	p.errors = append(p.errors, &Error{Path: p.path, Span: p.cur.Span, Message: msg})
}

// snapshot/restore support the speculative parses the grammar needs to
// disambiguate a parenthesized expression from an arrow parameter list,
// and a bare object/array literal from a destructuring assignment target.
type snapshot struct {
	lexer  Lexer
	cur    Token
	peeked []Token
	errN   int
}

func (p *Parser) snapshot() snapshot {
	peeked := make([]Token, len(p.peeked))
	copy(peeked, p.peeked)
	return snapshot{lexer: *p.lexer, cur: p.cur, peeked: peeked, errN: len(p.errors)}
}

func (p *Parser) restore(s snapshot) {
	l := s.lexer
	p.lexer = &l
	p.cur = s.cur
	p.peeked = s.peeked
	p.errors = p.errors[:s.errN]
}

// consumeSemi implements the lenient automatic-semicolon-insertion this
// scanner needs: an explicit `;` is consumed when present, otherwise a
// statement boundary is assumed (closing brace, EOF, or a newline before
// the next token) without validating ASI's stricter no-newline rules.
func (p *Parser) consumeSemi() {
	if p.eatPunct(";") {
		return
	}
}

func (p *Parser) parseProgram() *jsast.Program {
	start := p.cur.Span.Start
	var body []jsast.Stmt
	for p.cur.Kind != TEOF {
		s := p.parseStmtRecovering()
		if s != nil {
			body = append(body, s)
		}
	}
	return jsast.NewProgram(body, jsast.NewSpan(start, p.cur.Span.End))
}

// parseStmtRecovering parses one top-level/block statement, and on
// failure skips forward to the next likely statement boundary (`;`, `}`,
// or EOF) so one bad construct doesn't abort the whole file.
func (p *Parser) parseStmtRecovering() (result jsast.Stmt) {
	before := len(p.errors)
	startOffset := p.lexer.offset
	result = p.parseStmt()
	if len(p.errors) > before && p.lexer.offset == startOffset {
		// parseStmt made no progress; force it so we don't loop forever.
		p.advance()
	}
	if len(p.errors) > before {
		p.resync()
	}
	return result
}

func (p *Parser) resync() {
	for p.cur.Kind != TEOF {
		if p.eatPunct(";") {
			return
		}
		if p.atPunct("}") {
			return
		}
		p.advance()
	}
}
