package parser

import (
	"github.com/dhamidi/sulk/diag"
	"github.com/dhamidi/sulk/lexer"
	"github.com/dhamidi/sulk/source"
	"github.com/dhamidi/sulk/token"
)

// Session is the state shared by every parser of one compilation: the
// diagnostic context and the source map.
type Session struct {
	Diag    *diag.Context
	Sources *source.Map
}

func NewSession(sources *source.Map, dcx *diag.Context) *Session {
	if sources == nil {
		sources = source.NewMap()
	}
	if dcx == nil {
		dcx = diag.NewContext(nil)
	}
	return &Session{Diag: dcx, Sources: sources}
}

type Parser struct {
	sess *Session

	// Token is the current token, PrevToken the one before it.
	Token     token.Token
	PrevToken token.Token

	// expected is cleared on every advance.
	expected           []Expected
	lastUnexpectedSpan source.Span
	hasLastUnexpected  bool

	inYul      bool
	inContract bool

	tokens []token.Token
	pos    int
}

// New creates a parser over tokens and advances to the first one. It panics
// if tokens contains comments.
func New(sess *Session, tokens []token.Token) *Parser {
	for _, tok := range tokens {
		if tok.IsComment() {
			panic("parser: comments should be stripped before parsing")
		}
	}
	p := &Parser{
		sess:      sess,
		Token:     token.Dummy,
		PrevToken: token.Dummy,
		tokens:    tokens,
	}
	p.Bump()
	return p
}

// FromSourceCode registers src under name in the session's source map and
// returns a parser over its tokens.
func FromSourceCode(sess *Session, name, src string) *Parser {
	return FromSourceFile(sess, sess.Sources.NewSourceFile(name, src))
}

func FromSourceFile(sess *Session, f *source.File) *Parser {
	return New(sess, lexer.FromSourceFile(f).Tokens())
}

func (p *Parser) Session() *Session {
	return p.sess
}

func (p *Parser) Dcx() *diag.Context {
	return p.sess.Diag
}

func (p *Parser) InYul() bool {
	return p.inYul
}

func (p *Parser) InContract() bool {
	return p.inContract
}

// Bump advances by one token. Past the end of input the current token is
// the end-of-input token, anchored at the span of the last real token.
func (p *Parser) Bump() {
	next := token.EOFToken()
	if p.pos < len(p.tokens) {
		next = p.tokens[p.pos]
		p.pos++
	}
	if next.Span.IsDummy() {
		next.Span = p.Token.Span
	}
	p.BumpWith(next)
}

// BumpWith advances using next as the new current token.
func (p *Parser) BumpWith(next token.Token) {
	p.PrevToken = p.Token
	p.Token = next
	p.expected = p.expected[:0]
}

// LookAhead returns the token dist tokens ahead of the current one, or the
// end-of-input token past the end.
func (p *Parser) LookAhead(dist int) token.Token {
	if dist == 0 {
		return p.Token
	}
	if i := p.pos + dist - 1; i >= 0 && i < len(p.tokens) {
		return p.tokens[i]
	}
	return token.EOFToken()
}

func LookAheadWith[R any](p *Parser, dist int, f func(token.Token) R) R {
	return f(p.LookAhead(dist))
}

// WithContract runs f with the contract-body flag set and restores the
// previous value on every exit path.
func WithContract[T any](p *Parser, f func(*Parser) (T, *diag.Diag)) (T, *diag.Diag) {
	old := p.inContract
	p.inContract = true
	defer func() { p.inContract = old }()
	return f(p)
}

// WithYul runs f in inline-assembly mode, where only Yul keywords are
// reserved, and restores the previous mode on every exit path.
func WithYul[T any](p *Parser, f func(*Parser) (T, *diag.Diag)) (T, *diag.Diag) {
	old := p.inYul
	p.inYul = true
	defer func() { p.inYul = old }()
	return f(p)
}
