package parser

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/dhamidi/sulk/diag"
	"github.com/dhamidi/sulk/source"
	"github.com/dhamidi/sulk/symbol"
	"github.com/dhamidi/sulk/token"
)

type ExpectedKind int

const (
	ExpectToken ExpectedKind = iota
	ExpectKeyword
	ExpectLit
	ExpectStrLit
	ExpectVersionNumber
	ExpectIdent
	ExpectPath
	ExpectElementaryType
)

// Expected records something that would have been accepted at the current
// position. Tok is set for ExpectToken, Keyword for ExpectKeyword.
type Expected struct {
	Kind    ExpectedKind
	Tok     token.Kind
	Keyword symbol.Symbol
}

func ExpectedToken(k token.Kind) Expected {
	return Expected{Kind: ExpectToken, Tok: k}
}

func ExpectedKeyword(kw symbol.Symbol) Expected {
	return Expected{Kind: ExpectKeyword, Keyword: kw}
}

func (e Expected) String() string {
	switch e.Kind {
	case ExpectToken:
		return fmt.Sprintf("`%s`", e.Tok)
	case ExpectKeyword:
		return fmt.Sprintf("`%s`", e.Keyword)
	case ExpectLit:
		return "literal"
	case ExpectStrLit:
		return "string literal"
	case ExpectVersionNumber:
		return "`*`, `X`, `x`, decimal integer literal"
	case ExpectIdent:
		return "identifier"
	case ExpectPath:
		return "path"
	case ExpectElementaryType:
		return "elementary type name"
	}
	return "unknown"
}

// Expected returns a copy of the expectations gathered since the last advance.
func (p *Parser) Expected() []Expected {
	return slices.Clone(p.expected)
}

func (p *Parser) Check(k token.Kind) bool {
	ok := p.CheckNoExpect(k)
	if !ok {
		p.expected = append(p.expected, ExpectedToken(k))
	}
	return ok
}

// CheckNoExpect tests the current token without recording an expectation,
// which keeps speculative checks out of later diagnostics.
func (p *Parser) CheckNoExpect(k token.Kind) bool {
	return p.Token.Kind == k
}

func (p *Parser) Eat(k token.Kind) bool {
	if p.Check(k) {
		p.Bump()
		return true
	}
	return false
}

func (p *Parser) EatNoExpect(k token.Kind) bool {
	if p.CheckNoExpect(k) {
		p.Bump()
		return true
	}
	return false
}

// isKeyword matches kw against the current token. Inside Yul only Yul
// keywords act as keywords.
func (p *Parser) isKeyword(kw symbol.Symbol) bool {
	return p.Token.IsKeyword(kw) && (!p.inYul || kw.IsYulKeyword())
}

func (p *Parser) CheckKeyword(kw symbol.Symbol) bool {
	return p.CheckOrExpected(p.isKeyword(kw), ExpectedKeyword(kw))
}

func (p *Parser) EatKeyword(kw symbol.Symbol) bool {
	if p.CheckKeyword(kw) {
		p.Bump()
		return true
	}
	return false
}

func (p *Parser) ExpectKeyword(kw symbol.Symbol) *diag.Diag {
	if !p.EatKeyword(kw) {
		return p.UnexpectedError()
	}
	return nil
}

func (p *Parser) CheckIdent() bool {
	return p.CheckOrExpected(p.Token.IsIdent(), Expected{Kind: ExpectIdent})
}

func (p *Parser) CheckAnyIdent() bool {
	return p.CheckOrExpected(p.Token.IsNonReservedIdent(p.inYul), Expected{Kind: ExpectIdent})
}

func (p *Parser) CheckPath() bool {
	return p.CheckOrExpected(p.Token.IsIdent(), Expected{Kind: ExpectPath})
}

func (p *Parser) CheckLit() bool {
	return p.CheckOrExpected(p.Token.IsLit(), Expected{Kind: ExpectLit})
}

func (p *Parser) CheckStrLit() bool {
	return p.CheckOrExpected(p.Token.IsStrLit(), Expected{Kind: ExpectStrLit})
}

func (p *Parser) CheckElementaryType() bool {
	return p.CheckOrExpected(p.Token.IsElementaryType(), Expected{Kind: ExpectElementaryType})
}

// CheckVersionNumber accepts the first component of a version: `*`, `x`,
// `X` or a number.
func (p *Parser) CheckVersionNumber() bool {
	tok := p.Token
	ok := tok.Kind == token.Star ||
		tok.IsKeywordAny("x", "X") ||
		(tok.Kind == token.Literal && (tok.Lit == token.LitInteger || tok.Lit == token.LitRational))
	return p.CheckOrExpected(ok, Expected{Kind: ExpectVersionNumber})
}

func (p *Parser) CheckOrExpected(ok bool, e Expected) bool {
	if !ok {
		p.expected = append(p.expected, e)
	}
	return ok
}

// Expect consumes a token of kind k. When nothing else was expected at this
// position the error names k alone.
func (p *Parser) Expect(k token.Kind) (recovered bool, err *diag.Diag) {
	if len(p.expected) == 0 {
		if p.CheckNoExpect(k) {
			p.Bump()
			return false, nil
		}
		return false, p.unexpectedErrorWith(k)
	}
	return p.ExpectOneOf([]token.Kind{k}, nil)
}

func (p *Parser) ExpectSemi() *diag.Diag {
	_, err := p.Expect(token.Semi)
	return err
}

// ExpectOneOf consumes the current token if it is edible and leaves it in
// place if it is inedible. Anything else is an error listing every
// expectation gathered at this position.
func (p *Parser) ExpectOneOf(edible, inedible []token.Kind) (recovered bool, err *diag.Diag) {
	switch {
	case slices.Contains(edible, p.Token.Kind):
		p.Bump()
		return false, nil
	case slices.Contains(inedible, p.Token.Kind):
		return false, nil
	case !p.Token.IsEOF() && p.hasLastUnexpected && p.lastUnexpectedSpan == p.Token.Span:
		panic("parser: called unexpected twice on the same token")
	}
	return false, p.expectedOneOfNotFound(edible, inedible)
}

// Unexpected fails the current production at the current token.
func Unexpected[T any](p *Parser) (T, *diag.Diag) {
	var zero T
	return zero, p.UnexpectedError()
}

func (p *Parser) UnexpectedError() *diag.Diag {
	recovered, err := p.ExpectOneOf(nil, nil)
	if err == nil {
		panic(fmt.Sprintf("parser: unexpected error path returned success (recovered=%v)", recovered))
	}
	return err
}

func (p *Parser) unexpectedErrorWith(k token.Kind) *diag.Diag {
	var prevSpan source.Span
	switch {
	case p.PrevToken.Span.IsDummy():
		// Nothing precedes an empty stream; point at the token itself.
		prevSpan = p.Token.Span
	case p.Token.IsEOF():
		prevSpan = p.PrevToken.Span
	default:
		prevSpan = p.PrevToken.Span.ShrinkToHi()
	}
	span := p.Token.Span

	labelExp := fmt.Sprintf("expected `%s`", k)
	err := p.Dcx().Errf("%s, found %s", labelExp, p.Token.FullDescription()).WithSpan(span)
	if !p.isMultiline(prevSpan.Until(span)) {
		err.SpanLabel(span, labelExp)
	} else {
		err.SpanLabel(prevSpan, labelExp).SpanLabel(span, "unexpected token")
	}
	return err
}

func (p *Parser) expectedOneOfNotFound(edible, inedible []token.Kind) *diag.Diag {
	var names []string
	add := func(e Expected) {
		if !p.suggestsFound(e) {
			names = append(names, e.String())
		}
	}
	for _, k := range edible {
		add(ExpectedToken(k))
	}
	for _, k := range inedible {
		add(ExpectedToken(k))
	}
	for _, e := range p.expected {
		add(e)
	}
	sort.Strings(names)
	names = slices.Compact(names)

	expect := orList(names)
	actual := p.Token.FullDescription()
	var (
		msg       string
		labelSpan source.Span
		labelExp  string
	)
	switch n := len(names); {
	case n == 0:
		msg = "unexpected token: " + actual
		labelSpan = p.PrevToken.Span
		labelExp = "unexpected token after this"
	case n == 1:
		msg = fmt.Sprintf("expected %s, found %s", expect, actual)
		labelSpan = p.PrevToken.Span.ShrinkToHi()
		labelExp = "expected " + expect
	default:
		msg = fmt.Sprintf("expected one of %s, found %s", expect, actual)
		short := expect
		if n > 6 {
			short = fmt.Sprintf("%d possible tokens", n)
		}
		labelSpan = p.PrevToken.Span.ShrinkToHi()
		labelExp = "expected one of " + short
	}
	if p.Token.IsEOF() {
		labelSpan = p.PrevToken.Span
	}

	p.lastUnexpectedSpan = p.Token.Span
	p.hasLastUnexpected = true

	err := p.Dcx().Err(msg).WithSpan(p.Token.Span)
	if p.PrevToken.Span.IsDummy() || !p.isMultiline(p.Token.Span.ShrinkToHi().Until(labelSpan.ShrinkToLo())) {
		// Only whitespace on one line separates the two; the token alone is enough.
		err.SpanLabel(p.Token.Span, labelExp)
	} else {
		err.SpanLabel(labelSpan, labelExp).SpanLabel(p.Token.Span, "unexpected token")
	}
	return err
}

// suggestsFound reports whether e would merely name the token that was
// found, such as a keyword expectation for an identifier spelling it.
func (p *Parser) suggestsFound(e Expected) bool {
	switch e.Kind {
	case ExpectToken:
		return e.Tok == p.Token.Kind
	case ExpectKeyword:
		return p.Token.Kind == token.Ident && p.Token.Symbol == e.Keyword
	}
	return false
}

func (p *Parser) isMultiline(sp source.Span) bool {
	if p.sess.Sources == nil {
		return sp.Start.Line != sp.End.Line
	}
	return p.sess.Sources.IsMultiline(sp)
}

// orList joins items as "a", "a or b" or "a, b, or c".
func orList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", or " + items[len(items)-1]
}
