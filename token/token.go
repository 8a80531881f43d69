package token

import (
	"fmt"

	"github.com/dhamidi/sulk/source"
	"github.com/dhamidi/sulk/symbol"
)

type Kind int

const (
	EOF Kind = iota
	Unknown
	Whitespace
	Comment
	DocComment

	Ident
	Literal

	// Delimiters
	OpenParen
	CloseParen
	OpenBrace
	CloseBrace
	OpenBracket
	CloseBracket

	// Punctuation
	Semi
	Comma
	Dot
	Question
	Colon
	Walrus
	FatArrow
	Arrow

	// Operators
	Assign
	EqEq
	Ne
	Lt
	Le
	Gt
	Ge
	AndAnd
	OrOr
	Not
	Tilde
	Plus
	Minus
	Star
	StarStar
	Slash
	Percent
	Amp
	Pipe
	Caret
	Shl
	Shr
	Sar
	PlusPlus
	MinusMinus
	PlusEq
	MinusEq
	StarEq
	SlashEq
	PercentEq
	AmpEq
	PipeEq
	CaretEq
	ShlEq
	ShrEq
	SarEq
)

var kindNames = map[Kind]string{
	EOF:          "<eof>",
	Unknown:      "<unknown>",
	Whitespace:   "<whitespace>",
	Comment:      "<comment>",
	DocComment:   "<doc-comment>",
	Ident:        "identifier",
	Literal:      "literal",
	OpenParen:    "(",
	CloseParen:   ")",
	OpenBrace:    "{",
	CloseBrace:   "}",
	OpenBracket:  "[",
	CloseBracket: "]",
	Semi:         ";",
	Comma:        ",",
	Dot:          ".",
	Question:     "?",
	Colon:        ":",
	Walrus:       ":=",
	FatArrow:     "=>",
	Arrow:        "->",
	Assign:       "=",
	EqEq:         "==",
	Ne:           "!=",
	Lt:           "<",
	Le:           "<=",
	Gt:           ">",
	Ge:           ">=",
	AndAnd:       "&&",
	OrOr:         "||",
	Not:          "!",
	Tilde:        "~",
	Plus:         "+",
	Minus:        "-",
	Star:         "*",
	StarStar:     "**",
	Slash:        "/",
	Percent:      "%",
	Amp:          "&",
	Pipe:         "|",
	Caret:        "^",
	Shl:          "<<",
	Shr:          ">>",
	Sar:          ">>>",
	PlusPlus:     "++",
	MinusMinus:   "--",
	PlusEq:       "+=",
	MinusEq:      "-=",
	StarEq:       "*=",
	SlashEq:      "/=",
	PercentEq:    "%=",
	AmpEq:        "&=",
	PipeEq:       "|=",
	CaretEq:      "^=",
	ShlEq:        "<<=",
	ShrEq:        ">>=",
	SarEq:        ">>>=",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Delimiter int

const (
	Parenthesis Delimiter = iota
	Brace
	Bracket
)

func OpenDelim(d Delimiter) Kind {
	switch d {
	case Brace:
		return OpenBrace
	case Bracket:
		return OpenBracket
	}
	return OpenParen
}

func CloseDelim(d Delimiter) Kind {
	switch d {
	case Brace:
		return CloseBrace
	case Bracket:
		return CloseBracket
	}
	return CloseParen
}

func (k Kind) IsOpenDelim() bool {
	return k == OpenParen || k == OpenBrace || k == OpenBracket
}

func (k Kind) IsCloseDelim() bool {
	return k == CloseParen || k == CloseBrace || k == CloseBracket
}

type LitKind int

const (
	LitNone LitKind = iota
	LitInteger
	LitRational
	LitStr
	LitUnicodeStr
	LitHexStr
	LitErr
)

func (k LitKind) IsStr() bool {
	return k == LitStr || k == LitUnicodeStr || k == LitHexStr
}

// Token is an immutable lexical unit. Symbol holds the source text of
// identifiers, literals and comments.
type Token struct {
	Kind   Kind
	Span   source.Span
	Symbol symbol.Symbol
	Lit    LitKind
}

// Dummy is the placeholder a parser starts from before its first advance.
var Dummy = Token{Kind: Question}

func New(kind Kind, span source.Span) Token {
	return Token{Kind: kind, Span: span}
}

func NewIdent(name symbol.Symbol, span source.Span) Token {
	return Token{Kind: Ident, Span: span, Symbol: name}
}

func NewLit(kind LitKind, text symbol.Symbol, span source.Span) Token {
	return Token{Kind: Literal, Span: span, Symbol: text, Lit: kind}
}

// EOFToken returns the synthetic end-of-input token.
func EOFToken() Token {
	return Token{Kind: EOF}
}

func (t Token) IsDummy() bool {
	return t.Kind == Question && t.Span.IsDummy()
}

func (t Token) IsEOF() bool {
	return t.Kind == EOF
}

func (t Token) IsComment() bool {
	return t.Kind == Comment || t.Kind == DocComment
}

func (t Token) IsIdent() bool {
	return t.Kind == Ident
}

// Ident returns the identifier carried by t, keywords included.
func (t Token) Ident() (symbol.Ident, bool) {
	if t.Kind != Ident {
		return symbol.Ident{}, false
	}
	return symbol.NewIdent(t.Symbol, t.Span), true
}

func (t Token) IsKeyword(kw symbol.Symbol) bool {
	return t.Kind == Ident && t.Symbol == kw
}

func (t Token) IsKeywordAny(kws ...symbol.Symbol) bool {
	for _, kw := range kws {
		if t.IsKeyword(kw) {
			return true
		}
	}
	return false
}

func (t Token) IsReservedIdent(inYul bool) bool {
	return t.Kind == Ident && t.Symbol.IsReserved(inYul)
}

func (t Token) IsNonReservedIdent(inYul bool) bool {
	return t.Kind == Ident && !t.Symbol.IsReserved(inYul)
}

// IsLit reports whether t is a literal, counting the boolean keywords.
func (t Token) IsLit() bool {
	return t.Kind == Literal || t.IsKeywordAny(symbol.True, symbol.False)
}

func (t Token) IsStrLit() bool {
	return t.Kind == Literal && t.Lit.IsStr()
}

func (t Token) IsElementaryType() bool {
	return t.Kind == Ident && t.Symbol.IsElementaryType()
}

func (t Token) String() string {
	switch t.Kind {
	case Ident, Literal, Comment, DocComment:
		return string(t.Symbol)
	case Unknown:
		if t.Symbol != "" {
			return string(t.Symbol)
		}
	}
	return t.Kind.String()
}

// Description returns a short noun for t, or "" when the token speaks for itself.
func (t Token) Description() string {
	switch t.Kind {
	case Ident:
		switch {
		case t.Symbol.IsUsedKeyword():
			return "keyword"
		case t.Symbol.IsUnusedKeyword():
			return "reserved keyword"
		}
	case Literal:
		if t.Lit.IsStr() {
			return "string literal"
		}
		return "literal"
	case DocComment:
		return "doc-comment"
	case Unknown:
		return "unknown token"
	}
	return ""
}

// FullDescription renders t for "found ..." messages.
func (t Token) FullDescription() string {
	if desc := t.Description(); desc != "" {
		return fmt.Sprintf("%s `%s`", desc, t)
	}
	return fmt.Sprintf("`%s`", t)
}
