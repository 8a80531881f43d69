package lexer

import (
	"unicode/utf8"

	"github.com/dhamidi/sulk/source"
	"github.com/dhamidi/sulk/symbol"
	"github.com/dhamidi/sulk/token"
)

type Lexer struct {
	input  string
	file   string
	pos    int
	line   int
	column int
}

func New(input, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		pos:    0,
		line:   1,
		column: 1,
	}
}

func FromSourceFile(f *source.File) *Lexer {
	return New(f.Src, f.Name)
}

func (l *Lexer) Position() source.Position {
	return source.Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

// Tokens lexes the remaining input and returns every token except
// whitespace, comments and the final end-of-input marker.
func (l *Lexer) Tokens() []token.Token {
	var tokens []token.Token
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			return tokens
		}
		if tok.Kind == token.Whitespace || tok.IsComment() {
			continue
		}
		tokens = append(tokens, tok)
	}
}

// AllTokens is like Tokens but keeps comments.
func (l *Lexer) AllTokens() []token.Token {
	var tokens []token.Token
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			return tokens
		}
		if tok.Kind == token.Whitespace {
			continue
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) NextToken() token.Token {
	startPos := l.Position()

	if l.pos >= len(l.input) {
		return token.Token{Kind: token.EOF, Span: source.Span{Start: startPos, End: startPos}}
	}

	ch := l.peek()

	if ch == '/' && l.peekN(1) == '/' {
		return l.scanLineComment(startPos)
	}
	if ch == '/' && l.peekN(1) == '*' {
		return l.scanBlockComment(startPos)
	}

	if isSpace(ch) {
		return l.scanWhitespace(startPos)
	}

	if isIdentStart(ch) {
		return l.scanIdentOrKeyword(startPos)
	}

	if isDigit(ch) || (ch == '.' && isDigit(l.peekN(1))) {
		return l.scanNumber(startPos)
	}

	if ch == '"' || ch == '\'' {
		return l.scanString(startPos, token.LitStr)
	}

	return l.scanOperator(startPos)
}

func (l *Lexer) scanWhitespace(start source.Position) token.Token {
	for isSpace(l.peek()) {
		l.advance()
	}
	return l.token(token.Whitespace, start)
}

func (l *Lexer) scanLineComment(start source.Position) token.Token {
	l.advanceN(2)
	kind := token.Comment
	if l.peek() == '/' && l.peekN(1) != '/' {
		kind = token.DocComment
	}
	for l.peek() != 0 && l.peek() != '\n' {
		l.advance()
	}
	return l.text(kind, start)
}

func (l *Lexer) scanBlockComment(start source.Position) token.Token {
	l.advanceN(2)
	kind := token.Comment
	if l.peek() == '*' && l.peekN(1) != '*' && l.peekN(1) != '/' {
		kind = token.DocComment
	}
	for {
		if l.pos >= len(l.input) {
			break
		}
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			break
		}
		l.advance()
	}
	return l.text(kind, start)
}

func (l *Lexer) scanIdentOrKeyword(start source.Position) token.Token {
	for isIdentContinue(l.peek()) {
		l.advance()
	}
	word := l.input[start.Offset:l.pos]

	// Prefixed string literals: unicode"..." and hex"...".
	if q := l.peek(); q == '"' || q == '\'' {
		switch symbol.Symbol(word) {
		case symbol.Unicode:
			return l.scanString(start, token.LitUnicodeStr)
		case symbol.Hex:
			return l.scanString(start, token.LitHexStr)
		}
	}

	return token.NewIdent(symbol.Symbol(word), l.span(start))
}

func (l *Lexer) scanNumber(start source.Position) token.Token {
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		l.advanceN(2)
		for isHexDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
		return l.lit(token.LitInteger, start)
	}

	kind := token.LitInteger
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}

	if l.peek() == '.' && isDigit(l.peekN(1)) {
		kind = token.LitRational
		l.advance()
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}

	if (l.peek() == 'e' || l.peek() == 'E') &&
		(isDigit(l.peekN(1)) || (l.peekN(1) == '-' && isDigit(l.peekN(2)))) {
		kind = token.LitRational
		l.advance()
		if l.peek() == '-' {
			l.advance()
		}
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}

	return l.lit(kind, start)
}

func (l *Lexer) scanString(start source.Position, kind token.LitKind) token.Token {
	quote := l.advance()
	for l.peek() != 0 && l.peek() != quote && l.peek() != '\n' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() != quote {
		return l.lit(token.LitErr, start)
	}
	l.advance()
	return l.lit(kind, start)
}

func (l *Lexer) scanOperator(start source.Position) token.Token {
	ch := l.peek()

	switch ch {
	case '(':
		l.advance()
		return l.token(token.OpenParen, start)
	case ')':
		l.advance()
		return l.token(token.CloseParen, start)
	case '{':
		l.advance()
		return l.token(token.OpenBrace, start)
	case '}':
		l.advance()
		return l.token(token.CloseBrace, start)
	case '[':
		l.advance()
		return l.token(token.OpenBracket, start)
	case ']':
		l.advance()
		return l.token(token.CloseBracket, start)
	case ';':
		l.advance()
		return l.token(token.Semi, start)
	case ',':
		l.advance()
		return l.token(token.Comma, start)
	case '.':
		l.advance()
		return l.token(token.Dot, start)
	case '?':
		l.advance()
		return l.token(token.Question, start)
	case '~':
		l.advance()
		return l.token(token.Tilde, start)

	case ':':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(token.Walrus, start)
		}
		l.advance()
		return l.token(token.Colon, start)

	case '=':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(token.EqEq, start)
		}
		if l.peekN(1) == '>' {
			l.advanceN(2)
			return l.token(token.FatArrow, start)
		}
		l.advance()
		return l.token(token.Assign, start)

	case '!':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(token.Ne, start)
		}
		l.advance()
		return l.token(token.Not, start)

	case '<':
		if l.peekN(1) == '<' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(token.ShlEq, start)
			}
			l.advanceN(2)
			return l.token(token.Shl, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(token.Le, start)
		}
		l.advance()
		return l.token(token.Lt, start)

	case '>':
		if l.peekN(1) == '>' {
			if l.peekN(2) == '>' {
				if l.peekN(3) == '=' {
					l.advanceN(4)
					return l.token(token.SarEq, start)
				}
				l.advanceN(3)
				return l.token(token.Sar, start)
			}
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(token.ShrEq, start)
			}
			l.advanceN(2)
			return l.token(token.Shr, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(token.Ge, start)
		}
		l.advance()
		return l.token(token.Gt, start)

	case '&':
		if l.peekN(1) == '&' {
			l.advanceN(2)
			return l.token(token.AndAnd, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(token.AmpEq, start)
		}
		l.advance()
		return l.token(token.Amp, start)

	case '|':
		if l.peekN(1) == '|' {
			l.advanceN(2)
			return l.token(token.OrOr, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(token.PipeEq, start)
		}
		l.advance()
		return l.token(token.Pipe, start)

	case '^':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(token.CaretEq, start)
		}
		l.advance()
		return l.token(token.Caret, start)

	case '+':
		if l.peekN(1) == '+' {
			l.advanceN(2)
			return l.token(token.PlusPlus, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(token.PlusEq, start)
		}
		l.advance()
		return l.token(token.Plus, start)

	case '-':
		if l.peekN(1) == '-' {
			l.advanceN(2)
			return l.token(token.MinusMinus, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(token.MinusEq, start)
		}
		if l.peekN(1) == '>' {
			l.advanceN(2)
			return l.token(token.Arrow, start)
		}
		l.advance()
		return l.token(token.Minus, start)

	case '*':
		if l.peekN(1) == '*' {
			l.advanceN(2)
			return l.token(token.StarStar, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(token.StarEq, start)
		}
		l.advance()
		return l.token(token.Star, start)

	case '/':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(token.SlashEq, start)
		}
		l.advance()
		return l.token(token.Slash, start)

	case '%':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(token.PercentEq, start)
		}
		l.advance()
		return l.token(token.Percent, start)
	}

	_, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.advanceN(size)
	return l.text(token.Unknown, start)
}

func (l *Lexer) span(start source.Position) source.Span {
	return source.Span{Start: start, End: l.Position()}
}

func (l *Lexer) token(kind token.Kind, start source.Position) token.Token {
	return token.New(kind, l.span(start))
}

func (l *Lexer) text(kind token.Kind, start source.Position) token.Token {
	tok := token.New(kind, l.span(start))
	tok.Symbol = symbol.Symbol(l.input[start.Offset:l.pos])
	return tok
}

func (l *Lexer) lit(kind token.LitKind, start source.Position) token.Token {
	return token.NewLit(kind, symbol.Symbol(l.input[start.Offset:l.pos]), l.span(start))
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$'
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
