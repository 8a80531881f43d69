package lexer

import (
	"testing"

	"github.com/dhamidi/sulk/token"
)

func TestLexerNew(t *testing.T) {
	lexer := New("contract C {}", "test.sol")
	pos := lexer.Position()

	if pos.File != "test.sol" {
		t.Errorf("File = %q, want %q", pos.File, "test.sol")
	}
	if pos.Line != 1 {
		t.Errorf("Line = %d, want %d", pos.Line, 1)
	}
	if pos.Column != 1 {
		t.Errorf("Column = %d, want %d", pos.Column, 1)
	}
	if pos.Offset != 0 {
		t.Errorf("Offset = %d, want %d", pos.Offset, 0)
	}
}

func TestLexerTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.Kind
	}{
		{"", nil},
		{"contract", []token.Kind{token.Ident}},
		{"contract C {}", []token.Kind{token.Ident, token.Ident, token.OpenBrace, token.CloseBrace}},
		{"f(x, y);", []token.Kind{token.Ident, token.OpenParen, token.Ident, token.Comma, token.Ident, token.CloseParen, token.Semi}},
		{"// comment\nx", []token.Kind{token.Ident}},
		{"/* block */ x", []token.Kind{token.Ident}},
		{"/// doc\nx", []token.Kind{token.Ident}},
		{"a.b.c", []token.Kind{token.Ident, token.Dot, token.Ident, token.Dot, token.Ident}},
		{"let x := 1", []token.Kind{token.Ident, token.Ident, token.Walrus, token.Literal}},
		{"=> -> =", []token.Kind{token.FatArrow, token.Arrow, token.Assign}},
		{"** *= *", []token.Kind{token.StarStar, token.StarEq, token.Star}},
		{"<< >> >>> >>>=", []token.Kind{token.Shl, token.Shr, token.Sar, token.SarEq}},
		{"&& || !", []token.Kind{token.AndAnd, token.OrOr, token.Not}},
		{"++ -- += -=", []token.Kind{token.PlusPlus, token.MinusMinus, token.PlusEq, token.MinusEq}},
		{"a # b", []token.Kind{token.Ident, token.Unknown, token.Ident}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := New(tt.input, "test.sol").Tokens()
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d tokens, want %d", len(got), len(tt.expected))
			}
			for i := range got {
				if got[i].Kind != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i].Kind, tt.expected[i])
				}
			}
		})
	}
}

func TestLexerLiterals(t *testing.T) {
	tests := []struct {
		input string
		lit   token.LitKind
	}{
		{"0", token.LitInteger},
		{"123", token.LitInteger},
		{"1_000_000", token.LitInteger},
		{"0xDEAD_BEEF", token.LitInteger},
		{"3.14", token.LitRational},
		{".5", token.LitRational},
		{"1e10", token.LitRational},
		{"2e-3", token.LitRational},
		{`"hello"`, token.LitStr},
		{`'single'`, token.LitStr},
		{`"esc\"aped"`, token.LitStr},
		{`unicode"héllo"`, token.LitUnicodeStr},
		{`hex"00ff"`, token.LitHexStr},
		{`"unterminated`, token.LitErr},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := New(tt.input, "test.sol").Tokens()
			if len(tokens) != 1 {
				t.Fatalf("got %d tokens, want 1", len(tokens))
			}
			tok := tokens[0]
			if tok.Kind != token.Literal {
				t.Errorf("Kind = %v, want %v", tok.Kind, token.Literal)
			}
			if tok.Lit != tt.lit {
				t.Errorf("Lit = %v, want %v", tok.Lit, tt.lit)
			}
			if string(tok.Symbol) != tt.input {
				t.Errorf("Symbol = %q, want %q", tok.Symbol, tt.input)
			}
		})
	}
}

func TestLexerSpans(t *testing.T) {
	tokens := New("a\n  bc", "test.sol").Tokens()
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens, want 2", len(tokens))
	}

	b := tokens[1]
	if b.Span.Start.Line != 2 || b.Span.Start.Column != 3 {
		t.Errorf("start = %d:%d, want 2:3", b.Span.Start.Line, b.Span.Start.Column)
	}
	if b.Span.End.Offset != 6 || b.Span.End.Column != 5 {
		t.Errorf("end = offset %d column %d, want offset 6 column 5", b.Span.End.Offset, b.Span.End.Column)
	}
	if b.Span.Start.File != "test.sol" {
		t.Errorf("File = %q, want %q", b.Span.Start.File, "test.sol")
	}
}

func TestLexerAllTokensKeepsComments(t *testing.T) {
	tokens := New("/// doc\n/* c */ x // tail", "test.sol").AllTokens()
	want := []token.Kind{token.DocComment, token.Comment, token.Ident, token.Comment}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i := range want {
		if tokens[i].Kind != want[i] {
			t.Errorf("token %d: got %v, want %v", i, tokens[i].Kind, want[i])
		}
	}
}
