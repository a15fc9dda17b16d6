package sexpr

import (
	"testing"

	"github.com/dhamidi/blocks/ast"
)

func TestLexerTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"(+ 1 2)", []TokenKind{TokenOpen, TokenSymbol, TokenWhitespace, TokenNumber, TokenWhitespace, TokenNumber, TokenClose, TokenEOF}},
		{"[x]", []TokenKind{TokenOpen, TokenSymbol, TokenClose, TokenEOF}},
		{`"a \"b\""`, []TokenKind{TokenString, TokenEOF}},
		{`#\a #\space`, []TokenKind{TokenChar, TokenWhitespace, TokenChar, TokenEOF}},
		{"#t #false true", []TokenKind{TokenBoolean, TokenWhitespace, TokenBoolean, TokenWhitespace, TokenBoolean, TokenEOF}},
		{"-3 1.5 1/2 - +", []TokenKind{TokenNumber, TokenWhitespace, TokenNumber, TokenWhitespace, TokenNumber, TokenWhitespace, TokenSymbol, TokenWhitespace, TokenSymbol, TokenEOF}},
		{"...", []TokenKind{TokenBlank, TokenEOF}},
		{"; note\nx", []TokenKind{TokenLineComment, TokenWhitespace, TokenSymbol, TokenEOF}},
		{"#| a\nb |#", []TokenKind{TokenBlockComment, TokenEOF}},
		{"#| open", []TokenKind{TokenError, TokenEOF}},
		{`"open`, []TokenKind{TokenError, TokenEOF}},
		{"#q", []TokenKind{TokenError, TokenEOF}},
		{"\x00", []TokenKind{TokenError, TokenEOF}},
		{"a\x00b", []TokenKind{TokenSymbol, TokenError, TokenSymbol, TokenEOF}},
		{"(\x00)", []TokenKind{TokenOpen, TokenError, TokenClose, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := NewLexer([]byte(tt.input))
			var got []TokenKind
			for {
				tok := l.NextToken()
				got = append(got, tok.Kind)
				if tok.Kind == TokenEOF {
					break
				}
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: expected %s, got %s", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	l := NewLexer([]byte("(a\n  bc)"))
	want := []ast.Span{
		{From: ast.Position{Line: 0, Column: 0}, To: ast.Position{Line: 0, Column: 1}},
		{From: ast.Position{Line: 0, Column: 1}, To: ast.Position{Line: 0, Column: 2}},
		{From: ast.Position{Line: 0, Column: 2}, To: ast.Position{Line: 1, Column: 2}},
		{From: ast.Position{Line: 1, Column: 2}, To: ast.Position{Line: 1, Column: 4}},
		{From: ast.Position{Line: 1, Column: 4}, To: ast.Position{Line: 1, Column: 5}},
	}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Span != w {
			t.Errorf("token %d (%s %q): expected span %s, got %s", i, tok.Kind, tok.Literal, w, tok.Span)
		}
	}
}
