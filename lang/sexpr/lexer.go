package sexpr

import (
	"strings"

	"github.com/dhamidi/blocks/ast"
)

type Lexer struct {
	input  []byte
	pos    int
	line   int
	column int
}

func NewLexer(input []byte) *Lexer {
	return &Lexer{input: input}
}

// Position returns the zero-based position of the next unread byte.
func (l *Lexer) Position() ast.Position {
	return ast.Position{Line: l.line, Column: l.column}
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

// peek returns 0 at the end of input. Callers that stop on 0 must also
// check atEnd, since 0 is a legal input byte.
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
		l.column = 0
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) token(kind TokenKind, start ast.Position, startOff int) Token {
	return Token{
		Kind:    kind,
		Literal: string(l.input[startOff:l.pos]),
		Span:    ast.Span{From: start, To: l.Position()},
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isDelimiter(ch byte) bool {
	switch ch {
	case 0, '(', ')', '[', ']', '"', ';':
		return true
	}
	return isSpace(ch)
}

func (l *Lexer) NextToken() Token {
	start := l.Position()
	startOff := l.pos

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Span: ast.Span{From: start, To: start}}
	}

	ch := l.peek()
	switch {
	case isSpace(ch):
		for !l.atEnd() && isSpace(l.peek()) {
			l.advance()
		}
		return l.token(TokenWhitespace, start, startOff)
	case ch == ';':
		for l.pos < len(l.input) && l.peek() != '\n' {
			l.advance()
		}
		return l.token(TokenLineComment, start, startOff)
	case ch == '#' && l.peekN(1) == '|':
		return l.scanBlockComment(start, startOff)
	case ch == '(' || ch == '[':
		l.advance()
		return l.token(TokenOpen, start, startOff)
	case ch == ')' || ch == ']':
		l.advance()
		return l.token(TokenClose, start, startOff)
	case ch == '"':
		return l.scanString(start, startOff)
	case ch == '#' && l.peekN(1) == '\\':
		return l.scanChar(start, startOff)
	}
	return l.scanAtom(start, startOff)
}

func (l *Lexer) scanBlockComment(start ast.Position, startOff int) Token {
	l.advance()
	l.advance()
	for l.pos < len(l.input) {
		if l.peek() == '|' && l.peekN(1) == '#' {
			l.advance()
			l.advance()
			return l.token(TokenBlockComment, start, startOff)
		}
		l.advance()
	}
	return l.token(TokenError, start, startOff)
}

func (l *Lexer) scanString(start ast.Position, startOff int) Token {
	l.advance()
	for l.pos < len(l.input) {
		ch := l.advance()
		if ch == '\\' {
			l.advance()
			continue
		}
		if ch == '"' {
			return l.token(TokenString, start, startOff)
		}
	}
	return l.token(TokenError, start, startOff)
}

func (l *Lexer) scanChar(start ast.Position, startOff int) Token {
	l.advance()
	l.advance()
	if l.pos >= len(l.input) {
		return l.token(TokenError, start, startOff)
	}
	l.advance()
	for !l.atEnd() && !isDelimiter(l.peek()) {
		l.advance()
	}
	return l.token(TokenChar, start, startOff)
}

func (l *Lexer) scanAtom(start ast.Position, startOff int) Token {
	for !l.atEnd() && !isDelimiter(l.peek()) {
		l.advance()
	}
	if l.pos == startOff {
		// a delimiter no other rule takes, such as NUL
		l.advance()
		return l.token(TokenError, start, startOff)
	}
	tok := l.token(TokenSymbol, start, startOff)
	switch text := tok.Literal; {
	case text == "...":
		tok.Kind = TokenBlank
	case text == "#t" || text == "#f" || text == "#true" || text == "#false" ||
		text == "true" || text == "false":
		tok.Kind = TokenBoolean
	case isNumber(text):
		tok.Kind = TokenNumber
	case strings.HasPrefix(text, "#"):
		tok.Kind = TokenError
	}
	return tok
}

// isNumber accepts integers, decimals and fractions with an optional sign.
func isNumber(text string) bool {
	if len(text) > 1 && (text[0] == '+' || text[0] == '-') {
		text = text[1:]
	}
	digits, seps := 0, 0
	for i := 0; i < len(text); i++ {
		switch ch := text[i]; {
		case ch >= '0' && ch <= '9':
			digits++
		case ch == '.' || ch == '/':
			seps++
		default:
			return false
		}
	}
	return digits > 0 && seps <= 1
}
