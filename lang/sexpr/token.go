package sexpr

import "github.com/dhamidi/blocks/ast"

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenLineComment
	TokenBlockComment

	TokenOpen  // ( or [
	TokenClose // ) or ]

	TokenNumber
	TokenString
	TokenChar
	TokenBoolean
	TokenSymbol
	TokenBlank
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:          "EOF",
	TokenError:        "Error",
	TokenWhitespace:   "Whitespace",
	TokenLineComment:  "LineComment",
	TokenBlockComment: "BlockComment",
	TokenOpen:         "Open",
	TokenClose:        "Close",
	TokenNumber:       "Number",
	TokenString:       "String",
	TokenChar:         "Char",
	TokenBoolean:      "Boolean",
	TokenSymbol:       "Symbol",
	TokenBlank:        "Blank",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Token struct {
	Kind    TokenKind
	Literal string
	Span    ast.Span
}

// dataType maps an atom token to the Literal data type it produces.
func (t Token) dataType() string {
	switch t.Kind {
	case TokenNumber:
		return ast.DataNumber
	case TokenString:
		return ast.DataString
	case TokenChar:
		return ast.DataChar
	case TokenBoolean:
		return ast.DataBoolean
	case TokenBlank:
		return ast.DataBlank
	}
	return ast.DataSymbol
}

func (t Token) isAtom() bool {
	switch t.Kind {
	case TokenNumber, TokenString, TokenChar, TokenBoolean, TokenSymbol, TokenBlank:
		return true
	}
	return false
}

func closerFor(open string) string {
	if open == "[" {
		return "]"
	}
	return ")"
}
