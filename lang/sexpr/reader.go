// Package sexpr reads WeScheme-style s-expression source into block nodes.
// It understands the special forms the ast package models and falls back
// to Unknown for forms it cannot classify.
package sexpr

import (
	"fmt"
	"strings"

	"github.com/dhamidi/blocks/ast"
)

type Option func(*Reader)

// WithComments keeps comments. Without it they are dropped while reading.
func WithComments() Option {
	return func(r *Reader) {
		r.includeComments = true
	}
}

// Error is a syntax error at a source position.
type Error struct {
	Pos     ast.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

func (e *Error) Position() ast.Position {
	return e.Pos
}

type Reader struct {
	includeComments bool
	lexer           *Lexer
	tokens          []Token
	pos             int
}

// datum is the untyped shape of the source: an atom, a comment or a list.
type datum struct {
	tok     Token
	list    bool
	open    string
	elts    []*datum
	span    ast.Span
	comment *ast.Comment
}

func (d *datum) isComment() bool {
	return !d.list && (d.tok.Kind == TokenLineComment || d.tok.Kind == TokenBlockComment)
}

func (d *datum) symbol() (string, bool) {
	if d.list || d.tok.Kind != TokenSymbol {
		return "", false
	}
	return d.tok.Literal, true
}

// Read parses every top-level form in src.
func Read(src []byte, opts ...Option) ([]ast.Node, error) {
	r := &Reader{lexer: NewLexer(src)}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.tokenize(); err != nil {
		return nil, err
	}

	var top []*datum
	for r.peek().Kind != TokenEOF {
		d, err := r.readDatum()
		if err != nil {
			return nil, err
		}
		top = append(top, d)
	}
	top, _ = attachComments(top, true)

	nodes := make([]ast.Node, 0, len(top))
	for _, d := range top {
		nodes = append(nodes, build(d))
	}
	return nodes, nil
}

func (r *Reader) tokenize() error {
	for {
		tok := r.lexer.NextToken()
		switch tok.Kind {
		case TokenWhitespace:
			continue
		case TokenLineComment, TokenBlockComment:
			if !r.includeComments {
				continue
			}
		case TokenError:
			return &Error{Pos: tok.Span.From, Message: fmt.Sprintf("invalid token %q", tok.Literal)}
		}
		r.tokens = append(r.tokens, tok)
		if tok.Kind == TokenEOF {
			return nil
		}
	}
}

func (r *Reader) peek() Token {
	if r.pos >= len(r.tokens) {
		return Token{Kind: TokenEOF}
	}
	return r.tokens[r.pos]
}

func (r *Reader) next() Token {
	tok := r.peek()
	if r.pos < len(r.tokens) {
		r.pos++
	}
	return tok
}

func (r *Reader) readDatum() (*datum, error) {
	tok := r.next()
	switch tok.Kind {
	case TokenClose:
		return nil, &Error{Pos: tok.Span.From, Message: "unexpected " + tok.Literal}
	case TokenOpen:
		return r.readList(tok)
	}
	return &datum{tok: tok, span: tok.Span}, nil
}

func (r *Reader) readList(open Token) (*datum, error) {
	d := &datum{list: true, open: open.Literal}
	for {
		t := r.peek()
		switch t.Kind {
		case TokenEOF:
			return nil, &Error{Pos: open.Span.From, Message: "unterminated list"}
		case TokenClose:
			r.next()
			if want := closerFor(open.Literal); t.Literal != want {
				return nil, &Error{Pos: t.Span.From, Message: fmt.Sprintf("expected %s, found %s", want, t.Literal)}
			}
			d.span = ast.Span{From: open.Span.From, To: t.Span.To}
			var leftover *ast.Comment
			d.elts, leftover = attachComments(d.elts, false)
			d.comment = mergeComments(d.comment, leftover)
			return d, nil
		}
		e, err := r.readDatum()
		if err != nil {
			return nil, err
		}
		d.elts = append(d.elts, e)
	}
}

// attachComments removes comment data from elts and attaches each to a
// neighbour. A comment on the same line as the element before it belongs to
// that element; any other comment belongs to the element after it. At top
// level such a comment stands on its own instead. A comment with no
// neighbour to take it is returned.
func attachComments(elts []*datum, topLevel bool) ([]*datum, *ast.Comment) {
	var out []*datum
	var pending *ast.Comment
	for _, d := range elts {
		if !d.isComment() {
			d.comment = mergeComments(pending, d.comment)
			pending = nil
			out = append(out, d)
			continue
		}
		c := commentOf(d.tok)
		if n := len(out); n > 0 && pending == nil && !out[n-1].isComment() &&
			out[n-1].span.To.Line == d.span.From.Line {
			out[n-1].comment = mergeComments(out[n-1].comment, c)
			continue
		}
		if topLevel {
			out = append(out, d)
			continue
		}
		pending = mergeComments(pending, c)
	}
	if n := len(out); pending != nil && n > 0 {
		out[n-1].comment = mergeComments(out[n-1].comment, pending)
		pending = nil
	}
	return out, pending
}

func commentOf(tok Token) *ast.Comment {
	text := tok.Literal
	if tok.Kind == TokenBlockComment {
		text = strings.TrimSuffix(strings.TrimPrefix(text, "#|"), "|#")
	} else {
		text = strings.TrimLeft(text, ";")
	}
	return &ast.Comment{Base: ast.Base{Loc: tok.Span}, Text: strings.TrimSpace(text)}
}

func mergeComments(a, b *ast.Comment) *ast.Comment {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return &ast.Comment{Base: ast.At(a.Loc.From, b.Loc.To), Text: a.Text + "\n" + b.Text}
}

func build(d *datum) ast.Node {
	n := buildNode(d)
	if d.comment != nil {
		n.Annotations().Comment = d.comment
	}
	return n
}

func buildAll(ds []*datum) []ast.Node {
	if len(ds) == 0 {
		return nil
	}
	out := make([]ast.Node, len(ds))
	for i, d := range ds {
		out[i] = build(d)
	}
	return out
}

func buildNode(d *datum) ast.Node {
	b := ast.Base{Loc: d.span}
	switch {
	case d.list:
		return buildList(d)
	case d.isComment():
		return &ast.Comment{Base: b, Text: commentOf(d.tok).Text}
	case d.tok.Kind == TokenBlank:
		return &ast.Blank{Base: b, Value: d.tok.Literal, DataType: ast.DataBlank}
	}
	return &ast.Literal{Base: b, Value: d.tok.Literal, DataType: d.tok.dataType()}
}

func buildList(d *datum) ast.Node {
	if len(d.elts) == 0 {
		return &ast.Unknown{Base: ast.Base{Loc: d.span}}
	}
	head, ok := d.elts[0].symbol()
	if !ok {
		return &ast.Expression{Base: ast.Base{Loc: d.span}, Func: build(d.elts[0]), Args: buildAll(d.elts[1:])}
	}

	var n ast.Node
	special := true
	switch head {
	case "define":
		n = buildDefine(d)
	case "define-struct":
		n = buildStruct(d)
	case "lambda":
		n = buildLambda(d)
	case "if":
		n = buildIf(d)
	case "cond":
		n = buildCond(d)
	case "begin":
		n = &ast.Sequence{Base: ast.Base{Loc: d.span}, Name: head, Exprs: buildAll(d.elts[1:])}
	case "let", "let*", "letrec":
		n = buildLet(d, head)
	case "when", "unless":
		n = buildWhenUnless(d, head)
	default:
		special = false
	}
	if special {
		if n == nil {
			return &ast.Unknown{Base: ast.Base{Loc: d.span}, Elts: buildAll(d.elts)}
		}
		return n
	}
	return &ast.Expression{Base: ast.Base{Loc: d.span}, Func: build(d.elts[0]), Args: buildAll(d.elts[1:])}
}

func allSymbols(ds []*datum) bool {
	for _, d := range ds {
		if _, ok := d.symbol(); !ok {
			return false
		}
	}
	return true
}

func isSymbolList(d *datum) bool {
	return d.list && allSymbols(d.elts)
}

func identifiers(listKind string, ds []*datum, span ast.Span) *ast.IdentifierList {
	return &ast.IdentifierList{Base: ast.Base{Loc: span}, ListKind: listKind, Ids: buildAll(ds)}
}

func buildDefine(d *datum) ast.Node {
	if len(d.elts) != 3 {
		return nil
	}
	target, body := d.elts[1], d.elts[2]
	if _, ok := target.symbol(); ok {
		return &ast.VariableDefinition{Base: ast.Base{Loc: d.span}, Name: build(target), Body: build(body)}
	}
	if !isSymbolList(target) || len(target.elts) == 0 {
		return nil
	}

	// The parameter list covers only the parameters so that it never
	// overlaps the function name sitting in the same parentheses.
	name, params := target.elts[0], target.elts[1:]
	span := ast.Span{From: name.span.To, To: name.span.To}
	if len(params) > 0 {
		span = ast.Span{From: params[0].span.From, To: params[len(params)-1].span.To}
	}
	return &ast.FunctionDefinition{
		Base:   ast.Base{Loc: d.span},
		Name:   build(name),
		Params: identifiers("params", params, span),
		Body:   build(body),
	}
}

func buildStruct(d *datum) ast.Node {
	if len(d.elts) != 3 || !isSymbolList(d.elts[2]) {
		return nil
	}
	if _, ok := d.elts[1].symbol(); !ok {
		return nil
	}
	fields := d.elts[2]
	return &ast.StructDefinition{
		Base:    ast.Base{Loc: d.span},
		Name:    build(d.elts[1]),
		Members: identifiers("fields", fields.elts, fields.span),
	}
}

func buildLambda(d *datum) ast.Node {
	if len(d.elts) != 3 || !isSymbolList(d.elts[1]) {
		return nil
	}
	args := d.elts[1]
	return &ast.LambdaExpression{
		Base: ast.Base{Loc: d.span},
		Args: identifiers("params", args.elts, args.span),
		Body: build(d.elts[2]),
	}
}

func buildIf(d *datum) ast.Node {
	if len(d.elts) != 4 {
		return nil
	}
	return &ast.IfExpression{
		Base:     ast.Base{Loc: d.span},
		TestExpr: build(d.elts[1]),
		ThenExpr: build(d.elts[2]),
		ElseExpr: build(d.elts[3]),
	}
}

func buildCond(d *datum) ast.Node {
	if len(d.elts) < 2 {
		return nil
	}
	clauses := make([]ast.Node, 0, len(d.elts)-1)
	for _, c := range d.elts[1:] {
		if !c.list || len(c.elts) == 0 {
			return nil
		}
		clause := &ast.CondClause{
			Base:      ast.Base{Loc: c.span},
			TestExpr:  build(c.elts[0]),
			ThenSteps: buildAll(c.elts[1:]),
		}
		clause.Notes.Comment = c.comment
		clauses = append(clauses, clause)
	}
	return &ast.CondExpression{Base: ast.Base{Loc: d.span}, Clauses: clauses}
}

func buildLet(d *datum, form string) ast.Node {
	if len(d.elts) != 3 || !d.elts[1].list {
		return nil
	}
	bindings := make([]ast.Node, 0, len(d.elts[1].elts))
	for _, b := range d.elts[1].elts {
		if !b.list || len(b.elts) != 2 {
			return nil
		}
		if _, ok := b.elts[0].symbol(); !ok {
			return nil
		}
		def := &ast.VariableDefinition{
			Base: ast.Base{Loc: b.span},
			Name: build(b.elts[0]),
			Body: build(b.elts[1]),
		}
		def.Notes.Comment = b.comment
		bindings = append(bindings, def)
	}
	return &ast.LetLikeExpression{
		Base:     ast.Base{Loc: d.span},
		Form:     form,
		Bindings: bindings,
		Expr:     build(d.elts[2]),
	}
}

func buildWhenUnless(d *datum, form string) ast.Node {
	if len(d.elts) < 2 {
		return nil
	}
	return &ast.WhenUnless{
		Base:      ast.Base{Loc: d.span},
		Form:      form,
		Predicate: build(d.elts[1]),
		Exprs:     buildAll(d.elts[2:]),
	}
}
