package sexpr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/blocks/ast"
)

func at(line, col int) ast.Position { return ast.Position{Line: line, Column: col} }

func readOne(t *testing.T, src string) ast.Node {
	t.Helper()
	nodes, err := Read([]byte(src), WithComments())
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	return nodes[0]
}

func TestReadNestedExpression(t *testing.T) {
	outer, err := ast.Cast[*ast.Expression](readOne(t, "(+ 1 (* 2 3))"))
	require.NoError(t, err)
	assert.Equal(t, ast.Span{From: at(0, 0), To: at(0, 13)}, outer.Span())
	assert.Equal(t, "+", outer.Func.String())
	require.Len(t, outer.Args, 2)

	inner, err := ast.Cast[*ast.Expression](outer.Args[1])
	require.NoError(t, err)
	assert.Equal(t, ast.Span{From: at(0, 5), To: at(0, 12)}, inner.Span())

	two := inner.Args[0].(*ast.Literal)
	assert.Equal(t, ast.DataNumber, two.DataType)
	assert.Equal(t, ast.Span{From: at(0, 8), To: at(0, 9)}, two.Span())
}

func TestReadSpecialForms(t *testing.T) {
	tests := []struct {
		src  string
		kind ast.Kind
		text string
	}{
		{"(define x 5)", ast.KindVariableDefinition, "(define x 5)"},
		{"(define (f a b) (+ a b))", ast.KindFunctionDefinition, "(define (f a b) (+ a b))"},
		{"(define (thunk) 1)", ast.KindFunctionDefinition, "(define (thunk) 1)"},
		{"(define-struct point (x y))", ast.KindStructDefinition, "(define-struct point (x y))"},
		{"(lambda (x) (* x x))", ast.KindLambdaExpression, "(lambda (x) (* x x))"},
		{"(if (> x 0) x (- x))", ast.KindIfExpression, "(if (> x 0) x (- x))"},
		{"(cond [(= x 0) 'zero] [else 'other])", ast.KindCondExpression, "(cond [(= x 0) 'zero] [else 'other])"},
		{"(begin (f) (g))", ast.KindSequence, "(begin (f) (g))"},
		{"(let ([x 1] [y 2]) (+ x y))", ast.KindLetLikeExpression, "(let ([x 1] [y 2]) (+ x y))"},
		{"(letrec ((x 1)) x)", ast.KindLetLikeExpression, "(letrec ([x 1]) x)"},
		{"(when ok (f) (g))", ast.KindWhenUnless, "(when ok (f) (g))"},
		{"(unless ok (f))", ast.KindWhenUnless, "(unless ok (f))"},
		{"((f 1) 2)", ast.KindExpression, "((f 1) 2)"},
		{"(define x)", ast.KindUnknown, "(define x)"},
		{"(if a b)", ast.KindUnknown, "(if a b)"},
		{"()", ast.KindUnknown, "()"},
		{"...", ast.KindBlank, "..."},
		{`"hi there"`, ast.KindLiteral, `"hi there"`},
		{"; alone", ast.KindComment, "; alone"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			n := readOne(t, tt.src)
			assert.Equal(t, tt.kind, n.Kind())
			assert.Equal(t, tt.text, n.String())
		})
	}
}

func TestReadFunctionParamsDoNotOverlapName(t *testing.T) {
	fn, err := ast.Cast[*ast.FunctionDefinition](readOne(t, "(define (f a b) a)"))
	require.NoError(t, err)
	assert.Equal(t, ast.Span{From: at(0, 9), To: at(0, 10)}, fn.Name.Span())
	assert.Equal(t, ast.Span{From: at(0, 11), To: at(0, 14)}, fn.Params.Span())
	assert.Equal(t, "params", fn.Params.ListKind)
}

func TestReadAttachesComments(t *testing.T) {
	src := "; header\n" +
		"(define x 5) ; five\n" +
		"(f\n" +
		"  ; the argument\n" +
		"  y)\n"

	nodes, err := Read([]byte(src), WithComments())
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	header, err := ast.Cast[*ast.Comment](nodes[0])
	require.NoError(t, err)
	assert.Equal(t, "header", header.Text)

	def := nodes[1]
	require.NotNil(t, def.Annotations().Comment)
	assert.Equal(t, "five", def.Annotations().Comment.Text)
	assert.Equal(t, "(define x 5)", def.String())

	call, err := ast.Cast[*ast.Expression](nodes[2])
	require.NoError(t, err)
	require.Len(t, call.Args, 1)
	require.NotNil(t, call.Args[0].Annotations().Comment)
	assert.Equal(t, "the argument", call.Args[0].Annotations().Comment.Text)
}

func TestReadDropsCommentsByDefault(t *testing.T) {
	nodes, err := Read([]byte("; header\n(f x) ; trailing\n"))
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Nil(t, nodes[0].Annotations().Comment)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		src string
		pos ast.Position
	}{
		{"(+ 1", at(0, 0)},
		{"x )", at(0, 2)},
		{"(f]", at(0, 2)},
		{`"open`, at(0, 0)},
		{"(f\n  #q)", at(1, 2)},
		{"\x00", at(0, 0)},
		{"a\x00b", at(0, 1)},
		{"(f\n \x00)", at(1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := Read([]byte(tt.src))
			require.Error(t, err)
			var serr *Error
			require.True(t, errors.As(err, &serr), "got %T", err)
			assert.Equal(t, tt.pos, serr.Pos)
		})
	}
}

// Every node that reads back on its own keeps its kind and scalar fields
// when its source text is read again. Identifier lists and cond clauses
// only have meaning inside their parent, which covers them.
func TestSourceTextRoundTrip(t *testing.T) {
	src := `; a small program
(define-struct point (x y))
(define origin (make-point 0 0))
(define (dist p q)
  (let* ([dx (- (point-x p) (point-x q))]
         [dy (- (point-y p) (point-y q))])
    (sqrt (+ (* dx dx) (* dy dy)))))
(define (sign n)
  (cond [(> n 0) 1]
        [(< n 0) -1]
        [else 0]))
(define abs (lambda (n) (if (< n 0) (- n) n)))
(when (> (dist origin origin) 0.5) (display "far") (newline))
(begin #\a #t ...)
#| block
comment |#
`
	roots, err := Read([]byte(src), WithComments())
	require.NoError(t, err)

	for n := range ast.All(roots) {
		if n.Kind() == ast.KindIdentifierList || n.Kind() == ast.KindCondClause {
			continue
		}
		again, err := Read([]byte(n.String()), WithComments())
		require.NoError(t, err, "reading %q", n.String())
		require.Len(t, again, 1, "reading %q", n.String())
		assert.Equal(t, n.Kind(), again[0].Kind(), "reading %q", n.String())
		assert.Equal(t, scalars(n), scalars(again[0]), "reading %q", n.String())
	}
}

func scalars(n ast.Node) map[string]any {
	out := map[string]any{}
	for _, f := range n.Fields() {
		if f.Kind == ast.FieldScalar {
			out[f.Name] = f.Scalar
		}
	}
	return out
}

func TestLanguage(t *testing.T) {
	l := Language()
	assert.Equal(t, LanguageID, l.ID)
	nodes, err := l.Parse([]byte("; kept\n(f)"))
	require.NoError(t, err)
	assert.Len(t, nodes, 2)
}
