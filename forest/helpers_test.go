package forest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhamidi/blocks/ast"
	"github.com/dhamidi/blocks/lang/sexpr"
)

const sample = "(+ 1 (* 2 3))\n(define x 5)"

func pos(line, col int) ast.Position { return ast.Position{Line: line, Column: col} }

func read(t *testing.T, src string) []ast.Node {
	t.Helper()
	nodes, err := sexpr.Read([]byte(src), sexpr.WithComments())
	require.NoError(t, err)
	return nodes
}

func load(t *testing.T, src string) *Forest {
	t.Helper()
	f, err := New(read(t, src))
	require.NoError(t, err)
	return f
}

// requireTree checks that the live forest is structurally the forest src
// reads as.
func requireTree(t *testing.T, f *Forest, src string) {
	t.Helper()
	want := read(t, src)
	ast.NewIndex(want)
	wantJSON, err := ast.EncodeJSON(want)
	require.NoError(t, err)
	gotJSON, err := ast.EncodeJSON(f.Roots())
	require.NoError(t, err)
	require.JSONEq(t, string(wantJSON), string(gotJSON))
}

// mystery is a node of a kind no decoder or validator knows.
type mystery struct {
	ast.Base
}

func (x *mystery) Kind() ast.Kind            { return ast.Kind(99) }
func (x *mystery) Children() []ast.Node      { return nil }
func (x *mystery) Fields() []ast.Field       { return nil }
func (x *mystery) Describe(depth int) string { return "a mystery" }
func (x *mystery) String() string            { return "?" }
