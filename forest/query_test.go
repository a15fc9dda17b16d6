package forest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/blocks/ast"
)

func TestContainingNested(t *testing.T) {
	f := load(t, sample)
	outer := f.Lookup("0")
	inner := f.Lookup("0,2")

	tests := []struct {
		name string
		pos  ast.Position
		want ast.Node
	}{
		// spans include both ends, so the innermost node owns its own parens
		{"opening paren of inner", pos(0, 5), inner},
		{"closing paren of inner", pos(0, 12), inner},
		{"on the 2 literal", pos(0, 8), f.Lookup("0,2,1")},
		{"start of outer", pos(0, 0), outer},
		{"end of outer", pos(0, 13), outer},
		{"space inside definition", pos(1, 7), f.Lookup("1")},
		{"past the end", pos(4, 0), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Containing(tt.pos)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want.ID(), got.ID())
		})
	}
}

func TestContainingIncludesAttachedComment(t *testing.T) {
	f := load(t, "(f x) ; about f\n(g)")

	got := f.Containing(pos(0, 10))
	require.NotNil(t, got)
	assert.Equal(t, "0", got.ID())
}

func TestContainingFirstMatchWins(t *testing.T) {
	// Siblings touching at a boundary: the earlier one wins.
	f := load(t, "(f)(g)")
	got := f.Containing(pos(0, 3))
	require.NotNil(t, got)
	assert.Equal(t, "0", got.ID())
}

func TestNodeAfterAndBefore(t *testing.T) {
	f := load(t, sample)

	tests := []struct {
		name   string
		pos    ast.Position
		after  string
		before string
	}{
		{"document start", pos(0, 0), "0", ""},
		{"inside outer, after the +", pos(0, 2), "0,1", "0,0"},
		{"just before inner", pos(0, 5), "0,2", "0,1"},
		{"end of first line", pos(0, 13), "1", "0"},
		{"start of second line", pos(1, 0), "1", "0"},
		{"document end", pos(1, 12), "", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertID(t, tt.after, f.NodeAfter(tt.pos))
			assertID(t, tt.before, f.NodeBefore(tt.pos))
		})
	}
}

func assertID(t *testing.T, want string, n ast.Node) {
	t.Helper()
	if want == "" {
		assert.Nil(t, n)
		return
	}
	require.NotNil(t, n, "expected node %s", want)
	assert.Equal(t, want, n.ID())
}

func TestClosestSurvivingNode(t *testing.T) {
	t.Run("deleted last root falls back to previous root", func(t *testing.T) {
		f := load(t, "(f)\n(g)")
		_, err := f.Reconcile(read(t, "(f)"))
		require.NoError(t, err)
		assertID(t, "0", f.ClosestSurvivingNode([]int{1}))
	})

	// a path that still resolves is returned as is, even when renumbering
	// moved another node onto it
	t.Run("deleted middle root resolves to its successor", func(t *testing.T) {
		f := load(t, "(f)\n(g)\n(h)")
		_, err := f.Reconcile(read(t, "(f)\n(h)"))
		require.NoError(t, err)
		got := f.ClosestSurvivingNode([]int{1})
		assertID(t, "1", got)
		assert.Equal(t, "(h)", got.String())
	})

	t.Run("root decrement repeats", func(t *testing.T) {
		f := load(t, "(f)")
		assertID(t, "0", f.ClosestSurvivingNode([]int{4}))
	})

	t.Run("deleted child falls back to previous sibling", func(t *testing.T) {
		f := load(t, "(begin x y z)")
		_, err := f.Reconcile(read(t, "(begin x y)"))
		require.NoError(t, err)
		got := f.ClosestSurvivingNode([]int{0, 2})
		assertID(t, "0,1", got)
		assert.Equal(t, "y", got.String())
	})

	t.Run("deleted first child falls back to parent", func(t *testing.T) {
		f := load(t, "(begin x)")
		_, err := f.Reconcile(read(t, "(begin)"))
		require.NoError(t, err)
		assertID(t, "0", f.ClosestSurvivingNode([]int{0, 0}))
	})

	t.Run("sibling decrement happens once", func(t *testing.T) {
		f := load(t, "(begin x)")
		assert.Nil(t, f.ClosestSurvivingNode([]int{0, 3}))
	})

	t.Run("empty path", func(t *testing.T) {
		f := load(t, sample)
		assert.Nil(t, f.ClosestSurvivingNode(nil))
	})

	t.Run("by id", func(t *testing.T) {
		f := load(t, sample)
		assertID(t, "0,2,1", f.ClosestSurvivingID("0,2,1"))
		assertID(t, "0,2,2", f.ClosestSurvivingID("0,2,3"))
		assert.Nil(t, f.ClosestSurvivingID("zero"))
	})
}

func TestAdvanceUntil(t *testing.T) {
	f := load(t, sample)
	outer := f.Lookup("0")

	got := f.AdvanceUntil(true, KindIs(ast.KindExpression), outer)
	assertID(t, "0,2", got)

	got = f.AdvanceUntil(true, KindIs(ast.KindVariableDefinition), outer)
	assertID(t, "1", got)

	never := func(ast.Node) bool { return true }
	assertID(t, "1,1", f.AdvanceUntil(true, never, outer))
	assert.Same(t, outer, f.AdvanceUntil(false, never, outer), "no step possible returns start")

	got = AdvanceUntil(f.ParentOf, KindIs(ast.KindExpression), f.Lookup("0,2,2"))
	assertID(t, "0,2", got)
}
