// Package forest holds the live block forest of a document. It keeps the
// navigation index in step with the roots, answers positional queries and
// reconciles freshly parsed roots into the live tree in place.
package forest

import (
	"fmt"
	"iter"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/blocks/ast"
)

var log = commonlog.GetLogger("blocks.forest")

// Forest owns an ordered list of root nodes and the index derived from
// them. A Forest is not safe for concurrent use.
type Forest struct {
	roots []ast.Node
	index *ast.Index
}

// New validates nodes and indexes them as the roots of a new forest.
func New(nodes []ast.Node) (*Forest, error) {
	if err := ast.Validate(nodes...); err != nil {
		return nil, fmt.Errorf("initialize forest: %w", err)
	}
	f := &Forest{roots: nodes}
	f.reindex()
	return f, nil
}

func (f *Forest) reindex() {
	f.index = ast.NewIndex(f.roots)
}

// Reconcile merges next into the live roots. Nodes that did not change
// stay in place, keeping their handle and collapsed flag; changed values
// are overwritten and changed subtrees are replaced by the nodes of next.
// When next fails validation the forest is left exactly as it was.
//
// A nil next means the caller has nothing to reconcile and is a no-op; an
// empty non-nil next clears the forest.
func (f *Forest) Reconcile(next []ast.Node) (*Patch, error) {
	if next == nil {
		return &Patch{}, nil
	}
	if err := ast.Validate(next...); err != nil {
		return nil, fmt.Errorf("reconcile: %w", err)
	}

	ops := Diff(f.roots, next)
	kept := FilterPreserved(ops)
	p := f.apply(kept)
	p.Filtered = len(ops) - len(kept)
	f.reindex()

	log.Debugf("reconciled %d ops (%d filtered), %d nodes touched, %d nodes live",
		len(p.Applied), p.Filtered, len(p.Touched), f.index.Len())
	return p, nil
}

// Roots returns the top-level nodes. The slice must not be modified.
func (f *Forest) Roots() []ast.Node {
	return f.roots
}

// Len returns the total number of nodes.
func (f *Forest) Len() int {
	return f.index.Len()
}

// Nodes yields every node in pre-order.
func (f *Forest) Nodes() iter.Seq[ast.Node] {
	return f.index.Nodes()
}

// Lookup returns the node with the given path id, or nil.
func (f *Forest) Lookup(id string) ast.Node {
	return f.index.Lookup(id)
}

// After returns the node following n in pre-order, or nil.
func (f *Forest) After(n ast.Node) ast.Node {
	return f.index.Next(n)
}

// Before returns the node preceding n in pre-order, or nil.
func (f *Forest) Before(n ast.Node) ast.Node {
	return f.index.Prev(n)
}

// ParentOf returns the parent of n, or nil for roots and foreign nodes.
func (f *Forest) ParentOf(n ast.Node) ast.Node {
	return f.index.Parent(n)
}

// FirstChildOf returns the first child of n, or nil for leaves.
func (f *Forest) FirstChildOf(n ast.Node) ast.Node {
	if f.index.Slot(n) < 0 {
		return nil
	}
	children := n.Children()
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// Contains reports whether n belongs to the forest.
func (f *Forest) Contains(n ast.Node) bool {
	return f.index.Slot(n) >= 0
}

// Containing returns the deepest node whose span holds pos, or nil.
func (f *Forest) Containing(pos ast.Position) ast.Node {
	return NodeContainingIn(pos, f.roots)
}
