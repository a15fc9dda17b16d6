package workspace

import (
	"fmt"

	"github.com/dhamidi/blocks/ast"
	"github.com/dhamidi/blocks/forest"
)

// Target is a node picked by a navigation request, detached from the
// forest so it can be handed to another goroutine.
type Target struct {
	ID          string
	Kind        ast.Kind
	Span        ast.Span
	Description string
}

func targetOf(n ast.Node) Target {
	return Target{ID: n.ID(), Kind: n.Kind(), Span: n.Span(), Description: n.Describe(1)}
}

type Move string

const (
	MoveNext   Move = "next"
	MovePrev   Move = "prev"
	MoveParent Move = "parent"
	MoveChild  Move = "child"
	// MoveClosest resolves an id that may have been deleted to the node
	// that should take over the selection.
	MoveClosest Move = "closest"
)

func ParseMove(s string) (Move, error) {
	switch m := Move(s); m {
	case MoveNext, MovePrev, MoveParent, MoveChild, MoveClosest:
		return m, nil
	}
	return "", fmt.Errorf("unknown move %q", s)
}

// Navigate moves from the node with the given id. Next and prev skip
// nodes whose kind is not among kinds, when kinds are given.
func (w *Workspace) Navigate(path, id string, move Move, kinds ...ast.Kind) (Target, bool) {
	var target Target
	found := false
	w.View(path, func(doc *Document) {
		if n := navigate(doc.Forest, id, move, kinds); n != nil {
			target, found = targetOf(n), true
		}
	})
	return target, found
}

func navigate(f *forest.Forest, id string, move Move, kinds []ast.Kind) ast.Node {
	if move == MoveClosest {
		return f.ClosestSurvivingID(id)
	}
	start := f.Lookup(id)
	if start == nil {
		return nil
	}
	skip := func(ast.Node) bool { return false }
	if len(kinds) > 0 {
		skip = forest.KindIs(kinds...)
	}

	var n ast.Node
	switch move {
	case MoveNext, MovePrev:
		n = f.AdvanceUntil(move == MoveNext, skip, start)
		if n == start || skip(n) {
			return nil
		}
	case MoveParent:
		n = f.ParentOf(start)
	case MoveChild:
		n = f.FirstChildOf(start)
	}
	return n
}

// Seek returns the first node after pos, or the last node before it when
// forward is false.
func (w *Workspace) Seek(path string, pos ast.Position, forward bool) (Target, bool) {
	var target Target
	found := false
	w.View(path, func(doc *Document) {
		n := doc.Forest.NodeBefore(pos)
		if forward {
			n = doc.Forest.NodeAfter(pos)
		}
		if n != nil {
			target, found = targetOf(n), true
		}
	})
	return target, found
}

// SelectionChain returns the spans of the node at pos and of each of its
// ancestors, innermost first.
func (w *Workspace) SelectionChain(path string, pos ast.Position) []ast.Span {
	var chain []ast.Span
	w.View(path, func(doc *Document) {
		for n := doc.Forest.Containing(pos); n != nil; n = doc.Forest.ParentOf(n) {
			chain = append(chain, n.Span())
		}
	})
	return chain
}

// Fold is a node spanning more than one line.
type Fold struct {
	ID        string
	Span      ast.Span
	Collapsed bool
	Comment   bool
}

// Folds lists the multi-line nodes and attached comments of a document in
// pre-order.
func (w *Workspace) Folds(path string) []Fold {
	var folds []Fold
	w.View(path, func(doc *Document) {
		for n := range doc.Forest.Nodes() {
			if c := n.Annotations().Comment; c != nil && c.Span().Lines() > 1 {
				folds = append(folds, Fold{ID: n.ID(), Span: c.Span(), Comment: true})
			}
			if n.Span().Lines() > 1 {
				folds = append(folds, Fold{
					ID:        n.ID(),
					Span:      n.Span(),
					Collapsed: n.Collapsed(),
					Comment:   n.Kind() == ast.KindComment,
				})
			}
		}
	})
	return folds
}
