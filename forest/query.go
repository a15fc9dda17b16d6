package forest

import (
	"github.com/dhamidi/blocks/ast"
)

// NodeAfter returns the first node that starts at or after pos. When pos
// falls inside a node the search continues among its children, and that
// node is the answer if none of them qualifies. A leaf holding pos is
// returned as is. Returns nil when nothing lies after pos.
func (f *Forest) NodeAfter(pos ast.Position) ast.Node {
	return nodeAfter(pos, f.roots, nil)
}

func nodeAfter(pos ast.Position, nodes []ast.Node, fallback ast.Node) ast.Node {
	for _, n := range nodes {
		if n.Span().To.Compare(pos) <= 0 {
			continue
		}
		if n.Span().From.Compare(pos) >= 0 {
			return n
		}
		children := n.Children()
		if len(children) == 0 {
			return n
		}
		return nodeAfter(pos, children, n)
	}
	return fallback
}

// NodeBefore is the mirror of NodeAfter: it returns the last node that
// ends at or before pos, descending into a node that straddles pos.
func (f *Forest) NodeBefore(pos ast.Position) ast.Node {
	return nodeBefore(pos, f.roots, nil)
}

func nodeBefore(pos ast.Position, nodes []ast.Node, fallback ast.Node) ast.Node {
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if n.Span().From.Compare(pos) >= 0 {
			continue
		}
		if n.Span().To.Compare(pos) <= 0 {
			return n
		}
		children := n.Children()
		if len(children) == 0 {
			return n
		}
		return nodeBefore(pos, children, n)
	}
	return fallback
}

// NodeContainingIn returns the deepest node among nodes and their
// descendants whose span, or attached comment, holds pos. Siblings are
// tried in order and the first match wins; siblings are expected not to
// overlap.
func NodeContainingIn(pos ast.Position, nodes []ast.Node) ast.Node {
	for _, n := range nodes {
		if !holds(n, pos) {
			continue
		}
		children := n.Children()
		if len(children) == 0 {
			return n
		}
		if c := NodeContainingIn(pos, children); c != nil {
			return c
		}
		return n
	}
	return nil
}

func holds(n ast.Node, pos ast.Position) bool {
	if n.Span().Contains(pos) {
		return true
	}
	c := n.Annotations().Comment
	return c != nil && c.Span().Contains(pos)
}

// ClosestSurvivingNode finds the node to select after the node at path was
// deleted. A path that still resolves wins. Otherwise the previous sibling
// is tried once, then the parent. At the top level the previous root is
// tried until one is found. Returns nil when nothing qualifies.
func (f *Forest) ClosestSurvivingNode(path []int) ast.Node {
	if len(path) == 0 {
		return nil
	}
	if n := f.Lookup(ast.FormatPath(path)); n != nil {
		return n
	}
	last := path[len(path)-1]
	if len(path) == 1 {
		if last <= 0 {
			return nil
		}
		return f.ClosestSurvivingNode([]int{last - 1})
	}
	if last > 0 {
		sibling := append(append([]int(nil), path[:len(path)-1]...), last-1)
		return f.Lookup(ast.FormatPath(sibling))
	}
	return f.ClosestSurvivingNode(path[:len(path)-1])
}

// ClosestSurvivingID is ClosestSurvivingNode for a path id.
func (f *Forest) ClosestSurvivingID(id string) ast.Node {
	path, err := ast.ParsePath(id)
	if err != nil {
		return nil
	}
	return f.ClosestSurvivingNode(path)
}
