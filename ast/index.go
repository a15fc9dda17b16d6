package ast

import "iter"

// Index is the navigation state derived from a forest: every node laid out
// in pre-order in an arena of slots, with each node's parent slot and a
// path id lookup. Nodes are owned by the tree; the index only refers to
// them by slot.
type Index struct {
	order  []Node
	parent []int
	byID   map[string]int
}

// NewIndex walks roots in pre-order, assigns every node its path id and
// slot, and returns the resulting index. Indexing an unchanged forest
// again produces identical ids and links.
func NewIndex(roots []Node) *Index {
	ix := &Index{byID: make(map[string]int)}
	for i, r := range roots {
		ix.add(r, ChildID("", i), -1)
	}
	return ix
}

func (ix *Index) add(n Node, id string, parent int) {
	slot := len(ix.order)
	b := n.base()
	b.id = id
	b.slot = slot
	ix.order = append(ix.order, n)
	ix.parent = append(ix.parent, parent)
	ix.byID[id] = slot
	for i, c := range n.Children() {
		ix.add(c, ChildID(id, i), slot)
	}
}

// Len returns the number of indexed nodes.
func (ix *Index) Len() int { return len(ix.order) }

// At returns the node in the given slot, or nil when out of range.
func (ix *Index) At(slot int) Node {
	if slot < 0 || slot >= len(ix.order) {
		return nil
	}
	return ix.order[slot]
}

// Slot returns the slot of n, or -1 if n is not part of this index.
func (ix *Index) Slot(n Node) int {
	if n == nil {
		return -1
	}
	s := n.base().slot
	if s < 0 || s >= len(ix.order) || ix.order[s] != n {
		return -1
	}
	return s
}

// Lookup returns the node with the given path id, or nil.
func (ix *Index) Lookup(id string) Node {
	s, ok := ix.byID[id]
	if !ok {
		return nil
	}
	return ix.order[s]
}

// Next returns the pre-order successor of n, or nil for the last node.
func (ix *Index) Next(n Node) Node {
	s := ix.Slot(n)
	if s < 0 {
		return nil
	}
	return ix.At(s + 1)
}

// Prev returns the pre-order predecessor of n, or nil for the first node.
func (ix *Index) Prev(n Node) Node {
	s := ix.Slot(n)
	if s <= 0 {
		return nil
	}
	return ix.At(s - 1)
}

// Parent returns the parent of n, or nil for a root.
func (ix *Index) Parent(n Node) Node {
	s := ix.Slot(n)
	if s < 0 {
		return nil
	}
	return ix.At(ix.parent[s])
}

// Nodes yields every indexed node in pre-order.
func (ix *Index) Nodes() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, n := range ix.order {
			if !yield(n) {
				return
			}
		}
	}
}
