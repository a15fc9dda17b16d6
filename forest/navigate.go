package forest

import "github.com/dhamidi/blocks/ast"

// StepFunc moves from one node to a neighbour, returning nil at the end.
// Forest.After and Forest.Before are step functions.
type StepFunc func(ast.Node) ast.Node

// AdvanceUntil steps from start while skip holds for the node reached. It
// returns the first node for which skip is false, the last node reached
// when step runs out, or start when no step was possible.
func AdvanceUntil(step StepFunc, skip func(ast.Node) bool, start ast.Node) ast.Node {
	cur := start
	for {
		next := step(cur)
		if next == nil {
			return cur
		}
		cur = next
		if !skip(cur) {
			return cur
		}
	}
}

// AdvanceUntil is the package function bound to this forest's pre-order
// links. Forward steps with After, backward with Before.
func (f *Forest) AdvanceUntil(forward bool, skip func(ast.Node) bool, start ast.Node) ast.Node {
	step := f.Before
	if forward {
		step = f.After
	}
	return AdvanceUntil(step, skip, start)
}

// KindIs returns a skip predicate that passes over every node whose kind
// is not one of kinds.
func KindIs(kinds ...ast.Kind) func(ast.Node) bool {
	return func(n ast.Node) bool {
		for _, k := range kinds {
			if n.Kind() == k {
				return false
			}
		}
		return true
	}
}
