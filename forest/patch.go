package forest

import (
	"slices"

	"github.com/dhamidi/blocks/ast"
)

// Patch summarizes one reconcile: the ops applied to the live forest, the
// ops dropped because they targeted renderer-owned state, and the nodes
// whose rendering is stale.
type Patch struct {
	Applied  []Op
	Filtered int
	// Touched lists the live nodes an op edited or put in place, in op
	// order and without duplicates. Nodes a removal dropped are not listed.
	Touched []ast.Node
}

// Empty reports whether the patch changed nothing.
func (p *Patch) Empty() bool {
	return p == nil || len(p.Applied) == 0
}

func (p *Patch) touch(n ast.Node) {
	if n == nil || slices.Contains(p.Touched, n) {
		return
	}
	p.Touched = append(p.Touched, n)
}

// apply carries out ops in order. The ops come from Diff over the same
// roots, so every owner and field they name exists.
func (f *Forest) apply(ops []Op) *Patch {
	p := &Patch{}
	for _, op := range ops {
		if op.Scope == ScopeNode {
			applyNodeOp(op)
		} else if op.owner == nil {
			f.roots = editList(f.roots, op)
		} else {
			applyFieldOp(op)
		}
		p.Applied = append(p.Applied, op)
		p.touch(op.owner)
		if n, ok := op.Value.(ast.Node); ok {
			p.touch(n)
		}
	}
	return p
}

func applyNodeOp(op Op) {
	n := op.owner
	switch op.Field {
	case NodeSpan:
		ast.SetSpan(n, op.Value.(ast.Span))
	case NodeAnnotations:
		*n.Annotations() = op.Value.(ast.Annotations)
	case NodeHandle:
		n.SetHandle(op.Value)
	case NodeCollapsed:
		n.SetCollapsed(op.Value.(bool))
	}
}

func applyFieldOp(op Op) {
	for _, field := range op.owner.Fields() {
		if field.Name != op.Field {
			continue
		}
		if field.Kind == ast.FieldList {
			field.Set(editList(field.List, op))
		} else {
			field.Set(op.Value)
		}
		return
	}
}

// editList returns list with op applied. The input slice is never written
// to, since it may still back the live tree.
func editList(list []ast.Node, op Op) []ast.Node {
	out := slices.Clone(list)
	switch op.Kind {
	case OpReplace:
		out[op.Index], _ = op.Value.(ast.Node)
	case OpInsert:
		n, _ := op.Value.(ast.Node)
		out = slices.Insert(out, op.Index, n)
	case OpRemove:
		out = slices.Delete(out, op.Index, op.Index+1)
	}
	return out
}
