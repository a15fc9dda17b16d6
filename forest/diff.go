package forest

import (
	"fmt"
	"reflect"

	"github.com/dhamidi/blocks/ast"
)

type OpKind int

const (
	// OpSet overwrites a scalar or node-level value.
	OpSet OpKind = iota
	// OpReplace swaps a child node, or a whole list entry, for another.
	OpReplace
	// OpInsert adds a list entry.
	OpInsert
	// OpRemove drops a list entry.
	OpRemove
)

var opKindNames = map[OpKind]string{
	OpSet:     "set",
	OpReplace: "replace",
	OpInsert:  "insert",
	OpRemove:  "remove",
}

func (k OpKind) String() string {
	if name, ok := opKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Scope tells whether an op targets state every node carries or a field
// of the node's variant.
type Scope int

const (
	ScopeField Scope = iota
	ScopeNode
)

// Node-level values compared by the differ.
const (
	NodeSpan        = "span"
	NodeAnnotations = "annotations"
	NodeHandle      = "handle"
	NodeCollapsed   = "collapsed"
)

// RootsField names the forest's root list in ops that edit it.
const RootsField = "roots"

// Op is one edit turning the live forest into the next one.
type Op struct {
	Kind  OpKind
	Scope Scope
	// Path is the id of the node that owns the edited value. It is empty
	// for edits of the root list.
	Path  string
	Field string
	// Index is the list position for list edits and -1 otherwise.
	Index int
	Value any

	owner ast.Node
}

func (op Op) String() string {
	target := op.Field
	if op.Path != "" {
		target = op.Path + "." + op.Field
	}
	if op.Index >= 0 {
		target = fmt.Sprintf("%s[%d]", target, op.Index)
	}
	switch v := op.Value.(type) {
	case nil:
		return fmt.Sprintf("%s %s", op.Kind, target)
	case ast.Node:
		return fmt.Sprintf("%s %s = %s", op.Kind, target, v.Kind())
	}
	return fmt.Sprintf("%s %s = %v", op.Kind, target, op.Value)
}

// Preserved reports whether op would overwrite renderer-owned state.
func (op Op) Preserved() bool {
	return op.Scope == ScopeNode && (op.Field == NodeHandle || op.Field == NodeCollapsed)
}

// Diff computes the edits that turn live into next. Nodes of the same kind
// at the same position are compared field by field; a node whose kind
// changed is replaced whole. Lists are compared by position, so moves show
// up as replacements. Live nodes must be indexed.
func Diff(live, next []ast.Node) []Op {
	d := &differ{}
	d.list(nil, "", RootsField, live, next)
	return d.ops
}

// FilterPreserved drops the ops that target a node's handle or collapsed
// flag. A variant field that happens to share one of those names is kept.
func FilterPreserved(ops []Op) []Op {
	out := make([]Op, 0, len(ops))
	for _, op := range ops {
		if !op.Preserved() {
			out = append(out, op)
		}
	}
	return out
}

type differ struct {
	ops []Op
}

func (d *differ) emit(op Op) {
	d.ops = append(d.ops, op)
}

func (d *differ) node(live, next ast.Node) {
	path := live.ID()
	set := func(field string, v any) {
		d.emit(Op{Kind: OpSet, Scope: ScopeNode, Path: path, Field: field, Index: -1, Value: v, owner: live})
	}
	if live.Span() != next.Span() {
		set(NodeSpan, next.Span())
	}
	if !live.Annotations().Equal(*next.Annotations()) {
		set(NodeAnnotations, *next.Annotations())
	}
	if !sameHandle(live.Handle(), next.Handle()) {
		set(NodeHandle, next.Handle())
	}
	if live.Collapsed() != next.Collapsed() {
		set(NodeCollapsed, next.Collapsed())
	}

	lf, nf := live.Fields(), next.Fields()
	for i, f := range lf {
		switch f.Kind {
		case ast.FieldScalar:
			if f.Scalar != nf[i].Scalar {
				d.emit(Op{Kind: OpSet, Path: path, Field: f.Name, Index: -1, Value: nf[i].Scalar, owner: live})
			}
		case ast.FieldNode:
			d.slot(live, path, f.Name, f.Node, nf[i].Node)
		case ast.FieldList:
			d.list(live, path, f.Name, f.List, nf[i].List)
		}
	}
}

func (d *differ) slot(owner ast.Node, path, field string, live, next ast.Node) {
	switch {
	case live == nil && next == nil:
	case live == nil || next == nil || live.Kind() != next.Kind():
		d.emit(Op{Kind: OpReplace, Path: path, Field: field, Index: -1, Value: next, owner: owner})
	default:
		d.node(live, next)
	}
}

func (d *differ) list(owner ast.Node, path, field string, live, next []ast.Node) {
	common := min(len(live), len(next))
	for i := 0; i < common; i++ {
		if live[i].Kind() != next[i].Kind() {
			d.emit(Op{Kind: OpReplace, Path: path, Field: field, Index: i, Value: next[i], owner: owner})
			continue
		}
		d.node(live[i], next[i])
	}
	for i := common; i < len(next); i++ {
		d.emit(Op{Kind: OpInsert, Path: path, Field: field, Index: i, Value: next[i], owner: owner})
	}
	// Removals run from the back so earlier indices stay valid.
	for i := len(live) - 1; i >= common; i-- {
		d.emit(Op{Kind: OpRemove, Path: path, Field: field, Index: i, owner: owner})
	}
}

// sameHandle compares handles without panicking on uncomparable values,
// which never count as equal.
func sameHandle(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	t := reflect.TypeOf(a)
	if t != reflect.TypeOf(b) || !t.Comparable() {
		return false
	}
	return a == b
}
