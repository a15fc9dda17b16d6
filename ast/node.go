// Package ast defines the block representation of a program: a forest of
// typed syntax nodes that carry a source span, a path id and the state a
// renderer attaches to them.
package ast

// Node is one syntactic unit. Every variant embeds Base and reports its
// children in the order that defines their path ids.
type Node interface {
	Kind() Kind

	// Span returns the source range of the node.
	Span() Span

	// ID returns the path id assigned by the last indexing pass, or the
	// empty string for a node that was never indexed.
	ID() string

	// Children returns the child nodes in id order. Scalars and the
	// attached comment are never children.
	Children() []Node

	// Fields returns the named fields of the variant in declaration order.
	Fields() []Field

	// Describe returns a spoken description of the node. Children are
	// described down to depth levels; depth <= 0 yields a short label.
	Describe(depth int) string

	// String renders the node back to source text. Formatting is not
	// preserved but reading the result yields an equivalent node.
	String() string

	Annotations() *Annotations

	// Handle returns the opaque value the renderer associated with this
	// node.
	Handle() any
	SetHandle(h any)

	Collapsed() bool
	SetCollapsed(collapsed bool)

	base() *Base
}

// Annotations holds presentation metadata that travels with a node.
type Annotations struct {
	AriaLabel string
	// Comment is a comment attached to the node rather than standing on
	// its own in the tree.
	Comment *Comment
}

// Equal reports whether a and b carry the same metadata. Attached comments
// compare by text and span.
func (a Annotations) Equal(b Annotations) bool {
	if a.AriaLabel != b.AriaLabel {
		return false
	}
	if (a.Comment == nil) != (b.Comment == nil) {
		return false
	}
	if a.Comment == nil {
		return true
	}
	return a.Comment.Text == b.Comment.Text && a.Comment.Loc == b.Comment.Loc
}

// Base holds the state shared by all node variants.
type Base struct {
	Loc   Span
	Notes Annotations

	id        string
	slot      int
	handle    any
	collapsed bool
}

func (b *Base) Span() Span                { return b.Loc }
func (b *Base) ID() string                { return b.id }
func (b *Base) Annotations() *Annotations { return &b.Notes }
func (b *Base) Handle() any               { return b.handle }
func (b *Base) SetHandle(h any)           { b.handle = h }
func (b *Base) Collapsed() bool           { return b.collapsed }
func (b *Base) SetCollapsed(c bool)       { b.collapsed = c }
func (b *Base) base() *Base               { return b }

// SetSpan moves n to s without checking it. Callers validate first.
func SetSpan(n Node, s Span) {
	n.base().Loc = s
}

// At returns a Base spanning from..to. It is meant for building literals of
// known-good positions; use NewSpan to check untrusted ones.
func At(from, to Position) Base {
	return Base{Loc: Span{From: from, To: to}}
}

// FieldKind tells which of Field's value members is meaningful.
type FieldKind int

const (
	FieldNode FieldKind = iota
	FieldList
	FieldScalar
)

// Field is one named member of a node variant together with a setter that
// writes the member back on the owning node.
type Field struct {
	Name string
	Kind FieldKind
	// Want restricts the kind of child nodes the field accepts.
	// KindInvalid accepts any kind.
	Want Kind

	Node   Node
	List   []Node
	Scalar any

	set func(any)
}

// Value returns the member that Kind selects.
func (f Field) Value() any {
	switch f.Kind {
	case FieldNode:
		return f.Node
	case FieldList:
		return f.List
	}
	return f.Scalar
}

// Set writes v into the field on its owning node. v must be a Node (or
// nil) for FieldNode, a []Node for FieldList and a string or bool
// matching the current scalar for FieldScalar.
func (f Field) Set(v any) {
	f.set(v)
}

// Accepts reports whether n may be stored in the field.
func (f Field) Accepts(n Node) bool {
	return f.Want == KindInvalid || n == nil || n.Kind() == f.Want
}

func nodeField(name string, n Node, set func(any)) Field {
	return Field{Name: name, Kind: FieldNode, Node: n, set: set}
}

func typedField(name string, want Kind, n Node, set func(any)) Field {
	return Field{Name: name, Kind: FieldNode, Want: want, Node: n, set: set}
}

func listField(name string, want Kind, l []Node, set func(any)) Field {
	return Field{Name: name, Kind: FieldList, Want: want, List: l, set: set}
}

func scalarField(name string, v any, set func(any)) Field {
	return Field{Name: name, Kind: FieldScalar, Scalar: v, set: set}
}

func asNode(v any) Node {
	n, _ := v.(Node)
	return n
}

func asList(v any) []Node {
	l, _ := v.([]Node)
	return l
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// Cast returns n as the variant T.
func Cast[T Node](n Node) (T, error) {
	t, ok := n.(T)
	if ok {
		return t, nil
	}
	var zero T
	e := &MismatchError{}
	if n != nil {
		e.Got = n.Kind()
	}
	// Kind never dereferences its receiver, so a typed nil answers it.
	if w := Node(zero); w != nil {
		e.Want = w.Kind()
	}
	return zero, e
}
