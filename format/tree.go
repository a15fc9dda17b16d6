package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dhamidi/blocks/ast"
)

// TreeEncoder draws the forest as an indented outline:
//
//	0 Expression 0:0-0:13
//	  0,0 Literal 0:1-0:2 "+"
type TreeEncoder struct {
	w     io.Writer
	id    func(a ...any) string
	kind  func(a ...any) string
	span  func(a ...any) string
	value func(a ...any) string
	note  func(a ...any) string
}

func NewTreeEncoder(w io.Writer, opts Options) *TreeEncoder {
	paint := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return &TreeEncoder{
		w:     w,
		id:    paint(color.Faint),
		kind:  paint(color.FgCyan, color.Bold),
		span:  paint(color.FgYellow),
		value: paint(color.FgGreen),
		note:  paint(color.FgMagenta, color.Italic),
	}
}

func (e *TreeEncoder) Encode(roots []ast.Node) error {
	text, err := e.Marshal(roots)
	return write(e.w, text, err)
}

func (e *TreeEncoder) Marshal(roots []ast.Node) ([]byte, error) {
	var sb strings.Builder
	for _, r := range roots {
		e.node(&sb, r, 0)
	}
	return []byte(sb.String()), nil
}

func (e *TreeEncoder) node(sb *strings.Builder, n ast.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(sb, "%s%s %s %s", indent, e.id(n.ID()), e.kind(n.Kind()), e.span(n.Span()))
	for _, f := range n.Fields() {
		if f.Kind == ast.FieldScalar {
			fmt.Fprintf(sb, " %s", e.value(fmt.Sprintf("%s=%q", f.Name, fmt.Sprint(f.Scalar))))
		}
	}
	if n.Collapsed() {
		sb.WriteString(" " + e.note("[collapsed]"))
	}
	sb.WriteByte('\n')
	if c := n.Annotations().Comment; c != nil {
		fmt.Fprintf(sb, "%s  %s %s\n", indent, e.note(c.String()), e.span(c.Span()))
	}
	for _, c := range n.Children() {
		e.node(sb, c, depth+1)
	}
}
