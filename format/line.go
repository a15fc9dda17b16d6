package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/blocks/ast"
)

// LineEncoder writes one tab separated line per node in pre-order: id,
// kind, span and source. Attached comments get a line of their own
// right after their node, with the id suffixed by "#comment".
type LineEncoder struct {
	w io.Writer
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(roots []ast.Node) error {
	text, err := e.Marshal(roots)
	return write(e.w, text, err)
}

func (e *LineEncoder) Marshal(roots []ast.Node) ([]byte, error) {
	var sb strings.Builder
	for n := range ast.All(roots) {
		fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\n", n.ID(), n.Kind(), n.Span(), oneLine(n.String()))
		if c := n.Annotations().Comment; c != nil {
			fmt.Fprintf(&sb, "%s#comment\t%s\t%s\t%s\n", n.ID(), c.Kind(), c.Span(), oneLine(c.Text))
		}
	}
	return []byte(sb.String()), nil
}

func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", `\n`)
}
