package format

import (
	"io"
	"strings"

	"github.com/dhamidi/blocks/ast"
)

// SourceEncoder prints the forest back as source text, one root per line.
// A root's own comment trails it on its last line and comments attached
// further down are printed on their own lines in front of their node, so
// reading the output attaches every comment to the same node again.
type SourceEncoder struct {
	w io.Writer
}

func NewSourceEncoder(w io.Writer) *SourceEncoder {
	return &SourceEncoder{w: w}
}

func (e *SourceEncoder) Encode(roots []ast.Node) error {
	text, err := e.Marshal(roots)
	return write(e.w, text, err)
}

func (e *SourceEncoder) Marshal(roots []ast.Node) ([]byte, error) {
	var sb strings.Builder
	for _, r := range roots {
		sb.WriteString(r.String())
		if c := r.Annotations().Comment; c != nil && r.Kind() != ast.KindComment {
			sb.WriteByte(' ')
			sb.WriteString(trailing(c.Text))
		}
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}

// trailing renders text so that all of it starts on the current line.
// Comments on one line merge line by line, so text a single block cannot
// hold becomes a run of block comments closed by a line comment.
func trailing(text string) string {
	if !strings.Contains(text, "\n") || !strings.Contains(text, "|#") {
		return (&ast.Comment{Text: text}).String()
	}
	lines := strings.Split(text, "\n")
	parts := make([]string, len(lines))
	for i, l := range lines[:len(lines)-1] {
		// a block cannot hold its own terminator
		parts[i] = "#| " + strings.ReplaceAll(l, "|#", "| #") + " |#"
	}
	last := lines[len(lines)-1]
	if last == "" {
		parts[len(parts)-1] = ";"
	} else {
		parts[len(parts)-1] = "; " + last
	}
	return strings.Join(parts, " ")
}
