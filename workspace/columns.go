package workspace

import (
	"bytes"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/blocks/ast"
)

// lineIndex converts between the byte columns of spans and the UTF-16
// columns of LSP positions. The zero value treats every line as ASCII.
type lineIndex [][]byte

func newLineIndex(text []byte) lineIndex {
	return bytes.Split(text, []byte("\n"))
}

func (li lineIndex) line(n int) []byte {
	if n < 0 || n >= len(li) {
		return nil
	}
	return li[n]
}

// utf16Column counts the UTF-16 code units before byte column col of line
// n. Columns past the end of the line count one unit per byte.
func (li lineIndex) utf16Column(n, col int) int {
	line := li.line(n)
	units := 0
	for i := 0; i < col; {
		if i >= len(line) {
			return units + col - i
		}
		r, size := utf8.DecodeRune(line[i:])
		units += utf16.RuneLen(r)
		i += size
	}
	return units
}

// byteColumn is the inverse of utf16Column.
func (li lineIndex) byteColumn(n, char int) int {
	line := li.line(n)
	units, i := 0, 0
	for units < char {
		if i >= len(line) {
			return i + char - units
		}
		r, size := utf8.DecodeRune(line[i:])
		units += utf16.RuneLen(r)
		i += size
	}
	return i
}

func (li lineIndex) fromPosition(p protocol.Position) ast.Position {
	line := int(p.Line)
	return ast.Position{Line: line, Column: li.byteColumn(line, int(p.Character))}
}

func (li lineIndex) toPosition(p ast.Position) protocol.Position {
	return protocol.Position{
		Line:      protocol.UInteger(p.Line),
		Character: protocol.UInteger(li.utf16Column(p.Line, p.Column)),
	}
}

func (li lineIndex) toRange(s ast.Span) protocol.Range {
	return protocol.Range{Start: li.toPosition(s.From), End: li.toPosition(s.To)}
}
