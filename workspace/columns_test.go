package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/blocks/ast"
)

func TestLineIndexColumns(t *testing.T) {
	li := newLineIndex([]byte("(f \"é\" x)\n(g \"😀\" y)\nplain"))

	tests := []struct {
		name  string
		line  int
		bytes int
		utf16 int
	}{
		{"start of line", 0, 0, 0},
		{"before the two byte rune", 0, 4, 4},
		{"after the two byte rune", 0, 6, 5},
		{"after the surrogate pair", 1, 8, 6},
		{"end of the wide line", 1, 12, 10},
		{"ascii line", 2, 3, 3},
		{"past the end of a line", 0, 12, 11},
		{"past the last line", 7, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.utf16, li.utf16Column(tt.line, tt.bytes))
			assert.Equal(t, tt.bytes, li.byteColumn(tt.line, tt.utf16))
		})
	}
}

func TestLineIndexRanges(t *testing.T) {
	li := newLineIndex([]byte("(g \"😀\" y)"))
	span := ast.Span{From: ast.Position{Line: 0, Column: 3}, To: ast.Position{Line: 0, Column: 9}}
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 3},
		End:   protocol.Position{Line: 0, Character: 7},
	}, li.toRange(span))
	assert.Equal(t, span.To, li.fromPosition(protocol.Position{Line: 0, Character: 7}))

	var ascii lineIndex
	assert.Equal(t, protocol.Position{Line: 2, Character: 5}, ascii.toPosition(ast.Position{Line: 2, Column: 5}))
}
