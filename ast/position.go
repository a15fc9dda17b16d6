package ast

import "fmt"

// Position is a cursor location in a document. Line and Column are both
// zero-based; a position sits between characters.
type Position struct {
	Line   int
	Column int
}

// Compare orders positions by line, then column. It returns -1, 0 or 1.
func (p Position) Compare(q Position) int {
	switch {
	case p.Line < q.Line:
		return -1
	case p.Line > q.Line:
		return 1
	case p.Column < q.Column:
		return -1
	case p.Column > q.Column:
		return 1
	}
	return 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span delimits the source range of a node. From is the position before the
// first character and To the position after the last one.
type Span struct {
	From Position
	To   Position
}

// NewSpan returns the span [from, to], failing when from comes after to.
func NewSpan(from, to Position) (Span, error) {
	s := Span{From: from, To: to}
	if !s.Valid() {
		return Span{}, &SpanError{Span: s}
	}
	return s, nil
}

// Valid reports whether From does not come after To.
func (s Span) Valid() bool {
	return s.From.Compare(s.To) <= 0
}

// Contains reports whether pos lies within the span, boundaries included.
func (s Span) Contains(pos Position) bool {
	return s.From.Compare(pos) <= 0 && pos.Compare(s.To) <= 0
}

// Lines returns the number of lines the span touches.
func (s Span) Lines() int {
	return s.To.Line - s.From.Line + 1
}

func (s Span) String() string {
	return s.From.String() + "-" + s.To.String()
}
