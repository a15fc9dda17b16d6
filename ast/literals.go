package ast

import "strings"

// Data types a Literal may carry.
const (
	DataNumber  = "number"
	DataString  = "string"
	DataBoolean = "boolean"
	DataSymbol  = "symbol"
	DataChar    = "char"
	DataBlank   = "blank"
)

// Literal is an atom. Value is the literal exactly as written, quotes and
// prefixes included.
type Literal struct {
	Base
	Value    string
	DataType string
}

func (x *Literal) Kind() Kind       { return KindLiteral }
func (x *Literal) Children() []Node { return nil }

func (x *Literal) Fields() []Field {
	return []Field{
		scalarField("value", x.Value, func(v any) { x.Value = asString(v) }),
		scalarField("dataType", x.DataType, func(v any) { x.DataType = asString(v) }),
	}
}

func (x *Literal) Describe(depth int) string {
	switch x.DataType {
	case DataString:
		return "the string " + x.Value
	case DataChar:
		return "the character " + strings.TrimPrefix(x.Value, `#\`)
	}
	return x.Value
}

func (x *Literal) String() string { return x.Value }

// Blank is a placeholder the user has yet to fill in.
type Blank struct {
	Base
	Value    string
	DataType string
}

func (x *Blank) Kind() Kind       { return KindBlank }
func (x *Blank) Children() []Node { return nil }

func (x *Blank) Fields() []Field {
	return []Field{
		scalarField("value", x.Value, func(v any) { x.Value = asString(v) }),
		scalarField("dataType", x.DataType, func(v any) { x.DataType = asString(v) }),
	}
}

func (x *Blank) Describe(depth int) string { return "a blank" }

func (x *Blank) String() string {
	if x.Value == "" {
		return "..."
	}
	return x.Value
}

// Comment is source commentary, either standing on its own in the tree or
// attached to a node through its Annotations.
type Comment struct {
	Base
	Text string
}

func (x *Comment) Kind() Kind       { return KindComment }
func (x *Comment) Children() []Node { return nil }

func (x *Comment) Fields() []Field {
	return []Field{
		scalarField("comment", x.Text, func(v any) { x.Text = asString(v) }),
	}
}

func (x *Comment) Describe(depth int) string { return "comment: " + x.Text }

// String renders single-line text as a line comment and anything longer as
// a block comment. Text that would end the block early becomes one line
// comment per line instead.
func (x *Comment) String() string {
	if !strings.Contains(x.Text, "\n") {
		return lineComment(x.Text)
	}
	if !strings.Contains(x.Text, "|#") {
		return "#| " + x.Text + " |#"
	}
	lines := strings.Split(x.Text, "\n")
	for i, l := range lines {
		lines[i] = lineComment(l)
	}
	return strings.Join(lines, "\n")
}

func lineComment(text string) string {
	if text == "" {
		return ";"
	}
	return "; " + text
}
