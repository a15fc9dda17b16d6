package ast

import "fmt"

// IdentifierList is a parenthesized list of names, such as the parameters
// of a function or the fields of a struct. ListKind says which.
type IdentifierList struct {
	Base
	ListKind string
	Ids      []Node
}

func (x *IdentifierList) Kind() Kind       { return KindIdentifierList }
func (x *IdentifierList) Children() []Node { return x.Ids }

func (x *IdentifierList) Fields() []Field {
	return []Field{
		scalarField("listKind", x.ListKind, func(v any) { x.ListKind = asString(v) }),
		listField("ids", KindLiteral, x.Ids, func(v any) { x.Ids = asList(v) }),
	}
}

func (x *IdentifierList) Describe(depth int) string {
	if depth <= 0 || len(x.Ids) == 0 {
		return plural(len(x.Ids), listNoun(x.ListKind))
	}
	return plural(len(x.Ids), listNoun(x.ListKind)) + ": " + describeAll(x.Ids, depth-1)
}

func (x *IdentifierList) String() string { return paren(sources(x.Ids)...) }

func listNoun(listKind string) string {
	switch listKind {
	case "params":
		return "parameter"
	case "fields":
		return "field"
	}
	return "identifier"
}

// StructDefinition declares a record type. Members lists the field names.
type StructDefinition struct {
	Base
	Name    Node
	Members *IdentifierList
}

func (x *StructDefinition) Kind() Kind { return KindStructDefinition }

func (x *StructDefinition) Children() []Node {
	return compact(x.Name, idList(x.Members))
}

func (x *StructDefinition) Fields() []Field {
	return []Field{
		nodeField("name", x.Name, func(v any) { x.Name = asNode(v) }),
		typedField("fields", KindIdentifierList, idList(x.Members), func(v any) { x.Members, _ = v.(*IdentifierList) }),
	}
}

func (x *StructDefinition) Describe(depth int) string {
	if depth <= 0 || x.Name == nil || x.Members == nil {
		return "a structure definition"
	}
	return fmt.Sprintf("define %s to be a structure with %s", x.Name.Describe(depth-1), x.Members.Describe(depth-1))
}

func (x *StructDefinition) String() string {
	return paren("define-struct", sourceOf(x.Name), sourceOf(idList(x.Members)))
}

// VariableDefinition binds a name to a value.
type VariableDefinition struct {
	Base
	Name Node
	Body Node
}

func (x *VariableDefinition) Kind() Kind { return KindVariableDefinition }

func (x *VariableDefinition) Children() []Node {
	return compact(x.Name, x.Body)
}

func (x *VariableDefinition) Fields() []Field {
	return []Field{
		nodeField("name", x.Name, func(v any) { x.Name = asNode(v) }),
		nodeField("body", x.Body, func(v any) { x.Body = asNode(v) }),
	}
}

func (x *VariableDefinition) Describe(depth int) string {
	if depth <= 0 || x.Name == nil || x.Body == nil {
		return "a variable definition"
	}
	return fmt.Sprintf("define %s to be %s", x.Name.Describe(depth-1), x.Body.Describe(depth-1))
}

func (x *VariableDefinition) String() string {
	return paren("define", sourceOf(x.Name), sourceOf(x.Body))
}

// FunctionDefinition binds a name to a function.
type FunctionDefinition struct {
	Base
	Name   Node
	Params *IdentifierList
	Body   Node
}

func (x *FunctionDefinition) Kind() Kind { return KindFunctionDefinition }

func (x *FunctionDefinition) Children() []Node {
	return compact(x.Name, idList(x.Params), x.Body)
}

func (x *FunctionDefinition) Fields() []Field {
	return []Field{
		nodeField("name", x.Name, func(v any) { x.Name = asNode(v) }),
		typedField("params", KindIdentifierList, idList(x.Params), func(v any) { x.Params, _ = v.(*IdentifierList) }),
		nodeField("body", x.Body, func(v any) { x.Body = asNode(v) }),
	}
}

func (x *FunctionDefinition) Describe(depth int) string {
	if depth <= 0 || x.Name == nil || x.Params == nil || x.Body == nil {
		return "a function definition"
	}
	return fmt.Sprintf("define %s to be a function of %s, with body %s",
		x.Name.Describe(depth-1), x.Params.Describe(depth-1), x.Body.Describe(depth-1))
}

func (x *FunctionDefinition) String() string {
	head := []string{sourceOf(x.Name)}
	if x.Params != nil {
		head = append(head, sources(x.Params.Ids)...)
	}
	return paren("define", paren(head...), sourceOf(x.Body))
}
