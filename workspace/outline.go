package workspace

import (
	"github.com/dhamidi/blocks/ast"
)

// Symbol is one entry of a document outline.
type Symbol struct {
	ID       string
	Name     string
	Detail   string
	Kind     ast.Kind
	Span     ast.Span
	NameSpan ast.Span
	Children []Symbol
}

// Outline returns the structure of a document: every node except atoms,
// comments and identifier lists, nested as in the forest.
func (w *Workspace) Outline(path string) []Symbol {
	var symbols []Symbol
	w.View(path, func(doc *Document) {
		symbols = outline(doc.Forest.Roots())
	})
	return symbols
}

func outline(nodes []ast.Node) []Symbol {
	var out []Symbol
	for _, n := range nodes {
		switch n.Kind() {
		case ast.KindLiteral, ast.KindBlank, ast.KindComment, ast.KindIdentifierList:
			continue
		}
		name, nameSpan := symbolName(n)
		out = append(out, Symbol{
			ID:       n.ID(),
			Name:     name,
			Detail:   n.Describe(0),
			Kind:     n.Kind(),
			Span:     n.Span(),
			NameSpan: nameSpan,
			Children: outline(n.Children()),
		})
	}
	return out
}

func symbolName(n ast.Node) (string, ast.Span) {
	var name ast.Node
	switch x := n.(type) {
	case *ast.VariableDefinition:
		name = x.Name
	case *ast.FunctionDefinition:
		name = x.Name
	case *ast.StructDefinition:
		name = x.Name
	case *ast.Expression:
		name = x.Func
	case *ast.LetLikeExpression:
		return x.Form, n.Span()
	case *ast.WhenUnless:
		return x.Form, n.Span()
	case *ast.Sequence:
		return x.Name, n.Span()
	case *ast.IfExpression:
		return "if", n.Span()
	case *ast.CondExpression:
		return "cond", n.Span()
	case *ast.CondClause:
		return "clause", n.Span()
	case *ast.LambdaExpression:
		return "lambda", n.Span()
	}
	if name == nil {
		return "(...)", n.Span()
	}
	return name.String(), name.Span()
}
