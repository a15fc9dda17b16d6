package ast

import (
	"fmt"
	"strings"
)

// Unknown holds a parenthesized form the reader could not classify. Elts
// keeps every element, head included.
type Unknown struct {
	Base
	Elts []Node
}

func (x *Unknown) Kind() Kind       { return KindUnknown }
func (x *Unknown) Children() []Node { return x.Elts }

func (x *Unknown) Fields() []Field {
	return []Field{
		listField("elts", KindInvalid, x.Elts, func(v any) { x.Elts = asList(v) }),
	}
}

func (x *Unknown) Describe(depth int) string {
	if depth <= 0 || len(x.Elts) == 0 {
		return "an unknown expression"
	}
	return "an unknown expression with " + plural(len(x.Elts), "element") + ": " + describeAll(x.Elts, depth-1)
}

func (x *Unknown) String() string { return paren(sources(x.Elts)...) }

// Expression is a function application.
type Expression struct {
	Base
	Func Node
	Args []Node
}

func (x *Expression) Kind() Kind { return KindExpression }

func (x *Expression) Children() []Node {
	out := make([]Node, 0, len(x.Args)+1)
	if x.Func != nil {
		out = append(out, x.Func)
	}
	return append(out, x.Args...)
}

func (x *Expression) Fields() []Field {
	return []Field{
		nodeField("func", x.Func, func(v any) { x.Func = asNode(v) }),
		listField("args", KindInvalid, x.Args, func(v any) { x.Args = asList(v) }),
	}
}

func (x *Expression) Describe(depth int) string {
	if depth <= 0 || x.Func == nil {
		return "an expression"
	}
	desc := fmt.Sprintf("%s expression, %s", x.Func.Describe(depth-1), plural(len(x.Args), "input"))
	if len(x.Args) > 0 {
		desc += ": " + describeAll(x.Args, depth-1)
	}
	return desc
}

func (x *Expression) String() string {
	parts := make([]string, 0, len(x.Args)+1)
	if x.Func != nil {
		parts = append(parts, sourceOf(x.Func))
	}
	return paren(append(parts, sources(x.Args)...)...)
}

// LambdaExpression is an anonymous function.
type LambdaExpression struct {
	Base
	Args *IdentifierList
	Body Node
}

func (x *LambdaExpression) Kind() Kind { return KindLambdaExpression }

func (x *LambdaExpression) Children() []Node {
	return compact(idList(x.Args), x.Body)
}

func (x *LambdaExpression) Fields() []Field {
	return []Field{
		typedField("args", KindIdentifierList, idList(x.Args), func(v any) { x.Args, _ = v.(*IdentifierList) }),
		nodeField("body", x.Body, func(v any) { x.Body = asNode(v) }),
	}
}

func (x *LambdaExpression) Describe(depth int) string {
	if depth <= 0 || x.Args == nil || x.Body == nil {
		return "an anonymous function"
	}
	return fmt.Sprintf("an anonymous function of %s, with body %s", x.Args.Describe(depth-1), x.Body.Describe(depth-1))
}

func (x *LambdaExpression) String() string {
	return paren("lambda", sourceOf(idList(x.Args)), sourceOf(x.Body))
}

// CondClause is one [test then...] arm of a cond.
type CondClause struct {
	Base
	TestExpr  Node
	ThenSteps []Node
}

func (x *CondClause) Kind() Kind { return KindCondClause }

func (x *CondClause) Children() []Node {
	out := make([]Node, 0, len(x.ThenSteps)+1)
	if x.TestExpr != nil {
		out = append(out, x.TestExpr)
	}
	return append(out, x.ThenSteps...)
}

func (x *CondClause) Fields() []Field {
	return []Field{
		nodeField("testExpr", x.TestExpr, func(v any) { x.TestExpr = asNode(v) }),
		listField("thenSteps", KindInvalid, x.ThenSteps, func(v any) { x.ThenSteps = asList(v) }),
	}
}

func (x *CondClause) Describe(depth int) string {
	if depth <= 0 || x.TestExpr == nil {
		return "a condition"
	}
	return fmt.Sprintf("condition: if %s, then %s", x.TestExpr.Describe(depth-1), describeAll(x.ThenSteps, depth-1))
}

func (x *CondClause) String() string {
	parts := []string{sourceOf(x.TestExpr)}
	return enclose("[", "]", append(parts, sources(x.ThenSteps)...))
}

// CondExpression is a multi-armed conditional.
type CondExpression struct {
	Base
	Clauses []Node
}

func (x *CondExpression) Kind() Kind       { return KindCondExpression }
func (x *CondExpression) Children() []Node { return x.Clauses }

func (x *CondExpression) Fields() []Field {
	return []Field{
		listField("clauses", KindCondClause, x.Clauses, func(v any) { x.Clauses = asList(v) }),
	}
}

func (x *CondExpression) Describe(depth int) string {
	if depth <= 0 {
		return "a conditional expression"
	}
	return "a conditional expression with " + plural(len(x.Clauses), "condition") + ": " + describeAll(x.Clauses, depth-1)
}

func (x *CondExpression) String() string {
	return paren(append([]string{"cond"}, sources(x.Clauses)...)...)
}

// IfExpression is a two-armed conditional.
type IfExpression struct {
	Base
	TestExpr Node
	ThenExpr Node
	ElseExpr Node
}

func (x *IfExpression) Kind() Kind { return KindIfExpression }

func (x *IfExpression) Children() []Node {
	return compact(x.TestExpr, x.ThenExpr, x.ElseExpr)
}

func (x *IfExpression) Fields() []Field {
	return []Field{
		nodeField("testExpr", x.TestExpr, func(v any) { x.TestExpr = asNode(v) }),
		nodeField("thenExpr", x.ThenExpr, func(v any) { x.ThenExpr = asNode(v) }),
		nodeField("elseExpr", x.ElseExpr, func(v any) { x.ElseExpr = asNode(v) }),
	}
}

func (x *IfExpression) Describe(depth int) string {
	if depth <= 0 || x.TestExpr == nil || x.ThenExpr == nil || x.ElseExpr == nil {
		return "an if expression"
	}
	return fmt.Sprintf("an if expression: if %s, then %s, else %s",
		x.TestExpr.Describe(depth-1), x.ThenExpr.Describe(depth-1), x.ElseExpr.Describe(depth-1))
}

func (x *IfExpression) String() string {
	return paren("if", sourceOf(x.TestExpr), sourceOf(x.ThenExpr), sourceOf(x.ElseExpr))
}

// LetLikeExpression covers let, let* and letrec. Each binding is a
// VariableDefinition rendered as [name value].
type LetLikeExpression struct {
	Base
	Form     string
	Bindings []Node
	Expr     Node
}

func (x *LetLikeExpression) Kind() Kind { return KindLetLikeExpression }

func (x *LetLikeExpression) Children() []Node {
	out := make([]Node, 0, len(x.Bindings)+1)
	out = append(out, x.Bindings...)
	if x.Expr != nil {
		out = append(out, x.Expr)
	}
	return out
}

func (x *LetLikeExpression) Fields() []Field {
	return []Field{
		scalarField("form", x.Form, func(v any) { x.Form = asString(v) }),
		listField("bindings", KindVariableDefinition, x.Bindings, func(v any) { x.Bindings = asList(v) }),
		nodeField("expr", x.Expr, func(v any) { x.Expr = asNode(v) }),
	}
}

func (x *LetLikeExpression) Describe(depth int) string {
	if depth <= 0 || x.Expr == nil {
		return "a " + x.Form + " expression"
	}
	return fmt.Sprintf("a %s expression with %s, returning %s",
		x.Form, plural(len(x.Bindings), "binding"), x.Expr.Describe(depth-1))
}

func (x *LetLikeExpression) String() string {
	bindings := make([]string, len(x.Bindings))
	for i, b := range x.Bindings {
		if def, ok := b.(*VariableDefinition); ok {
			bindings[i] = commented(def, "["+sourceOf(def.Name)+" "+sourceOf(def.Body)+"]")
		} else {
			bindings[i] = sourceOf(b)
		}
	}
	return paren(x.Form, paren(bindings...), sourceOf(x.Expr))
}

// WhenUnless is a one-armed conditional with a body of several steps.
type WhenUnless struct {
	Base
	Form      string
	Predicate Node
	Exprs     []Node
}

func (x *WhenUnless) Kind() Kind { return KindWhenUnless }

func (x *WhenUnless) Children() []Node {
	out := make([]Node, 0, len(x.Exprs)+1)
	if x.Predicate != nil {
		out = append(out, x.Predicate)
	}
	return append(out, x.Exprs...)
}

func (x *WhenUnless) Fields() []Field {
	return []Field{
		scalarField("form", x.Form, func(v any) { x.Form = asString(v) }),
		nodeField("predicate", x.Predicate, func(v any) { x.Predicate = asNode(v) }),
		listField("exprs", KindInvalid, x.Exprs, func(v any) { x.Exprs = asList(v) }),
	}
}

func (x *WhenUnless) Describe(depth int) string {
	if depth <= 0 || x.Predicate == nil {
		return "a " + x.Form + " expression"
	}
	return fmt.Sprintf("a %s expression: %s %s, %s", x.Form, x.Form, x.Predicate.Describe(depth-1), describeAll(x.Exprs, depth-1))
}

func (x *WhenUnless) String() string {
	return paren(append([]string{x.Form, sourceOf(x.Predicate)}, sources(x.Exprs)...)...)
}

// Sequence is an ordered group of expressions such as a begin block.
type Sequence struct {
	Base
	Name  string
	Exprs []Node
}

func (x *Sequence) Kind() Kind       { return KindSequence }
func (x *Sequence) Children() []Node { return x.Exprs }

func (x *Sequence) Fields() []Field {
	return []Field{
		scalarField("name", x.Name, func(v any) { x.Name = asString(v) }),
		listField("exprs", KindInvalid, x.Exprs, func(v any) { x.Exprs = asList(v) }),
	}
}

func (x *Sequence) Describe(depth int) string {
	if depth <= 0 {
		return "a sequence"
	}
	return "a sequence containing " + describeAll(x.Exprs, depth-1)
}

func (x *Sequence) String() string {
	return paren(append([]string{x.Name}, sources(x.Exprs)...)...)
}

func compact(nodes ...Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func idList(l *IdentifierList) Node {
	if l == nil {
		return nil
	}
	return l
}

// sourceOf renders n where it sits inside its parent. An attached comment
// goes on its own lines in front of the node, where reading attaches it to
// the node again.
func sourceOf(n Node) string {
	if n == nil {
		return "..."
	}
	return commented(n, n.String())
}

func commented(n Node, text string) string {
	c := n.Annotations().Comment
	if c == nil {
		return text
	}
	return "\n" + c.String() + "\n" + text
}

func sources(nodes []Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = sourceOf(n)
	}
	return out
}

func paren(parts ...string) string { return enclose("(", ")", parts) }

// enclose joins parts with spaces. A part that opens with a comment line
// already starts on a line of its own.
func enclose(open, close string, parts []string) string {
	var sb strings.Builder
	sb.WriteString(open)
	for i, p := range parts {
		if i > 0 && !strings.HasPrefix(p, "\n") {
			sb.WriteByte(' ')
		}
		sb.WriteString(p)
	}
	sb.WriteString(close)
	return sb.String()
}

func describeAll(nodes []Node, depth int) string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Describe(depth)
	}
	return strings.Join(out, ", ")
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
