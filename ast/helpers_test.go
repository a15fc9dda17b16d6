package ast

func pos(line, col int) Position { return Position{Line: line, Column: col} }

func sym(line, from, to int, name string) *Literal {
	return &Literal{Base: At(pos(line, from), pos(line, to)), Value: name, DataType: DataSymbol}
}

func num(line, from, to int, v string) *Literal {
	return &Literal{Base: At(pos(line, from), pos(line, to)), Value: v, DataType: DataNumber}
}

// sampleForest builds, on two lines:
//
//	(+ 1 (* 2 3))
//	(define x 5)
func sampleForest() []Node {
	inner := &Expression{
		Base: At(pos(0, 5), pos(0, 12)),
		Func: sym(0, 6, 7, "*"),
		Args: []Node{num(0, 8, 9, "2"), num(0, 10, 11, "3")},
	}
	outer := &Expression{
		Base: At(pos(0, 0), pos(0, 13)),
		Func: sym(0, 1, 2, "+"),
		Args: []Node{num(0, 3, 4, "1"), inner},
	}
	def := &VariableDefinition{
		Base: At(pos(1, 0), pos(1, 12)),
		Name: sym(1, 8, 9, "x"),
		Body: num(1, 10, 11, "5"),
	}
	return []Node{outer, def}
}
