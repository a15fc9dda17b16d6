package ast

// Kind is the discriminant of a node variant.
type Kind int

const (
	KindInvalid Kind = iota

	KindUnknown

	// Expressions
	KindExpression
	KindLambdaExpression
	KindCondClause
	KindCondExpression
	KindIfExpression
	KindLetLikeExpression
	KindWhenUnless
	KindSequence

	// Definitions
	KindIdentifierList
	KindStructDefinition
	KindVariableDefinition
	KindFunctionDefinition

	// Atoms
	KindLiteral
	KindBlank
	KindComment
)

var kindNames = map[Kind]string{
	KindInvalid:            "Invalid",
	KindUnknown:            "Unknown",
	KindExpression:         "Expression",
	KindLambdaExpression:   "LambdaExpression",
	KindCondClause:         "CondClause",
	KindCondExpression:     "CondExpression",
	KindIfExpression:       "IfExpression",
	KindLetLikeExpression:  "LetLikeExpression",
	KindWhenUnless:         "WhenUnless",
	KindSequence:           "Sequence",
	KindIdentifierList:     "IdentifierList",
	KindStructDefinition:   "StructDefinition",
	KindVariableDefinition: "VariableDefinition",
	KindFunctionDefinition: "FunctionDefinition",
	KindLiteral:            "Literal",
	KindBlank:              "Blank",
	KindComment:            "Comment",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(?)"
}

// Valid reports whether k names a concrete node variant.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok && k != KindInvalid
}

// ParseKind maps a kind name as produced by Kind.String back to its Kind.
func ParseKind(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	if !ok || k == KindInvalid {
		return KindInvalid, false
	}
	return k, true
}

// New returns a zero-valued node of the given kind, or nil if the kind
// has no variant.
func New(k Kind) Node {
	switch k {
	case KindUnknown:
		return &Unknown{}
	case KindExpression:
		return &Expression{}
	case KindLambdaExpression:
		return &LambdaExpression{}
	case KindCondClause:
		return &CondClause{}
	case KindCondExpression:
		return &CondExpression{}
	case KindIfExpression:
		return &IfExpression{}
	case KindLetLikeExpression:
		return &LetLikeExpression{}
	case KindWhenUnless:
		return &WhenUnless{}
	case KindSequence:
		return &Sequence{}
	case KindIdentifierList:
		return &IdentifierList{}
	case KindStructDefinition:
		return &StructDefinition{}
	case KindVariableDefinition:
		return &VariableDefinition{}
	case KindFunctionDefinition:
		return &FunctionDefinition{}
	case KindLiteral:
		return &Literal{}
	case KindBlank:
		return &Blank{}
	case KindComment:
		return &Comment{}
	}
	return nil
}
