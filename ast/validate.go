package ast

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Validate checks every node of the given trees, attached comments
// included: the kind must name a variant, the span must not be reversed
// and each child must be of the kind its field requires. All problems are
// reported together.
func Validate(roots ...Node) error {
	var result *multierror.Error
	for _, r := range roots {
		if r == nil {
			result = multierror.Append(result, fmt.Errorf("nil root node"))
			continue
		}
		Inspect(r, func(n Node) bool {
			if n == nil {
				// reported by the parent's field check
				return false
			}
			if err := validateNode(n); err != nil {
				result = multierror.Append(result, err)
			}
			return n.Kind().Valid()
		})
	}
	return result.ErrorOrNil()
}

func validateNode(n Node) error {
	if !n.Kind().Valid() {
		return &KindError{Kind: n.Kind()}
	}
	var result *multierror.Error
	if !n.Span().Valid() {
		result = multierror.Append(result, &SpanError{Span: n.Span(), Node: n})
	}
	if c := n.Annotations().Comment; c != nil && !c.Span().Valid() {
		result = multierror.Append(result, &SpanError{Span: c.Span(), Node: c})
	}
	for _, f := range n.Fields() {
		switch f.Kind {
		case FieldNode:
			if !f.Accepts(f.Node) {
				result = multierror.Append(result, &MismatchError{Want: f.Want, Got: f.Node.Kind(), Field: f.Name})
			}
		case FieldList:
			for _, c := range f.List {
				if c == nil {
					result = multierror.Append(result, fmt.Errorf("field %q of %s holds a nil node", f.Name, n.Kind()))
					continue
				}
				if !f.Accepts(c) {
					result = multierror.Append(result, &MismatchError{Want: f.Want, Got: c.Kind(), Field: f.Name})
				}
			}
		}
	}
	return result.ErrorOrNil()
}
