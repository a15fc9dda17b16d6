package ast

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSpan is reported for a node whose span starts after it ends.
	ErrInvalidSpan = errors.New("invalid span")

	// ErrTypeMismatch is reported when a node is not the variant its
	// position in the tree requires.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnknownNodeKind is reported for a kind with no node variant.
	ErrUnknownNodeKind = errors.New("unknown node kind")
)

type SpanError struct {
	Span Span
	Node Node
}

func (e *SpanError) Error() string {
	if e.Node != nil {
		return fmt.Sprintf("%s: %s ends before it starts (%s)", ErrInvalidSpan, e.Node.Kind(), e.Span)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidSpan, e.Span)
}

func (e *SpanError) Unwrap() error { return ErrInvalidSpan }

type MismatchError struct {
	Want Kind
	Got  Kind
	// Field names the slot that required Want, if any.
	Field string
}

func (e *MismatchError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: field %q wants %s, got %s", ErrTypeMismatch, e.Field, e.Want, e.Got)
	}
	return fmt.Sprintf("%s: want %s, got %s", ErrTypeMismatch, e.Want, e.Got)
}

func (e *MismatchError) Unwrap() error { return ErrTypeMismatch }

type KindError struct {
	// Name is the kind as it appeared in the input; empty when the kind
	// came from a Go value.
	Name string
	Kind Kind
}

func (e *KindError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %q", ErrUnknownNodeKind, e.Name)
	}
	return fmt.Sprintf("%s: %d", ErrUnknownNodeKind, int(e.Kind))
}

func (e *KindError) Unwrap() error { return ErrUnknownNodeKind }
