package ast

import (
	"encoding/json"
	"fmt"
)

// ToRaw converts n into plain nested data: maps, slices, strings and
// numbers. The result marshals to the wire form read by FromRaw.
func ToRaw(n Node) map[string]any {
	raw := map[string]any{
		"kind": n.Kind().String(),
		"from": posToRaw(n.Span().From),
		"to":   posToRaw(n.Span().To),
	}
	if id := n.ID(); id != "" {
		raw["id"] = id
	}
	if notes := n.Annotations(); notes.AriaLabel != "" || notes.Comment != nil {
		a := map[string]any{}
		if notes.AriaLabel != "" {
			a["ariaLabel"] = notes.AriaLabel
		}
		if notes.Comment != nil {
			a["comment"] = ToRaw(notes.Comment)
		}
		raw["annotations"] = a
	}
	for _, f := range n.Fields() {
		switch f.Kind {
		case FieldNode:
			if f.Node != nil {
				raw[f.Name] = ToRaw(f.Node)
			}
		case FieldList:
			l := make([]any, len(f.List))
			for i, c := range f.List {
				l[i] = ToRaw(c)
			}
			raw[f.Name] = l
		case FieldScalar:
			raw[f.Name] = f.Scalar
		}
	}
	return raw
}

func posToRaw(p Position) map[string]any {
	return map[string]any{"line": p.Line, "column": p.Column}
}

// FromRaw rebuilds a typed node from its plain-data form, dispatching on
// the "kind" member and recursing into child fields and the attached
// comment. Ids are not read back; they belong to whichever forest indexes
// the result.
func FromRaw(raw map[string]any) (Node, error) {
	name, _ := raw["kind"].(string)
	k, ok := ParseKind(name)
	if !ok {
		return nil, &KindError{Name: name}
	}
	n := New(k)

	from, err := posFromRaw(raw["from"])
	if err != nil {
		return nil, fmt.Errorf("%s from: %w", k, err)
	}
	to, err := posFromRaw(raw["to"])
	if err != nil {
		return nil, fmt.Errorf("%s to: %w", k, err)
	}
	span, err := NewSpan(from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", k, err)
	}
	n.base().Loc = span

	if a, ok := raw["annotations"].(map[string]any); ok {
		notes := n.Annotations()
		notes.AriaLabel, _ = a["ariaLabel"].(string)
		if c, ok := a["comment"].(map[string]any); ok {
			cn, err := FromRaw(c)
			if err != nil {
				return nil, fmt.Errorf("%s comment: %w", k, err)
			}
			comment, err := Cast[*Comment](cn)
			if err != nil {
				return nil, fmt.Errorf("%s comment: %w", k, err)
			}
			notes.Comment = comment
		}
	}

	for _, f := range n.Fields() {
		v, present := raw[f.Name]
		if !present || v == nil {
			continue
		}
		if err := decodeField(f, v); err != nil {
			return nil, fmt.Errorf("%s.%s: %w", k, f.Name, err)
		}
	}
	return n, nil
}

func decodeField(f Field, v any) error {
	switch f.Kind {
	case FieldScalar:
		switch f.Scalar.(type) {
		case string:
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("want string, got %T", v)
			}
			f.Set(s)
		case bool:
			b, ok := v.(bool)
			if !ok {
				return fmt.Errorf("want bool, got %T", v)
			}
			f.Set(b)
		}
	case FieldNode:
		m, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("want node, got %T", v)
		}
		child, err := FromRaw(m)
		if err != nil {
			return err
		}
		if !f.Accepts(child) {
			return &MismatchError{Want: f.Want, Got: child.Kind(), Field: f.Name}
		}
		f.Set(child)
	case FieldList:
		items, ok := v.([]any)
		if !ok {
			return fmt.Errorf("want list, got %T", v)
		}
		list := make([]Node, 0, len(items))
		for i, item := range items {
			m, ok := item.(map[string]any)
			if !ok {
				return fmt.Errorf("[%d]: want node, got %T", i, item)
			}
			child, err := FromRaw(m)
			if err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
			if !f.Accepts(child) {
				return &MismatchError{Want: f.Want, Got: child.Kind(), Field: f.Name}
			}
			list = append(list, child)
		}
		f.Set(list)
	}
	return nil
}

func posFromRaw(v any) (Position, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return Position{}, fmt.Errorf("want position, got %T", v)
	}
	line, ok := toInt(m["line"])
	if !ok {
		return Position{}, fmt.Errorf("bad line %v", m["line"])
	}
	col, ok := toInt(m["column"])
	if !ok {
		return Position{}, fmt.Errorf("bad column %v", m["column"])
	}
	return Position{Line: line, Column: col}, nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), n == float64(int(n))
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	}
	return 0, false
}

// EncodeJSON marshals a forest to its JSON wire form.
func EncodeJSON(roots []Node) ([]byte, error) {
	raws := make([]any, len(roots))
	for i, r := range roots {
		raws[i] = ToRaw(r)
	}
	return json.Marshal(raws)
}

// DecodeJSON reads a forest from its JSON wire form, as produced by an
// out-of-process parser.
func DecodeJSON(data []byte) ([]Node, error) {
	var raws []map[string]any
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode forest: %w", err)
	}
	roots := make([]Node, 0, len(raws))
	for i, raw := range raws {
		n, err := FromRaw(raw)
		if err != nil {
			return nil, fmt.Errorf("root %d: %w", i, err)
		}
		roots = append(roots, n)
	}
	return roots, nil
}
