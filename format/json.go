package format

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/hokaccha/go-prettyjson"

	"github.com/dhamidi/blocks/ast"
)

// JSONEncoder writes the forest wire form, indented and optionally
// colored.
type JSONEncoder struct {
	w     io.Writer
	color bool
}

func NewJSONEncoder(w io.Writer, opts Options) *JSONEncoder {
	return &JSONEncoder{w: w, color: opts.Color}
}

func (e *JSONEncoder) Encode(roots []ast.Node) error {
	text, err := e.Marshal(roots)
	return write(e.w, text, err)
}

func (e *JSONEncoder) Marshal(roots []ast.Node) ([]byte, error) {
	data, err := ast.EncodeJSON(roots)
	if err != nil {
		return nil, err
	}
	if e.color {
		f := prettyjson.NewFormatter()
		f.Indent = 2
		text, err := f.Format(data)
		if err != nil {
			return nil, err
		}
		return append(text, '\n'), nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
