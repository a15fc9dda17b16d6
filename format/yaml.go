package format

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/blocks/ast"
)

// YAMLEncoder writes the same document as JSONEncoder in YAML.
type YAMLEncoder struct {
	w io.Writer
}

func NewYAMLEncoder(w io.Writer) *YAMLEncoder {
	return &YAMLEncoder{w: w}
}

func (e *YAMLEncoder) Encode(roots []ast.Node) error {
	text, err := e.Marshal(roots)
	return write(e.w, text, err)
}

func (e *YAMLEncoder) Marshal(roots []ast.Node) ([]byte, error) {
	raws := make([]map[string]any, len(roots))
	for i, r := range roots {
		raws[i] = ast.ToRaw(r)
	}
	return yaml.Marshal(raws)
}
