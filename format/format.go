// Package format renders block forests and patches for the command line.
package format

import (
	"fmt"
	"io"
	"sort"

	"github.com/dhamidi/blocks/ast"
)

type Encoder interface {
	Encode(roots []ast.Node) error
}

// Options shared by the encoders that support them.
type Options struct {
	// Color enables ANSI colors where an encoder has them.
	Color bool
}

var encoders = map[string]func(w io.Writer, opts Options) Encoder{
	"json":   func(w io.Writer, opts Options) Encoder { return NewJSONEncoder(w, opts) },
	"yaml":   func(w io.Writer, _ Options) Encoder { return NewYAMLEncoder(w) },
	"line":   func(w io.Writer, _ Options) Encoder { return NewLineEncoder(w) },
	"tree":   func(w io.Writer, opts Options) Encoder { return NewTreeEncoder(w, opts) },
	"source": func(w io.Writer, _ Options) Encoder { return NewSourceEncoder(w) },
}

// New returns the encoder registered under name.
func New(name string, w io.Writer, opts Options) (Encoder, error) {
	mk, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (want one of %v)", name, Names())
	}
	return mk(w, opts), nil
}

// Names lists the registered formats in sorted order.
func Names() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func write(w io.Writer, text []byte, err error) error {
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
