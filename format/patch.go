package format

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/dhamidi/blocks/forest"
)

// PatchEncoder reports the operations a reconciliation applied, one per
// line, marked "+" for inserts, "-" for removes and "~" otherwise.
type PatchEncoder struct {
	w     io.Writer
	color bool
}

func NewPatchEncoder(w io.Writer, opts Options) *PatchEncoder {
	return &PatchEncoder{w: w, color: opts.Color}
}

func (e *PatchEncoder) Encode(p *forest.Patch) error {
	if p.Empty() {
		_, err := fmt.Fprintln(e.w, "no changes")
		return err
	}
	for _, op := range p.Applied {
		mark, c := "~", color.New(color.FgYellow)
		switch op.Kind {
		case forest.OpInsert:
			mark, c = "+", color.New(color.FgGreen)
		case forest.OpRemove:
			mark, c = "-", color.New(color.FgRed)
		}
		if e.color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		if _, err := c.Fprintf(e.w, "%s %s\n", mark, op); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(e.w, "%d applied, %d filtered, %d nodes touched\n", len(p.Applied), p.Filtered, len(p.Touched))
	return err
}
