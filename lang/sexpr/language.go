package sexpr

import (
	"github.com/dhamidi/blocks/ast"
	"github.com/dhamidi/blocks/lang"
)

const LanguageID = "wescheme"

// Language describes the reader for registration in a lang.Registry.
// Comments are kept.
func Language() *lang.Language {
	return &lang.Language{
		ID:         LanguageID,
		Name:       "WeScheme",
		Extensions: []string{".rkt", ".scm", ".ss"},
		Parse: func(src []byte) ([]ast.Node, error) {
			return Read(src, WithComments())
		},
	}
}
