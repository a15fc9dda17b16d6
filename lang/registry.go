// Package lang maps language ids and file extensions to the parsers that
// produce block forests.
package lang

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/blocks/ast"
)

// ParseFunc turns source text into the root nodes of a forest. Errors are
// language specific and opaque to callers.
type ParseFunc func(src []byte) ([]ast.Node, error)

// PositionedError is implemented by parse errors that know where in the
// source they occurred.
type PositionedError interface {
	error
	Position() ast.Position
}

type Language struct {
	ID         string
	Name       string
	Extensions []string
	Parse      ParseFunc
}

// Registry holds the languages known to one editor session.
type Registry struct {
	mu    sync.RWMutex
	langs map[string]*Language
}

// NewRegistry returns a registry holding langs. The languages are fixed at
// build time, so one that Add rejects is a programming error and panics.
func NewRegistry(langs ...*Language) *Registry {
	r := &Registry{langs: make(map[string]*Language)}
	for _, l := range langs {
		if err := r.Add(l); err != nil {
			panic(fmt.Sprintf("lang: %v", err))
		}
	}
	return r
}

// Add registers l. It fails when l has no id or parser, or when the id is
// already taken.
func (r *Registry) Add(l *Language) error {
	if l == nil || l.ID == "" {
		return fmt.Errorf("language must have an id")
	}
	if l.Parse == nil {
		return fmt.Errorf("language %q has no parser", l.ID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.langs[l.ID]; exists {
		return fmt.Errorf("language %q already registered", l.ID)
	}
	r.langs[l.ID] = l
	return nil
}

// Remove unregisters the language with the given id. Removing an unknown
// id is a no-op.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.langs, id)
}

func (r *Registry) Get(id string) (*Language, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.langs[id]
	return l, ok
}

// ForFile returns the language whose extensions include the extension of
// path. Extensions compare case-insensitively.
func (r *Registry) ForFile(path string) (*Language, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.sortedIDs() {
		l := r.langs[id]
		for _, e := range l.Extensions {
			if strings.ToLower(e) == ext {
				return l, true
			}
		}
	}
	return nil, false
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedIDs()
}

func (r *Registry) sortedIDs() []string {
	ids := make([]string, 0, len(r.langs))
	for id := range r.langs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
