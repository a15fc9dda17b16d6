// Package workspace keeps the live block forest of every open document and
// serves it to editors over the language server protocol.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/blocks/ast"
	"github.com/dhamidi/blocks/forest"
	"github.com/dhamidi/blocks/lang"
)

var log = commonlog.GetLogger("blocks.workspace")

// Workspace maps document paths to their forests. Each document is parsed
// with the language its file extension selects.
type Workspace struct {
	mu       sync.RWMutex
	rootDir  string
	registry *lang.Registry
	docs     map[string]*Document
}

type Document struct {
	Path     string
	Language string
	Content  []byte
	// Source is the content the forest was read from. Spans point into it.
	Source []byte
	Forest *forest.Forest
	// ParseErr is the error of the last parse. The forest still holds the
	// last good parse when it is set.
	ParseErr  error
	LastPatch *forest.Patch
}

func New(rootDir string, registry *lang.Registry) *Workspace {
	return &Workspace{
		rootDir:  rootDir,
		registry: registry,
		docs:     make(map[string]*Document),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// Handles reports whether some registered language reads path.
func (w *Workspace) Handles(path string) bool {
	_, ok := w.registry.ForFile(path)
	return ok
}

func (w *Workspace) ScanAll() error {
	return filepath.Walk(w.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() || !w.Handles(path) {
			return nil
		}
		if _, err := w.ScanFile(path); err != nil {
			log.Warningf("scan %s: %s", path, err)
		}
		return nil
	})
}

func (w *Workspace) ScanFile(path string) (*forest.Patch, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return w.UpdateFile(path, content)
}

// UpdateFile parses content and reconciles it into the document's forest,
// creating the document on first sight. A parse error leaves the forest
// as it was; the error is recorded on the document and returned. The
// returned patch is nil when the forest was created rather than patched.
func (w *Workspace) UpdateFile(path string, content []byte) (*forest.Patch, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.updateFileLocked(path, content)
}

func (w *Workspace) updateFileLocked(path string, content []byte) (*forest.Patch, error) {
	l, ok := w.registry.ForFile(path)
	if !ok {
		return nil, fmt.Errorf("%s: no language for file", path)
	}

	doc := w.docs[path]
	if doc == nil {
		doc = &Document{Path: path, Language: l.ID}
		w.docs[path] = doc
	}
	doc.Content = content

	nodes, err := l.Parse(content)
	if err != nil {
		doc.ParseErr = fmt.Errorf("%s: %w", path, err)
		log.Infof("keeping last good forest: %s", doc.ParseErr)
		return nil, doc.ParseErr
	}

	if doc.Forest == nil {
		f, err := forest.New(nodes)
		if err != nil {
			doc.ParseErr = fmt.Errorf("%s: %w", path, err)
			return nil, doc.ParseErr
		}
		doc.Forest = f
		doc.Source = content
		doc.ParseErr = nil
		log.Infof("opened %s: %d nodes", path, f.Len())
		return nil, nil
	}

	p, err := doc.Forest.Reconcile(nodes)
	if err != nil {
		doc.ParseErr = fmt.Errorf("%s: %w", path, err)
		return nil, doc.ParseErr
	}
	doc.Source = content
	doc.ParseErr = nil
	doc.LastPatch = p
	log.Debugf("updated %s: %d ops, %d nodes touched", path, len(p.Applied), len(p.Touched))
	return p, nil
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.docs[path]; ok {
		log.Infof("closed %s", path)
	}
	delete(w.docs, path)
}

// GetFile returns the document for path, or nil. The document's forest
// must only be read through View while other goroutines may update it.
func (w *Workspace) GetFile(path string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.docs[path]
}

// View calls fn with the document for path under the read lock. It
// reports false without calling fn when the document has no forest.
func (w *Workspace) View(path string, fn func(doc *Document)) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	doc := w.docs[path]
	if doc == nil || doc.Forest == nil {
		return false
	}
	fn(doc)
	return true
}

// Update is View under the write lock, for changing renderer-owned node
// state such as the collapsed flag.
func (w *Workspace) Update(path string, fn func(doc *Document)) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	doc := w.docs[path]
	if doc == nil || doc.Forest == nil {
		return false
	}
	fn(doc)
	return true
}

// Text returns the latest content of path and the content its forest was
// read from. The two differ while the latest content fails to parse.
func (w *Workspace) Text(path string) (latest, parsed []byte) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if doc := w.docs[path]; doc != nil {
		return doc.Content, doc.Source
	}
	return nil, nil
}

// SetCollapsed sets the collapsed flag of the node with the given id. The
// flag survives later updates of the document.
func (w *Workspace) SetCollapsed(path, id string, collapsed bool) bool {
	found := false
	w.Update(path, func(doc *Document) {
		if n := doc.Forest.Lookup(id); n != nil {
			n.SetCollapsed(collapsed)
			found = true
		}
	})
	return found
}

// Paths returns the paths of all documents in sorted order.
func (w *Workspace) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	paths := make([]string, 0, len(w.docs))
	for p := range w.docs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Describe returns the description of the innermost node at pos together
// with its span.
func (w *Workspace) Describe(path string, pos ast.Position, depth int) (string, ast.Span, bool) {
	var desc string
	var span ast.Span
	found := false
	w.View(path, func(doc *Document) {
		if n := doc.Forest.Containing(pos); n != nil {
			desc, span, found = n.Describe(depth), n.Span(), true
		}
	})
	return desc, span, found
}
