package workspace

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/blocks/ast"
	"github.com/dhamidi/blocks/forest"
	"github.com/dhamidi/blocks/lang"
)

const lsName = "blocks"

// Commands served through workspace/executeCommand.
const (
	// CommandNavigate takes a document URI, a node id, a move and
	// optionally kind names to stop at. It returns the target node.
	CommandNavigate = "blocks.navigate"
	// CommandCollapse takes a document URI, a node id and a bool.
	CommandCollapse = "blocks.collapse"
)

type LSPServer struct {
	workspace *Workspace
	registry  *lang.Registry
	handler   protocol.Handler
	server    *server.Server
	version   string
	depth     int
	watch     time.Duration
	watcher   *FileWatcher
}

type ServerOption func(*LSPServer)

// WithDescribeDepth sets how deep hover descriptions go.
func WithDescribeDepth(depth int) ServerOption {
	return func(ls *LSPServer) {
		ls.depth = depth
	}
}

// WithWatcher polls the workspace root for changes made outside the
// editor.
func WithWatcher(interval time.Duration) ServerOption {
	return func(ls *LSPServer) {
		ls.watch = interval
	}
}

func NewLSPServer(version string, registry *lang.Registry, opts ...ServerOption) *LSPServer {
	ls := &LSPServer{
		version:  version,
		registry: registry,
		depth:    1,
	}
	for _, opt := range opts {
		opt(ls)
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentHover:          ls.textDocumentHover,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
		TextDocumentSelectionRange: ls.textDocumentSelectionRange,
		TextDocumentFoldingRange:   ls.textDocumentFoldingRange,
		WorkspaceExecuteCommand:    ls.workspaceExecuteCommand,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

// Workspace returns the workspace created by initialize, or nil before.
func (ls *LSPServer) Workspace() *Workspace {
	return ls.workspace
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.workspace = New(rootDir, ls.registry)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.ExecuteCommandProvider = &protocol.ExecuteCommandOptions{
		Commands: []string{CommandNavigate, CommandCollapse},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if ls.watch <= 0 {
		return ls.workspace.ScanAll()
	}
	ls.watcher = NewFileWatcher(ls.workspace, ls.watch)
	ls.watcher.OnUpdate = func(path string, _ *forest.Patch, err error) {
		ls.publish(ctx, path, err)
	}
	ls.watcher.Start()
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
		ls.watcher = nil
	}
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil || !ls.workspace.Handles(path) {
		return nil
	}
	_, err = ls.workspace.UpdateFile(path, []byte(params.TextDocument.Text))
	ls.publish(ctx, path, err)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil || !ls.workspace.Handles(path) {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			_, err := ls.workspace.UpdateFile(path, []byte(textChange.Text))
			ls.publish(ctx, path, err)
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if ls.watcher == nil {
		ls.workspace.RemoveFile(path)
	}
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil || !ls.workspace.Handles(path) {
		return nil
	}
	if params.Text != nil {
		_, err = ls.workspace.UpdateFile(path, []byte(*params.Text))
	} else {
		_, err = ls.workspace.ScanFile(path)
	}
	ls.publish(ctx, path, err)
	return nil
}

// publish reports the parse state of path as diagnostics: one error when
// the last parse failed, none otherwise.
func (ls *LSPServer) publish(ctx *glsp.Context, path string, err error) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         pathToURI(path),
		Diagnostics: diagnostics(err, ls.latestLines(path)),
	})
}

// parsedLines indexes the text the forest of path was read from, which is
// what its spans point into.
func (ls *LSPServer) parsedLines(path string) lineIndex {
	_, parsed := ls.workspace.Text(path)
	return newLineIndex(parsed)
}

// latestLines indexes the text most recently given for path, which is
// what parse errors point into.
func (ls *LSPServer) latestLines(path string) lineIndex {
	latest, _ := ls.workspace.Text(path)
	return newLineIndex(latest)
}

func diagnostics(err error, lines lineIndex) []protocol.Diagnostic {
	if err == nil {
		return []protocol.Diagnostic{}
	}
	var pos ast.Position
	var perr lang.PositionedError
	if errors.As(err, &perr) {
		pos = perr.Position()
	}
	severity := protocol.DiagnosticSeverityError
	source := lsName
	return []protocol.Diagnostic{{
		Range:    lines.toRange(ast.Span{From: pos, To: pos}),
		Severity: &severity,
		Source:   &source,
		Message:  err.Error(),
	}}
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	lines := ls.parsedLines(path)
	desc, span, ok := ls.workspace.Describe(path, lines.fromPosition(params.Position), ls.depth)
	if !ok {
		return nil, nil
	}
	r := lines.toRange(span)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindPlainText, Value: desc},
		Range:    &r,
	}, nil
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	return toDocumentSymbols(ls.workspace.Outline(path), ls.parsedLines(path)), nil
}

func toDocumentSymbols(symbols []Symbol, lines lineIndex) []protocol.DocumentSymbol {
	out := make([]protocol.DocumentSymbol, 0, len(symbols))
	for _, s := range symbols {
		detail := s.Detail
		out = append(out, protocol.DocumentSymbol{
			Name:           s.Name,
			Detail:         &detail,
			Kind:           symbolKind(s.Kind),
			Range:          lines.toRange(s.Span),
			SelectionRange: lines.toRange(s.NameSpan),
			Children:       toDocumentSymbols(s.Children, lines),
		})
	}
	return out
}

func symbolKind(k ast.Kind) protocol.SymbolKind {
	switch k {
	case ast.KindFunctionDefinition, ast.KindLambdaExpression:
		return protocol.SymbolKindFunction
	case ast.KindVariableDefinition:
		return protocol.SymbolKindVariable
	case ast.KindStructDefinition:
		return protocol.SymbolKindStruct
	case ast.KindExpression:
		return protocol.SymbolKindOperator
	default:
		return protocol.SymbolKindObject
	}
}

func (ls *LSPServer) textDocumentSelectionRange(ctx *glsp.Context, params *protocol.SelectionRangeParams) ([]protocol.SelectionRange, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	lines := ls.parsedLines(path)
	out := make([]protocol.SelectionRange, 0, len(params.Positions))
	for _, p := range params.Positions {
		pos := lines.fromPosition(p)
		chain := ls.workspace.SelectionChain(path, pos)
		if len(chain) == 0 {
			out = append(out, protocol.SelectionRange{Range: lines.toRange(ast.Span{From: pos, To: pos})})
			continue
		}
		// build outermost first so each range points at its parent
		var parent *protocol.SelectionRange
		for i := len(chain) - 1; i > 0; i-- {
			parent = &protocol.SelectionRange{Range: lines.toRange(chain[i]), Parent: parent}
		}
		out = append(out, protocol.SelectionRange{Range: lines.toRange(chain[0]), Parent: parent})
	}
	return out, nil
}

func (ls *LSPServer) textDocumentFoldingRange(ctx *glsp.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	lines := ls.parsedLines(path)
	var out []protocol.FoldingRange
	for _, f := range ls.workspace.Folds(path) {
		kind := string(protocol.FoldingRangeKindRegion)
		if f.Comment {
			kind = string(protocol.FoldingRangeKindComment)
		}
		r := lines.toRange(f.Span)
		startChar, endChar := r.Start.Character, r.End.Character
		out = append(out, protocol.FoldingRange{
			StartLine:      protocol.UInteger(f.Span.From.Line),
			StartCharacter: &startChar,
			EndLine:        protocol.UInteger(f.Span.To.Line),
			EndCharacter:   &endChar,
			Kind:           &kind,
		})
	}
	return out, nil
}

func (ls *LSPServer) workspaceExecuteCommand(ctx *glsp.Context, params *protocol.ExecuteCommandParams) (any, error) {
	args := params.Arguments
	if len(args) < 2 {
		return nil, fmt.Errorf("%s: expected a document URI and a node id", params.Command)
	}
	uri, _ := args[0].(string)
	id, _ := args[1].(string)
	path, err := uriToPath(uri)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", params.Command, err)
	}

	switch params.Command {
	case CommandNavigate:
		if len(args) < 3 {
			return nil, fmt.Errorf("%s: expected a move", params.Command)
		}
		name, _ := args[2].(string)
		move, err := ParseMove(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", params.Command, err)
		}
		kinds, err := kindArgs(args[3:])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", params.Command, err)
		}
		target, ok := ls.workspace.Navigate(path, id, move, kinds...)
		if !ok {
			return nil, nil
		}
		return map[string]any{
			"id":          target.ID,
			"kind":        target.Kind.String(),
			"range":       ls.parsedLines(path).toRange(target.Span),
			"description": target.Description,
		}, nil
	case CommandCollapse:
		collapsed := true
		if len(args) > 2 {
			collapsed, _ = args[2].(bool)
		}
		return ls.workspace.SetCollapsed(path, id, collapsed), nil
	}
	return nil, fmt.Errorf("unknown command %q", params.Command)
}

func kindArgs(args []any) ([]ast.Kind, error) {
	var kinds []ast.Kind
	for _, a := range args {
		name, _ := a.(string)
		k, ok := ast.ParseKind(name)
		if !ok {
			return nil, &ast.KindError{Name: name}
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}
