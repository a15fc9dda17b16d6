package workspace

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/blocks/ast"
	"github.com/dhamidi/blocks/lang"
	"github.com/dhamidi/blocks/lang/sexpr"
)

type notification struct {
	method string
	params any
}

// startServer initializes a server rooted at a fresh directory and returns
// a context that records notifications.
func startServer(t *testing.T) (*LSPServer, *glsp.Context, *[]notification, string) {
	t.Helper()
	dir := t.TempDir()
	ls := NewLSPServer("test", lang.NewRegistry(sexpr.Language()), WithDescribeDepth(2))

	var sent []notification
	ctx := &glsp.Context{Notify: func(method string, params any) {
		sent = append(sent, notification{method, params})
	}}

	_, err := ls.initialize(ctx, &protocol.InitializeParams{RootPath: &dir})
	require.NoError(t, err)
	require.NotNil(t, ls.Workspace())
	assert.Equal(t, dir, ls.Workspace().RootDir())
	return ls, ctx, &sent, dir
}

func open(t *testing.T, ls *LSPServer, ctx *glsp.Context, path, text string) string {
	t.Helper()
	uri := pathToURI(path)
	err := ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: sexpr.LanguageID, Version: 1, Text: text},
	})
	require.NoError(t, err)
	return uri
}

func TestDidOpenPublishesDiagnostics(t *testing.T) {
	ls, ctx, sent, dir := startServer(t)
	path := filepath.Join(dir, "prog.rkt")

	open(t, ls, ctx, path, program)
	require.Len(t, *sent, 1)
	got := (*sent)[0]
	assert.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, got.method)
	params := got.params.(protocol.PublishDiagnosticsParams)
	assert.Empty(t, params.Diagnostics)

	uri := pathToURI(path)
	err := ls.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "(f ]"}},
	})
	require.NoError(t, err)
	require.Len(t, *sent, 2)
	params = (*sent)[1].params.(protocol.PublishDiagnosticsParams)
	require.Len(t, params.Diagnostics, 1)
	assert.Equal(t, protocol.Position{Line: 0, Character: 3}, params.Diagnostics[0].Range.Start)
	assert.Contains(t, params.Diagnostics[0].Message, "expected ), found ]")
}

func TestHover(t *testing.T) {
	ls, ctx, _, dir := startServer(t)
	uri := open(t, ls, ctx, filepath.Join(dir, "prog.rkt"), program)

	hover, err := ls.textDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: 2, Character: 0},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, hover)
	assert.Equal(t, protocol.MarkupContent{Kind: protocol.MarkupKindPlainText, Value: "square expression, 1 input: 4"}, hover.Contents)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 2, Character: 0},
		End:   protocol.Position{Line: 2, Character: 10},
	}, *hover.Range)

	hover, err = ls.textDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: 9, Character: 0},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, hover)
}

func TestPositionsCountUTF16Units(t *testing.T) {
	ls, ctx, sent, dir := startServer(t)
	path := filepath.Join(dir, "wide.rkt")
	uri := open(t, ls, ctx, path, "(f \"é\" x)\n(g \"😀\" y)\n")

	hoverAt := func(line, char uint32) protocol.Range {
		t.Helper()
		hover, err := ls.textDocumentHover(ctx, &protocol.HoverParams{
			TextDocumentPositionParams: protocol.TextDocumentPositionParams{
				TextDocument: protocol.TextDocumentIdentifier{URI: uri},
				Position:     protocol.Position{Line: line, Character: char},
			},
		})
		require.NoError(t, err)
		require.NotNil(t, hover)
		return *hover.Range
	}
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 7},
		End:   protocol.Position{Line: 0, Character: 8},
	}, hoverAt(0, 7), "x sits after a two byte rune")
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 1, Character: 8},
		End:   protocol.Position{Line: 1, Character: 9},
	}, hoverAt(1, 8), "y sits after a surrogate pair")

	err := ls.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "(f \"é\" ]"}},
	})
	require.NoError(t, err)
	params := (*sent)[len(*sent)-1].params.(protocol.PublishDiagnosticsParams)
	require.Len(t, params.Diagnostics, 1)
	assert.Equal(t, protocol.Position{Line: 0, Character: 7}, params.Diagnostics[0].Range.Start)

	// the forest still comes from the first text
	assert.Equal(t, protocol.UInteger(8), hoverAt(1, 8).Start.Character)
}

func TestDocumentSymbols(t *testing.T) {
	ls, ctx, _, dir := startServer(t)
	uri := open(t, ls, ctx, filepath.Join(dir, "prog.rkt"), program)

	result, err := ls.textDocumentDocumentSymbol(ctx, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	symbols := result.([]protocol.DocumentSymbol)
	require.Len(t, symbols, 2)
	assert.Equal(t, "square", symbols[0].Name)
	assert.Equal(t, protocol.SymbolKindFunction, symbols[0].Kind)
	require.Len(t, symbols[0].Children, 1)
	assert.Equal(t, protocol.SymbolKindOperator, symbols[0].Children[0].Kind)
}

func TestSelectionRange(t *testing.T) {
	ls, ctx, _, dir := startServer(t)
	uri := open(t, ls, ctx, filepath.Join(dir, "prog.rkt"), program)

	ranges, err := ls.textDocumentSelectionRange(ctx, &protocol.SelectionRangeParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Positions:    []protocol.Position{{Line: 1, Character: 5}},
	})
	require.NoError(t, err)
	require.Len(t, ranges, 1)

	depth := 0
	for r := &ranges[0]; r != nil; r = r.Parent {
		depth++
	}
	assert.Equal(t, 3, depth)
	assert.Equal(t, newLineIndex([]byte(program)).toRange(ast.Span{From: pos(0, 0), To: pos(1, 10)}), ranges[0].Parent.Parent.Range)
}

func TestFoldingRange(t *testing.T) {
	ls, ctx, _, dir := startServer(t)
	uri := open(t, ls, ctx, filepath.Join(dir, "prog.rkt"), program)

	folds, err := ls.textDocumentFoldingRange(ctx, &protocol.FoldingRangeParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	require.Len(t, folds, 1)
	assert.Equal(t, protocol.UInteger(0), folds[0].StartLine)
	assert.Equal(t, protocol.UInteger(1), folds[0].EndLine)
	assert.Equal(t, string(protocol.FoldingRangeKindRegion), *folds[0].Kind)
}

func TestExecuteCommand(t *testing.T) {
	ls, ctx, _, dir := startServer(t)
	path := filepath.Join(dir, "prog.rkt")
	uri := open(t, ls, ctx, path, program)

	result, err := ls.workspaceExecuteCommand(ctx, &protocol.ExecuteCommandParams{
		Command:   CommandNavigate,
		Arguments: []any{uri, "0", "next", "Expression"},
	})
	require.NoError(t, err)
	target := result.(map[string]any)
	assert.Equal(t, "0,2", target["id"])
	assert.Equal(t, "Expression", target["kind"])

	_, err = ls.workspaceExecuteCommand(ctx, &protocol.ExecuteCommandParams{
		Command:   CommandNavigate,
		Arguments: []any{uri, "0", "next", "Banana"},
	})
	assert.True(t, errors.Is(err, ast.ErrUnknownNodeKind))

	result, err = ls.workspaceExecuteCommand(ctx, &protocol.ExecuteCommandParams{
		Command:   CommandCollapse,
		Arguments: []any{uri, "0", true},
	})
	require.NoError(t, err)
	assert.Equal(t, true, result)
	assert.True(t, ls.Workspace().Folds(path)[0].Collapsed)

	_, err = ls.workspaceExecuteCommand(ctx, &protocol.ExecuteCommandParams{Command: "blocks.jump", Arguments: []any{uri, "0"}})
	assert.Error(t, err)

	_, err = ls.workspaceExecuteCommand(ctx, &protocol.ExecuteCommandParams{Command: CommandNavigate})
	assert.Error(t, err)
}

func TestDidCloseDropsDocument(t *testing.T) {
	ls, ctx, _, dir := startServer(t)
	path := filepath.Join(dir, "prog.rkt")
	uri := open(t, ls, ctx, path, program)

	err := ls.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	assert.Nil(t, ls.Workspace().GetFile(path))
}

func TestDiagnostics(t *testing.T) {
	assert.Empty(t, diagnostics(nil, nil))

	d := diagnostics(errors.New("boom"), nil)
	require.Len(t, d, 1)
	assert.Equal(t, protocol.Position{}, d[0].Range.Start)
	assert.Equal(t, "boom", d[0].Message)
	assert.Equal(t, protocol.DiagnosticSeverityError, *d[0].Severity)
}

func TestURIs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a b.rkt")
	uri := pathToURI(path)
	assert.Contains(t, uri, "file://")
	assert.Contains(t, uri, "a%20b.rkt")

	back, err := uriToPath(uri)
	require.NoError(t, err)
	assert.Equal(t, path, back)

	plain, err := uriToPath("notes/prog.rkt")
	require.NoError(t, err)
	assert.Equal(t, "notes/prog.rkt", plain)
}
