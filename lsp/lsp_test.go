package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/sulk/ast"
	"github.com/dhamidi/sulk/config"
	"github.com/dhamidi/sulk/diag"
	"github.com/dhamidi/sulk/source"
)

func TestWorkspaceUpdate(t *testing.T) {
	w := NewWorkspace()

	doc := w.Update("file:///tmp/Token.sol", "contract C { enum E { A B } }")
	require.NotNil(t, doc)
	assert.Equal(t, "/tmp/Token.sol", doc.Path)
	require.Len(t, doc.Diagnostics, 1)
	assert.Equal(t, "expected one of `,` or `}`, found `B`", doc.Diagnostics[0].Message)
	require.NotNil(t, doc.Outline)
	assert.NotNil(t, doc.Outline.FirstChildOfKind(ast.KindContract))

	assert.Same(t, doc, w.Get("file:///tmp/Token.sol"))
	w.Remove("file:///tmp/Token.sol")
	assert.Nil(t, w.Get("file:///tmp/Token.sol"))
}

func TestWorkspaceUpdateReportsFatalError(t *testing.T) {
	w := NewWorkspace()

	doc := w.Update("file:///tmp/Broken.sol", "contract C {")
	require.Len(t, doc.Diagnostics, 1)
	assert.Equal(t, "expected `}`, found `<eof>`", doc.Diagnostics[0].Message)
}

func TestToProtocolDiagnostics(t *testing.T) {
	w := NewWorkspace()
	doc := w.Update("file:///tmp/Broken.sol", "contract C {")

	got := ToProtocolDiagnostics(doc.Diagnostics)
	require.Len(t, got, 1)

	d := got[0]
	assert.Equal(t, "expected `}`, found `<eof>`", d.Message)
	require.NotNil(t, d.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	require.NotNil(t, d.Source)
	assert.Equal(t, "sulk", *d.Source)
	// The end of input sits on the last token, the `{` at column 12.
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 11},
		End:   protocol.Position{Line: 0, Character: 12},
	}, d.Range)
}

func TestToProtocolDiagnosticsChildrenAndLabels(t *testing.T) {
	f := source.NewFile("/tmp/a.sol", "a\nb")
	first := source.Span{Start: f.Position(0), End: f.Position(1)}
	second := source.Span{Start: f.Position(2), End: f.Position(3)}

	ctx := diag.NewContext(nil)
	d := ctx.Warn("careful").WithSpan(second).
		SpanLabel(first, "started here").
		SpanLabel(second, "").
		Help("try again")
	defer d.Cancel()

	got := ToProtocolDiagnostics([]*diag.Diag{d})
	require.Len(t, got, 1)
	assert.Equal(t, "careful\nhelp: try again", got[0].Message)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *got[0].Severity)
	assert.Equal(t, protocol.Position{Line: 1, Character: 0}, got[0].Range.Start)

	require.Len(t, got[0].RelatedInformation, 1)
	rel := got[0].RelatedInformation[0]
	assert.Equal(t, "started here", rel.Message)
	assert.Equal(t, "file:///tmp/a.sol", rel.Location.URI)
}

func TestToProtocolDiagnosticsEmpty(t *testing.T) {
	got := ToProtocolDiagnostics(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestToProtocolSeverity(t *testing.T) {
	tests := []struct {
		level diag.Level
		want  protocol.DiagnosticSeverity
	}{
		{diag.Bug, protocol.DiagnosticSeverityError},
		{diag.Fatal, protocol.DiagnosticSeverityError},
		{diag.Error, protocol.DiagnosticSeverityError},
		{diag.Warning, protocol.DiagnosticSeverityWarning},
		{diag.Note, protocol.DiagnosticSeverityInformation},
		{diag.Help, protocol.DiagnosticSeverityHint},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, toProtocolSeverity(tt.level))
		})
	}
}

func TestPublishParams(t *testing.T) {
	cleared := PublishParams("file:///tmp/a.sol", nil)
	assert.Equal(t, "file:///tmp/a.sol", cleared.URI)
	assert.NotNil(t, cleared.Diagnostics)
	assert.Empty(t, cleared.Diagnostics)

	doc := NewWorkspace().Update("file:///tmp/a.sol", "contract C {")
	assert.Len(t, PublishParams("file:///tmp/a.sol", doc).Diagnostics, 1)
}

func TestURIToPath(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"file:///tmp/a.sol", "/tmp/a.sol"},
		{"file:///tmp/dir%20x/b.sol", "/tmp/dir x/b.sol"},
		{"untitled:1", "untitled:1"},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := uriToPath(tt.uri)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestServerServes(t *testing.T) {
	cfg := config.Defaults()
	cfg.Extensions = []string{".sol", ".yul"}
	ls := NewServer("test", cfg)

	assert.True(t, ls.serves("file:///tmp/a.sol"))
	assert.True(t, ls.serves("file:///tmp/b.yul"))
	assert.False(t, ls.serves("file:///tmp/notes.md"))
	assert.NotNil(t, ls.Workspace())
}
