package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/sulk/diag"
	"github.com/dhamidi/sulk/source"
)

const diagnosticSource = "sulk"

// ToProtocolDiagnostics converts parse diagnostics for publishing. The
// result is never nil, so that publishing it clears stale diagnostics.
func ToProtocolDiagnostics(diags []*diag.Diag) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, toProtocolDiagnostic(d))
	}
	return out
}

func toProtocolDiagnostic(d *diag.Diag) protocol.Diagnostic {
	severity := toProtocolSeverity(d.Level)
	src := diagnosticSource

	var msg strings.Builder
	msg.WriteString(d.Message)
	for _, child := range d.Children {
		msg.WriteString("\n" + child.Level.String() + ": " + child.Message)
	}

	pd := protocol.Diagnostic{
		Range:    toProtocolRange(d.Span),
		Severity: &severity,
		Source:   &src,
		Message:  msg.String(),
	}
	for _, l := range d.Labels {
		if l.Span == d.Span || l.Message == "" {
			continue
		}
		pd.RelatedInformation = append(pd.RelatedInformation, protocol.DiagnosticRelatedInformation{
			Location: protocol.Location{
				URI:   pathToURI(l.Span.Start.File),
				Range: toProtocolRange(l.Span),
			},
			Message: l.Message,
		})
	}
	return pd
}

func toProtocolSeverity(l diag.Level) protocol.DiagnosticSeverity {
	switch l {
	case diag.Warning:
		return protocol.DiagnosticSeverityWarning
	case diag.Note:
		return protocol.DiagnosticSeverityInformation
	case diag.Help:
		return protocol.DiagnosticSeverityHint
	}
	return protocol.DiagnosticSeverityError
}

// toProtocolRange maps a 1-based span to the 0-based positions of the
// protocol. A dummy span becomes the start of the document.
func toProtocolRange(sp source.Span) protocol.Range {
	if sp.IsDummy() {
		return protocol.Range{}
	}
	return protocol.Range{
		Start: toProtocolPosition(sp.Start),
		End:   toProtocolPosition(sp.End),
	}
}

func toProtocolPosition(p source.Position) protocol.Position {
	line, col := p.Line-1, p.Column-1
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col)}
}

func pathToURI(path string) protocol.DocumentUri {
	if path == "" || strings.Contains(path, "://") {
		return path
	}
	return "file://" + path
}
