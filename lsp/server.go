// Package lsp implements a language server that reports parse errors of
// Solidity files as diagnostics.
package lsp

import (
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/sulk/config"
)

const lsName = "sulk"

var log = commonlog.GetLogger("sulk.lsp")

type Server struct {
	workspace *Workspace
	cfg       *config.Config
	handler   protocol.Handler
	server    *server.Server
	version   string
}

// NewServer creates a server for the documents whose names end in one of
// the extensions of cfg.
func NewServer(version string, cfg *config.Config) *Server {
	ls := &Server{
		workspace: NewWorkspace(),
		cfg:       cfg,
		version:   version,
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) Workspace() *Workspace {
	return ls.workspace
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Infof("%s %s ready", lsName, ls.version)
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.check(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.check(ctx, params.TextDocument.URI, whole.Text)
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.workspace.Remove(params.TextDocument.URI)
	ls.publish(ctx, params.TextDocument.URI, nil)
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	text := ""
	switch {
	case params.Text != nil:
		text = *params.Text
	case ls.workspace.Get(params.TextDocument.URI) != nil:
		text = ls.workspace.Get(params.TextDocument.URI).Text
	default:
		return nil
	}
	ls.check(ctx, params.TextDocument.URI, text)
	return nil
}

func (ls *Server) serves(uri string) bool {
	return ls.cfg.HasExtension(uri)
}

func (ls *Server) check(ctx *glsp.Context, uri, text string) {
	if !ls.serves(uri) {
		log.Debugf("ignoring %s", uri)
		return
	}
	doc := ls.workspace.Update(uri, text)
	log.Debugf("%s: %d diagnostic(s)", doc.Path, len(doc.Diagnostics))
	ls.publish(ctx, uri, doc)
}

func (ls *Server) publish(ctx *glsp.Context, uri string, doc *Document) {
	params := PublishParams(uri, doc)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, params)
}

// PublishParams builds the notification for doc. A nil doc clears the
// diagnostics of uri.
func PublishParams(uri string, doc *Document) protocol.PublishDiagnosticsParams {
	params := protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	}
	if doc != nil {
		params.Diagnostics = ToProtocolDiagnostics(doc.Diagnostics)
	}
	return params
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
