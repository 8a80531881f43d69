package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dhamidi/sulk/ast"
	"github.com/dhamidi/sulk/diag"
	"github.com/dhamidi/sulk/parser"
	"github.com/dhamidi/sulk/source"
)

// Workspace keeps the last parse of every open document.
type Workspace struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

type Document struct {
	URI         string
	Path        string
	Text        string
	Outline     *ast.Node
	Diagnostics []*diag.Diag
}

func NewWorkspace() *Workspace {
	return &Workspace{docs: make(map[string]*Document)}
}

// Update parses text as the new content of uri and stores the result.
// Parsing happens outside the lock; each call uses its own session.
func (w *Workspace) Update(uri, text string) *Document {
	path, err := uriToPath(uri)
	if err != nil {
		path = uri
	}

	em := diag.NewCollectingEmitter()
	sess := parser.NewSession(source.NewMap(), diag.NewContext(em))
	outline := parser.ParseSource(sess, path, text)
	if err := sess.Diag.Finish(); err != nil {
		log.Errorf("%s: %s", path, err)
	}

	doc := &Document{
		URI:         uri,
		Path:        path,
		Text:        text,
		Outline:     outline,
		Diagnostics: em.Diagnostics(),
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.docs[uri] = doc
	return doc
}

func (w *Workspace) Remove(uri string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.docs, uri)
}

func (w *Workspace) Get(uri string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.docs[uri]
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
