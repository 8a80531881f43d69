package diag

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/dhamidi/sulk/source"
)

type jsonDiag struct {
	Level    string      `json:"level"`
	Message  string      `json:"message"`
	Span     *jsonSpan   `json:"span,omitempty"`
	Labels   []jsonLabel `json:"labels,omitempty"`
	Children []jsonChild `json:"children,omitempty"`
}

type jsonSpan struct {
	File  string       `json:"file,omitempty"`
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

type jsonLabel struct {
	Span    *jsonSpan `json:"span"`
	Message string    `json:"message,omitempty"`
}

type jsonChild struct {
	Level   string    `json:"level"`
	Message string    `json:"message"`
	Span    *jsonSpan `json:"span,omitempty"`
}

var levelKeys = map[Level]string{
	Bug:     "bug",
	Fatal:   "fatal",
	Error:   "error",
	Warning: "warning",
	Note:    "note",
	Help:    "help",
}

// JSONEmitter writes one JSON object per diagnostic, one per line.
type JSONEmitter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func NewJSONEmitter(w io.Writer) *JSONEmitter {
	return &JSONEmitter{enc: json.NewEncoder(w)}
}

func (e *JSONEmitter) Emit(d *Diag) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enc.Encode(d.toJSON()); err != nil {
		log.Errorf("could not encode diagnostic: %s", err)
	}
}

func (d *Diag) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.toJSON())
}

func (d *Diag) toJSON() *jsonDiag {
	jd := &jsonDiag{
		Level:   levelKeys[d.Level],
		Message: d.Message,
		Span:    spanToJSON(d.Span),
	}
	for _, l := range d.Labels {
		jd.Labels = append(jd.Labels, jsonLabel{Span: spanToJSON(l.Span), Message: l.Message})
	}
	for _, c := range d.Children {
		jd.Children = append(jd.Children, jsonChild{
			Level:   levelKeys[c.Level],
			Message: c.Message,
			Span:    spanToJSON(c.Span),
		})
	}
	return jd
}

func spanToJSON(sp source.Span) *jsonSpan {
	if sp.IsDummy() {
		return nil
	}
	return &jsonSpan{
		File:  sp.Start.File,
		Start: jsonPosition{Offset: sp.Start.Offset, Line: sp.Start.Line, Column: sp.Start.Column},
		End:   jsonPosition{Offset: sp.End.Offset, Line: sp.End.Line, Column: sp.End.Column},
	}
}
