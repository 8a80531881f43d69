package diag

import (
	"fmt"

	"github.com/dhamidi/sulk/source"
)

type Level int

const (
	Bug Level = iota
	Fatal
	Error
	Warning
	Note
	Help
)

var levelNames = map[Level]string{
	Bug:     "error: internal compiler error",
	Fatal:   "error",
	Error:   "error",
	Warning: "warning",
	Note:    "note",
	Help:    "help",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "unknown"
}

// IsError reports whether diagnostics of this level count towards the
// error total of a Context.
func (l Level) IsError() bool {
	return l <= Error
}

type Label struct {
	Span    source.Span
	Message string
}

// SubDiag is a note or help attached to a diagnostic. Span may be dummy.
type SubDiag struct {
	Level   Level
	Message string
	Span    source.Span
}

type state int

const (
	statePending state = iota
	stateEmitted
	stateCancelled
)

// Diag is a diagnostic under construction. It must be finished exactly once,
// by Emit or by Cancel.
type Diag struct {
	Level    Level
	Message  string
	Span     source.Span
	Labels   []Label
	Children []SubDiag

	ctx   *Context
	id    uint64
	state state
}

func (d *Diag) WithSpan(sp source.Span) *Diag {
	d.Span = sp
	return d
}

func (d *Diag) SpanLabel(sp source.Span, msg string) *Diag {
	d.Labels = append(d.Labels, Label{Span: sp, Message: msg})
	return d
}

func (d *Diag) Help(msg string) *Diag {
	return d.SpanHelp(source.Span{}, msg)
}

func (d *Diag) SpanHelp(sp source.Span, msg string) *Diag {
	d.Children = append(d.Children, SubDiag{Level: Help, Message: msg, Span: sp})
	return d
}

func (d *Diag) Note(msg string) *Diag {
	return d.SpanNote(source.Span{}, msg)
}

func (d *Diag) SpanNote(sp source.Span, msg string) *Diag {
	d.Children = append(d.Children, SubDiag{Level: Note, Message: msg, Span: sp})
	return d
}

// AddChildren appends copies of children, typically taken from another
// diagnostic that is about to be cancelled.
func (d *Diag) AddChildren(children ...SubDiag) *Diag {
	d.Children = append(d.Children, children...)
	return d
}

func (d *Diag) IsEmitted() bool {
	return d.state == stateEmitted
}

func (d *Diag) IsCancelled() bool {
	return d.state == stateCancelled
}

func (d *Diag) IsPending() bool {
	return d.state == statePending
}

// Emit hands the diagnostic to its context's emitter.
func (d *Diag) Emit() {
	d.finish(stateEmitted)
	d.ctx.emit(d)
}

// Cancel discards the diagnostic without reporting it.
func (d *Diag) Cancel() {
	d.finish(stateCancelled)
	d.ctx.cancel(d)
}

func (d *Diag) finish(to state) {
	if d.ctx == nil {
		panic("diag: diagnostic was not created by a Context")
	}
	switch d.state {
	case stateEmitted:
		panic(fmt.Sprintf("diag: diagnostic %q was already emitted", d.Message))
	case stateCancelled:
		panic(fmt.Sprintf("diag: diagnostic %q was already cancelled", d.Message))
	}
	d.state = to
}

func (d *Diag) String() string {
	if d.Span.IsDummy() {
		return fmt.Sprintf("%s: %s", d.Level, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Span.Start, d.Level, d.Message)
}
