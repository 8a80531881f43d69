package diag

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/dhamidi/sulk/source"
)

// Emitter renders finished diagnostics. Implementations must be safe for
// concurrent use.
type Emitter interface {
	Emit(d *Diag)
}

type SilentEmitter struct{}

func (SilentEmitter) Emit(*Diag) {}

// CollectingEmitter keeps every diagnostic it receives.
type CollectingEmitter struct {
	mu    sync.Mutex
	diags []*Diag
}

func NewCollectingEmitter() *CollectingEmitter {
	return &CollectingEmitter{}
}

func (e *CollectingEmitter) Emit(d *Diag) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.diags = append(e.diags, d)
}

func (e *CollectingEmitter) Diagnostics() []*Diag {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Diag, len(e.diags))
	copy(out, e.diags)
	return out
}

func (e *CollectingEmitter) Messages() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.diags))
	for i, d := range e.diags {
		out[i] = d.Message
	}
	return out
}

func (e *CollectingEmitter) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.diags = nil
}

type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("unknown color mode %q (want auto, always or never)", s)
}

// HumanEmitter prints diagnostics with source snippets, the way a compiler
// does on a terminal.
type HumanEmitter struct {
	mu      sync.Mutex
	w       io.Writer
	sources *source.Map

	levels map[Level]*color.Color
	gutter *color.Color
	title  *color.Color
}

func NewHumanEmitter(w io.Writer, sources *source.Map, mode ColorMode) *HumanEmitter {
	e := &HumanEmitter{
		w:       w,
		sources: sources,
		levels: map[Level]*color.Color{
			Bug:     color.New(color.FgRed, color.Bold),
			Fatal:   color.New(color.FgRed, color.Bold),
			Error:   color.New(color.FgRed, color.Bold),
			Warning: color.New(color.FgYellow, color.Bold),
			Note:    color.New(color.FgGreen, color.Bold),
			Help:    color.New(color.FgCyan, color.Bold),
		},
		gutter: color.New(color.FgBlue, color.Bold),
		title:  color.New(color.Bold),
	}
	for _, c := range e.allColors() {
		switch mode {
		case ColorAlways:
			c.EnableColor()
		case ColorNever:
			c.DisableColor()
		}
	}
	return e
}

func (e *HumanEmitter) allColors() []*color.Color {
	out := []*color.Color{e.gutter, e.title}
	for _, c := range e.levels {
		out = append(out, c)
	}
	return out
}

func (e *HumanEmitter) Emit(d *Diag) {
	var b strings.Builder
	e.render(&b, d)

	e.mu.Lock()
	defer e.mu.Unlock()
	io.WriteString(e.w, b.String())
}

func (e *HumanEmitter) levelColor(l Level) *color.Color {
	if c, ok := e.levels[l]; ok {
		return c
	}
	return e.title
}

func (e *HumanEmitter) render(b *strings.Builder, d *Diag) {
	fmt.Fprintf(b, "%s%s\n", e.levelColor(d.Level).Sprint(d.Level), e.title.Sprint(": "+d.Message))

	labels := d.Labels
	if len(labels) == 0 && !d.Span.IsDummy() {
		labels = []Label{{Span: d.Span}}
	}

	pad := e.gutterWidth(d)
	if !d.Span.IsDummy() {
		fmt.Fprintf(b, "%s%s %s\n", strings.Repeat(" ", pad), e.gutter.Sprint("-->"), d.Span.Start)
		e.renderSnippet(b, pad, d.Level, labels)
	}

	for _, child := range d.Children {
		if child.Span.IsDummy() || e.file(child.Span) == nil {
			fmt.Fprintf(b, "%s %s %s: %s\n", strings.Repeat(" ", pad), e.gutter.Sprint("="), e.title.Sprint(child.Level), child.Message)
			continue
		}
		fmt.Fprintf(b, "%s%s\n", e.levelColor(child.Level).Sprint(child.Level), e.title.Sprint(": "+child.Message))
		fmt.Fprintf(b, "%s%s %s\n", strings.Repeat(" ", pad), e.gutter.Sprint("-->"), child.Span.Start)
		e.renderSnippet(b, pad, child.Level, []Label{{Span: child.Span}})
	}
	b.WriteString("\n")
}

func (e *HumanEmitter) file(sp source.Span) *source.File {
	if e.sources == nil || sp.IsDummy() {
		return nil
	}
	return e.sources.File(sp.Start.File)
}

func (e *HumanEmitter) gutterWidth(d *Diag) int {
	maxLine := d.Span.Start.Line
	for _, l := range d.Labels {
		maxLine = max(maxLine, l.Span.Start.Line)
	}
	for _, c := range d.Children {
		maxLine = max(maxLine, c.Span.Start.Line)
	}
	return len(fmt.Sprint(maxLine))
}

func (e *HumanEmitter) renderSnippet(b *strings.Builder, pad int, level Level, labels []Label) {
	if len(labels) == 0 {
		return
	}
	file := e.file(labels[0].Span)
	if file == nil {
		return
	}

	sorted := make([]Label, len(labels))
	copy(sorted, labels)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, c := sorted[i].Span.Start, sorted[j].Span.Start
		if a.Line != c.Line {
			return a.Line < c.Line
		}
		return a.Column < c.Column
	})

	blank := strings.Repeat(" ", pad)
	marker := e.levelColor(level)
	fmt.Fprintf(b, "%s %s\n", blank, e.gutter.Sprint("|"))
	for i := 0; i < len(sorted); {
		line := sorted[i].Span.Start.Line
		text := file.Line(line)
		fmt.Fprintf(b, "%s %s %s\n", e.gutter.Sprint(fmt.Sprintf("%*d", pad, line)), e.gutter.Sprint("|"), text)
		for ; i < len(sorted) && sorted[i].Span.Start.Line == line; i++ {
			l := sorted[i]
			col := max(l.Span.Start.Column, 1)
			var width int
			if l.Span.End.Line == line {
				width = max(l.Span.End.Column-col, 1)
			} else {
				width = max(len(text)-col+1, 1)
			}
			carets := strings.Repeat("^", width)
			msg := ""
			if l.Message != "" {
				msg = " " + l.Message
			}
			fmt.Fprintf(b, "%s %s %s%s\n", blank, e.gutter.Sprint("|"), strings.Repeat(" ", col-1), marker.Sprint(carets+msg))
		}
	}
	fmt.Fprintf(b, "%s %s\n", blank, e.gutter.Sprint("|"))
}
