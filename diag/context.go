package diag

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("sulk.diag")

type Option func(*Context)

// WithMaxErrors stops forwarding errors to the emitter once n have been
// emitted. Errors past the limit are still counted.
func WithMaxErrors(n int) Option {
	return func(c *Context) {
		c.maxErrors = n
	}
}

// Context creates diagnostics, counts the ones that are emitted and keeps
// track of the ones that have not been finished yet.
type Context struct {
	mu        sync.Mutex
	emitter   Emitter
	maxErrors int
	errors    int
	warnings  int
	nextID    uint64
	pending   map[uint64]*Diag
}

func NewContext(emitter Emitter, opts ...Option) *Context {
	if emitter == nil {
		emitter = SilentEmitter{}
	}
	c := &Context{
		emitter: emitter,
		pending: make(map[uint64]*Diag),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Context) Emitter() Emitter {
	return c.emitter
}

func (c *Context) New(level Level, msg string) *Diag {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	d := &Diag{Level: level, Message: msg, ctx: c, id: c.nextID}
	c.pending[d.id] = d
	return d
}

func (c *Context) Err(msg string) *Diag {
	return c.New(Error, msg)
}

func (c *Context) Errf(format string, args ...any) *Diag {
	return c.New(Error, fmt.Sprintf(format, args...))
}

func (c *Context) Warn(msg string) *Diag {
	return c.New(Warning, msg)
}

func (c *Context) Bug(msg string) *Diag {
	return c.New(Bug, msg)
}

func (c *Context) emit(d *Diag) {
	c.mu.Lock()
	delete(c.pending, d.id)
	forward := true
	switch {
	case d.Level.IsError():
		c.errors++
		forward = c.maxErrors <= 0 || c.errors <= c.maxErrors
	case d.Level == Warning:
		c.warnings++
	}
	c.mu.Unlock()

	log.Debugf("emit %s: %s", d.Level, d.Message)
	if forward {
		c.emitter.Emit(d)
	}
}

func (c *Context) cancel(d *Diag) {
	c.mu.Lock()
	delete(c.pending, d.id)
	c.mu.Unlock()
	log.Debugf("cancel %s: %s", d.Level, d.Message)
}

func (c *Context) ErrorCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors
}

func (c *Context) WarningCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.warnings
}

func (c *Context) HasErrors() bool {
	return c.ErrorCount() > 0
}

// ErrorCountMessage returns the summary printed at the end of a session, or
// "" when no error was emitted.
func (c *Context) ErrorCountMessage() string {
	switch n := c.ErrorCount(); n {
	case 0:
		return ""
	case 1:
		return "aborting due to 1 previous error"
	default:
		return fmt.Sprintf("aborting due to %d previous errors", n)
	}
}

// PrintErrorCount sends the session summary straight to the emitter. The
// summary itself is not counted.
func (c *Context) PrintErrorCount() {
	msg := c.ErrorCountMessage()
	if msg == "" {
		return
	}
	c.emitter.Emit(&Diag{Level: Error, Message: msg, state: stateEmitted})
	if w := c.WarningCount(); w > 0 {
		c.emitter.Emit(&Diag{Level: Warning, Message: fmt.Sprintf("%d warning(s) emitted", w), state: stateEmitted})
	}
}

// Pending returns the diagnostics that were neither emitted nor cancelled,
// in creation order.
func (c *Context) Pending() []*Diag {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Diag, 0, len(c.pending))
	for _, d := range c.pending {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Finish reports leaked diagnostics. A leak is a bug in the caller, never a
// user error.
func (c *Context) Finish() error {
	pending := c.Pending()
	if len(pending) == 0 {
		return nil
	}
	for _, d := range pending {
		log.Criticalf("diagnostic dropped without emit or cancel: %s", d)
	}
	return fmt.Errorf("%d diagnostic(s) dropped without emit or cancel", len(pending))
}
