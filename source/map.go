package source

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

type File struct {
	Name string
	Src  string

	lines []int
}

func NewFile(name, src string) *File {
	f := &File{Name: name, Src: src, lines: []int{0}}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			f.lines = append(f.lines, i+1)
		}
	}
	return f
}

func (f *File) LineCount() int {
	return len(f.lines)
}

// Line returns the text of the 1-based line n without its terminator.
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.lines) {
		return ""
	}
	start := f.lines[n-1]
	end := len(f.Src)
	if n < len(f.lines) {
		end = f.lines[n] - 1
	}
	return strings.TrimSuffix(f.Src[start:end], "\r")
}

// Position resolves a byte offset into a 1-based line and column.
func (f *File) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(f.Src) {
		offset = len(f.Src)
	}
	i := sort.Search(len(f.lines), func(i int) bool { return f.lines[i] > offset }) - 1
	return Position{
		File:   f.Name,
		Offset: offset,
		Line:   i + 1,
		Column: offset - f.lines[i] + 1,
	}
}

// Map owns every source file of a session.
type Map struct {
	mu    sync.RWMutex
	files []*File
}

func NewMap() *Map {
	return &Map{}
}

func (m *Map) NewSourceFile(name, src string) *File {
	f := NewFile(name, src)
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.files {
		if existing.Name == name {
			m.files[i] = f
			return f
		}
	}
	m.files = append(m.files, f)
	return f
}

func (m *Map) LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read %s: %w", path, err)
	}
	return m.NewSourceFile(path, string(data)), nil
}

func (m *Map) Files() []*File {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*File, len(m.files))
	copy(out, m.files)
	return out
}

func (m *Map) File(name string) *File {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, f := range m.files {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// IsMultiline reports whether the text covered by sp crosses a line boundary.
func (m *Map) IsMultiline(sp Span) bool {
	lo, hi := sp.Start, sp.End
	if hi.Offset < lo.Offset {
		lo, hi = hi, lo
	}
	if f := m.File(lo.File); f != nil && hi.Offset <= len(f.Src) {
		return strings.IndexByte(f.Src[lo.Offset:hi.Offset], '\n') >= 0
	}
	return lo.Line != hi.Line
}
