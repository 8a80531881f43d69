package ast

import (
	"strings"

	"github.com/dhamidi/sulk/source"
	"github.com/dhamidi/sulk/symbol"
)

// Path is a dotted name such as `a.b.c`. A single-segment path keeps its
// identifier inline and holds no slice.
type Path struct {
	single symbol.Ident
	segs   []symbol.Ident
}

func NewSinglePath(id symbol.Ident) Path {
	return Path{single: id}
}

// NewPath builds a path from segs, which must not be empty.
func NewPath(segs []symbol.Ident) Path {
	switch len(segs) {
	case 0:
		panic("ast: empty path")
	case 1:
		return Path{single: segs[0]}
	}
	return Path{segs: segs}
}

func (p Path) IsSingle() bool {
	return p.segs == nil
}

func (p Path) Len() int {
	if p.segs == nil {
		return 1
	}
	return len(p.segs)
}

func (p Path) At(i int) symbol.Ident {
	if p.segs == nil {
		if i != 0 {
			panic("ast: path index out of range")
		}
		return p.single
	}
	return p.segs[i]
}

func (p Path) First() symbol.Ident {
	return p.At(0)
}

func (p Path) Last() symbol.Ident {
	return p.At(p.Len() - 1)
}

func (p Path) Segments() []symbol.Ident {
	if p.segs == nil {
		return []symbol.Ident{p.single}
	}
	return p.segs
}

func (p Path) Span() source.Span {
	return p.First().Span.To(p.Last().Span)
}

// Equal compares segment names, ignoring spans.
func (p Path) Equal(other Path) bool {
	if p.Len() != other.Len() {
		return false
	}
	for i := 0; i < p.Len(); i++ {
		if p.At(i).Name != other.At(i).Name {
			return false
		}
	}
	return true
}

func (p Path) String() string {
	if p.segs == nil {
		return string(p.single.Name)
	}
	names := make([]string, len(p.segs))
	for i, s := range p.segs {
		names[i] = string(s.Name)
	}
	return strings.Join(names, ".")
}
