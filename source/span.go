package source

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open range [Start, End) over source positions.
// The zero value is the dummy span.
type Span struct {
	Start Position
	End   Position
}

func (s Span) IsDummy() bool {
	return s == Span{}
}

func (s Span) IsEmpty() bool {
	return s.Start.Offset == s.End.Offset
}

func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// ShrinkToLo returns the empty span at the start of s.
func (s Span) ShrinkToLo() Span {
	return Span{Start: s.Start, End: s.Start}
}

// ShrinkToHi returns the empty span at the end of s.
func (s Span) ShrinkToHi() Span {
	return Span{Start: s.End, End: s.End}
}

// To returns a span from the start of s to the end of other.
func (s Span) To(other Span) Span {
	if other.IsDummy() {
		return s
	}
	if s.IsDummy() {
		return other
	}
	return Span{Start: s.Start, End: other.End}
}

// Until returns a span from the start of s to the start of other.
func (s Span) Until(other Span) Span {
	return Span{Start: s.Start, End: other.Start}
}

func (s Span) String() string {
	if s.IsDummy() {
		return "<dummy>"
	}
	return fmt.Sprintf("%s-%d:%d", s.Start, s.End.Line, s.End.Column)
}
