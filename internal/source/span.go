package source

import (
	"fmt"
)

// Span is a half-open byte range inside a single file.
// A zero-length span at offset 0 of file 0 marks a synthesized element.
type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
// Spans from different files are not merged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Contains reports whether off lies inside s.
func (s Span) Contains(off uint32) bool {
	return s.Start <= off && off < s.End
}

// Overlaps reports whether two non-empty spans share at least one byte.
func (s Span) Overlaps(other Span) bool {
	if s.File != other.File || s.Empty() || other.Empty() {
		return false
	}
	return s.Start < other.End && other.Start < s.End
}

// ShiftLeft moves the span n bytes towards the file start.
// Shifting past offset 0 leaves the span unchanged.
func (s Span) ShiftLeft(n uint32) Span {
	if n > s.Start {
		return s
	}
	return Span{
		File:  s.File,
		Start: s.Start - n,
		End:   s.End - n,
	}
}

func (s Span) ShiftRight(n uint32) Span {
	return Span{
		File:  s.File,
		Start: s.Start + n,
		End:   s.End + n,
	}
}
