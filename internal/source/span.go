package source

import (
	"fmt"
)

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

// At returns the span of n bytes starting at off, clamped to the file.
func (f *File) At(off, n int) Span {
	size := len(f.Content)
	off = min(max(off, 0), size)
	end := min(off+max(n, 0), size)
	return Span{File: f.ID, Start: mustU32(off), End: mustU32(end)}
}
