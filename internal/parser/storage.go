package parser

import (
	"datum/internal/ast"
	"datum/internal/buffer"
)

// FrameKind discriminates Frame.
type FrameKind uint8

const (
	InList FrameKind = iota
	InQuote
)

func (k FrameKind) String() string {
	if k == InQuote {
		return "InQuote"
	}
	return "InList"
}

// Frame is one open construct. Items is set for list frames only.
type Frame struct {
	Kind  FrameKind
	Items buffer.Buffer[ast.Value]
}

// Storage supplies the buffers a parser works in.
type Storage interface {
	NewStack() buffer.Buffer[Frame]
	NewList() buffer.Buffer[ast.Value]
}

// HeapStorage grows without bound.
type HeapStorage struct{}

func (HeapStorage) NewStack() buffer.Buffer[Frame] { return buffer.NewHeap[Frame](8) }

func (HeapStorage) NewList() buffer.Buffer[ast.Value] { return buffer.NewHeap[ast.Value](4) }

// FixedStorage caps nesting depth (quote frames included) and list width.
type FixedStorage struct {
	Depth int
	Width int
}

func (s FixedStorage) NewStack() buffer.Buffer[Frame] { return buffer.NewFixed[Frame](s.Depth) }

func (s FixedStorage) NewList() buffer.Buffer[ast.Value] {
	return buffer.NewFixed[ast.Value](s.Width)
}
