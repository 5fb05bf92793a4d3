package pipeline

import (
	"datum/internal/ast"
	"datum/internal/buffer"
	"datum/internal/lexer"
	"datum/internal/parser"
)

// Config bounds the buffers a pipeline may use. Zero means unbounded.
type Config struct {
	MaxTokenLength int
	MaxDepth       int
	MaxListWidth   int
}

// Bounded reports whether any limit is set.
func (c Config) Bounded() bool {
	return c.MaxTokenLength > 0 || c.MaxDepth > 0 || c.MaxListWidth > 0
}

// LexerOptions returns the tokenizer options for c.
func (c Config) LexerOptions() lexer.Options {
	if c.MaxTokenLength > 0 {
		return lexer.FixedText(c.MaxTokenLength)
	}
	return lexer.Options{}
}

// Storage returns the parser storage for c.
func (c Config) Storage() parser.Storage {
	switch {
	case c.MaxDepth > 0 && c.MaxListWidth > 0:
		return parser.FixedStorage{Depth: c.MaxDepth, Width: c.MaxListWidth}
	case c.MaxDepth > 0 || c.MaxListWidth > 0:
		return mixedStorage(c)
	}
	return parser.HeapStorage{}
}

// mixedStorage bounds whichever dimension is set and grows the other.
type mixedStorage Config

func (s mixedStorage) NewStack() buffer.Buffer[parser.Frame] {
	if s.MaxDepth > 0 {
		return buffer.NewFixed[parser.Frame](s.MaxDepth)
	}
	return parser.HeapStorage{}.NewStack()
}

func (s mixedStorage) NewList() buffer.Buffer[ast.Value] {
	if s.MaxListWidth > 0 {
		return buffer.NewFixed[ast.Value](s.MaxListWidth)
	}
	return parser.HeapStorage{}.NewList()
}
