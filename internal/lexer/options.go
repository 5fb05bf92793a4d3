package lexer

import (
	"datum/internal/buffer"
)

// Options configures a Lexer.
type Options struct {
	// Text accumulates token text. nil means a growable heap buffer;
	// a buffer.Fixed caps the token length.
	Text buffer.Buffer[rune]
}

// FixedText returns options whose tokens hold at most n runes.
func FixedText(n int) Options {
	return Options{Text: buffer.NewFixed[rune](n)}
}
