package lexer

import (
	"errors"
	"fmt"

	"datum/internal/buffer"
	"datum/internal/char"
	"datum/internal/token"
)

var (
	// ErrUnterminatedString reports input that ends inside a string.
	ErrUnterminatedString = errors.New("unterminated string")
	// ErrTokenTooLong reports token text that does not fit the text buffer.
	ErrTokenTooLong = errors.New("token too long")
)

// Lexer is the pipeline stage turning classified chars into tokens. It
// emits at most two tokens per char: the one the char terminates and the
// one the char itself forms, as in "a)".
type Lexer struct {
	core Tokenizer
	text buffer.Buffer[rune]
	err  error
}

// New returns a lexer with the given options.
func New(opts Options) *Lexer {
	text := opts.Text
	if text == nil {
		text = buffer.NewHeap[rune](16)
	}
	return &Lexer{text: text}
}

func (lx *Lexer) Feed(c char.Char, emit func(token.Token)) {
	if lx.err != nil {
		return
	}
	for _, a := range lx.core.Feed(c.Class()) {
		if a.Kind == ActNone {
			break
		}
		lx.apply(a, c.Rune(), emit)
		if lx.err != nil {
			return
		}
	}
}

func (lx *Lexer) apply(a Action, r rune, emit func(token.Token)) {
	switch a.Kind {
	case ActPush:
		if err := lx.text.Push(r); err != nil {
			lx.err = fmt.Errorf("%w: more than %d characters: %w", ErrTokenTooLong, lx.text.Len(), err)
		}
	case ActToken:
		emit(lx.take(a.Token))
	}
}

func (lx *Lexer) take(k token.Kind) token.Token {
	tok := token.New(k, string(lx.text.Slice()))
	lx.text.Truncate(0)
	return tok
}

// EOF emits the pending token, if any.
func (lx *Lexer) EOF(emit func(token.Token)) {
	if lx.err != nil {
		return
	}
	res := lx.core.EOF()
	switch res.Kind {
	case EOFError:
		lx.err = fmt.Errorf("%w: %d characters read", ErrUnterminatedString, lx.text.Len())
		lx.text.Truncate(0)
	case EOFToken:
		emit(lx.take(res.Token))
	}
}

func (lx *Lexer) AllowedToEOF() bool { return lx.err == nil && lx.core.AllowedToEOF() }

func (lx *Lexer) HasError() bool { return lx.err != nil }

func (lx *Lexer) Err() error { return lx.err }

func (lx *Lexer) MaxOut() int { return 2 }
