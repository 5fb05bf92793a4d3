package decoder

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"datum/internal/char"
)

// ErrEscape reports a malformed backslash escape.
var ErrEscape = errors.New("invalid escape")

type escapeState uint8

const (
	escNormal escapeState = iota
	escPending
	escHex
	escFailed
)

// Escape resolves backslash escapes:
//
//	\r \n \t      carriage return, line feed, tab
//	\xHHHH;       any scalar value in hex, any number of digits
//	\c            c itself as content
//
// Unescaped scalars keep their natural class; everything produced by an
// escape is content.
type Escape struct {
	state escapeState
	acc   rune
	err   error
}

// NewEscape returns a fresh escape decoder.
func NewEscape() *Escape { return &Escape{} }

func (d *Escape) Feed(r rune, emit func(char.Char)) {
	switch d.state {
	case escNormal:
		if c, ok := char.Identify(r); ok {
			emit(c)
			return
		}
		d.state = escPending
	case escPending:
		d.state = escNormal
		switch r {
		case 'r':
			emit(char.Content('\r'))
		case 'n':
			emit(char.Content('\n'))
		case 't':
			emit(char.Content('\t'))
		case 'x':
			d.state = escHex
			d.acc = 0
		default:
			emit(char.Content(r))
		}
	case escHex:
		if r == ';' {
			d.state = escNormal
			if !utf8.ValidRune(d.acc) {
				d.fail("\\x escape names U+%X, which is not a scalar value", d.acc)
				return
			}
			emit(char.Content(d.acc))
			return
		}
		v, ok := hexValue(r)
		if !ok {
			d.fail("unexpected %q in \\x escape", r)
			return
		}
		d.acc = min(d.acc*16+v, utf8.MaxRune+1)
	case escFailed:
	}
}

// EOF fails when input stops inside an escape.
func (d *Escape) EOF(func(char.Char)) {
	switch d.state {
	case escPending:
		d.fail("input ends after backslash")
	case escHex:
		d.fail("input ends inside \\x escape")
	}
}

func (d *Escape) AllowedToEOF() bool { return d.state == escNormal }

func (d *Escape) HasError() bool { return d.err != nil }

func (d *Escape) Err() error { return d.err }

func (d *Escape) MaxOut() int { return 1 }

func (d *Escape) fail(format string, args ...any) {
	d.state = escFailed
	d.err = fmt.Errorf("%w: "+format, append([]any{ErrEscape}, args...)...)
}

func hexValue(r rune) (rune, bool) {
	switch {
	case r >= '0' && r <= '9':
		return r - '0', true
	case r >= 'a' && r <= 'f':
		return r - 'a' + 10, true
	case r >= 'A' && r <= 'F':
		return r - 'A' + 10, true
	}
	return 0, false
}
