package decoder

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrUTF8 reports malformed UTF-8 input.
var ErrUTF8 = errors.New("invalid utf-8")

// UTF8 turns a byte stream into scalar values. It emits at most one rune per
// byte and validates every sequence, rejecting overlong forms, surrogates and
// values past U+10FFFF.
type UTF8 struct {
	buf [utf8.UTFMax]byte
	n   int
	err error
}

// NewUTF8 returns a fresh byte assembler.
func NewUTF8() *UTF8 { return &UTF8{} }

func (d *UTF8) Feed(b byte, emit func(rune)) {
	if d.err != nil {
		return
	}
	if d.n == 0 {
		if b < utf8.RuneSelf {
			emit(rune(b))
			return
		}
		if !isLead(b) {
			d.fail("byte 0x%02X cannot start a sequence", b)
			return
		}
		d.buf[0] = b
		d.n = 1
		return
	}
	if !isContinuation(b) {
		d.fail("byte 0x%02X interrupts a %d-byte sequence", b, d.n)
		return
	}
	d.buf[d.n] = b
	d.n++
	if !utf8.FullRune(d.buf[:d.n]) {
		return
	}
	r, size := utf8.DecodeRune(d.buf[:d.n])
	if r == utf8.RuneError && size <= 1 {
		d.fail("malformed sequence % X", d.buf[:d.n])
		return
	}
	d.n = 0
	emit(r)
}

// EOF fails when a sequence is left incomplete.
func (d *UTF8) EOF(func(rune)) {
	if d.err == nil && d.n > 0 {
		d.fail("input ends inside sequence % X", d.buf[:d.n])
	}
}

func (d *UTF8) AllowedToEOF() bool { return d.err == nil && d.n == 0 }

func (d *UTF8) HasError() bool { return d.err != nil }

func (d *UTF8) Err() error { return d.err }

func (d *UTF8) MaxOut() int { return 1 }

func (d *UTF8) fail(format string, args ...any) {
	d.err = fmt.Errorf("%w: "+format, append([]any{ErrUTF8}, args...)...)
	d.n = 0
}

func isContinuation(b byte) bool { return b&0xC0 == 0x80 }

// isLead accepts 0xC2..0xF4; 0xC0 and 0xC1 only ever start overlong forms.
func isLead(b byte) bool { return b >= 0xC2 && b <= 0xF4 }
