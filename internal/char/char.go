package char

import (
	"strconv"
	"unicode/utf8"
)

// Char is a scalar value tagged with the class it carries in the stream.
type Char struct {
	r     rune
	class Class
}

// Identify wraps r with its natural class. It fails only for the backslash.
func Identify(r rune) (Char, bool) {
	c, ok := Classify(r)
	if !ok {
		return Char{}, false
	}
	return Char{r: r, class: c}, true
}

// Content wraps r as content regardless of its natural class.
func Content(r rune) Char {
	return Char{r: r, class: ClassContent}
}

// PotentialIdentifier keeps the natural class of r when that class can
// continue an identifier, and forces content otherwise.
func PotentialIdentifier(r rune) Char {
	if c, ok := Classify(r); ok && c.PotentialIdentifier() {
		return Char{r: r, class: c}
	}
	return Content(r)
}

func (c Char) Rune() rune   { return c.r }
func (c Char) Class() Class { return c.class }

// Escaped reports whether the char differs from its natural classification.
func (c Char) Escaped() bool {
	nat, ok := Classify(c.r)
	return !ok || nat != c.class
}

// AppendEmit appends the text that decodes back to c. Escaped control
// characters without a mnemonic use the \x form.
func (c Char) AppendEmit(dst []byte) []byte {
	if !c.Escaped() {
		return utf8.AppendRune(dst, c.r)
	}
	switch c.r {
	case '\r':
		return append(dst, '\\', 'r')
	case '\n':
		return append(dst, '\\', 'n')
	case '\t':
		return append(dst, '\\', 't')
	}
	// остальные управляющие символы: \xH;
	if nat, ok := Classify(c.r); ok && nat.NonPrinting() && c.r != ' ' {
		dst = append(dst, '\\', 'x')
		dst = strconv.AppendUint(dst, uint64(c.r), 16)
		return append(dst, ';')
	}
	dst = append(dst, '\\')
	return utf8.AppendRune(dst, c.r)
}

// Emit returns the text that decodes back to c.
func (c Char) Emit() string {
	var buf [8]byte
	return string(c.AppendEmit(buf[:0]))
}

func (c Char) String() string {
	return c.class.String() + "(" + c.Emit() + ")"
}
