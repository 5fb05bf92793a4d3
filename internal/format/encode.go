package format

import (
	"unicode/utf8"

	"datum/internal/char"
	"datum/internal/token"
)

// AppendToken appends the text of t, escaped so that it tokenizes back to t.
//
// Numeric text that would not tokenize as a number (empty, a lone sign, or
// starting with a non-numeric char) falls back to the #i override.
func AppendToken(dst []byte, t token.Token) []byte {
	switch t.Kind {
	case token.String:
		return appendString(dst, t.Text)
	case token.ID:
		return appendID(dst, t.Text)
	case token.SpecialID:
		dst = append(dst, '#')
		return appendPotentialID(dst, t.Text)
	case token.Numeric:
		return appendNumeric(dst, t.Text)
	case token.Quote:
		return append(dst, '\'')
	case token.ListStart:
		return append(dst, '(')
	case token.ListEnd:
		return append(dst, ')')
	}
	return dst
}

func appendString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for _, r := range s {
		switch r {
		case '\\':
			dst = append(dst, '\\', '\\')
		case '"':
			dst = append(dst, '\\', '"')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\t':
			dst = append(dst, '\\', 't')
		default:
			dst = utf8.AppendRune(dst, r)
		}
	}
	return append(dst, '"')
}

func appendID(dst []byte, s string) []byte {
	if s == "" {
		return append(dst, "#"+token.EmptyIDText...)
	}
	first, size := utf8.DecodeRuneInString(s)
	dst = char.Content(first).AppendEmit(dst)
	return appendPotentialID(dst, s[size:])
}

func appendPotentialID(dst []byte, s string) []byte {
	for _, r := range s {
		dst = char.PotentialIdentifier(r).AppendEmit(dst)
	}
	return dst
}

func appendNumeric(dst []byte, s string) []byte {
	if s == "" {
		return append(dst, '#', 'i')
	}
	first, size := utf8.DecodeRuneInString(s)
	c, ok := char.Identify(first)
	if !ok || !c.Class().NumericStart() {
		dst = append(dst, '#', 'i')
		return appendPotentialID(dst, s)
	}
	if size == len(s) {
		if c.Class() == char.ClassSign {
			// a lone sign reads back as an identifier
			return append(dst, '#', 'i', byte(first))
		}
		return utf8.AppendRune(dst, first)
	}
	dst = c.AppendEmit(dst)
	return appendPotentialID(dst, s[size:])
}

// TokenText returns the encoded form of t.
func TokenText(t token.Token) string {
	return string(AppendToken(nil, t))
}
