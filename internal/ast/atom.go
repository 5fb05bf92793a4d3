package ast

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"datum/internal/token"
)

var (
	// ErrUnknownSpecial reports a #-identifier with no meaning.
	ErrUnknownSpecial = errors.New("unknown special identifier")
	// ErrBadNumeric reports numeric text that is neither an integer nor a float.
	ErrBadNumeric = errors.New("invalid number")
	// ErrNotAtom reports a structural token passed to FromToken.
	ErrNotAtom = errors.New("token is not an atom")
)

// Text forms of the float specials, compared case-insensitively.
const (
	NaNText    = "+nan.0"
	PosInfText = "+inf.0"
	NegInfText = "-inf.0"
)

// FromToken converts an atom token into its value.
func FromToken(t token.Token) (Value, error) {
	switch t.Kind {
	case token.String:
		return Str(t.Text), nil
	case token.ID:
		return Sym(t.Text), nil
	case token.SpecialID:
		return fromSpecial(t.Text)
	case token.Numeric:
		return ParseNumeric(t.Text)
	}
	return Value{}, fmt.Errorf("%w: %v", ErrNotAtom, t.Kind)
}

func fromSpecial(text string) (Value, error) {
	switch {
	case strings.EqualFold(text, "t"):
		return Bool(true), nil
	case strings.EqualFold(text, "f"):
		return Bool(false), nil
	case strings.EqualFold(text, "nil"):
		return NilValue(), nil
	case text == token.EmptyIDText:
		return Sym(""), nil
	case len(text) > 0 && (text[0] == 'i' || text[0] == 'I'):
		return ParseNumeric(text[1:])
	}
	return Value{}, fmt.Errorf("%w: #%s", ErrUnknownSpecial, text)
}

// ParseNumeric reads numeric text as a float special, an int64 or a float64,
// in that order of preference.
func ParseNumeric(text string) (Value, error) {
	switch {
	case strings.EqualFold(text, NaNText):
		return Flt(math.NaN()), nil
	case strings.EqualFold(text, PosInfText):
		return Flt(math.Inf(1)), nil
	case strings.EqualFold(text, NegInfText):
		return Flt(math.Inf(-1)), nil
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Int(i), nil
	}
	if hexPrefixed(text) {
		return Value{}, fmt.Errorf("%w: %q", ErrBadNumeric, text)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err == nil || errors.Is(err, strconv.ErrRange) {
		return Flt(f), nil
	}
	return Value{}, fmt.Errorf("%w: %q", ErrBadNumeric, text)
}

// hexPrefixed reports a 0x or 0X prefix after an optional sign. strconv
// reads such text as a hex float; Datum numbers are decimal.
func hexPrefixed(text string) bool {
	body := strings.TrimPrefix(text, "-")
	body = strings.TrimPrefix(body, "+")
	return len(body) >= 2 && body[0] == '0' && (body[1] == 'x' || body[1] == 'X')
}

// ToToken converts an atom back into the token that reads as it.
// It reports false for lists.
func ToToken(v Value) (token.Token, bool) {
	switch v.Kind {
	case String:
		return token.New(token.String, v.Text), true
	case ID:
		return token.New(token.ID, v.Text), true
	case Integer:
		return token.New(token.Numeric, strconv.FormatInt(v.Int, 10)), true
	case Float:
		switch {
		case math.IsNaN(v.Float):
			return token.New(token.SpecialID, "i"+NaNText), true
		case math.IsInf(v.Float, 1):
			return token.New(token.SpecialID, "i"+PosInfText), true
		case math.IsInf(v.Float, -1):
			return token.New(token.SpecialID, "i"+NegInfText), true
		}
		return token.New(token.Numeric, FormatFloat(v.Float)), true
	case Boolean:
		if v.Bool {
			return token.New(token.SpecialID, "t"), true
		}
		return token.New(token.SpecialID, "f"), true
	case Nil:
		return token.New(token.SpecialID, "nil"), true
	}
	return token.Token{}, false
}

// FormatFloat renders a finite float in its shortest form that still reads
// back as a float rather than an integer.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}
