package ast

import (
	"math"
	"strconv"
	"strings"
)

// Kind discriminates Value.
type Kind uint8

const (
	String Kind = iota
	ID
	Integer
	Float
	Boolean
	Nil
	List
)

var kindNames = [...]string{
	String:  "String",
	ID:      "ID",
	Integer: "Integer",
	Float:   "Float",
	Boolean: "Boolean",
	Nil:     "Nil",
	List:    "List",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// QuoteID is the identifier the quote shorthand expands to.
const QuoteID = "quote"

// Value is a Datum value. Only the field matching Kind is meaningful.
type Value struct {
	Kind  Kind
	Text  string // String, ID
	Int   int64
	Float float64
	Bool  bool
	Items []Value // List
}

func Str(s string) Value       { return Value{Kind: String, Text: s} }
func Sym(s string) Value       { return Value{Kind: ID, Text: s} }
func Int(i int64) Value        { return Value{Kind: Integer, Int: i} }
func Flt(f float64) Value      { return Value{Kind: Float, Float: f} }
func Bool(b bool) Value        { return Value{Kind: Boolean, Bool: b} }
func NilValue() Value          { return Value{Kind: Nil} }
func ListOf(vs ...Value) Value { return Value{Kind: List, Items: vs} }

// Quoted wraps v the way the quote shorthand does.
func Quoted(v Value) Value {
	return ListOf(Sym(QuoteID), v)
}

// IsAtom reports whether v is not a list.
func (v Value) IsAtom() bool { return v.Kind != List }

// Equal compares structurally. NaN equals NaN so that values survive
// a write and re-read unchanged.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case String, ID:
		return v.Text == o.Text
	case Integer:
		return v.Int == o.Int
	case Float:
		return v.Float == o.Float || (math.IsNaN(v.Float) && math.IsNaN(o.Float))
	case Boolean:
		return v.Bool == o.Bool
	case Nil:
		return true
	case List:
		if len(v.Items) != len(o.Items) {
			return false
		}
		for i := range v.Items {
			if !v.Items[i].Equal(o.Items[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// EqualAll compares two value sequences with Equal.
func EqualAll(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// String renders a debug form, e.g. List[ID(a) Integer(1)].
func (v Value) String() string {
	var sb strings.Builder
	v.debug(&sb)
	return sb.String()
}

func (v Value) debug(sb *strings.Builder) {
	sb.WriteString(v.Kind.String())
	switch v.Kind {
	case String:
		sb.WriteString("(" + strconv.Quote(v.Text) + ")")
	case ID:
		sb.WriteString("(" + v.Text + ")")
	case Integer:
		sb.WriteString("(" + strconv.FormatInt(v.Int, 10) + ")")
	case Float:
		sb.WriteString("(" + strconv.FormatFloat(v.Float, 'g', -1, 64) + ")")
	case Boolean:
		sb.WriteString("(" + strconv.FormatBool(v.Bool) + ")")
	case List:
		sb.WriteByte('[')
		for i, it := range v.Items {
			if i > 0 {
				sb.WriteByte(' ')
			}
			it.debug(sb)
		}
		sb.WriteByte(']')
	}
}

// Walk visits v and its descendants depth-first, stopping when fn returns false.
func (v Value) Walk(fn func(Value, int) bool) bool {
	return v.walk(fn, 0)
}

func (v Value) walk(fn func(Value, int) bool, depth int) bool {
	if !fn(v, depth) {
		return false
	}
	for _, it := range v.Items {
		if !it.walk(fn, depth+1) {
			return false
		}
	}
	return true
}
