package format

import (
	"bytes"
	"errors"
	"math"
	"slices"
	"testing"

	"datum/internal/ast"
	"datum/internal/pipeline"
	"datum/internal/token"
)

func TestWriteCommentAfterNewline(t *testing.T) {
	w := NewWriter(0)
	w.WriteNewline()
	w.Indent = 1
	w.WriteComment("lof\nlif\nidk?")
	if got, want := w.String(), "\n\t; lof\n\t; lif\n\t; idk?\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriteLineComment(t *testing.T) {
	cases := []struct {
		name     string
		setup    func(w *Writer)
		trailing bool
		want     string
	}{
		{"empty output", func(*Writer) {}, false, ";c\n"},
		{"after token trailing", func(w *Writer) { w.WriteToken(token.New(token.ID, "a")) }, true, "a ;c\n"},
		{"after token own line", func(w *Writer) { w.WriteToken(token.New(token.ID, "a")) }, false, "a\n;c\n"},
		{"after open paren", func(w *Writer) { w.WriteToken(token.New(token.ListStart, "")) }, true, "( ;c\n"},
		{"indented", func(w *Writer) {
			w.Indent = 2
			w.WriteNewline()
		}, false, "\n\t\t;c\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWriter(0)
			tc.setup(w)
			w.WriteLineComment("c", tc.trailing)
			if got := w.String(); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
			if !w.AtLineStart() {
				t.Fatalf("comment did not end the line")
			}
		})
	}
}

func TestPlaceComments(t *testing.T) {
	cases := []struct {
		src  string
		want []Comment
	}{
		{"; a\nx", []Comment{{Path: []int{}, Before: 0, Text: " a"}}},
		{"x ; a", []Comment{{Path: []int{}, Before: 1, Trailing: true, Text: " a"}}},
		{"(x ; a\n y)", []Comment{{Path: []int{0}, Before: 1, Trailing: true, Text: " a"}}},
		{"(x (y)\n; a\n)", []Comment{{Path: []int{0}, Before: 2, Text: " a"}}},
		{"z '(x ; a\n)", []Comment{{Path: []int{1, 1}, Before: 1, Trailing: true, Text: " a"}}},
		{"' ; a\nx", []Comment{{Path: []int{0}, Before: 1, Trailing: true, Text: " a"}}},
		{"'x ; a\n", []Comment{{Path: []int{}, Before: 1, Trailing: true, Text: " a"}}},
	}
	for _, tc := range cases {
		got, err := SourceComments([]byte(tc.src), pipeline.Config{})
		if err != nil {
			t.Fatalf("%q: %v", tc.src, err)
		}
		if len(got) != len(tc.want) {
			t.Fatalf("%q: got %+v", tc.src, got)
		}
		for i := range got {
			g, w := got[i], tc.want[i]
			if !slices.Equal(g.Path, w.Path) || g.Before != w.Before || g.Trailing != w.Trailing || g.Text != w.Text {
				t.Fatalf("%q: comment %d = %+v, want %+v", tc.src, i, g, w)
			}
		}
	}
}

func TestWriteTokensSpacing(t *testing.T) {
	w := NewWriter(0)
	for _, tok := range []token.Token{
		token.New(token.ListStart, ""),
		token.New(token.ID, "a"),
		token.New(token.Quote, ""),
		token.New(token.ID, "b"),
		token.New(token.ListStart, ""),
		token.New(token.ListEnd, ""),
		token.New(token.ListEnd, ""),
		token.New(token.Numeric, "1"),
	} {
		w.WriteToken(tok)
	}
	if got, want := w.String(), "(a 'b ()) 1"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeTokens(t *testing.T) {
	cases := []struct {
		tok  token.Token
		want string
	}{
		{token.New(token.String, "a\\b\"c\r\n\t"), `"a\\b\"c\r\n\t"`},
		{token.New(token.String, "日本"), `"日本"`},
		{token.New(token.ID, "hello"), "hello"},
		{token.New(token.ID, ""), "#{}#"},
		{token.New(token.ID, "1abc"), `\1abc`},
		{token.New(token.ID, "-"), `\-`},
		{token.New(token.ID, "#x"), `\#x`},
		{token.New(token.ID, "a b(c)"), `a\ b\(c\)`},
		{token.New(token.ID, "a-1#"), "a-1#"},
		{token.New(token.SpecialID, "t"), "#t"},
		{token.New(token.SpecialID, "{}#"), "#{}#"},
		{token.New(token.SpecialID, "a'b"), `#a\'b`},
		{token.New(token.Numeric, ""), "#i"},
		{token.New(token.Numeric, "-"), "#i-"},
		{token.New(token.Numeric, "7"), "7"},
		{token.New(token.Numeric, "-7"), "-7"},
		{token.New(token.Numeric, "1.5e3"), "1.5e3"},
		{token.New(token.Numeric, "abc"), "#iabc"},
		{token.New(token.Numeric, "+inf.0"), "#i+inf.0"},
		{token.New(token.Numeric, `\1`), `#i\\1`},
		{token.New(token.Quote, ""), "'"},
		{token.New(token.ListStart, ""), "("},
		{token.New(token.ListEnd, ""), ")"},
	}
	for _, tc := range cases {
		if got := TokenText(tc.tok); got != tc.want {
			t.Errorf("TokenText(%v) = %q, want %q", tc.tok, got, tc.want)
		}
	}
}

func TestWriteAtoms(t *testing.T) {
	cases := []struct {
		v    ast.Value
		want string
	}{
		{ast.Flt(math.NaN()), "#i+nan.0"},
		{ast.Flt(math.Inf(1)), "#i+inf.0"},
		{ast.Flt(math.Inf(-1)), "#i-inf.0"},
		{ast.Flt(1.23), "1.23"},
		{ast.Flt(2), "2.0"},
		{ast.Int(-10), "-10"},
		{ast.Bool(true), "#t"},
		{ast.Bool(false), "#f"},
		{ast.NilValue(), "#nil"},
		{ast.Str(""), `""`},
	}
	for _, tc := range cases {
		w := NewWriter(0)
		if err := w.WriteAtom(tc.v); err != nil {
			t.Fatalf("WriteAtom(%v): %v", tc.v, err)
		}
		if got := w.String(); got != tc.want {
			t.Errorf("WriteAtom(%v) = %q, want %q", tc.v, got, tc.want)
		}
	}
	if err := NewWriter(0).WriteAtom(ast.ListOf()); !errors.Is(err, ast.ErrNotAtom) {
		t.Fatalf("WriteAtom(list) err = %v", err)
	}
}

func TestWriteValueQuote(t *testing.T) {
	got := Values(ast.Quoted(ast.Sym("hello")), ast.ListOf(), ast.Int(1))
	if want := "(quote hello) () 1"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriteToFlushes(t *testing.T) {
	w := NewWriter(0)
	w.WriteValue(ast.Sym("x"))
	var out bytes.Buffer
	n, err := w.WriteTo(&out)
	if err != nil || n != 1 || out.String() != "x" || w.Len() != 0 {
		t.Fatalf("n=%d err=%v out=%q len=%d", n, err, out.String(), w.Len())
	}
}
