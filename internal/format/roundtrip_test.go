package format_test

import (
	"errors"
	"strings"
	"testing"

	"datum/internal/format"
	"datum/internal/pipeline"
)

// roundTripCases maps input text to its canonical single-line form.
var roundTripCases = []struct {
	in, want string
}{
	{"", ""},
	{"hello", "hello"},
	{"(hello)", "(hello)"},
	{"1.23", "1.23"},
	{"#i+nan.0", "#i+nan.0"},
	{"#i+inf.0", "#i+inf.0"},
	{"#i-inf.0", "#i-inf.0"},
	{"10", "10"},
	{"-10", "-10"},
	{"#t", "#t"},
	{"#f", "#f"},
	{"#nil", "#nil"},
	{"#T #NIL", "#t #nil"},
	{"'hello", "(quote hello)"},
	{`"a quoted string"`, `"a quoted string"`},
	{`"esc \x41; \\ \" \n"`, `"esc A \\ \" \n"`},
	{"#{}#", "#{}#"},
	{"#i10", "10"},
	{"( a   b\n\t c )", "(a b c)"},
	{"a ; comment\n b", "a b"},
	{`\1abc \(x`, `\1abc \(x`},
	{"-", `\-`},
}

func TestCanonicalText(t *testing.T) {
	for _, tc := range roundTripCases {
		vs, err := pipeline.ParseString(tc.in, pipeline.Config{})
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if got := format.Values(vs...); got != tc.want {
			t.Errorf("%q: got %q, want %q", tc.in, got, tc.want)
		}
	}
}

var corpus = []string{
	"(define (square x) (* x x))",
	"'('a ''b (c . d))",
	`("tab\tnew\nline" #t #f #nil 1 -2 3.5 1e300 #i+inf.0)`,
	"(((((deep)))))",
	"#{}# (#{}#) \\#not-special",
	"(let ((x 1) (y 2)) (+ x y)) ; trailing comment",
	"日本 \"語\" ё-ж",
	"(1e21 100000.0 -0.0 5e-324)",
}

func TestRoundTripAndIdempotence(t *testing.T) {
	layouts := []format.Options{
		{},
		{Compact: true},
		{MaxWidth: 12},
		{MaxWidth: 1, Header: "generated\nby test"},
	}
	for _, src := range corpus {
		for _, opt := range layouts {
			if _, err := format.CheckRoundTrip([]byte(src), pipeline.Config{}, opt); err != nil {
				t.Fatalf("%q with %+v: %v", src, opt, err)
			}
		}
	}
}

func TestDocumentLayout(t *testing.T) {
	out, _, err := format.Source([]byte("(define (square x) (* x x)) a"), pipeline.Config{}, format.Options{MaxWidth: 16})
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	want := "(define\n\t(square x)\n\t(* x x))\na\n"
	if string(out) != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestDocumentHeader(t *testing.T) {
	out, _, err := format.Source([]byte("x"), pipeline.Config{}, format.Options{Header: "one\ntwo"})
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if want := "; one\n; two\n\nx\n"; string(out) != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestCheckRoundTripReportsParseErrors(t *testing.T) {
	_, err := format.CheckRoundTrip([]byte("(unclosed"), pipeline.Config{}, format.Options{})
	var perr *pipeline.Error
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(err.Error(), "unterminated list") {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestSourceKeepsComments(t *testing.T) {
	cases := []struct {
		name string
		in   string
		opt  format.Options
		want string
	}{
		{
			name: "own line and trailing at top level",
			in:   "; server settings, do not edit\n(port 8080) ; main port\n",
			want: "; server settings, do not edit\n(port 8080) ; main port\n",
		},
		{
			name: "trailing inside a list",
			in:   "(a ; one\n b)",
			want: "(a ; one\n\tb)\n",
		},
		{
			name: "own line inside a list",
			in:   "(a\n   ; note\n b)",
			want: "(a\n\t; note\n\tb)\n",
		},
		{
			name: "before the list end",
			in:   "(a b ; end\n)",
			want: "(a\n\tb ; end\n)\n",
		},
		{
			name: "inside a quoted list",
			in:   "'(x ; c\n y)",
			want: "(quote\n\t(x ; c\n\t\ty))\n",
		},
		{
			name: "only comments",
			in:   "; just a note\n",
			want: "; just a note\n",
		},
		{
			name: "crlf and missing final newline",
			in:   "a ; x\r\nb ;tail",
			want: "a ; x\nb ;tail\n",
		},
		{
			name: "glued to an atom",
			in:   "abc;x\n",
			want: "abc ;x\n",
		},
		{
			name: "header already present",
			in:   "; generated\n\n(a) ; x\n",
			opt:  format.Options{Header: "generated"},
			want: "; generated\n\n(a) ; x\n",
		},
		{
			name: "header added before comments",
			in:   "; mine\nx\n",
			opt:  format.Options{Header: "generated"},
			want: "; generated\n\n; mine\nx\n",
		},
		{
			name: "breaks only the lists holding comments",
			in:   "(outer (keep on one line) (b ; why\n c))",
			want: "(outer\n\t(keep on one line)\n\t(b ; why\n\t\tc))\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := format.CheckRoundTrip([]byte(tc.in), pipeline.Config{}, tc.opt)
			if err != nil {
				t.Fatalf("CheckRoundTrip: %v (output %q)", err, out)
			}
			if string(out) != tc.want {
				t.Fatalf("got %q, want %q", out, tc.want)
			}
		})
	}
}

func TestVerifyCatchesLostComments(t *testing.T) {
	src := []byte("(port 8080) ; main port\n")
	vs, err := pipeline.ParseBytes(src, pipeline.Config{})
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	cases := []struct {
		name string
		out  string
		want error
	}{
		{"kept", "(port 8080) ; main port\n", nil},
		{"dropped", "(port 8080)\n", format.ErrCommentsLost},
		{"changed values", "(port 8081) ; main port\n", format.ErrRoundTrip},
		{"not canonical", "(port   8080) ; main port\n", format.ErrNotIdempotent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := format.Verify(src, vs, []byte(tc.out), format.Options{})
			if !errors.Is(err, tc.want) {
				t.Fatalf("Verify = %v, want %v", err, tc.want)
			}
		})
	}
}
