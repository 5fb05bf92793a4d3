package lexer_test

import (
	"errors"
	"slices"
	"testing"

	"datum/internal/char"
	"datum/internal/decoder"
	"datum/internal/lexer"
	"datum/internal/token"
)

// lexString прогоняет строку через декодер экранирования и лексер.
func lexString(t *testing.T, src string, opts lexer.Options) ([]token.Token, error) {
	t.Helper()
	esc := decoder.NewEscape()
	lx := lexer.New(opts)
	var toks []token.Token
	emit := func(tok token.Token) { toks = append(toks, tok) }
	for _, r := range src {
		esc.Feed(r, func(c char.Char) { lx.Feed(c, emit) })
	}
	esc.EOF(nil)
	if err := esc.Err(); err != nil {
		t.Fatalf("escape decoder: %v", err)
	}
	lx.EOF(emit)
	return toks, lx.Err()
}

func tk(k token.Kind, text string) token.Token { return token.New(k, text) }

func expectTokens(t *testing.T, src string, want ...token.Token) {
	t.Helper()
	got, err := lexString(t, src, lexer.Options{})
	if err != nil {
		t.Fatalf("%q: unexpected error %v", src, err)
	}
	if !slices.Equal(got, want) {
		t.Fatalf("%q:\n got  %v\n want %v", src, got, want)
	}
}

func TestLexAtoms(t *testing.T) {
	expectTokens(t, "")
	expectTokens(t, "hello", tk(token.ID, "hello"))
	expectTokens(t, "  hello\t", tk(token.ID, "hello"))
	expectTokens(t, `""`, tk(token.String, ""))
	expectTokens(t, `"a b\"c"`, tk(token.String, `a b"c`))
	expectTokens(t, "\"line\nbreak\"", tk(token.String, "line\nbreak"))
	expectTokens(t, "-", tk(token.ID, "-"))
	expectTokens(t, "--", tk(token.Numeric, "--"))
	expectTokens(t, "-10", tk(token.Numeric, "-10"))
	expectTokens(t, "1.23", tk(token.Numeric, "1.23"))
	expectTokens(t, "12abc", tk(token.Numeric, "12abc"))
	expectTokens(t, "+nan.0", tk(token.ID, "+nan.0"))
	expectTokens(t, "#t", tk(token.SpecialID, "t"))
	expectTokens(t, "#", tk(token.SpecialID, ""))
	expectTokens(t, "#{}#", tk(token.SpecialID, token.EmptyIDText))
	expectTokens(t, "#i+inf.0", tk(token.SpecialID, "i+inf.0"))
	expectTokens(t, "a#b-1", tk(token.ID, "a#b-1"))
	expectTokens(t, `\(x`, tk(token.ID, "(x"))
	expectTokens(t, `\1`, tk(token.ID, "1"))
	expectTokens(t, `a\ b`, tk(token.ID, "a b"))
}

func TestLexStructure(t *testing.T) {
	expectTokens(t, "(a b)",
		tk(token.ListStart, ""), tk(token.ID, "a"), tk(token.ID, "b"), tk(token.ListEnd, ""))
	expectTokens(t, "'x",
		tk(token.Quote, ""), tk(token.ID, "x"))
	expectTokens(t, "x'y",
		tk(token.ID, "x"), tk(token.Quote, ""), tk(token.ID, "y"))
	expectTokens(t, `a"b"c`,
		tk(token.ID, "a"), tk(token.String, "b"), tk(token.ID, "c"))
	expectTokens(t, "a ; comment (\nb",
		tk(token.ID, "a"), tk(token.ID, "b"))
	expectTokens(t, "((-))",
		tk(token.ListStart, ""), tk(token.ListStart, ""), tk(token.ID, "-"),
		tk(token.ListEnd, ""), tk(token.ListEnd, ""))
	expectTokens(t, ";only a comment")
}

func TestLexTwoTokensFromOneChar(t *testing.T) {
	lx := lexer.New(lexer.Options{})
	var toks []token.Token
	emit := func(tok token.Token) { toks = append(toks, tok) }
	for _, r := range "ab" {
		c, _ := char.Identify(r)
		lx.Feed(c, emit)
	}
	if len(toks) != 0 {
		t.Fatalf("premature tokens %v", toks)
	}
	c, _ := char.Identify(')')
	lx.Feed(c, emit)
	want := []token.Token{tk(token.ID, "ab"), tk(token.ListEnd, "")}
	if !slices.Equal(toks, want) {
		t.Fatalf("got %v, want %v", toks, want)
	}
	if lx.MaxOut() != 2 {
		t.Fatalf("MaxOut = %d", lx.MaxOut())
	}
}

func TestLexUnterminatedString(t *testing.T) {
	toks, err := lexString(t, `a "abc`, lexer.Options{})
	if !errors.Is(err, lexer.ErrUnterminatedString) {
		t.Fatalf("err = %v", err)
	}
	if !slices.Equal(toks, []token.Token{tk(token.ID, "a")}) {
		t.Fatalf("tokens before failure = %v", toks)
	}
}
