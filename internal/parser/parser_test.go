package parser_test

import (
	"errors"
	"testing"

	"datum/internal/ast"
	"datum/internal/buffer"
	"datum/internal/parser"
	"datum/internal/token"
)

var (
	ls = token.New(token.ListStart, "")
	le = token.New(token.ListEnd, "")
	qt = token.New(token.Quote, "")
)

func id(s string) token.Token  { return token.New(token.ID, s) }
func num(s string) token.Token { return token.New(token.Numeric, s) }

func parseTokens(store parser.Storage, toks ...token.Token) ([]ast.Value, *parser.Parser) {
	p := parser.New(store)
	var out []ast.Value
	emit := func(v ast.Value) { out = append(out, v) }
	for _, t := range toks {
		p.Feed(t, emit)
	}
	p.EOF(emit)
	return out, p
}

func TestParseValues(t *testing.T) {
	cases := []struct {
		name string
		toks []token.Token
		want []ast.Value
	}{
		{"empty", nil, nil},
		{"atom", []token.Token{id("hello")}, []ast.Value{ast.Sym("hello")}},
		{"two atoms", []token.Token{id("a"), num("1")}, []ast.Value{ast.Sym("a"), ast.Int(1)}},
		{"empty list", []token.Token{ls, le}, []ast.Value{ast.ListOf()}},
		{"list", []token.Token{ls, id("hello"), le}, []ast.Value{ast.ListOf(ast.Sym("hello"))}},
		{
			"nested",
			[]token.Token{ls, id("a"), ls, num("2"), le, le},
			[]ast.Value{ast.ListOf(ast.Sym("a"), ast.ListOf(ast.Int(2)))},
		},
		{"quote", []token.Token{qt, id("hello")}, []ast.Value{ast.Quoted(ast.Sym("hello"))}},
		{
			"double quote wraps innermost first",
			[]token.Token{qt, qt, id("x")},
			[]ast.Value{ast.Quoted(ast.Quoted(ast.Sym("x")))},
		},
		{
			"quoted list",
			[]token.Token{qt, ls, id("a"), le},
			[]ast.Value{ast.Quoted(ast.ListOf(ast.Sym("a")))},
		},
		{
			"quote inside list",
			[]token.Token{ls, qt, id("a"), id("b"), le},
			[]ast.Value{ast.ListOf(ast.Quoted(ast.Sym("a")), ast.Sym("b"))},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, p := parseTokens(nil, tc.toks...)
			if err := p.Err(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !ast.EqualAll(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOpeningListsIsNotAnError(t *testing.T) {
	p := parser.New(nil)
	for range 3 {
		p.Feed(ls, func(ast.Value) { t.Fatalf("unexpected value") })
		if p.HasError() {
			t.Fatalf("opening a list set the error flag: %v", p.Err())
		}
	}
	if p.Depth() != 3 || p.AllowedToEOF() {
		t.Fatalf("depth=%d allowedToEOF=%v", p.Depth(), p.AllowedToEOF())
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		toks []token.Token
		want error
	}{
		{"stray close", []token.Token{le}, parser.ErrUnbalancedClose},
		{"close after quote", []token.Token{ls, qt, le}, parser.ErrUnbalancedClose},
		{"open list at eof", []token.Token{ls, id("a")}, parser.ErrUnterminatedList},
		{"quote at eof", []token.Token{qt}, parser.ErrDanglingQuote},
		{"quote inside list at eof", []token.Token{ls, qt}, parser.ErrDanglingQuote},
		{"bad special", []token.Token{token.New(token.SpecialID, "wat")}, ast.ErrUnknownSpecial},
		{"bad number", []token.Token{num("1x")}, parser.ErrBadAtom},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, p := parseTokens(nil, tc.toks...)
			if !errors.Is(p.Err(), tc.want) {
				t.Fatalf("err = %v, want %v", p.Err(), tc.want)
			}
		})
	}
}

func TestErrorIsSticky(t *testing.T) {
	got, p := parseTokens(nil, le, id("a"), ls, le)
	if len(got) != 0 || !errors.Is(p.Err(), parser.ErrUnbalancedClose) {
		t.Fatalf("got %v, err %v", got, p.Err())
	}
}

func TestFixedStorageLimits(t *testing.T) {
	store := parser.FixedStorage{Depth: 2, Width: 2}

	got, p := parseTokens(store, ls, ls, id("a"), id("b"), le, le)
	if p.Err() != nil || len(got) != 1 {
		t.Fatalf("within limits: got %v err %v", got, p.Err())
	}

	_, p = parseTokens(store, ls, ls, ls)
	if !errors.Is(p.Err(), parser.ErrTooDeep) || !errors.Is(p.Err(), buffer.ErrNoRoom) {
		t.Fatalf("depth err = %v", p.Err())
	}

	_, p = parseTokens(store, ls, id("a"), id("b"), id("c"), le)
	if !errors.Is(p.Err(), parser.ErrListTooLong) {
		t.Fatalf("width err = %v", p.Err())
	}

	_, p = parseTokens(store, qt, qt, qt, id("x"))
	if !errors.Is(p.Err(), parser.ErrTooDeep) {
		t.Fatalf("quote frames must count toward depth, err = %v", p.Err())
	}
}
