package driver

import (
	"context"
	"strings"
	"testing"

	"datum/internal/diag"
	"datum/internal/observ"
	"datum/internal/token"
)

func TestParseKeepsValuesBeforeFailure(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.datum", "(a b) c )")

	res, err := Parse(context.Background(), path, testOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Values) != 2 {
		t.Fatalf("expected 2 values before the failure, got %d", len(res.Values))
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.SynUnbalancedClose {
		t.Fatalf("expected one unbalanced-close diagnostic, got %+v", items)
	}
}

func TestParseStdin(t *testing.T) {
	opts := testOptions()
	opts.Stdin = strings.NewReader("'x")
	opts.Timer = observ.NewTimer()

	res, err := Parse(context.Background(), StdinPath, opts)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.File.Path != "<stdin>" {
		t.Fatalf("path = %q", res.File.Path)
	}
	if len(res.Values) != 1 || res.Bag.Len() != 0 {
		t.Fatalf("unexpected result: %d values, %d diagnostics", len(res.Values), res.Bag.Len())
	}
	phases := opts.Timer.Report().Phases
	if len(phases) != 1 || phases[0].Name != "parse" || phases[0].Count != 1 {
		t.Fatalf("unexpected timer phases %+v", phases)
	}
}

func TestParseMissingFile(t *testing.T) {
	if _, err := Parse(context.Background(), "does/not/exist.datum", testOptions()); err == nil {
		t.Fatalf("expected load error")
	}
}

func TestTokenize(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "t.datum", `(a "b")`)

	res, err := Tokenize(context.Background(), path, testOptions())
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", res.Bag.Items())
	}
	kinds := make([]token.Kind, 0, len(res.Tokens))
	for _, tok := range res.Tokens {
		kinds = append(kinds, tok.Kind)
	}
	want := []token.Kind{token.ListStart, token.ID, token.String, token.ListEnd}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", kinds, want)
		}
	}
}

func TestTokenizeReportsLexError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "t.datum", `a "open`)

	res, err := Tokenize(context.Background(), path, testOptions())
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(res.Tokens) != 1 {
		t.Fatalf("expected the token before the failure, got %d", len(res.Tokens))
	}
	if !res.Bag.HasErrors() || res.Bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("expected unterminated string, got %+v", res.Bag.Items())
	}
}
