package lexer_test

import (
	"errors"
	"strings"
	"testing"

	"datum/internal/buffer"
	"datum/internal/lexer"
	"datum/internal/token"
)

func TestTokenAtLimitAllowed(t *testing.T) {
	toks, err := lexString(t, "abc (de) \"xyz\"", lexer.FixedText(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 5 || toks[0].Text != "abc" || toks[4] != tk(token.String, "xyz") {
		t.Fatalf("tokens = %v", toks)
	}
}

func TestTokenTooLongIsSticky(t *testing.T) {
	src := strings.Repeat("a", 5) + " b"
	toks, err := lexString(t, src, lexer.FixedText(4))
	if !errors.Is(err, lexer.ErrTokenTooLong) {
		t.Fatalf("err = %v, want ErrTokenTooLong", err)
	}
	if !errors.Is(err, buffer.ErrNoRoom) {
		t.Fatalf("err = %v does not wrap ErrNoRoom", err)
	}
	if len(toks) != 0 {
		t.Fatalf("tokens after overflow = %v", toks)
	}
}
