package testkit

import (
	"testing"

	"datum/internal/ast"
	"datum/internal/pipeline"
	"datum/internal/token"
)

func TestCheckTokenOffsets(t *testing.T) {
	ok := []token.Positioned{{Offset: 0}, {Offset: 3}, {Offset: 3}}
	if err := CheckTokenOffsets(ok, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	backwards := []token.Positioned{{Offset: 2}, {Offset: 1}}
	if err := CheckTokenOffsets(backwards, 3); err == nil {
		t.Fatalf("expected error for decreasing offsets")
	}
	outside := []token.Positioned{{Offset: 4}}
	if err := CheckTokenOffsets(outside, 3); err == nil {
		t.Fatalf("expected error for offset past input")
	}
}

func TestCheckFanOut(t *testing.T) {
	inputs := []string{"", "(a (b c) 'd)", `"\x41;" #i+nan.0 )`, "((((((", "'''x"}
	cfgs := []pipeline.Config{{}, {MaxTokenLength: 2, MaxDepth: 2, MaxListWidth: 2}}
	for _, in := range inputs {
		for _, cfg := range cfgs {
			peaks, err := CheckFanOut([]byte(in), cfg)
			if err != nil {
				t.Fatalf("%q %+v: %v", in, cfg, err)
			}
			if peaks.Token > pipeline.ByteToTokenMaxOut || peaks.Value > pipeline.ByteToValueMaxOut {
				t.Fatalf("%q: peaks %+v exceed bounds", in, peaks)
			}
		}
	}
}

func TestCheckRoundTrip(t *testing.T) {
	values := []ast.Value{
		ast.ListOf(ast.Sym("a"), ast.Str("b\n"), ast.Int(-3)),
		ast.Quoted(ast.Flt(2.5)),
		ast.NilValue(),
	}
	if err := CheckRoundTrip(values); err != nil {
		t.Fatal(err)
	}
}
