package diagfmt

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"datum/internal/ast"
	"datum/internal/source"
	"datum/internal/token"
)

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	src := []byte("(a\n\"b c\")")
	id := fs.AddVirtual("t.dtm", src)
	toks := []token.Positioned{
		{Token: token.New(token.ListStart, ""), Offset: 0},
		{Token: token.New(token.ID, "a"), Offset: 2},
		{Token: token.New(token.String, "b c"), Offset: 7},
		{Token: token.New(token.ListEnd, ""), Offset: 8},
	}

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs, id); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if want := `  3: String     "b c" "b c" at 2:5`; lines[2] != want {
		t.Errorf("line 3 = %q, want %q", lines[2], want)
	}
	if want := "  4: ListEnd    ) at 2:6"; lines[3] != want {
		t.Errorf("line 4 = %q, want %q", lines[3], want)
	}
}

func TestFormatTokensJSON(t *testing.T) {
	toks := []token.Positioned{
		{Token: token.New(token.Numeric, "-"), Offset: 1},
		{Token: token.New(token.ID, ""), Offset: 5},
	}
	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, toks, nil, 0); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[0].Source != "#i-" || out[1].Source != "#{}#" {
		t.Fatalf("unexpected output %+v", out)
	}
}

func TestFormatValues(t *testing.T) {
	vs := []ast.Value{
		ast.ListOf(ast.Sym("point"), ast.Int(1), ast.Flt(math.Inf(1))),
		ast.Quoted(ast.Bool(true)),
	}

	var tree bytes.Buffer
	if err := FormatValuesTree(&tree, vs); err != nil {
		t.Fatal(err)
	}
	want := "value #1\n" +
		"  List (3)\n" +
		"    ID point\n" +
		"    Integer 1\n" +
		"    Float #i+inf.0\n" +
		"value #2\n" +
		"  List (2)\n" +
		"    ID quote\n" +
		"    Boolean #t\n"
	if tree.String() != want {
		t.Fatalf("tree:\n%s\nwant:\n%s", tree.String(), want)
	}

	var js bytes.Buffer
	if err := FormatValuesJSON(&js, vs); err != nil {
		t.Fatal(err)
	}
	var out []ValueOutput
	if err := json.Unmarshal(js.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || len(out[0].Items) != 3 || out[0].Items[2].Text != "#i+inf.0" {
		t.Fatalf("unexpected json %+v", out)
	}
}
