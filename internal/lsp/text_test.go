package lsp

import (
	"testing"

	"datum/internal/source"
)

func TestOffsetForPositionUTF16(t *testing.T) {
	text := "é😀x\nab"
	tests := []struct {
		name string
		pos  position
		want int
	}{
		{name: "start", pos: position{Line: 0, Character: 0}, want: 0},
		{name: "after two-byte rune", pos: position{Line: 0, Character: 1}, want: 2},
		{name: "inside surrogate pair", pos: position{Line: 0, Character: 2}, want: 2},
		{name: "after surrogate pair", pos: position{Line: 0, Character: 3}, want: 6},
		{name: "past line end", pos: position{Line: 0, Character: 40}, want: 7},
		{name: "second line", pos: position{Line: 1, Character: 1}, want: 9},
		{name: "past last line", pos: position{Line: 5, Character: 0}, want: len(text)},
		{name: "negative", pos: position{Line: -1, Character: 0}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := offsetForPosition(text, tt.pos); got != tt.want {
				t.Fatalf("offsetForPosition(%+v) = %d, want %d", tt.pos, got, tt.want)
			}
		})
	}
}

func TestPositionForOffsetUTF16(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("u.datum", []byte("é😀x\nab")))
	tests := []struct {
		off  uint32
		want position
	}{
		{off: 0, want: position{Line: 0, Character: 0}},
		{off: 6, want: position{Line: 0, Character: 3}},
		{off: 7, want: position{Line: 0, Character: 4}},
		{off: 8, want: position{Line: 1, Character: 0}},
		{off: 100, want: position{Line: 1, Character: 2}},
	}
	for _, tt := range tests {
		if got := positionForOffset(file, tt.off); got != tt.want {
			t.Fatalf("positionForOffset(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
	if got := endPosition(file); got != (position{Line: 1, Character: 2}) {
		t.Fatalf("endPosition = %+v", got)
	}
}

func TestApplyChanges(t *testing.T) {
	text := "hello world"
	got := applyChanges(text, []textDocumentContentChangeEvent{
		{Range: &lspRange{Start: position{Line: 0, Character: 6}, End: position{Line: 0, Character: 11}}, Text: "datum"},
		{Range: &lspRange{Start: position{Line: 0, Character: 0}, End: position{Line: 0, Character: 0}}, Text: "("},
	})
	if got != "(hello datum" {
		t.Fatalf("unexpected text %q", got)
	}
	if got := applyChanges(text, []textDocumentContentChangeEvent{{Text: "(x)"}}); got != "(x)" {
		t.Fatalf("full replacement failed: %q", got)
	}
}

func TestCanonicalURI(t *testing.T) {
	if got := canonicalURI("file:///tmp/a%20b.datum"); got != "file:///tmp/a%20b.datum" {
		t.Fatalf("unexpected canonical uri %q", got)
	}
	if got := canonicalURI("untitled:Untitled-1"); got != "untitled:Untitled-1" {
		t.Fatalf("non-file uri changed: %q", got)
	}
}
