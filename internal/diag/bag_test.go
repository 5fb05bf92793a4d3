package diag

import (
	"testing"

	"datum/internal/source"
)

func sp(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := range 3 {
		ok := b.Add(NewError(SynUnbalancedClose, sp(0, uint32(i), uint32(i+1)), "unbalanced"))
		if want := i < 2; ok != want {
			t.Fatalf("Add #%d = %v, want %v", i, ok, want)
		}
	}
	if b.Len() != 2 || b.Cap() != 2 {
		t.Fatalf("len=%d cap=%d", b.Len(), b.Cap())
	}
}

func TestBagNegativeAndHugeLimits(t *testing.T) {
	if got := NewBag(-5).Cap(); got != 0 {
		t.Fatalf("negative limit cap = %d", got)
	}
	if got := NewBag(1 << 20).Cap(); got != ^uint16(0) {
		t.Fatalf("huge limit cap = %d", got)
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevWarning, FmtUnformatted, sp(1, 0, 0), "not formatted"))
	b.Add(NewError(SynUnclosedList, sp(0, 5, 6), "unclosed"))
	b.Add(NewError(LexBadEscape, sp(0, 1, 3), "bad escape"))
	b.Add(NewError(LexBadEscape, sp(0, 1, 3), "bad escape again"))
	b.Sort()
	b.Dedup()

	want := []Code{LexBadEscape, SynUnclosedList, FmtUnformatted}
	items := b.Items()
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d", len(items), len(want))
	}
	for i, c := range want {
		if items[i].Code != c {
			t.Errorf("item %d: code %s, want %s", i, items[i].Code.ID(), c.ID())
		}
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Fatal("expected errors and warnings")
	}
	if b.Count(SevWarning) != 1 || b.Count(SevError) != 2 {
		t.Fatalf("counts: warn=%d err=%d", b.Count(SevWarning), b.Count(SevError))
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a, b := NewBag(1), NewBag(2)
	a.Add(NewError(LexInvalidUTF8, sp(0, 0, 1), "x"))
	b.Add(NewError(LexInvalidUTF8, sp(1, 0, 1), "y"))
	b.Add(NewError(LexInvalidUTF8, sp(2, 0, 1), "z"))
	a.Merge(b)
	if a.Len() != 3 || a.Cap() != 3 {
		t.Fatalf("len=%d cap=%d", a.Len(), a.Cap())
	}
	a.Merge(nil)
}

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexInvalidUTF8, "LEX1001"},
		{SynDanglingQuote, "SYN2003"},
		{IOLoadFileError, "IO4001"},
		{ProjInvalidManifest, "PRJ5001"},
		{FmtRoundTrip, "FMT6002"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
	if got := SynUnclosedList.String(); got != "[SYN2002]: Unclosed list" {
		t.Errorf("String() = %q", got)
	}
	if got := Code(9999).Title(); got != "Unknown error" {
		t.Errorf("unknown Title() = %q", got)
	}
}

func TestSeverityText(t *testing.T) {
	for _, s := range []Severity{SevInfo, SevWarning, SevError} {
		b, err := s.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Severity
		if err := back.UnmarshalText(b); err != nil || back != s {
			t.Fatalf("%s: got %v, %v", s, back, err)
		}
	}
	var s Severity
	if err := s.UnmarshalText([]byte("FATAL")); err == nil {
		t.Fatal("expected error for unknown severity")
	}
}

func TestAtByte(t *testing.T) {
	f := &source.File{ID: 3, Content: []byte("(a (b\n")}
	cases := []struct {
		name      string
		off, open int
		wantSpan  source.Span
		wantNotes int
	}{
		{"with open list", 6, 3, sp(3, 6, 6), 1},
		{"no open construct", 1, -1, sp(3, 1, 2), 0},
		{"clamped past end", 40, 0, sp(3, 6, 6), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bag := NewBag(4)
			AtByte(SynUnclosedList, f, tc.off, tc.open, "unclosed").Emit(BagReporter{Bag: bag})
			AtByte(SynUnclosedList, f, tc.off, tc.open, "dropped").Emit(nil)
			if bag.Len() != 1 {
				t.Fatalf("len = %d", bag.Len())
			}
			d := bag.Items()[0]
			if d.Primary != tc.wantSpan || d.Severity != SevError {
				t.Fatalf("diagnostic = %+v", d)
			}
			if len(d.Notes) != tc.wantNotes {
				t.Fatalf("notes = %+v", d.Notes)
			}
			if tc.wantNotes == 1 && d.Notes[0].Span != sp(3, uint32(tc.open), uint32(tc.open+1)) {
				t.Fatalf("note span = %+v", d.Notes[0].Span)
			}
		})
	}
}
