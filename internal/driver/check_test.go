package driver

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"datum/internal/diag"
	"datum/internal/progress"
)

func TestCheckPathsCollectsAndReports(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.datum", "(a b)\n")
	writeFile(t, dir, "sub/bad.dtm", "(a b))\n")
	writeFile(t, dir, "notes.txt", ")))")
	writeFile(t, dir, ".hidden/skip.datum", ")")

	sink := &progress.Collector{}
	opts := testOptions()
	opts.Progress = sink

	report, err := CheckPaths(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatalf("CheckPaths: %v", err)
	}
	if len(report.Results) != 2 {
		t.Fatalf("expected 2 files, got %d", len(report.Results))
	}
	if got := filepath.Base(report.Results[0].Path); got != "good.datum" {
		t.Fatalf("results not sorted: first is %s", got)
	}
	if report.Failed() != 1 {
		t.Fatalf("expected 1 failed file, got %d", report.Failed())
	}
	all := report.Diagnostics()
	if all.Len() != 1 || all.Items()[0].Code != diag.SynUnbalancedClose {
		t.Fatalf("unexpected diagnostics %+v", all.Items())
	}

	last := sink.Last()
	if last[report.Results[0].Path] != progress.StatusDone {
		t.Fatalf("good file status = %s", last[report.Results[0].Path])
	}
	if last[report.Results[1].Path] != progress.StatusError {
		t.Fatalf("bad file status = %s", last[report.Results[1].Path])
	}
}

func TestCheckPathsUsesCache(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "bad.datum", "(a\n")
	cache, err := OpenDiskCache(filepath.Join(dir, ".datum-cache"))
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	opts := testOptions()
	opts.Cache = cache

	first, err := CheckPaths(context.Background(), []string{src}, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Results[0].Cached {
		t.Fatalf("first run must not hit the cache")
	}

	second, err := CheckPaths(context.Background(), []string{src}, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	res := second.Results[0]
	if !res.Cached {
		t.Fatalf("second run should hit the cache")
	}
	want := first.Results[0].Bag.Items()
	got := res.Bag.Items()
	if len(got) != len(want) || got[0].Code != want[0].Code || got[0].Primary.Start != want[0].Primary.Start {
		t.Fatalf("cached diagnostics differ: got %+v, want %+v", got, want)
	}
	if len(got[0].Notes) != len(want[0].Notes) {
		t.Fatalf("cached notes differ: got %+v, want %+v", got[0].Notes, want[0].Notes)
	}

	// другой режим проверки даёт другой ключ
	opts.CheckFormat = true
	third, err := CheckPaths(context.Background(), []string{src}, opts)
	if err != nil {
		t.Fatalf("third run: %v", err)
	}
	if third.Results[0].Cached {
		t.Fatalf("check mode must be part of the cache key")
	}
}

func TestCheckPathsFormatWarning(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "messy.datum", "(a    b)\n")
	opts := testOptions()
	opts.CheckFormat = true

	report, err := CheckPaths(context.Background(), []string{src}, opts)
	if err != nil {
		t.Fatalf("CheckPaths: %v", err)
	}
	bag := report.Results[0].Bag
	if bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("expected a warning only, got %+v", bag.Items())
	}
	d := bag.Items()[0]
	if d.Code != diag.FmtUnformatted || d.Primary.Start != 3 {
		t.Fatalf("unexpected warning %+v", d)
	}
	if report.Failed() != 0 {
		t.Fatalf("warnings must not fail a file")
	}
}

func TestCheckPathsFormattedWithComments(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "conf.datum", "; settings\n(port 8080) ; main port\n")
	opts := testOptions()
	opts.CheckFormat = true

	report, err := CheckPaths(context.Background(), []string{src}, opts)
	if err != nil {
		t.Fatalf("CheckPaths: %v", err)
	}
	if bag := report.Results[0].Bag; bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %+v", bag.Items())
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("pipe closed") }

func TestCheckPathsLoadFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "ok.datum", "x\n")
	opts := testOptions()
	opts.Stdin = failingReader{}

	report, err := CheckPaths(context.Background(), []string{good, StdinPath}, opts)
	if err != nil {
		t.Fatalf("CheckPaths: %v", err)
	}
	if len(report.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(report.Results))
	}
	var loadFailed bool
	for _, res := range report.Results {
		if res.Path == StdinPath {
			loadFailed = res.Bag.HasErrors() && res.Bag.Items()[0].Code == diag.IOLoadFileError
		} else if res.Bag.Len() != 0 {
			t.Fatalf("good file has diagnostics: %+v", res.Bag.Items())
		}
	}
	if !loadFailed {
		t.Fatalf("expected load failure diagnostic for stdin")
	}
}

func TestCheckPathsNoFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "readme.md", "hi")
	if _, err := CheckPaths(context.Background(), []string{dir}, testOptions()); !errors.Is(err, ErrNoFiles) {
		t.Fatalf("expected ErrNoFiles, got %v", err)
	}
}

func TestFirstDifference(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"abc", "abc", -1},
		{"abc", "abd", 2},
		{"ab", "abc", 2},
		{"", "x", 0},
	}
	for _, tt := range tests {
		if got := firstDifference([]byte(tt.a), []byte(tt.b)); got != tt.want {
			t.Errorf("firstDifference(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
