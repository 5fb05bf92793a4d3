package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerAddAccumulates(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("check")

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("parse", time.Millisecond)
		}()
	}
	wg.Wait()
	tm.End(idx, "8 files")

	rep := tm.Report()
	if len(rep.Phases) != 2 {
		t.Fatalf("phases = %+v", rep.Phases)
	}
	parse := rep.Phases[1]
	if parse.Name != "parse" || parse.Count != 8 || parse.DurationMS != 8 {
		t.Fatalf("parse phase = %+v", parse)
	}
	if rep.TotalMS != rep.Phases[0].DurationMS {
		t.Fatalf("total %v must only count Begin/End phases (%v)", rep.TotalMS, rep.Phases[0].DurationMS)
	}

	sum := tm.Summary()
	for _, want := range []string{"timings:", "check", "// 8 files", "x8", "total"} {
		if !strings.Contains(sum, want) {
			t.Errorf("summary missing %q:\n%s", want, sum)
		}
	}
}

func TestTimerNilAndBadIndex(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	tm.Add("y", time.Second)
	if len(tm.Report().Phases) != 0 {
		t.Fatal("nil timer must report nothing")
	}

	fresh := NewTimer()
	fresh.End(5, "ignored")
	if len(fresh.Report().Phases) != 0 {
		t.Fatal("out of range End must be ignored")
	}
}
