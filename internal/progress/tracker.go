package progress

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Tracker keeps a live summary of a run and forwards every event to Next.
// Its Status feeds the trace heartbeat.
type Tracker struct {
	Next Sink

	mu       sync.Mutex
	working  map[string]Stage
	finished int
	failed   int
}

func (t *Tracker) OnEvent(evt Event) {
	if evt.File != "" {
		t.mu.Lock()
		switch {
		case evt.Status.Finished():
			delete(t.working, evt.File)
			t.finished++
			if evt.Status == StatusError {
				t.failed++
			}
		case evt.Status == StatusWorking:
			if t.working == nil {
				t.working = make(map[string]Stage)
			}
			t.working[evt.File] = evt.Stage
		}
		t.mu.Unlock()
	}
	if t.Next != nil {
		t.Next.OnEvent(evt)
	}
}

// Status reads like "3 done, 1 failed; parse a.datum, verify b.datum":
// finished files, then every file still in a stage, in path order.
func (t *Tracker) Status() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var b strings.Builder
	fmt.Fprintf(&b, "%d done", t.finished)
	if t.failed > 0 {
		fmt.Fprintf(&b, ", %d failed", t.failed)
	}
	files := make([]string, 0, len(t.working))
	for f := range t.working {
		files = append(files, f)
	}
	slices.Sort(files)
	for i, f := range files {
		if i == 0 {
			b.WriteString("; ")
		} else {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s %s", t.working[f], f)
	}
	return b.String()
}
