package progress

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// Discard drops every event.
var Discard Sink = discard{}

type discard struct{}

func (discard) OnEvent(Event) {}

// LogSink writes one line per finished file.
type LogSink struct {
	mu sync.Mutex
	W  io.Writer
}

func (s *LogSink) OnEvent(evt Event) {
	if evt.File == "" || !evt.Status.Finished() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if evt.Err != nil {
		fmt.Fprintf(s.W, "%-7s %s: %v\n", evt.Status, evt.File, evt.Err)
		return
	}
	fmt.Fprintf(s.W, "%-7s %s (%s)\n", evt.Status, evt.File, evt.Elapsed.Round(time.Microsecond))
}

// Collector records events in memory.
type Collector struct {
	mu     sync.Mutex
	events []Event
}

func (c *Collector) OnEvent(evt Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, evt)
}

// Events returns a copy of the recorded events.
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}

// Last returns the final status recorded for each file.
func (c *Collector) Last() map[string]Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]Status)
	for _, e := range c.events {
		if e.File != "" {
			out[e.File] = e.Status
		}
	}
	return out
}
