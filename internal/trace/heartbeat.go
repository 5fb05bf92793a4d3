package trace

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Heartbeat emits a driver-scope event at a fixed interval. Each beat
// carries a sequence number and, once Watch is called, the status line of
// the running command, so a file that hangs shows up by name.
type Heartbeat struct {
	tracer   Tracer
	interval time.Duration
	status   atomic.Pointer[func() string]
	stop     chan struct{}
	done     chan struct{}
	once     sync.Once
}

// StartHeartbeat starts beating into tracer. It returns nil when tracing
// is off or interval is not positive; a nil Heartbeat ignores every call.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer:   tracer,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go h.run()
	return h
}

// Watch makes every following beat report status(). nil goes back to bare
// sequence numbers. status is called from the heartbeat goroutine.
func (h *Heartbeat) Watch(status func() string) {
	if h == nil {
		return
	}
	if status == nil {
		h.status.Store(nil)
		return
	}
	h.status.Store(&status)
}

func (h *Heartbeat) run() {
	defer close(h.done)
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	var seq uint64
	for {
		select {
		case <-ticker.C:
			seq++
			h.tracer.Emit(h.beat(seq))
		case <-h.stop:
			return
		}
	}
}

func (h *Heartbeat) beat(seq uint64) *Event {
	detail := "#" + strconv.FormatUint(seq, 10)
	if fn := h.status.Load(); fn != nil {
		if s := (*fn)(); s != "" {
			detail += " " + s
		}
	}
	return &Event{
		Time:   time.Now(),
		Seq:    NextSeq(),
		Kind:   KindHeartbeat,
		Scope:  ScopeDriver,
		GID:    getGoroutineID(),
		Name:   "heartbeat",
		Detail: detail,
	}
}

// Stop ends the heartbeat goroutine and waits for it. Safe to call twice.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}
