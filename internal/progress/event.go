// Package progress carries per-file progress events from the driver to
// whoever renders them: the interactive UI, a plain log, or a test.
package progress

import "time"

// Stage describes the step a file is in.
type Stage string

const (
	StageRead     Stage = "read"
	StageTokenize Stage = "tokenize"
	StageParse    Stage = "parse"
	StageFormat   Stage = "format"
	// StageVerify re-reads formatter output to confirm it round-trips.
	StageVerify Stage = "verify"
)

// Stages lists the stages in pipeline order.
var Stages = []Stage{StageRead, StageTokenize, StageParse, StageFormat, StageVerify}

// Fraction reports how far through the pipeline a file in stage s is.
func (s Stage) Fraction() float64 {
	for i, st := range Stages {
		if st == s {
			return float64(i) / float64(len(Stages))
		}
	}
	return 0
}

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is in the given stage.
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
	// StatusCached marks a file whose result came from the cache.
	StatusCached Status = "cached"
)

// Finished reports whether no further events follow for the file.
func (s Status) Finished() bool {
	return s == StatusDone || s == StatusError || s == StatusCached
}

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// Sink consumes progress events. Implementations must be safe for
// concurrent use: workers report from their own goroutines.
type Sink interface {
	OnEvent(Event)
}
