package pipe

// Stage is one step of a streaming pipeline.
type Stage[I, O any] interface {
	// Feed consumes one input, passing each output to emit in order.
	Feed(in I, emit func(O))
	// EOF flushes pending state at end of input.
	EOF(emit func(O))
	// HasError reports whether the stage has entered its error state.
	HasError() bool
	// Err returns the sticky error, or nil.
	Err() error
	// MaxOut is the most outputs a single Feed or EOF call may emit.
	MaxOut() int
}

// EOFChecker is implemented by stages that can tell whether input may end
// in their current state without an error.
type EOFChecker interface {
	AllowedToEOF() bool
}

// AllowedToEOF asks s when it can answer, and otherwise assumes yes unless
// the stage has already failed.
func AllowedToEOF(s any) bool {
	if c, ok := s.(EOFChecker); ok {
		return c.AllowedToEOF()
	}
	if e, ok := s.(interface{ HasError() bool }); ok {
		return !e.HasError()
	}
	return true
}
