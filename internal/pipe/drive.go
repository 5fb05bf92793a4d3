package pipe

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"datum/internal/buffer"
)

// ErrFanOut marks a stage that emitted more than its declared MaxOut.
var ErrFanOut = errors.New("stage exceeded its output bound")

// Drain is Run over a slice.
func Drain[I, O any](s Stage[I, O], in []I, eof bool) ([]O, error) {
	return Run(s, slices.Values(in), eof)
}

// Run feeds every input to s, optionally signals EOF, and returns all
// outputs together with the stage error, if any. It stops reading input once
// the stage reports an error.
func Run[I, O any](s Stage[I, O], in iter.Seq[I], eof bool) ([]O, error) {
	var out []O
	emit := func(v O) { out = append(out, v) }
	for v := range in {
		s.Feed(v, emit)
		if s.HasError() {
			return out, s.Err()
		}
	}
	if eof {
		s.EOF(emit)
	}
	return out, s.Err()
}

// FeedInto feeds one input and appends the outputs to dst. With a fixed
// buffer of capacity s.MaxOut() this never fails for a well-behaved stage.
func FeedInto[I, O any](s Stage[I, O], in I, dst buffer.Buffer[O]) error {
	var pushErr error
	s.Feed(in, func(v O) {
		if pushErr == nil {
			pushErr = dst.Push(v)
		}
	})
	if pushErr != nil {
		return fmt.Errorf("feed: %w", pushErr)
	}
	return nil
}

// EOFInto is FeedInto for the EOF call.
func EOFInto[I, O any](s Stage[I, O], dst buffer.Buffer[O]) error {
	var pushErr error
	s.EOF(func(v O) {
		if pushErr == nil {
			pushErr = dst.Push(v)
		}
	})
	if pushErr != nil {
		return fmt.Errorf("eof: %w", pushErr)
	}
	return nil
}
