package pipeline

import (
	"fmt"
)

// Error is a pipeline failure located in the input.
type Error struct {
	// Offset is the byte offset at which the failure was detected. Failures
	// found at end of input use the input length.
	Offset int
	// Open is the offset of the innermost construct still open when input
	// ended, or -1.
	Open int
	Err  error
}

func (e *Error) Error() string {
	if e.Open >= 0 {
		return fmt.Sprintf("offset %d: %v (opened at offset %d)", e.Offset, e.Err, e.Open)
	}
	return fmt.Sprintf("offset %d: %v", e.Offset, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
