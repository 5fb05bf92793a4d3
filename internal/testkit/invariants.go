// Package testkit holds invariant checks shared by the fuzz harnesses and
// package tests.
package testkit

import (
	"errors"
	"fmt"

	"datum/internal/ast"
	"datum/internal/format"
	"datum/internal/pipe"
	"datum/internal/pipeline"
	"datum/internal/token"
)

// CheckTokenOffsets verifies that token offsets never go backwards and stay
// within [0, srcLen].
func CheckTokenOffsets(tokens []token.Positioned, srcLen int) error {
	prev := 0
	for i, tok := range tokens {
		if tok.Offset < 0 || tok.Offset > srcLen {
			return fmt.Errorf("token %d (%s) offset %d outside [0, %d]", i, tok.Token, tok.Offset, srcLen)
		}
		if tok.Offset < prev {
			return fmt.Errorf("token %d (%s) offset %d before previous %d", i, tok.Token, tok.Offset, prev)
		}
		prev = tok.Offset
	}
	return nil
}

// Peaks records the largest number of outputs a single call produced.
type Peaks struct {
	Token int
	Value int
}

// CheckFanOut feeds src byte by byte through the byte-to-token and
// byte-to-value chains and fails if any call emits more than the chain's
// declared bound. Ordinary syntax errors stop the feed but are not failures.
func CheckFanOut(src []byte, cfg pipeline.Config) (Peaks, error) {
	var peaks Peaks

	toks := pipe.Bound(pipeline.ByteToToken(cfg))
	if _, err := pipe.Drain(toks, src, true); errors.Is(err, pipe.ErrFanOut) {
		return peaks, fmt.Errorf("byte-to-token: %w", err)
	}
	peaks.Token = toks.Peak
	if toks.MaxOut() != pipeline.ByteToTokenMaxOut {
		return peaks, fmt.Errorf("byte-to-token bound %d, want %d", toks.MaxOut(), pipeline.ByteToTokenMaxOut)
	}

	vals := pipe.Bound(pipeline.ByteToValue(cfg))
	if _, err := pipe.Drain(vals, src, true); errors.Is(err, pipe.ErrFanOut) {
		return peaks, fmt.Errorf("byte-to-value: %w", err)
	}
	peaks.Value = vals.Peak
	if vals.MaxOut() != pipeline.ByteToValueMaxOut {
		return peaks, fmt.Errorf("byte-to-value bound %d, want %d", vals.MaxOut(), pipeline.ByteToValueMaxOut)
	}
	return peaks, nil
}

// CheckRoundTrip renders values, reads the text back and compares.
func CheckRoundTrip(values []ast.Value) error {
	text := format.Document(values, format.Options{})
	back, err := pipeline.ParseBytes(text, pipeline.Config{})
	if err != nil {
		return fmt.Errorf("re-reading %q: %w", text, err)
	}
	if !ast.EqualAll(values, back) {
		return fmt.Errorf("round trip of %q changed values", text)
	}
	return nil
}
