package pipe

import "fmt"

// Bounded wraps a stage and fails it when a single call emits more than
// MaxOut outputs. Outputs past the bound are dropped.
type Bounded[I, O any] struct {
	inner Stage[I, O]
	err   error
	// Peak is the largest number of outputs seen from one call.
	Peak int
}

// Bound wraps s.
func Bound[I, O any](s Stage[I, O]) *Bounded[I, O] {
	return &Bounded[I, O]{inner: s}
}

func (b *Bounded[I, O]) Feed(in I, emit func(O)) {
	if b.err != nil {
		return
	}
	b.count("feed", func(e func(O)) { b.inner.Feed(in, e) }, emit)
}

func (b *Bounded[I, O]) EOF(emit func(O)) {
	if b.err != nil {
		return
	}
	b.count("eof", b.inner.EOF, emit)
}

func (b *Bounded[I, O]) count(op string, call func(func(O)), emit func(O)) {
	limit := b.inner.MaxOut()
	n := 0
	call(func(v O) {
		n++
		if n > limit {
			if b.err == nil {
				b.err = fmt.Errorf("%s emitted more than %d outputs: %w", op, limit, ErrFanOut)
			}
			return
		}
		emit(v)
	})
	b.Peak = max(b.Peak, n)
}

func (b *Bounded[I, O]) HasError() bool { return b.err != nil || b.inner.HasError() }

func (b *Bounded[I, O]) Err() error {
	if b.err != nil {
		return b.err
	}
	return b.inner.Err()
}

func (b *Bounded[I, O]) MaxOut() int { return b.inner.MaxOut() }

func (b *Bounded[I, O]) AllowedToEOF() bool {
	return b.err == nil && AllowedToEOF(b.inner)
}
