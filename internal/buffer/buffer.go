// Package buffer defines the append-only storage contract the pipeline stages
// write into, with a growable and a fixed-capacity implementation.
package buffer

import (
	"errors"
	"iter"
)

// ErrNoRoom is returned by Push when a fixed buffer is full.
var ErrNoRoom = errors.New("buffer: no room")

// Buffer is the capability set stages rely on.
type Buffer[T any] interface {
	// Push appends v, or fails with ErrNoRoom.
	Push(v T) error
	Len() int
	At(i int) T
	// Truncate drops elements past n. It is a no-op when n >= Len().
	Truncate(n int)
	// Slice exposes the live elements. Callers must not keep it across Push.
	Slice() []T
	All() iter.Seq[T]
}

// Heap is an unbounded buffer backed by a Go slice.
type Heap[T any] struct {
	items []T
}

// NewHeap returns an empty heap buffer with the given capacity hint.
func NewHeap[T any](hint int) *Heap[T] {
	return &Heap[T]{items: make([]T, 0, max(hint, 0))}
}

func (h *Heap[T]) Push(v T) error {
	h.items = append(h.items, v)
	return nil
}

func (h *Heap[T]) Len() int   { return len(h.items) }
func (h *Heap[T]) At(i int) T { return h.items[i] }
func (h *Heap[T]) Slice() []T { return h.items }
func (h *Heap[T]) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(h.items) {
		clear(h.items[n:])
		h.items = h.items[:n]
	}
}

func (h *Heap[T]) All() iter.Seq[T] { return all(h.items) }

// Fixed never grows past the capacity it was created with.
type Fixed[T any] struct {
	items []T
}

// NewFixed allocates a buffer holding at most capacity elements.
func NewFixed[T any](capacity int) *Fixed[T] {
	return &Fixed[T]{items: make([]T, 0, max(capacity, 0))}
}

func (f *Fixed[T]) Push(v T) error {
	if len(f.items) == cap(f.items) {
		return ErrNoRoom
	}
	f.items = append(f.items, v)
	return nil
}

func (f *Fixed[T]) Len() int   { return len(f.items) }
func (f *Fixed[T]) Cap() int   { return cap(f.items) }
func (f *Fixed[T]) At(i int) T { return f.items[i] }
func (f *Fixed[T]) Slice() []T { return f.items }
func (f *Fixed[T]) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(f.items) {
		clear(f.items[n:])
		f.items = f.items[:n]
	}
}

func (f *Fixed[T]) All() iter.Seq[T] { return all(f.items) }

func all[T any](items []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range items {
			if !yield(v) {
				return
			}
		}
	}
}

// Pop removes and returns the last element.
func Pop[T any](b Buffer[T]) (T, bool) {
	n := b.Len()
	if n == 0 {
		var zero T
		return zero, false
	}
	v := b.At(n - 1)
	b.Truncate(n - 1)
	return v, true
}

// Collect copies the live elements into a fresh slice.
func Collect[T any](b Buffer[T]) []T {
	out := make([]T, b.Len())
	copy(out, b.Slice())
	return out
}
