package pipe

import (
	"errors"
	"slices"
	"testing"

	"datum/internal/buffer"
)

// repeat emits each input n times and flushes a marker on EOF.
type repeat struct {
	n      int
	marker int
	err    error
	failOn int
}

func (r *repeat) Feed(in int, emit func(int)) {
	if r.err != nil {
		return
	}
	if r.failOn != 0 && in == r.failOn {
		r.err = errors.New("boom")
		return
	}
	for range r.n {
		emit(in)
	}
}

func (r *repeat) EOF(emit func(int)) {
	if r.err == nil && r.marker != 0 {
		emit(r.marker)
	}
}

func (r *repeat) HasError() bool { return r.err != nil }
func (r *repeat) Err() error     { return r.err }
func (r *repeat) MaxOut() int    { return r.n }

func TestComposeMaxOut(t *testing.T) {
	c := Compose[int, int, int](&repeat{n: 2}, &repeat{n: 3})
	if c.MaxOut() != 12 {
		t.Fatalf("MaxOut = %d, want 12", c.MaxOut())
	}
	nested := Compose[int, int, int](c, &repeat{n: 1})
	if nested.MaxOut() != 24 {
		t.Fatalf("nested MaxOut = %d, want 24", nested.MaxOut())
	}
}

func TestComposeEOFOrder(t *testing.T) {
	c := Compose[int, int, int](&repeat{n: 1, marker: 7}, &repeat{n: 2, marker: 9})
	got, err := Drain[int, int](c, []int{1}, true)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	want := []int{1, 1, 7, 7, 9}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestComposeErrPrefersFirst(t *testing.T) {
	a := &repeat{n: 1, failOn: 3}
	b := &repeat{n: 1, failOn: 2}
	c := Compose[int, int, int](a, b)
	for _, in := range []int{2, 3} {
		c.Feed(in, func(int) {})
	}
	err := c.Err()
	if !c.HasError() || err == nil {
		t.Fatalf("expected composed error")
	}
	if err != a.err {
		t.Fatalf("Err() = %v, want first stage error", err)
	}
}

func TestRunStopsReadingAfterError(t *testing.T) {
	cases := []struct {
		name     string
		in       []int
		eof      bool
		want     []int
		wantRead int
		wantErr  bool
	}{
		{"clean with eof", []int{1, 2}, true, []int{1, 2, 9}, 2, false},
		{"clean without eof", []int{1, 2}, false, []int{1, 2}, 2, false},
		{"fails midway", []int{1, 5, 2, 3}, true, []int{1}, 2, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			read := 0
			seq := func(yield func(int) bool) {
				for _, v := range tc.in {
					read++
					if !yield(v) {
						return
					}
				}
			}
			got, err := Run[int, int](&repeat{n: 1, marker: 9, failOn: 5}, seq, tc.eof)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v", err)
			}
			if !slices.Equal(got, tc.want) || read != tc.wantRead {
				t.Fatalf("got %v after %d reads, want %v after %d", got, read, tc.want, tc.wantRead)
			}
		})
	}
}

func TestFeedIntoFixedBuffer(t *testing.T) {
	c := Compose[int, int, int](&repeat{n: 2}, &repeat{n: 2})
	dst := buffer.NewFixed[int](c.MaxOut())
	if err := FeedInto[int, int](c, 5, dst); err != nil {
		t.Fatalf("FeedInto: %v", err)
	}
	if dst.Len() != 4 {
		t.Fatalf("len = %d", dst.Len())
	}
	small := buffer.NewFixed[int](1)
	if err := FeedInto[int, int](&repeat{n: 2}, 1, small); !errors.Is(err, buffer.ErrNoRoom) {
		t.Fatalf("FeedInto small: %v", err)
	}
}

// liar claims a bound of one and emits two.
type liar struct{ repeat }

func (l *liar) MaxOut() int { return 1 }

func TestBoundedDetectsViolation(t *testing.T) {
	b := Bound[int, int](&liar{repeat{n: 2}})
	out, err := Drain[int, int](b, []int{4}, true)
	if !errors.Is(err, ErrFanOut) {
		t.Fatalf("err = %v, want ErrFanOut", err)
	}
	if len(out) != 1 || b.Peak != 2 {
		t.Fatalf("out=%v peak=%d", out, b.Peak)
	}
	if AllowedToEOF(b) {
		t.Fatalf("failed stage must not allow EOF")
	}
}

func TestRunStopsOnError(t *testing.T) {
	s := &repeat{n: 1, failOn: 2}
	out, err := Run[int, int](s, slices.Values([]int{1, 2, 3}), true)
	if err == nil || !slices.Equal(out, []int{1}) {
		t.Fatalf("out=%v err=%v", out, err)
	}
}
