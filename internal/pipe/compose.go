package pipe

// Composed runs the outputs of First through Second.
type Composed[A, B, C any] struct {
	First  Stage[A, B]
	Second Stage[B, C]
	maxOut int
}

// Compose chains a into b.
func Compose[A, B, C any](a Stage[A, B], b Stage[B, C]) *Composed[A, B, C] {
	return &Composed[A, B, C]{
		First:  a,
		Second: b,
		maxOut: a.MaxOut() * b.MaxOut() * 2,
	}
}

func (c *Composed[A, B, C]) Feed(in A, emit func(C)) {
	c.First.Feed(in, func(v B) {
		c.Second.Feed(v, emit)
	})
}

func (c *Composed[A, B, C]) EOF(emit func(C)) {
	c.First.EOF(func(v B) {
		c.Second.Feed(v, emit)
	})
	c.Second.EOF(emit)
}

func (c *Composed[A, B, C]) HasError() bool {
	return c.First.HasError() || c.Second.HasError()
}

// Err reports the upstream error first.
func (c *Composed[A, B, C]) Err() error {
	if err := c.First.Err(); err != nil {
		return err
	}
	return c.Second.Err()
}

func (c *Composed[A, B, C]) MaxOut() int { return c.maxOut }

func (c *Composed[A, B, C]) AllowedToEOF() bool {
	return AllowedToEOF(c.First) && AllowedToEOF(c.Second)
}
