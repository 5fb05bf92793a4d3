package pipeline

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"iter"
	"strings"

	"datum/internal/ast"
	"datum/internal/char"
	"datum/internal/parser"
	"datum/internal/pipe"
	"datum/internal/token"
)

// Decoder reads top-level values from a byte stream.
type Decoder struct {
	r      io.ByteReader
	tokens *pipe.Composed[byte, char.Char, token.Token]
	parser *parser.Parser
	offset int
	opens  []opened
	queue  []ast.Value
	err    error
	eof    bool
}

type opened struct {
	kind   token.Kind
	offset int
}

// NewDecoder returns a decoder reading from r. Readers that are not
// io.ByteReader get wrapped in a bufio.Reader.
func NewDecoder(r io.Reader, cfg Config) *Decoder {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Decoder{
		r:      br,
		tokens: ByteToToken(cfg),
		parser: parser.New(cfg.Storage()),
	}
}

// Next returns the next top-level value, or io.EOF once input is exhausted.
// Values completed before a failure are returned before the *Error.
func (d *Decoder) Next() (ast.Value, error) {
	for len(d.queue) == 0 {
		if d.err != nil {
			return ast.Value{}, d.err
		}
		if d.eof {
			return ast.Value{}, io.EOF
		}
		b, err := d.r.ReadByte()
		switch {
		case errors.Is(err, io.EOF):
			d.finish()
		case err != nil:
			d.err = &Error{Offset: d.offset, Open: -1, Err: err}
		default:
			d.feed(b)
		}
	}
	v := d.queue[0]
	d.queue[0] = ast.Value{}
	d.queue = d.queue[1:]
	return v, nil
}

// All yields values until input ends or fails.
func (d *Decoder) All() iter.Seq2[ast.Value, error] {
	return func(yield func(ast.Value, error) bool) {
		for {
			v, err := d.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}

// Offset is the number of bytes consumed so far.
func (d *Decoder) Offset() int { return d.offset }

func (d *Decoder) feed(b byte) {
	d.tokens.Feed(b, d.onToken)
	d.check(false)
	d.offset++
}

func (d *Decoder) finish() {
	d.eof = true
	d.tokens.EOF(d.onToken)
	d.check(false)
	if d.err != nil {
		return
	}
	d.parser.EOF(nil)
	d.check(true)
}

func (d *Decoder) onToken(t token.Token) {
	switch t.Kind {
	case token.ListStart, token.Quote:
		d.opens = append(d.opens, opened{kind: t.Kind, offset: d.offset})
	case token.ListEnd:
		if n := len(d.opens); n > 0 {
			d.opens = d.opens[:n-1]
		}
		d.popQuotes()
	default:
		d.popQuotes()
	}
	d.parser.Feed(t, d.onValue)
}

func (d *Decoder) popQuotes() {
	for n := len(d.opens); n > 0 && d.opens[n-1].kind == token.Quote; n-- {
		d.opens = d.opens[:n-1]
	}
}

func (d *Decoder) onValue(v ast.Value) {
	d.queue = append(d.queue, v)
}

func (d *Decoder) check(atEOF bool) {
	if d.err != nil {
		return
	}
	err := d.tokens.Err()
	if err == nil {
		err = d.parser.Err()
	}
	if err == nil {
		return
	}
	e := &Error{Offset: d.offset, Open: -1, Err: err}
	if atEOF && len(d.opens) > 0 {
		e.Open = d.opens[len(d.opens)-1].offset
	}
	d.err = e
}

// ParseBytes parses every top-level value in src.
func ParseBytes(src []byte, cfg Config) ([]ast.Value, error) {
	return collect(NewDecoder(bytes.NewReader(src), cfg))
}

// ParseString is ParseBytes for a string.
func ParseString(src string, cfg Config) ([]ast.Value, error) {
	return collect(NewDecoder(strings.NewReader(src), cfg))
}

func collect(d *Decoder) ([]ast.Value, error) {
	var out []ast.Value
	for v, err := range d.All() {
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

// TokenizeBytes returns the tokens of src, each tagged with the offset of
// the byte that completed it.
func TokenizeBytes(src []byte, cfg Config) ([]token.Positioned, error) {
	s := ByteToToken(cfg)
	var out []token.Positioned
	at := 0
	emit := func(t token.Token) {
		out = append(out, token.Positioned{Token: t, Offset: at})
	}
	for i, b := range src {
		at = i
		s.Feed(b, emit)
		if err := s.Err(); err != nil {
			return out, &Error{Offset: i, Open: -1, Err: err}
		}
	}
	at = len(src)
	s.EOF(emit)
	if err := s.Err(); err != nil {
		return out, &Error{Offset: len(src), Open: -1, Err: err}
	}
	return out, nil
}
