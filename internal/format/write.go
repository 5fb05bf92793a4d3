package format

import (
	"io"
	"strings"

	"datum/internal/ast"
	"datum/internal/token"
)

// State is what the writer owes before the next token.
type State uint8

const (
	// StateNone owes nothing.
	StateNone State = iota
	// StateQueuedIndent owes Indent tabs.
	StateQueuedIndent
	// StateAfterToken owes a space, unless the next token is ')'.
	StateAfterToken
)

// Writer accumulates Datum text.
type Writer struct {
	// Indent is the number of tabs written after each newline.
	Indent int
	State  State
	buf    []byte
}

// NewWriter creates a writer with an output capacity hint.
func NewWriter(hint int) *Writer {
	return &Writer{buf: make([]byte, 0, max(hint, 0))}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) String() string {
	return string(w.buf)
}

// Len reports the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// Reset drops the output and returns to the initial state.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
	w.Indent = 0
	w.State = StateNone
}

// WriteTo flushes the accumulated output to out and resets the buffer.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	n, err := out.Write(w.buf)
	w.buf = w.buf[:0]
	return int64(n), err
}

// EmitWhitespace pays what the state owes. A pending space is skipped
// before a list end; indentation is always written.
func (w *Writer) EmitWhitespace(listEnd bool) {
	switch w.State {
	case StateQueuedIndent:
		for range w.Indent {
			w.buf = append(w.buf, '\t')
		}
	case StateAfterToken:
		if !listEnd {
			w.buf = append(w.buf, ' ')
		}
	}
	w.State = StateNone
}

// WriteNewline ends the line and queues indentation.
func (w *Writer) WriteNewline() {
	w.buf = append(w.buf, '\n')
	w.State = StateQueuedIndent
}

// WriteComment writes text as line comments, one per line of text, and
// ends with a newline.
func (w *Writer) WriteComment(text string) {
	w.EmitWhitespace(false)
	w.buf = append(w.buf, ';', ' ')
	for {
		line, rest, more := strings.Cut(text, "\n")
		w.buf = append(w.buf, line...)
		if !more {
			break
		}
		w.WriteNewline()
		w.EmitWhitespace(false)
		w.buf = append(w.buf, ';', ' ')
		text = rest
	}
	w.WriteNewline()
}

// AtLineStart reports whether the output is empty or ends with a newline.
func (w *Writer) AtLineStart() bool {
	return len(w.buf) == 0 || w.buf[len(w.buf)-1] == '\n'
}

// WriteLineComment writes ";" and text, then ends the line. A trailing
// comment stays on the current line; any other starts a line of its own.
func (w *Writer) WriteLineComment(text string, trailing bool) {
	if !trailing && !w.AtLineStart() {
		w.WriteNewline()
	}
	w.EmitWhitespace(false)
	if !w.AtLineStart() && w.buf[len(w.buf)-1] != ' ' && w.buf[len(w.buf)-1] != '\t' {
		w.buf = append(w.buf, ' ')
	}
	w.buf = append(w.buf, ';')
	w.buf = append(w.buf, text...)
	w.WriteNewline()
}

// WriteToken writes one token with the separation it needs.
func (w *Writer) WriteToken(t token.Token) {
	w.EmitWhitespace(t.Kind == token.ListEnd)
	w.buf = AppendToken(w.buf, t)
	if t.Kind == token.ListStart || t.Kind == token.Quote {
		w.State = StateNone
	} else {
		w.State = StateAfterToken
	}
}

// WriteAtom writes an atom. It fails for lists.
func (w *Writer) WriteAtom(v ast.Value) error {
	t, ok := ast.ToToken(v)
	if !ok {
		return ast.ErrNotAtom
	}
	w.EmitWhitespace(false)
	w.buf = AppendToken(w.buf, t)
	w.State = StateAfterToken
	return nil
}

// WriteValue writes v on the current line.
func (w *Writer) WriteValue(v ast.Value) {
	if v.Kind != ast.List {
		_ = w.WriteAtom(v)
		return
	}
	w.openList()
	for _, it := range v.Items {
		w.WriteValue(it)
	}
	w.closeList()
}

func (w *Writer) openList() {
	w.EmitWhitespace(false)
	w.buf = append(w.buf, '(')
	w.State = StateNone
}

func (w *Writer) closeList() {
	w.EmitWhitespace(true)
	w.buf = append(w.buf, ')')
	w.State = StateAfterToken
}
