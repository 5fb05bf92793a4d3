package pipeline

import (
	"datum/internal/char"
	"datum/internal/lexer"
)

// CommentSpan locates a line comment in its source. Offset is the ';' that
// opens it; End is the newline that closes it, or the input length.
type CommentSpan struct {
	Offset int
	End    int
}

// Text returns the comment body after the ';', without the newline. A
// carriage return left by a CRLF line ending is dropped.
func (c CommentSpan) Text(src []byte) string {
	body := src[c.Offset+1 : c.End]
	if n := len(body); n > 0 && body[n-1] == '\r' && !escapedAt(body, n-1) {
		body = body[:n-1]
	}
	return string(body)
}

// escapedAt reports whether the byte at i follows an odd run of backslashes.
func escapedAt(b []byte, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && b[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// CommentsBytes returns the line comments of src in order. Comments are
// found on the decoded char stream, so an escaped ';' opens none and an
// escaped newline does not close one.
func CommentsBytes(src []byte) ([]CommentSpan, error) {
	s := ByteToChar()
	var (
		tz   lexer.Tokenizer
		out  []CommentSpan
		open = -1
		at   int
	)
	emit := func(c char.Char) {
		was := tz.InComment()
		tz.Feed(c.Class())
		switch now := tz.InComment(); {
		case !was && now:
			open = at
		case was && !now:
			out = append(out, CommentSpan{Offset: open, End: at})
			open = -1
		}
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
	if open >= 0 {
		out = append(out, CommentSpan{Offset: open, End: len(src)})
	}
	return out, nil
}
