package format

import (
	"bytes"
	"strconv"
	"strings"

	"datum/internal/pipeline"
	"datum/internal/token"
)

// Comment is a line comment attached to the value tree.
type Comment struct {
	// Path indexes from the top level down to the list holding the comment.
	// An empty path is the top level.
	Path []int
	// Before is the index of the item the comment precedes; the item count
	// means the end of the list.
	Before int
	// Trailing marks a comment that shares its line with the text before it.
	Trailing bool
	// Text follows the ';'.
	Text string
}

// frame is a list being read. A quote opens a frame already holding the
// quote identifier; it closes as soon as its value completes.
type frame struct {
	quote bool
	count int
}

// PlaceComments attaches comments to positions in the values that tokens
// read to. Tokens and spans must both come from src.
func PlaceComments(src []byte, tokens []token.Positioned, spans []pipeline.CommentSpan) []Comment {
	if len(spans) == 0 {
		return nil
	}
	stack := []frame{{}}
	complete := func() {
		stack[len(stack)-1].count++
		for len(stack) > 1 && stack[len(stack)-1].quote && stack[len(stack)-1].count == 2 {
			stack = stack[:len(stack)-1]
			stack[len(stack)-1].count++
		}
	}
	out := make([]Comment, 0, len(spans))
	next := 0
	for _, sp := range spans {
		for ; next < len(tokens) && tokens[next].Offset <= sp.Offset; next++ {
			switch tokens[next].Kind {
			case token.ListStart:
				stack = append(stack, frame{})
			case token.Quote:
				stack = append(stack, frame{quote: true, count: 1})
			case token.ListEnd:
				if len(stack) > 1 {
					stack = stack[:len(stack)-1]
				}
				complete()
			default:
				complete()
			}
		}
		path := make([]int, 0, len(stack)-1)
		for _, f := range stack[:len(stack)-1] {
			path = append(path, f.count)
		}
		trailing := false
		if next > 0 {
			prev := tokens[next-1].Offset
			trailing = bytes.IndexByte(src[prev:sp.Offset], '\n') < 0
		}
		out = append(out, Comment{
			Path:     path,
			Before:   stack[len(stack)-1].count,
			Trailing: trailing,
			Text:     sp.Text(src),
		})
	}
	return out
}

// SourceComments reads the comments of src and places them. src must
// tokenize under cfg.
func SourceComments(src []byte, cfg pipeline.Config) ([]Comment, error) {
	spans, err := pipeline.CommentsBytes(src)
	if err != nil || len(spans) == 0 {
		return nil, err
	}
	tokens, err := pipeline.TokenizeBytes(src, cfg)
	if err != nil {
		return nil, err
	}
	return PlaceComments(src, tokens, spans), nil
}

// withoutHeader drops the leading top-level comments that repeat header,
// so a header already in the source is not written twice.
func withoutHeader(cs []Comment, header string) []Comment {
	if header == "" {
		return cs
	}
	lines := strings.Split(header, "\n")
	if len(cs) < len(lines) {
		return cs
	}
	for i, line := range lines {
		c := cs[i]
		if len(c.Path) != 0 || c.Before != 0 || c.Trailing || c.Text != " "+line {
			return cs
		}
	}
	return cs[len(lines):]
}

func pathKey(path []int) string {
	var b []byte
	for i, n := range path {
		if i > 0 {
			b = append(b, '.')
		}
		b = strconv.AppendInt(b, int64(n), 10)
	}
	return string(b)
}

// commentIndex groups comments by the list that holds them.
type commentIndex struct {
	at map[string][]Comment
	// inside holds every list containing a comment at any depth; those
	// lists are always broken across lines.
	inside map[string]bool
}

func indexComments(cs []Comment) commentIndex {
	idx := commentIndex{at: map[string][]Comment{}, inside: map[string]bool{}}
	for _, c := range cs {
		idx.at[pathKey(c.Path)] = append(idx.at[pathKey(c.Path)], c)
		for n := 1; n <= len(c.Path); n++ {
			idx.inside[pathKey(c.Path[:n])] = true
		}
	}
	return idx
}
