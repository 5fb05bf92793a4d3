package format

import (
	"datum/internal/ast"
)

// Options control document layout.
type Options struct {
	// MaxWidth breaks lists whose one-line form is wider than this many
	// bytes, one element per line. Zero keeps every value on one line.
	MaxWidth int
	// Header, when set, is written as a comment block before the values.
	Header string
	// Compact separates top-level values with spaces instead of newlines.
	Compact bool
}

// Values renders vs on a single line.
func Values(vs ...ast.Value) string {
	w := NewWriter(0)
	for _, v := range vs {
		w.WriteValue(v)
	}
	return w.String()
}

// Document renders vs as a file: one top-level value per line unless
// Compact is set, ending with a newline when there is any output.
func Document(vs []ast.Value, opt Options) []byte {
	return DocumentWithComments(vs, nil, opt)
}

// DocumentWithComments is Document with comments placed back into the
// layout. Lists holding a comment are always broken across lines.
func DocumentWithComments(vs []ast.Value, comments []Comment, opt Options) []byte {
	comments = withoutHeader(comments, opt.Header)
	w := NewWriter(64 * len(vs))
	if opt.Header != "" {
		w.WriteComment(opt.Header)
		if len(vs) > 0 || len(comments) > 0 {
			w.WriteNewline()
		}
	}
	pr := printer{w: w, width: opt.MaxWidth, comments: indexComments(comments)}
	pr.items(vs, nil, !opt.Compact)
	if !w.AtLineStart() {
		w.WriteNewline()
	}
	return w.Bytes()
}

type printer struct {
	w        *Writer
	width    int
	comments commentIndex
}

// items writes vs, the contents of the list at path, with their comments.
// With newlines set each item after the first starts a line.
func (p *printer) items(vs []ast.Value, path []int, newlines bool) {
	cs := p.comments.at[pathKey(path)]
	for i, v := range vs {
		for len(cs) > 0 && cs[0].Before <= i {
			p.w.WriteLineComment(cs[0].Text, cs[0].Trailing)
			cs = cs[1:]
		}
		if i > 0 && newlines && !p.w.AtLineStart() {
			p.w.WriteNewline()
		}
		p.value(v, append(path[:len(path):len(path)], i))
	}
	for _, c := range cs {
		p.w.WriteLineComment(c.Text, c.Trailing)
	}
}

func (p *printer) value(v ast.Value, path []int) {
	if v.Kind != ast.List {
		p.w.WriteValue(v)
		return
	}
	if !p.comments.inside[pathKey(path)] && (p.width <= 0 || len(v.Items) < 2 || p.fits(v)) {
		p.w.WriteValue(v)
		return
	}
	// head stays on the "(" line, the rest go one per line
	p.w.openList()
	p.w.Indent++
	p.items(v.Items, path, true)
	p.w.Indent--
	p.w.closeList()
}

func (p *printer) fits(v ast.Value) bool {
	return len(Values(v))+p.w.Indent <= p.width
}
