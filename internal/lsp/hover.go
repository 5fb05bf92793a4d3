package lsp

import (
	"encoding/json"
	"fmt"
	"sort"

	"datum/internal/ast"
	"datum/internal/format"
	"datum/internal/token"
)

func (s *Server) handleHover(msg *rpcMessage) error {
	var params hoverParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	a := s.analysisFor(params.TextDocument.URI)
	if a == nil {
		return s.sendResponse(msg.ID, nil)
	}
	off := offsetForPosition(string(a.file.Content), params.Position)
	h := buildHover(a, off)
	if h == nil {
		return s.sendResponse(msg.ID, nil)
	}
	return s.sendResponse(msg.ID, h)
}

// buildHover describes the atom under off, or else the innermost list
// around it.
func buildHover(a *analysis, off int) *hover {
	if t, ok := atomAt(a.file.Content, a.tokens, off); ok {
		v, err := ast.FromToken(t.Token)
		if err != nil {
			return &hover{Contents: markupContent{Kind: "markdown", Value: fmt.Sprintf("**%s** (%v)", t.Kind, err)}}
		}
		text := fmt.Sprintf("**%s** `%s`", v.Kind, format.Values(v))
		return &hover{Contents: markupContent{Kind: "markdown", Value: text}}
	}
	start, end, depth, ok := listAround(a.tokens, off)
	if !ok {
		return nil
	}
	r := rangeForSpan(a.file, safeUint32(start), safeUint32(runeEnd(a.file.Content, end)))
	return &hover{
		Contents: markupContent{Kind: "markdown", Value: fmt.Sprintf("**List** (depth %d)", depth)},
		Range:    &r,
	}
}

// atomAt finds the atom token whose text covers off. Tokens carry the offset
// of the byte that completed them, so the first token completed at or after
// off is the candidate.
func atomAt(content []byte, tokens []token.Positioned, off int) (token.Positioned, bool) {
	if off >= len(content) {
		return token.Positioned{}, false
	}
	i := sort.Search(len(tokens), func(i int) bool { return tokens[i].Offset >= off })
	if i == len(tokens) || !tokens[i].IsAtom() {
		return token.Positioned{}, false
	}
	t := tokens[i]
	if isBreak(content[off]) {
		return token.Positioned{}, false
	}
	for _, b := range content[off:min(t.Offset, len(content))] {
		if b == '\n' || (t.Kind != token.String && isBreak(b)) {
			return token.Positioned{}, false
		}
	}
	return t, true
}

func isBreak(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '(', ')', ';':
		return true
	}
	return false
}

// listAround returns the offsets of the '(' and ')' of the innermost list
// enclosing off, with its nesting depth starting at 1.
func listAround(tokens []token.Positioned, off int) (start, end, depth int, ok bool) {
	type open struct{ offset, depth int }
	var stack []open
	best := open{offset: -1}
	bestEnd := -1
	for _, t := range tokens {
		switch t.Kind {
		case token.ListStart:
			stack = append(stack, open{offset: t.Offset, depth: len(stack) + 1})
		case token.ListEnd:
			if len(stack) == 0 {
				continue
			}
			o := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if o.offset <= off && off <= t.Offset && o.depth > best.depth {
				best, bestEnd = o, t.Offset
			}
		}
	}
	if best.offset < 0 {
		return 0, 0, 0, false
	}
	return best.offset, bestEnd, best.depth, true
}
