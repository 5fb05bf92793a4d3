package lsp

import (
	"encoding/json"
	"sort"

	"datum/internal/token"
)

func (s *Server) handleFoldingRange(msg *rpcMessage) error {
	var params foldingRangeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	a := s.analysisFor(params.TextDocument.URI)
	if a == nil {
		return s.sendResponse(msg.ID, []foldingRange{})
	}
	return s.sendResponse(msg.ID, buildFoldingRanges(a))
}

// buildFoldingRanges folds every list that spans more than one line.
func buildFoldingRanges(a *analysis) []foldingRange {
	var stack []int
	ranges := []foldingRange{}
	for _, t := range a.tokens {
		switch t.Kind {
		case token.ListStart:
			stack = append(stack, positionForOffset(a.file, safeUint32(t.Offset)).Line)
		case token.ListEnd:
			if len(stack) == 0 {
				continue
			}
			startLine := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			endLine := positionForOffset(a.file, safeUint32(t.Offset)).Line
			if startLine < endLine {
				ranges = append(ranges, foldingRange{StartLine: startLine, EndLine: endLine})
			}
		}
	}
	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].StartLine == ranges[j].StartLine {
			return ranges[i].EndLine < ranges[j].EndLine
		}
		return ranges[i].StartLine < ranges[j].StartLine
	})
	return ranges
}
