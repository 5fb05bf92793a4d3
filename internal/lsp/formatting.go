package lsp

import (
	"encoding/json"
	"errors"

	"datum/internal/format"
	"datum/internal/pipeline"
)

var errHasErrors = errors.New("document has errors")

type formatSettings struct {
	pipeline pipeline.Config
	options  format.Options
}

func (s *Server) handleFormatting(msg *rpcMessage) error {
	var params documentFormattingParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	a := s.analysisFor(params.TextDocument.URI)
	if a == nil {
		return s.sendResponse(msg.ID, []textEdit{})
	}
	edits, err := formatEdits(a, s.currentConfigFormat())
	if err != nil {
		// документ с ошибками не форматируем
		s.logf("formatting %s: %v", params.TextDocument.URI, err)
		return s.sendResponse(msg.ID, []textEdit{})
	}
	return s.sendResponse(msg.ID, edits)
}

func (s *Server) currentConfigFormat() formatSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return formatSettings{pipeline: s.config.Pipeline(), options: s.config.FormatOptions()}
}

// formatEdits replaces the whole document when formatting changes it.
func formatEdits(a *analysis, fs formatSettings) ([]textEdit, error) {
	if a.bag.HasErrors() {
		return nil, errHasErrors
	}
	out, err := format.CheckRoundTrip(a.file.Content, fs.pipeline, fs.options)
	if err != nil {
		return nil, err
	}
	if string(out) == string(a.file.Content) {
		return []textEdit{}, nil
	}
	return []textEdit{{
		Range:   lspRange{Start: position{}, End: endPosition(a.file)},
		NewText: string(out),
	}}, nil
}
