package lsp

import (
	"sort"
	"time"

	"datum/internal/diag"
)

const (
	lspSeverityError       = 1
	lspSeverityWarning     = 2
	lspSeverityInformation = 3
)

func (s *Server) scheduleDiagnostics() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.debounceTimer = time.AfterFunc(s.debounce, s.runDiagnostics)
}

func (s *Server) stopTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
		s.debounceTimer = nil
	}
}

// runDiagnostics analyzes every open document and publishes the results.
func (s *Server) runDiagnostics() {
	s.mu.Lock()
	uris := make([]string, 0, len(s.docs))
	for uri := range s.docs {
		uris = append(uris, uri)
	}
	s.mu.Unlock()
	sort.Strings(uris)

	for _, uri := range uris {
		a := s.analysisFor(uri)
		if a == nil {
			continue
		}
		list := toLSPDiagnostics(a, uri)
		s.mu.Lock()
		if len(list) > 0 {
			s.published[uri] = struct{}{}
		} else {
			delete(s.published, uri)
		}
		s.mu.Unlock()
		version := a.version
		if err := s.sendPublish(uri, &version, list); err != nil {
			s.logf("failed to publish diagnostics: %v", err)
		}
	}
}

func (s *Server) clearPublishedDiagnostics() {
	s.mu.Lock()
	uris := make([]string, 0, len(s.published))
	for uri := range s.published {
		uris = append(uris, uri)
	}
	s.published = make(map[string]struct{})
	s.mu.Unlock()
	for _, uri := range uris {
		if err := s.sendPublish(uri, nil, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
}

func toLSPDiagnostics(a *analysis, uri string) []lspDiagnostic {
	items := a.bag.Items()
	out := make([]lspDiagnostic, 0, len(items))
	for _, d := range items {
		ld := lspDiagnostic{
			Range:    rangeForSpan(a.file, d.Primary.Start, d.Primary.End),
			Severity: lspSeverity(d.Severity),
			Code:     d.Code.ID(),
			Source:   "datum",
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			ld.RelatedInformation = append(ld.RelatedInformation, diagnosticRelatedInformation{
				Location: location{URI: uri, Range: rangeForSpan(a.file, n.Span.Start, n.Span.End)},
				Message:  n.Msg,
			})
		}
		out = append(out, ld)
	}
	return out
}

func lspSeverity(sev diag.Severity) int {
	switch sev {
	case diag.SevError:
		return lspSeverityError
	case diag.SevWarning:
		return lspSeverityWarning
	default:
		return lspSeverityInformation
	}
}
