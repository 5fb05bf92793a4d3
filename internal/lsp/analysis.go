package lsp

import (
	"context"
	"fmt"

	"datum/internal/ast"
	"datum/internal/diag"
	"datum/internal/driver"
	"datum/internal/pipeline"
	"datum/internal/project"
	"datum/internal/source"
	"datum/internal/token"
	"datum/internal/trace"
)

// analysis is the result of reading one document version.
type analysis struct {
	version int
	fs      *source.FileSet
	file    *source.File
	tokens  []token.Positioned
	values  []ast.Value
	bag     *diag.Bag
}

func analyze(ctx context.Context, uri string, doc document, cfg project.Config, maxDiagnostics int) *analysis {
	span := trace.BeginCtx(ctx, trace.ScopeFile, "lsp:analyze")
	defer span.End(uri)

	name := uriToPath(uri)
	if name == "" {
		name = uri
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, []byte(doc.text)))
	a := &analysis{
		version: doc.version,
		fs:      fs,
		file:    file,
		bag:     diag.NewBag(maxDiagnostics),
	}
	// токены нужны для folding и hover даже после ошибки
	a.tokens, _ = pipeline.TokenizeBytes(file.Content, cfg.Pipeline())
	values, err := pipeline.ParseBytes(file.Content, cfg.Pipeline())
	a.values = values
	driver.ReportError(diag.BagReporter{Bag: a.bag}, file, err)
	span.WithExtra("diagnostics", fmt.Sprint(a.bag.Len()))
	return a
}

// analysisFor returns an analysis of the current text of uri, reusing the
// cached one when the version matches. nil means the document is not open.
func (s *Server) analysisFor(uri string) *analysis {
	uri = canonicalURI(uri)
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	if a, ok := s.analyses[uri]; ok && a.version == doc.version {
		s.mu.Unlock()
		return a
	}
	snapshot := *doc
	cfg := s.config
	s.mu.Unlock()

	a := analyze(s.baseCtx, uri, snapshot, cfg, s.maxDiagnostics)

	s.mu.Lock()
	if cur, ok := s.docs[uri]; ok && cur.version == a.version {
		s.analyses[uri] = a
	}
	s.mu.Unlock()
	return a
}
