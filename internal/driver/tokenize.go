package driver

import (
	"context"
	"fmt"

	"datum/internal/diag"
	"datum/internal/pipeline"
	"datum/internal/progress"
	"datum/internal/source"
	"datum/internal/token"
	"datum/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Positioned
	Bag     *diag.Bag
}

// Tokenize reads path ("-" for stdin) and returns its tokens. Tokens before
// a failure are kept; the failure itself lands in Bag.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := opts.load(fs, path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	span := trace.BeginCtx(ctx, trace.ScopeFile, "tokenize:"+file.Path)
	bag := diag.NewBag(opts.maxDiagnostics())

	var tokens []token.Positioned
	opts.stage(span.Context(ctx), path, progress.StageTokenize, func() {
		tokens, err = pipeline.TokenizeBytes(file.Content, opts.Config.Pipeline())
	})
	ReportError(diag.BagReporter{Bag: bag}, file, err)
	span.End(fmt.Sprintf("%d tokens", len(tokens)))

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
