package driver

import (
	"bytes"
	"context"
	"fmt"

	"datum/internal/ast"
	"datum/internal/diag"
	"datum/internal/pipeline"
	"datum/internal/progress"
	"datum/internal/source"
	"datum/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Values  []ast.Value
	Bag     *diag.Bag
}

// Parse reads path ("-" for stdin) and returns its top-level values. Values
// completed before a failure are kept.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := opts.load(fs, path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	span := trace.BeginCtx(ctx, trace.ScopeFile, "parse:"+file.Path)
	bag := diag.NewBag(opts.maxDiagnostics())
	values := parseFile(span.Context(ctx), path, file, &opts, diag.BagReporter{Bag: bag})
	span.End(fmt.Sprintf("%d values", len(values)))

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Values:  values,
		Bag:     bag,
	}, nil
}

// parseFile streams file through the byte-to-value pipeline, reporting the
// first failure to r.
func parseFile(ctx context.Context, path string, file *source.File, opts *Options, r diag.Reporter) []ast.Value {
	var (
		values []ast.Value
		err    error
	)
	opts.stage(ctx, path, progress.StageParse, func() {
		dec := pipeline.NewDecoder(bytes.NewReader(file.Content), opts.Config.Pipeline())
		for v, derr := range dec.All() {
			if derr != nil {
				err = derr
				break
			}
			values = append(values, v)
		}
	})
	ReportError(r, file, err)
	return values
}
