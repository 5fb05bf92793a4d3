package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"datum/internal/diag"
	"datum/internal/format"
	"datum/internal/progress"
	"datum/internal/source"
	"datum/internal/trace"
)

// ErrHasErrors marks a file that was left alone because it does not parse.
var ErrHasErrors = errors.New("file has errors")

// FormatOptions configures formatting.
type FormatOptions struct {
	Options
	// Check reports changes without writing.
	Check bool
	// Stdout returns formatted text instead of writing files.
	Stdout bool
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
	Bag       *diag.Bag
}

// FormatReport collects FormatPaths results in path order.
type FormatReport struct {
	FileSet *source.FileSet
	Results []FormatResult
}

// Changed counts files whose formatting differs.
func (r *FormatReport) Changed() int {
	n := 0
	for _, res := range r.Results {
		if res.Changed {
			n++
		}
	}
	return n
}

// FormatPaths formats files and directories (collecting files by extension).
// Every rewrite is verified to read back to the same values before it is
// written. With Check set nothing is written; with Stdout the formatted text
// is returned in the results. Standard input ("-") is always returned.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) (*FormatReport, error) {
	files, err := collectSourceFiles(ctx, paths, opts.Config)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	root := trace.BeginCtx(ctx, trace.ScopeDriver, "fmt")
	defer root.End(fmt.Sprintf("%d files", len(files)))
	ctx = root.Context(ctx)

	fileSet := source.NewFileSet()
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make([]error, len(files))
	for i, path := range files {
		id, err := opts.load(fileSet, path)
		if err != nil {
			loadErrors[i] = err
			id = fileSet.AddVirtual(path, nil)
		}
		fileIDs[i] = id
	}

	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(opts.jobs(), len(files))))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatOne(gctx, fileSet.Get(fileIDs[i]), path, loadErrors[i], &opts)
			return nil
		})
	}
	err = g.Wait()
	return &FormatReport{FileSet: fileSet, Results: results}, err
}

func formatOne(ctx context.Context, file *source.File, path string, loadErr error, opts *FormatOptions) FormatResult {
	span := trace.BeginCtx(ctx, trace.ScopeFile, "file:"+path)
	defer span.End("")
	ctx = span.Context(ctx)

	bag := diag.NewBag(opts.maxDiagnostics())
	rep := diag.BagReporter{Bag: bag}
	res := FormatResult{Path: path, Bag: bag}
	done := func(status progress.Status) FormatResult {
		opts.progress().OnEvent(progress.Event{File: path, Status: status, Err: res.Err})
		return res
	}

	if loadErr != nil {
		res.Err = loadErr
		diag.ReportError(rep, diag.IOLoadFileError, file.At(0, 0), "failed to load file: "+loadErr.Error()).Emit()
		return done(progress.StatusError)
	}

	values := parseFile(ctx, path, file, &opts.Options, rep)
	if bag.HasErrors() {
		res.Err = ErrHasErrors
		return done(progress.StatusError)
	}

	fopt := opts.Config.FormatOptions()
	var (
		formatted []byte
		verifyErr error
	)
	opts.stage(ctx, path, progress.StageFormat, func() {
		formatted, verifyErr = format.Rewrite(file.Content, values, opts.Config.Pipeline(), fopt)
	})
	if verifyErr == nil {
		opts.stage(ctx, path, progress.StageVerify, func() {
			verifyErr = format.Verify(file.Content, values, formatted, fopt)
		})
	}
	if verifyErr != nil {
		res.Err = verifyErr
		diag.ReportError(rep, diag.FmtRoundTrip, file.At(0, 0), verifyErr.Error()).Emit()
		return done(progress.StatusError)
	}

	res.Changed = !bytes.Equal(file.Content, formatted)
	if path == StdinPath || opts.Stdout {
		res.Formatted = formatted
		return done(progress.StatusDone)
	}
	if opts.Check || !res.Changed {
		return done(progress.StatusDone)
	}
	if err := writeFilePreservingMode(path, formatted); err != nil {
		res.Err = err
		diag.ReportError(rep, diag.IOWriteFileError, file.At(0, 0), "failed to write file: "+err.Error()).Emit()
		return done(progress.StatusError)
	}
	return done(progress.StatusDone)
}

func writeFilePreservingMode(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, data, mode.Perm())
}
