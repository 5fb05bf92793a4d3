package driver

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"datum/internal/diag"
	"datum/internal/format"
	"datum/internal/progress"
	"datum/internal/project"
	"datum/internal/source"
	"datum/internal/trace"
)

// CheckResult is the outcome for one file.
type CheckResult struct {
	Path    string
	FileID  source.FileID
	Values  int
	Bag     *diag.Bag
	Cached  bool
	Elapsed time.Duration
}

// CheckReport collects the results of CheckPaths in path order.
type CheckReport struct {
	FileSet *source.FileSet
	Results []CheckResult
}

// Diagnostics merges every file's diagnostics into one sorted bag.
func (r *CheckReport) Diagnostics() *diag.Bag {
	all := diag.NewBag(0)
	for _, res := range r.Results {
		all.Merge(res.Bag)
	}
	all.Sort()
	return all
}

// Failed counts files with at least one error.
func (r *CheckReport) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Bag.HasErrors() {
			n++
		}
	}
	return n
}

// CheckPaths validates every datum file under paths in parallel. Results
// are cached by content and configuration when opts.Cache is set.
func CheckPaths(ctx context.Context, paths []string, opts Options) (*CheckReport, error) {
	files, err := collectSourceFiles(ctx, paths, opts.Config)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	root := trace.BeginCtx(ctx, trace.ScopeDriver, "check")
	defer root.End(fmt.Sprintf("%d files", len(files)))
	ctx = root.Context(ctx)

	sink := opts.progress()
	for _, path := range files {
		sink.OnEvent(progress.Event{File: path, Status: progress.StatusQueued})
	}

	// FileSet не потокобезопасен на запись: загружаем последовательно
	fileSet := source.NewFileSet()
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make([]error, len(files))
	loadIdx := opts.Timer.Begin("load")
	for i, path := range files {
		id, err := opts.load(fileSet, path)
		if err != nil {
			loadErrors[i] = err
			id = fileSet.AddVirtual(path, nil)
		}
		fileIDs[i] = id
	}
	opts.Timer.End(loadIdx, fmt.Sprintf("%d files", len(files)))

	checkIdx := opts.Timer.Begin("check")
	results := make([]CheckResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(opts.jobs(), len(files))))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// индекс i уникален для горутины, мьютекс не нужен
			results[i] = checkOne(gctx, fileSet.Get(fileIDs[i]), path, loadErrors[i], &opts)
			return nil
		})
	}
	err = g.Wait()
	opts.Timer.End(checkIdx, "")

	return &CheckReport{FileSet: fileSet, Results: results}, err
}

func checkOne(ctx context.Context, file *source.File, path string, loadErr error, opts *Options) CheckResult {
	start := time.Now()
	span := trace.BeginCtx(ctx, trace.ScopeFile, "file:"+path)
	ctx = span.Context(ctx)

	bag := diag.NewBag(opts.maxDiagnostics())
	rep := diag.BagReporter{Bag: bag}
	res := CheckResult{Path: path, FileID: file.ID, Bag: bag}
	finish := func(status progress.Status) CheckResult {
		res.Elapsed = time.Since(start)
		span.WithExtra("status", string(status)).End("")
		var err error
		if status == progress.StatusError {
			err = fmt.Errorf("%d errors", bag.Count(diag.SevError))
		}
		opts.progress().OnEvent(progress.Event{File: path, Status: status, Err: err, Elapsed: res.Elapsed})
		return res
	}

	if loadErr != nil {
		diag.ReportError(rep, diag.IOLoadFileError, file.At(0, 0), "failed to load file: "+loadErr.Error()).Emit()
		return finish(progress.StatusError)
	}

	contentHash := project.HashBytes(file.Content)
	key := project.Combine(contentHash, opts.Config.Fingerprint(), checkModeDigest(opts.CheckFormat))
	var cached CachePayload
	if ok, err := opts.Cache.Get(key, &cached); err == nil && ok {
		cached.restore(file.ID, rep)
		res.Values = cached.Values
		res.Cached = true
		trace.PointCtx(ctx, trace.ScopeFile, "cache-hit", key.String()[:12])
		if bag.HasErrors() {
			return finish(progress.StatusError)
		}
		return finish(progress.StatusCached)
	}

	values := parseFile(ctx, path, file, opts, rep)
	res.Values = len(values)

	if opts.CheckFormat && !bag.HasErrors() {
		opts.stage(ctx, path, progress.StageVerify, func() {
			checkFormatted(file, opts, rep)
		})
	}

	if err := opts.Cache.Put(key, toPayload(path, contentHash, res.Values, bag)); err != nil {
		trace.PointCtx(ctx, trace.ScopeFile, "cache-write-failed", err.Error())
	}
	if bag.HasErrors() {
		return finish(progress.StatusError)
	}
	return finish(progress.StatusDone)
}

// checkFormatted warns when formatting would change file and errors when
// the formatter output does not read back to the same values.
func checkFormatted(file *source.File, opts *Options, r diag.Reporter) {
	cfg := opts.Config
	out, err := format.CheckRoundTrip(file.Content, cfg.Pipeline(), cfg.FormatOptions())
	if err != nil {
		diag.ReportError(r, diag.FmtRoundTrip, file.At(0, 0), err.Error()).Emit()
		return
	}
	if at := firstDifference(file.Content, out); at >= 0 {
		diag.ReportWarning(r, diag.FmtUnformatted, file.At(at, 0), "file is not formatted; run datum fmt").Emit()
	}
}

// firstDifference returns the first offset where a and b differ, or -1.
func firstDifference(a, b []byte) int {
	if bytes.Equal(a, b) {
		return -1
	}
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func checkModeDigest(withFormat bool) project.Digest {
	if withFormat {
		return project.HashBytes([]byte("check+format"))
	}
	return project.HashBytes([]byte("check"))
}
