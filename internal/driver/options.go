package driver

import (
	"context"
	"io"
	"os"
	"time"

	"datum/internal/observ"
	"datum/internal/progress"
	"datum/internal/project"
	"datum/internal/trace"
)

const defaultMaxDiagnostics = 256

// Options are shared by every driver entry point.
type Options struct {
	Config         project.Config
	MaxDiagnostics int
	// Jobs overrides Config.Jobs when positive.
	Jobs     int
	Timer    *observ.Timer
	Progress progress.Sink
	// Cache is consulted by CheckPaths; nil disables caching.
	Cache *DiskCache
	// CheckFormat makes CheckPaths also report files `datum fmt` would change.
	CheckFormat bool
	// Stdin is read for the path "-"; nil means os.Stdin.
	Stdin io.Reader
}

func (o *Options) maxDiagnostics() int {
	if o.MaxDiagnostics > 0 {
		return o.MaxDiagnostics
	}
	return defaultMaxDiagnostics
}

func (o *Options) jobs() int {
	if o.Jobs > 0 {
		return o.Jobs
	}
	return o.Config.Jobs()
}

func (o *Options) progress() progress.Sink {
	if o.Progress == nil {
		return progress.Discard
	}
	return o.Progress
}

func (o *Options) stdin() io.Reader {
	if o.Stdin == nil {
		return os.Stdin
	}
	return o.Stdin
}

// stage runs fn as one pipeline stage of path: it reports progress, opens
// a stage span and folds the elapsed time into the timer.
func (o *Options) stage(ctx context.Context, path string, st progress.Stage, fn func()) {
	o.progress().OnEvent(progress.Event{File: path, Stage: st, Status: progress.StatusWorking})
	span := trace.BeginCtx(ctx, trace.ScopeStage, string(st))
	start := time.Now()
	fn()
	o.Timer.Add(string(st), time.Since(start))
	span.End("")
}
