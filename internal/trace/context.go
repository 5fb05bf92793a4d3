package trace

import (
	"context"
	"strings"
	"time"
)

type tracerKey struct{}

type spanKey struct{}

// spanRef is what a context knows about the span it runs under.
type spanRef struct {
	id uint64
	// file is the input of the nearest enclosing file span.
	file string
}

// FromContext returns the tracer carried by ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx. nil attaches Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

func currentSpan(ctx context.Context) spanRef {
	if ctx == nil {
		return spanRef{}
	}
	ref, _ := ctx.Value(spanKey{}).(spanRef)
	return ref
}

// FileFromContext returns the input file of the innermost file span
// around ctx, or "".
func FileFromContext(ctx context.Context) string {
	return currentSpan(ctx).file
}

// fileOf extracts the input path from a file span name ("file:<path>").
func fileOf(scope Scope, name string) (string, bool) {
	if scope != ScopeFile {
		return "", false
	}
	return strings.CutPrefix(name, "file:")
}

// PointCtx emits an instant event under the span carried by ctx. Events
// inside a file span carry the file in Extra["file"].
func PointCtx(ctx context.Context, scope Scope, name, detail string) {
	t := FromContext(ctx)
	if !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	ref := currentSpan(ctx)
	ev := &Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: ref.id,
		GID:      getGoroutineID(),
		Name:     name,
		Detail:   detail,
	}
	if ref.file != "" {
		ev.Extra = map[string]string{"file": ref.file}
	}
	t.Emit(ev)
}
