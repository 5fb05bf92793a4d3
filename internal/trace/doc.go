// Package trace records what the datum driver is doing while it works.
//
// Tracing is enabled from the command line:
//
//	datum check --trace=- --trace-level=file ./configs
//
// Tracers:
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes each event immediately
//   - RingTracer: keeps the last N events for a dump after a failure
//   - MultiTracer: fans out to several tracers
//
// Events carry a Scope (driver, file, stage); the Level decides which scopes
// are emitted. Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, path, parentID)
//	defer span.End("")
package trace
