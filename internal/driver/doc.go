// Package driver runs the datum pipeline over files: tokenize and parse for
// inspection, format for rewriting, and check for validating whole trees in
// parallel with a content-addressed result cache.
//
// Pipeline failures are turned into diag.Diagnostics located through a
// source.FileSet. Progress goes to a progress.Sink, stage timings to an
// observ.Timer and spans to the trace.Tracer carried by the context.
package driver
