// Package pipe defines the streaming stage contract shared by every step of
// the Datum pipeline and the algebra that chains stages together.
//
// A stage consumes one input at a time and emits at most MaxOut outputs per
// Feed or EOF call. Errors are sticky: once HasError reports true the stage
// ignores further input, and Err explains what went wrong.
//
// Composition multiplies the bounds: feeding one input into Compose(a, b)
// yields at most a.MaxOut()*b.MaxOut() outputs from Feed, and EOF can add the
// same amount again (a's EOF outputs fed through b, then b's own EOF), so the
// composed bound is a.MaxOut()*b.MaxOut()*2.
package pipe
