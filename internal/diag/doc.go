// Package diag defines the diagnostic model shared by the tokenizer, parser,
// formatter and driver.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string form (LEX1001, SYN2002, ...), a short Message, the Primary
// source.Span and optional Notes pointing at related spans (for example the
// opening parenthesis of an unterminated list).
//
// Producers emit through a Reporter, usually a BagReporter that collects into a
// Bag. Bag supports a hard limit, stable sorting and deduplication. Rendering
// lives in internal/diagfmt; package diag performs no IO.
package diag
