// Package datum reads and writes the Datum text format, a small
// S-expression notation with strings, identifiers, 64-bit integers and
// floats, booleans, nil, lists and the ' quote shorthand.
//
//	(config
//	  (name "demo")   ; strings are quoted
//	  (retries 3)
//	  (ratio 0.75)
//	  (debug #f)
//	  'symbol)        ; reads as (quote symbol)
//
// Parsing runs as a chain of streaming stages (UTF-8, escapes, tokenizer,
// parser) that each emit a bounded number of outputs per input byte, so the
// same code works over unbounded streams with fixed-size buffers. The
// internal packages expose the individual stages.
package datum
