// Package ast holds Datum values: atoms and lists of values.
//
// Values are plain data. A list owns its children; quoting is not a value
// kind of its own, 'x reads as the two-element list (quote x).
package ast
