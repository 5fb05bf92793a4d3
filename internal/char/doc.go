// Package char classifies Unicode scalar values for the Datum grammar.
//
// Every scalar except the backslash has a natural Class. A Char pairs a rune
// with the class it plays in the token stream; when that class differs from
// the natural one the rune is escaped content, and Emit renders the escape
// that reproduces it.
package char
