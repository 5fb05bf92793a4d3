// Package token defines the lexical tokens of the Datum format.
// Invariants:
//   - Only String, ID, SpecialID and Numeric tokens carry text.
//   - Text holds decoded content: escapes are already resolved.
//   - SpecialID text excludes the leading '#'.
//   - The empty identifier travels as SpecialID "{}#".
package token
