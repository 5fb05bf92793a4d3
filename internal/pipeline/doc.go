// Package pipeline wires the Datum stages into ready-made chains and drives
// them over byte input.
//
// The chains and their output bounds per input unit:
//
//	ByteToChar   byte -> char.Char     2
//	RuneToToken  rune -> token.Token   4
//	ByteToToken  byte -> token.Token   8
//	RuneToValue  rune -> ast.Value     8
//	ByteToValue  byte -> ast.Value    16
//
// Decoder streams values out of an io.Reader and reports failures as *Error
// with the byte offset where the input went wrong.
package pipeline
