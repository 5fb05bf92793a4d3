package pipeline

import (
	"datum/internal/ast"
	"datum/internal/char"
	"datum/internal/decoder"
	"datum/internal/lexer"
	"datum/internal/parser"
	"datum/internal/pipe"
	"datum/internal/token"
)

// Output bounds of the prebuilt chains.
const (
	ByteToCharMaxOut  = 1 * 1 * 2
	RuneToTokenMaxOut = 1 * 2 * 2
	ByteToTokenMaxOut = ByteToCharMaxOut * 2 * 2
	RuneToValueMaxOut = RuneToTokenMaxOut * 1 * 2
	ByteToValueMaxOut = ByteToTokenMaxOut * 1 * 2
)

// ByteToChar decodes UTF-8 and escapes.
func ByteToChar() *pipe.Composed[byte, rune, char.Char] {
	return pipe.Compose[byte, rune, char.Char](decoder.NewUTF8(), decoder.NewEscape())
}

// RuneToToken decodes escapes and tokenizes.
func RuneToToken(cfg Config) *pipe.Composed[rune, char.Char, token.Token] {
	return pipe.Compose[rune, char.Char, token.Token](decoder.NewEscape(), lexer.New(cfg.LexerOptions()))
}

// ByteToToken runs the whole front end from bytes to tokens.
func ByteToToken(cfg Config) *pipe.Composed[byte, char.Char, token.Token] {
	return pipe.Compose[byte, char.Char, token.Token](ByteToChar(), lexer.New(cfg.LexerOptions()))
}

// RuneToValue parses runes into top-level values.
func RuneToValue(cfg Config) *pipe.Composed[rune, token.Token, ast.Value] {
	return pipe.Compose[rune, token.Token, ast.Value](RuneToToken(cfg), parser.New(cfg.Storage()))
}

// ByteToValue parses bytes into top-level values.
func ByteToValue(cfg Config) *pipe.Composed[byte, token.Token, ast.Value] {
	return pipe.Compose[byte, token.Token, ast.Value](ByteToToken(cfg), parser.New(cfg.Storage()))
}
