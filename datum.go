package datum

import (
	"io"

	"datum/internal/ast"
	"datum/internal/format"
	"datum/internal/pipeline"
	"datum/internal/token"
)

type (
	// Value is a parsed Datum value.
	Value = ast.Value
	// Token is a lexical token.
	Token = token.Token
	// Limits bound buffer sizes during parsing. Zero fields are unbounded.
	Limits = pipeline.Config
	// Error locates a parse failure in the input.
	Error = pipeline.Error
	// Decoder streams values from a reader.
	Decoder = pipeline.Decoder
)

// Parse reads every top-level value in src.
func Parse(src []byte) ([]Value, error) {
	return pipeline.ParseBytes(src, Limits{})
}

// ParseString is Parse for a string.
func ParseString(src string) ([]Value, error) {
	return pipeline.ParseString(src, Limits{})
}

// ParseLimited is Parse with buffer limits.
func ParseLimited(src []byte, lim Limits) ([]Value, error) {
	return pipeline.ParseBytes(src, lim)
}

// NewDecoder streams values from r.
func NewDecoder(r io.Reader) *Decoder {
	return pipeline.NewDecoder(r, Limits{})
}

// Tokenize returns the tokens of src.
func Tokenize(src []byte) ([]Token, error) {
	pos, err := pipeline.TokenizeBytes(src, Limits{})
	out := make([]Token, len(pos))
	for i, p := range pos {
		out[i] = p.Token
	}
	return out, err
}

// Format renders values on one line, separated by spaces.
func Format(vs ...Value) string {
	return format.Values(vs...)
}

// FormatDocument renders values one per line, breaking lists wider than
// maxWidth bytes (0 disables breaking).
func FormatDocument(vs []Value, maxWidth int) []byte {
	return format.Document(vs, format.Options{MaxWidth: maxWidth})
}

// Reformat parses src and renders it as a document, keeping its comments.
func Reformat(src []byte, maxWidth int) ([]byte, error) {
	out, _, err := format.Source(src, Limits{}, format.Options{MaxWidth: maxWidth})
	return out, err
}
