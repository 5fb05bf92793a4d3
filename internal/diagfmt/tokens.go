package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"datum/internal/format"
	"datum/internal/source"
	"datum/internal/token"
)

type TokenOutput struct {
	Kind   string `json:"kind"`
	Text   string `json:"text,omitempty"`
	Source string `json:"source"`
	Offset int    `json:"offset"`
	Line   uint32 `json:"line,omitempty"`
	Col    uint32 `json:"col,omitempty"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате.
// Позиция указывает на байт, завершивший токен.
func FormatTokensPretty(w io.Writer, tokens []token.Positioned, fs *source.FileSet, file source.FileID) error {
	f := fs.Get(file)
	for i, tok := range tokens {
		pos, _ := fs.Resolve(f.At(tok.Offset, 0))
		if _, err := fmt.Fprintf(w, "%3d: %-10s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Kind.HasText() {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " %s at %d:%d\n", format.TokenText(tok.Token), pos.Line, pos.Col)
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Positioned, fs *source.FileSet, file source.FileID) error {
	output := make([]TokenOutput, 0, len(tokens))
	var f *source.File
	if fs != nil {
		f = fs.Get(file)
	}
	for _, tok := range tokens {
		out := TokenOutput{
			Kind:   tok.Kind.String(),
			Text:   tok.Text,
			Source: format.TokenText(tok.Token),
			Offset: tok.Offset,
		}
		if f != nil {
			pos, _ := fs.Resolve(f.At(tok.Offset, 0))
			out.Line, out.Col = pos.Line, pos.Col
		}
		output = append(output, out)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
