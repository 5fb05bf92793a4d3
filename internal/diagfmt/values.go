package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"datum/internal/ast"
	"datum/internal/format"
)

// ValueOutput is the JSON shape of a parsed value. Atoms carry their
// canonical source text so NaN and infinities survive encoding.
type ValueOutput struct {
	Kind  string        `json:"kind"`
	Text  string        `json:"text,omitempty"`
	Items []ValueOutput `json:"items,omitempty"`
}

func valueOutput(v ast.Value) ValueOutput {
	out := ValueOutput{Kind: v.Kind.String()}
	if v.Kind != ast.List {
		out.Text = format.Values(v)
		return out
	}
	out.Items = make([]ValueOutput, len(v.Items))
	for i, it := range v.Items {
		out.Items[i] = valueOutput(it)
	}
	return out
}

// FormatValuesJSON выводит значения в JSON формате
func FormatValuesJSON(w io.Writer, values []ast.Value) error {
	output := make([]ValueOutput, len(values))
	for i, v := range values {
		output[i] = valueOutput(v)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// FormatValuesTree prints values as an indented tree, one node per line.
func FormatValuesTree(w io.Writer, values []ast.Value) error {
	var sb strings.Builder
	for i, v := range values {
		fmt.Fprintf(&sb, "value #%d\n", i+1)
		v.Walk(func(n ast.Value, depth int) bool {
			sb.WriteString(strings.Repeat("  ", depth+1))
			if n.Kind == ast.List {
				fmt.Fprintf(&sb, "%s (%d)\n", n.Kind, len(n.Items))
			} else {
				fmt.Fprintf(&sb, "%s %s\n", n.Kind, format.Values(n))
			}
			return true
		})
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
