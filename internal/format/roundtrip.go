package format

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"datum/internal/ast"
	"datum/internal/pipeline"
)

var (
	// ErrRoundTrip reports formatted text that reads back differently.
	ErrRoundTrip = errors.New("formatted output does not read back to the same values")
	// ErrNotIdempotent reports formatting that changes on a second pass.
	ErrNotIdempotent = errors.New("formatting is not idempotent")
	// ErrCommentsLost reports formatted text whose comments differ from the
	// source's.
	ErrCommentsLost = errors.New("formatted output does not keep the source comments")
)

// Source parses src and renders it as a document, keeping its comments.
func Source(src []byte, cfg pipeline.Config, opt Options) ([]byte, []ast.Value, error) {
	vs, err := pipeline.ParseBytes(src, cfg)
	if err != nil {
		return nil, nil, err
	}
	out, err := Rewrite(src, vs, cfg, opt)
	if err != nil {
		return nil, nil, err
	}
	return out, vs, nil
}

// Rewrite renders vs, the values src parses to, with the comments of src.
func Rewrite(src []byte, vs []ast.Value, cfg pipeline.Config, opt Options) ([]byte, error) {
	cs, err := SourceComments(src, cfg)
	if err != nil {
		return nil, err
	}
	return DocumentWithComments(vs, cs, opt), nil
}

// Verify checks that out, the formatting of src, reads back to vs, keeps
// every comment of src in order and is left unchanged by formatting again.
func Verify(src []byte, vs []ast.Value, out []byte, opt Options) error {
	again, back, err := Source(out, pipeline.Config{}, opt)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRoundTrip, err)
	}
	if !ast.EqualAll(vs, back) {
		return ErrRoundTrip
	}
	want, err := commentTexts(src, opt.Header)
	if err != nil {
		return err
	}
	got, err := commentTexts(out, opt.Header)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRoundTrip, err)
	}
	if !slices.Equal(want, got) {
		return fmt.Errorf("%w: %d in source, %d formatted", ErrCommentsLost, len(want), len(got))
	}
	if !bytes.Equal(out, again) {
		return ErrNotIdempotent
	}
	return nil
}

func commentTexts(src []byte, header string) ([]string, error) {
	cs, err := SourceComments(src, pipeline.Config{})
	if err != nil {
		return nil, err
	}
	cs = withoutHeader(cs, header)
	texts := make([]string, len(cs))
	for i, c := range cs {
		texts[i] = c.Text
	}
	return texts, nil
}

// CheckRoundTrip formats src and verifies the result. It returns the
// formatted text, also when verification fails.
func CheckRoundTrip(src []byte, cfg pipeline.Config, opt Options) ([]byte, error) {
	out, vs, err := Source(src, cfg, opt)
	if err != nil {
		return nil, err
	}
	return out, Verify(src, vs, out, opt)
}
