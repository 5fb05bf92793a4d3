package driver

import (
	"errors"

	"datum/internal/ast"
	"datum/internal/decoder"
	"datum/internal/diag"
	"datum/internal/format"
	"datum/internal/lexer"
	"datum/internal/parser"
	"datum/internal/pipeline"
	"datum/internal/source"
)

// CodeFor maps a pipeline failure to its diagnostic code.
func CodeFor(err error) diag.Code {
	switch {
	case errors.Is(err, decoder.ErrUTF8):
		return diag.LexInvalidUTF8
	case errors.Is(err, decoder.ErrEscape):
		return diag.LexBadEscape
	case errors.Is(err, lexer.ErrUnterminatedString):
		return diag.LexUnterminatedString
	case errors.Is(err, lexer.ErrTokenTooLong):
		return diag.LexTokenTooLong
	case errors.Is(err, parser.ErrUnbalancedClose):
		return diag.SynUnbalancedClose
	case errors.Is(err, parser.ErrUnterminatedList):
		return diag.SynUnclosedList
	case errors.Is(err, parser.ErrDanglingQuote):
		return diag.SynDanglingQuote
	case errors.Is(err, ast.ErrUnknownSpecial):
		return diag.SynUnknownSpecial
	case errors.Is(err, ast.ErrBadNumeric):
		return diag.SynBadNumber
	case errors.Is(err, parser.ErrTooDeep):
		return diag.SynNestingTooDeep
	case errors.Is(err, parser.ErrListTooLong):
		return diag.SynListTooLong
	case errors.Is(err, format.ErrRoundTrip), errors.Is(err, format.ErrNotIdempotent),
		errors.Is(err, format.ErrCommentsLost):
		return diag.FmtRoundTrip
	}
	return diag.UnknownCode
}

// ReportError turns err into a diagnostic in f. A *pipeline.Error is placed
// at its offset, with a note at the construct it left open.
func ReportError(r diag.Reporter, f *source.File, err error) {
	if err == nil {
		return
	}
	var pe *pipeline.Error
	if !errors.As(err, &pe) {
		code := CodeFor(err)
		if code == diag.UnknownCode {
			code = diag.IOLoadFileError
		}
		diag.ReportError(r, code, f.At(0, 0), err.Error()).Emit()
		return
	}
	diag.AtByte(CodeFor(pe.Err), f, pe.Offset, pe.Open, pe.Err.Error()).Emit(r)
}
