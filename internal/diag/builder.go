package diag

import "datum/internal/source"

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// AtByte builds an error covering the byte at off in f. A non-negative open
// is the offset of the list or string the failure left unclosed; it becomes
// an "opened here" note.
func AtByte(code Code, f *source.File, off, open int, msg string) Diagnostic {
	d := NewError(code, f.At(off, 1), msg)
	if open >= 0 {
		d = d.WithNote(f.At(open, 1), "opened here")
	}
	return d
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// Emit passes d to r. A nil reporter drops it.
func (d Diagnostic) Emit(r Reporter) {
	if r == nil {
		return
	}
	r.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
}
