package diagfmt

import (
	"fmt"
	"io"

	"datum/internal/diag"
	"datum/internal/source"
)

// Short prints one line per diagnostic:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// Suitable for editors and golden files.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) {
	if bag == nil || fs == nil {
		return
	}
	for _, d := range bag.Items() {
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			f.FormatPath(mode.mode(), fs.BaseDir()),
			start.Line, start.Col,
			d.Severity, d.Code.ID(), d.Message)
	}
}
