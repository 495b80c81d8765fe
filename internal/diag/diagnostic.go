package diag

import (
	"nvcfg/internal/source"
)

// Note attaches secondary context to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit is a single replacement of a span with new text. OldText, when
// set, lets the applier verify the file has not drifted.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// Fix is a suggested repair consisting of one or more edits.
type Fix struct {
	Title string
	Edits []TextEdit
}

// Diagnostic is one structured finding with a position and optional
// notes/fixes.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

// WithNote returns a copy with an extra note appended.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// WithFix returns a copy with a suggested fix appended.
func (d Diagnostic) WithFix(title string, edits ...TextEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{Title: title, Edits: edits})
	return d
}
