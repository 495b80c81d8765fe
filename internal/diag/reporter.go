package diag

import "nvcfg/internal/source"

// Reporter receives diagnostics from producers (lexer, parser, validators)
// without exposing how they are collected or rendered.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix)
}

// BagReporter funnels reports into a Bag.
type BagReporter struct {
	Bag *Bag
}

func NewBagReporter(b *Bag) *BagReporter { return &BagReporter{Bag: b} }

func (r *BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	r.Bag.Add(Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
		Fixes:    fixes,
	})
}

// Error is a shorthand for reporting an error with no notes or fixes.
func Error(r Reporter, code Code, primary source.Span, msg string) {
	r.Report(code, SevError, primary, msg, nil, nil)
}

// Warning is a shorthand for reporting a warning with no notes or fixes.
func Warning(r Reporter, code Code, primary source.Span, msg string) {
	r.Report(code, SevWarning, primary, msg, nil, nil)
}

// Info is a shorthand for reporting an informational finding.
func Info(r Reporter, code Code, primary source.Span, msg string) {
	r.Report(code, SevInfo, primary, msg, nil, nil)
}
