package lexer

import (
	"nvcfg/internal/diag"
	"nvcfg/internal/source"
)

// Options configures a Lexer.
type Options struct {
	// Reporter receives lexical diagnostics. May be nil: errors are
	// dropped but lexing continues so round-tripping still works.
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.Error(lx.opts.Reporter, code, sp, msg)
	}
}
