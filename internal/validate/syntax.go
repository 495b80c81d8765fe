package validate

import (
	"bytes"
	"errors"
	"fmt"

	luaparse "github.com/yuin/gopher-lua/parse"

	"nvcfg/internal/diag"
	"nvcfg/internal/source"
)

// runSyntax merges parse-time diagnostics and cross-checks each file
// against the reference Lua parser. The reference parser rejecting a
// file our tolerant parser accepted means a real syntax error slipped
// through an opaque region.
func (p *pipeline) runSyntax() {
	for _, pf := range p.in.Files {
		for _, d := range pf.Parse {
			p.bag.Add(d)
		}
		p.crossCheck(pf)
	}
}

func (p *pipeline) crossCheck(pf *ParsedFile) {
	if pf.Chunk == nil {
		return
	}
	_, err := luaparse.Parse(bytes.NewReader(pf.Source.Content), pf.Source.Path)
	if err == nil {
		return
	}
	for _, d := range pf.Parse {
		if d.Severity == diag.SevError {
			// already reported by our own parser
			return
		}
	}

	span := source.Span{File: pf.Source.ID}
	msg := "reference parser rejected file"
	var perr *luaparse.Error
	if errors.As(err, &perr) {
		span = spanAtLine(pf.Source, perr.Pos.Line)
		msg = fmt.Sprintf("reference parser rejected file: %s", perr.Message)
	}
	diag.Error(p.reporter(), diag.SynCrossCheckFailed, span, msg)
}

// spanAtLine points at the start of a 1-based line.
func spanAtLine(f *source.File, line int) source.Span {
	var start uint32
	switch {
	case line <= 1:
		start = 0
	case line-2 < len(f.LineIdx):
		start = f.LineIdx[line-2] + 1
	default:
		start = uint32(len(f.Content))
	}
	return source.Span{File: f.ID, Start: start, End: start}
}
