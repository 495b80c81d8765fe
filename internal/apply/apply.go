// Package apply orchestrates a config change end to end: patch the
// tree, print it, diff against the original, validate the result, and
// only then write it to disk. A dry run stops before the write and
// reports exactly what a real run would.
package apply

import (
	"fmt"
	"os"
	"strings"

	"nvcfg/internal/catalog"
	"nvcfg/internal/diag"
	"nvcfg/internal/fswrite"
	"nvcfg/internal/parser"
	"nvcfg/internal/patch"
	"nvcfg/internal/printer"
	"nvcfg/internal/source"
	"nvcfg/internal/textdiff"
	"nvcfg/internal/validate"
)

// Options controls one apply run. The zero value is a safe dry run
// with backups: nothing is written unless Write is set.
type Options struct {
	// Write performs the disk write; unset means a dry run.
	Write bool
	// NoBackup skips the timestamped copy of the previous content.
	NoBackup bool
	// Force writes even when validation of the patched text fails.
	Force bool

	Catalog        *catalog.Options
	Events         *catalog.Events
	ConfigRoot     string
	PathExists     func(string) bool
	MaxDiagnostics int
}

// Result reports what happened (or, for a dry run, what would).
type Result struct {
	Success    bool
	Written    bool
	Diff       *textdiff.Diff
	BackupPath string
	Notes      []string
	Report     *validate.Report
}

// Warnings renders the warning-severity diagnostics of the validation
// report.
func (r *Result) Warnings() []string {
	if r.Report == nil {
		return nil
	}
	var out []string
	for _, d := range r.Report.Diagnostics {
		if d.Severity == diag.SevWarning {
			out = append(out, fmt.Sprintf("%s: %s", d.Code.ID(), d.Message))
		}
	}
	return out
}

// File applies a patch to the file at path. Concurrent applies to the
// same file serialize on a per-path lock; a dry run and a following
// real run therefore see the same before-state and produce the same
// diff.
func File(path string, p patch.Patch, opts Options) (*Result, error) {
	unlock := lockPath(path)
	defer unlock()

	fs := source.NewFileSet()
	var id source.FileID
	if _, err := os.Stat(path); err == nil {
		id, err = fs.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	} else {
		// patching a not-yet-existing file starts from empty content
		id = fs.AddVirtual(path, nil)
	}
	f := fs.Get(id)
	before := string(f.Content)

	parsed := parser.ParseFile(f, parser.Options{})
	patched, err := patch.Apply(parsed.Chunk, p)
	if err != nil {
		return nil, err
	}
	after := printer.Print(patched.Chunk)

	res := &Result{
		Diff:  textdiff.Unified("a/"+path, "b/"+path, before, after),
		Notes: patched.Notes,
	}

	res.Report = validatePatched(path, after, opts)
	res.Success = res.Report.Success

	if before == after {
		return res, nil
	}
	if !opts.Write {
		return res, nil
	}
	if !res.Success && !opts.Force {
		return res, nil
	}

	out := []byte(after)
	if f.Flags&source.FileNormalizedCRLF != 0 {
		// the file came in with CRLF endings; write it back the same way
		out = []byte(strings.ReplaceAll(after, "\n", "\r\n"))
	}
	backupPath, err := fswrite.WriteAtomic(path, out, !opts.NoBackup)
	if err != nil {
		return res, fmt.Errorf("write %s: %w", path, err)
	}
	res.BackupPath = backupPath
	res.Written = true
	return res, nil
}

// validatePatched runs the full pipeline over the printed result.
func validatePatched(path, content string, opts Options) *validate.Report {
	fs := source.NewFileSet()
	id := fs.AddVirtual(path, []byte(content))
	f := fs.Get(id)
	parsed := parser.ParseFile(f, parser.Options{})
	return validate.Run(validate.Input{
		Files: []*validate.ParsedFile{{
			Source: f,
			Chunk:  parsed.Chunk,
			Parse:  parsed.Bag.Items(),
		}},
		Options:        opts.Catalog,
		Events:         opts.Events,
		ConfigRoot:     opts.ConfigRoot,
		PathExists:     opts.PathExists,
		MaxDiagnostics: opts.MaxDiagnostics,
	})
}
