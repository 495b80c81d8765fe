// Package validate runs the fixed four-stage pipeline over a set of
// parsed configuration files: syntax, semantic, dependency, runtime
// path. Every stage always runs; a failed stage never gates a later
// one, so the report is complete in one pass.
package validate

import (
	"nvcfg/internal/ast"
	"nvcfg/internal/catalog"
	"nvcfg/internal/diag"
	"nvcfg/internal/model"
	"nvcfg/internal/plugin"
	"nvcfg/internal/source"
)

// ParsedFile is one file ready for validation. Model may be nil; the
// pipeline extracts it on demand.
type ParsedFile struct {
	Source *source.File
	Chunk  *ast.Chunk
	Parse  []diag.Diagnostic
	Model  *model.File
}

// Input carries everything the pipeline needs. PathExists is injected
// so tests and dry runs control what the runtime-path stage sees.
type Input struct {
	Files   []*ParsedFile
	Options *catalog.Options
	Events  *catalog.Events

	// ConfigRoot, when set, must satisfy PathExists.
	ConfigRoot string
	PathExists func(string) bool

	MaxDiagnostics int
}

// StageResult records what one stage contributed.
type StageResult struct {
	Name     string
	Category diag.Category
	Errors   int
	Warnings int
}

// Report is the complete validation outcome.
type Report struct {
	Diagnostics []diag.Diagnostic
	Stages      []StageResult
	LoadOrder   []string
	Dropped     int
	Success     bool
}

type stage struct {
	name     string
	category diag.Category
	run      func(*pipeline)
}

type pipeline struct {
	in       Input
	bag      *diag.Bag
	registry *plugin.Registry
	order    []string
}

// Run executes the four stages in their fixed order and assembles the
// report. Success means no error-severity diagnostic from any stage.
func Run(in Input) *Report {
	max := in.MaxDiagnostics
	if max <= 0 {
		max = 200
	}
	if in.Options == nil {
		in.Options = catalog.NewOptions(nil)
	}
	if in.Events == nil {
		in.Events = catalog.NewEvents(nil)
	}
	for _, pf := range in.Files {
		if pf.Model != nil {
			continue
		}
		if pf.Chunk == nil {
			pf.Model = &model.File{Path: pf.Source.Path}
			continue
		}
		pf.Model = model.Extract(pf.Chunk, pf.Source.Path)
	}

	p := &pipeline{in: in, bag: diag.NewBag(max)}
	stages := []stage{
		{name: "syntax", category: diag.CategorySyntax, run: (*pipeline).runSyntax},
		{name: "semantic", category: diag.CategorySemantic, run: (*pipeline).runSemantic},
		{name: "dependency", category: diag.CategoryDependency, run: (*pipeline).runDependency},
		{name: "runtime-path", category: diag.CategoryRuntimePath, run: (*pipeline).runRuntimePath},
	}

	report := &Report{Stages: make([]StageResult, 0, len(stages))}
	for _, st := range stages {
		beforeErr := p.bag.CountSeverity(diag.SevError)
		beforeWarn := p.bag.CountSeverity(diag.SevWarning)
		st.run(p)
		report.Stages = append(report.Stages, StageResult{
			Name:     st.name,
			Category: st.category,
			Errors:   p.bag.CountSeverity(diag.SevError) - beforeErr,
			Warnings: p.bag.CountSeverity(diag.SevWarning) - beforeWarn,
		})
	}

	p.bag.Sort()
	p.bag.Dedup()
	report.Diagnostics = p.bag.Items()
	report.Dropped = p.bag.Dropped()
	report.LoadOrder = p.order
	report.Success = !p.bag.HasErrors()
	return report
}

func (p *pipeline) reporter() diag.Reporter {
	return diag.NewBagReporter(p.bag)
}
