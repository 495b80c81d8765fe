package validate

import (
	"fmt"

	"nvcfg/internal/diag"
	"nvcfg/internal/model"
	"nvcfg/internal/plugin"
)

// runSemantic checks options against the catalog and plugin specs for
// shape problems, then builds the registry (duplicate declarations are
// reported here, first one wins).
func (p *pipeline) runSemantic() {
	rep := p.reporter()
	for _, pf := range p.in.Files {
		for i := range pf.Model.Options {
			p.checkOption(rep, &pf.Model.Options[i])
		}
		for i := range pf.Model.Plugins {
			p.checkPlugin(rep, &pf.Model.Plugins[i])
		}
	}

	files := make([]*model.File, 0, len(p.in.Files))
	for _, pf := range p.in.Files {
		files = append(files, pf.Model)
	}
	p.registry = plugin.BuildRegistry(files, rep)
}

func (p *pipeline) checkOption(rep diag.Reporter, oa *model.OptionAssign) {
	// vim.g holds arbitrary globals, not catalog options
	if oa.Scope == "g" {
		return
	}
	opt, known := p.in.Options.Lookup(oa.Key)
	if !known {
		diag.Warning(rep, diag.SemaUnknownOption, oa.Span,
			fmt.Sprintf("unknown option %q", oa.Key))
		return
	}
	if opt.Deprecated != "" {
		rep.Report(diag.SemaDeprecatedOption, diag.SevWarning, oa.Span,
			fmt.Sprintf("option %q is deprecated", oa.Key),
			[]diag.Note{{Span: oa.Span, Msg: fmt.Sprintf("use %q instead", opt.Deprecated)}},
			nil)
	}
	// vim.opt accepts tables for list options, so only scalar values
	// are checked against the catalog type
	switch oa.Value.Kind {
	case model.ValueUnknown, model.ValueFunction, model.ValueTable, model.ValueNil:
		return
	}
	if opt.Type != model.ValueUnknown && oa.Value.Kind != opt.Type {
		diag.Error(rep, diag.SemaOptionTypeMismatch, oa.Span,
			fmt.Sprintf("option %q expects %s, got %s", oa.Key, opt.Type, oa.Value.Kind))
	}
}

func (p *pipeline) checkPlugin(rep diag.Reporter, d *model.PluginDecl) {
	if d.Name == "" {
		diag.Error(rep, diag.SemaInvalidPluginSpec, d.Span,
			"plugin spec has no name string")
		return
	}
	for _, ev := range d.Events {
		if !p.in.Events.Valid(ev) {
			diag.Warning(rep, diag.SemaUnknownEvent, d.Span,
				fmt.Sprintf("plugin %q uses unknown event %q", d.Name, ev))
		}
	}
}
