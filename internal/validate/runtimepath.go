package validate

import (
	"fmt"
	"path"
	"strings"

	"nvcfg/internal/diag"
	"nvcfg/internal/model"
	"nvcfg/internal/source"
	"nvcfg/internal/token"
)

// runRuntimePath checks the filesystem assumptions of the config: the
// config root must exist and every require() of a config-local module
// must resolve to a file under lua/. Existence goes through the
// injected predicate.
func (p *pipeline) runRuntimePath() {
	exists := p.in.PathExists
	if exists == nil {
		return
	}
	rep := p.reporter()

	if p.in.ConfigRoot != "" && !exists(p.in.ConfigRoot) {
		diag.Error(rep, diag.PathMissingRoot, source.Span{},
			fmt.Sprintf("config root %q does not exist", p.in.ConfigRoot))
	}

	owned := pluginModuleNames(p.in.Files)
	for _, pf := range p.in.Files {
		for _, req := range scanRequires(pf) {
			if req.module == "lazy" {
				continue
			}
			if _, ok := owned[firstSegment(req.module)]; ok {
				// provided by a declared plugin, not by the config tree
				continue
			}
			rel := strings.ReplaceAll(req.module, ".", "/")
			asFile := path.Join(p.in.ConfigRoot, "lua", rel+".lua")
			asInit := path.Join(p.in.ConfigRoot, "lua", rel, "init.lua")
			if exists(asFile) || exists(asInit) {
				continue
			}
			diag.Warning(rep, diag.PathUnresolvedRequire, req.span,
				fmt.Sprintf("require(%q) does not resolve under %s", req.module, path.Join(p.in.ConfigRoot, "lua")))
		}
	}
}

type requireRef struct {
	module string
	span   source.Span
}

// scanRequires walks the raw token stream, so requires inside opaque
// control flow are found too.
func scanRequires(pf *ParsedFile) []requireRef {
	if pf.Chunk == nil {
		return nil
	}
	var out []requireRef
	var prev, prev2 token.Token
	pf.Chunk.VisitTokens(func(t *token.Token) {
		if t.Kind == token.StringLit {
			// require "mod" or require("mod")
			direct := prev.Kind == token.Ident && prev.Text == "require"
			called := prev.Kind == token.LParen && prev2.Kind == token.Ident && prev2.Text == "require"
			if direct || called {
				if mod := model.DecodeString(t.Text); mod != "" {
					out = append(out, requireRef{module: mod, span: t.Span})
				}
			}
		}
		prev2 = prev
		prev = *t
	})
	return out
}

// pluginModuleNames guesses the Lua module each declared plugin
// provides from its repository basename.
func pluginModuleNames(files []*ParsedFile) map[string]struct{} {
	owned := make(map[string]struct{})
	for _, pf := range files {
		for i := range pf.Model.Plugins {
			name := pf.Model.Plugins[i].Name
			if j := strings.LastIndexByte(name, '/'); j >= 0 {
				name = name[j+1:]
			}
			name = strings.TrimSuffix(name, ".nvim")
			name = strings.TrimSuffix(name, ".lua")
			if name != "" {
				owned[name] = struct{}{}
			}
		}
	}
	return owned
}

func firstSegment(mod string) string {
	if i := strings.IndexByte(mod, '.'); i >= 0 {
		return mod[:i]
	}
	return mod
}
