// Package plugin builds the declared-plugin registry and dependency
// graph, and resolves a deterministic load order.
package plugin

import (
	"fmt"
	"sort"

	"nvcfg/internal/diag"
	"nvcfg/internal/model"
)

// Registry is the set of declared plugins across all scanned files.
// The first declaration of a name wins; later ones are reported and
// dropped.
type Registry struct {
	Decls  []model.PluginDecl
	byName map[string]int
}

// BuildRegistry merges plugin declarations from the given files in scan
// order. Duplicates produce a SemaDuplicatePlugin warning pointing at
// the surviving declaration.
func BuildRegistry(files []*model.File, rep diag.Reporter) *Registry {
	reg := &Registry{byName: make(map[string]int)}
	for _, f := range files {
		for i := range f.Plugins {
			d := f.Plugins[i]
			if prev, dup := reg.byName[d.Name]; dup {
				if rep != nil {
					first := &reg.Decls[prev]
					rep.Report(
						diag.SemaDuplicatePlugin,
						diag.SevWarning,
						d.Span,
						fmt.Sprintf("plugin %q is declared more than once", d.Name),
						[]diag.Note{{
							Span: first.Span,
							Msg:  fmt.Sprintf("first declaration in %s is kept", first.SourceFile),
						}},
						nil,
					)
				}
				continue
			}
			reg.byName[d.Name] = len(reg.Decls)
			reg.Decls = append(reg.Decls, d)
		}
	}
	return reg
}

// Lookup returns the surviving declaration for a name.
func (r *Registry) Lookup(name string) (*model.PluginDecl, bool) {
	i, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return &r.Decls[i], true
}

func (r *Registry) Len() int { return len(r.Decls) }

// Names returns the declared plugin names in ascending order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.Decls))
	for i := range r.Decls {
		names = append(names, r.Decls[i].Name)
	}
	sort.Strings(names)
	return names
}
