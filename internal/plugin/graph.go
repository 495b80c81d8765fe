package plugin

import (
	"fmt"
	"slices"

	"nvcfg/internal/diag"
	"nvcfg/internal/source"
)

// Graph is the plugin dependency graph. An edge dep -> dependent means
// dependent declared dep in its spec, so indegree-zero nodes are safe
// to load first.
type Graph struct {
	Index   Index
	Edges   [][]ID // Edges[dep] = dependents
	Indeg   []int
	Present []bool // declared, not merely referenced
	Spans   []source.Span
}

// BuildGraph wires registry declarations into a graph. A dependency on
// an undeclared plugin is reported and its edge omitted; a plugin that
// names itself is reported and the self-edge omitted.
func BuildGraph(reg *Registry, rep diag.Reporter) Graph {
	idx := BuildIndex(reg)
	n := len(idx.IDToName)
	g := Graph{
		Index:   idx,
		Edges:   make([][]ID, n),
		Indeg:   make([]int, n),
		Present: make([]bool, n),
		Spans:   make([]source.Span, n),
	}

	for i := range reg.Decls {
		d := &reg.Decls[i]
		id := idx.NameToID[d.Name]
		g.Present[int(id)] = true
		g.Spans[int(id)] = d.Span
	}

	for i := range reg.Decls {
		d := &reg.Decls[i]
		to := idx.NameToID[d.Name]
		seen := make(map[ID]struct{}, len(d.Dependencies))
		for _, dep := range d.Dependencies {
			if dep == "" {
				continue
			}
			from := idx.NameToID[dep]
			if from == to {
				if rep != nil {
					diag.Error(rep, diag.DepSelfDependency, d.Span,
						fmt.Sprintf("plugin %q depends on itself", d.Name))
				}
				continue
			}
			if !g.Present[int(from)] {
				if rep != nil {
					diag.Warning(rep, diag.DepUnresolvedDependency, d.Span,
						fmt.Sprintf("plugin %q depends on %q, which is not declared", d.Name, dep))
				}
				continue
			}
			if _, dup := seen[from]; dup {
				continue
			}
			seen[from] = struct{}{}
			g.Edges[int(from)] = append(g.Edges[int(from)], to)
			g.Indeg[int(to)]++
		}
	}

	for from := range g.Edges {
		if len(g.Edges[from]) > 1 {
			slices.Sort(g.Edges[from])
		}
	}
	return g
}

// Dependents returns the declared plugins that depend on name.
func (g *Graph) Dependents(name string) []string {
	id, ok := g.Index.NameToID[name]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(g.Edges[int(id)]))
	for _, to := range g.Edges[int(id)] {
		out = append(out, g.Index.IDToName[int(to)])
	}
	return out
}
