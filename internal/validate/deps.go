package validate

import "nvcfg/internal/plugin"

// runDependency builds the graph from the registry produced by the
// semantic stage and resolves the load order. A cycle leaves LoadOrder
// empty.
func (p *pipeline) runDependency() {
	if p.registry == nil {
		return
	}
	rep := p.reporter()
	g := plugin.BuildGraph(p.registry, rep)
	res := plugin.Resolve(g, rep)
	p.order = res.Order
}
