package plugin

import (
	"fmt"
	"strings"

	"nvcfg/internal/diag"
)

// Resolution is the outcome of load-order resolution. Order is nil
// whenever the graph has a cycle.
type Resolution struct {
	Order   []string
	Batches [][]string
	Cycles  [][]string
}

// Resolve computes a deterministic load order, dependencies first,
// ties broken by ascending name. A cycle is reported with its full
// path and leaves no order.
func Resolve(g Graph, rep diag.Reporter) Resolution {
	cycles := findCycles(g)
	if len(cycles) > 0 {
		res := Resolution{Cycles: make([][]string, 0, len(cycles))}
		for _, cyc := range cycles {
			names := make([]string, 0, len(cyc))
			for _, id := range cyc {
				names = append(names, g.Index.IDToName[int(id)])
			}
			res.Cycles = append(res.Cycles, names)
			if rep != nil {
				path := strings.Join(names, " -> ") + " -> " + names[0]
				diag.Error(rep, diag.DepCyclicDependency, g.Spans[int(cyc[0])],
					fmt.Sprintf("dependency cycle: %s", path))
			}
		}
		return res
	}

	topo := toposort(g)
	res := Resolution{
		Order:   make([]string, 0, len(topo.Order)),
		Batches: make([][]string, 0, len(topo.Batches)),
	}
	for _, id := range topo.Order {
		res.Order = append(res.Order, g.Index.IDToName[int(id)])
	}
	for _, batch := range topo.Batches {
		names := make([]string, 0, len(batch))
		for _, id := range batch {
			names = append(names, g.Index.IDToName[int(id)])
		}
		res.Batches = append(res.Batches, names)
	}
	return res
}
