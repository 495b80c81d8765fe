package plugin

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

type Topo struct {
	Order   []ID   // dependencies before dependents
	Batches [][]ID // waves of mutually independent plugins
	Cyclic  bool
	Stuck   []ID // nodes left with positive indegree
}

// toposort runs Kahn's algorithm over the present nodes. Each wave is
// sorted by ID, which is ascending name order, so the result is
// deterministic for any input ordering.
func toposort(g Graph) *Topo {
	n := len(g.Edges)
	indeg := make([]int, len(g.Indeg))
	copy(indeg, g.Indeg)

	topo := &Topo{
		Order:   make([]ID, 0, n),
		Batches: make([][]ID, 0),
	}

	active := 0
	for i := range n {
		if g.Present[i] {
			active++
		}
	}

	current := make([]ID, 0, n)
	for i := range n {
		if !g.Present[i] || indeg[i] != 0 {
			continue
		}
		id, err := safecast.Conv[ID](i)
		if err != nil {
			panic(fmt.Errorf("plugin id overflow: %w", err))
		}
		current = append(current, id)
	}
	slices.Sort(current)

	visited := 0
	for len(current) > 0 {
		batch := make([]ID, len(current))
		copy(batch, current)
		topo.Batches = append(topo.Batches, batch)

		next := make([]ID, 0)
		for _, id := range batch {
			topo.Order = append(topo.Order, id)
			visited++
			for _, to := range g.Edges[int(id)] {
				if !g.Present[int(to)] {
					continue
				}
				indeg[int(to)]--
				if indeg[int(to)] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if visited != active {
		topo.Cyclic = true
		for i := range n {
			if !g.Present[i] || indeg[i] == 0 {
				continue
			}
			id, err := safecast.Conv[ID](i)
			if err != nil {
				panic(fmt.Errorf("plugin id overflow: %w", err))
			}
			topo.Stuck = append(topo.Stuck, id)
		}
		slices.Sort(topo.Stuck)
	}
	return topo
}
