package plugin

const (
	colorWhite = iota
	colorGray
	colorBlack
)

// findCycles runs a three-color DFS and returns every cycle it meets,
// each rotated to start at its smallest ID. Roots are taken in
// ascending ID order, so the result is deterministic.
func findCycles(g Graph) [][]ID {
	n := len(g.Edges)
	color := make([]uint8, n)
	stack := make([]ID, 0, n)
	onStack := make([]int, n) // stack position + 1, 0 when absent
	var cycles [][]ID

	var visit func(ID)
	visit = func(u ID) {
		color[u] = colorGray
		stack = append(stack, u)
		onStack[u] = len(stack)

		for _, v := range g.Edges[int(u)] {
			if !g.Present[int(v)] {
				continue
			}
			switch color[v] {
			case colorWhite:
				visit(v)
			case colorGray:
				// back edge: the cycle is the stack slice from v to u.
				// Edges point dep -> dependent, so reverse the slice to
				// read each step as "depends on".
				pos := onStack[v] - 1
				cyc := make([]ID, len(stack)-pos)
				copy(cyc, stack[pos:])
				reverse(cyc)
				cycles = append(cycles, rotateToMin(cyc))
			}
		}

		onStack[u] = 0
		stack = stack[:len(stack)-1]
		color[u] = colorBlack
	}

	for i := range n {
		if g.Present[i] && color[i] == colorWhite {
			visit(ID(i))
		}
	}
	return cycles
}

func reverse(cyc []ID) {
	for i, j := 0, len(cyc)-1; i < j; i, j = i+1, j-1 {
		cyc[i], cyc[j] = cyc[j], cyc[i]
	}
}

func rotateToMin(cyc []ID) []ID {
	min := 0
	for i, id := range cyc {
		if id < cyc[min] {
			min = i
		}
	}
	if min == 0 {
		return cyc
	}
	out := make([]ID, 0, len(cyc))
	out = append(out, cyc[min:]...)
	out = append(out, cyc[:min]...)
	return out
}
