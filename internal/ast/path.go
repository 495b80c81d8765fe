package ast

import (
	"strconv"
	"strings"
)

// Path addresses a node by index steps from the chunk root. The first
// step is a statement index; subsequent steps index into whatever child
// list the node at that level exposes (table fields, call arguments).
// Paths stay meaningful across unrelated edits, unlike byte offsets,
// and are the only back-reference the semantic layers keep into a tree.
type Path []int

func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, step := range p {
		sb.WriteByte('/')
		sb.WriteString(strconv.Itoa(step))
	}
	return sb.String()
}

// Child returns p extended by one step. The result shares no backing
// array with p.
func (p Path) Child(step int) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = step
	return out
}

func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}
