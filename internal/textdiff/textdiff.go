// Package textdiff computes line-based unified diffs. The edit script
// comes from a longest-common-subsequence table over lines, so unchanged
// regions are preserved exactly; output follows standard unified-diff
// semantics and is format-agnostic.
package textdiff

import (
	"fmt"
	"strings"
)

type OpKind uint8

const (
	OpEqual OpKind = iota
	OpDelete
	OpInsert
)

// Line is one line of the edit script, text without the trailing
// newline.
type Line struct {
	Kind OpKind
	Text string
}

// Hunk is one contiguous change region with surrounding context.
type Hunk struct {
	OldStart, OldLines int // 1-based start, count
	NewStart, NewLines int
	Lines              []Line
}

// Diff is a unified diff between two texts.
type Diff struct {
	OldName, NewName string
	Hunks            []Hunk
	// Notes carry the structural operations that produced the change,
	// for report rendering. They are not part of the wire format.
	Notes []string

	oldNoEOL, newNoEOL bool
	oldTotal, newTotal int
}

// Changed reports whether the diff contains any hunks.
func (d *Diff) Changed() bool { return len(d.Hunks) > 0 }

func splitLines(text string) (lines []string, noEOL bool) {
	if text == "" {
		return nil, false
	}
	noEOL = !strings.HasSuffix(text, "\n")
	lines = strings.Split(text, "\n")
	if !noEOL {
		lines = lines[:len(lines)-1]
	}
	return lines, noEOL
}

// Script computes the full LCS edit script between two texts.
func Script(oldText, newText string) []Line {
	oldLines, _ := splitLines(oldText)
	newLines, _ := splitLines(newText)

	n, m := len(oldLines), len(newLines)
	// lcs[i][j] = LCS length of oldLines[i:] and newLines[j:]
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if oldLines[i] == newLines[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var script []Line
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case oldLines[i] == newLines[j]:
			script = append(script, Line{Kind: OpEqual, Text: oldLines[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			script = append(script, Line{Kind: OpDelete, Text: oldLines[i]})
			i++
		default:
			script = append(script, Line{Kind: OpInsert, Text: newLines[j]})
			j++
		}
	}
	for ; i < n; i++ {
		script = append(script, Line{Kind: OpDelete, Text: oldLines[i]})
	}
	for ; j < m; j++ {
		script = append(script, Line{Kind: OpInsert, Text: newLines[j]})
	}
	return script
}

// DefaultContext is the number of unchanged lines kept around each
// change region.
const DefaultContext = 3

// Unified builds a unified diff with DefaultContext context lines.
func Unified(oldName, newName, oldText, newText string) *Diff {
	return UnifiedContext(oldName, newName, oldText, newText, DefaultContext)
}

// UnifiedContext builds a unified diff with the given context width.
func UnifiedContext(oldName, newName, oldText, newText string, context int) *Diff {
	oldLines, oldNoEOL := splitLines(oldText)
	newLines, newNoEOL := splitLines(newText)
	d := &Diff{
		OldName:  oldName,
		NewName:  newName,
		oldNoEOL: oldNoEOL,
		newNoEOL: newNoEOL,
		oldTotal: len(oldLines),
		newTotal: len(newLines),
	}

	script := Script(oldText, newText)

	// group script entries into hunks separated by > 2*context equal lines
	type region struct{ start, end int } // script index range, exclusive end
	var regions []region
	idx := 0
	for idx < len(script) {
		if script[idx].Kind == OpEqual {
			idx++
			continue
		}
		start := idx
		end := idx
		gap := 0
		for k := idx; k < len(script); k++ {
			if script[k].Kind == OpEqual {
				gap++
				if gap > 2*context {
					break
				}
			} else {
				gap = 0
				end = k + 1
			}
		}
		regions = append(regions, region{start, end})
		idx = end
	}

	oldLine, newLine := 1, 1
	pos := 0
	for _, r := range regions {
		// advance counters up to the context window before the region
		ctxStart := r.start - context
		if ctxStart < 0 {
			ctxStart = 0
		}
		for ; pos < ctxStart; pos++ {
			switch script[pos].Kind {
			case OpEqual:
				oldLine++
				newLine++
			case OpDelete:
				oldLine++
			case OpInsert:
				newLine++
			}
		}
		ctxEnd := r.end + context
		if ctxEnd > len(script) {
			ctxEnd = len(script)
		}

		h := Hunk{OldStart: oldLine, NewStart: newLine}
		for ; pos < ctxEnd; pos++ {
			ln := script[pos]
			h.Lines = append(h.Lines, ln)
			switch ln.Kind {
			case OpEqual:
				h.OldLines++
				h.NewLines++
				oldLine++
				newLine++
			case OpDelete:
				h.OldLines++
				oldLine++
			case OpInsert:
				h.NewLines++
				newLine++
			}
		}
		d.Hunks = append(d.Hunks, h)
	}
	return d
}

const noEOLMarker = "\\ No newline at end of file\n"

// String renders the diff in standard unified format. An empty diff
// renders as an empty string.
func (d *Diff) String() string {
	if !d.Changed() {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n", d.OldName)
	fmt.Fprintf(&sb, "+++ %s\n", d.NewName)
	for _, h := range d.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
		oldN, newN := h.OldStart-1, h.NewStart-1
		for _, ln := range h.Lines {
			switch ln.Kind {
			case OpEqual:
				sb.WriteByte(' ')
				oldN++
				newN++
			case OpDelete:
				sb.WriteByte('-')
				oldN++
			case OpInsert:
				sb.WriteByte('+')
				newN++
			}
			sb.WriteString(ln.Text)
			sb.WriteByte('\n')
			// the marker belongs directly after the file's last line,
			// and only when that line is shown in a hunk
			switch {
			case ln.Kind == OpDelete && d.oldNoEOL && oldN == d.oldTotal:
				sb.WriteString(noEOLMarker)
			case ln.Kind == OpInsert && d.newNoEOL && newN == d.newTotal:
				sb.WriteString(noEOLMarker)
			case ln.Kind == OpEqual && oldN == d.oldTotal && newN == d.newTotal && (d.oldNoEOL || d.newNoEOL):
				sb.WriteString(noEOLMarker)
			}
		}
	}
	return sb.String()
}

// Stats returns the number of inserted and deleted lines.
func (d *Diff) Stats() (ins, del int) {
	for _, h := range d.Hunks {
		for _, ln := range h.Lines {
			switch ln.Kind {
			case OpInsert:
				ins++
			case OpDelete:
				del++
			}
		}
	}
	return ins, del
}
