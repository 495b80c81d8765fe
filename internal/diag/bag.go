package diag

import (
	"sort"

	"nvcfg/internal/source"
)

// Bag accumulates diagnostics up to a fixed cap. A cap of 0 means
// unlimited.
type Bag struct {
	items   []Diagnostic
	max     int
	dropped int
}

// NewBag creates a bag; maxCount <= 0 disables the cap.
func NewBag(maxCount int) *Bag {
	return &Bag{max: maxCount}
}

// Add appends d and reports whether it was stored.
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Merge moves every diagnostic from other into b.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	for _, d := range other.items {
		b.Add(d)
	}
}

func (b *Bag) Len() int { return len(b.items) }

// Dropped reports how many diagnostics were rejected by the cap.
func (b *Bag) Dropped() int { return b.dropped }

// Items returns the accumulated diagnostics in insertion order
// (or sorted order after Sort).
func (b *Bag) Items() []Diagnostic { return b.items }

func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity == SevError {
			return true
		}
	}
	return false
}

func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity == SevWarning {
			return true
		}
	}
	return false
}

// CountSeverity returns how many diagnostics carry the given severity.
func (b *Bag) CountSeverity(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity == sev {
			n++
		}
	}
	return n
}

// Sort orders diagnostics by file, then span start, then span end, then
// severity (errors first), then code. Stable output is part of the
// contract: the same input always renders the same report.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup removes diagnostics that share code and primary span, keeping
// the first occurrence. Call Sort first for deterministic results.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		file source.FileID
		s, e uint32
	}
	seen := make(map[key]struct{}, len(b.items))
	out := b.items[:0]
	for _, d := range b.items {
		k := key{d.Code, d.Primary.File, d.Primary.Start, d.Primary.End}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, d)
	}
	b.items = out
}
