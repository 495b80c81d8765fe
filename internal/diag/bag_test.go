package diag

import (
	"testing"

	"nvcfg/internal/source"
)

func TestBagCap(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		b.Add(Diagnostic{Severity: SevError, Code: SynUnexpectedToken})
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
	if b.Dropped() != 1 {
		t.Fatalf("Dropped = %d, want 1", b.Dropped())
	}
}

func TestBagSortDeterministic(t *testing.T) {
	b := NewBag(0)
	b.Add(Diagnostic{Severity: SevWarning, Code: SemaUnknownOption, Primary: source.Span{File: 1, Start: 20, End: 25}})
	b.Add(Diagnostic{Severity: SevError, Code: SynUnexpectedToken, Primary: source.Span{File: 1, Start: 5, End: 6}})
	b.Add(Diagnostic{Severity: SevError, Code: SynExpectAssign, Primary: source.Span{File: 1, Start: 5, End: 6}})
	b.Sort()

	items := b.Items()
	if items[0].Primary.Start != 5 {
		t.Fatalf("first diagnostic start = %d, want 5", items[0].Primary.Start)
	}
	if items[0].Code != SynUnexpectedToken {
		t.Fatalf("same-span order: got %v first, want lower code", items[0].Code)
	}
	if items[2].Code != SemaUnknownOption {
		t.Fatalf("last diagnostic = %v, want SemaUnknownOption", items[2].Code)
	}
}

func TestBagDedup(t *testing.T) {
	sp := source.Span{File: 1, Start: 3, End: 9}
	b := NewBag(0)
	b.Add(Diagnostic{Severity: SevError, Code: SynErrorNode, Primary: sp})
	b.Add(Diagnostic{Severity: SevError, Code: SynErrorNode, Primary: sp})
	b.Add(Diagnostic{Severity: SevError, Code: SynErrorNode, Primary: source.Span{File: 1, Start: 3, End: 10}})
	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("Len after Dedup = %d, want 2", b.Len())
	}
}

func TestBagDedupKeepsDistinctFiles(t *testing.T) {
	b := NewBag(0)
	b.Add(Diagnostic{Severity: SevError, Code: SynErrorNode, Primary: source.Span{File: source.FileID(0), Start: 3, End: 9}})
	b.Add(Diagnostic{Severity: SevError, Code: SynErrorNode, Primary: source.Span{File: source.FileID(1), Start: 3, End: 9}})
	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("Len after Dedup = %d, want 2: same span in different files is not a duplicate", b.Len())
	}
}

func TestBagHasErrors(t *testing.T) {
	b := NewBag(0)
	b.Add(Diagnostic{Severity: SevWarning, Code: SemaDuplicatePlugin})
	if b.HasErrors() {
		t.Fatalf("warning-only bag reports errors")
	}
	if !b.HasWarnings() {
		t.Fatalf("expected HasWarnings")
	}
	b.Add(Diagnostic{Severity: SevError, Code: DepCyclicDependency})
	if !b.HasErrors() {
		t.Fatalf("expected HasErrors")
	}
}

func TestCodeIDAndCategory(t *testing.T) {
	cases := []struct {
		code Code
		id   string
		cat  Category
	}{
		{LexUnterminatedString, "LEX1002", CategorySyntax},
		{SynUnexpectedToken, "SYN2001", CategorySyntax},
		{SemaUnknownOption, "SEM3001", CategorySemantic},
		{IOLoadFileError, "IO4001", CategoryIO},
		{DepCyclicDependency, "DEP5002", CategoryDependency},
		{PathMissingRoot, "RTP6001", CategoryRuntimePath},
		{TransformTargetNotFound, "TRF7001", CategoryTransform},
	}
	for _, tc := range cases {
		if got := tc.code.ID(); got != tc.id {
			t.Fatalf("ID(%d) = %q, want %q", tc.code, got, tc.id)
		}
		if got := tc.code.Category(); got != tc.cat {
			t.Fatalf("Category(%d) = %v, want %v", tc.code, got, tc.cat)
		}
	}
}

func TestBagReporter(t *testing.T) {
	b := NewBag(0)
	r := NewBagReporter(b)
	Error(r, SynUnexpectedToken, source.Span{File: 1, Start: 0, End: 1}, "unexpected 'then'")
	if b.Len() != 1 {
		t.Fatalf("Len = %d, want 1", b.Len())
	}
	d := b.Items()[0]
	if d.Severity != SevError || d.Code != SynUnexpectedToken {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
}
