package textdiff

import (
	"strings"
	"testing"
)

// replay applies the edit script back onto the old text and must
// reconstruct the new text exactly.
func replay(script []Line, hadEOL bool) string {
	var sb strings.Builder
	for _, ln := range script {
		if ln.Kind == OpDelete {
			continue
		}
		sb.WriteString(ln.Text)
		sb.WriteByte('\n')
	}
	out := sb.String()
	if !hadEOL && out != "" {
		out = out[:len(out)-1]
	}
	return out
}

func TestScriptReconstructs(t *testing.T) {
	cases := []struct{ old, new string }{
		{"a\nb\nc\n", "a\nx\nc\n"},
		{"", "a\n"},
		{"a\n", ""},
		{"a\nb\nc\nd\ne\n", "a\nc\nd\nnew\ne\n"},
		{"same\n", "same\n"},
		{"no newline", "no newline at all"},
	}
	for _, tc := range cases {
		script := Script(tc.old, tc.new)
		got := replay(script, strings.HasSuffix(tc.new, "\n") || tc.new == "")
		if got != tc.new {
			t.Fatalf("replay(%q -> %q) = %q", tc.old, tc.new, got)
		}
	}
}

func TestUnifiedSingleLineChange(t *testing.T) {
	oldText := "vim.opt.number = true\nvim.opt.tabstop = 2\nvim.opt.wrap = false\n"
	newText := "vim.opt.number = true\nvim.opt.tabstop = 4\nvim.opt.wrap = false\n"

	d := Unified("a/init.lua", "b/init.lua", oldText, newText)
	if len(d.Hunks) != 1 {
		t.Fatalf("hunk count = %d, want 1", len(d.Hunks))
	}
	ins, del := d.Stats()
	if ins != 1 || del != 1 {
		t.Fatalf("stats = +%d -%d, want +1 -1", ins, del)
	}
	s := d.String()
	if !strings.Contains(s, "-vim.opt.tabstop = 2\n") || !strings.Contains(s, "+vim.opt.tabstop = 4\n") {
		t.Fatalf("diff body:\n%s", s)
	}
	if !strings.HasPrefix(s, "--- a/init.lua\n+++ b/init.lua\n") {
		t.Fatalf("missing file header:\n%s", s)
	}
}

func TestUnifiedNoChange(t *testing.T) {
	d := Unified("a", "b", "x\n", "x\n")
	if d.Changed() {
		t.Fatalf("expected empty diff")
	}
	if d.String() != "" {
		t.Fatalf("String = %q, want empty", d.String())
	}
}

func TestUnifiedHunkHeader(t *testing.T) {
	var oldB, newB strings.Builder
	for i := 0; i < 20; i++ {
		oldB.WriteString("line\n")
		newB.WriteString("line\n")
	}
	oldB.WriteString("old tail\n")
	newB.WriteString("new tail\n")

	d := Unified("a", "b", oldB.String(), newB.String())
	if len(d.Hunks) != 1 {
		t.Fatalf("hunk count = %d", len(d.Hunks))
	}
	h := d.Hunks[0]
	// 3 context lines + 1 change; change is at line 21
	if h.OldStart != 18 || h.OldLines != 4 || h.NewLines != 4 {
		t.Fatalf("hunk = %+v", h)
	}
}

func TestUnifiedSeparateHunks(t *testing.T) {
	oldText := "a0\nchange1\na1\na2\na3\na4\na5\na6\na7\na8\na9\nchange2\nz\n"
	newText := "a0\nCHANGED1\na1\na2\na3\na4\na5\na6\na7\na8\na9\nCHANGED2\nz\n"
	d := Unified("a", "b", oldText, newText)
	if len(d.Hunks) != 2 {
		t.Fatalf("hunk count = %d, want 2:\n%s", len(d.Hunks), d.String())
	}
}

func TestNoNewlineMarker(t *testing.T) {
	d := Unified("a", "b", "x", "y")
	s := d.String()
	if !strings.HasSuffix(s, "-x\n\\ No newline at end of file\n+y\n\\ No newline at end of file\n") {
		t.Fatalf("marker must follow each no-EOL line:\n%s", s)
	}
}

func TestNoNewlineMarkerOnlyWhenLastLineShown(t *testing.T) {
	// change on line 1, no-EOL tail far outside any hunk
	oldText := "change\nl1\nl2\nl3\nl4\nl5\nl6\nl7\ntail"
	newText := "CHANGED\nl1\nl2\nl3\nl4\nl5\nl6\nl7\ntail"
	d := Unified("a", "b", oldText, newText)
	if strings.Contains(d.String(), "No newline") {
		t.Fatalf("marker emitted although the last line is not in a hunk:\n%s", d.String())
	}
}

func TestNoNewlineMarkerAfterContextLastLine(t *testing.T) {
	oldText := "old\nkeep\ntail"
	newText := "new\nkeep\ntail"
	d := Unified("a", "b", oldText, newText)
	if !strings.HasSuffix(d.String(), " tail\n\\ No newline at end of file\n") {
		t.Fatalf("marker must directly follow the shared last line:\n%s", d.String())
	}
}
