package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"nvcfg/internal/diag"
	"nvcfg/internal/source"
)

func fixture(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	src := "vim.opt.number = true\nvim.opt.tabstop = \"wide\"\n"
	id := fs.AddVirtual("init.lua", []byte(src))

	bag := diag.NewBag(16)
	// span covers the "wide" literal on line 2
	start := uint32(strings.Index(src, "\"wide\""))
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemaOptionTypeMismatch,
		Message:  `option "tabstop" expects number, got string`,
		Primary:  source.Span{File: id, Start: start, End: start + 6},
		Notes: []diag.Note{{
			Span: source.Span{File: id, Start: start, End: start + 6},
			Msg:  "declared as a number option",
		}},
	})
	return bag, fs
}

func TestPretty(t *testing.T) {
	bag, fs := fixture(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	out := buf.String()

	if !strings.Contains(out, "init.lua:2:19: ERROR SEM3002:") {
		t.Fatalf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "vim.opt.tabstop = \"wide\"") {
		t.Fatalf("missing source line:\n%s", out)
	}
	if !strings.Contains(out, "^~~~~~") {
		t.Fatalf("missing underline:\n%s", out)
	}
	if !strings.Contains(out, "note: init.lua:2:19: declared as a number option") {
		t.Fatalf("missing note:\n%s", out)
	}
}

func TestJSON(t *testing.T) {
	bag, fs := fixture(t)
	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true})
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "SEM3002" || d.Severity != "ERROR" || d.Category != "semantic" {
		t.Fatalf("diagnostic = %+v", d)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 19 {
		t.Fatalf("location = %+v", d.Location)
	}
	if len(d.Notes) != 1 {
		t.Fatalf("notes = %+v", d.Notes)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	bag, fs := fixture(t)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.SemaUnknownOption,
		Message:  "second",
	})
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{Max: 1}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 1 {
		t.Fatalf("count = %d, want truncated to 1", out.Count)
	}
	if bag.Len() != 2 {
		t.Fatalf("bag itself must be untouched, len = %d", bag.Len())
	}
}
