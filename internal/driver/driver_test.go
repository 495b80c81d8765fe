package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"nvcfg/internal/catalog"
	"nvcfg/internal/diag"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return root
}

func TestListLuaFilesSorted(t *testing.T) {
	root := writeTree(t, map[string]string{
		"init.lua":            "",
		"lua/plugins/ui.lua":  "",
		"lua/options.lua":     "",
		"lazy/cloned/mod.lua": "",
		"README.md":           "",
		"lua/plugins/lsp.lua": "",
	})
	files, err := ListLuaFiles(root)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{
		filepath.Join(root, "init.lua"),
		filepath.Join(root, "lua", "options.lua"),
		filepath.Join(root, "lua", "plugins", "lsp.lua"),
		filepath.Join(root, "lua", "plugins", "ui.lua"),
	}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestParseDir(t *testing.T) {
	root := writeTree(t, map[string]string{
		"init.lua":        "vim.opt.number = true\n",
		"lua/options.lua": "vim.opt.tabstop = 4\n",
	})
	fs, results, err := ParseDir(context.Background(), root, 100, 2)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if fs.Len() != 2 || len(results) != 2 {
		t.Fatalf("files = %d, results = %d", fs.Len(), len(results))
	}
	for _, r := range results {
		if r.Chunk == nil {
			t.Fatalf("%s: no chunk", r.Path)
		}
		if r.Bag.HasErrors() {
			t.Fatalf("%s: %+v", r.Path, r.Bag.Items())
		}
	}
}

func TestValidateDirClean(t *testing.T) {
	root := writeTree(t, map[string]string{
		"init.lua": `vim.opt.tabstop = 4
require("lazy").setup({
  { "b/two.nvim" },
  { "a/one.nvim", dependencies = { "b/two.nvim" } },
})
`,
	})
	res, err := ValidateDir(context.Background(), root, Options{})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !res.Report.Success {
		t.Fatalf("success = false: %+v", res.Report.Diagnostics)
	}
	if len(res.Report.LoadOrder) != 2 || res.Report.LoadOrder[0] != "b/two.nvim" {
		t.Fatalf("load order = %v", res.Report.LoadOrder)
	}
}

func TestValidateDirReportsAcrossFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"init.lua":        "vim.opt.nosuchoption = 1\n",
		"lua/bad.lua":     "vim.opt. = (((\n",
		"lua/plugins.lua": "require(\"lazy\").setup({ { \"a/x.nvim\" } })\n",
	})
	res, err := ValidateDir(context.Background(), root, Options{})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if res.Report.Success {
		t.Fatalf("expected failure")
	}
	var sawSyntax, sawSemantic bool
	for _, d := range res.Report.Diagnostics {
		switch d.Code.Category() {
		case diag.CategorySyntax:
			sawSyntax = true
		case diag.CategorySemantic:
			sawSemantic = true
		}
	}
	if !sawSyntax || !sawSemantic {
		t.Fatalf("stages missing from report: syntax=%v semantic=%v", sawSyntax, sawSemantic)
	}
	// the healthy plugin file still resolved
	if len(res.Report.LoadOrder) != 1 {
		t.Fatalf("load order = %v", res.Report.LoadOrder)
	}
}

func TestValidateDirUsesCache(t *testing.T) {
	root := writeTree(t, map[string]string{
		"init.lua": "vim.opt.tabstop = 4\nrequire(\"lazy\").setup({ { \"a/x.nvim\" } })\n",
	})
	cache, err := catalog.OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("cache: %v", err)
	}

	first, err := ValidateDir(context.Background(), root, Options{Cache: cache})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := ValidateDir(context.Background(), root, Options{Cache: cache})
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if !first.Report.Success || !second.Report.Success {
		t.Fatalf("success = %v / %v", first.Report.Success, second.Report.Success)
	}
	if len(second.Report.LoadOrder) != 1 || second.Report.LoadOrder[0] != "a/x.nvim" {
		t.Fatalf("cached run load order = %v", second.Report.LoadOrder)
	}
}

func TestParsePath(t *testing.T) {
	root := writeTree(t, map[string]string{"init.lua": "vim.opt.wrap = false\n"})
	_, res, err := ParsePath(filepath.Join(root, "init.lua"), 100)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.Chunk == nil || res.Bag.HasErrors() {
		t.Fatalf("result = %+v", res)
	}
}
