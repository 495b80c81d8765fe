package apply

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"nvcfg/internal/patch"
)

const seedConfig = `vim.opt.number = true
vim.opt.tabstop = 2

require("lazy").setup({
  { "nvim-lua/plenary.nvim" },
})
`

func seed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "init.lua")
	if err := os.WriteFile(path, []byte(seedConfig), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return path
}

func TestZeroValueOptionsIsDryRun(t *testing.T) {
	path := seed(t)
	res, err := File(path, patch.Patch{Ops: []patch.Op{
		patch.SetOption("tabstop", patch.Number(4)),
	}}, Options{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if res.Written || res.BackupPath != "" {
		t.Fatalf("written=%v backup=%q, zero-value options must not touch disk", res.Written, res.BackupPath)
	}
	got, _ := os.ReadFile(path)
	if string(got) != seedConfig {
		t.Fatalf("zero-value options modified the file:\n%s", got)
	}
}

func TestDryRunNeverWrites(t *testing.T) {
	path := seed(t)
	res, err := File(path, patch.Patch{Ops: []patch.Op{
		patch.SetOption("tabstop", patch.Number(4)),
	}}, Options{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !res.Success || res.Written {
		t.Fatalf("success=%v written=%v", res.Success, res.Written)
	}
	ins, del := res.Diff.Stats()
	if ins != 1 || del != 1 {
		t.Fatalf("diff = +%d -%d:\n%s", ins, del, res.Diff.String())
	}
	got, _ := os.ReadFile(path)
	if string(got) != seedConfig {
		t.Fatalf("dry run modified the file:\n%s", got)
	}
}

func TestDryRunDiffMatchesRealRun(t *testing.T) {
	path := seed(t)
	p := patch.Patch{Ops: []patch.Op{
		patch.SetOption("tabstop", patch.Number(4)),
		patch.AddPlugin(patch.PluginSpec{Name: "folke/which-key.nvim", Events: []string{"VeryLazy"}}),
	}}

	dry, err := File(path, p, Options{})
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	real, err := File(path, p, Options{Write: true})
	if err != nil {
		t.Fatalf("real run: %v", err)
	}
	if dry.Diff.String() != real.Diff.String() {
		t.Fatalf("diffs differ:\n--- dry\n%s\n--- real\n%s", dry.Diff.String(), real.Diff.String())
	}
	if !real.Written || real.BackupPath == "" {
		t.Fatalf("written=%v backup=%q", real.Written, real.BackupPath)
	}

	got, _ := os.ReadFile(path)
	if !strings.Contains(string(got), "vim.opt.tabstop = 4") ||
		!strings.Contains(string(got), "folke/which-key.nvim") {
		t.Fatalf("written content:\n%s", got)
	}
	old, _ := os.ReadFile(real.BackupPath)
	if string(old) != seedConfig {
		t.Fatalf("backup content:\n%s", old)
	}
}

func TestValidationFailureBlocksWrite(t *testing.T) {
	path := seed(t)
	res, err := File(path, patch.Patch{Ops: []patch.Op{
		patch.SetOption("tabstop", patch.String("wide")),
	}}, Options{Write: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if res.Success || res.Written {
		t.Fatalf("success=%v written=%v, want blocked", res.Success, res.Written)
	}
	got, _ := os.ReadFile(path)
	if string(got) != seedConfig {
		t.Fatalf("blocked apply modified the file:\n%s", got)
	}
}

func TestForceOverridesValidation(t *testing.T) {
	path := seed(t)
	res, err := File(path, patch.Patch{Ops: []patch.Op{
		patch.SetOption("tabstop", patch.String("wide")),
	}}, Options{Write: true, Force: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if res.Success {
		t.Fatalf("validation should still be reported as failed")
	}
	if !res.Written {
		t.Fatalf("force should write anyway")
	}
}

func TestNoChangeNoWrite(t *testing.T) {
	path := seed(t)
	info, _ := os.Stat(path)
	res, err := File(path, patch.Patch{Ops: []patch.Op{
		patch.AddPlugin(patch.PluginSpec{Name: "nvim-lua/plenary.nvim"}),
	}}, Options{Write: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if res.Written {
		t.Fatalf("no-op patch must not write")
	}
	if len(res.Diff.Hunks) != 0 {
		t.Fatalf("diff should be empty:\n%s", res.Diff.String())
	}
	after, _ := os.Stat(path)
	if after.ModTime() != info.ModTime() {
		t.Fatalf("file was rewritten")
	}
}

func TestNewFileApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.lua")
	res, err := File(path, patch.Patch{Ops: []patch.Op{
		patch.SetOption("number", patch.Bool(true)),
	}}, Options{Write: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !res.Written || res.BackupPath != "" {
		t.Fatalf("written=%v backup=%q", res.Written, res.BackupPath)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "vim.opt.number = true" {
		t.Fatalf("content = %q", got)
	}
}

func TestCRLFEndingsSurviveWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "init.lua")
	crlfSeed := strings.ReplaceAll(seedConfig, "\n", "\r\n")
	if err := os.WriteFile(path, []byte(crlfSeed), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	res, err := File(path, patch.Patch{Ops: []patch.Op{
		patch.SetOption("tabstop", patch.Number(4)),
	}}, Options{Write: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !res.Written {
		t.Fatalf("expected a write")
	}
	ins, del := res.Diff.Stats()
	if ins != 1 || del != 1 {
		t.Fatalf("diff = +%d -%d:\n%s", ins, del, res.Diff.String())
	}

	got, _ := os.ReadFile(path)
	want := strings.ReplaceAll(strings.Replace(seedConfig, "vim.opt.tabstop = 2", "vim.opt.tabstop = 4", 1), "\n", "\r\n")
	if string(got) != want {
		t.Fatalf("untouched lines must keep CRLF:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestConcurrentAppliesSerialize(t *testing.T) {
	path := seed(t)
	var wg sync.WaitGroup
	specs := []string{"a/one.nvim", "b/two.nvim", "c/three.nvim"}
	errs := make([]error, len(specs))
	for i, name := range specs {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			_, errs[i] = File(path, patch.Patch{Ops: []patch.Op{
				patch.AddPlugin(patch.PluginSpec{Name: name}),
			}}, Options{Write: true})
		}(i, name)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Fatalf("apply %d: %v", i, err)
		}
	}
	got, _ := os.ReadFile(path)
	for _, name := range specs {
		if !strings.Contains(string(got), name) {
			t.Fatalf("missing %q after concurrent applies:\n%s", name, got)
		}
	}
}
