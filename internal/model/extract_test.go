package model

import (
	"testing"

	"nvcfg/internal/parser"
	"nvcfg/internal/source"
)

func extract(t *testing.T, src string) *File {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("init.lua", []byte(src))
	res := parser.ParseFile(fs.Get(id), parser.Options{})
	return Extract(res.Chunk, "init.lua")
}

func TestExtractOptions(t *testing.T) {
	m := extract(t, "vim.opt.tabstop = 4\nvim.o.shiftwidth = 2\nvim.g.mapleader = ' '\n")
	if len(m.Options) != 3 {
		t.Fatalf("option count = %d, want 3", len(m.Options))
	}
	first := m.Options[0]
	if first.Key != "tabstop" || first.Scope != "opt" {
		t.Fatalf("first = %+v", first)
	}
	if first.Value.Kind != ValueNumber || first.Value.Num != 4 {
		t.Fatalf("value = %+v", first.Value)
	}
	if m.Options[2].Value.Kind != ValueString || m.Options[2].Value.Str != " " {
		t.Fatalf("mapleader = %+v", m.Options[2].Value)
	}
}

func TestExtractAliasedOptions(t *testing.T) {
	m := extract(t, "local opt = vim.opt\nopt.number = true\nopt.relativenumber = false\n")
	if len(m.Options) != 2 {
		t.Fatalf("option count = %d, want 2", len(m.Options))
	}
	if m.Options[0].Key != "number" || m.Options[0].Scope != "opt" {
		t.Fatalf("aliased option = %+v", m.Options[0])
	}
	if m.Options[0].Value.Kind != ValueBool || !m.Options[0].Value.Bool {
		t.Fatalf("value = %+v", m.Options[0].Value)
	}
}

func TestExtractBracketKey(t *testing.T) {
	m := extract(t, `vim.opt["expandtab"] = true`)
	if len(m.Options) != 1 || m.Options[0].Key != "expandtab" {
		t.Fatalf("options = %+v", m.Options)
	}
}

func TestIgnoresUnrelatedAssignments(t *testing.T) {
	m := extract(t, "x = 1\nfoo.bar = 2\nvim.keymap = nil\n")
	if len(m.Options) != 0 {
		t.Fatalf("unexpected options: %+v", m.Options)
	}
}

const lazySrc = `require("lazy").setup({
  { "folke/which-key.nvim", event = "VeryLazy" },
  {
    "nvim-telescope/telescope.nvim",
    dependencies = { "nvim-lua/plenary.nvim" },
    enabled = true,
    opts = {},
  },
  "nvim-lua/plenary.nvim",
})
`

func TestExtractPlugins(t *testing.T) {
	m := extract(t, lazySrc)
	if len(m.Plugins) != 3 {
		t.Fatalf("plugin count = %d, want 3: %+v", len(m.Plugins), m.Plugins)
	}
	wk := m.Plugins[0]
	if wk.Name != "folke/which-key.nvim" {
		t.Fatalf("name = %q", wk.Name)
	}
	if len(wk.Events) != 1 || wk.Events[0] != "VeryLazy" {
		t.Fatalf("events = %v", wk.Events)
	}
	tel := m.Plugins[1]
	if len(tel.Dependencies) != 1 || tel.Dependencies[0] != "nvim-lua/plenary.nvim" {
		t.Fatalf("dependencies = %v", tel.Dependencies)
	}
	if tel.Enabled == nil || !*tel.Enabled {
		t.Fatalf("enabled = %v", tel.Enabled)
	}
	if !tel.HasOpts {
		t.Fatalf("expected opts table")
	}
	bare := m.Plugins[2]
	if bare.Name != "nvim-lua/plenary.nvim" || len(bare.Dependencies) != 0 {
		t.Fatalf("bare spec = %+v", bare)
	}
}

func TestExtractNestedSpecList(t *testing.T) {
	m := extract(t, `require("lazy").setup({ spec = { { "a/x.nvim" }, { "b/y.nvim", dependencies = { "a/x.nvim" } } } })`)
	if len(m.Plugins) != 2 {
		t.Fatalf("plugin count = %d, want 2", len(m.Plugins))
	}
	if m.Plugins[1].Dependencies[0] != "a/x.nvim" {
		t.Fatalf("deps = %v", m.Plugins[1].Dependencies)
	}
}

func TestExtractEventList(t *testing.T) {
	m := extract(t, `require("lazy").setup({ { "x/a", event = { "BufRead", "InsertEnter" } } })`)
	if len(m.Plugins) != 1 {
		t.Fatalf("plugin count = %d", len(m.Plugins))
	}
	ev := m.Plugins[0].Events
	if len(ev) != 2 || ev[0] != "BufRead" || ev[1] != "InsertEnter" {
		t.Fatalf("events = %v", ev)
	}
}

func TestDecodeString(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`"plain"`, "plain"},
		{`'single'`, "single"},
		{`"a\nb"`, "a\nb"},
		{`'it\'s'`, "it's"},
		{"[[long]]", "long"},
		{"[==[lv two]==]", "lv two"},
	}
	for _, tc := range cases {
		if got := DecodeString(tc.in); got != tc.want {
			t.Fatalf("DecodeString(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolveNegativeNumber(t *testing.T) {
	m := extract(t, "vim.opt.scrolloff = -1\n")
	if len(m.Options) != 1 {
		t.Fatalf("options = %+v", m.Options)
	}
	v := m.Options[0].Value
	if v.Kind != ValueNumber || v.Num != -1 {
		t.Fatalf("value = %+v", v)
	}
}
