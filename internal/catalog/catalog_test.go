package catalog

import (
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"

	"nvcfg/internal/model"
)

func TestOptionsLookup(t *testing.T) {
	opts := NewOptions(nil)
	o, ok := opts.Lookup("tabstop")
	if !ok {
		t.Fatalf("tabstop missing from catalog")
	}
	if o.Type != model.ValueNumber || o.Scope != ScopeBuffer {
		t.Fatalf("tabstop = %+v", o)
	}
	if _, ok := opts.Lookup("nosuchoption"); ok {
		t.Fatalf("nosuchoption should be unknown")
	}
}

func TestOptionsExtra(t *testing.T) {
	opts := NewOptions([]Option{{Name: "myplugin_mode", Type: model.ValueString}})
	if _, ok := opts.Lookup("myplugin_mode"); !ok {
		t.Fatalf("extra option not found")
	}
}

func TestEventsValid(t *testing.T) {
	ev := NewEvents(nil)
	for _, name := range []string{"VeryLazy", "BufReadPre", "InsertEnter", "FileType python"} {
		if !ev.Valid(name) {
			t.Fatalf("%q should be valid", name)
		}
	}
	if ev.Valid("NotAnEvent") {
		t.Fatalf("NotAnEvent should be invalid")
	}
}

func TestEventsExtra(t *testing.T) {
	ev := NewEvents([]string{"MyCustomEvent"})
	if !ev.Valid("MyCustomEvent") {
		t.Fatalf("extra event not recognized")
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nvcfg.toml")
	content := `
[config]
root = "nvim"
entry = "init.lua"

[validate]
max_diagnostics = 50
extra_events = ["MyEvent"]

[validate.extra_options]
fancy_mode = "bool"

[apply]
backup = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Config.Root != "nvim" || m.Validate.MaxDiagnostics != 50 {
		t.Fatalf("manifest = %+v", m)
	}
	if m.WantBackup() {
		t.Fatalf("backup should be disabled")
	}
	extra := m.ExtraOptions()
	if len(extra) != 1 || extra[0].Name != "fancy_mode" || extra[0].Type != model.ValueBool {
		t.Fatalf("extra options = %+v", extra)
	}
}

func TestLoadManifestBadOptionType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nvcfg.toml")
	content := "[validate.extra_options]\nbad = \"integer-ish\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadManifest(path); err == nil {
		t.Fatalf("expected error for unknown option type")
	}
}

func TestFindManifest(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	manifest := filepath.Join(root, "nvcfg.toml")
	if err := os.WriteFile(manifest, []byte("[config]\nroot = \".\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, ok, err := FindManifest(nested)
	if err != nil || !ok {
		t.Fatalf("FindManifest: ok=%v err=%v", ok, err)
	}
	if got != manifest {
		t.Fatalf("got %q, want %q", got, manifest)
	}
}

func TestDefaultManifestBackup(t *testing.T) {
	m := DefaultManifest()
	if !m.WantBackup() {
		t.Fatalf("backup should default to true")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	key := sha256.Sum256([]byte("vim.opt.tabstop = 4\n"))
	enabled := false
	in := &model.File{
		Path: "init.lua",
		Options: []model.OptionAssign{
			{Key: "tabstop", Scope: "opt", Value: model.Value{Kind: model.ValueNumber, Num: 4, Raw: "4"}},
		},
		Plugins: []model.PluginDecl{
			{Name: "a/b.nvim", Dependencies: []string{"c/d.nvim"}, Events: []string{"VeryLazy"}, Enabled: &enabled},
		},
	}
	if err := cache.Put(key, in); err != nil {
		t.Fatalf("put: %v", err)
	}

	out, hit, err := cache.Get(key)
	if err != nil || !hit {
		t.Fatalf("get: hit=%v err=%v", hit, err)
	}
	if out.Path != in.Path || len(out.Options) != 1 || len(out.Plugins) != 1 {
		t.Fatalf("roundtrip = %+v", out)
	}
	if out.Plugins[0].Enabled == nil || *out.Plugins[0].Enabled {
		t.Fatalf("enabled flag lost: %+v", out.Plugins[0])
	}

	var miss Digest
	miss[0] = 0xff
	if _, hit, err := cache.Get(miss); err != nil || hit {
		t.Fatalf("expected miss, hit=%v err=%v", hit, err)
	}
}
