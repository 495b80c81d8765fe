package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"nvcfg/internal/model"
)

// Manifest is the optional nvcfg.toml project file sitting at (or
// above) the config root.
type Manifest struct {
	Config   ConfigSection   `toml:"config"`
	Validate ValidateSection `toml:"validate"`
	Apply    ApplySection    `toml:"apply"`
}

type ConfigSection struct {
	Root  string `toml:"root"`
	Entry string `toml:"entry"`
}

type ValidateSection struct {
	MaxDiagnostics int               `toml:"max_diagnostics"`
	ExtraOptions   map[string]string `toml:"extra_options"` // name -> type
	ExtraEvents    []string          `toml:"extra_events"`
}

type ApplySection struct {
	Backup *bool `toml:"backup"`
}

// DefaultManifest is what an absent nvcfg.toml means.
func DefaultManifest() Manifest {
	return Manifest{
		Config:   ConfigSection{Root: ".", Entry: "init.lua"},
		Validate: ValidateSection{MaxDiagnostics: 200},
	}
}

// LoadManifest parses an nvcfg.toml and fills in defaults for omitted
// fields.
func LoadManifest(path string) (Manifest, error) {
	m := DefaultManifest()
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("config", "root") && strings.TrimSpace(m.Config.Root) == "" {
		return Manifest{}, fmt.Errorf("%s: [config].root must not be empty", path)
	}
	if m.Validate.MaxDiagnostics <= 0 {
		m.Validate.MaxDiagnostics = 200
	}
	for name, typ := range m.Validate.ExtraOptions {
		if _, err := parseValueKind(typ); err != nil {
			return Manifest{}, fmt.Errorf("%s: option %q: %w", path, name, err)
		}
	}
	return m, nil
}

// FindManifest walks up from startDir to locate nvcfg.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "nvcfg.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// ExtraOptions converts manifest option entries into catalog entries.
func (m *Manifest) ExtraOptions() []Option {
	out := make([]Option, 0, len(m.Validate.ExtraOptions))
	for name, typ := range m.Validate.ExtraOptions {
		kind, err := parseValueKind(typ)
		if err != nil {
			continue // rejected at load time
		}
		out = append(out, Option{Name: name, Type: kind, Scope: ScopeGlobal})
	}
	return out
}

// WantBackup reports whether apply should keep a backup. Defaults to
// true.
func (m *Manifest) WantBackup() bool {
	if m.Apply.Backup == nil {
		return true
	}
	return *m.Apply.Backup
}

func parseValueKind(s string) (model.ValueKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bool", "boolean":
		return model.ValueBool, nil
	case "number":
		return model.ValueNumber, nil
	case "string":
		return model.ValueString, nil
	case "table":
		return model.ValueTable, nil
	}
	return model.ValueUnknown, fmt.Errorf("unknown option type %q", s)
}
