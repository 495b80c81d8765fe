// Package driver ties the pipeline together for directory-level
// operations: discover config files, parse them in parallel, extract
// models through the cache, and hand everything to validation.
package driver

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// ListLuaFiles returns every *.lua file under root, sorted for a
// deterministic scan order. Plugin manager state directories are
// skipped.
func ListLuaFiles(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// lazy.nvim clones plugins into these; not config
			switch d.Name() {
			case "lazy", "pack", ".git":
				if path != root {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if strings.HasSuffix(path, ".lua") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
