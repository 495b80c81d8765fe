// Package fswrite performs crash-safe config writes: content lands in
// a temp file first and replaces the target with a rename, optionally
// after saving a timestamped backup of the previous version.
package fswrite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// WriteAtomic replaces path with content. When backup is set and the
// file already exists, the old content is first copied to
// <name>.backup.<unix-ts>. Returns the backup path, empty when no
// backup was made.
func WriteAtomic(path string, content []byte, backup bool) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	backupPath := ""
	mode := os.FileMode(0o644)
	old, err := os.ReadFile(path)
	switch {
	case err == nil:
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode().Perm()
		}
		if backup {
			backupPath, err = writeBackup(path, old)
			if err != nil {
				return "", err
			}
		}
	case errors.Is(err, os.ErrNotExist):
		// first write, nothing to back up
	default:
		return "", err
	}

	tmp, err := os.CreateTemp(dir, ".nvcfg-*")
	if err != nil {
		return backupPath, err
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return backupPath, err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return backupPath, err
	}
	if err := tmp.Close(); err != nil {
		return backupPath, err
	}
	// CreateTemp makes the file 0600; the rename must not change the
	// target's permissions
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return backupPath, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return backupPath, err
	}
	return backupPath, nil
}

// writeBackup picks the first free <path>.backup.<ts>[.n] name.
func writeBackup(path string, content []byte) (string, error) {
	ts := time.Now().Unix()
	base := fmt.Sprintf("%s.backup.%d", path, ts)
	candidate := base
	for n := 1; ; n++ {
		if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
			break
		} else if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s.%d", base, n)
	}
	if err := os.WriteFile(candidate, content, 0o644); err != nil {
		return "", err
	}
	return candidate, nil
}

// Restore copies a backup over its target, keeping a backup of the
// current content so a restore is itself reversible.
func Restore(backupPath, target string) error {
	content, err := os.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}
	if _, err := WriteAtomic(target, content, true); err != nil {
		return fmt.Errorf("restore %s: %w", target, err)
	}
	return nil
}

// ListBackups returns the backups of path, newest first.
func ListBackups(path string) ([]string, error) {
	dir := filepath.Dir(path)
	prefix := filepath.Base(path) + ".backup."
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), prefix) {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out, nil
}
