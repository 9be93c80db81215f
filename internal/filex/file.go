// Package filex holds filesystem helpers for the local object store.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates root/elem... (and parents) and returns its path. A
// relative root is resolved against the working directory.
func EnsureDir(root string, elem ...string) (string, error) {
	if !filepath.IsAbs(root) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		root = filepath.Join(cwd, root)
	}

	dir := filepath.Join(append([]string{root}, elem...)...)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// SafeJoin joins a slash-separated relative name onto root and refuses
// names that would escape it.
func SafeJoin(root, name string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(name))
	if clean == string(filepath.Separator) || strings.Contains(name, "\x00") {
		return "", fmt.Errorf("invalid path %q", name)
	}
	return filepath.Join(root, clean), nil
}

// WriteFileAtomic writes data to a temp file next to path and renames it
// into place, creating parent directories as needed.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
