// Package discovery finds documented kustomize directories under a root.
//
// A directory qualifies when it contains a kustomization manifest
// (kustomization.yaml or kustomization.yml) alongside a README.md. The
// resulting table maps normalized forward-slash relative paths to absolute
// directories and is built once, before any page is rendered, then treated
// as read-only.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Manifest filenames that mark a kustomize directory.
var kustomizationNames = []string{"kustomization.yaml", "kustomization.yml"}

const readmeName = "README.md"

// Table maps a normalized relative path to its absolute kustomize directory.
type Table map[string]string

// Find walks root and returns the absolute paths of all qualifying
// kustomize directories, sorted.
func Find(root string) ([]string, error) {
	var dirs []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if qualifies(path) {
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			dirs = append(dirs, abs)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	sort.Strings(dirs)
	return dirs, nil
}

// BuildTable discovers kustomize directories under root and keys them by
// their normalized relative path.
func BuildTable(root string) (Table, error) {
	dirs, err := Find(root)
	if err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	table := make(Table, len(dirs))
	for _, dir := range dirs {
		rel, err := filepath.Rel(absRoot, dir)
		if err != nil {
			return nil, err
		}
		table[filepath.ToSlash(rel)] = dir
	}
	return table, nil
}

// Keys returns the table's keys in sorted order.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func qualifies(dir string) bool {
	if !fileExists(filepath.Join(dir, readmeName)) {
		return false
	}
	for _, name := range kustomizationNames {
		if fileExists(filepath.Join(dir, name)) {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
