package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nminhducit/rechronos/internal/journal"
)

// Discover walks root, collects files whose extension is in exts
// (lowercased, leading dot), skips the mapping log itself, and returns the
// paths sorted lexicographically for deterministic processing order. When
// recursive is false, subdirectories are pruned.
func Discover(root string, recursive bool, exts map[string]bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recursive && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == journal.DefaultFileName {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if exts[ext] {
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
