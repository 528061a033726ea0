// Package fsutil provides file system utility functions.
package fsutil

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// FindFiles returns the files under root matching the doublestar pattern,
// sorted for deterministic processing order. A root that is itself a file
// is returned as is.
func FindFiles(root string, pattern string) ([]string, error) {
	if pattern == "" {
		panic("pattern must not be empty")
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	matches, err := doublestar.Glob(os.DirFS(root), pattern)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		files = append(files, filepath.Join(root, m))
	}
	sort.Strings(files)
	return files, nil
}
