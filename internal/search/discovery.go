package search

import (
	"io/fs"
	"os"
	"path/filepath"
)

// discoverAllFiles implements the AllFiles discovery mode: a recursive directory
// walk rooted at root, streaming one path at a time to emit. "." and ".."
// are never surfaced by fs.WalkDir; ".git" and any name in excludeDirs are
// pruned. Symlinks are never followed. Only regular files are emitted.
func discoverAllFiles(root string, excludeDirs []string, emit func(path string) bool) error {
	excluded := make(map[string]bool, len(excludeDirs)+1)
	excluded[".git"] = true
	for _, d := range excludeDirs {
		excluded[d] = true
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // non-fatal: skip the unreadable entry, keep walking
		}

		if d.IsDir() {
			if path != root && excluded[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if !emit(path) {
			return filepath.SkipAll
		}
		return nil
	})
}
