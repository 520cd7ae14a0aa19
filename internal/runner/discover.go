package runner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// SQLExt is the extension of files picked up from directories.
const SQLExt = ".sql"

// Discover expands paths into the list of SQL files to lint.
//
// Files named explicitly are kept whatever their extension. Directories are
// walked recursively for *.sql files, skipping hidden directories. A file
// is dropped when one of the exclude globs (filepath.Match syntax) matches
// its slash-separated path, its path relative to the walked directory or its
// base name. The result is sorted and free of
// duplicates.
func Discover(paths, exclude []string) ([]string, error) {
	for _, pattern := range exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}

	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !info.IsDir() {
			if !excluded(p, "", exclude) {
				files = append(files, filepath.Clean(p))
			}
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			rel, _ := filepath.Rel(p, path)
			if filepath.Ext(path) == SQLExt && !excluded(path, rel, exclude) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", p, err)
		}
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

// excluded matches patterns against the path as given, the path relative
// to the walked directory and the base name.
func excluded(path, rel string, patterns []string) bool {
	names := []string{filepath.ToSlash(path), filepath.Base(path)}
	if rel != "" {
		names = append(names, filepath.ToSlash(rel))
	}
	for _, pattern := range patterns {
		for _, name := range names {
			if ok, _ := filepath.Match(pattern, name); ok {
				return true
			}
		}
	}
	return false
}
