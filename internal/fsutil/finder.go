// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPatterns select structure descriptions in HCL and YAML form.
var DefaultPatterns = []string{"**/*.mrs.hcl", "**/*.mrs.yaml", "**/*.mrs.yml"}

// ValidatePatterns reports the first pattern that is not a valid glob.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid glob pattern %q", p)
		}
	}
	return nil
}

// FindFiles resolves roots into a sorted, de-duplicated list of files. A root
// that is a file is taken as is; a directory is searched recursively for files
// whose slash-separated path relative to the directory matches any pattern.
func FindFiles(roots []string, patterns []string) ([]string, error) {
	if err := ValidatePatterns(patterns); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		fsys := os.DirFS(root)
		for _, pattern := range patterns {
			matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("searching %s for %q: %w", root, pattern, err)
			}
			for _, m := range matches {
				add(filepath.Join(root, filepath.FromSlash(m)))
			}
		}
	}

	slices.Sort(files)
	return files, nil
}

// Match reports whether path, relative to one of roots, matches any pattern.
// A path equal to a root always matches; paths outside every root never do.
func Match(roots []string, patterns []string, path string) bool {
	for _, root := range roots {
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if rel == "." {
			return true
		}
		rel = filepath.ToSlash(rel)
		for _, pattern := range patterns {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				return true
			}
		}
	}
	return false
}
