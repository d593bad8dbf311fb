package domain

import (
	"path"
	"strings"
)

// MatchGlob reports whether relPath (forward slashes, relative to the project
// root) matches pattern. The pattern is tried against the whole path, its base
// name and each of its leading directories, so "*.go" matches "lib/a.go" and
// "vendor/*" matches "vendor/x/y.go".
func MatchGlob(pattern, relPath string) bool {
	if ok, _ := path.Match(pattern, relPath); ok {
		return true
	}

	if ok, _ := path.Match(pattern, path.Base(relPath)); ok {
		return true
	}

	for i := strings.Index(relPath, "/"); i >= 0; {
		if ok, _ := path.Match(pattern, relPath[:i]); ok {
			return true
		}

		next := strings.Index(relPath[i+1:], "/")
		if next < 0 {
			break
		}

		i += next + 1
	}

	return false
}

// MatchAnyGlob reports whether any pattern matches relPath.
func MatchAnyGlob(patterns []string, relPath string) bool {
	for _, pattern := range patterns {
		if MatchGlob(pattern, relPath) {
			return true
		}
	}

	return false
}

// SelectedByGlobs applies include patterns first, then exclude patterns.
func SelectedByGlobs(include, exclude []string, relPath string) bool {
	return MatchAnyGlob(include, relPath) && !MatchAnyGlob(exclude, relPath)
}
