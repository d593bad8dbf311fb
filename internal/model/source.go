// Package model defines the data structures shared by the undercover layers.
package model

import (
	"path/filepath"
	"strings"
	"time"
)

// Path represents a file system path.
type Path string

// Slash returns the path with forward slashes regardless of the host separator.
func (p Path) Slash() string {
	return filepath.ToSlash(string(p))
}

// Base returns the last element of the path.
func (p Path) Base() string {
	return filepath.Base(string(p))
}

// SourceFile is a file seen by the coverage collector together with its
// tool-native coverage detail.
type SourceFile struct {
	// Filename is the absolute path of the file when it lives in the module,
	// otherwise whatever name the coverage tool reported.
	Filename Path
	Coverage FileCoverage
}

// ChangedFile is a file reported by the change set.
type ChangedFile struct {
	// Path is relative to the project root and uses forward slashes.
	Path    string
	ModTime time.Time
}

// RelPath strips root from p and normalizes the result to a forward-slash
// path without a leading separator. Paths outside root are only normalized.
func RelPath(root, p Path) string {
	rootStr := strings.TrimSuffix(root.Slash(), "/")
	path := p.Slash()

	if rootStr != "" && strings.HasPrefix(path, rootStr+"/") {
		path = path[len(rootStr):]
	}

	return strings.TrimPrefix(path, "/")
}

// StripRoot removes the root prefix and its trailing separator from p. Paths
// outside root are returned with forward slashes and otherwise unmodified.
func StripRoot(root, p Path) string {
	rootStr := strings.TrimSuffix(root.Slash(), "/")
	path := p.Slash()

	if rootStr == "" {
		return path
	}

	return strings.TrimPrefix(path, rootStr+"/")
}
