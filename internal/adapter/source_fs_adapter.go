// Package adapter contains infrastructure adapters for the undercover CLI.
package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	m "github.com/NeatNerdPrime/undercover/internal/model"
	"golang.org/x/mod/modfile"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when locating and writing coverage reports. It hides direct `os`
// access so the check and export logic can be tested without touching the disk.
//
//nolint:interfacebloat // A richer interface keeps check and export logic decoupled from os/fs.
type SourceFSAdapter interface {
	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path so the domain can check existence or
	// distinguish between files and directories when necessary.
	FileInfo(path m.Path) (os.FileInfo, error)

	// Exists reports whether path names an existing regular file.
	Exists(path m.Path) bool

	// FindProjectRoot searches for go.mod walking up the directory tree.
	FindProjectRoot(startPath m.Path) (m.Path, error)

	// ModulePath returns the module path declared in root/go.mod.
	ModulePath(root m.Path) (string, error)

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path m.Path) error

	// WriteFile writes content to a file with the given permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// AbsPath returns an absolute, cleaned representation of path.
	AbsPath(path m.Path) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the orchestrator and exporter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	// #nosec G304 - reading user-provided project and report files is the point
	return os.ReadFile(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// Exists reports whether path is an existing regular file.
func (a *LocalSourceFSAdapter) Exists(path m.Path) bool {
	if path == "" {
		return false
	}

	info, err := os.Stat(string(path))
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}

// FindProjectRoot searches for go.mod file walking up the directory tree.
// startPath may be a file or a directory.
func (a *LocalSourceFSAdapter) FindProjectRoot(startPath m.Path) (m.Path, error) {
	dir, err := filepath.Abs(string(startPath))
	if err != nil {
		return "", err
	}

	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return m.Path(dir), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found in any parent directory of %s", startPath)
		}

		dir = parent
	}
}

// ModulePath reads root/go.mod and returns its module path.
func (a *LocalSourceFSAdapter) ModulePath(root m.Path) (string, error) {
	goModPath := filepath.Join(string(root), "go.mod")

	// #nosec G304 - go.mod of the project under inspection
	content, err := os.ReadFile(goModPath)
	if err != nil {
		return "", err
	}

	modulePath := modfile.ModulePath(content)
	if modulePath == "" {
		return "", fmt.Errorf("no module directive in %s", goModPath)
	}

	return modulePath, nil
}

// MkdirAll creates path and any missing parents.
func (a *LocalSourceFSAdapter) MkdirAll(path m.Path) error {
	return os.MkdirAll(string(path), 0o750)
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

// AbsPath returns the absolute form of path.
func (a *LocalSourceFSAdapter) AbsPath(path m.Path) (m.Path, error) {
	abs, err := filepath.Abs(string(path))
	if err != nil {
		return "", err
	}

	return m.Path(abs), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
