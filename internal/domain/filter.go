package domain

import (
	"log/slog"

	m "github.com/NeatNerdPrime/undercover/internal/model"
)

// FileFilter is the coverage collector's own rule for dropping files from a
// result.
type FileFilter interface {
	Filter(files []m.SourceFile) []m.SourceFile
}

type globFilter struct {
	root    m.Path
	exclude []string
}

// NewGlobFilter drops files whose root-relative path matches any of the
// exclude patterns. Files are never modified.
func NewGlobFilter(root m.Path, exclude []string) FileFilter {
	return &globFilter{root: root, exclude: exclude}
}

func (f *globFilter) Filter(files []m.SourceFile) []m.SourceFile {
	kept := make([]m.SourceFile, 0, len(files))

	for _, file := range files {
		relPath := m.RelPath(f.root, file.Filename)
		if MatchAnyGlob(f.exclude, relPath) {
			slog.Debug("coverage filter dropped file", "file", relPath)
			continue
		}

		kept = append(kept, file)
	}

	return kept
}
