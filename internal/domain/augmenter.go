package domain

import (
	"log/slog"
	"path/filepath"

	m "github.com/NeatNerdPrime/undercover/internal/model"
)

// CoverageExportAugmenter observes the collector's filter and turns a raw
// coverage result into a NormalizedCoverageExport.
type CoverageExportAugmenter struct {
	filter  FileFilter
	ignored *IgnoredFileSet
}

// NewCoverageExportAugmenter wraps filter and records what it drops into
// ignored. A nil ignored set disables tracking; exports then list no ignored
// files.
func NewCoverageExportAugmenter(filter FileFilter, ignored *IgnoredFileSet) *CoverageExportAugmenter {
	return &CoverageExportAugmenter{filter: filter, ignored: ignored}
}

// OnFilter runs the wrapped filter and returns its output unchanged. Files
// present in the input but not in the output are added to the ignored set.
func (a *CoverageExportAugmenter) OnFilter(files []m.SourceFile) []m.SourceFile {
	original := make([]m.Path, 0, len(files))
	for _, file := range files {
		original = append(original, file.Filename)
	}

	filtered := a.filter.Filter(files)

	if a.ignored == nil {
		return filtered
	}

	kept := make(map[m.Path]struct{}, len(filtered))
	for _, file := range filtered {
		kept[file.Filename] = struct{}{}
	}

	var removed []m.Path

	for _, name := range original {
		if _, ok := kept[name]; !ok {
			removed = append(removed, name)
		}
	}

	if added := a.ignored.Add(removed...); added > 0 {
		slog.Debug("recorded ignored files", "run", a.ignored.RunID(), "added", added, "total", a.ignored.Len())
	}

	return filtered
}

// Format builds the export: coverage keyed by root-relative path, the result
// creation time, the root and the ignored files relative to root.
func (a *CoverageExportAugmenter) Format(result m.CoverageResult, projectRoot m.Path) m.NormalizedCoverageExport {
	coverage := make(map[string]m.FileCoverage, len(result.Files))
	for _, file := range result.Files {
		coverage[m.RelPath(projectRoot, file.Filename)] = file.Coverage
	}

	ignored := []string{}
	for _, file := range a.ignored.Files() {
		ignored = append(ignored, m.StripRoot(projectRoot, file))
	}

	return m.NormalizedCoverageExport{
		Coverage: coverage,
		Meta: m.ExportMeta{
			Timestamp:    result.CreatedAt.Unix(),
			Root:         string(projectRoot),
			IgnoredFiles: ignored,
		},
	}
}

// ExportPath joins override to dir when set, else the conventional name.
func ExportPath(dir m.Path, conventionalFilename, overrideFilename string) m.Path {
	if overrideFilename != "" {
		return m.Path(filepath.Join(string(dir), overrideFilename))
	}

	return m.Path(filepath.Join(string(dir), conventionalFilename))
}
