package model

import "time"

// CoverageFormat identifies a supported coverage report format.
type CoverageFormat string

const (
	// FormatLcov is the LCOV tracefile format.
	FormatLcov CoverageFormat = "lcov"
	// FormatJSON is the normalized JSON coverage export.
	FormatJSON CoverageFormat = "json"
)

// CoveragePathCandidate is a coverage report found on disk.
type CoveragePathCandidate struct {
	Path   Path
	Format CoverageFormat
}

// MaxLineNumber bounds line numbers read from coverage reports.
const MaxLineNumber = 1 << 20

// FileCoverage is the per-file coverage detail. Lines is indexed by line
// number minus one; nil entries are lines without statements.
type FileCoverage struct {
	Lines []*int64 `json:"lines"`
}

// UncoveredLines returns the 1-based line numbers with a zero count.
func (c FileCoverage) UncoveredLines() []int {
	var lines []int

	for i, count := range c.Lines {
		if count != nil && *count == 0 {
			lines = append(lines, i+1)
		}
	}

	return lines
}

// CoverageResult is the raw outcome of one coverage collection run.
type CoverageResult struct {
	CreatedAt time.Time
	Files     []SourceFile
}

// ExportMeta holds run metadata of a NormalizedCoverageExport.
type ExportMeta struct {
	Timestamp    int64    `json:"timestamp"`
	Root         string   `json:"simplecov_root"`
	IgnoredFiles []string `json:"ignored_files"`
}

// NormalizedCoverageExport is the persisted coverage document.
type NormalizedCoverageExport struct {
	Coverage map[string]FileCoverage `json:"coverage"`
	Meta     ExportMeta              `json:"meta"`
}

// CreatedAt returns the export timestamp as a time.
func (e NormalizedCoverageExport) CreatedAt() time.Time {
	return time.Unix(e.Meta.Timestamp, 0)
}

// IsIgnored reports whether the relative path is listed in the ignored files.
func (e NormalizedCoverageExport) IsIgnored(path string) bool {
	for _, ignored := range e.Meta.IgnoredFiles {
		if ignored == path {
			return true
		}
	}

	return false
}
