package domain

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/NeatNerdPrime/undercover/internal/adapter"
	m "github.com/NeatNerdPrime/undercover/internal/model"
)

const (
	// CoverageDirName is the conventional coverage directory under the project root.
	CoverageDirName = "coverage"
	// CoverageJSONFileName is the conventional JSON export file name.
	CoverageJSONFileName = "coverage.json"
	// LcovDirName is the LCOV subdirectory of the coverage directory.
	LcovDirName = "lcov"
)

// CoverageLocator decides which coverage report a run reads.
type CoverageLocator interface {
	// Locate returns the first existing report, explicit paths first. It
	// returns *CoveragePathMissingError listing every checked path when
	// nothing exists.
	Locate(cfg m.Configuration) (m.CoveragePathCandidate, error)
}

type coverageLocator struct {
	fsAdapter adapter.SourceFSAdapter
}

// NewCoverageLocator constructs a CoverageLocator probing the filesystem
// through fsAdapter.
func NewCoverageLocator(fsAdapter adapter.SourceFSAdapter) CoverageLocator {
	return &coverageLocator{fsAdapter: fsAdapter}
}

// ConventionalJSONPath is <root>/coverage/coverage.json.
func ConventionalJSONPath(root m.Path) m.Path {
	return m.Path(filepath.Join(string(root), CoverageDirName, CoverageJSONFileName))
}

// ConventionalLcovPath is <root>/coverage/lcov/<basename of root>.lcov.
func ConventionalLcovPath(root m.Path) m.Path {
	return m.Path(filepath.Join(string(root), CoverageDirName, LcovDirName, root.Base()+".lcov"))
}

func (l *coverageLocator) Locate(cfg m.Configuration) (m.CoveragePathCandidate, error) {
	root, err := l.fsAdapter.AbsPath(cfg.Path)
	if err != nil {
		return m.CoveragePathCandidate{}, fmt.Errorf("resolve project path %s: %w", cfg.Path, err)
	}

	candidates := make([]m.CoveragePathCandidate, 0, 4)

	if cfg.CoverageJSON != "" {
		candidates = append(candidates, m.CoveragePathCandidate{Path: cfg.CoverageJSON, Format: m.FormatJSON})
	}

	if cfg.Lcov != "" {
		candidates = append(candidates, m.CoveragePathCandidate{Path: cfg.Lcov, Format: m.FormatLcov})
	}

	candidates = append(candidates,
		m.CoveragePathCandidate{Path: ConventionalJSONPath(root), Format: m.FormatJSON},
		m.CoveragePathCandidate{Path: ConventionalLcovPath(root), Format: m.FormatLcov},
	)

	checked := make([]m.Path, 0, len(candidates))

	for _, candidate := range candidates {
		checked = append(checked, candidate.Path)

		if l.fsAdapter.Exists(candidate.Path) {
			slog.Info("using coverage report", "path", candidate.Path, "format", candidate.Format)
			return candidate, nil
		}

		slog.Debug("coverage report not found", "path", candidate.Path)
	}

	return m.CoveragePathCandidate{}, &CoveragePathMissingError{Checked: checked}
}
