package domain

import (
	"log/slog"
	"sort"

	m "github.com/NeatNerdPrime/undercover/internal/model"
)

// Reconciler matches changed files against a coverage export.
type Reconciler interface {
	// Reconcile returns one warning per selected changed file that lacks
	// coverage, sorted by path.
	Reconcile(cfg m.Configuration, changes ChangeSet, export m.NormalizedCoverageExport) []m.Warning
}

type fileReconciler struct{}

// NewFileReconciler constructs a Reconciler working at file granularity: a
// changed file is flagged when the export has no entry for it or when any of
// its lines never ran.
func NewFileReconciler() Reconciler {
	return &fileReconciler{}
}

func (r *fileReconciler) Reconcile(cfg m.Configuration, changes ChangeSet, export m.NormalizedCoverageExport) []m.Warning {
	var warnings []m.Warning

	for _, change := range changes.Files {
		if !SelectedByGlobs(cfg.IncludeGlobs, cfg.ExcludeGlobs, change.Path) {
			continue
		}

		if export.IsIgnored(change.Path) {
			slog.Debug("skipping file ignored by coverage collector", "file", change.Path)
			continue
		}

		coverage, ok := export.Coverage[change.Path]
		if !ok {
			warnings = append(warnings, m.Warning{Path: change.Path, Reason: m.ReasonMissingCoverage})
			continue
		}

		if lines := coverage.UncoveredLines(); len(lines) > 0 {
			warnings = append(warnings, m.Warning{Path: change.Path, Reason: m.ReasonUncovered, Lines: lines})
		}
	}

	sort.Slice(warnings, func(i, j int) bool {
		return warnings[i].Path < warnings[j].Path
	})

	slog.Info("reconciled changes", "changed", len(changes.Files), "warnings", len(warnings))

	return warnings
}
