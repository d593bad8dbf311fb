package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/NeatNerdPrime/undercover/internal/adapter"
	"github.com/NeatNerdPrime/undercover/internal/controller"
	m "github.com/NeatNerdPrime/undercover/internal/model"
)

// Process exit codes of a check run.
const (
	ExitOK       = 0
	ExitFindings = 1
	ExitUsage    = 2
)

// validationExitCodes maps a non-OK validation result to the exit code of
// the run that stops on it.
var validationExitCodes = map[m.ValidationResult]int{
	m.ValidationStaleCoverage: ExitFindings,
	m.ValidationNoChanges:     ExitOK,
}

// Orchestrator runs one check: options, coverage discovery, change set,
// validation and warnings, ending with an exit code.
type Orchestrator interface {
	// Run resolves cliArgs on top of the options file, runs Check and
	// reports through the UI. It never returns an error; every failure maps
	// to an exit code.
	Run(ctx context.Context, cliArgs []string) int
	// Check runs the pipeline for an already resolved configuration.
	Check(ctx context.Context, cfg m.Configuration) (m.CheckOutcome, error)
}

// OrchestratorOption customizes an Orchestrator.
type OrchestratorOption func(*orchestrator)

// WithOptionsFile reads options from path instead of OptionsFileName.
func WithOptionsFile(path m.Path) OrchestratorOption {
	return func(o *orchestrator) {
		o.optionsFile = path
	}
}

type orchestrator struct {
	fsAdapter   adapter.SourceFSAdapter
	gitAdapter  adapter.GitAdapter
	exportStore adapter.ExportStore
	lcovStore   adapter.LcovStore
	resolver    OptionsResolver
	locator     CoverageLocator
	reconciler  Reconciler
	ui          controller.UI
	optionsFile m.Path
}

// NewOrchestrator constructs an Orchestrator from its collaborators.
func NewOrchestrator(
	fsAdapter adapter.SourceFSAdapter,
	gitAdapter adapter.GitAdapter,
	exportStore adapter.ExportStore,
	lcovStore adapter.LcovStore,
	resolver OptionsResolver,
	locator CoverageLocator,
	reconciler Reconciler,
	ui controller.UI,
	opts ...OrchestratorOption,
) Orchestrator {
	o := &orchestrator{
		fsAdapter:   fsAdapter,
		gitAdapter:  gitAdapter,
		exportStore: exportStore,
		lcovStore:   lcovStore,
		resolver:    resolver,
		locator:     locator,
		reconciler:  reconciler,
		ui:          ui,
		optionsFile: OptionsFileName,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

func (o *orchestrator) Run(ctx context.Context, cliArgs []string) int {
	fileTokens, err := LoadOptionsFile(o.fsAdapter, o.optionsFile)
	if err != nil {
		o.ui.DisplayError(ctx, err)
		return ExitFindings
	}

	cfg, err := o.resolver.Resolve(fileTokens, cliArgs)
	if err != nil {
		return o.handleResolveError(ctx, err)
	}

	outcome, err := o.Check(ctx, cfg)
	if err != nil {
		var missing *CoveragePathMissingError
		if errors.As(err, &missing) {
			o.ui.DisplayMissingCoverage(ctx, missing.Checked)
			return ExitFindings
		}

		slog.Error("check failed", "error", err)
		o.ui.DisplayError(ctx, err)

		return ExitFindings
	}

	if outcome.Validation != m.ValidationOK {
		o.ui.DisplayValidation(ctx, outcome.Validation)
		return validationExitCodes[outcome.Validation]
	}

	o.ui.DisplayWarnings(ctx, outcome.Warnings)

	if len(outcome.Warnings) > 0 {
		return ExitFindings
	}

	return ExitOK
}

func (o *orchestrator) handleResolveError(ctx context.Context, err error) int {
	var exitRequested *ExitRequestedError
	if errors.As(err, &exitRequested) {
		o.ui.DisplayMessage(ctx, exitRequested.Message)
		return exitRequested.Code
	}

	var invalid *InvalidOptionError
	if errors.As(err, &invalid) {
		o.ui.DisplayUsageError(ctx, invalid.Err, invalid.Usage)
		return ExitUsage
	}

	o.ui.DisplayError(ctx, err)

	return ExitFindings
}

func (o *orchestrator) Check(ctx context.Context, cfg m.Configuration) (m.CheckOutcome, error) {
	candidate, err := o.locator.Locate(cfg)
	if err != nil {
		return m.CheckOutcome{}, err
	}

	outcome := m.CheckOutcome{Coverage: candidate}

	root, err := o.fsAdapter.AbsPath(cfg.Path)
	if err != nil {
		return outcome, fmt.Errorf("resolve project path %s: %w", cfg.Path, err)
	}

	export, err := o.loadCoverage(candidate, root)
	if err != nil {
		return outcome, err
	}

	changes, err := o.changeSet(ctx, cfg, root)
	if err != nil {
		return outcome, err
	}

	outcome.Validation = Validate(changes, export.CreatedAt())
	if outcome.Validation != m.ValidationOK {
		slog.Info("check stopped by validation", "result", outcome.Validation,
			"last_change", changes.LastModified, "coverage_time", export.CreatedAt())
		return outcome, nil
	}

	outcome.Warnings = o.reconciler.Reconcile(cfg, changes, export)

	return outcome, nil
}

func (o *orchestrator) loadCoverage(candidate m.CoveragePathCandidate, root m.Path) (m.NormalizedCoverageExport, error) {
	switch candidate.Format {
	case m.FormatJSON:
		export, err := o.exportStore.LoadExport(candidate.Path)
		if err != nil {
			return m.NormalizedCoverageExport{}, fmt.Errorf("load coverage export %s: %w", candidate.Path, err)
		}

		return export, nil
	case m.FormatLcov:
		export, err := o.lcovStore.LoadLcov(candidate.Path, root)
		if err != nil {
			return m.NormalizedCoverageExport{}, fmt.Errorf("load lcov report %s: %w", candidate.Path, err)
		}

		return export, nil
	default:
		return m.NormalizedCoverageExport{}, fmt.Errorf("unsupported coverage format %q", candidate.Format)
	}
}

// changeSet lists changed files selected by the configured globs. Files
// deleted in the work tree have nothing to cover and are dropped.
func (o *orchestrator) changeSet(ctx context.Context, cfg m.Configuration, root m.Path) (ChangeSet, error) {
	gitDir := cfg.GitDir
	if !filepath.IsAbs(gitDir) {
		gitDir = string(o.fsAdapter.JoinPath(string(root), gitDir))
	}

	names, err := o.gitAdapter.ChangedFiles(ctx, root, m.Path(gitDir), cfg.Compare)
	if err != nil {
		return ChangeSet{}, fmt.Errorf("list changed files: %w", err)
	}

	files := make([]m.ChangedFile, 0, len(names))

	for _, name := range names {
		if !SelectedByGlobs(cfg.IncludeGlobs, cfg.ExcludeGlobs, name) {
			continue
		}

		info, err := o.fsAdapter.FileInfo(o.fsAdapter.JoinPath(string(root), filepath.FromSlash(name)))
		if err != nil {
			slog.Debug("skipping changed file without work tree copy", "file", name, "error", err)
			continue
		}

		if info.IsDir() {
			continue
		}

		files = append(files, m.ChangedFile{Path: name, ModTime: info.ModTime()})
	}

	slog.Debug("built change set", "compare", cfg.Compare, "listed", len(names), "selected", len(files))

	return NewChangeSet(files), nil
}
