package model

// ValidationResult is the outcome of checking coverage freshness against the
// change set before any warnings are built.
type ValidationResult string

const (
	// ValidationOK means warnings should be built.
	ValidationOK ValidationResult = ""
	// ValidationNoChanges means the change set is empty.
	ValidationNoChanges ValidationResult = "no_changes"
	// ValidationStaleCoverage means the coverage predates the latest change.
	ValidationStaleCoverage ValidationResult = "stale_coverage"
)

// WarningReason describes why a changed file was flagged.
type WarningReason string

const (
	// ReasonUncovered marks changed files with lines never executed.
	ReasonUncovered WarningReason = "uncovered"
	// ReasonMissingCoverage marks changed files absent from the report.
	ReasonMissingCoverage WarningReason = "missing"
)

// Warning flags a changed file that is not fully exercised by tests.
type Warning struct {
	Path   string
	Reason WarningReason
	// Lines holds the uncovered 1-based line numbers for ReasonUncovered.
	Lines []int
}

// CheckOutcome is what a check run produced.
type CheckOutcome struct {
	Coverage   CoveragePathCandidate
	Validation ValidationResult
	Warnings   []Warning
}
