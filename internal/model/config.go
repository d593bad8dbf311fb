package model

// Configuration is the resolved, read-only set of parameters for one run.
type Configuration struct {
	// Path is the project root as given (not made absolute).
	Path Path
	// GitDir is the git metadata directory name, relative to Path.
	GitDir string
	// Compare is the reference the change set is computed against. Empty
	// means uncommitted changes against HEAD.
	Compare string
	// Lcov is an explicit LCOV report path.
	Lcov Path
	// CoverageJSON is an explicit JSON coverage export path.
	CoverageJSON Path
	// SyntaxVersion is the Go language version of the sources (e.g. go1.22).
	SyntaxVersion string
	// IncludeGlobs select candidate files; evaluated before ExcludeGlobs.
	IncludeGlobs []string
	// ExcludeGlobs drop files selected by IncludeGlobs.
	ExcludeGlobs []string
}
