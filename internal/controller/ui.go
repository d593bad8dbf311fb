// Package controller provides output adapters for displaying undercover results.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "github.com/NeatNerdPrime/undercover/internal/model"
)

// UI defines how run outcomes are presented to the user.
// Implementations can use different output methods (plain text, colored, etc).
type UI interface {
	// DisplayMessage prints an informational message such as usage or version.
	DisplayMessage(ctx context.Context, message string)
	// DisplayUsageError reports an invalid option together with usage text.
	DisplayUsageError(ctx context.Context, err error, usage string)
	// DisplayError reports a failure that ended the run.
	DisplayError(ctx context.Context, err error)
	// DisplayMissingCoverage lists every path checked for a coverage report.
	DisplayMissingCoverage(ctx context.Context, checked []m.Path)
	// DisplayValidation reports a non-OK validation result.
	DisplayValidation(ctx context.Context, result m.ValidationResult)
	// DisplayWarnings prints the flagged files.
	DisplayWarnings(ctx context.Context, warnings []m.Warning)
	// DisplayExport summarizes a coverage export run.
	DisplayExport(ctx context.Context, written []m.Path, files int, ignored []string)
}

// NewUI returns the UI for cmd, with colors when the output is a terminal.
func NewUI(cmd *cobra.Command, color bool) UI {
	return NewSimpleUI(cmd, color)
}

// IsTTY reports whether f is an interactive terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
