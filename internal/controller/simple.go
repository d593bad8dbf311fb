package controller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/NeatNerdPrime/undercover/internal/model"
)

const (
	staleCoverageMessage = "♻️  Coverage data is older than your latest changes. Re-run tests to update"
	noChangesMessage     = "✅ No reportable changes"
	allCoveredMessage    = "✅ No coverage is missing in latest changes"
	missingCoverageLabel = "no coverage data"
)

var (
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// SimpleUI implements UI on top of the cobra command's output streams.
type SimpleUI struct {
	cmd   *cobra.Command
	color bool
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, color bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, color: color}
}

// DisplayMessage prints message as is.
func (s *SimpleUI) DisplayMessage(ctx context.Context, message string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n", strings.TrimRight(message, "\n"))
}

// DisplayUsageError prints the error and usage on stderr.
func (s *SimpleUI) DisplayUsageError(ctx context.Context, err error, usage string) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return
	}

	s.errorf("%s\n\n%s", s.style(errorStyle, "undercover: "+err.Error()), usage)
}

// DisplayError prints err on stderr.
func (s *SimpleUI) DisplayError(ctx context.Context, err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return
	}

	s.errorf("%s\n", s.style(errorStyle, "undercover: "+err.Error()))
}

// DisplayMissingCoverage explains where coverage was looked for and how to
// produce it.
func (s *SimpleUI) DisplayMissingCoverage(ctx context.Context, checked []m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n", s.style(warnStyle, "⚠️  No coverage report found. Checked:"))

	for _, path := range checked {
		s.printf("  - %s\n", path)
	}

	s.printf("\nGenerate one with:\n  go test -coverprofile=cover.out ./...\n  undercover export cover.out\n")
}

// DisplayValidation prints the message for a validation result.
func (s *SimpleUI) DisplayValidation(ctx context.Context, result m.ValidationResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	switch result {
	case m.ValidationStaleCoverage:
		s.printf("%s\n", s.style(warnStyle, staleCoverageMessage))
	case m.ValidationNoChanges:
		s.printf("%s\n", s.style(successStyle, noChangesMessage))
	case m.ValidationOK:
	}
}

// DisplayWarnings prints flagged files as a table.
func (s *SimpleUI) DisplayWarnings(ctx context.Context, warnings []m.Warning) {
	if err := ctx.Err(); err != nil {
		return
	}

	if len(warnings) == 0 {
		s.printf("%s\n", s.style(successStyle, allCoveredMessage))
		return
	}

	header := fmt.Sprintf("🚨 %d file(s) with changes not covered by tests:", len(warnings))
	s.printf("%s\n\n%s", s.style(errorStyle, header), renderWarningsTable(warnings))
}

// DisplayExport summarizes an export run.
func (s *SimpleUI) DisplayExport(ctx context.Context, written []m.Path, files int, ignored []string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Exported coverage for %d file(s)\n", files)

	for _, path := range written {
		s.printf("  wrote %s\n", path)
	}

	if len(ignored) > 0 {
		s.printf("Ignored %d file(s): %s\n", len(ignored), strings.Join(ignored, ", "))
	}
}

func renderWarningsTable(warnings []m.Warning) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"File", "Uncovered lines"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, warning := range warnings {
		detail := missingCoverageLabel
		if warning.Reason == m.ReasonUncovered {
			detail = FormatLineRanges(warning.Lines)
		}

		table.Append([]string{warning.Path, detail})
	}

	table.Render()

	return tableBuffer.String()
}

// FormatLineRanges compresses sorted line numbers: [3 4 5 9] -> "3-5, 9".
func FormatLineRanges(lines []int) string {
	if len(lines) == 0 {
		return ""
	}

	var parts []string

	start, prev := lines[0], lines[0]

	flush := func() {
		if start == prev {
			parts = append(parts, strconv.Itoa(start))
			return
		}

		parts = append(parts, strconv.Itoa(start)+"-"+strconv.Itoa(prev))
	}

	for _, line := range lines[1:] {
		if line == prev+1 {
			prev = line
			continue
		}

		flush()

		start, prev = line, line
	}

	flush()

	return strings.Join(parts, ", ")
}

func (s *SimpleUI) style(style lipgloss.Style, text string) string {
	if !s.color {
		return text
	}

	return style.Render(text)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func (s *SimpleUI) errorf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), format, args...)
}
