package controller

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	m "github.com/NeatNerdPrime/undercover/internal/model"
)

func newTestUI() (*SimpleUI, *bytes.Buffer, *bytes.Buffer) {
	cmd := &cobra.Command{Use: "test"}
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	return NewSimpleUI(cmd, false), out, errOut
}

func TestSimpleUI_DisplayValidation(t *testing.T) {
	tests := []struct {
		name   string
		result m.ValidationResult
		want   string
	}{
		{"stale coverage", m.ValidationStaleCoverage, "Coverage data is older than your latest changes"},
		{"no changes", m.ValidationNoChanges, "No reportable changes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui, out, _ := newTestUI()
			ui.DisplayValidation(context.Background(), tt.result)
			assert.Contains(t, out.String(), tt.want)
		})
	}

	t.Run("ok prints nothing", func(t *testing.T) {
		ui, out, _ := newTestUI()
		ui.DisplayValidation(context.Background(), m.ValidationOK)
		assert.Empty(t, out.String())
	})
}

func TestSimpleUI_DisplayWarnings(t *testing.T) {
	ui, out, _ := newTestUI()

	ui.DisplayWarnings(context.Background(), []m.Warning{
		{Path: "lib/a.go", Reason: m.ReasonUncovered, Lines: []int{3, 4, 5, 9}},
		{Path: "lib/b.go", Reason: m.ReasonMissingCoverage},
	})

	output := out.String()
	assert.Contains(t, output, "2 file(s) with changes not covered by tests")
	assert.Contains(t, output, "lib/a.go")
	assert.Contains(t, output, "3-5, 9")
	assert.Contains(t, output, "lib/b.go")
	assert.Contains(t, output, "no coverage data")
}

func TestSimpleUI_DisplayWarnings_None(t *testing.T) {
	ui, out, _ := newTestUI()

	ui.DisplayWarnings(context.Background(), nil)

	assert.Contains(t, out.String(), "No coverage is missing in latest changes")
}

func TestSimpleUI_DisplayMissingCoverage(t *testing.T) {
	ui, out, _ := newTestUI()

	ui.DisplayMissingCoverage(context.Background(), []m.Path{"/p/coverage/coverage.json", "/p/coverage/lcov/p.lcov"})

	output := out.String()
	assert.Contains(t, output, "/p/coverage/coverage.json")
	assert.Contains(t, output, "/p/coverage/lcov/p.lcov")
	assert.Contains(t, output, "undercover export")
}

func TestSimpleUI_Errors(t *testing.T) {
	ui, out, errOut := newTestUI()

	ui.DisplayUsageError(context.Background(), errors.New("unknown flag: --nope"), "Usage: undercover [options]\n")
	ui.DisplayError(context.Background(), errors.New("git failed"))

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "unknown flag: --nope")
	assert.Contains(t, errOut.String(), "Usage: undercover [options]")
	assert.Contains(t, errOut.String(), "git failed")
}

func TestSimpleUI_DisplayExport(t *testing.T) {
	ui, out, _ := newTestUI()

	ui.DisplayExport(context.Background(), []m.Path{"coverage/coverage.json"}, 3, []string{"gen.pb.go"})

	output := out.String()
	assert.Contains(t, output, "Exported coverage for 3 file(s)")
	assert.Contains(t, output, "coverage/coverage.json")
	assert.Contains(t, output, "Ignored 1 file(s): gen.pb.go")
}

func TestSimpleUI_CancelledContext(t *testing.T) {
	ui, out, _ := newTestUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ui.DisplayMessage(ctx, "hello")
	ui.DisplayWarnings(ctx, nil)

	assert.Empty(t, out.String())
}

func TestFormatLineRanges(t *testing.T) {
	tests := []struct {
		name  string
		lines []int
		want  string
	}{
		{"empty", nil, ""},
		{"single", []int{7}, "7"},
		{"range", []int{1, 2, 3}, "1-3"},
		{"mixed", []int{3, 4, 5, 9, 11, 12}, "3-5, 9, 11-12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLineRanges(tt.lines))
		})
	}
}
