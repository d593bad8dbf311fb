package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/NeatNerdPrime/undercover/internal/model"
)

const exportTestProfile = `mode: count
example.com/proj/lib/a.go:3.14,5.2 1 2
example.com/proj/lib/a.go:7.14,9.2 1 0
example.com/proj/gen/b.go:1.1,2.2 1 1
`

func writeExportFixture(t *testing.T) (string, string) {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/proj\n"), 0o600))

	profile := filepath.Join(root, "cover.out")
	require.NoError(t, os.WriteFile(profile, []byte(exportTestProfile), 0o600))

	return root, profile
}

// newExportTestCmd returns a root command with a fresh export subcommand.
// Viper keys are rebound to unchanged flags once the test ends.
func newExportTestCmd(t *testing.T) *cobra.Command {
	t.Helper()
	t.Cleanup(func() { newExportCmd() })

	cmd := newRootCmd()
	cmd.AddCommand(newExportCmd())

	return cmd
}

func TestExportCmd_WritesReports(t *testing.T) {
	root, profile := writeExportFixture(t)

	cmd := newExportTestCmd(t)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"export", "--root", root, "-x", "gen/*", profile})

	require.NoError(t, cmd.Execute())

	jsonPath := filepath.Join(root, "coverage", "coverage.json")
	assert.FileExists(t, jsonPath)
	assert.FileExists(t, filepath.Join(root, "coverage", "lcov", filepath.Base(root)+".lcov"))

	export, err := exportStore.LoadExport(m.Path(jsonPath))
	require.NoError(t, err)
	assert.Contains(t, export.Coverage, "lib/a.go")
	assert.Equal(t, []string{"gen/b.go"}, export.Meta.IgnoredFiles)

	assert.Contains(t, out.String(), "Exported coverage for 1 file(s)")
	assert.Contains(t, out.String(), "Ignored 1 file(s): gen/b.go")
}

func TestExportCmd_Flags(t *testing.T) {
	root, profile := writeExportFixture(t)
	outDir := filepath.Join(root, "out")

	cmd := newExportTestCmd(t)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"export", "--root", root, "-d", outDir, "--filename", "report.json", "--lcov=false", profile})

	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join(outDir, "report.json"))
	assert.NoDirExists(t, filepath.Join(outDir, "lcov"))
}

func TestExportCmd_MissingProfile(t *testing.T) {
	root, _ := writeExportFixture(t)

	cmd := newExportTestCmd(t)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"export", "--root", root, filepath.Join(root, "absent.out")})

	assert.Error(t, cmd.Execute())
}

func TestParseProfiles(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []m.Path
	}{
		{"empty", []string{}, []m.Path{defaultProfile}},
		{"single", []string{"a.out"}, []m.Path{"a.out"}},
		{"multiple", []string{"a.out", "b.out"}, []m.Path{"a.out", "b.out"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseProfiles(tt.args))
		})
	}
}
