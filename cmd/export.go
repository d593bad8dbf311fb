package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/NeatNerdPrime/undercover/internal/controller"
	"github.com/NeatNerdPrime/undercover/internal/domain"
	m "github.com/NeatNerdPrime/undercover/internal/model"
)

// defaultProfile is read when export is given no profile.
const defaultProfile = "cover.out"

const exportLongDescription = `Convert one or more "go test -coverprofile" files into the coverage
report read by undercover.

Profiles are merged block by block. Files matching --exclude are left out
of the report and listed under meta.ignored_files, so undercover does not
flag them as missing coverage. The JSON report is written to
<coverage-dir>/coverage.json and, unless --lcov=false, an LCOV tracefile to
<coverage-dir>/lcov/<module directory>.lcov.`

var (
	exportCoverageDirFlag string
	exportFilenameFlag    string
	exportExcludeFlag     []string
	exportLcovFlag        bool
	exportRootFlag        string
)

// exportCmd represents the export command.
var exportCmd = newExportCmd()

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [profiles...]",
		Short: "Convert Go coverage profiles into an undercover report",
		Long:  exportLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := exporter.Export(cmd.Context(), domain.ExportArgs{
				Profiles:    parseProfiles(args),
				Root:        m.Path(viper.GetString(exportRootKey)),
				CoverageDir: m.Path(viper.GetString(exportDirKey)),
				Filename:    viper.GetString(exportFilenameKey),
				Exclude:     viper.GetStringSlice(exportExcludeKey),
				WriteLcov:   viper.GetBool(exportLcovKey),
			})
			if err != nil {
				return err
			}

			controller.NewUI(cmd, colorEnabled(cmd)).
				DisplayExport(cmd.Context(), result.Written, result.Files, result.Ignored)

			return nil
		},
	}

	configureExportFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func configureExportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&exportCoverageDirFlag, coverageDirFlagName, "d", viper.GetString(exportDirKey), "directory for the generated reports, relative to the module root")
	bindFlagToConfig(cmd.Flags().Lookup(coverageDirFlagName), exportDirKey)

	cmd.Flags().StringVar(&exportFilenameFlag, filenameFlagName, viper.GetString(exportFilenameKey), "override the JSON report file name")
	bindFlagToConfig(cmd.Flags().Lookup(filenameFlagName), exportFilenameKey)

	cmd.Flags().StringArrayVarP(&exportExcludeFlag, excludeFlagName, "x", viper.GetStringSlice(exportExcludeKey), "leave out files matching the glob (can be repeated)")
	bindFlagToConfig(cmd.Flags().Lookup(excludeFlagName), exportExcludeKey)

	cmd.Flags().BoolVar(&exportLcovFlag, lcovFlagName, viper.GetBool(exportLcovKey), "also write an LCOV tracefile")
	bindFlagToConfig(cmd.Flags().Lookup(lcovFlagName), exportLcovKey)

	cmd.Flags().StringVar(&exportRootFlag, rootFlagName, viper.GetString(exportRootKey), "any directory inside the Go module to report on")
	bindFlagToConfig(cmd.Flags().Lookup(rootFlagName), exportRootKey)
}

func parseProfiles(args []string) []m.Path {
	if len(args) == 0 {
		return []m.Path{defaultProfile}
	}

	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
