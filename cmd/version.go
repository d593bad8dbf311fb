package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version may be set at link time with -ldflags "-X <module>/cmd.version=...".
var version string

// buildVersion returns the linked version, else the module version recorded
// in the binary.
func buildVersion() string {
	if version != "" {
		return version
	}

	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return "unknown"
	}

	return info.Main.Version
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the build version and Go version used to build this tool.",
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				cmd.Println("version: unknown")
				return
			}

			cmd.Println("tool version\t", buildVersion())
			cmd.Println("go version\t", info.GoVersion)
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
