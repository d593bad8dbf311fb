// Package cmd provides the root command and CLI setup for undercover.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/NeatNerdPrime/undercover/internal/adapter"
	"github.com/NeatNerdPrime/undercover/internal/controller"
	"github.com/NeatNerdPrime/undercover/internal/domain"
)

var fsAdapter adapter.SourceFSAdapter
var gitAdapter adapter.GitAdapter
var exportStore adapter.ExportStore
var lcovStore adapter.LcovStore
var profileReader adapter.ProfileReader
var exporter domain.Exporter

func init() {
	cobra.OnInitialize(initLogging)

	// Initialize shared dependencies.
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	gitAdapter = adapter.NewLocalGitAdapter()
	exportStore = adapter.NewJSONExportStore(fsAdapter)
	lcovStore = adapter.NewLocalLcovStore(fsAdapter)
	profileReader = adapter.NewLocalProfileReader()
	exporter = domain.NewExporter(fsAdapter, profileReader, exportStore, lcovStore)
}

const rootLongDescription = `Undercover warns about changed Go files that are not covered by tests.

It compares the files changed in git (against HEAD, or the ref given with
--compare) with the coverage report written by "undercover export" or an
LCOV tracefile, and exits non-zero when a changed file has no coverage data
or contains lines that never ran.

Options are read from a .undercover file in the working directory first,
then from the command line. Run "undercover -h" for the option list.

A subcommand name is recognised anywhere among the arguments, so options
given before a subcommand are parsed by that subcommand and rejected when it
does not define them.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undercover [options]",
		Short: "Warn about changed code without test coverage",
		Long:  rootLongDescription,
		// Options are parsed by the domain resolver so the .undercover file
		// and the command line share one grammar.
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		SilenceErrors:      true,
		SilenceUsage:       true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			code := newOrchestrator(cmd).Run(cmd.Context(), args)
			if code != domain.ExitOK {
				return &exitError{code: code}
			}

			return nil
		},
	}

	cmd.SetFlagErrorFunc(flagUsageError)

	return cmd
}

// flagUsageError reports a subcommand flag error and exits with the usage status.
func flagUsageError(cmd *cobra.Command, err error) error {
	cmd.PrintErrln("undercover:", err)
	cmd.PrintErrf("Run '%s --help' for usage.\n", cmd.CommandPath())

	return &exitError{code: domain.ExitUsage}
}

func newOrchestrator(cmd *cobra.Command) domain.Orchestrator {
	return domain.NewOrchestrator(
		fsAdapter,
		gitAdapter,
		exportStore,
		lcovStore,
		domain.NewOptionsResolver(buildVersion()),
		domain.NewCoverageLocator(fsAdapter),
		domain.NewFileReconciler(),
		controller.NewUI(cmd, colorEnabled(cmd)),
	)
}

// colorEnabled reports whether cmd writes to an interactive terminal.
func colorEnabled(cmd *cobra.Command) bool {
	out, ok := cmd.OutOrStdout().(*os.File)

	return ok && controller.IsTTY(out)
}

// exitError carries a non-zero exit status whose message was already shown.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// exitCode maps the result of a command to a process exit status, printing
// errors that were not reported yet.
func exitCode(cmd *cobra.Command, err error) int {
	if err == nil {
		return domain.ExitOK
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}

	cmd.PrintErrln("undercover:", err)

	return domain.ExitFindings
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)

	stop()

	if code := exitCode(rootCmd, err); code != domain.ExitOK {
		os.Exit(code)
	}
}
