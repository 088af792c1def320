// Package cmd provides the root command and CLI setup for mutagate.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"mutagate.dev/pkg/mutagate/internal/adapter"
	"mutagate.dev/pkg/mutagate/internal/controller"
	"mutagate.dev/pkg/mutagate/internal/domain"
)

var changeSetAdapter adapter.ChangeSetAdapter
var fsAdapter adapter.SourceFSAdapter
var goFileAdapter adapter.GoFileAdapter
var testAdapter adapter.TestRunnerAdapter
var reportStore adapter.ReportStore
var orchestrator domain.Orchestrator
var mutagen domain.Mutagen

// buildWorkflow assembles the pipeline around the UI picked for this
// invocation. Swappable so command tests can inject a mock workflow.
var buildWorkflow = func(ui controller.UI) domain.Workflow {
	return domain.NewWorkflow(changeSetAdapter, fsAdapter, reportStore, ui, orchestrator, mutagen)
}

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// formatFlag selects the report rendering: text or json.
var formatFlag string

// verboseFlag raises logging to debug.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	changeSetAdapter = adapter.NewGitDiffAdapter()
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	goFileAdapter = adapter.NewLocalGoFileAdapter()
	testAdapter = adapter.NewLocalTestRunnerAdapter()
	reportStore = adapter.NewReportStore()
	orchestrator = domain.NewOrchestrator(fsAdapter, testAdapter)
	mutagen = domain.NewMutagen(goFileAdapter)
}

const rootLongDescription = `MutaGate is a mutation testing quality gate for Go: it mutates only the
lines your revision changed, runs your test command against each mutant,
and fails the gate when too many mutants survive.

The changed lines come from 'git diff' against a base branch; a revision
touching nothing passes vacuously.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mutagate",
		Short: "PR-scoped mutation testing quality gate",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for gate reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringVarP(&formatFlag, formatFlagName, "f", viper.GetString(formatConfigKey), "report format: text or json")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(formatFlagName), formatConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "enable debug logging")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// selectUI picks the report projection for this invocation: JSON when asked,
// a progress view on interactive terminals, plain lines otherwise.
func selectUI(cmd *cobra.Command) controller.UI {
	if viper.GetString(formatConfigKey) == formatJSON {
		return controller.NewJSONUI(cmd)
	}

	if controller.IsTTY(os.Stdout) {
		return controller.NewTUI(cmd.OutOrStdout())
	}

	return controller.NewSimpleUI(cmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
