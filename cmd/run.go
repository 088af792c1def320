package cmd

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mutagate.dev/pkg/mutagate/internal/domain"
	m "mutagate.dev/pkg/mutagate/internal/model"
)

// ErrGateFailed is returned when the kill rate falls below the threshold; it
// maps the report's fail status onto a nonzero process exit code.
var ErrGateFailed = errors.New("mutation gate failed: kill rate below threshold")

var branchFlag string
var thresholdFlag float64
var testCmdFlag string
var dirFlag string
var runParallelFlag int
var mutationTimeoutFlag int

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the mutation gate against the current revision",
		Long: `Run mutation testing restricted to the lines changed relative to the base
branch, evaluate each mutant with the configured test command, and gate on
the kill rate.`,
		Args:         cobra.ExactArgs(0),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ui := selectUI(cmd)
			workflow := buildWorkflow(ui)

			report, err := workflow.Run(cmd.Context(), domain.RunArgs{
				BaseDir:         m.Path(viper.GetString(dirConfigKey)),
				BaseBranch:      viper.GetString(baseBranchConfigKey),
				TestCommand:     viper.GetString(testCmdConfigKey),
				Threshold:       viper.GetFloat64(thresholdConfigKey),
				Threads:         viper.GetInt(runParallelConfigKey),
				MutationTimeout: time.Duration(viper.GetInt64(mutationTimeoutKey)) * time.Second,
				Reports:         m.Path(viper.GetString(outputFlagName)),
			})
			if err != nil {
				return err
			}

			if report.Status == m.StatusFail {
				return ErrGateFailed
			}

			return nil
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&branchFlag, branchFlagName, "b", viper.GetString(baseBranchConfigKey), "base branch for the diff")
	bindFlagToConfig(cmd.Flags().Lookup(branchFlagName), baseBranchConfigKey)

	cmd.Flags().Float64VarP(&thresholdFlag, thresholdFlagName, "t", viper.GetFloat64(thresholdConfigKey), "minimum mutation kill rate percentage")
	bindFlagToConfig(cmd.Flags().Lookup(thresholdFlagName), thresholdConfigKey)

	cmd.Flags().StringVar(&testCmdFlag, testCmdFlagName, viper.GetString(testCmdConfigKey), "test command run against each mutant")
	bindFlagToConfig(cmd.Flags().Lookup(testCmdFlagName), testCmdConfigKey)

	cmd.Flags().StringVarP(&dirFlag, dirFlagName, "d", viper.GetString(dirConfigKey), "project directory")
	bindFlagToConfig(cmd.Flags().Lookup(dirFlagName), dirConfigKey)

	cmd.Flags().IntVarP(&runParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of parallel workers (isolated workspaces when > 1)")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)

	cmd.Flags().IntVar(&mutationTimeoutFlag, mutationTimeoutFlagName, int(defaultMutationTimeout.Seconds()), "per-mutant test execution timeout in seconds")
	bindFlagToConfig(cmd.Flags().Lookup(mutationTimeoutFlagName), mutationTimeoutKey)
}
