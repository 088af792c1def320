package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	m "mutagate.dev/pkg/mutagate/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "View the previously generated gate report",
		Long:  "Re-render the gate report persisted by the last run from the reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportsPath := m.Path(viper.GetString(outputFlagName))

			report, err := reportStore.LoadReport(reportsPath)
			if err != nil {
				return err
			}

			return selectUI(cmd).DisplayReport(cmd.Context(), report)
		},
	}
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
