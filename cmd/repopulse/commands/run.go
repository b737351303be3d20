package commands

import (
	"fmt"
	"github.com/spf13/cobra"
	"repopulse/internal/di"
	"repopulse/internal/structures"
)

func NewRunCommand(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Score every repository not yet in the checkpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := di.InitApp(flags)
			if err != nil {
				return fmt.Errorf("unable to start: %w", err)
			}
			defer app.Close()

			summary, err := app.Run(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "discovered=%d skipped=%d processed=%d failed=%d\n",
				summary.Discovered, summary.Skipped, summary.Processed, summary.Failed)
			return err
		},
	}
}
