package commands

import (
	"fmt"
	"github.com/spf13/cobra"
	"repopulse/internal/di"
	"repopulse/internal/report"
	"repopulse/internal/structures"
)

func NewReportCommand(flags *structures.CliFlags) *cobra.Command {
	var link string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the persisted health histories as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			archive, err := di.InitArchive(flags)
			if err != nil {
				return fmt.Errorf("unable to open checkpoint: %w", err)
			}
			defer archive.Close()

			return report.Render(cmd.OutOrStdout(), archive.Store.Load(), link)
		},
	}

	cmd.Flags().StringVarP(&link, "repo", "r", "", "only show the repository with this GitHub link")
	return cmd
}
