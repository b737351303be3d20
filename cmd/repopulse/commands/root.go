package commands

import (
	"github.com/spf13/cobra"
	"repopulse/internal/structures"
)

const defaultConfigPath = "config/config.yaml"

func NewRootCommand() *cobra.Command {
	flags := &structures.CliFlags{}

	rootCmd := &cobra.Command{
		Use:   "repopulse",
		Short: "RepoPulse scores the month-over-month health of an organization's GitHub repositories",
		Long: `RepoPulse samples commits, pull requests, issues, milestones, code churn and
discussion volume for every repository of a GitHub organization, scores each
month against the one before and keeps a resumable checkpoint of the results.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", defaultConfigPath, "path to the YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&flags.DebugMode, "debug", "d", false, "enable debug logging")

	rootCmd.AddCommand(NewRunCommand(flags))
	rootCmd.AddCommand(NewReportCommand(flags))
	rootCmd.AddCommand(NewVersionCommand())
	return rootCmd
}
