package commands

import (
	"fmt"
	"github.com/spf13/cobra"
	"repopulse/internal/providers"
)

// Version is overridden at build time with -ldflags "-X repopulse/cmd/repopulse/commands.Version=...".
var Version = "dev"

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", providers.AppName, Version)
		},
	}
}
