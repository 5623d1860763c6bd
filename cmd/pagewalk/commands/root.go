package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var configFile string

	// Define root command
	rootCmd := &cobra.Command{
		Use:           "pagewalk",
		Short:         "Walk cursor-paginated Mastodon timelines",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "config file path")

	// Add subcommands
	rootCmd.AddCommand(
		NewNotificationsCommand(&configFile),
		NewVerifyCommand(&configFile),
		NewVersionCommand(),
	)

	return rootCmd
}
