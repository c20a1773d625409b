// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "callboard",
	Short: "Callboard is a scheduling backend for performance groups",
	Long: `Callboard is a scheduling and collaboration backend for performance
groups (improv ensembles and the like) that tracks membership, events,
and availability polling.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
