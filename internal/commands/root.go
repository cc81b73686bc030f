package commands

import (
	"github.com/spf13/cobra"

	"github.com/booked-dev/booked/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "booked",
		Short:   "Plain-text bookkeeping for UK sole traders",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newPreviewCommand())
	rootCmd.AddCommand(newBanksCommand())
	rootCmd.AddCommand(newSummaryCommand())

	return rootCmd
}
