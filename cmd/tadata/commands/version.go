package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	buildinfo "github.com/tadata-org/tadata-sdk-go/cmd"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, and build date of tadata.`,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tadata version %s\n", buildinfo.Version)
		fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", buildinfo.Commit)
		fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", buildinfo.Date)
	},
}
