package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is stamped at release time.
const Version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the erssgen version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "erssgen v%s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
