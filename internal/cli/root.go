// Package cli wires the erssgen commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "erssgen",
	Short: "Staged excavation model generator",
	Long: `erssgen builds staged-excavation (ERSS) finite-element models from a
single input workbook: it decomposes excavation and water zones against the
borehole stratigraphy, creates the soil polygons and structures in the
modeler, and sequences the construction phases.

Outputs of a run: the populated model, a provenance workbook mapping every
generated element back to its input row, a PDF summary report and a DXF
section drawing.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
