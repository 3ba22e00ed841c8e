package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strataworks/erssgen/internal/importer"
)

var validateInput string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check an input workbook without building anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		res := importer.ImportWorkbook(validateInput)
		out := cmd.OutOrStdout()

		for _, w := range res.Warnings {
			fmt.Fprintf(out, "warning: %s\n", w)
		}
		if len(res.Errors) > 0 {
			for _, e := range res.Errors {
				fmt.Fprintf(out, "error: %s\n", e)
			}
			return fmt.Errorf("%d error(s) in %s", len(res.Errors), validateInput)
		}

		in := res.Inputs
		fmt.Fprintf(out, "%s: OK (%d layers, %d stages, %d walls, %d struts, %d sequence steps)\n",
			validateInput, len(in.Borehole), len(in.Excavations), len(in.Walls), len(in.Struts), len(in.Sequence))
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "input workbook (.xlsx)")
	_ = validateCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(validateCmd)
}
