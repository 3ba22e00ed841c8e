package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strataworks/erssgen/internal/engine"
	"github.com/strataworks/erssgen/internal/importer"
)

var decomposeInput string

var decomposeCmd = &cobra.Command{
	Use:   "decompose",
	Short: "Print the polygon decomposition of every excavation stage",
	Long: `decompose imports the workbook and runs the rectangle decomposer over
each excavation stage without touching a modeler, printing the resulting
polygon bands and any data-gap warnings. Useful for checking stage inputs
against the borehole log before a full run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res := importer.ImportWorkbook(decomposeInput)
		if err := res.Err(); err != nil {
			return err
		}
		in := res.Inputs
		out := cmd.OutOrStdout()

		for _, st := range in.Excavations {
			base := fmt.Sprintf("polygon_Stage%d_Excavation", st.StageNo)
			descs, warnings, err := engine.Decompose(st.Rect(), in.Borehole, base)
			if err != nil {
				return fmt.Errorf("stage %d: %w", st.StageNo, err)
			}

			fmt.Fprintf(out, "Stage %d (%s) [%.2f, %.2f] x [%.2f, %.2f]\n",
				st.StageNo, st.StageName, st.XLeft, st.XRight, st.From, st.To)
			for _, d := range descs {
				fmt.Fprintf(out, "  %-40s %8.2f -> %8.2f  %s\n", d.Name, d.Top, d.Bottom, d.SoilType)
			}
			for _, w := range warnings {
				fmt.Fprintf(out, "  warning: %s\n", w)
			}
		}
		return nil
	},
}

func init() {
	decomposeCmd.Flags().StringVarP(&decomposeInput, "input", "i", "", "input workbook (.xlsx)")
	_ = decomposeCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(decomposeCmd)
}
