package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/strataworks/erssgen/internal/builder"
	"github.com/strataworks/erssgen/internal/config"
	"github.com/strataworks/erssgen/internal/export"
	"github.com/strataworks/erssgen/internal/importer"
	"github.com/strataworks/erssgen/internal/logger"
	"github.com/strataworks/erssgen/internal/plaxis"
)

var (
	generateInput  string
	generateOut    string
	generateDryRun bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build the full model from an input workbook",
	Long: `generate imports the input workbook, connects to the modeler (or uses
the in-memory recorder with --dry-run), builds the complete staged model and
writes the provenance workbook, the PDF report and the DXF section drawing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		log := logger.Build(cfg.Logging, os.Stderr)

		res := importer.ImportWorkbook(generateInput)
		for _, w := range res.Warnings {
			log.Warn().Msg(w)
		}
		if err := res.Err(); err != nil {
			return err
		}

		adapter, err := plaxis.AdapterFor(cfg.Modeler.Generation)
		if err != nil {
			return err
		}

		var mdl builder.Model
		if generateDryRun {
			mdl = plaxis.NewMemory(adapter)
			log.Info().Msg("dry run: recording model in memory")
		} else {
			mc := cfg.Modeler
			conn := &plaxis.Connector{
				ExePath:        mc.ExePath,
				Host:           mc.Host,
				Port:           mc.Port,
				Password:       mc.Password,
				ConnectTimeout: mc.ConnectTimeout.Duration(),
				PollInterval:   mc.PollInterval.Duration(),
				Log:            log,
			}
			if mc.ExePath != "" {
				if _, err := conn.Launch(cmd.Context()); err != nil {
					return err
				}
			}
			if err := conn.WaitReady(cmd.Context()); err != nil {
				return err
			}
			client := plaxis.NewHTTPClient(mc.Host, mc.Port, mc.Password)
			mdl = plaxis.NewSession(client, adapter, mc.CallTimeout.Duration(), log)
		}

		run, err := builder.NewRun(mdl, res.Inputs, log)
		if err != nil {
			return err
		}
		if err := run.Execute(); err != nil {
			return err
		}

		outDir := cfg.OutputDir
		if generateOut != "" {
			outDir = generateOut
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}

		provenance := filepath.Join(outDir, "provenance.xlsx")
		if err := export.WriteProvenanceWorkbook(provenance, &run.Registry); err != nil {
			return fmt.Errorf("provenance workbook: %w", err)
		}
		report := filepath.Join(outDir, "report.pdf")
		if err := export.ExportReportPDF(report, export.ReportData{
			RunID:    run.ID,
			Project:  res.Inputs.Project,
			Strata:   run.Strata,
			Registry: &run.Registry,
			Warnings: run.Warnings,
		}); err != nil {
			return fmt.Errorf("report: %w", err)
		}
		section := filepath.Join(outDir, "section.dxf")
		if err := export.ExportSectionDXF(section, res.Inputs); err != nil {
			return fmt.Errorf("section drawing: %w", err)
		}

		log.Info().
			Str("provenance", provenance).
			Str("report", report).
			Str("section", section).
			Msg("outputs written")

		fmt.Fprintf(cmd.OutOrStdout(), "Run %s complete: %d polygons, %d warnings\n",
			run.ID, len(run.Registry.Excavation)+len(run.Registry.Water), len(run.Warnings))
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateInput, "input", "i", "", "input workbook (.xlsx)")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "output directory (overrides config)")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "build in memory without a modeler")
	_ = generateCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(generateCmd)
}
