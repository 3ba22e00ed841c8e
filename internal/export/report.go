package export

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/strataworks/erssgen/internal/model"
)

// Page layout constants (A4 portrait in mm).
const (
	rptPageWidth  = 210.0
	rptMargin     = 15.0
	rptLineHeight = 6.0
	rptTableWidth = rptPageWidth - 2*rptMargin
)

// ReportData bundles everything the summary report renders.
type ReportData struct {
	RunID    string
	Project  model.ProjectInfo
	Strata   model.Stratigraphy
	Registry *model.Registry
	Warnings []model.Warning
}

// ExportReportPDF writes a run summary: project header, the borehole log as
// imported, the per-stage polygon provenance and every warning collected
// during the build.
func ExportReportPDF(path string, data ReportData) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, rptMargin)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(rptTableWidth, 10, "Staged Excavation Model Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(rptTableWidth, rptLineHeight,
		fmt.Sprintf("Project: %s (%s)", data.Project.Title, data.Project.ProjectNo), "", 1, "L", false, 0, "")
	pdf.CellFormat(rptTableWidth, rptLineHeight,
		fmt.Sprintf("Run %s, generated %s", data.RunID, time.Now().Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	renderStrataTable(pdf, data.Strata)
	renderProvenance(pdf, data.Registry)
	renderWarnings(pdf, data.Warnings)

	return pdf.OutputFileAndClose(path)
}

func tableHeader(pdf *fpdf.Fpdf, widths []float64, titles []string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, title := range titles {
		pdf.CellFormat(widths[i], rptLineHeight, title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
}

func renderStrataTable(pdf *fpdf.Fpdf, strata model.Stratigraphy) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(rptTableWidth, 8, "Borehole Log", "", 1, "L", false, 0, "")

	widths := []float64{50, 30, 30, 30, 40}
	tableHeader(pdf, widths, []string{"Soil Type", "Top (m)", "Bottom (m)", "SPT", "Material"})
	for _, l := range strata {
		pdf.CellFormat(widths[0], rptLineHeight, l.SoilType, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], rptLineHeight, fmt.Sprintf("%.2f", l.Top), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], rptLineHeight, fmt.Sprintf("%.2f", l.Bottom), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], rptLineHeight, l.SPT, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], rptLineHeight, l.UniqueName, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func renderProvenance(pdf *fpdf.Fpdf, reg *model.Registry) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(rptTableWidth, 8, "Generated Polygons", "", 1, "L", false, 0, "")

	stages := make(map[int][]model.ProvenanceRecord)
	var nums []int
	for _, rec := range reg.Excavation {
		if _, seen := stages[rec.StageNo]; !seen {
			nums = append(nums, rec.StageNo)
		}
		stages[rec.StageNo] = append(stages[rec.StageNo], rec)
	}
	sort.Ints(nums)

	widths := []float64{25, 30, 30, 95}
	tableHeader(pdf, widths, []string{"Stage", "Top (m)", "Bottom (m)", "Polygon"})
	emit := func(stage string, recs []model.ProvenanceRecord) {
		for _, rec := range recs {
			pdf.CellFormat(widths[0], rptLineHeight, stage, "1", 0, "L", false, 0, "")
			pdf.CellFormat(widths[1], rptLineHeight, fmt.Sprintf("%.2f", rec.Top), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[2], rptLineHeight, fmt.Sprintf("%.2f", rec.Bottom), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[3], rptLineHeight, rec.PolygonName, "1", 0, "L", false, 0, "")
			pdf.Ln(-1)
		}
	}
	for _, n := range nums {
		emit(fmt.Sprintf("%d", n), stages[n])
	}
	emit("Water", reg.Water)
	pdf.Ln(4)
}

func renderWarnings(pdf *fpdf.Fpdf, warnings []model.Warning) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(rptTableWidth, 8, fmt.Sprintf("Warnings (%d)", len(warnings)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)

	if len(warnings) == 0 {
		pdf.CellFormat(rptTableWidth, rptLineHeight, "None.", "", 1, "L", false, 0, "")
		return
	}
	for _, w := range warnings {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(35, rptLineHeight, string(w.Kind), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(rptTableWidth-35, rptLineHeight, fmt.Sprintf("%s: %s", w.Subject, w.Detail), "", "L", false)
	}
}
