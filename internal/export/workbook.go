// Package export writes the review outputs of a model-generation run: the
// provenance workbook, the PDF summary report and the DXF section drawing.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/strataworks/erssgen/internal/model"
)

// Provenance sheet names.
const (
	sheetExcavation = "Excavation_Polygon"
	sheetWater      = "Water_Polygon"
	sheetPlates     = "Plates"
	sheetStruts     = "Struts"
	sheetLineLoads  = "Line Load"
)

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func provenanceRows(records []model.ProvenanceRecord) [][]any {
	rows := [][]any{{"Stage No", "Top", "Bottom", "Polygon Name"}}
	for _, r := range records {
		rows = append(rows, []any{r.StageNo, r.Top, r.Bottom, r.PolygonName})
	}
	return rows
}

// WriteProvenanceWorkbook persists the element registry of one run so a later
// session (or a reviewer) can map every model element back to its input row.
func WriteProvenanceWorkbook(path string, reg *model.Registry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeRows(f, sheetExcavation, provenanceRows(reg.Excavation)); err != nil {
		return fmt.Errorf("sheet %s: %w", sheetExcavation, err)
	}
	if err := writeRows(f, sheetWater, provenanceRows(reg.Water)); err != nil {
		return fmt.Errorf("sheet %s: %w", sheetWater, err)
	}

	plates := [][]any{{"Plate Name", "Material", "Line", "Point Top", "Point Bottom", "Positive Interface", "Negative Interface"}}
	for _, p := range reg.Plates {
		plates = append(plates, []any{
			p.PlateName, p.MaterialName, p.LineName,
			p.PointTopName, p.PointBottomName,
			p.PositiveInterface, p.NegativeInterface,
		})
	}
	if err := writeRows(f, sheetPlates, plates); err != nil {
		return fmt.Errorf("sheet %s: %w", sheetPlates, err)
	}

	struts := [][]any{{"Strut Name", "Material", "Type", "Line", "Point"}}
	for _, s := range reg.Struts {
		struts = append(struts, []any{s.StrutName, s.MaterialName, string(s.Type), s.LineName, s.PointName})
	}
	if err := writeRows(f, sheetStruts, struts); err != nil {
		return fmt.Errorf("sheet %s: %w", sheetStruts, err)
	}

	loads := [][]any{{"Load Name", "Line"}}
	for _, l := range reg.LineLoads {
		loads = append(loads, []any{l.LoadName, l.LineName})
	}
	if err := writeRows(f, sheetLineLoads, loads); err != nil {
		return fmt.Errorf("sheet %s: %w", sheetLineLoads, err)
	}

	// Drop the default sheet so the workbook opens on the excavation table.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	return f.SaveAs(path)
}
