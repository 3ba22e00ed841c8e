// Package importer reads the single input workbook that drives a model
// generation run: one sheet per table, flexible column order, and
// case-insensitive header recognition.
package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/strataworks/erssgen/internal/model"
)

// Result holds the outcome of a workbook import. Errors make the input set
// unusable; warnings are survivable oddities the caller should surface.
type Result struct {
	Inputs   *model.InputSet
	Errors   []string
	Warnings []string
}

// Err collapses accumulated row errors into a single error, nil when the
// import is usable.
func (r Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("workbook import: %s", strings.Join(r.Errors, "; "))
}

// Sheet names. Unknown sheets in the workbook are ignored.
const (
	sheetBorehole   = "Borehole"
	sheetGeometry   = "Geometry Info"
	sheetSoilProps  = "Soil Properties"
	sheetPlateProps = "Plate Properties"
	sheetAnchors    = "Anchor Properties"
	sheetWalls      = "ERSS Wall Detail"
	sheetStruts     = "Strut Details"
	sheetLineLoads  = "Line Load"
	sheetExcavation = "Excavation Details"
	sheetSequence   = "Construction Sequence"
)

// headerAliases maps canonical column names to their accepted spellings
// (all lowercase). Shared across sheets; a sheet only looks up the columns
// it needs.
var headerAliases = map[string][]string{
	"top":          {"top", "top level", "top elevation", "from"},
	"bottom":       {"bottom", "bottom level", "bottom elevation", "to"},
	"soiltype":     {"soil type", "soiltype", "soil"},
	"spt":          {"spt", "spt n", "n value", "spt value"},
	"soilmodel":    {"soil model", "model"},
	"drainage":     {"drainage", "drainage type"},
	"gammaunsat":   {"gamma unsat", "gammaunsat", "unit weight unsat"},
	"gammasat":     {"gamma sat", "gammasat", "unit weight sat"},
	"eref":         {"eref", "e ref", "e'"},
	"nu":           {"nu", "poisson", "poisson ratio", "v"},
	"cref":         {"cref", "c ref", "cohesion", "c'"},
	"phi":          {"phi", "friction angle"},
	"kx":           {"kx", "perm x", "perm horizontal"},
	"ky":           {"ky", "perm y", "perm vertical"},
	"strength":     {"interface strength", "strength determination", "strength"},
	"rinter":       {"rinter", "r inter"},
	"k0determine":  {"k0 determination", "k0 determine", "k0 method"},
	"k0primary":    {"k0 primary", "k0"},
	"colour":       {"colour", "color"},
	"xmin":         {"x min", "xmin"},
	"ymin":         {"y min", "ymin"},
	"xmax":         {"x max", "xmax"},
	"ymax":         {"y max", "ymax"},
	"boreholex":    {"borehole x", "bh x", "borehole position"},
	"watertable":   {"water table", "gwl", "ground water level", "water level"},
	"modeltype":    {"model type"},
	"elementtype":  {"element type", "element"},
	"materialname": {"material name", "material"},
	"isotropic":    {"isotropic", "is isotropic"},
	"ea":           {"ea", "ea1"},
	"ei":           {"ei"},
	"w":            {"w", "weight"},
	"elasticity":   {"elasticity", "material type", "behaviour"},
	"lspacing":     {"lspacing", "l spacing", "spacing", "lout"},
	"wallname":     {"wall name", "wall", "wall id"},
	"xtop":         {"x top", "xtop"},
	"ytop":         {"y top", "ytop"},
	"xbottom":      {"x bottom", "xbottom"},
	"ybottom":      {"y bottom", "ybottom"},
	"strutname":    {"strut name", "strut", "strut id"},
	"struttype":    {"strut type", "anchor type", "kind"},
	"xleft":        {"x left", "xleft", "x1"},
	"yleft":        {"y left", "yleft", "y1"},
	"xright":       {"x right", "xright", "x2"},
	"yright":       {"y right", "yright", "y2"},
	"dirx":         {"direction x", "dir x", "dx"},
	"diry":         {"direction y", "dir y", "dy"},
	"loadname":     {"load name", "load", "load id"},
	"xstart":       {"x start", "xstart"},
	"ystart":       {"y start", "ystart"},
	"xend":         {"x end", "xend"},
	"yend":         {"y end", "yend"},
	"qx":           {"qx", "qx start"},
	"qy":           {"qy", "qy start"},
	"distribution": {"distribution"},
	"stageno":      {"stage no", "stage", "stage number"},
	"stagename":    {"stage name", "description"},
	"phaseno":      {"phase no", "phase", "phase id"},
	"phasename":    {"phase name"},
	"elemtype":     {"element type"},
	"elemname":     {"element name", "element"},
	"action":       {"action"},
	"title":        {"title", "project title"},
	"projectno":    {"project no", "project number", "job no"},
	"engineer":     {"engineer", "designed by"},
	"description":  {"description", "remarks"},
	"unitforce":    {"unit force", "force unit"},
	"unitlength":   {"unit length", "length unit"},
	"unittime":     {"unit time", "time unit"},
}

// sheet is one parsed worksheet: its data rows and a canonical-name to
// column-index mapping built from the header row.
type sheet struct {
	name string
	rows [][]string
	cols map[string]int
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// loadSheet reads one worksheet and resolves its header. Returns nil when
// the sheet is absent or has no header row.
func loadSheet(f *excelize.File, name string) *sheet {
	rows, err := f.GetRows(name)
	if err != nil || len(rows) == 0 {
		return nil
	}

	// First non-empty row is the header.
	start := 0
	for start < len(rows) && isEmptyRow(rows[start]) {
		start++
	}
	if start == len(rows) {
		return nil
	}

	cols := make(map[string]int)
	for i, cell := range rows[start] {
		n := normalize(cell)
		for canonical, aliases := range headerAliases {
			for _, alias := range aliases {
				if n == alias {
					if _, taken := cols[canonical]; !taken {
						cols[canonical] = i
					}
				}
			}
		}
	}
	return &sheet{name: name, rows: rows[start+1:], cols: cols}
}

// cell returns the trimmed value of a canonical column in a data row, empty
// when the column is unmapped or the row is short.
func (s *sheet) cell(row []string, col string) string {
	idx, ok := s.cols[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// rowReader parses one data row with error accumulation, so a sheet parser
// reads all its columns and checks failure once.
type rowReader struct {
	s     *sheet
	row   []string
	label string
	errs  *[]string
}

func (r rowReader) str(col string) string { return r.s.cell(r.row, col) }

func (r rowReader) f64(col string) float64 {
	v := r.s.cell(r.row, col)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*r.errs = append(*r.errs, fmt.Sprintf("%s: invalid number %q in column %s", r.label, v, col))
		return 0
	}
	return f
}

func (r rowReader) i(col string) int {
	v := r.s.cell(r.row, col)
	if v == "" {
		return 0
	}
	// Spreadsheets often render integers as floats.
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*r.errs = append(*r.errs, fmt.Sprintf("%s: invalid integer %q in column %s", r.label, v, col))
		return 0
	}
	return int(f)
}

func (r rowReader) boolean(col string) bool {
	switch normalize(r.s.cell(r.row, col)) {
	case "true", "yes", "y", "1":
		return true
	default:
		return false
	}
}

// forEachRow runs fn over every non-empty data row of a sheet, skipping the
// whole sheet silently when it is absent.
func forEachRow(f *excelize.File, name string, errs *[]string, fn func(r rowReader)) {
	s := loadSheet(f, name)
	if s == nil {
		return
	}
	for i, row := range s.rows {
		if isEmptyRow(row) {
			continue
		}
		fn(rowReader{s: s, row: row, label: fmt.Sprintf("%s row %d", name, i+2), errs: errs})
	}
}

func parseStrutType(v string, label string, errs *[]string) model.StrutType {
	switch strings.ReplaceAll(normalize(v), " ", "") {
	case "n2n", "nodetonode", "node2node":
		return model.StrutN2N
	case "fixedend", "fixed":
		return model.StrutFixedEnd
	default:
		*errs = append(*errs, fmt.Sprintf("%s: unknown strut type %q", label, v))
		return model.StrutN2N
	}
}

func parseAction(v string, label string, errs *[]string) model.SequenceAction {
	switch normalize(v) {
	case "activate", "on":
		return model.ActionActivate
	case "deactivate", "off", "remove", "excavate":
		return model.ActionDeactivate
	default:
		*errs = append(*errs, fmt.Sprintf("%s: unknown action %q", label, v))
		return model.ActionActivate
	}
}

// ImportWorkbook reads every known sheet of the input workbook into an
// input set. Row-level problems accumulate as errors; the stratigraphy is
// validated here so downstream geometry can trust it.
func ImportWorkbook(path string) Result {
	res := Result{Inputs: &model.InputSet{}}

	f, err := excelize.OpenFile(path)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("cannot open workbook: %v", err))
		return res
	}
	defer f.Close()

	in := res.Inputs
	errs := &res.Errors

	// Project and geometry are single-row sheets.
	forEachRow(f, sheetGeometry, errs, func(r rowReader) {
		in.Project = model.ProjectInfo{
			Title:       r.str("title"),
			ProjectNo:   r.str("projectno"),
			Engineer:    r.str("engineer"),
			Description: r.str("description"),
			UnitForce:   r.str("unitforce"),
			UnitLength:  r.str("unitlength"),
			UnitTime:    r.str("unittime"),
		}
		in.Geometry = model.GeometryInfo{
			XMin:        r.f64("xmin"),
			YMin:        r.f64("ymin"),
			XMax:        r.f64("xmax"),
			YMax:        r.f64("ymax"),
			BoreholeX:   r.f64("boreholex"),
			WaterTable:  r.f64("watertable"),
			ModelType:   r.str("modeltype"),
			ElementType: r.str("elementtype"),
		}
	})

	forEachRow(f, sheetBorehole, errs, func(r rowReader) {
		in.Borehole = append(in.Borehole, model.Layer{
			Top:      r.f64("top"),
			Bottom:   r.f64("bottom"),
			SoilType: r.str("soiltype"),
			SPT:      r.str("spt"),
		})
	})

	// Soil properties join onto borehole layers by soil type.
	props := make(map[string]model.Layer)
	forEachRow(f, sheetSoilProps, errs, func(r rowReader) {
		props[r.str("soiltype")] = model.Layer{
			SoilModel:    r.str("soilmodel"),
			DrainageType: r.str("drainage"),
			GammaUnsat:   r.f64("gammaunsat"),
			GammaSat:     r.f64("gammasat"),
			Eref:         r.f64("eref"),
			Nu:           r.f64("nu"),
			Cref:         r.f64("cref"),
			Phi:          r.f64("phi"),
			Kx:           r.f64("kx"),
			Ky:           r.f64("ky"),
			Strength:     r.str("strength"),
			Rinter:       r.f64("rinter"),
			K0Determine:  r.str("k0determine"),
			K0Primary:    r.f64("k0primary"),
			Colour:       r.i("colour"),
		}
	})
	for i := range in.Borehole {
		l := &in.Borehole[i]
		p, ok := props[l.SoilType]
		if !ok {
			if len(props) > 0 {
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("no soil properties for %q; material will use defaults", l.SoilType))
			}
			continue
		}
		top, bottom, soilType, spt := l.Top, l.Bottom, l.SoilType, l.SPT
		*l = p
		l.Top, l.Bottom, l.SoilType, l.SPT = top, bottom, soilType, spt
	}

	forEachRow(f, sheetPlateProps, errs, func(r rowReader) {
		in.Plates = append(in.Plates, model.PlateProperties{
			MaterialName: r.str("materialname"),
			IsIsotropic:  r.boolean("isotropic"),
			EA:           r.f64("ea"),
			EI:           r.f64("ei"),
			Nu:           r.f64("nu"),
			W:            r.f64("w"),
			Colour:       r.i("colour"),
		})
	})

	forEachRow(f, sheetAnchors, errs, func(r rowReader) {
		in.Anchors = append(in.Anchors, model.AnchorProperties{
			MaterialName: r.str("materialname"),
			Elasticity:   r.str("elasticity"),
			EA:           r.f64("ea"),
			LSpacing:     r.f64("lspacing"),
			Colour:       r.i("colour"),
		})
	})

	forEachRow(f, sheetWalls, errs, func(r rowReader) {
		in.Walls = append(in.Walls, model.WallDetail{
			WallName:     r.str("wallname"),
			MaterialName: r.str("materialname"),
			XTop:         r.f64("xtop"),
			YTop:         r.f64("ytop"),
			XBottom:      r.f64("xbottom"),
			YBottom:      r.f64("ybottom"),
		})
	})

	forEachRow(f, sheetStruts, errs, func(r rowReader) {
		in.Struts = append(in.Struts, model.StrutDetail{
			StrutName:    r.str("strutname"),
			MaterialName: r.str("materialname"),
			Type:         parseStrutType(r.str("struttype"), r.label, errs),
			XLeft:        r.f64("xleft"),
			YLeft:        r.f64("yleft"),
			XRight:       r.f64("xright"),
			YRight:       r.f64("yright"),
			DirectionX:   r.f64("dirx"),
			DirectionY:   r.f64("diry"),
		})
	})

	forEachRow(f, sheetLineLoads, errs, func(r rowReader) {
		in.LineLoads = append(in.LineLoads, model.LineLoadDetail{
			LoadName:     r.str("loadname"),
			XStart:       r.f64("xstart"),
			YStart:       r.f64("ystart"),
			XEnd:         r.f64("xend"),
			YEnd:         r.f64("yend"),
			QxStart:      r.f64("qx"),
			QyStart:      r.f64("qy"),
			Distribution: r.str("distribution"),
		})
	})

	forEachRow(f, sheetExcavation, errs, func(r rowReader) {
		in.Excavations = append(in.Excavations, model.ExcavationStage{
			StageNo:   r.i("stageno"),
			StageName: r.str("stagename"),
			XLeft:     r.f64("xleft"),
			XRight:    r.f64("xright"),
			From:      r.f64("top"),
			To:        r.f64("bottom"),
		})
	})

	forEachRow(f, sheetSequence, errs, func(r rowReader) {
		in.Sequence = append(in.Sequence, model.SequenceStep{
			PhaseNo:     r.str("phaseno"),
			PhaseName:   r.str("phasename"),
			ElementType: r.str("elemtype"),
			ElementName: r.str("elemname"),
			Action:      parseAction(r.str("action"), r.label, errs),
		})
	})

	if err := in.Borehole.Validate(); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", sheetBorehole, err))
	}

	return res
}
