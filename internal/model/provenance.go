package model

// ProvenanceRecord is one row of the provenance table: one generated polygon
// with the stage it belongs to and the vertical band it covers. Water-zone
// polygons use StageNo 0. The staging logic reads this table to know which
// polygon names to activate or deactivate per construction phase.
type ProvenanceRecord struct {
	StageNo     int     `json:"stage_no"`
	Top         float64 `json:"top"`
	Bottom      float64 `json:"bottom"`
	PolygonName string  `json:"polygon_name"`
}

// PlateRecord traces one created wall back to its model element names.
type PlateRecord struct {
	PlateName         string `json:"plate_name"`
	MaterialName      string `json:"material_name"`
	LineName          string `json:"line_name"`
	PointTopName      string `json:"point_top_name"`
	PointBottomName   string `json:"point_bottom_name"`
	PositiveInterface string `json:"positive_interface"`
	NegativeInterface string `json:"negative_interface"`
}

// StrutRecord traces one created strut. LineName is empty for fixed-end
// struts, which attach to a single point.
type StrutRecord struct {
	StrutName    string    `json:"strut_name"`
	MaterialName string    `json:"material_name"`
	Type         StrutType `json:"type"`
	LineName     string    `json:"line_name"`
	PointName    string    `json:"point_name"`
}

// LineLoadRecord traces one created line load.
type LineLoadRecord struct {
	LoadName string `json:"load_name"`
	LineName string `json:"line_name"`
}

// Registry collects every element created during a run, keyed the way the
// construction sequence refers to them. The caller owns persistence.
type Registry struct {
	Excavation []ProvenanceRecord `json:"excavation"`
	Water      []ProvenanceRecord `json:"water"`
	Plates     []PlateRecord      `json:"plates"`
	Struts     []StrutRecord      `json:"struts"`
	LineLoads  []LineLoadRecord   `json:"line_loads"`
}

// PolygonsForStage returns the polygon names generated for one excavation
// stage, in creation order.
func (r *Registry) PolygonsForStage(stageNo int) []string {
	var names []string
	for _, rec := range r.Excavation {
		if rec.StageNo == stageNo {
			names = append(names, rec.PolygonName)
		}
	}
	return names
}

// PolygonsBelowStage returns the polygon names of all excavation records
// after the given stage's block, i.e. soil that remains in place (wet) once
// the stage has been dug.
func (r *Registry) PolygonsBelowStage(stageNo int) []string {
	var names []string
	seen := false
	for _, rec := range r.Excavation {
		if rec.StageNo == stageNo {
			seen = true
			continue
		}
		if seen {
			names = append(names, rec.PolygonName)
		}
	}
	return names
}

// AllPolygons returns excavation then water polygon names, in creation order.
func (r *Registry) AllPolygons() []string {
	names := make([]string, 0, len(r.Excavation)+len(r.Water))
	for _, rec := range r.Excavation {
		names = append(names, rec.PolygonName)
	}
	for _, rec := range r.Water {
		names = append(names, rec.PolygonName)
	}
	return names
}

// WallLine returns the line name carrying the named wall's plate.
func (r *Registry) WallLine(plateName string) (string, bool) {
	for _, p := range r.Plates {
		if p.PlateName == plateName {
			return p.LineName, true
		}
	}
	return "", false
}

// StrutAnchor returns the model element a strut's anchor attaches to:
// the line for n2n struts, the point for fixed-end struts.
func (r *Registry) StrutAnchor(strutName string) (string, bool) {
	for _, s := range r.Struts {
		if s.StrutName == strutName {
			if s.Type == StrutFixedEnd {
				return s.PointName, true
			}
			return s.LineName, true
		}
	}
	return "", false
}

// LoadLine returns the line name carrying the named line load.
func (r *Registry) LoadLine(loadName string) (string, bool) {
	for _, l := range r.LineLoads {
		if l.LoadName == loadName {
			return l.LineName, true
		}
	}
	return "", false
}
