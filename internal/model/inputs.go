package model

// Input tables for one model-generation run. Each type mirrors one sheet of
// the input workbook; the importer fills them and the builder consumes them.

// ProjectInfo carries the project header fields and the model units.
type ProjectInfo struct {
	Title       string `json:"title"`
	ProjectNo   string `json:"project_no"`
	Engineer    string `json:"engineer"`
	Description string `json:"description"`
	UnitForce   string `json:"unit_force"`  // e.g. "kN"
	UnitLength  string `json:"unit_length"` // e.g. "m"
	UnitTime    string `json:"unit_time"`   // e.g. "day"
}

// GeometryInfo defines the working area, the borehole position and the
// global ground water table.
type GeometryInfo struct {
	XMin        float64 `json:"x_min"`
	YMin        float64 `json:"y_min"`
	XMax        float64 `json:"x_max"`
	YMax        float64 `json:"y_max"`
	BoreholeX   float64 `json:"borehole_x"`
	WaterTable  float64 `json:"water_table"`
	ModelType   string  `json:"model_type"`   // e.g. "Plane Strain"
	ElementType string  `json:"element_type"` // e.g. "15noded"
}

// PlateProperties defines one wall (plate) material.
type PlateProperties struct {
	MaterialName string  `json:"material_name"`
	IsIsotropic  bool    `json:"is_isotropic"`
	EA           float64 `json:"ea"`
	EI           float64 `json:"ei"`
	Nu           float64 `json:"nu"`
	W            float64 `json:"w"`
	Colour       int     `json:"colour"`
}

// AnchorProperties defines one strut (anchor) material.
type AnchorProperties struct {
	MaterialName string  `json:"material_name"`
	Elasticity   string  `json:"elasticity"` // "Elastic" or "Elastoplastic"
	EA           float64 `json:"ea"`
	LSpacing     float64 `json:"l_spacing"`
	Colour       int     `json:"colour"`
}

// WallDetail places one retaining wall as a vertical plate with interfaces.
type WallDetail struct {
	WallName     string  `json:"wall_name"`
	MaterialName string  `json:"material_name"`
	XTop         float64 `json:"x_top"`
	YTop         float64 `json:"y_top"`
	XBottom      float64 `json:"x_bottom"`
	YBottom      float64 `json:"y_bottom"`
}

// StrutType distinguishes the two supported strut models.
type StrutType string

const (
	StrutN2N      StrutType = "n2n"      // node-to-node anchor between two points
	StrutFixedEnd StrutType = "fixedend" // fixed-end anchor at a single point
)

// StrutDetail places one strut.
type StrutDetail struct {
	StrutName    string    `json:"strut_name"`
	MaterialName string    `json:"material_name"`
	Type         StrutType `json:"type"`
	XLeft        float64   `json:"x_left"`
	YLeft        float64   `json:"y_left"`
	XRight       float64   `json:"x_right"` // unused for fixedend
	YRight       float64   `json:"y_right"` // unused for fixedend
	DirectionX   float64   `json:"direction_x"`
	DirectionY   float64   `json:"direction_y"`
}

// LineLoadDetail places one distributed line load.
type LineLoadDetail struct {
	LoadName     string  `json:"load_name"`
	XStart       float64 `json:"x_start"`
	YStart       float64 `json:"y_start"`
	XEnd         float64 `json:"x_end"`
	YEnd         float64 `json:"y_end"`
	QxStart      float64 `json:"qx_start"`
	QyStart      float64 `json:"qy_start"`
	Distribution string  `json:"distribution"` // only "Uniform" is modelled
}

// ExcavationStage is one step of the staged dig sequence. From and To are
// elevations (From above To); From == To marks an as-built level marker.
type ExcavationStage struct {
	StageNo   int     `json:"stage_no"`
	StageName string  `json:"stage_name"`
	XLeft     float64 `json:"x_left"`
	XRight    float64 `json:"x_right"`
	From      float64 `json:"from"`
	To        float64 `json:"to"`
}

// Rect returns the removal zone for this stage.
func (e ExcavationStage) Rect() Rect {
	return Rect{XLeft: e.XLeft, XRight: e.XRight, YTop: e.From, YBottom: e.To}
}

// SequenceAction is what a construction-sequence step does to an element.
type SequenceAction string

const (
	ActionActivate   SequenceAction = "Activate"
	ActionDeactivate SequenceAction = "Deactivate"
)

// SequenceStep is one row of the construction sequence: in phase PhaseNo,
// apply Action to the named element of the given type.
type SequenceStep struct {
	PhaseNo     string         `json:"phase_no"`
	PhaseName   string         `json:"phase_name"`
	ElementType string         `json:"element_type"` // "Excavation", "ERSS Wall", "Strut", "Line Load"
	ElementName string         `json:"element_name"` // stage number for excavations, element name otherwise
	Action      SequenceAction `json:"action"`
}

// InputSet bundles every table of one input workbook.
type InputSet struct {
	Project     ProjectInfo        `json:"project"`
	Geometry    GeometryInfo       `json:"geometry"`
	Borehole    Stratigraphy       `json:"borehole"`
	Plates      []PlateProperties  `json:"plates"`
	Anchors     []AnchorProperties `json:"anchors"`
	Walls       []WallDetail       `json:"walls"`
	Struts      []StrutDetail      `json:"struts"`
	LineLoads   []LineLoadDetail   `json:"line_loads"`
	Excavations []ExcavationStage  `json:"excavations"`
	Sequence    []SequenceStep     `json:"sequence"`
}
