package model

import "fmt"

// Point represents a 2D coordinate in model space (metres).
// Y is elevation: larger values are shallower.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Layer is one soil layer of a borehole log. Top and Bottom are elevations,
// so Top > Bottom for any non-degenerate layer.
type Layer struct {
	Top      float64 `json:"top"`
	Bottom   float64 `json:"bottom"`
	SoilType string  `json:"soil_type"`

	// Material properties carried alongside the geometry. These come straight
	// from the borehole sheet and feed soil material creation; the geometry
	// engine only looks at Top/Bottom/SoilType.
	SPT          string  `json:"spt,omitempty"`
	SoilModel    string  `json:"soil_model,omitempty"`
	DrainageType string  `json:"drainage_type,omitempty"`
	GammaUnsat   float64 `json:"gamma_unsat,omitempty"`
	GammaSat     float64 `json:"gamma_sat,omitempty"`
	Eref         float64 `json:"eref,omitempty"`
	Nu           float64 `json:"nu,omitempty"`
	Cref         float64 `json:"cref,omitempty"`
	Phi          float64 `json:"phi,omitempty"`
	Kx           float64 `json:"kx,omitempty"`
	Ky           float64 `json:"ky,omitempty"`
	Strength     string  `json:"strength,omitempty"`
	Rinter       float64 `json:"rinter,omitempty"`
	K0Determine  string  `json:"k0_determination,omitempty"`
	K0Primary    float64 `json:"k0_primary,omitempty"`
	Colour       int     `json:"colour,omitempty"`

	// UniqueName disambiguates repeated soil types within one borehole.
	// Assigned during material creation; empty until then.
	UniqueName string `json:"unique_name,omitempty"`
}

// MaterialLabel returns the label used to match this layer against the
// material catalog: the unique name when one has been assigned, otherwise
// the raw soil type.
func (l Layer) MaterialLabel() string {
	if l.UniqueName != "" {
		return l.UniqueName
	}
	return l.SoilType
}

// Stratigraphy is an ordered borehole log, shallowest layer first.
type Stratigraphy []Layer

const elevTolerance = 1e-9

// Validate checks the invariants the geometry engine relies on: the log is
// non-empty, every layer has Top > Bottom, and adjacent layers are contiguous
// (no gaps, no overlaps). The importer calls this on ingestion so the engine
// can treat the log as a trusted snapshot.
func (s Stratigraphy) Validate() error {
	if len(s) == 0 {
		return ErrEmptyStratigraphy
	}
	for i, l := range s {
		if l.Top <= l.Bottom {
			return fmt.Errorf("layer %d (%s): top %.3f must be above bottom %.3f", i+1, l.SoilType, l.Top, l.Bottom)
		}
		if l.SoilType == "" {
			return fmt.Errorf("layer %d: missing soil type", i+1)
		}
		if i > 0 {
			prev := s[i-1]
			gap := prev.Bottom - l.Top
			if gap > elevTolerance {
				return fmt.Errorf("gap between layer %d (%s) bottom %.3f and layer %d (%s) top %.3f",
					i, prev.SoilType, prev.Bottom, i+1, l.SoilType, l.Top)
			}
			if gap < -elevTolerance {
				return fmt.Errorf("overlap between layer %d (%s) bottom %.3f and layer %d (%s) top %.3f",
					i, prev.SoilType, prev.Bottom, i+1, l.SoilType, l.Top)
			}
		}
	}
	return nil
}

// Top returns the elevation of the shallowest layer boundary.
func (s Stratigraphy) Top() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[0].Top
}

// Floor returns the elevation of the deepest layer bottom.
func (s Stratigraphy) Floor() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Bottom
}

// Rect is an axis-aligned target rectangle: an excavation-stage removal zone
// or a water-pressure zone. Elevations decrease downward, so YTop >= YBottom.
// Sloping ground (differing edge elevations) is not supported.
type Rect struct {
	XLeft   float64 `json:"x_left"`
	XRight  float64 `json:"x_right"`
	YTop    float64 `json:"y_top"`
	YBottom float64 `json:"y_bottom"`
}

// Validate rejects inverted rectangles. A zero-height rectangle
// (YTop == YBottom) is legal: as-built staging markers use them.
func (r Rect) Validate() error {
	if r.YTop < r.YBottom {
		return fmt.Errorf("%w: top %.3f below bottom %.3f", ErrInvalidRectangle, r.YTop, r.YBottom)
	}
	if r.XRight <= r.XLeft {
		return fmt.Errorf("%w: right edge %.3f not right of left edge %.3f", ErrInvalidRectangle, r.XRight, r.XLeft)
	}
	return nil
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 {
	return r.YTop - r.YBottom
}

// PolygonDescriptor is one axis-aligned sub-rectangle produced by the
// decomposer, entirely contained in a single stratigraphy layer. Corner order
// matches the modeler convention: top-left, bottom-left, bottom-right,
// top-right.
type PolygonDescriptor struct {
	Name     string   `json:"name"`
	Top      float64  `json:"top"`
	Bottom   float64  `json:"bottom"`
	SoilType string   `json:"soil_type"`
	Corners  [4]Point `json:"corners"`
}

// NewPolygonDescriptor builds a descriptor for the horizontal band
// [top, bottom] of the given rectangle.
func NewPolygonDescriptor(name string, r Rect, top, bottom float64, soilType string) PolygonDescriptor {
	return PolygonDescriptor{
		Name:     name,
		Top:      top,
		Bottom:   bottom,
		SoilType: soilType,
		Corners: [4]Point{
			{X: r.XLeft, Y: top},
			{X: r.XLeft, Y: bottom},
			{X: r.XRight, Y: bottom},
			{X: r.XRight, Y: top},
		},
	}
}
