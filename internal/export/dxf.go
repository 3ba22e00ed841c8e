package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/table"

	"github.com/strataworks/erssgen/internal/model"
)

// DXF layer names for the section drawing.
const (
	layerContour = "CONTOUR"
	layerStrata  = "STRATA"
	layerExcav   = "EXCAVATION"
	layerWalls   = "WALLS"
	layerStruts  = "STRUTS"
	layerLoads   = "LOADS"
)

// ExportSectionDXF draws the model cross-section for CAD review: the working
// area, the layer boundaries, every excavation stage outline, the walls,
// struts and line loads.
func ExportSectionDXF(path string, in *model.InputSet) error {
	d := dxf.NewDrawing()

	if _, err := d.AddLayer(layerContour, color.White, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("layer %s: %w", layerContour, err)
	}
	g := in.Geometry
	if _, err := d.LwPolyline(true,
		[]float64{g.XMin, g.YMin},
		[]float64{g.XMax, g.YMin},
		[]float64{g.XMax, g.YMax},
		[]float64{g.XMin, g.YMax},
	); err != nil {
		return err
	}

	if _, err := d.AddLayer(layerStrata, color.Green, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("layer %s: %w", layerStrata, err)
	}
	for _, l := range in.Borehole {
		if _, err := d.Line(g.XMin, l.Bottom, 0, g.XMax, l.Bottom, 0); err != nil {
			return err
		}
	}

	if _, err := d.AddLayer(layerExcav, color.Yellow, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("layer %s: %w", layerExcav, err)
	}
	for _, st := range in.Excavations {
		if st.From == st.To {
			// Level markers draw as a single line.
			if _, err := d.Line(st.XLeft, st.From, 0, st.XRight, st.From, 0); err != nil {
				return err
			}
			continue
		}
		if _, err := d.LwPolyline(true,
			[]float64{st.XLeft, st.From},
			[]float64{st.XLeft, st.To},
			[]float64{st.XRight, st.To},
			[]float64{st.XRight, st.From},
		); err != nil {
			return err
		}
	}

	if _, err := d.AddLayer(layerWalls, color.Red, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("layer %s: %w", layerWalls, err)
	}
	for _, w := range in.Walls {
		if _, err := d.Line(w.XTop, w.YTop, 0, w.XBottom, w.YBottom, 0); err != nil {
			return err
		}
	}

	if _, err := d.AddLayer(layerStruts, color.Cyan, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("layer %s: %w", layerStruts, err)
	}
	for _, s := range in.Struts {
		x2, y2 := s.XRight, s.YRight
		if s.Type == model.StrutFixedEnd {
			// Fixed-end struts draw as a short stub along their direction.
			x2 = s.XLeft + s.DirectionX
			y2 = s.YLeft + s.DirectionY
		}
		if _, err := d.Line(s.XLeft, s.YLeft, 0, x2, y2, 0); err != nil {
			return err
		}
	}

	if _, err := d.AddLayer(layerLoads, color.Magenta, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("layer %s: %w", layerLoads, err)
	}
	for _, l := range in.LineLoads {
		if _, err := d.Line(l.XStart, l.YStart, 0, l.XEnd, l.YEnd, 0); err != nil {
			return err
		}
	}

	return d.SaveAs(path)
}
