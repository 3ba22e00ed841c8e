package builder

import (
	"fmt"

	"github.com/strataworks/erssgen/internal/engine"
	"github.com/strataworks/erssgen/internal/model"
)

// waterZoneRect spans the excavation footprint from the final dig level down
// to the bottom of the borehole log. Returns false when there is nothing to
// span: no excavation stages, or a final level already at the log floor.
func (r *Run) waterZoneRect() (model.Rect, bool) {
	if len(r.Inputs.Excavations) == 0 {
		return model.Rect{}, false
	}

	first := r.Inputs.Excavations[0]
	rect := model.Rect{
		XLeft:  first.XLeft,
		XRight: first.XRight,
		YTop:   first.To,
	}
	for _, st := range r.Inputs.Excavations[1:] {
		if st.XLeft < rect.XLeft {
			rect.XLeft = st.XLeft
		}
		if st.XRight > rect.XRight {
			rect.XRight = st.XRight
		}
		if st.To < rect.YTop {
			rect.YTop = st.To
		}
	}

	rect.YBottom = r.Strata.Floor()
	if rect.YTop <= rect.YBottom {
		return model.Rect{}, false
	}
	return rect, true
}

// DefineWaterZone creates the pore-pressure zone under the final excavation
// level so phase water conditions have clusters to act on. Skipped when the
// dig never leaves soil beneath it.
func (r *Run) DefineWaterZone() error {
	rect, ok := r.waterZoneRect()
	if !ok {
		r.log.Debug().Msg("no water zone to define")
		return nil
	}

	res, err := engine.PopulateWaterZone(r.m, rect, r.Strata, "polygon_WaterTable")
	if err != nil {
		return fmt.Errorf("water zone: %w", err)
	}
	r.Registry.Water = append(r.Registry.Water, res.Records...)
	r.warn(res.Warnings...)
	return nil
}
