package builder

import (
	"fmt"

	"github.com/strataworks/erssgen/internal/engine"
)

// DefineExcavation populates the removal zone of every excavation stage,
// in sheet order. Mutation failures inside a stage degrade to warnings;
// only structural errors (inverted rectangles, a dead session) abort.
func (r *Run) DefineExcavation() error {
	for _, st := range r.Inputs.Excavations {
		base := fmt.Sprintf("polygon_Stage%d_Excavation", st.StageNo)
		res, err := engine.PopulateExcavationStage(r.m, st.Rect(), r.Strata, st.StageNo, base)
		if err != nil {
			return fmt.Errorf("stage %d (%s): %w", st.StageNo, st.StageName, err)
		}
		r.Registry.Excavation = append(r.Registry.Excavation, res.Records...)
		r.warn(res.Warnings...)
		if len(res.Failed) > 0 {
			r.log.Warn().Int("stage", st.StageNo).Strs("failed", res.Failed).Msg("stage polygons incomplete")
		}
	}
	return nil
}
