package builder

import (
	"fmt"
	"strconv"

	"github.com/strataworks/erssgen/internal/model"
)

// elementNames resolves one sequence step to the model element names it acts
// on. Excavation steps fan out to every polygon of the stage; structural
// steps resolve through the registry so a typo in the sequence sheet is
// caught instead of silently toggling nothing.
func (r *Run) elementNames(step model.SequenceStep) ([]string, error) {
	switch step.ElementType {
	case "Excavation":
		stageNo, err := strconv.Atoi(step.ElementName)
		if err != nil {
			return nil, fmt.Errorf("excavation step needs a stage number, got %q", step.ElementName)
		}
		names := r.Registry.PolygonsForStage(stageNo)
		if len(names) == 0 {
			return nil, fmt.Errorf("no polygons recorded for stage %d", stageNo)
		}
		return names, nil

	case "ERSS Wall":
		for _, p := range r.Registry.Plates {
			if p.PlateName == step.ElementName || p.PlateName == "plate_"+step.ElementName {
				return []string{p.PlateName, p.PositiveInterface, p.NegativeInterface}, nil
			}
		}
		return nil, fmt.Errorf("unknown wall %q", step.ElementName)

	case "Strut":
		for _, s := range r.Registry.Struts {
			if s.StrutName == step.ElementName {
				return []string{s.StrutName}, nil
			}
		}
		return nil, fmt.Errorf("unknown strut %q", step.ElementName)

	case "Line Load":
		for _, l := range r.Registry.LineLoads {
			if l.LoadName == step.ElementName {
				return []string{l.LoadName}, nil
			}
		}
		return nil, fmt.Errorf("unknown line load %q", step.ElementName)

	default:
		return nil, fmt.Errorf("unknown element type %q", step.ElementType)
	}
}

// DefineConstructionSequence creates one phase per distinct PhaseNo, in
// first-appearance order, and applies each step's activation inside its
// phase. A step that cannot be resolved or applied becomes a warning; the
// remaining sequence still runs.
func (r *Run) DefineConstructionSequence() error {
	created := make(map[string]bool)
	for _, step := range r.Inputs.Sequence {
		if !created[step.PhaseNo] {
			if err := r.m.AddPhase(step.PhaseNo, step.PhaseName); err != nil {
				return fmt.Errorf("phase %s: %w", step.PhaseNo, err)
			}
			created[step.PhaseNo] = true
		}

		names, err := r.elementNames(step)
		if err != nil {
			r.warn(model.MutationFailureWarning(step.ElementName, err))
			continue
		}
		for _, name := range names {
			var applyErr error
			switch step.Action {
			case model.ActionActivate:
				applyErr = r.m.Activate(name, step.PhaseNo)
			case model.ActionDeactivate:
				applyErr = r.m.Deactivate(name, step.PhaseNo)
			default:
				applyErr = fmt.Errorf("unknown action %q", step.Action)
			}
			if applyErr != nil {
				r.warn(model.MutationFailureWarning(name, applyErr))
			}
		}
	}
	return nil
}

// DefineWaterConditions partitions clusters per excavation phase: the dug
// stage's polygons go dry, while the soil remaining beneath it and the water
// zone interpolate pore pressure from their neighbours. Before the staged
// partition, every polygon starts out interpolating in the first phase so
// clusters untouched by the sequence still carry a defined pore pressure.
func (r *Run) DefineWaterConditions() error {
	if len(r.Inputs.Sequence) > 0 {
		first := r.Inputs.Sequence[0].PhaseNo
		for _, name := range r.Registry.AllPolygons() {
			if err := r.m.SetWaterInterpolate(name, first); err != nil {
				r.warn(model.MutationFailureWarning(name, err))
			}
		}
	}
	for _, step := range r.Inputs.Sequence {
		if step.ElementType != "Excavation" || step.Action != model.ActionDeactivate {
			continue
		}
		stageNo, err := strconv.Atoi(step.ElementName)
		if err != nil {
			continue // already warned during the sequence pass
		}

		for _, name := range r.Registry.PolygonsForStage(stageNo) {
			if err := r.m.SetWaterDry(name, step.PhaseNo); err != nil {
				r.warn(model.MutationFailureWarning(name, err))
			}
		}
		wet := r.Registry.PolygonsBelowStage(stageNo)
		for _, rec := range r.Registry.Water {
			wet = append(wet, rec.PolygonName)
		}
		for _, name := range wet {
			if err := r.m.SetWaterInterpolate(name, step.PhaseNo); err != nil {
				r.warn(model.MutationFailureWarning(name, err))
			}
		}
	}
	return nil
}
