package engine

import (
	"fmt"

	"github.com/strataworks/erssgen/internal/model"
)

// Mutator is the slice of the external modeler the population driver needs.
// Calls are synchronous round trips to the scripting session and may fail
// individually; the driver records failures and keeps going.
type Mutator interface {
	CreatePolygon(corners [4]model.Point, name string) error
	AssignMaterial(polygonName, materialName string) error
	ListMaterials() ([]string, error)
}

// PopulateResult is the outcome of one populate call: the provenance rows
// for every polygon that was created, the non-fatal warnings collected along
// the way, and the names of descriptors whose mutation calls failed.
type PopulateResult struct {
	Records  []model.ProvenanceRecord
	Warnings []model.Warning
	Failed   []string
}

// PopulateExcavationStage decomposes the removal zone of one excavation
// stage, creates one polygon per descriptor and assigns the matched soil
// material. Provenance rows carry the stage number for later phase
// activation.
func PopulateExcavationStage(m Mutator, rect model.Rect, strata model.Stratigraphy, stageNo int, baseName string) (PopulateResult, error) {
	return populate(m, rect, strata, stageNo, baseName)
}

// PopulateWaterZone is PopulateExcavationStage for a water-pressure zone.
// Water polygons belong to no excavation stage, so StageNo is recorded as 0.
func PopulateWaterZone(m Mutator, rect model.Rect, strata model.Stratigraphy, baseName string) (PopulateResult, error) {
	return populate(m, rect, strata, 0, baseName)
}

func populate(m Mutator, rect model.Rect, strata model.Stratigraphy, stageNo int, baseName string) (PopulateResult, error) {
	var res PopulateResult

	descs, warnings, err := Decompose(rect, strata, baseName)
	if err != nil {
		return res, err
	}
	res.Warnings = warnings

	catalog, err := m.ListMaterials()
	if err != nil {
		return res, fmt.Errorf("list materials: %w", err)
	}

	for _, d := range descs {
		if err := m.CreatePolygon(d.Corners, d.Name); err != nil {
			// A polygon that was never created must not show up in the
			// provenance table, or phase activation would reference it.
			res.Failed = append(res.Failed, d.Name)
			res.Warnings = append(res.Warnings, model.MutationFailureWarning(d.Name, err))
			continue
		}

		if mat, ok := FindMaterial(catalog, d.SoilType); ok {
			if err := m.AssignMaterial(d.Name, mat); err != nil {
				res.Failed = append(res.Failed, d.Name)
				res.Warnings = append(res.Warnings, model.MutationFailureWarning(d.Name, err))
			}
		} else {
			// Geometry is never withheld for a lookup miss: the polygon
			// stays in the model unassigned.
			res.Warnings = append(res.Warnings, model.MaterialNotFoundWarning(d.Name, d.SoilType))
		}

		res.Records = append(res.Records, model.ProvenanceRecord{
			StageNo:     stageNo,
			Top:         d.Top,
			Bottom:      d.Bottom,
			PolygonName: d.Name,
		})
	}

	return res, nil
}
