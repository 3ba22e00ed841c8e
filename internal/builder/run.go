// Package builder turns one validated input set into a complete staged
// excavation model. It owns no transport: every model mutation goes through
// the Model interface, so a run works identically against a live modeler
// session and the in-memory recorder.
package builder

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/strataworks/erssgen/internal/engine"
	"github.com/strataworks/erssgen/internal/model"
)

// Model is everything the builder needs from the modeler. The polygon
// mutation subset is shared with the geometry engine; the rest covers
// project setup, materials, structures, staging and water conditions.
type Model interface {
	engine.Mutator

	SetProjectProperties(p model.ProjectInfo, g model.GeometryInfo) error
	SetWorkingArea(xMin, yMin, xMax, yMax float64) error

	CreateSoilMaterial(layer model.Layer, name string) error
	CreatePlateMaterial(p model.PlateProperties) error
	CreateAnchorMaterial(a model.AnchorProperties) error

	CreateBorehole(name string, x, waterHead float64) error
	AddSoilLayer(index int, top, bottom float64, materialName string) error

	CreatePoint(name string, x, y float64) error
	CreateLine(name, point1, point2 string) error
	CreatePlate(lineName, plateName, materialName string) error
	CreateInterface(lineName, name string, positive bool) error
	CreateNodeToNodeAnchor(lineName, anchorName, materialName string) error
	CreateFixedEndAnchor(pointName, anchorName string, dirX, dirY float64, materialName string) error
	CreateLineLoad(lineName, loadName string, qxStart, qyStart float64) error

	AddPhase(phaseNo, phaseName string) error
	Activate(elementName, phaseNo string) error
	Deactivate(elementName, phaseNo string) error
	SetWaterInterpolate(polygonName, phaseNo string) error
	SetWaterDry(polygonName, phaseNo string) error

	GenerateMesh() error
}

// Run is one model-generation run. It keeps a private stratigraphy copy so
// unique material names never leak back into the caller's input set, and
// collects the registry and warnings the exporters consume afterwards.
type Run struct {
	ID       string
	Inputs   *model.InputSet
	Strata   model.Stratigraphy
	Registry model.Registry
	Warnings []model.Warning

	m   Model
	log zerolog.Logger
}

// NewRun validates the stratigraphy and prepares a run. The borehole log must
// be contiguous; anything else in the inputs degrades to warnings later.
func NewRun(m Model, in *model.InputSet, log zerolog.Logger) (*Run, error) {
	if err := in.Borehole.Validate(); err != nil {
		return nil, fmt.Errorf("borehole log: %w", err)
	}
	strata := make(model.Stratigraphy, len(in.Borehole))
	copy(strata, in.Borehole)

	id := uuid.NewString()
	return &Run{
		ID:     id,
		Inputs: in,
		Strata: strata,
		m:      m,
		log:    log.With().Str("run_id", id).Logger(),
	}, nil
}

func (r *Run) warn(ws ...model.Warning) {
	for _, w := range ws {
		r.log.Warn().Str("kind", string(w.Kind)).Str("subject", w.Subject).Msg(w.Detail)
	}
	r.Warnings = append(r.Warnings, ws...)
}

// Execute builds the whole model in dependency order: project setup,
// materials, borehole, structures, excavation and water geometry, mesh,
// then the staged construction sequence and its water conditions.
func (r *Run) Execute() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"project setup", r.SetupProject},
		{"materials", r.CreateMaterials},
		{"borehole", r.CreateBorehole},
		{"structures", r.CreateStructures},
		{"excavation", r.DefineExcavation},
		{"water zone", r.DefineWaterZone},
		{"mesh", r.GenerateMesh},
		{"construction sequence", r.DefineConstructionSequence},
		{"water conditions", r.DefineWaterConditions},
	}
	for _, s := range steps {
		r.log.Info().Str("step", s.name).Msg("building")
		if err := s.fn(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	r.log.Info().
		Int("polygons", len(r.Registry.Excavation)+len(r.Registry.Water)).
		Int("warnings", len(r.Warnings)).
		Msg("model built")
	return nil
}

// SetupProject applies the project header and the soil contour.
func (r *Run) SetupProject() error {
	if err := r.m.SetProjectProperties(r.Inputs.Project, r.Inputs.Geometry); err != nil {
		return err
	}
	g := r.Inputs.Geometry
	return r.m.SetWorkingArea(g.XMin, g.YMin, g.XMax, g.YMax)
}

// GenerateMesh meshes the model. Must run after all geometry exists and
// before phases are defined.
func (r *Run) GenerateMesh() error {
	return r.m.GenerateMesh()
}
