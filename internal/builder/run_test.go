package builder

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataworks/erssgen/internal/model"
	"github.com/strataworks/erssgen/internal/plaxis"
)

func testInputs() *model.InputSet {
	return &model.InputSet{
		Project: model.ProjectInfo{Title: "Station Box", ProjectNo: "C-881"},
		Geometry: model.GeometryInfo{
			XMin: 0, YMin: 40, XMax: 100, YMax: 100,
			BoreholeX: 80, WaterTable: 95,
			ModelType: "Plane Strain", ElementType: "15noded",
		},
		Borehole: model.Stratigraphy{
			{Top: 100, Bottom: 90, SoilType: "Fill", SPT: "10", DrainageType: "Drain", Rinter: 0.67},
			{Top: 90, Bottom: 70, SoilType: "Marine Clay", DrainageType: "Undrain", Rinter: 0.5},
			{Top: 70, Bottom: 40, SoilType: "Sand", SPT: "30", DrainageType: "Drain", Rinter: 0.8},
		},
		Plates: []model.PlateProperties{
			{MaterialName: "D-Wall", EA: 12e6, EI: 1e5, Nu: 0.15, W: 10},
		},
		Anchors: []model.AnchorProperties{
			{MaterialName: "S1", Elasticity: "Elastic", EA: 2e6, LSpacing: 5},
		},
		Walls: []model.WallDetail{
			{WallName: "wall_E", MaterialName: "D-Wall", XTop: 20, YTop: 100, XBottom: 20, YBottom: 60},
		},
		Struts: []model.StrutDetail{
			{StrutName: "strut_1", MaterialName: "S1", Type: model.StrutN2N, XLeft: 20, YLeft: 97, XRight: 60, YRight: 97},
		},
		LineLoads: []model.LineLoadDetail{
			{LoadName: "surcharge", XStart: 65, YStart: 100, XEnd: 95, YEnd: 100, QyStart: -20},
		},
		Excavations: []model.ExcavationStage{
			{StageNo: 1, StageName: "Dig to 95m", XLeft: 20, XRight: 60, From: 100, To: 95},
			{StageNo: 2, StageName: "Dig to 85m", XLeft: 20, XRight: 60, From: 95, To: 85},
		},
		Sequence: []model.SequenceStep{
			{PhaseNo: "Phase_1", PhaseName: "Install wall", ElementType: "ERSS Wall", ElementName: "wall_E", Action: model.ActionActivate},
			{PhaseNo: "Phase_2", PhaseName: "First dig", ElementType: "Excavation", ElementName: "1", Action: model.ActionDeactivate},
			{PhaseNo: "Phase_3", PhaseName: "Strut and dig", ElementType: "Strut", ElementName: "strut_1", Action: model.ActionActivate},
			{PhaseNo: "Phase_3", PhaseName: "Strut and dig", ElementType: "Excavation", ElementName: "2", Action: model.ActionDeactivate},
		},
	}
}

func newTestRun(t *testing.T, in *model.InputSet) (*Run, *plaxis.Memory) {
	t.Helper()
	adapter, err := plaxis.AdapterFor(plaxis.GenerationV22)
	require.NoError(t, err)
	mem := plaxis.NewMemory(adapter)
	run, err := NewRun(mem, in, zerolog.Nop())
	require.NoError(t, err)
	return run, mem
}

func TestUniqueLayerNames(t *testing.T) {
	seen := make(map[string]int)
	// First layer of a soil type keeps the plain type name.
	assert.Equal(t, "Fill", uniqueLayerName("Fill", "10", 1, seen))
	assert.Equal(t, "Clay", uniqueLayerName("Clay", "", 2, seen))
	// Repeats get an SPT or ordinal suffix.
	assert.Equal(t, "Fill_SPT15", uniqueLayerName("Fill", "15", 3, seen))
	assert.Equal(t, "Clay_4", uniqueLayerName("Clay", "", 4, seen))
	// Same type and SPT again gets a counter on top.
	assert.Equal(t, "Fill_SPT15_2", uniqueLayerName("Fill", "15", 5, seen))
}

func TestNewRunRejectsBadStratigraphy(t *testing.T) {
	in := testInputs()
	in.Borehole = model.Stratigraphy{
		{Top: 100, Bottom: 90, SoilType: "Fill"},
		{Top: 80, Bottom: 70, SoilType: "Clay"}, // gap
	}
	adapter, err := plaxis.AdapterFor(plaxis.GenerationV22)
	require.NoError(t, err)
	_, err = NewRun(plaxis.NewMemory(adapter), in, zerolog.Nop())
	assert.Error(t, err)
}

func TestExecuteBuildsFullModel(t *testing.T) {
	run, mem := newTestRun(t, testInputs())
	require.NoError(t, run.Execute())

	// Materials carry unique layer names plus the structural materials.
	names, err := mem.ListMaterials()
	require.NoError(t, err)
	assert.Equal(t, []string{"Fill", "Marine Clay", "Sand", "D-Wall", "S1"}, names)

	// Stage 1 sits in Fill; stage 2 crosses the Fill/Clay boundary at 90m.
	assert.Equal(t, []string{"polygon_Stage1_Excavation"}, run.Registry.PolygonsForStage(1))
	assert.Equal(t,
		[]string{"polygon_Stage2_Excavation", "polygon_Stage2_Excavation_2"},
		run.Registry.PolygonsForStage(2))

	// Water zone spans 85m down to the log floor, crossing into Sand at 70m.
	require.Len(t, run.Registry.Water, 2)
	assert.Equal(t, "polygon_WaterTable", run.Registry.Water[0].PolygonName)
	assert.Equal(t, "polygon_WaterTable_2", run.Registry.Water[1].PolygonName)

	// Polygons got their layer materials.
	assert.Equal(t, "Fill", mem.Polygons["polygon_Stage1_Excavation"].Material)
	assert.Equal(t, "Marine Clay", mem.Polygons["polygon_Stage2_Excavation_2"].Material)
	assert.Equal(t, "Sand", mem.Polygons["polygon_WaterTable_2"].Material)

	assert.True(t, mem.Meshed)
	assert.Empty(t, run.Warnings)
}

func TestConstructionSequencePhases(t *testing.T) {
	run, mem := newTestRun(t, testInputs())
	require.NoError(t, run.Execute())

	require.Len(t, mem.Phases, 3)

	// Phase 1 activates the wall plate and both interfaces.
	p1 := mem.Phases[0]
	assert.Equal(t, "Phase_1", p1.PhaseNo)
	assert.Equal(t, []string{"plate_wall_E", "wall_E_pos", "wall_E_neg"}, p1.Activated)

	// Phase 2 deactivates the first dig and dries it; everything still in
	// the ground below interpolates.
	p2 := mem.Phases[1]
	assert.Equal(t, []string{"polygon_Stage1_Excavation"}, p2.Deactivated)
	assert.Equal(t, "Dry", p2.WaterStates["polygon_Stage1_Excavation"])
	assert.Equal(t, "Interpolate", p2.WaterStates["polygon_Stage2_Excavation"])
	assert.Equal(t, "Interpolate", p2.WaterStates["polygon_WaterTable"])

	// Phase 3 activates the strut, then removes both stage 2 polygons.
	p3 := mem.Phases[2]
	assert.Equal(t, []string{"strut_1"}, p3.Activated)
	assert.Equal(t, []string{"polygon_Stage2_Excavation", "polygon_Stage2_Excavation_2"}, p3.Deactivated)
}

func TestFirstPhaseInterpolatesEveryCluster(t *testing.T) {
	run, mem := newTestRun(t, testInputs())
	require.NoError(t, run.Execute())

	// Before any stage goes dry, every excavation and water polygon starts
	// out interpolating in the first phase.
	p1 := mem.Phases[0]
	names := run.Registry.AllPolygons()
	require.Len(t, names, 5)
	for _, name := range names {
		assert.Equal(t, "Interpolate", p1.WaterStates[name], name)
	}
}

func TestSequenceUnknownElementWarns(t *testing.T) {
	in := testInputs()
	in.Sequence = append(in.Sequence, model.SequenceStep{
		PhaseNo: "Phase_4", PhaseName: "Oops",
		ElementType: "Strut", ElementName: "strut_99", Action: model.ActionActivate,
	})
	run, mem := newTestRun(t, in)
	require.NoError(t, run.Execute())

	require.Len(t, mem.Phases, 4)
	found := false
	for _, w := range run.Warnings {
		if w.Kind == model.WarnMutationFailed && w.Subject == "strut_99" {
			found = true
		}
	}
	assert.True(t, found, "expected a warning for the unknown strut")
}

func TestWaterZoneSkippedWithoutExcavations(t *testing.T) {
	in := testInputs()
	in.Excavations = nil
	in.Sequence = in.Sequence[:1]
	run, _ := newTestRun(t, in)
	require.NoError(t, run.Execute())
	assert.Empty(t, run.Registry.Water)
}

func TestZeroHeightStageKeepsProvenance(t *testing.T) {
	in := testInputs()
	in.Excavations = append(in.Excavations, model.ExcavationStage{
		StageNo: 3, StageName: "As-built marker", XLeft: 20, XRight: 60, From: 85, To: 85,
	})
	run, _ := newTestRun(t, in)
	require.NoError(t, run.Execute())
	assert.Equal(t, []string{"polygon_Stage3_Excavation"}, run.Registry.PolygonsForStage(3))
}
