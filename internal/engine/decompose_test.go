package engine

import (
	"testing"

	"github.com/strataworks/erssgen/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStrata() model.Stratigraphy {
	return model.Stratigraphy{
		{Top: 100, Bottom: 90, SoilType: "Fill"},
		{Top: 90, Bottom: 70, SoilType: "Clay"},
		{Top: 70, Bottom: 40, SoilType: "Sand"},
	}
}

func TestDecompose_SingleLayerShortcut(t *testing.T) {
	strata := model.Stratigraphy{{Top: 50, Bottom: 0, SoilType: "Sand"}}
	rect := model.Rect{XLeft: 0, XRight: 10, YTop: 40, YBottom: 10}

	descs, warnings, err := Decompose(rect, strata, "base")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, descs, 1)
	assert.Equal(t, "base", descs[0].Name)
	assert.Equal(t, "Sand", descs[0].SoilType)
	assert.Equal(t, 40.0, descs[0].Top)
	assert.Equal(t, 10.0, descs[0].Bottom)
}

func TestDecompose_TwoLayers(t *testing.T) {
	strata := model.Stratigraphy{
		{Top: 100, Bottom: 90, SoilType: "Fill"},
		{Top: 90, Bottom: 70, SoilType: "Clay"},
	}
	rect := model.Rect{XLeft: 0, XRight: 10, YTop: 95, YBottom: 80}

	descs, warnings, err := Decompose(rect, strata, "base")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, descs, 2)

	assert.Equal(t, "base", descs[0].Name)
	assert.Equal(t, "Fill", descs[0].SoilType)
	assert.Equal(t, 95.0, descs[0].Top)
	assert.Equal(t, 90.0, descs[0].Bottom)

	assert.Equal(t, "base_2", descs[1].Name)
	assert.Equal(t, "Clay", descs[1].SoilType)
	assert.Equal(t, 90.0, descs[1].Top)
	assert.Equal(t, 80.0, descs[1].Bottom)
}

func TestDecompose_ThreeLayers(t *testing.T) {
	rect := model.Rect{XLeft: -5, XRight: 5, YTop: 98, YBottom: 45}

	descs, warnings, err := Decompose(rect, testStrata(), "dig")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, descs, 3)

	assert.Equal(t, []string{"dig", "dig_2", "dig_3"},
		[]string{descs[0].Name, descs[1].Name, descs[2].Name})
	assert.Equal(t, []string{"Fill", "Clay", "Sand"},
		[]string{descs[0].SoilType, descs[1].SoilType, descs[2].SoilType})

	// Last segment is clamped at the rectangle bottom, not the layer bottom.
	assert.Equal(t, 70.0, descs[2].Top)
	assert.Equal(t, 45.0, descs[2].Bottom)
}

// The union of all descriptor bands must exactly cover the rectangle's
// vertical extent with no gaps or overlaps.
func TestDecompose_CoverageInvariant(t *testing.T) {
	rects := []model.Rect{
		{XLeft: 0, XRight: 10, YTop: 100, YBottom: 40},
		{XLeft: 0, XRight: 10, YTop: 95, YBottom: 41},
		{XLeft: 0, XRight: 10, YTop: 90, YBottom: 70},
		{XLeft: 0, XRight: 10, YTop: 89.5, YBottom: 89},
	}

	for _, rect := range rects {
		descs, _, err := Decompose(rect, testStrata(), "p")
		require.NoError(t, err)
		require.NotEmpty(t, descs)

		assert.Equal(t, rect.YTop, descs[0].Top)
		assert.Equal(t, rect.YBottom, descs[len(descs)-1].Bottom)
		for i := 1; i < len(descs); i++ {
			assert.Equal(t, descs[i-1].Bottom, descs[i].Top,
				"segments must be contiguous for rect %+v", rect)
		}
	}
}

func TestDecompose_TopOnBoundaryBelongsToLayerBelow(t *testing.T) {
	// A rectangle whose top sits exactly on the Fill/Clay boundary belongs
	// to Clay, the layer for which 90 is the top.
	rect := model.Rect{XLeft: 0, XRight: 10, YTop: 90, YBottom: 75}

	descs, warnings, err := Decompose(rect, testStrata(), "p")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, descs, 1)
	assert.Equal(t, "Clay", descs[0].SoilType)
}

func TestDecompose_ZeroHeight(t *testing.T) {
	rect := model.Rect{XLeft: 0, XRight: 10, YTop: 85, YBottom: 85}

	descs, warnings, err := Decompose(rect, testStrata(), "marker")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, descs, 1)
	assert.Equal(t, "marker", descs[0].Name)
	assert.Equal(t, 85.0, descs[0].Top)
	assert.Equal(t, 85.0, descs[0].Bottom)
	assert.Equal(t, "Clay", descs[0].SoilType)
}

func TestDecompose_BelowFloorIsWarnedNotFatal(t *testing.T) {
	strata := model.Stratigraphy{
		{Top: 100, Bottom: 50, SoilType: "Clay"},
	}
	rect := model.Rect{XLeft: 0, XRight: 10, YTop: 100, YBottom: 30}

	descs, warnings, err := Decompose(rect, strata, "deep")
	require.NoError(t, err)
	require.Len(t, descs, 1)
	// The remnant below the floor keeps the deepest layer's type and the
	// descriptor bottom stays the requested bottom.
	assert.Equal(t, "Clay", descs[0].SoilType)
	assert.Equal(t, 30.0, descs[0].Bottom)

	require.Len(t, warnings, 1)
	assert.Equal(t, model.WarnDataGap, warnings[0].Kind)
}

func TestDecompose_MultiLayerBelowFloor(t *testing.T) {
	rect := model.Rect{XLeft: 0, XRight: 10, YTop: 95, YBottom: 20}

	descs, warnings, err := Decompose(rect, testStrata(), "deep")
	require.NoError(t, err)
	require.Len(t, descs, 3)
	assert.Equal(t, 20.0, descs[2].Bottom)
	assert.Equal(t, "Sand", descs[2].SoilType)
	require.Len(t, warnings, 1)
	assert.Equal(t, model.WarnDataGap, warnings[0].Kind)
}

func TestDecompose_AboveSurface(t *testing.T) {
	rect := model.Rect{XLeft: 0, XRight: 10, YTop: 105, YBottom: 95}

	descs, warnings, err := Decompose(rect, testStrata(), "high")
	require.NoError(t, err)
	require.Len(t, descs, 1)
	// Surface layer's type extends upward over the uncovered band.
	assert.Equal(t, "Fill", descs[0].SoilType)
	assert.Equal(t, 105.0, descs[0].Top)
	require.Len(t, warnings, 1)
	assert.Equal(t, model.WarnDataGap, warnings[0].Kind)
}

func TestDecompose_InvalidInputs(t *testing.T) {
	inverted := model.Rect{XLeft: 0, XRight: 10, YTop: 50, YBottom: 80}
	_, _, err := Decompose(inverted, testStrata(), "p")
	assert.ErrorIs(t, err, model.ErrInvalidRectangle)

	ok := model.Rect{XLeft: 0, XRight: 10, YTop: 95, YBottom: 80}
	_, _, err = Decompose(ok, model.Stratigraphy{}, "p")
	assert.ErrorIs(t, err, model.ErrEmptyStratigraphy)
}

func TestDecompose_NamingDeterminism(t *testing.T) {
	rect := model.Rect{XLeft: 0, XRight: 10, YTop: 95, YBottom: 45}

	first, _, err := Decompose(rect, testStrata(), "p")
	require.NoError(t, err)
	second, _, err := Decompose(rect, testStrata(), "p")
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
		assert.Equal(t, first[i], second[i])
	}
}
