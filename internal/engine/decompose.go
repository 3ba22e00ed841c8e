package engine

import (
	"fmt"

	"github.com/strataworks/erssgen/internal/model"
)

// elevEps absorbs float noise when comparing elevations that should coincide
// (layer boundaries and rectangle edges come from the same spreadsheet).
const elevEps = 1e-9

// nearestSoilType picks the best available label for a depth outside the log:
// the surface layer above ground, the deepest layer below the floor.
func nearestSoilType(strata model.Stratigraphy, depth float64) string {
	if depth > strata.Top() {
		return strata[0].MaterialLabel()
	}
	return strata[len(strata)-1].MaterialLabel()
}

// segmentName returns the polygon name for the n-th emitted segment
// (1-indexed): the first segment keeps the base name unchanged, later
// segments get a numeric suffix starting at _2.
func segmentName(base string, n int) string {
	if n <= 1 {
		return base
	}
	return fmt.Sprintf("%s_%d", base, n)
}

// Decompose splits the target rectangle into axis-aligned sub-rectangles so
// that no sub-rectangle spans a stratigraphy boundary. Each descriptor's soil
// type is resolved at its own top. Warnings cover depth ranges the borehole
// log does not reach; they never abort the decomposition.
//
// The union of returned [top, bottom] bands always equals exactly
// [rect.YTop, rect.YBottom], with no gaps or overlaps, and repeated calls
// with the same inputs produce identical descriptors in identical order.
func Decompose(rect model.Rect, strata model.Stratigraphy, baseName string) ([]model.PolygonDescriptor, []model.Warning, error) {
	if err := rect.Validate(); err != nil {
		return nil, nil, err
	}
	if len(strata) == 0 {
		return nil, nil, model.ErrEmptyStratigraphy
	}

	var warnings []model.Warning

	// Zero-height rectangles mark as-built level changes: one degenerate
	// descriptor, no segmentation.
	if rect.Height() == 0 {
		var soil string
		if idx := resolveLayerIndex(strata, rect.YTop); idx >= 0 {
			soil = strata[idx].MaterialLabel()
		} else {
			soil = nearestSoilType(strata, rect.YTop)
			warnings = append(warnings, model.DataGapWarning(baseName, rect.YTop, rect.YBottom))
		}
		return []model.PolygonDescriptor{
			model.NewPolygonDescriptor(baseName, rect, rect.YTop, rect.YBottom, soil),
		}, warnings, nil
	}

	start := resolveLayerIndex(strata, rect.YTop)
	if start < 0 {
		// The rectangle's top lies outside the log. Above ground surface we
		// segment from layer 0 and extend its type upward; fully below the
		// floor there is nothing to segment against at all.
		if rect.YTop > strata.Top() {
			warnings = append(warnings, model.DataGapWarning(baseName, rect.YTop, strata.Top()))
			start = 0
		} else {
			warnings = append(warnings, model.DataGapWarning(baseName, rect.YTop, rect.YBottom))
			deepest := strata[len(strata)-1].MaterialLabel()
			return []model.PolygonDescriptor{
				model.NewPolygonDescriptor(baseName, rect, rect.YTop, rect.YBottom, deepest),
			}, warnings, nil
		}
	}

	// Single-layer shortcut: the whole rectangle fits inside the starting
	// layer, so the base name is emitted unchanged.
	if strata[start].Bottom <= rect.YBottom+elevEps {
		soil := strata[start].MaterialLabel()
		return []model.PolygonDescriptor{
			model.NewPolygonDescriptor(baseName, rect, rect.YTop, rect.YBottom, soil),
		}, warnings, nil
	}

	// The rectangle straddles layer boundaries: one segment per crossed
	// layer, each clamped so the decomposition never extends below the
	// rectangle's bottom.
	var descs []model.PolygonDescriptor
	cut := rect.YTop
	n := 0
	for i := start; i < len(strata); i++ {
		bottom := strata[i].Bottom
		if bottom < rect.YBottom {
			bottom = rect.YBottom
		}
		if i == len(strata)-1 && rect.YBottom < strata[i].Bottom-elevEps {
			// Rectangle extends below the deepest known layer. The deepest
			// bottom is the effective segmentation floor; the remnant keeps
			// the deepest layer's type and is reported as a data gap.
			bottom = rect.YBottom
			warnings = append(warnings, model.DataGapWarning(baseName, strata[i].Bottom, rect.YBottom))
		}

		var soil string
		if idx := resolveLayerIndex(strata, cut); idx >= 0 {
			soil = strata[idx].MaterialLabel()
		} else {
			soil = strata[i].MaterialLabel()
		}

		n++
		descs = append(descs, model.NewPolygonDescriptor(segmentName(baseName, n), rect, cut, bottom, soil))

		if bottom <= rect.YBottom+elevEps {
			break
		}
		cut = bottom
	}

	return descs, warnings, nil
}
