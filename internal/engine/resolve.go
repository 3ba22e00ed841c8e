// Package engine implements the model-generation geometry core: resolving
// soil types against a borehole log, decomposing target rectangles at
// stratigraphy boundaries, matching soil labels to the material catalog, and
// driving polygon creation through a model mutator.
package engine

import "github.com/strataworks/erssgen/internal/model"

// ResolveSoilType returns the soil type of the layer whose [bottom, top)
// range contains the given depth, using top >= depth > bottom. A depth that
// equals a boundary therefore belongs to the layer below it (the layer for
// which the boundary is the top). Returns false when no layer contains the
// depth; callers treat that as a data-integrity warning, not an error.
func ResolveSoilType(strata model.Stratigraphy, depth float64) (string, bool) {
	for _, layer := range strata {
		if layer.Top >= depth && depth > layer.Bottom {
			return layer.SoilType, true
		}
	}
	return "", false
}

// resolveLayerIndex is ResolveSoilType returning the layer index instead of
// its type. The decomposer needs the index to walk downward from the match.
func resolveLayerIndex(strata model.Stratigraphy, depth float64) int {
	for i, layer := range strata {
		if layer.Top >= depth && depth > layer.Bottom {
			return i
		}
	}
	return -1
}
