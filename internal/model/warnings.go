package model

import (
	"errors"
	"fmt"
)

// Fatal errors. These abort the single call that raised them; they are never
// used for conditions the decomposer can work around.
var (
	ErrInvalidRectangle  = errors.New("invalid target rectangle")
	ErrEmptyStratigraphy = errors.New("stratigraphy is empty")
)

// WarningKind classifies non-fatal conditions collected during a run.
type WarningKind string

const (
	// WarnDataGap marks a depth range with no matching stratigraphy layer,
	// or a rectangle extending below the deepest known layer.
	WarnDataGap WarningKind = "data_gap"
	// WarnMaterialNotFound marks a soil type that could not be matched to
	// any catalog entry. The polygon is still created, left unassigned.
	WarnMaterialNotFound WarningKind = "material_not_found"
	// WarnMutationFailed marks a create/assign call the model rejected.
	// Remaining descriptors in the batch are still attempted.
	WarnMutationFailed WarningKind = "mutation_failed"
)

// Warning is a non-fatal condition reported alongside successful output.
// Batch operations collect warnings instead of aborting: imported
// spreadsheets are imperfect and a naming inconsistency in one layer must
// not withhold the rest of the model.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Subject string      `json:"subject"` // polygon or label the warning concerns
	Detail  string      `json:"detail"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %s", w.Kind, w.Subject, w.Detail)
}

// DataGapWarning reports a depth range not covered by the borehole log.
func DataGapWarning(subject string, top, bottom float64) Warning {
	return Warning{
		Kind:    WarnDataGap,
		Subject: subject,
		Detail:  fmt.Sprintf("no stratigraphy layer covers [%.3f, %.3f]", top, bottom),
	}
}

// MaterialNotFoundWarning reports a soil type with no catalog match.
func MaterialNotFoundWarning(subject, label string) Warning {
	return Warning{
		Kind:    WarnMaterialNotFound,
		Subject: subject,
		Detail:  fmt.Sprintf("no material matches soil type %q", label),
	}
}

// MutationFailureWarning reports a rejected model-mutation call.
func MutationFailureWarning(subject string, err error) Warning {
	return Warning{
		Kind:    WarnMutationFailed,
		Subject: subject,
		Detail:  err.Error(),
	}
}
