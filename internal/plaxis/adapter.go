// Package plaxis adapts the model-generation pipeline to the external 2D
// finite-element modeler's remote scripting session. The wire protocol is
// vendor-owned and opaque; everything here talks through small interfaces so
// the rest of the tool can run against the in-memory model instead.
package plaxis

import (
	"fmt"
	"math"

	"github.com/strataworks/erssgen/internal/model"
)

// Generation identifies a supported vendor API generation. Property names
// and drainage-type labels changed at V22, so the right adapter is selected
// once from configuration instead of probing per call.
type Generation string

const (
	GenerationLegacy Generation = "before-v22"
	GenerationV22    Generation = "v22+"
)

// Property is one key/value pair of a material definition command.
type Property struct {
	Key   string
	Value any
}

// NameAdapter maps material definitions onto the property vocabulary of one
// vendor API generation.
type NameAdapter interface {
	// Generation returns the generation this adapter serves.
	Generation() Generation
	// MaterialKey is the property under which a material carries its name.
	MaterialKey() string
	// SoilProperties assembles the soil material definition for one layer,
	// created under the given (unique) name.
	SoilProperties(layer model.Layer, name string) []Property
	// PlateProperties assembles a wall plate material definition.
	PlateProperties(p model.PlateProperties) []Property
	// AnchorProperties assembles a strut anchor material definition.
	AnchorProperties(a model.AnchorProperties) []Property
}

// AdapterFor returns the adapter for a configured generation label.
func AdapterFor(g Generation) (NameAdapter, error) {
	switch g {
	case GenerationLegacy:
		return legacyAdapter{}, nil
	case GenerationV22, "":
		return v22Adapter{}, nil
	default:
		return nil, fmt.Errorf("unsupported vendor API generation %q", g)
	}
}

type legacyAdapter struct{}

func (legacyAdapter) Generation() Generation { return GenerationLegacy }
func (legacyAdapter) MaterialKey() string    { return "MaterialName" }

func (legacyAdapter) SoilProperties(l model.Layer, name string) []Property {
	return []Property{
		{"MaterialName", name},
		{"SoilModel", l.SoilModel},
		{"DrainageType", l.DrainageType},
		{"gammaUnsat", l.GammaUnsat},
		{"gammaSat", l.GammaSat},
		{"Eref", l.Eref},
		{"nu", l.Nu},
		{"cref", l.Cref},
		{"phi", l.Phi},
		{"perm_primary_horizontal_axis", l.Kx},
		{"perm_vertical_axis", l.Ky},
		{"InterfaceStrength", l.Strength},
		{"Rinter", l.Rinter},
		{"K0Determination", l.K0Determine},
		{"K0Primary", l.K0Primary},
		{"Colour", l.Colour},
	}
}

// PlateProperties derives the plate thickness and shear modulus the legacy
// generation expects from the axial and flexural stiffnesses:
// d = sqrt(12*EI/EA), E = EA/d, G = E/(2*(1+nu)).
func (legacyAdapter) PlateProperties(p model.PlateProperties) []Property {
	d := math.Sqrt(12 * p.EI / p.EA)
	e := p.EA / d
	g := e / (2 * (1 + p.Nu))
	return []Property{
		{"MaterialName", p.MaterialName},
		{"Colour", p.Colour},
		{"IsIsotropic", p.IsIsotropic},
		{"EA", p.EA},
		{"EA2", p.EA},
		{"EI", p.EI},
		{"Gref", g},
		{"d", d},
		{"nu", p.Nu},
		{"w", p.W},
	}
}

func (legacyAdapter) AnchorProperties(a model.AnchorProperties) []Property {
	return []Property{
		{"MaterialName", a.MaterialName},
		{"Elasticity", a.Elasticity},
		{"EA", a.EA},
		{"Lspacing", a.LSpacing},
		{"Colour", a.Colour},
	}
}

type v22Adapter struct{}

func (v22Adapter) Generation() Generation { return GenerationV22 }
func (v22Adapter) MaterialKey() string    { return "Identification" }

// mapDrainageType maps legacy drainage labels onto the V22+ vocabulary.
// Unknown labels fall back to drained.
func mapDrainageType(label string) string {
	switch label {
	case "Drain", "drained":
		return "drained"
	case "Undrain", "undrained", "undraineda":
		return "undraineda"
	case "undrainedb":
		return "undrainedb"
	case "undrainedc":
		return "undrainedc"
	case "nonporous":
		return "nonporous"
	default:
		return "drained"
	}
}

// clampRinter constrains the interface reduction factor into the [0.01, 1.0]
// range the V22+ API accepts.
func clampRinter(v float64) float64 {
	if v < 0.01 {
		return 0.01
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}

func (v22Adapter) SoilProperties(l model.Layer, name string) []Property {
	drainage := mapDrainageType(l.DrainageType)
	props := []Property{
		{"Identification", name},
		{"SoilModel", l.SoilModel},
		{"DrainageType", drainage},
		{"gammaUnsat", l.GammaUnsat},
		{"gammaSat", l.GammaSat},
		{"Eref", l.Eref},
	}
	// nuU is read-only for drained materials.
	if drainage != "drained" {
		props = append(props, Property{"nuU", l.Nu})
	}
	return append(props,
		Property{"cref", l.Cref},
		Property{"phi", l.Phi},
		Property{"PermHorizontalPrimary", l.Kx},
		Property{"PermVertical", l.Ky},
		Property{"InterfaceStrengthDetermination", l.Strength},
		Property{"Rinter", clampRinter(l.Rinter)},
		Property{"K0Determination", l.K0Determine},
		Property{"K0Primary", l.K0Primary},
		Property{"Colour", l.Colour},
	)
}

func (v22Adapter) PlateProperties(p model.PlateProperties) []Property {
	return []Property{
		{"Identification", p.MaterialName},
		{"Colour", p.Colour},
		{"MaterialType", "Elastic"},
		{"EA1", p.EA},
		{"EI", p.EI},
		{"w", p.W},
	}
}

func (v22Adapter) AnchorProperties(a model.AnchorProperties) []Property {
	return []Property{
		{"Identification", a.MaterialName},
		{"MaterialType", a.Elasticity},
		{"EA", a.EA},
		{"LSpacing", a.LSpacing},
		{"Colour", a.Colour},
	}
}
