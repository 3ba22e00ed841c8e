package builder

import (
	"fmt"
)

// uniqueLayerName derives a catalog-unique material name for the i-th layer.
// The first layer of a soil type keeps the plain type name; repeats get an
// _SPT<n> suffix when an SPT value is recorded, the layer's ordinal otherwise,
// and a further counter when the suffixed name still collides.
func uniqueLayerName(soilType, spt string, ordinal int, seen map[string]int) string {
	seen[soilType]++
	if seen[soilType] == 1 {
		return soilType
	}
	var name string
	if spt != "" {
		name = fmt.Sprintf("%s_SPT%s", soilType, spt)
	} else {
		name = fmt.Sprintf("%s_%d", soilType, ordinal)
	}
	seen[name]++
	if n := seen[name]; n > 1 {
		name = fmt.Sprintf("%s_%d", name, n)
	}
	return name
}

// CreateMaterials defines every soil, plate and anchor material. Soil layers
// receive their unique names here; the decomposer labels polygons with them,
// so this must run before any excavation geometry.
func (r *Run) CreateMaterials() error {
	seen := make(map[string]int, len(r.Strata))
	for i := range r.Strata {
		l := &r.Strata[i]
		l.UniqueName = uniqueLayerName(l.SoilType, l.SPT, i+1, seen)
		if err := r.m.CreateSoilMaterial(*l, l.UniqueName); err != nil {
			return fmt.Errorf("soil material %s: %w", l.UniqueName, err)
		}
	}

	for _, p := range r.Inputs.Plates {
		if err := r.m.CreatePlateMaterial(p); err != nil {
			return fmt.Errorf("plate material %s: %w", p.MaterialName, err)
		}
	}
	for _, a := range r.Inputs.Anchors {
		if err := r.m.CreateAnchorMaterial(a); err != nil {
			return fmt.Errorf("anchor material %s: %w", a.MaterialName, err)
		}
	}

	r.log.Debug().
		Int("soil", len(r.Strata)).
		Int("plate", len(r.Inputs.Plates)).
		Int("anchor", len(r.Inputs.Anchors)).
		Msg("materials created")
	return nil
}

// CreateBorehole inserts the borehole column and stacks the validated layers
// into it, top down.
func (r *Run) CreateBorehole() error {
	g := r.Inputs.Geometry
	if err := r.m.CreateBorehole("BH_1", g.BoreholeX, g.WaterTable); err != nil {
		return err
	}
	for i, l := range r.Strata {
		if err := r.m.AddSoilLayer(i, l.Top, l.Bottom, l.UniqueName); err != nil {
			return fmt.Errorf("soil layer %d (%s): %w", i+1, l.UniqueName, err)
		}
	}
	return nil
}
