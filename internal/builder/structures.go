package builder

import (
	"fmt"

	"github.com/strataworks/erssgen/internal/model"
)

// CreateStructures places retaining walls, struts and line loads. Every
// created element lands in the registry under the name the construction
// sequence refers to it by.
func (r *Run) CreateStructures() error {
	for _, w := range r.Inputs.Walls {
		if err := r.createWall(w); err != nil {
			return fmt.Errorf("wall %s: %w", w.WallName, err)
		}
	}
	for _, s := range r.Inputs.Struts {
		if err := r.createStrut(s); err != nil {
			return fmt.Errorf("strut %s: %w", s.StrutName, err)
		}
	}
	for _, l := range r.Inputs.LineLoads {
		if err := r.createLineLoad(l); err != nil {
			return fmt.Errorf("line load %s: %w", l.LoadName, err)
		}
	}
	return nil
}

// createWall builds one wall: two points, a line, a plate carrying the wall
// material, and a soil interface on each side.
func (r *Run) createWall(w model.WallDetail) error {
	ptTop := fmt.Sprintf("pt_%s_top", w.WallName)
	ptBot := fmt.Sprintf("pt_%s_bot", w.WallName)
	line := fmt.Sprintf("line_%s", w.WallName)
	plate := fmt.Sprintf("plate_%s", w.WallName)
	posIf := fmt.Sprintf("%s_pos", w.WallName)
	negIf := fmt.Sprintf("%s_neg", w.WallName)

	if err := r.m.CreatePoint(ptTop, w.XTop, w.YTop); err != nil {
		return err
	}
	if err := r.m.CreatePoint(ptBot, w.XBottom, w.YBottom); err != nil {
		return err
	}
	if err := r.m.CreateLine(line, ptTop, ptBot); err != nil {
		return err
	}
	if err := r.m.CreatePlate(line, plate, w.MaterialName); err != nil {
		return err
	}
	if err := r.m.CreateInterface(line, posIf, true); err != nil {
		return err
	}
	if err := r.m.CreateInterface(line, negIf, false); err != nil {
		return err
	}

	r.Registry.Plates = append(r.Registry.Plates, model.PlateRecord{
		PlateName:         plate,
		MaterialName:      w.MaterialName,
		LineName:          line,
		PointTopName:      ptTop,
		PointBottomName:   ptBot,
		PositiveInterface: posIf,
		NegativeInterface: negIf,
	})
	return nil
}

// createStrut builds one strut: a node-to-node anchor between two points, or
// a fixed-end anchor at a single point with a direction.
func (r *Run) createStrut(s model.StrutDetail) error {
	rec := model.StrutRecord{
		StrutName:    s.StrutName,
		MaterialName: s.MaterialName,
		Type:         s.Type,
	}

	switch s.Type {
	case model.StrutN2N:
		ptL := fmt.Sprintf("pt_%s_l", s.StrutName)
		ptR := fmt.Sprintf("pt_%s_r", s.StrutName)
		line := fmt.Sprintf("line_%s", s.StrutName)
		if err := r.m.CreatePoint(ptL, s.XLeft, s.YLeft); err != nil {
			return err
		}
		if err := r.m.CreatePoint(ptR, s.XRight, s.YRight); err != nil {
			return err
		}
		if err := r.m.CreateLine(line, ptL, ptR); err != nil {
			return err
		}
		if err := r.m.CreateNodeToNodeAnchor(line, s.StrutName, s.MaterialName); err != nil {
			return err
		}
		rec.LineName = line

	case model.StrutFixedEnd:
		pt := fmt.Sprintf("pt_%s", s.StrutName)
		if err := r.m.CreatePoint(pt, s.XLeft, s.YLeft); err != nil {
			return err
		}
		if err := r.m.CreateFixedEndAnchor(pt, s.StrutName, s.DirectionX, s.DirectionY, s.MaterialName); err != nil {
			return err
		}
		rec.PointName = pt

	default:
		return fmt.Errorf("unknown strut type %q", s.Type)
	}

	r.Registry.Struts = append(r.Registry.Struts, rec)
	return nil
}

// createLineLoad builds one distributed load on its own line.
func (r *Run) createLineLoad(l model.LineLoadDetail) error {
	ptA := fmt.Sprintf("pt_%s_start", l.LoadName)
	ptB := fmt.Sprintf("pt_%s_end", l.LoadName)
	line := fmt.Sprintf("line_%s", l.LoadName)

	if err := r.m.CreatePoint(ptA, l.XStart, l.YStart); err != nil {
		return err
	}
	if err := r.m.CreatePoint(ptB, l.XEnd, l.YEnd); err != nil {
		return err
	}
	if err := r.m.CreateLine(line, ptA, ptB); err != nil {
		return err
	}
	if err := r.m.CreateLineLoad(line, l.LoadName, l.QxStart, l.QyStart); err != nil {
		return err
	}

	r.Registry.LineLoads = append(r.Registry.LineLoads, model.LineLoadRecord{
		LoadName: l.LoadName,
		LineName: line,
	})
	return nil
}
