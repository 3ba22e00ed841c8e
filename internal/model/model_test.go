package model

import (
	"errors"
	"testing"
)

func validStrata() Stratigraphy {
	return Stratigraphy{
		{Top: 100, Bottom: 90, SoilType: "Fill"},
		{Top: 90, Bottom: 70, SoilType: "Clay"},
		{Top: 70, Bottom: 40, SoilType: "Sand"},
	}
}

func TestStratigraphyValidateAccepts(t *testing.T) {
	if err := validStrata().Validate(); err != nil {
		t.Fatalf("valid log rejected: %v", err)
	}
}

func TestStratigraphyValidateEmpty(t *testing.T) {
	err := Stratigraphy{}.Validate()
	if !errors.Is(err, ErrEmptyStratigraphy) {
		t.Errorf("expected ErrEmptyStratigraphy, got %v", err)
	}
}

func TestStratigraphyValidateGap(t *testing.T) {
	s := Stratigraphy{
		{Top: 100, Bottom: 90, SoilType: "Fill"},
		{Top: 85, Bottom: 70, SoilType: "Clay"}, // 5m gap below Fill
	}
	if err := s.Validate(); err == nil {
		t.Error("expected error for gap between layers")
	}
}

func TestStratigraphyValidateOverlap(t *testing.T) {
	s := Stratigraphy{
		{Top: 100, Bottom: 90, SoilType: "Fill"},
		{Top: 95, Bottom: 70, SoilType: "Clay"}, // tops into Fill
	}
	if err := s.Validate(); err == nil {
		t.Error("expected error for overlapping layers")
	}
}

func TestStratigraphyValidateInverted(t *testing.T) {
	s := Stratigraphy{{Top: 90, Bottom: 100, SoilType: "Fill"}}
	if err := s.Validate(); err == nil {
		t.Error("expected error for inverted layer")
	}
}

func TestStratigraphyValidateMissingSoilType(t *testing.T) {
	s := Stratigraphy{{Top: 100, Bottom: 90}}
	if err := s.Validate(); err == nil {
		t.Error("expected error for missing soil type")
	}
}

func TestStratigraphyTopAndFloor(t *testing.T) {
	s := validStrata()
	if s.Top() != 100 {
		t.Errorf("expected top 100, got %f", s.Top())
	}
	if s.Floor() != 40 {
		t.Errorf("expected floor 40, got %f", s.Floor())
	}
}

func TestRectValidate(t *testing.T) {
	ok := Rect{XLeft: 0, XRight: 10, YTop: 95, YBottom: 80}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid rect rejected: %v", err)
	}

	inverted := Rect{XLeft: 0, XRight: 10, YTop: 80, YBottom: 95}
	if err := inverted.Validate(); !errors.Is(err, ErrInvalidRectangle) {
		t.Errorf("expected ErrInvalidRectangle for inverted rect, got %v", err)
	}

	// Zero height is legal: as-built markers have From == To.
	flat := Rect{XLeft: 0, XRight: 10, YTop: 80, YBottom: 80}
	if err := flat.Validate(); err != nil {
		t.Errorf("zero-height rect should be valid, got %v", err)
	}

	badX := Rect{XLeft: 10, XRight: 0, YTop: 95, YBottom: 80}
	if err := badX.Validate(); !errors.Is(err, ErrInvalidRectangle) {
		t.Errorf("expected ErrInvalidRectangle for swapped x edges, got %v", err)
	}
}

func TestNewPolygonDescriptorCornerOrder(t *testing.T) {
	r := Rect{XLeft: 2, XRight: 8, YTop: 95, YBottom: 80}
	d := NewPolygonDescriptor("poly", r, 95, 90, "Fill")

	want := [4]Point{{2, 95}, {2, 90}, {8, 90}, {8, 95}}
	if d.Corners != want {
		t.Errorf("corner order mismatch: got %v, want %v", d.Corners, want)
	}
	if d.SoilType != "Fill" || d.Top != 95 || d.Bottom != 90 {
		t.Errorf("descriptor fields wrong: %+v", d)
	}
}

func TestRegistryLookups(t *testing.T) {
	reg := Registry{
		Excavation: []ProvenanceRecord{
			{StageNo: 1, PolygonName: "polygon_Stage1_Excavation"},
			{StageNo: 2, PolygonName: "polygon_Stage2_Excavation"},
			{StageNo: 2, PolygonName: "polygon_Stage2_Excavation_2"},
			{StageNo: 3, PolygonName: "polygon_Stage3_Excavation"},
		},
		Water: []ProvenanceRecord{{PolygonName: "polygon_WaterTable"}},
		Plates: []PlateRecord{
			{PlateName: "Wall_A", LineName: "Line_Wall_A"},
		},
		Struts: []StrutRecord{
			{StrutName: "S1", Type: StrutN2N, LineName: "Line_S1", PointName: "point_S1Left"},
			{StrutName: "S2", Type: StrutFixedEnd, PointName: "point_S2"},
		},
		LineLoads: []LineLoadRecord{{LoadName: "Surcharge", LineName: "Line_Surcharge"}},
	}

	got := reg.PolygonsForStage(2)
	if len(got) != 2 || got[0] != "polygon_Stage2_Excavation" || got[1] != "polygon_Stage2_Excavation_2" {
		t.Errorf("PolygonsForStage(2) = %v", got)
	}

	below := reg.PolygonsBelowStage(2)
	if len(below) != 1 || below[0] != "polygon_Stage3_Excavation" {
		t.Errorf("PolygonsBelowStage(2) = %v", below)
	}

	all := reg.AllPolygons()
	if len(all) != 5 || all[4] != "polygon_WaterTable" {
		t.Errorf("AllPolygons() = %v", all)
	}

	if line, ok := reg.WallLine("Wall_A"); !ok || line != "Line_Wall_A" {
		t.Errorf("WallLine = %q, %v", line, ok)
	}
	if anchor, ok := reg.StrutAnchor("S1"); !ok || anchor != "Line_S1" {
		t.Errorf("StrutAnchor(S1) = %q, %v", anchor, ok)
	}
	if anchor, ok := reg.StrutAnchor("S2"); !ok || anchor != "point_S2" {
		t.Errorf("StrutAnchor(S2) = %q, %v", anchor, ok)
	}
	if _, ok := reg.StrutAnchor("missing"); ok {
		t.Error("StrutAnchor should miss unknown strut")
	}
	if line, ok := reg.LoadLine("Surcharge"); !ok || line != "Line_Surcharge" {
		t.Errorf("LoadLine = %q, %v", line, ok)
	}
}
