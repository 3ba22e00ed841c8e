package plaxis

import (
	"fmt"
	"sync"

	"github.com/strataworks/erssgen/internal/model"
)

// MemoryPolygon is one polygon recorded by the in-memory model.
type MemoryPolygon struct {
	Corners  [4]model.Point
	Material string
}

// MemoryPhase is one construction phase and the element state changes applied
// in it.
type MemoryPhase struct {
	PhaseNo     string
	PhaseName   string
	Activated   []string
	Deactivated []string
	WaterStates map[string]string
}

// Memory is an in-memory model that records every build call instead of
// talking to a modeler. It backs the dry-run mode and the package tests.
// Safe for concurrent use.
type Memory struct {
	mu sync.Mutex

	Project  model.ProjectInfo
	Geometry model.GeometryInfo

	materialOrder []string
	materials     map[string][]Property

	Boreholes map[string]float64
	SoilSpans []struct{ Top, Bottom float64 }

	Points map[string]model.Point
	Lines  map[string][2]string
	Plates map[string]string

	Polygons map[string]*MemoryPolygon
	polyList []string

	Phases []*MemoryPhase

	Meshed bool

	adapter NameAdapter
}

// NewMemory returns an empty in-memory model. The adapter only shapes the
// recorded material properties; either generation works.
func NewMemory(adapter NameAdapter) *Memory {
	return &Memory{
		materials: make(map[string][]Property),
		Boreholes: make(map[string]float64),
		Points:    make(map[string]model.Point),
		Lines:     make(map[string][2]string),
		Plates:    make(map[string]string),
		Polygons:  make(map[string]*MemoryPolygon),
		adapter:   adapter,
	}
}

func (m *Memory) SetProjectProperties(p model.ProjectInfo, g model.GeometryInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Project, m.Geometry = p, g
	return nil
}

func (m *Memory) SetWorkingArea(xMin, yMin, xMax, yMax float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Geometry.XMin, m.Geometry.YMin = xMin, yMin
	m.Geometry.XMax, m.Geometry.YMax = xMax, yMax
	return nil
}

func (m *Memory) addMaterial(name string, props []Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.materials[name]; ok {
		return fmt.Errorf("material %q already defined", name)
	}
	m.materials[name] = props
	m.materialOrder = append(m.materialOrder, name)
	return nil
}

func (m *Memory) CreateSoilMaterial(layer model.Layer, name string) error {
	return m.addMaterial(name, m.adapter.SoilProperties(layer, name))
}

func (m *Memory) CreatePlateMaterial(p model.PlateProperties) error {
	return m.addMaterial(p.MaterialName, m.adapter.PlateProperties(p))
}

func (m *Memory) CreateAnchorMaterial(a model.AnchorProperties) error {
	return m.addMaterial(a.MaterialName, m.adapter.AnchorProperties(a))
}

// MaterialProperties returns the recorded property list of a material.
func (m *Memory) MaterialProperties(name string) ([]Property, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	props, ok := m.materials[name]
	return props, ok
}

func (m *Memory) CreateBorehole(name string, x, waterHead float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Boreholes[name] = waterHead
	return nil
}

func (m *Memory) AddSoilLayer(index int, top, bottom float64, materialName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.materials[materialName]; !ok {
		return fmt.Errorf("soil layer %d references unknown material %q", index, materialName)
	}
	m.SoilSpans = append(m.SoilSpans, struct{ Top, Bottom float64 }{top, bottom})
	return nil
}

func (m *Memory) CreatePoint(name string, x, y float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Points[name] = model.Point{X: x, Y: y}
	return nil
}

func (m *Memory) CreateLine(name, point1, point2 string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Points[point1]; !ok {
		return fmt.Errorf("line %q references unknown point %q", name, point1)
	}
	if _, ok := m.Points[point2]; !ok {
		return fmt.Errorf("line %q references unknown point %q", name, point2)
	}
	m.Lines[name] = [2]string{point1, point2}
	return nil
}

func (m *Memory) CreatePlate(lineName, plateName, materialName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Lines[lineName]; !ok {
		return fmt.Errorf("plate %q references unknown line %q", plateName, lineName)
	}
	if _, ok := m.materials[materialName]; !ok {
		return fmt.Errorf("plate %q references unknown material %q", plateName, materialName)
	}
	m.Plates[plateName] = materialName
	return nil
}

func (m *Memory) CreateInterface(lineName, name string, positive bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Lines[lineName]; !ok {
		return fmt.Errorf("interface %q references unknown line %q", name, lineName)
	}
	return nil
}

func (m *Memory) CreateNodeToNodeAnchor(lineName, anchorName, materialName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Lines[lineName]; !ok {
		return fmt.Errorf("anchor %q references unknown line %q", anchorName, lineName)
	}
	if _, ok := m.materials[materialName]; !ok {
		return fmt.Errorf("anchor %q references unknown material %q", anchorName, materialName)
	}
	return nil
}

func (m *Memory) CreateFixedEndAnchor(pointName, anchorName string, dirX, dirY float64, materialName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Points[pointName]; !ok {
		return fmt.Errorf("anchor %q references unknown point %q", anchorName, pointName)
	}
	if _, ok := m.materials[materialName]; !ok {
		return fmt.Errorf("anchor %q references unknown material %q", anchorName, materialName)
	}
	return nil
}

func (m *Memory) CreateLineLoad(lineName, loadName string, qxStart, qyStart float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Lines[lineName]; !ok {
		return fmt.Errorf("line load %q references unknown line %q", loadName, lineName)
	}
	return nil
}

func (m *Memory) CreatePolygon(corners [4]model.Point, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Polygons[name]; ok {
		return fmt.Errorf("polygon %q already exists", name)
	}
	m.Polygons[name] = &MemoryPolygon{Corners: corners}
	m.polyList = append(m.polyList, name)
	return nil
}

func (m *Memory) AssignMaterial(polygonName, materialName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Polygons[polygonName]
	if !ok {
		return fmt.Errorf("unknown polygon %q", polygonName)
	}
	if _, ok := m.materials[materialName]; !ok {
		return fmt.Errorf("unknown material %q", materialName)
	}
	p.Material = materialName
	return nil
}

// ListMaterials returns material names in creation order.
func (m *Memory) ListMaterials() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, len(m.materialOrder))
	copy(names, m.materialOrder)
	return names, nil
}

// PolygonNames returns polygon names in creation order.
func (m *Memory) PolygonNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, len(m.polyList))
	copy(names, m.polyList)
	return names
}

func (m *Memory) phase(phaseNo string) *MemoryPhase {
	for _, p := range m.Phases {
		if p.PhaseNo == phaseNo {
			return p
		}
	}
	return nil
}

func (m *Memory) AddPhase(phaseNo, phaseName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase(phaseNo) != nil {
		return fmt.Errorf("phase %q already exists", phaseNo)
	}
	m.Phases = append(m.Phases, &MemoryPhase{
		PhaseNo:     phaseNo,
		PhaseName:   phaseName,
		WaterStates: make(map[string]string),
	})
	return nil
}

func (m *Memory) Activate(elementName, phaseNo string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.phase(phaseNo)
	if p == nil {
		return fmt.Errorf("unknown phase %q", phaseNo)
	}
	p.Activated = append(p.Activated, elementName)
	return nil
}

func (m *Memory) Deactivate(elementName, phaseNo string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.phase(phaseNo)
	if p == nil {
		return fmt.Errorf("unknown phase %q", phaseNo)
	}
	p.Deactivated = append(p.Deactivated, elementName)
	return nil
}

func (m *Memory) setWater(polygonName, phaseNo, state string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Polygons[polygonName]; !ok {
		return fmt.Errorf("unknown polygon %q", polygonName)
	}
	p := m.phase(phaseNo)
	if p == nil {
		return fmt.Errorf("unknown phase %q", phaseNo)
	}
	p.WaterStates[polygonName] = state
	return nil
}

func (m *Memory) SetWaterInterpolate(polygonName, phaseNo string) error {
	return m.setWater(polygonName, phaseNo, "Interpolate")
}

func (m *Memory) SetWaterDry(polygonName, phaseNo string) error {
	return m.setWater(polygonName, phaseNo, "Dry")
}

func (m *Memory) GenerateMesh() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Meshed = true
	return nil
}
