package plaxis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/strataworks/erssgen/internal/model"
)

// Client executes one remote scripting command against the modeler and
// returns its textual response. Implementations own the wire protocol.
type Client interface {
	Exec(ctx context.Context, command string, args ...any) (string, error)
}

// Session drives a live modeler through a Client. Every call is bounded by
// the configured timeout so a wedged modeler fails the run instead of
// hanging it.
type Session struct {
	client  Client
	adapter NameAdapter
	timeout time.Duration
	log     zerolog.Logger
}

// NewSession wraps a connected client. A zero timeout defaults to 30s.
func NewSession(client Client, adapter NameAdapter, timeout time.Duration, log zerolog.Logger) *Session {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Session{client: client, adapter: adapter, timeout: timeout, log: log}
}

func (s *Session) exec(command string, args ...any) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	out, err := s.client.Exec(ctx, command, args...)
	if err != nil {
		s.log.Debug().Str("command", command).Err(err).Msg("modeler command failed")
		return "", fmt.Errorf("%s: %w", command, err)
	}
	return out, nil
}

func flatten(props []Property) []any {
	args := make([]any, 0, 2*len(props))
	for _, p := range props {
		args = append(args, p.Key, p.Value)
	}
	return args
}

// SetProjectProperties applies the project title, units and model/element
// types before any geometry is created.
func (s *Session) SetProjectProperties(p model.ProjectInfo, g model.GeometryInfo) error {
	_, err := s.exec("setproperties",
		"Title", p.Title,
		"UnitForce", p.UnitForce,
		"UnitLength", p.UnitLength,
		"UnitTime", p.UnitTime,
		"ModelType", g.ModelType,
		"ElementType", g.ElementType,
	)
	return err
}

// SetWorkingArea sets the soil contour rectangle.
func (s *Session) SetWorkingArea(xMin, yMin, xMax, yMax float64) error {
	_, err := s.exec("SoilContour.initializerectangular", xMin, yMin, xMax, yMax)
	return err
}

func (s *Session) CreateSoilMaterial(layer model.Layer, name string) error {
	_, err := s.exec("soilmat", flatten(s.adapter.SoilProperties(layer, name))...)
	return err
}

func (s *Session) CreatePlateMaterial(p model.PlateProperties) error {
	_, err := s.exec("platemat", flatten(s.adapter.PlateProperties(p))...)
	return err
}

func (s *Session) CreateAnchorMaterial(a model.AnchorProperties) error {
	_, err := s.exec("anchormat", flatten(s.adapter.AnchorProperties(a))...)
	return err
}

// CreateBorehole inserts a borehole at x with the given water head.
func (s *Session) CreateBorehole(name string, x, waterHead float64) error {
	if _, err := s.exec("borehole", x); err != nil {
		return err
	}
	if _, err := s.exec("rename", "Boreholes[-1]", name); err != nil {
		return err
	}
	_, err := s.exec("set", name+".Head", waterHead)
	return err
}

// AddSoilLayer appends one stratigraphy layer to the borehole column and
// assigns its material. Layers are added top down; index is zero-based.
func (s *Session) AddSoilLayer(index int, top, bottom float64, materialName string) error {
	if _, err := s.exec("soillayer", 0); err != nil {
		return err
	}
	zones := fmt.Sprintf("Soillayers[%d].Zones[0]", index)
	if _, err := s.exec("set", zones+".Top", top); err != nil {
		return err
	}
	if _, err := s.exec("set", zones+".Bottom", bottom); err != nil {
		return err
	}
	soil := fmt.Sprintf("Soils[%d].Material", index)
	_, err := s.exec("set", soil, materialName)
	return err
}

func (s *Session) CreatePoint(name string, x, y float64) error {
	if _, err := s.exec("point", x, y); err != nil {
		return err
	}
	_, err := s.exec("rename", "Points[-1]", name)
	return err
}

func (s *Session) CreateLine(name, point1, point2 string) error {
	if _, err := s.exec("line", point1, point2); err != nil {
		return err
	}
	_, err := s.exec("rename", "Lines[-1]", name)
	return err
}

func (s *Session) CreatePlate(lineName, plateName, materialName string) error {
	if _, err := s.exec("plate", lineName); err != nil {
		return err
	}
	if _, err := s.exec("rename", lineName+".Plate", plateName); err != nil {
		return err
	}
	_, err := s.exec("set", plateName+".Material", materialName)
	return err
}

// CreateInterface attaches a positive or negative soil interface to a plate
// line.
func (s *Session) CreateInterface(lineName, name string, positive bool) error {
	verb := "neginterface"
	member := ".NegativeInterface"
	if positive {
		verb = "posinterface"
		member = ".PositiveInterface"
	}
	if _, err := s.exec(verb, lineName); err != nil {
		return err
	}
	_, err := s.exec("rename", lineName+member, name)
	return err
}

func (s *Session) CreateNodeToNodeAnchor(lineName, anchorName, materialName string) error {
	if _, err := s.exec("n2nanchor", lineName); err != nil {
		return err
	}
	if _, err := s.exec("rename", lineName+".NodeToNodeAnchor", anchorName); err != nil {
		return err
	}
	_, err := s.exec("set", anchorName+".Material", materialName)
	return err
}

func (s *Session) CreateFixedEndAnchor(pointName, anchorName string, dirX, dirY float64, materialName string) error {
	if _, err := s.exec("fixedendanchor", pointName); err != nil {
		return err
	}
	if _, err := s.exec("rename", pointName+".FixedEndAnchor", anchorName); err != nil {
		return err
	}
	if _, err := s.exec("set", anchorName+".Direction", dirX, dirY); err != nil {
		return err
	}
	_, err := s.exec("set", anchorName+".Material", materialName)
	return err
}

func (s *Session) CreateLineLoad(lineName, loadName string, qxStart, qyStart float64) error {
	if _, err := s.exec("lineload", lineName); err != nil {
		return err
	}
	if _, err := s.exec("rename", lineName+".LineLoad", loadName); err != nil {
		return err
	}
	if _, err := s.exec("set", loadName+".qx_start", qxStart); err != nil {
		return err
	}
	_, err := s.exec("set", loadName+".qy_start", qyStart)
	return err
}

// CreatePolygon creates a closed four-corner polygon and renames it. The
// corner order follows the geometry engine's descriptor convention.
func (s *Session) CreatePolygon(corners [4]model.Point, name string) error {
	args := make([]any, 0, 8)
	for _, c := range corners {
		args = append(args, c.X, c.Y)
	}
	if _, err := s.exec("polygon", args...); err != nil {
		return err
	}
	_, err := s.exec("rename", "Polygons[-1]", name)
	return err
}

// AssignMaterial sets the soil material of a named polygon.
func (s *Session) AssignMaterial(polygonName, materialName string) error {
	_, err := s.exec("set", polygonName+".Soil.Material", materialName)
	return err
}

// ListMaterials returns the names of all materials defined in the model,
// as reported by the modeler.
func (s *Session) ListMaterials() ([]string, error) {
	out, err := s.exec("echo", "Materials")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, line := range strings.Split(out, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// AddPhase appends a construction phase following the previous one.
func (s *Session) AddPhase(phaseNo, phaseName string) error {
	if _, err := s.exec("phase", "Phases[-1]"); err != nil {
		return err
	}
	if _, err := s.exec("rename", "Phases[-1]", phaseNo); err != nil {
		return err
	}
	_, err := s.exec("set", phaseNo+".Identification", phaseName)
	return err
}

func (s *Session) Activate(elementName, phaseNo string) error {
	_, err := s.exec("activate", elementName, phaseNo)
	return err
}

func (s *Session) Deactivate(elementName, phaseNo string) error {
	_, err := s.exec("deactivate", elementName, phaseNo)
	return err
}

// SetWaterInterpolate marks a polygon's pore pressure as interpolated from
// adjacent clusters in the given phase.
func (s *Session) SetWaterInterpolate(polygonName, phaseNo string) error {
	_, err := s.exec("set", polygonName+".WaterConditions.Conditions", phaseNo, "Interpolate")
	return err
}

// SetWaterDry marks a polygon dry in the given phase.
func (s *Session) SetWaterDry(polygonName, phaseNo string) error {
	_, err := s.exec("set", polygonName+".WaterConditions.Conditions", phaseNo, "Dry")
	return err
}

// GenerateMesh meshes the model with default coarseness.
func (s *Session) GenerateMesh() error {
	if _, err := s.exec("gotomesh"); err != nil {
		return err
	}
	_, err := s.exec("mesh", 0.06)
	return err
}
