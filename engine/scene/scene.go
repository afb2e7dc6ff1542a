package scene

import (
	"encoding/json"
	"errors"
	"math"

	"github.com/Carmen-Shannon/oxy-stl/common"
	"github.com/Carmen-Shannon/oxy-stl/engine/light"
	"github.com/Carmen-Shannon/oxy-stl/engine/model"
	"github.com/Carmen-Shannon/oxy-stl/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-stl/engine/settings"
)

// ErrNoMesh is returned by Assemble when there is no geometry to show.
var ErrNoMesh = errors.New("scene: no mesh geometry")

// DefaultBoxColor is the outline colour of the bounding box helper.
var DefaultBoxColor = common.ColorFromHex(0xffff00)

// Scene is the renderable graph for one mesh. It is immutable once assembled; a settings or file
// change produces a new Scene.
type Scene interface {
	// Name returns the scene's label.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Mesh returns the model node.
	//
	// Returns:
	//   - *MeshNode: the mesh and its material
	Mesh() *MeshNode

	// Lights returns the light rig.
	//
	// Returns:
	//   - []light.Light: the lights
	Lights() []light.Light

	// Grid returns the ground grid, or nil when the grid is disabled.
	//
	// Returns:
	//   - *GridNode: the grid or nil
	Grid() *GridNode

	// Axes returns the axes helper, or nil when hidden.
	//
	// Returns:
	//   - *AxesNode: the axes or nil
	Axes() *AxesNode

	// BoundingBox returns the bounding box outline, or nil when hidden.
	//
	// Returns:
	//   - *BoxNode: the outline or nil
	BoundingBox() *BoxNode

	// Bounds returns the mesh's axis-aligned bounds.
	//
	// Returns:
	//   - common.BoundingBox: the bounds
	Bounds() common.BoundingBox
}

type scene struct {
	logger common.Logger

	name   string
	lights []light.Light
	mesh   *MeshNode
	grid   *GridNode
	axes   *AxesNode
	box    *BoxNode
	bounds common.BoundingBox

	boxColor common.Color
}

var _ Scene = &scene{}

// Assemble builds the scene for a mesh under the given settings. The material is picked from
// the settings' material type; an absent or invalid material configuration falls back to the
// default lambert material and is logged, it never fails the assembly.
//
// Parameters:
//   - mesh: the decoded geometry
//   - vs: the settings snapshot
//   - options: a variadic list of SceneBuilderOption functions
//
// Returns:
//   - Scene: the assembled scene
//   - error: ErrNoMesh when mesh is nil
func Assemble(mesh *model.MeshGeometry, vs settings.ViewSettings, options ...SceneBuilderOption) (Scene, error) {
	if mesh == nil {
		return nil, ErrNoMesh
	}

	s := &scene{
		logger:   common.NewNopLogger(),
		name:     mesh.Header(),
		boxColor: DefaultBoxColor,
	}
	for _, option := range options {
		option(s)
	}
	if s.lights == nil {
		s.lights = light.DefaultRig()
	}

	mat, err := material.Resolve(vs.MeshMaterial.Type, vs.MeshMaterial.Config)
	if err != nil {
		s.logger.Warnf("using default material: %v", err)
	}

	s.bounds = mesh.Bounds()
	s.mesh = &MeshNode{Geometry: mesh, Material: mat}

	size := GridSize(s.bounds)
	if vs.Grid.Enable {
		s.grid = &GridNode{
			Size:      size,
			Divisions: int(size / GridCell),
			Color:     vs.Grid.Color,
			Rotation:  [3]float32{math.Pi / 2, 0, 0},
		}
	}
	if vs.ShowAxes {
		s.axes = &AxesNode{Size: size}
	}
	if vs.ShowBoundingBox {
		s.box = &BoxNode{Bounds: s.bounds, Color: s.boxColor}
	}

	s.logger.Debugf("assembled scene %q: %d triangles, %s material, grid %v", s.name, mesh.TriangleCount(), mat.Kind(), size)
	return s, nil
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Mesh() *MeshNode {
	return s.mesh
}

func (s *scene) Lights() []light.Light {
	return s.lights
}

func (s *scene) Grid() *GridNode {
	return s.grid
}

func (s *scene) Axes() *AxesNode {
	return s.axes
}

func (s *scene) BoundingBox() *BoxNode {
	return s.box
}

func (s *scene) Bounds() common.BoundingBox {
	return s.bounds
}

type sceneJSON struct {
	Name        string        `json:"name"`
	Mesh        *MeshNode     `json:"mesh"`
	Lights      []light.Light `json:"lights"`
	Grid        *GridNode     `json:"grid,omitempty"`
	Axes        *AxesNode     `json:"axes,omitempty"`
	BoundingBox *BoxNode      `json:"boundingBox,omitempty"`
}

// MarshalJSON describes the whole scene for the renderer. Hidden helpers are omitted.
func (s *scene) MarshalJSON() ([]byte, error) {
	return json.Marshal(sceneJSON{
		Name:        s.name,
		Mesh:        s.mesh,
		Lights:      s.lights,
		Grid:        s.grid,
		Axes:        s.axes,
		BoundingBox: s.box,
	})
}
