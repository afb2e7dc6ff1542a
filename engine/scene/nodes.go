package scene

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"math"

	"github.com/Carmen-Shannon/oxy-stl/common"
	"github.com/Carmen-Shannon/oxy-stl/engine/model"
	"github.com/Carmen-Shannon/oxy-stl/engine/renderer/material"
)

// GridCell is the spacing between grid lines in model units.
const GridCell = 5

// GridSize returns the edge length of the ground grid for a mesh's bounds: the largest
// horizontal extent from the origin, rounded up to whole cells and doubled so the grid covers
// both sides of the origin.
//
// Parameters:
//   - bb: the mesh bounds
//
// Returns:
//   - float32: the grid edge length, a multiple of 2*GridCell
func GridSize(bb common.BoundingBox) float32 {
	return float32(math.Ceil(float64(bb.HorizontalReach())/GridCell)) * 2 * GridCell
}

// MeshNode is the single model in a scene.
type MeshNode struct {
	Geometry *model.MeshGeometry
	Material material.Material
}

// GridNode is the ground grid. It lies in the XY plane: the renderer's grid primitive is
// horizontal in XZ and is rotated by Rotation (radians, XYZ order) to match the Z-up model.
type GridNode struct {
	Size      float32
	Divisions int
	Color     common.Color
	Rotation  [3]float32
}

// AxesNode draws the three coordinate axes from the origin.
type AxesNode struct {
	Size float32
}

// BoxNode outlines the mesh bounds.
type BoxNode struct {
	Bounds common.BoundingBox
	Color  common.Color
}

type meshJSON struct {
	Triangles    int             `json:"triangles"`
	Positions    string          `json:"positions"`
	Normals      string          `json:"normals"`
	MaterialType material.Kind   `json:"materialType"`
	Material     json.RawMessage `json:"material"`
}

// MarshalJSON encodes the geometry as base64 little-endian float32 arrays, nine position and
// nine normal components per triangle, the layout of a non-indexed buffer geometry.
func (n *MeshNode) MarshalJSON() ([]byte, error) {
	mat, err := json.Marshal(n.Material)
	if err != nil {
		return nil, err
	}
	positions, normals := packTriangles(n.Geometry)
	return json.Marshal(meshJSON{
		Triangles:    n.Geometry.TriangleCount(),
		Positions:    base64.StdEncoding.EncodeToString(positions),
		Normals:      base64.StdEncoding.EncodeToString(normals),
		MaterialType: n.Material.Kind(),
		Material:     mat,
	})
}

func packTriangles(m *model.MeshGeometry) (positions, normals []byte) {
	n := m.TriangleCount()
	positions = make([]byte, 0, n*9*4)
	normals = make([]byte, 0, n*9*4)
	for i := range n {
		t := m.Triangle(i)
		for _, v := range t.Vertices {
			for _, c := range v {
				positions = binary.LittleEndian.AppendUint32(positions, math.Float32bits(c))
			}
			for _, c := range t.Normal {
				normals = binary.LittleEndian.AppendUint32(normals, math.Float32bits(c))
			}
		}
	}
	return positions, normals
}

// MarshalJSON describes the grid with the renderer's parameter names.
func (g *GridNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Size      float32      `json:"size"`
		Divisions int          `json:"divisions"`
		Color     common.Color `json:"color"`
		Rotation  [3]float32   `json:"rotation"`
	}{g.Size, g.Divisions, g.Color, g.Rotation})
}

// MarshalJSON describes the axes helper.
func (a *AxesNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Size float32 `json:"size"`
	}{a.Size})
}

// MarshalJSON describes the box helper by its corners.
func (b *BoxNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Min   [3]float32   `json:"min"`
		Max   [3]float32   `json:"max"`
		Color common.Color `json:"color"`
	}{b.Bounds.Min, b.Bounds.Max, b.Color})
}
