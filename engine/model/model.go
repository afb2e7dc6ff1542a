package model

import (
	"github.com/Carmen-Shannon/oxy-stl/common"
)

// MeshGeometry is an immutable triangle mesh decoded from a single payload.
// The bounding box is computed once at construction.
type MeshGeometry struct {
	header    string
	triangles []Triangle
	bounds    common.BoundingBox
}

// NewMeshGeometry wraps decoded triangles. The slice is owned by the geometry afterwards.
//
// Parameters:
//   - header: the 80-byte STL header with trailing padding removed
//   - triangles: the decoded facets in file order
//
// Returns:
//   - *MeshGeometry: the geometry with its bounding box computed
func NewMeshGeometry(header string, triangles []Triangle) *MeshGeometry {
	bb := common.NewBoundingBox()
	for i := range triangles {
		for _, v := range triangles[i].Vertices {
			bb.Extend(v)
		}
	}
	return &MeshGeometry{
		header:    header,
		triangles: triangles,
		bounds:    bb,
	}
}

// Header returns the trimmed 80-byte file header.
func (m *MeshGeometry) Header() string {
	return m.header
}

// TriangleCount returns the number of facets.
func (m *MeshGeometry) TriangleCount() int {
	return len(m.triangles)
}

// Triangle returns the i-th facet by value.
func (m *MeshGeometry) Triangle(i int) Triangle {
	return m.triangles[i]
}

// Triangles returns a copy of all facets.
func (m *MeshGeometry) Triangles() []Triangle {
	out := make([]Triangle, len(m.triangles))
	copy(out, m.triangles)
	return out
}

// Bounds returns the axis-aligned bounding box of every vertex. An empty mesh reports
// the zero box at the origin so downstream framing never sees an unset box.
//
// Returns:
//   - common.BoundingBox: the mesh bounds
func (m *MeshGeometry) Bounds() common.BoundingBox {
	if m.bounds.IsEmpty() {
		return common.BoundingBoxOf(m.bounds.Min, m.bounds.Max)
	}
	return m.bounds
}

// SurfaceArea returns the summed area of every facet.
func (m *MeshGeometry) SurfaceArea() float32 {
	var total float32
	for i := range m.triangles {
		total += m.triangles[i].Area()
	}
	return total
}
