package model

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Triangle is one facet of a triangle mesh as stored in a binary STL record.
type Triangle struct {
	// Normal is the facet normal written by the exporter. It is not recomputed or validated.
	Normal mgl32.Vec3

	// Vertices are the three corners in file order.
	Vertices [3]mgl32.Vec3

	// Attribute is the 16-bit "attribute byte count" word that closes every record.
	// Most exporters write zero; some store a packed colour.
	Attribute uint16
}

// Area returns the surface area of the triangle. Degenerate triangles return zero.
//
// Returns:
//   - float32: the area
func (t Triangle) Area() float32 {
	e1 := t.Vertices[1].Sub(t.Vertices[0])
	e2 := t.Vertices[2].Sub(t.Vertices[0])
	return e1.Cross(e2).Len() / 2
}
