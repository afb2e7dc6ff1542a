package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BoundingBox is an axis-aligned box described by its minimum and maximum corners.
// A box built from at least one point always satisfies Min <= Max componentwise.
// Zero-volume boxes (flat or single-point meshes) are valid.
type BoundingBox struct {
	Min mgl32.Vec3
	Max mgl32.Vec3

	populated bool
}

// NewBoundingBox returns an empty box that adopts the first point passed to Extend.
//
// Returns:
//   - BoundingBox: the empty box
func NewBoundingBox() BoundingBox {
	return BoundingBox{}
}

// BoundingBoxOf returns the box spanning the given corners, normalising their order per axis.
//
// Parameters:
//   - a: one corner
//   - b: the opposite corner
//
// Returns:
//   - BoundingBox: the box with Min <= Max on every axis
func BoundingBoxOf(a, b mgl32.Vec3) BoundingBox {
	bb := NewBoundingBox()
	bb.Extend(a)
	bb.Extend(b)
	return bb
}

// Extend grows the box so that it contains p.
//
// Parameters:
//   - p: the point to include
func (b *BoundingBox) Extend(p mgl32.Vec3) {
	if !b.populated {
		b.Min = p
		b.Max = p
		b.populated = true
		return
	}
	for i := range 3 {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Union grows the box so that it contains other. Empty boxes are ignored.
//
// Parameters:
//   - other: the box to merge into this one
func (b *BoundingBox) Union(other BoundingBox) {
	if other.IsEmpty() {
		return
	}
	b.Extend(other.Min)
	b.Extend(other.Max)
}

// IsEmpty reports whether no point has been added to the box.
//
// Returns:
//   - bool: true for a box that has never been extended
func (b BoundingBox) IsEmpty() bool {
	return !b.populated
}

// Size returns the extent of the box along each axis. Empty boxes have zero size.
//
// Returns:
//   - mgl32.Vec3: Max - Min
func (b BoundingBox) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the geometric center of the box.
//
// Returns:
//   - mgl32.Vec3: (Min + Max) / 2
func (b BoundingBox) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// IsDegenerate reports whether the box has zero extent on at least one axis.
//
// Returns:
//   - bool: true for flat, line or point boxes
func (b BoundingBox) IsDegenerate() bool {
	s := b.Size()
	return s[0] == 0 || s[1] == 0 || s[2] == 0
}

// HorizontalReach returns the largest absolute X or Y coordinate touched by the box.
// This is the distance from the origin the ground grid has to cover.
//
// Returns:
//   - float32: max(|Max.x|, |Min.x|, |Max.y|, |Min.y|)
func (b BoundingBox) HorizontalReach() float32 {
	return max(Abs(b.Max[0]), Abs(b.Min[0]), Abs(b.Max[1]), Abs(b.Min[1]))
}
