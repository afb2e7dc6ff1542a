// Package overlay formats the diagnostic text shown over the viewport.
package overlay

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-stl/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Precision is the number of decimals shown for coordinates.
const Precision = 2

// Info is what the overlay reports about the current frame.
type Info struct {
	Position  mgl32.Vec3
	Rotation  mgl32.Vec3 // radians
	Bounds    common.BoundingBox
	Triangles int
	FPS       float64
}

// Text renders the overlay. Coordinates are rounded to Precision decimals and rotation is shown
// in degrees.
//
// Parameters:
//   - info: the frame's information
//
// Returns:
//   - string: one line per item
func Text(info Info) string {
	size := info.Bounds.Size()
	deg := info.Rotation.Mul(180 / math.Pi)

	var b strings.Builder
	fmt.Fprintf(&b, "Camera position: %s\n", Vec(info.Position))
	fmt.Fprintf(&b, "Camera rotation: %s\n", Vec(deg))
	fmt.Fprintf(&b, "Bounding box: %s .. %s\n", Vec(info.Bounds.Min), Vec(info.Bounds.Max))
	fmt.Fprintf(&b, "Size: %s x %s x %s\n", Num(size.X()), Num(size.Y()), Num(size.Z()))
	fmt.Fprintf(&b, "Triangles: %d\n", info.Triangles)
	fmt.Fprintf(&b, "FPS: %s", strconv.FormatFloat(common.Round(info.FPS, 0), 'f', -1, 64))
	return b.String()
}

// Vec formats a vector as a rounded coordinate triple.
func Vec(v mgl32.Vec3) string {
	return fmt.Sprintf("(%s, %s, %s)", Num(v.X()), Num(v.Y()), Num(v.Z()))
}

// Num prints a rounded value without trailing zeros and without a negative zero.
func Num(f float32) string {
	r := common.Round(float64(f), Precision)
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
