// Package meshtest builds binary STL payloads for tests.
package meshtest

import (
	"encoding/base64"
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Facet is a triangle to be written into a payload.
type Facet struct {
	Normal    mgl32.Vec3
	Vertices  [3]mgl32.Vec3
	Attribute uint16
}

// Encode writes facets in the binary STL layout with the given header text.
func Encode(header string, facets []Facet) []byte {
	buf := make([]byte, 84+50*len(facets))
	copy(buf[:80], header)
	binary.LittleEndian.PutUint32(buf[80:84], uint32(len(facets)))
	for i, f := range facets {
		rec := buf[84+i*50:]
		putVec3(rec[0:], f.Normal)
		putVec3(rec[12:], f.Vertices[0])
		putVec3(rec[24:], f.Vertices[1])
		putVec3(rec[36:], f.Vertices[2])
		binary.LittleEndian.PutUint16(rec[48:], f.Attribute)
	}
	return buf
}

// Base64 is Encode followed by standard base64 encoding.
func Base64(header string, facets []Facet) string {
	return base64.StdEncoding.EncodeToString(Encode(header, facets))
}

// Box returns the twelve facets of an axis-aligned box spanning min..max.
func Box(min, max mgl32.Vec3) []Facet {
	c := func(x, y, z int) mgl32.Vec3 {
		pick := func(axis, sel int) float32 {
			if sel == 0 {
				return min[axis]
			}
			return max[axis]
		}
		return mgl32.Vec3{pick(0, x), pick(1, y), pick(2, z)}
	}
	quad := func(n mgl32.Vec3, a, b, cc, d mgl32.Vec3) []Facet {
		return []Facet{
			{Normal: n, Vertices: [3]mgl32.Vec3{a, b, cc}},
			{Normal: n, Vertices: [3]mgl32.Vec3{a, cc, d}},
		}
	}
	var out []Facet
	out = append(out, quad(mgl32.Vec3{0, 0, -1}, c(0, 0, 0), c(0, 1, 0), c(1, 1, 0), c(1, 0, 0))...)
	out = append(out, quad(mgl32.Vec3{0, 0, 1}, c(0, 0, 1), c(1, 0, 1), c(1, 1, 1), c(0, 1, 1))...)
	out = append(out, quad(mgl32.Vec3{0, -1, 0}, c(0, 0, 0), c(1, 0, 0), c(1, 0, 1), c(0, 0, 1))...)
	out = append(out, quad(mgl32.Vec3{0, 1, 0}, c(0, 1, 0), c(0, 1, 1), c(1, 1, 1), c(1, 1, 0))...)
	out = append(out, quad(mgl32.Vec3{-1, 0, 0}, c(0, 0, 0), c(0, 0, 1), c(0, 1, 1), c(0, 1, 0))...)
	out = append(out, quad(mgl32.Vec3{1, 0, 0}, c(1, 0, 0), c(1, 1, 0), c(1, 1, 1), c(1, 0, 1))...)
	return out
}

// Strip returns n facets laid out along X, each one unit wide, for bulk-decode tests.
func Strip(n int) []Facet {
	out := make([]Facet, n)
	for i := range out {
		x := float32(i)
		out[i] = Facet{
			Normal:    mgl32.Vec3{0, 0, 1},
			Vertices:  [3]mgl32.Vec3{{x, 0, 0}, {x + 1, 0, 0}, {x, 1, float32(i % 7)}},
			Attribute: uint16(i),
		}
	}
	return out
}

func putVec3(b []byte, v mgl32.Vec3) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(v[2]))
}
