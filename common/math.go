package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the smallest distance the camera helpers treat as non-zero.
const Epsilon = 1e-6

// Abs returns the absolute value of a float32 without a float64 round trip through callers.
//
// Parameters:
//   - v: the value
//
// Returns:
//   - float32: |v|
func Abs(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

// Clamp limits v to the closed range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float32: the clamped value
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round rounds v to the given number of decimal places.
//
// Parameters:
//   - v: the value to round
//   - places: number of decimals to keep
//
// Returns:
//   - float64: the rounded value
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// SafeNormalize returns v scaled to unit length, or fallback when v is shorter than Epsilon.
//
// Parameters:
//   - v: the vector to normalise
//   - fallback: the unit vector returned for near-zero input
//
// Returns:
//   - mgl32.Vec3: a unit vector
func SafeNormalize(v, fallback mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < Epsilon || math.IsNaN(float64(l)) {
		return fallback
	}
	return v.Mul(1 / l)
}

// EulerXYZ extracts the X-Y-Z intrinsic Euler angles (radians) from the rotation part of a
// column-major 4x4 matrix, the same decomposition the browser renderer reports for
// Object3D.rotation with the default "XYZ" order.
//
// Parameters:
//   - m: the world matrix of the object
//
// Returns:
//   - mgl32.Vec3: rotation around X, Y and Z in radians
func EulerXYZ(m mgl32.Mat4) mgl32.Vec3 {
	m11, m12, m13 := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	m22, m23 := m.At(1, 1), m.At(1, 2)
	m32, m33 := m.At(2, 1), m.At(2, 2)

	var out mgl32.Vec3
	out[1] = float32(math.Asin(float64(Clamp(m13, -1, 1))))
	if Abs(m13) < 0.9999999 {
		out[0] = float32(math.Atan2(float64(-m23), float64(m33)))
		out[2] = float32(math.Atan2(float64(-m12), float64(m11)))
	} else {
		out[0] = float32(math.Atan2(float64(m32), float64(m22)))
		out[2] = 0
	}
	return out
}
