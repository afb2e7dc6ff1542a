// Package framing computes where the camera goes for each of the standard views of a mesh.
package framing

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-stl/common"
	"github.com/Carmen-Shannon/oxy-stl/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

// NamedView is one of the standard camera orientations.
type NamedView int

const (
	// Isometric looks down at the model from the +X+Y+Z octant.
	Isometric NamedView = iota
	// Top looks down the -Z axis.
	Top
	// Left looks along +X from the -X side.
	Left
	// Right looks along -X from the +X side.
	Right
	// Bottom looks up the +Z axis.
	Bottom
)

// Views lists every named view in button order.
var Views = []NamedView{Isometric, Top, Left, Right, Bottom}

// SideEpsilon offsets the top and bottom views off the vertical so the orbit azimuth stays defined.
const SideEpsilon = 0.001

var viewNames = map[NamedView]string{
	Isometric: "isometric",
	Top:       "top",
	Left:      "left",
	Right:     "right",
	Bottom:    "bottom",
}

func (v NamedView) String() string {
	if name, ok := viewNames[v]; ok {
		return name
	}
	return fmt.Sprintf("NamedView(%d)", int(v))
}

// MarshalText encodes the view as its lowercase name.
func (v NamedView) MarshalText() ([]byte, error) {
	if _, ok := viewNames[v]; !ok {
		return nil, fmt.Errorf("unknown view %d", int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText decodes a view name.
func (v *NamedView) UnmarshalText(text []byte) error {
	parsed, err := ParseView(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseView maps a view name onto a NamedView. Matching ignores case and surrounding space,
// and "iso" is accepted for Isometric.
//
// Parameters:
//   - name: the view name
//
// Returns:
//   - NamedView: the view
//   - error: error if the name is unknown
func ParseView(name string) (NamedView, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "iso" {
		return Isometric, nil
	}
	for v, n := range viewNames {
		if n == name {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown view %q", name)
}

// Placement is a camera position and the point it looks at.
type Placement struct {
	View     NamedView  `json:"view"`
	Position mgl32.Vec3 `json:"position"`
	Target   mgl32.Vec3 `json:"target"`
}

// Place computes the camera placement for a view of a mesh with the given bounds. The target is
// always the centre of the bounds. Distances are measured from the bounds' maximum corner (or the
// minimum-corner mirror for Bottom) plus offset; zero-volume bounds are legal and give
// offset-only distances.
//
// The isometric distance is taken from the maximum Z alone, so tall narrow parts and wide flat
// parts frame differently.
//
// Parameters:
//   - view: the named view
//   - bb: the mesh bounds
//   - offset: extra distance beyond the bounds
//
// Returns:
//   - Placement: camera position and target
func Place(view NamedView, bb common.BoundingBox, offset float32) Placement {
	center := bb.Center()
	size := bb.Size()

	var pos mgl32.Vec3
	switch view {
	case Top:
		pos = mgl32.Vec3{0, -SideEpsilon, bb.Max.Z() + offset}
	case Bottom:
		pos = mgl32.Vec3{0, -SideEpsilon, -(bb.Max.Z() + offset)}
	case Left:
		pos = mgl32.Vec3{-(bb.Max.X() + offset), 0, size.Z() / 2}
	case Right:
		pos = mgl32.Vec3{bb.Max.X() + offset, 0, size.Z() / 2}
	default:
		d := bb.Max.Z() + offset/2
		pos = mgl32.Vec3{d, d, d}
		view = Isometric
	}

	return Placement{View: view, Position: pos, Target: center}
}

// Apply moves a controller to a placement. Pending input from the previous view is dropped first
// so nothing drifts the camera away from the new placement, then the orbit is rebuilt around the
// new target.
//
// Parameters:
//   - ctrl: the controller to move
//   - p: the placement
func Apply(ctrl camera.CameraController, p Placement) {
	ctrl.Reset()
	ctrl.SetTarget(p.Target)
	ctrl.SetPosition(p.Position)
	ctrl.Sync()
}
