package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController defines the orbit control system driving the viewer camera.
// Controllers own positional state (position, target). Camera reads from the controller
// and computes view/projection matrices.
//
// Input accumulates between frames and is applied by Update. With damping enabled a gesture keeps
// easing out over subsequent frames; Reset drops whatever is still pending.
type CameraController interface {
	orbitCameraController
	pointerCameraController

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// SetPosition sets the camera's world-space position directly. It takes effect without
	// waiting for Update.
	//
	// Parameters:
	//   - p: world-space coordinates
	SetPosition(p mgl32.Vec3)

	// Target returns the look-at/pivot point.
	//
	// Returns:
	//   - mgl32.Vec3: world-space target position
	Target() mgl32.Vec3

	// SetTarget sets the look-at/pivot point. The position is left where it is.
	//
	// Parameters:
	//   - t: world-space coordinates
	SetTarget(t mgl32.Vec3)

	// Update applies pending input for one frame.
	//
	// Returns:
	//   - bool: true if the position or target moved since the previous Update
	Update() bool

	// Reset clears pending rotation, pan and zoom, and ends any gesture in progress.
	Reset()

	// Sync re-derives the orbit from the current position and target, so the next Update orbits
	// around the new pivot. A position that coincides with the target is moved off it along +Z.
	Sync()

	setFov(fov float32)
}

// orbitCameraController exposes the orbit limits and tuning.
type orbitCameraController interface {
	// Radius returns the current distance from the target.
	//
	// Returns:
	//   - float32: current distance from target
	Radius() float32

	// MinDistance returns the minimum allowed orbit radius.
	//
	// Returns:
	//   - float32: minimum zoom distance
	MinDistance() float32

	// MaxDistance returns the maximum allowed orbit radius.
	//
	// Returns:
	//   - float32: maximum zoom distance
	MaxDistance() float32

	// DampingEnabled reports whether input eases out over several frames.
	//
	// Returns:
	//   - bool: true if damping is on
	DampingEnabled() bool

	// DampingFactor returns the share of pending input applied per frame when damping is on.
	//
	// Returns:
	//   - float32: the damping factor
	DampingFactor() float32
}

// pointerCameraController maps pointer gestures in viewport pixels onto orbit input.
type pointerCameraController interface {
	// SetViewport records the size of the surface the pointer coordinates refer to.
	//
	// Parameters:
	//   - width, height: the surface size in pixels
	SetViewport(width, height int)

	// RotateStart begins a rotate gesture.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	RotateStart(x, y float32)

	// RotateMove continues a rotate gesture. A full viewport height of travel turns the camera
	// one full revolution. Ignored unless a rotate gesture is in progress.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	RotateMove(x, y float32)

	// PanStart begins a pan gesture.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	PanStart(x, y float32)

	// PanMove continues a pan gesture. The point under the pointer at the target's depth follows
	// the pointer. Ignored unless a pan gesture is in progress.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	PanMove(x, y float32)

	// Dolly moves the camera toward the target for negative deltaY and away for positive,
	// by one zoom step per call regardless of magnitude.
	//
	// Parameters:
	//   - deltaY: the wheel delta
	Dolly(deltaY float32)

	// EndGesture ends the current rotate or pan gesture.
	EndGesture()
}
