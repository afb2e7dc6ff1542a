package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithPosition sets the initial camera position.
//
// Parameters:
//   - p: world-space position
//
// Returns:
//   - CameraControllerOption: functional option to set the position
func WithPosition(p mgl32.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.position = p
	}
}

// WithTarget sets the initial orbit pivot.
//
// Parameters:
//   - t: world-space target
//
// Returns:
//   - CameraControllerOption: functional option to set the target
func WithTarget(t mgl32.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = t
	}
}

// WithDamping enables or disables eased input.
//
// Parameters:
//   - enabled: whether gestures ease out over several frames
//
// Returns:
//   - CameraControllerOption: functional option to set damping
func WithDamping(enabled bool) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.enableDamping = enabled
	}
}

// WithDampingFactor sets the share of pending input applied per frame, clamped to (0, 1].
//
// Parameters:
//   - factor: the damping factor
//
// Returns:
//   - CameraControllerOption: functional option to set the damping factor
func WithDampingFactor(factor float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if factor <= 0 {
			factor = DefaultDampingFactor
		}
		cc.dampingFactor = min(factor, 1)
	}
}

// WithDistanceLimits sets the minimum and maximum orbit radius.
//
// Parameters:
//   - minDistance: closest allowed distance to the target
//   - maxDistance: farthest allowed distance to the target
//
// Returns:
//   - CameraControllerOption: functional option to set the distance limits
func WithDistanceLimits(minDistance, maxDistance float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minDistance = max(minDistance, 0)
		cc.maxDistance = max(maxDistance, cc.minDistance)
	}
}

// WithSpeeds sets the rotate, pan and zoom multipliers.
//
// Parameters:
//   - rotate: rotate gesture multiplier
//   - pan: pan gesture multiplier
//   - zoom: exponent applied to the per-step zoom factor
//
// Returns:
//   - CameraControllerOption: functional option to set the speeds
func WithSpeeds(rotate, pan, zoom float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rotateSpeed = rotate
		cc.panSpeed = pan
		cc.zoomSpeed = zoom
	}
}
