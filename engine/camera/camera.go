package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-stl/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Perspective defaults of the viewer camera.
const (
	DefaultFov  = 75 * math.Pi / 180
	DefaultNear = 0.1
	DefaultFar  = 2000
)

// cameraImpl is the implementation of the Camera interface.
type cameraImpl struct {
	mu *sync.Mutex

	up mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4

	controller CameraController
}

// Camera represents a perspective camera whose placement comes from a CameraController.
type Camera interface {
	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// Fov returns the vertical field of view.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the viewport width over height.
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clip distance.
	//
	// Returns:
	//   - float32: the near plane
	Near() float32

	// Far returns the far clip distance.
	//
	// Returns:
	//   - float32: the far plane
	Far() float32

	// Position returns the controller's camera position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space position
	Position() mgl32.Vec3

	// Target returns the controller's look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: world-space target
	Target() mgl32.Vec3

	// Rotation returns the camera orientation as Euler angles, X then Y then Z.
	//
	// Returns:
	//   - mgl32.Vec3: rotation in radians
	Rotation() mgl32.Vec3

	// ViewMatrix returns the world-to-camera matrix as of the last Update.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the perspective projection.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection times view.
	//
	// Returns:
	//   - mgl32.Mat4: the combined matrix
	ViewProjectionMatrix() mgl32.Mat4

	// Controller returns the controller driving this camera.
	//
	// Returns:
	//   - CameraController: the controller
	Controller() CameraController

	// Update recomputes the matrices from the controller's current position and target.
	Update()

	// SetAspect changes the aspect ratio and recomputes the projection. Non-positive or
	// non-finite values are ignored.
	//
	// Parameters:
	//   - aspect: width over height
	SetAspect(aspect float32)

	// SetFov changes the vertical field of view.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetController replaces the controller.
	//
	// Parameters:
	//   - ctrl: the new controller
	SetController(ctrl CameraController)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a perspective camera with a Z-up orientation and the viewer's default
// projection, with the provided options applied. A default orbit controller is created when
// none is given.
//
// Parameters:
//   - options: a variadic list of CameraBuilderOption functions
//
// Returns:
//   - Camera: the camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		up:     mgl32.Vec3{0, 0, 1},
		fov:    DefaultFov,
		aspect: 1,
		near:   DefaultNear,
		far:    DefaultFar,
	}
	for _, option := range options {
		option(c)
	}
	if c.controller == nil {
		c.controller = NewCameraController()
	}
	c.controller.setFov(c.fov)
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	return c.Controller().Position()
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	return c.Controller().Target()
}

func (c *cameraImpl) Rotation() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.EulerXYZ(c.viewMatrix.Inv())
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 || math.IsInf(float64(aspect), 0) || math.IsNaN(float64(aspect)) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.controller.setFov(fov)
	c.updateMatrices()
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
	c.controller.setFov(c.fov)
	c.updateMatrices()
}

func (c *cameraImpl) updateMatrices() {
	eye := c.controller.Position()
	center := c.controller.Target()

	// looking straight along the up axis leaves LookAt without a basis
	up := c.up
	if common.SafeNormalize(center.Sub(eye), up).Cross(up).Len() < common.Epsilon {
		up = mgl32.Vec3{0, 1, 0}
	}

	c.viewMatrix = mgl32.LookAtV(eye, center, up)
	c.projectionMatrix = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}
