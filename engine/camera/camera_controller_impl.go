package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-stl/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultDampingFactor is the share of pending input applied per frame.
	DefaultDampingFactor = 0.05

	// polarEpsilon keeps the polar angle off the poles where azimuth is undefined.
	polarEpsilon = 1e-6

	// settleEpsilon is the pending input below which a damped gesture counts as finished.
	settleEpsilon = 1e-7

	zoomBase = 0.95
)

type gesture int

const (
	gestureNone gesture = iota
	gestureRotate
	gesturePan
)

// spherical is an offset from the target: radius, azimuth theta around +Z from +X, and polar
// angle phi from +Z.
type spherical struct {
	radius float32
	theta  float32
	phi    float32
}

func sphericalFromVec(v mgl32.Vec3) spherical {
	r := v.Len()
	if r < common.Epsilon {
		return spherical{}
	}
	return spherical{
		radius: r,
		theta:  float32(math.Atan2(float64(v.Y()), float64(v.X()))),
		phi:    float32(math.Acos(float64(common.Clamp(v.Z()/r, -1, 1)))),
	}
}

func (s spherical) vec() mgl32.Vec3 {
	sinPhi := float32(math.Sin(float64(s.phi)))
	return mgl32.Vec3{
		s.radius * sinPhi * float32(math.Cos(float64(s.theta))),
		s.radius * sinPhi * float32(math.Sin(float64(s.theta))),
		s.radius * float32(math.Cos(float64(s.phi))),
	}
}

type cameraControllerImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	target   mgl32.Vec3

	minDistance float32
	maxDistance float32

	enableDamping bool
	dampingFactor float32
	rotateSpeed   float32
	panSpeed      float32
	zoomSpeed     float32
	fov           float32

	width, height int

	state       gesture
	rotateStart mgl32.Vec2
	panStart    mgl32.Vec2

	sphericalDelta spherical
	panOffset      mgl32.Vec3
	scale          float32

	dirty        bool
	lastPosition mgl32.Vec3
	lastTarget   mgl32.Vec3
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates an orbit controller with damping on, looking at the origin from
// +Z, with the provided options applied.
//
// Parameters:
//   - options: a variadic list of CameraControllerOption functions
//
// Returns:
//   - CameraController: the controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:            &sync.Mutex{},
		position:      mgl32.Vec3{0, 0, 1},
		maxDistance:   float32(math.Inf(1)),
		enableDamping: true,
		dampingFactor: DefaultDampingFactor,
		rotateSpeed:   1,
		panSpeed:      1,
		zoomSpeed:     1,
		fov:           DefaultFov,
		scale:         1,
	}

	for _, option := range options {
		option(cc)
	}

	cc.sync()
	cc.lastPosition = cc.position
	cc.lastTarget = cc.target
	return cc
}

func (cc *cameraControllerImpl) Position() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) SetPosition(p mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = p
}

func (cc *cameraControllerImpl) Target() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) SetTarget(t mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = t
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position.Sub(cc.target).Len()
}

func (cc *cameraControllerImpl) MinDistance() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minDistance
}

func (cc *cameraControllerImpl) MaxDistance() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxDistance
}

func (cc *cameraControllerImpl) DampingEnabled() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.enableDamping
}

func (cc *cameraControllerImpl) DampingFactor() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.dampingFactor
}

func (cc *cameraControllerImpl) setFov(fov float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.fov = fov
}

func (cc *cameraControllerImpl) SetViewport(width, height int) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.width, cc.height = width, height
}

func (cc *cameraControllerImpl) RotateStart(x, y float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.state = gestureRotate
	cc.rotateStart = mgl32.Vec2{x, y}
}

func (cc *cameraControllerImpl) RotateMove(x, y float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.state != gestureRotate || cc.height <= 0 {
		return
	}
	p := mgl32.Vec2{x, y}
	d := p.Sub(cc.rotateStart).Mul(cc.rotateSpeed)
	h := float32(cc.height)
	cc.sphericalDelta.theta -= 2 * math.Pi * d.X() / h
	cc.sphericalDelta.phi -= 2 * math.Pi * d.Y() / h
	cc.rotateStart = p
}

func (cc *cameraControllerImpl) PanStart(x, y float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.state = gesturePan
	cc.panStart = mgl32.Vec2{x, y}
}

func (cc *cameraControllerImpl) PanMove(x, y float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.state != gesturePan || cc.height <= 0 {
		return
	}
	p := mgl32.Vec2{x, y}
	d := p.Sub(cc.panStart).Mul(cc.panSpeed)
	cc.panStart = p

	// distance covered by the visible half-height at the target's depth
	targetDistance := cc.position.Sub(cc.target).Len() * float32(math.Tan(float64(cc.fov)/2))
	h := float32(cc.height)
	right, up := cc.screenAxes()
	cc.panOffset = cc.panOffset.
		Add(right.Mul(-2 * d.X() * targetDistance / h)).
		Add(up.Mul(2 * d.Y() * targetDistance / h))
}

func (cc *cameraControllerImpl) Dolly(deltaY float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	step := float32(math.Pow(zoomBase, float64(cc.zoomSpeed)))
	switch {
	case deltaY < 0:
		cc.scale *= step
	case deltaY > 0:
		cc.scale /= step
	}
}

func (cc *cameraControllerImpl) EndGesture() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.state = gestureNone
}

func (cc *cameraControllerImpl) Reset() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.state = gestureNone
	cc.sphericalDelta = spherical{}
	cc.panOffset = mgl32.Vec3{}
	cc.scale = 1
}

func (cc *cameraControllerImpl) Sync() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.sync()
}

func (cc *cameraControllerImpl) Update() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if cc.pending() {
		cc.apply()
	}

	changed := cc.dirty || cc.position != cc.lastPosition || cc.target != cc.lastTarget
	cc.dirty = false
	cc.lastPosition = cc.position
	cc.lastTarget = cc.target
	return changed
}

// pending reports whether any input is still waiting to be applied.
func (cc *cameraControllerImpl) pending() bool {
	return common.Abs(cc.sphericalDelta.theta) > settleEpsilon ||
		common.Abs(cc.sphericalDelta.phi) > settleEpsilon ||
		cc.panOffset.Len() > settleEpsilon ||
		cc.scale != 1
}

// apply advances the orbit by one frame of pending input.
func (cc *cameraControllerImpl) apply() {
	s := sphericalFromVec(cc.offset())

	share := float32(1)
	if cc.enableDamping {
		share = cc.dampingFactor
	}

	s.theta += cc.sphericalDelta.theta * share
	s.phi += cc.sphericalDelta.phi * share
	s.phi = common.Clamp(s.phi, polarEpsilon, math.Pi-polarEpsilon)

	s.radius = common.Clamp(s.radius*cc.scale, max(cc.minDistance, common.Epsilon), max(cc.maxDistance, common.Epsilon))

	cc.target = cc.target.Add(cc.panOffset.Mul(share))
	cc.position = cc.target.Add(s.vec())

	if cc.enableDamping {
		cc.sphericalDelta.theta *= 1 - cc.dampingFactor
		cc.sphericalDelta.phi *= 1 - cc.dampingFactor
		cc.panOffset = cc.panOffset.Mul(1 - cc.dampingFactor)
	} else {
		cc.sphericalDelta = spherical{}
		cc.panOffset = mgl32.Vec3{}
	}
	cc.scale = 1

	if !cc.pending() {
		cc.sphericalDelta = spherical{}
		cc.panOffset = mgl32.Vec3{}
	}
}

// offset returns position minus target, replaced by an epsilon step along +Z when the two
// coincide or the difference is not finite.
func (cc *cameraControllerImpl) offset() mgl32.Vec3 {
	off := cc.position.Sub(cc.target)
	if !usableOffset(off) {
		return mgl32.Vec3{0, 0, common.Epsilon}
	}
	return off
}

// sync leaves a usable position untouched so placements survive bit for bit.
func (cc *cameraControllerImpl) sync() {
	if !usableOffset(cc.position.Sub(cc.target)) {
		cc.position = cc.target.Add(mgl32.Vec3{0, 0, common.Epsilon})
	}
	cc.dirty = true
}

func usableOffset(off mgl32.Vec3) bool {
	l := float64(off.Len())
	return l >= common.Epsilon && !math.IsNaN(l) && !math.IsInf(l, 0)
}

// screenAxes returns the camera's right and up vectors for a Z-up world.
func (cc *cameraControllerImpl) screenAxes() (right, up mgl32.Vec3) {
	forward := common.SafeNormalize(cc.target.Sub(cc.position), mgl32.Vec3{0, 0, -1})
	right = common.SafeNormalize(forward.Cross(mgl32.Vec3{0, 0, 1}), mgl32.Vec3{1, 0, 0})
	up = right.Cross(forward)
	return right, up
}
