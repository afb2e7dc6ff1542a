package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVecInDelta(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], delta, "component %d of %v", i, got)
	}
}

func assertFinite(t *testing.T, v mgl32.Vec3) {
	t.Helper()
	for i := range 3 {
		f := float64(v[i])
		assert.False(t, math.IsNaN(f) || math.IsInf(f, 0), "component %d of %v", i, v)
	}
}

func newController(options ...CameraControllerOption) CameraController {
	cc := NewCameraController(options...)
	cc.SetViewport(100, 100)
	cc.Update()
	return cc
}

func TestNewCamera_Defaults(t *testing.T) {
	c := NewCamera()
	assert.InDelta(t, 75*math.Pi/180, c.Fov(), 1e-6)
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(2000), c.Far())
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, c.Up())
	assert.Equal(t, float32(1), c.Aspect())
	require.NotNil(t, c.Controller())
	assert.True(t, c.Controller().DampingEnabled())
	assert.Equal(t, float32(DefaultDampingFactor), c.Controller().DampingFactor())
}

func TestCamera_SetAspect(t *testing.T) {
	c := NewCamera()
	c.SetAspect(2)
	assert.Equal(t, float32(2), c.Aspect())
	assert.Equal(t, mgl32.Perspective(c.Fov(), 2, 0.1, 2000), c.ProjectionMatrix())

	for _, bad := range []float32{0, -1, float32(math.NaN()), float32(math.Inf(1))} {
		c.SetAspect(bad)
		assert.Equal(t, float32(2), c.Aspect())
	}
}

func TestCamera_ViewAndRotation(t *testing.T) {
	ctrl := NewCameraController(WithPosition(mgl32.Vec3{0, -10, 0}))
	c := NewCamera(WithController(ctrl))

	inView := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assertVecInDelta(t, mgl32.Vec3{0, 0, -10}, inView.Vec3(), 1e-5)

	assertVecInDelta(t, mgl32.Vec3{math.Pi / 2, 0, 0}, c.Rotation(), 1e-5)
	assert.Equal(t, c.ProjectionMatrix().Mul4(c.ViewMatrix()), c.ViewProjectionMatrix())
}

func TestCamera_LookingDownUpAxisStaysFinite(t *testing.T) {
	ctrl := NewCameraController(WithPosition(mgl32.Vec3{0, 0, 10}))
	c := NewCamera(WithController(ctrl))

	m := c.ViewMatrix()
	for i := range 16 {
		assert.False(t, math.IsNaN(float64(m[i])))
	}
	assertFinite(t, c.Rotation())
}

func TestCamera_UpdateFollowsController(t *testing.T) {
	c := NewCamera()
	c.Controller().SetTarget(mgl32.Vec3{1, 2, 3})
	c.Controller().SetPosition(mgl32.Vec3{1, 2, 13})
	c.Update()

	assert.Equal(t, mgl32.Vec3{1, 2, 13}, c.Position())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, c.Target())
	inView := c.ViewMatrix().Mul4x1(mgl32.Vec4{1, 2, 3, 1})
	assertVecInDelta(t, mgl32.Vec3{0, 0, -10}, inView.Vec3(), 1e-5)
}

func TestController_UpdateWithoutInputKeepsPositionExact(t *testing.T) {
	cc := newController()
	cc.SetTarget(mgl32.Vec3{0, 0, 10})
	cc.SetPosition(mgl32.Vec3{0, -0.001, 60})
	cc.Sync()

	assert.True(t, cc.Update())
	for range 10 {
		assert.False(t, cc.Update())
	}
	assert.Equal(t, mgl32.Vec3{0, -0.001, 60}, cc.Position())
	assert.Equal(t, mgl32.Vec3{0, 0, 10}, cc.Target())
}

func TestController_CoincidentPositionFallsBackAlongZ(t *testing.T) {
	cc := newController(WithDamping(false))
	p := mgl32.Vec3{3, 3, 3}
	cc.SetTarget(p)
	cc.SetPosition(p)
	cc.Sync()

	got := cc.Position()
	assertFinite(t, got)
	assert.Greater(t, got.Z(), p.Z())
	assert.Equal(t, p.X(), got.X())

	cc.Dolly(1)
	cc.RotateStart(0, 0)
	cc.RotateMove(10, 10)
	cc.Update()
	assertFinite(t, cc.Position())
	assert.GreaterOrEqual(t, cc.Radius(), float32(0))
}

func TestController_RotateWithoutDamping(t *testing.T) {
	cc := newController(WithDamping(false), WithPosition(mgl32.Vec3{10, 0, 0}))

	cc.RotateStart(0, 0)
	cc.RotateMove(25, 0)
	require.True(t, cc.Update())

	assertVecInDelta(t, mgl32.Vec3{0, -10, 0}, cc.Position(), 1e-4)
	assert.False(t, cc.Update())
}

func TestController_RotateWithDampingEasesOut(t *testing.T) {
	cc := newController(WithPosition(mgl32.Vec3{10, 0, 0}))

	cc.RotateStart(0, 0)
	cc.RotateMove(25, 0)
	cc.EndGesture()

	require.True(t, cc.Update())
	first := cc.Position()
	wantAngle := -math.Pi / 2 * DefaultDampingFactor
	assertVecInDelta(t, mgl32.Vec3{10 * float32(math.Cos(wantAngle)), 10 * float32(math.Sin(wantAngle)), 0}, first, 1e-4)

	frames := 0
	for cc.Update() {
		frames++
		require.Less(t, frames, 2000)
	}
	assert.Greater(t, frames, 10)
	assertVecInDelta(t, mgl32.Vec3{0, -10, 0}, cc.Position(), 1e-2)
}

func TestController_PolarAngleClamped(t *testing.T) {
	cc := newController(WithDamping(false), WithPosition(mgl32.Vec3{10, 0, 0}))

	cc.RotateStart(0, 0)
	cc.RotateMove(0, 1000)
	cc.Update()

	p := cc.Position()
	assertFinite(t, p)
	assert.InDelta(t, 10, p.Z(), 1e-4)
	assert.Less(t, p.Z(), float32(10.0001))
	assert.InDelta(t, 10, p.Len(), 1e-4)

	cc.RotateMove(0, -3000)
	cc.Update()
	assert.InDelta(t, -10, cc.Position().Z(), 1e-4)
}

func TestController_Dolly(t *testing.T) {
	cc := newController(WithDamping(false), WithPosition(mgl32.Vec3{0, -10, 0}))

	cc.Dolly(-120)
	cc.Update()
	assert.InDelta(t, 9.5, cc.Radius(), 1e-4)

	cc.Dolly(3)
	cc.Update()
	assert.InDelta(t, 10, cc.Radius(), 1e-4)

	cc.Dolly(0)
	assert.False(t, cc.Update())
}

func TestController_DistanceLimits(t *testing.T) {
	cc := newController(WithDamping(false), WithPosition(mgl32.Vec3{0, -10, 0}), WithDistanceLimits(8, 11))
	assert.Equal(t, float32(8), cc.MinDistance())
	assert.Equal(t, float32(11), cc.MaxDistance())

	for range 20 {
		cc.Dolly(-1)
	}
	cc.Update()
	assert.InDelta(t, 8, cc.Radius(), 1e-4)

	for range 40 {
		cc.Dolly(1)
	}
	cc.Update()
	assert.InDelta(t, 11, cc.Radius(), 1e-4)
}

func TestController_Pan(t *testing.T) {
	cc := newController(WithDamping(false), WithPosition(mgl32.Vec3{0, -10, 0}))

	cc.PanStart(50, 50)
	cc.PanMove(60, 50)
	cc.Update()

	shift := -2 * 10 * 10 * float32(math.Tan(DefaultFov/2)) / 100
	assertVecInDelta(t, mgl32.Vec3{shift, 0, 0}, cc.Target(), 1e-4)
	assertVecInDelta(t, mgl32.Vec3{0, -10, 0}, cc.Position().Sub(cc.Target()), 1e-4)

	cc.PanMove(60, 60)
	cc.Update()
	assert.Greater(t, cc.Target().Z(), float32(0))
}

func TestController_GesturesRequireStart(t *testing.T) {
	cc := newController(WithDamping(false), WithPosition(mgl32.Vec3{10, 0, 0}))

	cc.RotateMove(40, 40)
	cc.PanMove(40, 40)
	assert.False(t, cc.Update())

	cc.RotateStart(0, 0)
	cc.EndGesture()
	cc.RotateMove(40, 40)
	assert.False(t, cc.Update())

	cc.SetViewport(0, 0)
	cc.RotateStart(0, 0)
	cc.RotateMove(40, 40)
	assert.False(t, cc.Update())
}

func TestController_ResetDropsPendingInput(t *testing.T) {
	cc := newController(WithPosition(mgl32.Vec3{10, 0, 0}))

	cc.RotateStart(0, 0)
	cc.RotateMove(30, 30)
	cc.PanStart(0, 0)
	cc.Dolly(-1)
	cc.Reset()

	assert.False(t, cc.Update())
	assert.Equal(t, mgl32.Vec3{10, 0, 0}, cc.Position())

	cc.RotateMove(10, 0)
	assert.False(t, cc.Update())
}

func TestController_Options(t *testing.T) {
	cc := NewCameraController(WithDampingFactor(5), WithSpeeds(2, 1, 1), WithTarget(mgl32.Vec3{1, 1, 1}), WithPosition(mgl32.Vec3{1, 1, 5}))
	assert.Equal(t, float32(1), cc.DampingFactor())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, cc.Target())
	assert.Equal(t, float32(4), cc.Radius())

	cc = NewCameraController(WithDampingFactor(-1))
	assert.Equal(t, float32(DefaultDampingFactor), cc.DampingFactor())
}
