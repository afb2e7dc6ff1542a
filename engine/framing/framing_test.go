package framing

import (
	"encoding/json"
	"testing"

	"github.com/Carmen-Shannon/oxy-stl/common"
	"github.com/Carmen-Shannon/oxy-stl/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cube = common.BoundingBoxOf(mgl32.Vec3{-10, -10, 0}, mgl32.Vec3{10, 10, 20})

func TestPlace_Isometric(t *testing.T) {
	p := Place(Isometric, cube, 40)
	assert.Equal(t, mgl32.Vec3{40, 40, 40}, p.Position)
	assert.Equal(t, mgl32.Vec3{0, 0, 10}, p.Target)
	assert.Equal(t, Isometric, p.View)
}

func TestPlace_Top(t *testing.T) {
	p := Place(Top, cube, 40)
	assert.InDelta(t, 0, p.Position.X(), 1e-9)
	assert.InDelta(t, -0.001, p.Position.Y(), 1e-6)
	assert.InDelta(t, 60, p.Position.Z(), 1e-6)
	assert.Equal(t, mgl32.Vec3{0, 0, 10}, p.Target)
}

func TestPlace_AllViews(t *testing.T) {
	bb := common.BoundingBoxOf(mgl32.Vec3{-2, -3, -4}, mgl32.Vec3{6, 5, 8})
	tests := []struct {
		view NamedView
		want mgl32.Vec3
	}{
		{Isometric, mgl32.Vec3{13, 13, 13}},
		{Top, mgl32.Vec3{0, -SideEpsilon, 18}},
		{Bottom, mgl32.Vec3{0, -SideEpsilon, -18}},
		{Left, mgl32.Vec3{-16, 0, 6}},
		{Right, mgl32.Vec3{16, 0, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.view.String(), func(t *testing.T) {
			p := Place(tt.view, bb, 10)
			assert.Equal(t, tt.want, p.Position)
			assert.Equal(t, bb.Center(), p.Target)
		})
	}
}

func TestPlace_IsometricUsesMaxZOnly(t *testing.T) {
	for _, h := range []float32{0, 1, 7.5, 100} {
		bb := common.BoundingBoxOf(mgl32.Vec3{-50, -80, 0}, mgl32.Vec3{90, 30, h})
		p := Place(Isometric, bb, 40)
		want := h + 20
		assert.Equal(t, mgl32.Vec3{want, want, want}, p.Position, "h=%v", h)
	}
}

func TestPlace_DegenerateBounds(t *testing.T) {
	point := common.BoundingBoxOf(mgl32.Vec3{}, mgl32.Vec3{})
	for _, v := range Views {
		p := Place(v, point, 40)
		assert.Equal(t, mgl32.Vec3{}, p.Target)
		assert.Greater(t, p.Position.Len(), float32(19), v.String())
	}
	assert.Equal(t, mgl32.Vec3{20, 20, 20}, Place(Isometric, point, 40).Position)
	assert.Equal(t, mgl32.Vec3{40, 0, 0}, Place(Right, point, 40).Position)
}

func TestParseView(t *testing.T) {
	for _, v := range Views {
		got, err := ParseView(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	got, err := ParseView(" TOP ")
	require.NoError(t, err)
	assert.Equal(t, Top, got)

	got, err = ParseView("iso")
	require.NoError(t, err)
	assert.Equal(t, Isometric, got)

	_, err = ParseView("front")
	assert.ErrorContains(t, err, "unknown view")
	assert.Equal(t, "NamedView(9)", NamedView(9).String())
}

func TestPlacement_JSON(t *testing.T) {
	out, err := json.Marshal(Place(Left, cube, 40))
	require.NoError(t, err)
	assert.JSONEq(t, `{"view":"left","position":[-50,0,10],"target":[0,0,10]}`, string(out))

	var back Placement
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, Left, back.View)

	assert.Error(t, json.Unmarshal([]byte(`{"view":"front"}`), &back))
}

func TestApply(t *testing.T) {
	ctrl := camera.NewCameraController(camera.WithPosition(mgl32.Vec3{5, 5, 5}))
	ctrl.SetViewport(100, 100)
	ctrl.RotateStart(0, 0)
	ctrl.RotateMove(40, 10)
	ctrl.Dolly(-1)
	ctrl.Update()

	p := Place(Top, cube, 40)
	Apply(ctrl, p)

	assert.True(t, ctrl.Update())
	for range 5 {
		ctrl.Update()
	}
	assert.Equal(t, p.Position, ctrl.Position())
	assert.Equal(t, p.Target, ctrl.Target())
}

func TestApply_EveryViewLooksAtCenter(t *testing.T) {
	bb := common.BoundingBoxOf(mgl32.Vec3{-3, 1, 2}, mgl32.Vec3{7, 9, 4})
	cam := camera.NewCamera()

	for _, v := range Views {
		p := Place(v, bb, 40)
		Apply(cam.Controller(), p)
		cam.Controller().Update()
		cam.Update()

		assert.Equal(t, bb.Center(), cam.Target(), v.String())
		inView := cam.ViewMatrix().Mul4x1(bb.Center().Vec4(1)).Vec3()
		assert.InDelta(t, 0, inView.X(), 1e-3, v.String())
		assert.InDelta(t, 0, inView.Y(), 1e-3, v.String())
		assert.Less(t, inView.Z(), float32(0), v.String())
	}
}
