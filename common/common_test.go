package common

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundingBox_Extend(t *testing.T) {
	bb := NewBoundingBox()
	assert.True(t, bb.IsEmpty())

	bb.Extend(mgl32.Vec3{1, 2, 3})
	assert.False(t, bb.IsEmpty())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, bb.Min)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, bb.Max)

	bb.Extend(mgl32.Vec3{-1, 5, 0})
	assert.Equal(t, mgl32.Vec3{-1, 2, 0}, bb.Min)
	assert.Equal(t, mgl32.Vec3{1, 5, 3}, bb.Max)
}

func TestBoundingBox_CenterAndSize(t *testing.T) {
	bb := BoundingBoxOf(mgl32.Vec3{10, 10, 20}, mgl32.Vec3{-10, -10, 0})

	assert.Equal(t, mgl32.Vec3{-10, -10, 0}, bb.Min)
	assert.Equal(t, mgl32.Vec3{10, 10, 20}, bb.Max)
	assert.Equal(t, mgl32.Vec3{0, 0, 10}, bb.Center())
	assert.Equal(t, mgl32.Vec3{20, 20, 20}, bb.Size())
	assert.False(t, bb.IsDegenerate())
}

func TestBoundingBox_Degenerate(t *testing.T) {
	flat := BoundingBoxOf(mgl32.Vec3{-1, -1, 0}, mgl32.Vec3{1, 1, 0})
	assert.True(t, flat.IsDegenerate())
	assert.Equal(t, float32(0), flat.Size().Z())

	point := BoundingBoxOf(mgl32.Vec3{}, mgl32.Vec3{})
	assert.True(t, point.IsDegenerate())
	assert.Equal(t, mgl32.Vec3{}, point.Center())
}

func TestBoundingBox_HorizontalReach(t *testing.T) {
	bb := BoundingBoxOf(mgl32.Vec3{-3, -12, -50}, mgl32.Vec3{7, 4, 50})
	assert.Equal(t, float32(12), bb.HorizontalReach())
}

func TestBoundingBox_Union(t *testing.T) {
	a := BoundingBoxOf(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})
	a.Union(NewBoundingBox())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, a.Max)

	a.Union(BoundingBoxOf(mgl32.Vec3{-2, 0, 0}, mgl32.Vec3{0, 3, 0}))
	assert.Equal(t, mgl32.Vec3{-2, 0, 0}, a.Min)
	assert.Equal(t, mgl32.Vec3{1, 3, 1}, a.Max)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"#ff0000", 0xff0000},
		{"#0f0", 0x00ff00},
		{"0x049ef4", 0x049ef4},
		{"049ef4", 0x049ef4},
		{"White", 0xffffff},
		{"lightgray", 0xd3d3d3},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Hex())
		})
	}

	_, err := ParseColor("not-a-colour")
	assert.Error(t, err)
	_, err = ParseColor("")
	assert.Error(t, err)
}

func TestColor_JSON(t *testing.T) {
	var fromNumber Color
	require.NoError(t, json.Unmarshal([]byte(`302836`), &fromNumber))
	assert.Equal(t, uint32(0x049ef4), fromNumber.Hex())

	var fromString Color
	require.NoError(t, json.Unmarshal([]byte(`"#ffffbb"`), &fromString))
	assert.Equal(t, uint32(0xffffbb), fromString.Hex())

	out, err := json.Marshal(fromString)
	require.NoError(t, err)
	assert.Equal(t, `"#ffffbb"`, string(out))

	var bad Color
	assert.Error(t, json.Unmarshal([]byte(`true`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`-1`), &bad))
}

func TestEulerXYZ_Identity(t *testing.T) {
	e := EulerXYZ(mgl32.Ident4())
	assert.InDelta(t, 0, e.X(), 1e-6)
	assert.InDelta(t, 0, e.Y(), 1e-6)
	assert.InDelta(t, 0, e.Z(), 1e-6)
}

func TestEulerXYZ_SingleAxis(t *testing.T) {
	angle := float32(math.Pi / 4)
	e := EulerXYZ(mgl32.HomogRotate3DX(angle))
	assert.InDelta(t, angle, e.X(), 1e-5)
	assert.InDelta(t, 0, e.Y(), 1e-5)

	e = EulerXYZ(mgl32.HomogRotate3DZ(angle))
	assert.InDelta(t, angle, e.Z(), 1e-5)
}

func TestSafeNormalize(t *testing.T) {
	fallback := mgl32.Vec3{0, 0, 1}
	assert.Equal(t, fallback, SafeNormalize(mgl32.Vec3{}, fallback))
	n := SafeNormalize(mgl32.Vec3{3, 0, 4}, fallback)
	assert.InDelta(t, 1, n.Len(), 1e-6)
}

func TestRoundAndClamp(t *testing.T) {
	assert.Equal(t, 1.23, Round(1.2345, 2))
	assert.Equal(t, float32(1), Clamp(5, 0, 1))
	assert.Equal(t, float32(0), Clamp(-5, 0, 1))
}

func TestDefaultLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, "test", slog.LevelInfo)
	assert.False(t, l.DebugEnabled())

	l.Debugf("hidden %d", 1)
	l.Infof("shown %d", 2)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 2")
	assert.Contains(t, buf.String(), "component=test")

	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, true, true))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, false))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false))
}
