package state

import (
	"math"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	_, ok := s.Get()
	assert.False(t, ok)

	in := []byte(`{"a":1}`)
	s.Set(in)
	in[0] = 'x'

	got, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(got))

	got[0] = 'y'
	again, _ := s.Get()
	assert.Equal(t, `{"a":1}`, string(again))
}

func TestMemoryStore_Concurrent(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b := NewBridge(s, nil)
			_ = b.Save(CameraState{X: float64(i)})
			b.Load()
		}()
	}
	wg.Wait()
	_, ok := NewBridge(s, nil).Load()
	assert.True(t, ok)
}

func TestBridge_LoadAbsent(t *testing.T) {
	b := NewBridge(NewMemoryStore(), nil)
	cs, ok := b.Load()
	assert.False(t, ok)
	assert.Equal(t, CameraState{}, cs)
}

func TestBridge_LoadMalformed(t *testing.T) {
	for _, record := range []string{
		``,
		`not json`,
		`null`,
		`[1,2,3]`,
		`{"other":true}`,
		`{"cameraPosition":"here"}`,
		`{"cameraPosition":{"x":1,"y":2}}`,
		`{"cameraPosition":{"x":"1","y":2,"z":3}}`,
		`{"cameraPosition":null}`,
	} {
		s := NewMemoryStore()
		s.Set([]byte(record))
		_, ok := NewBridge(s, nil).Load()
		assert.False(t, ok, record)
	}
}

func TestBridge_SaveLoad(t *testing.T) {
	b := NewBridge(NewMemoryStore(), nil)
	want := CameraState{X: 40, Y: -0.001, Z: 60.5}
	require.NoError(t, b.Save(want))

	got, ok := b.Load()
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestBridge_SaveMergesOtherFields(t *testing.T) {
	s := NewMemoryStore()
	s.Set([]byte(`{"zoom":3,"cameraPosition":{"x":0,"y":0,"z":1},"panel":{"open":true}}`))
	b := NewBridge(s, nil)

	require.NoError(t, b.Save(CameraState{X: 1, Y: 2, Z: 3}))

	data, _ := s.Get()
	assert.JSONEq(t, `{"zoom":3,"cameraPosition":{"x":1,"y":2,"z":3},"panel":{"open":true}}`, string(data))
}

func TestBridge_SaveReplacesMalformed(t *testing.T) {
	s := NewMemoryStore()
	s.Set([]byte(`garbage`))
	b := NewBridge(s, nil)

	require.NoError(t, b.Save(CameraState{X: 1, Y: 2, Z: 3}))
	data, _ := s.Get()
	assert.JSONEq(t, `{"cameraPosition":{"x":1,"y":2,"z":3}}`, string(data))
}

func TestBridge_SaveOfLoadIsNoOp(t *testing.T) {
	s := NewMemoryStore()
	original := `{"extra":[1,2],"cameraPosition":{"x":1.5,"y":-2,"z":1e3}}`
	s.Set([]byte(original))
	b := NewBridge(s, nil)

	cs, ok := b.Load()
	require.True(t, ok)
	require.NoError(t, b.Save(cs))

	data, _ := s.Get()
	assert.JSONEq(t, original, string(data))
}

func TestBridge_SaveRejectsNonFinite(t *testing.T) {
	s := NewMemoryStore()
	b := NewBridge(s, nil)
	assert.Error(t, b.Save(CameraState{X: math.NaN()}))
	_, ok := s.Get()
	assert.False(t, ok)
}

func TestCameraState_Vec3(t *testing.T) {
	v := mgl32.Vec3{1.25, -3, 1e-3}
	assert.Equal(t, v, CameraStateOf(v).Vec3())
	assert.InDelta(t, 1e-3, CameraStateOf(v).Z, 1e-6)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	a1 := r.Acquire("a.stl")
	a2 := r.Acquire("a.stl")
	b := r.Acquire("b.stl")
	assert.Same(t, a1, a2)
	assert.NotSame(t, a1, b)
	assert.Equal(t, 2, r.Len())

	a1.Set([]byte(`{"cameraPosition":{"x":1,"y":1,"z":1}}`))

	r.Release("a.stl", a1)
	_, ok := r.Acquire("a.stl").Get()
	assert.True(t, ok)

	r.Release("a.stl", a1)
	r.Release("a.stl", a1)
	assert.Equal(t, 1, r.Len())
	_, ok = r.Acquire("a.stl").Get()
	assert.False(t, ok)

	r.Close("b.stl")
	r.Release("b.stl", b)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_ReleaseAfterCloseKeepsNewStore(t *testing.T) {
	r := NewRegistry()

	old := r.Acquire("a.stl")
	old.Set([]byte(`{"cameraPosition":{"x":1,"y":1,"z":1}}`))
	r.Close("a.stl")
	assert.Zero(t, r.Len())

	fresh := r.Acquire("a.stl")
	assert.NotSame(t, old, fresh)
	_, ok := fresh.Get()
	assert.False(t, ok)

	// the closed store's holder lets go late
	r.Release("a.stl", old)
	assert.Equal(t, 1, r.Len())
	assert.Same(t, fresh, r.Acquire("a.stl"))
}
