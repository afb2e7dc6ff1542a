package settings

import (
	"encoding/base64"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	record := `{
		"showViewButtons": true,
		"viewOffset": 25,
		"showInfo": true,
		"showAxes": false,
		"showBoundingBox": true,
		"grid": {"enable": true, "color": "#ff0000"},
		"meshMaterial": {"type": "phong", "config": {"shininess": 10}},
		"data": "AAAA"
	}`

	s, err := Parse([]byte(record))
	require.NoError(t, err)
	assert.True(t, s.ShowViewButtons)
	assert.Equal(t, float32(25), s.ViewOffset)
	assert.True(t, s.ShowInfo)
	assert.False(t, s.ShowAxes)
	assert.True(t, s.ShowBoundingBox)
	assert.True(t, s.Grid.Enable)
	assert.Equal(t, uint32(0xff0000), s.Grid.Color.Hex())
	assert.Equal(t, "phong", s.MeshMaterial.Type)
	assert.JSONEq(t, `{"shininess": 10}`, string(s.MeshMaterial.Config))
	assert.Equal(t, "AAAA", s.Data)
}

func TestParse_DefaultOffset(t *testing.T) {
	for _, record := range []string{
		`{"data":"AAAA"}`,
		`{"data":"AAAA","viewOffset":null}`,
	} {
		s, err := Parse([]byte(record))
		require.NoError(t, err)
		assert.Equal(t, float32(DefaultViewOffset), s.ViewOffset, record)
	}
}

func TestParse_ConfiguredOffsetIsKept(t *testing.T) {
	tests := []struct {
		record string
		want   float32
	}{
		{`{"data":"AAAA","viewOffset":0}`, 0},
		{`{"data":"AAAA","viewOffset":-3}`, -3},
		{`{"data":"AAAA","viewOffset":12.5}`, 12.5},
	}
	for _, tt := range tests {
		s, err := Parse([]byte(tt.record))
		require.NoError(t, err)
		assert.Equal(t, tt.want, s.ViewOffset, tt.record)
	}
}

func TestParse_EmptyDataIsNotMissing(t *testing.T) {
	s, err := Parse([]byte(`{"data":""}`))
	require.NoError(t, err)
	assert.Empty(t, s.Data)

	s, err = DefaultConfig().Settings([]byte{})
	require.NoError(t, err)
	record, err := s.Encode()
	require.NoError(t, err)
	_, err = Parse(record)
	assert.NoError(t, err)
}

func TestViewSettings_NormalizedReplacesNonFinite(t *testing.T) {
	assert.Equal(t, float32(DefaultViewOffset), ViewSettings{ViewOffset: float32(math.NaN())}.Normalized().ViewOffset)
	assert.Equal(t, float32(DefaultViewOffset), ViewSettings{ViewOffset: float32(math.Inf(1))}.Normalized().ViewOffset)
	assert.Equal(t, float32(0), ViewSettings{}.Normalized().ViewOffset)
}

func TestParse_Missing(t *testing.T) {
	for _, record := range []string{"", "  ", "null", "{", `["x"]`, `{"showInfo":true}`, `{"grid":{"color":"nope"},"data":"A"}`} {
		_, err := Parse([]byte(record))
		require.Error(t, err, record)
		assert.True(t, errors.Is(err, ErrMissingSettings), record)

		var mse *MissingSettingsError
		assert.True(t, errors.As(err, &mse))
	}
}

func TestViewSettings_EncodeRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	s, err := cfg.Settings([]byte{1, 2, 3})
	require.NoError(t, err)

	record, err := s.Encode()
	require.NoError(t, err)

	back, err := Parse(record)
	require.NoError(t, err)
	assert.Equal(t, s.Grid, back.Grid)
	assert.Equal(t, s.Data, back.Data)
	assert.JSONEq(t, string(s.MeshMaterial.Config), string(back.MeshMaterial.Config))
}

func TestConfig_Settings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ViewOffset = 0

	s, err := cfg.Settings([]byte("payload"))
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("payload")), s.Data)
	assert.Equal(t, float32(0), s.ViewOffset)
	assert.True(t, s.Grid.Enable)
	assert.True(t, s.ShowAxes)
	assert.True(t, s.ShowViewButtons)
	assert.Equal(t, "lambert", s.MeshMaterial.Type)
	assert.JSONEq(t, `{"color":"#049ef4"}`, string(s.MeshMaterial.Config))

	cfg.GridColor = "not a colour"
	_, err = cfg.Settings(nil)
	assert.ErrorContains(t, err, "invalid gridColor")
}

func TestDecodeConfig(t *testing.T) {
	src := `
showInfo = true
showGrid = false
viewOffset = 12.5
gridColor = "navy"
meshMaterialType = "standard"

[meshMaterialConfig]
roughness = 0.2
metalness = 0.8
`
	cfg, err := DecodeConfig(strings.NewReader(src))
	require.NoError(t, err)
	assert.True(t, cfg.ShowInfo)
	assert.False(t, cfg.ShowGrid)
	assert.True(t, cfg.ShowAxes)
	assert.Equal(t, float32(12.5), cfg.ViewOffset)
	assert.Equal(t, "standard", cfg.MeshMaterialType)
	assert.NotContains(t, cfg.MeshMaterialConfig, "color")
	assert.InDelta(t, 0.8, cfg.MeshMaterialConfig["metalness"], 1e-9)

	s, err := cfg.Settings(nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x000080), s.Grid.Color.Hex())
}

func TestDecodeConfig_Errors(t *testing.T) {
	_, err := DecodeConfig(strings.NewReader(`showInfo = "yes"`))
	assert.ErrorContains(t, err, "failed to parse config")

	_, err = DecodeConfig(strings.NewReader(`showInfp = true`))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	dir := t.TempDir()
	cfg, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	path := filepath.Join(dir, "viewer.toml")
	want := DefaultConfig()
	want.ShowBoundingBox = true
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, want.Encode(f))
	require.NoError(t, f.Close())

	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.ShowBoundingBox)
	assert.Equal(t, want.GridColor, cfg.GridColor)
	assert.Equal(t, "#049ef4", cfg.MeshMaterialConfig["color"])
}
