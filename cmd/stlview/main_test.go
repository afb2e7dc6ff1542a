package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-stl/engine/framing"
	"github.com/Carmen-Shannon/oxy-stl/internal/meshtest"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBox(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "box.stl")
	payload := meshtest.Encode("box", meshtest.Box(mgl32.Vec3{-10, -10, 0}, mgl32.Vec3{10, 10, 20}))
	require.NoError(t, os.WriteFile(path, payload, 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFrameCommand(t *testing.T) {
	path := writeBox(t)

	out, err := execute(t, "frame", path)
	require.NoError(t, err)
	var p framing.Placement
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, framing.Isometric, p.View)
	assert.Equal(t, mgl32.Vec3{40, 40, 40}, p.Position)
	assert.Equal(t, mgl32.Vec3{0, 0, 10}, p.Target)

	out, err = execute(t, "frame", path, "--view", "right", "--offset", "5")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, framing.Right, p.View)
	assert.Equal(t, mgl32.Vec3{15, 0, 10}, p.Position)

	_, err = execute(t, "frame", path, "--view", "diagonal")
	assert.Error(t, err)
}

func TestInfoCommand(t *testing.T) {
	out, err := execute(t, "info", writeBox(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Triangles: 12")
	assert.Contains(t, out, "Bounding box: (-10, -10, 0) .. (10, 10, 20)")
	assert.Contains(t, out, "Surface area: 2400")

	_, err = execute(t, "info", filepath.Join(t.TempDir(), "missing.stl"))
	assert.Error(t, err)
}
