package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-stl/common"
	"github.com/stretchr/testify/assert"
)

func TestProfiler_FPS(t *testing.T) {
	start := time.Unix(1000, 0)
	p := NewProfiler(nil, start)
	assert.Zero(t, p.FPS())

	now := start
	recomputed := 0
	for range 130 {
		now = now.Add(time.Second / 60)
		if p.Tick(now) {
			recomputed++
		}
	}
	assert.Equal(t, 2, recomputed)
	assert.InDelta(t, 60, p.FPS(), 0.5)

	p.Reset(now)
	assert.Zero(t, p.FPS())
}

func TestProfiler_Interval(t *testing.T) {
	start := time.Unix(0, 0)
	p := NewProfiler(nil, start)
	p.SetInterval(100 * time.Millisecond)
	p.SetInterval(0)

	assert.False(t, p.Tick(start.Add(50*time.Millisecond)))
	assert.True(t, p.Tick(start.Add(100*time.Millisecond)))
	assert.InDelta(t, 20, p.FPS(), 1e-9)
}

func TestProfiler_LogsWhenDebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	start := time.Unix(0, 0)
	p := NewProfiler(common.NewWriterLogger(&buf, "profiler", slog.LevelDebug), start)

	p.Tick(start.Add(2 * time.Second))
	assert.Contains(t, buf.String(), "FPS: 0.50")
	assert.Contains(t, buf.String(), "Heap:")
}
