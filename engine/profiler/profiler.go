package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-stl/common"
)

// Profiler tracks frame rate and memory statistics for a render loop.
// The frame rate is recomputed once per update interval; memory statistics are read and logged
// at the same cadence when debug logging is enabled.
type Profiler struct {
	logger common.Logger

	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	fps            float64

	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler. Update interval defaults to 1 second.
//
// Parameters:
//   - logger: destination for periodic statistics, nil to disable
//   - start: the time the first frame interval begins
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(logger common.Logger, start time.Time) *Profiler {
	return &Profiler{
		logger:         common.LoggerOrNop(logger),
		lastTime:       start,
		updateInterval: time.Second,
	}
}

// SetInterval changes how often the frame rate is recomputed. Non-positive values are ignored.
//
// Parameters:
//   - d: the interval
func (p *Profiler) SetInterval(d time.Duration) {
	if d > 0 {
		p.updateInterval = d
	}
}

// Tick should be called once per frame with the frame's timestamp.
//
// Parameters:
//   - now: the frame time
//
// Returns:
//   - bool: true if the frame rate was recomputed this tick
func (p *Profiler) Tick(now time.Time) bool {
	p.frameCount++
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	p.fps = float64(p.frameCount) / elapsed.Seconds()
	if p.logger.DebugEnabled() {
		p.logMemory(elapsed)
	}

	p.frameCount = 0
	p.lastTime = now
	return true
}

// FPS returns the frame rate measured over the last completed interval, zero before the first.
//
// Returns:
//   - float64: frames per second
func (p *Profiler) FPS() float64 {
	return p.fps
}

// Reset restarts measurement at the given time, discarding the current rate.
//
// Parameters:
//   - now: the start of the next interval
func (p *Profiler) Reset(now time.Time) {
	p.frameCount = 0
	p.lastTime = now
	p.fps = 0
}

func (p *Profiler) logMemory(elapsed time.Duration) {
	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	// PauseNs is a circular buffer of the last 256 pauses
	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.logger.Debugf("FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		p.fps, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)

	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
}
