package engine

import (
	"sync"
	"time"
)

// DefaultFrameRate is the frame rate of a FrameTicker created with a rate <= 0.
const DefaultFrameRate = 60

// FrameTicker produces frame signals at an adjustable rate, standing in for the browser's
// animation callback when the host drives sessions itself.
type FrameTicker struct {
	frames      chan time.Time
	rate        chan time.Duration
	quitChannel chan struct{}
	quitOnce    sync.Once
}

// NewFrameTicker starts a ticker.
//
// Parameters:
//   - fps: frames per second (defaults to 60 if <= 0)
//
// Returns:
//   - *FrameTicker: the running ticker; call Stop to release it
func NewFrameTicker(fps float64) *FrameTicker {
	t := &FrameTicker{
		frames:      make(chan time.Time, 1),
		rate:        make(chan time.Duration, 1),
		quitChannel: make(chan struct{}),
	}
	go t.handle(interval(fps))
	return t
}

// C returns the frame channel. It is closed when the ticker stops.
//
// Returns:
//   - <-chan time.Time: the frame channel
func (t *FrameTicker) C() <-chan time.Time {
	return t.frames
}

// SetRate changes the frame rate.
//
// Parameters:
//   - fps: frames per second (defaults to 60 if <= 0)
func (t *FrameTicker) SetRate(fps float64) {
	select {
	case <-t.rate:
	default:
	}
	select {
	case t.rate <- interval(fps):
	case <-t.quitChannel:
	}
}

// Stop stops the ticker and closes its channel.
func (t *FrameTicker) Stop() {
	t.quitOnce.Do(func() {
		close(t.quitChannel)
	})
}

func (t *FrameTicker) handle(d time.Duration) {
	ticker := time.NewTicker(d)
	defer ticker.Stop()
	defer close(t.frames)

	for {
		select {
		case <-t.quitChannel:
			return
		case now := <-ticker.C:
			// a slow consumer drops frames instead of queueing them
			select {
			case t.frames <- now:
			default:
			}
		case d := <-t.rate:
			ticker.Reset(d)
		}
	}
}

func interval(fps float64) time.Duration {
	if fps <= 0 {
		fps = DefaultFrameRate
	}
	return time.Duration(float64(time.Second) / fps)
}
