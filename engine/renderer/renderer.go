package renderer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-stl/common"
	"github.com/Carmen-Shannon/oxy-stl/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrReleased is returned by a Renderer used after Release.
var ErrReleased = errors.New("renderer: released")

// Frame is the camera state for one rendered frame. Fov is in degrees, as the browser renderer
// expects.
type Frame struct {
	Sequence uint64     `json:"seq"`
	Time     time.Time  `json:"-"`
	Position mgl32.Vec3 `json:"position"`
	Target   mgl32.Vec3 `json:"target"`
	Up       mgl32.Vec3 `json:"up"`
	Fov      float32    `json:"fov"`
	Aspect   float32    `json:"aspect"`
	Near     float32    `json:"near"`
	Far      float32    `json:"far"`
}

// sameView reports whether two frames show the same picture.
func (f Frame) sameView(o Frame) bool {
	return f.Position == o.Position && f.Target == o.Target && f.Up == o.Up &&
		f.Fov == o.Fov && f.Aspect == o.Aspect && f.Near == o.Near && f.Far == o.Far
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	logger  common.Logger
	backend RendererBackend

	scene         scene.Scene
	width, height int
	released      bool

	skipUnchanged bool
	last          *Frame
	frames        uint64
	skipped       uint64
	overlay       string
}

// Renderer composites a scene and a camera through a RendererBackend.
//
// The Renderer holds the current scene and viewport size and decides which frames are worth
// sending: nothing is drawn before a scene is set or while the viewport has no area, and by
// default a frame identical to the previous one is skipped.
type Renderer interface {
	// SetScene replaces the scene and presents it to the backend. The next frame is always drawn.
	// A nil scene clears the viewport and stops drawing until the next scene arrives.
	//
	// Parameters:
	//   - s: the scene, or nil
	//
	// Returns:
	//   - error: backend error or ErrReleased
	SetScene(s scene.Scene) error

	// Scene returns the current scene, or nil before the first SetScene.
	//
	// Returns:
	//   - scene.Scene: the scene
	Scene() scene.Scene

	// Render draws one frame.
	//
	// Parameters:
	//   - f: the frame
	//
	// Returns:
	//   - bool: true if the frame reached the backend
	//   - error: backend error or ErrReleased
	Render(f Frame) (bool, error)

	// Overlay replaces the overlay text. Unchanged text is not resent.
	//
	// Parameters:
	//   - text: the overlay text
	//
	// Returns:
	//   - error: backend error or ErrReleased
	Overlay(text string) error

	// Resize records the new viewport size and forwards it to the backend.
	//
	// Parameters:
	//   - width, height: the new size in pixels
	Resize(width, height int)

	// Size returns the viewport size.
	//
	// Returns:
	//   - width, height: the size in pixels
	Size() (width, height int)

	// Stats returns how many frames were drawn and how many were skipped as unchanged.
	//
	// Returns:
	//   - drawn: frames delivered to the backend
	//   - skipped: frames dropped because nothing moved
	Stats() (drawn, skipped uint64)

	// Release frees the backend. Further calls fail with ErrReleased; Release itself is idempotent.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer over the given backend with the provided options applied.
//
// Parameters:
//   - backend: the drawing surface
//   - options: a variadic list of RendererBuilderOption functions
//
// Returns:
//   - Renderer: the renderer
func NewRenderer(backend RendererBackend, options ...RendererBuilderOption) Renderer {
	if backend == nil {
		panic("renderer: NewRenderer requires a non-nil backend")
	}
	r := &renderer{
		mu:            &sync.Mutex{},
		logger:        common.NewNopLogger(),
		backend:       backend,
		skipUnchanged: true,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *renderer) SetScene(s scene.Scene) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return ErrReleased
	}
	if err := r.backend.Present(s); err != nil {
		return fmt.Errorf("failed to present scene: %w", err)
	}
	r.scene = s
	r.last = nil
	return nil
}

func (r *renderer) Scene() scene.Scene {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scene
}

func (r *renderer) Render(f Frame) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return false, ErrReleased
	}
	if r.scene == nil || r.width <= 0 || r.height <= 0 {
		return false, nil
	}
	if r.skipUnchanged && r.last != nil && r.last.sameView(f) {
		r.skipped++
		return false, nil
	}
	if err := r.backend.Draw(f); err != nil {
		return false, fmt.Errorf("failed to draw frame %d: %w", f.Sequence, err)
	}
	r.last = &f
	r.frames++
	return true, nil
}

func (r *renderer) Overlay(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return ErrReleased
	}
	if text == r.overlay {
		return nil
	}
	if err := r.backend.Overlay(text); err != nil {
		return fmt.Errorf("failed to update overlay: %w", err)
	}
	r.overlay = text
	return nil
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released || (width == r.width && height == r.height) {
		return
	}
	r.width, r.height = width, height
	r.last = nil
	r.backend.Resize(width, height)
	r.logger.Debugf("viewport resized to %dx%d", width, height)
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) Stats() (uint64, uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames, r.skipped
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return
	}
	r.released = true
	r.backend.Release()
	r.logger.Debugf("renderer released after %d frames", r.frames)
}
