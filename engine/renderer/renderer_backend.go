package renderer

import "github.com/Carmen-Shannon/oxy-stl/engine/scene"

// RendererBackend is the drawing surface a Renderer feeds. The viewer never rasterizes itself:
// a backend forwards the scene description and per-frame camera to whatever engine draws them.
type RendererBackend interface {
	// Present replaces the scene being drawn. A nil scene clears the surface.
	//
	// Parameters:
	//   - s: the scene, or nil
	//
	// Returns:
	//   - error: error if the scene could not be delivered
	Present(s scene.Scene) error

	// Draw renders one frame of the current scene.
	//
	// Parameters:
	//   - f: the frame's camera
	//
	// Returns:
	//   - error: error if the frame could not be delivered
	Draw(f Frame) error

	// Overlay replaces the diagnostic text shown over the viewport.
	//
	// Parameters:
	//   - text: the overlay text, empty to hide it
	//
	// Returns:
	//   - error: error if the text could not be delivered
	Overlay(text string) error

	// Resize tells the backend the surface size changed.
	//
	// Parameters:
	//   - width, height: the new size in pixels
	Resize(width, height int)

	// Release frees the backend's resources.
	Release()
}
