package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-stl/engine/framing"
)

// Message is an event delivered to a Session through Dispatch.
type Message interface {
	// Name identifies the message kind in logs.
	Name() string
}

// PointerButton identifies the button that started a pointer gesture.
type PointerButton int

const (
	// ButtonPrimary rotates, or pans when a modifier key is held.
	ButtonPrimary PointerButton = 0
	// ButtonMiddle dollies by vertical drag.
	ButtonMiddle PointerButton = 1
	// ButtonSecondary pans.
	ButtonSecondary PointerButton = 2
)

// MsgFrame asks the session to render one frame.
type MsgFrame struct {
	Time time.Time
}

// MsgResize reports a new viewport size in pixels.
type MsgResize struct {
	Width  int
	Height int
}

// MsgSelectView moves the camera to a named view.
type MsgSelectView struct {
	View framing.NamedView
}

// MsgPointerDown starts a gesture. Modifier is true when ctrl, meta or shift is held.
type MsgPointerDown struct {
	X, Y     float32
	Button   PointerButton
	Modifier bool
}

// MsgPointerMove continues the current gesture.
type MsgPointerMove struct {
	X, Y float32
}

// MsgPointerUp ends the current gesture.
type MsgPointerUp struct{}

// MsgWheel zooms by one step in the direction of DeltaY.
type MsgWheel struct {
	DeltaY float32
}

// MsgFileChanged reports that the document changed on disk; the session rebuilds from fresh settings.
type MsgFileChanged struct{}

// MsgFileDeleted reports that the document was deleted; the session closes its panel.
type MsgFileDeleted struct{}

// MsgVisibility reports the panel being shown or hidden.
type MsgVisibility struct {
	Visible bool
}

func (MsgFrame) Name() string       { return "frame" }
func (MsgResize) Name() string      { return "resize" }
func (MsgSelectView) Name() string  { return "view" }
func (MsgPointerDown) Name() string { return "pointerdown" }
func (MsgPointerMove) Name() string { return "pointermove" }
func (MsgPointerUp) Name() string   { return "pointerup" }
func (MsgWheel) Name() string       { return "wheel" }
func (MsgFileChanged) Name() string { return "filechanged" }
func (MsgFileDeleted) Name() string { return "filedeleted" }
func (MsgVisibility) Name() string  { return "visibility" }
