package host

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-stl/engine"
	"github.com/Carmen-Shannon/oxy-stl/engine/framing"
	"github.com/Carmen-Shannon/oxy-stl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-stl/engine/scene"
)

// inbound is a message from the page. Only the fields of its type are set.
type inbound struct {
	Type     string  `json:"type"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	View     string  `json:"view"`
	X        float32 `json:"x"`
	Y        float32 `json:"y"`
	Button   int     `json:"button"`
	Modifier bool    `json:"modifier"`
	DeltaY   float32 `json:"deltaY"`
	Visible  bool    `json:"visible"`
}

// decodeMessage turns a page message into a session message.
func decodeMessage(data []byte, now time.Time) (engine.Message, error) {
	var in inbound
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("invalid message: %w", err)
	}

	switch in.Type {
	case "frame":
		return engine.MsgFrame{Time: now}, nil
	case "resize":
		return engine.MsgResize{Width: in.Width, Height: in.Height}, nil
	case "view":
		v, err := framing.ParseView(in.View)
		if err != nil {
			return nil, err
		}
		return engine.MsgSelectView{View: v}, nil
	case "pointerdown":
		return engine.MsgPointerDown{X: in.X, Y: in.Y, Button: engine.PointerButton(in.Button), Modifier: in.Modifier}, nil
	case "pointermove":
		return engine.MsgPointerMove{X: in.X, Y: in.Y}, nil
	case "pointerup":
		return engine.MsgPointerUp{}, nil
	case "wheel":
		return engine.MsgWheel{DeltaY: in.DeltaY}, nil
	case "visibility":
		return engine.MsgVisibility{Visible: in.Visible}, nil
	default:
		return nil, fmt.Errorf("unknown message type %q", in.Type)
	}
}

// Outbound messages.

type sceneMessage struct {
	Type  string      `json:"type"`
	Scene scene.Scene `json:"scene"`
}

type cameraMessage struct {
	Type   string         `json:"type"`
	Camera renderer.Frame `json:"camera"`
}

type overlayMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type resizeMessage struct {
	Type   string `json:"type"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type settingsMessage struct {
	Type     string       `json:"type"`
	Settings pageSettings `json:"settings"`
}

type closeMessage struct {
	Type string `json:"type"`
}

// pageSettings is the part of the settings record the page needs for its own controls.
type pageSettings struct {
	ShowViewButtons bool                `json:"showViewButtons"`
	ShowInfo        bool                `json:"showInfo"`
	Views           []framing.NamedView `json:"views"`
}
