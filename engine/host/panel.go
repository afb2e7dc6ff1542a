package host

import (
	"errors"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-stl/common"
	"github.com/Carmen-Shannon/oxy-stl/engine"
	"github.com/Carmen-Shannon/oxy-stl/engine/framing"
	"github.com/Carmen-Shannon/oxy-stl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-stl/engine/scene"
	"github.com/Carmen-Shannon/oxy-stl/engine/settings"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

var errPanelClosed = errors.New("panel closed")

// wsPanel is a browser page connected over a websocket. The session draws by sending it
// scene and camera messages; the page's three.js renderer does the actual drawing.
type wsPanel struct {
	mu     *sync.Mutex
	id     uuid.UUID
	conn   *websocket.Conn
	logger common.Logger
	closed bool
}

var _ engine.Panel = &wsPanel{}

func newWSPanel(conn *websocket.Conn, logger common.Logger) *wsPanel {
	return &wsPanel{
		mu:     &sync.Mutex{},
		id:     uuid.New(),
		conn:   conn,
		logger: common.LoggerOrNop(logger),
	}
}

func (p *wsPanel) Present(s scene.Scene) error {
	return p.send(sceneMessage{Type: "scene", Scene: s})
}

func (p *wsPanel) Draw(f renderer.Frame) error {
	return p.send(cameraMessage{Type: "camera", Camera: f})
}

func (p *wsPanel) Overlay(text string) error {
	return p.send(overlayMessage{Type: "overlay", Text: text})
}

func (p *wsPanel) Resize(width, height int) {
	if err := p.send(resizeMessage{Type: "resize", Width: width, Height: height}); err != nil {
		p.logger.Debugf("panel %s: resize not sent: %v", p.id, err)
	}
}

func (p *wsPanel) Release() {
	p.logger.Debugf("panel %s released", p.id)
}

func (p *wsPanel) ApplySettings(vs settings.ViewSettings) {
	msg := settingsMessage{Type: "settings", Settings: pageSettings{
		ShowViewButtons: vs.ShowViewButtons,
		ShowInfo:        vs.ShowInfo,
		Views:           framing.Views,
	}}
	if err := p.send(msg); err != nil {
		p.logger.Debugf("panel %s: settings not sent: %v", p.id, err)
	}
}

func (p *wsPanel) ReportError(err error) {
	if sendErr := p.send(errorMessage{Type: "error", Message: err.Error()}); sendErr != nil {
		p.logger.Warnf("panel %s: error not delivered: %v", p.id, sendErr)
	}
}

func (p *wsPanel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	_ = p.write(closeMessage{Type: "close"})
	_ = p.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "document closed"),
		time.Now().Add(writeWait))
	p.closed = true
	p.conn.Close()
}

func (p *wsPanel) send(v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errPanelClosed
	}
	return p.write(v)
}

func (p *wsPanel) write(v any) error {
	p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return p.conn.WriteJSON(v)
}

// shutdown closes the connection without notifying the page.
func (p *wsPanel) shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		p.conn.Close()
	}
}
