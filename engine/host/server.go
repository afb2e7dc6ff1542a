// Package host serves a viewer session to a browser page: the page is the panel, the
// websocket carries its input and the session's drawing, and a file watcher rebuilds or closes
// the session when the mesh changes on disk.
package host

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-stl/common"
	"github.com/Carmen-Shannon/oxy-stl/engine"
	"github.com/Carmen-Shannon/oxy-stl/engine/framing"
	"github.com/Carmen-Shannon/oxy-stl/engine/settings"
	"github.com/Carmen-Shannon/oxy-stl/engine/state"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

//go:embed assets
var assets embed.FS

// ThreeVersion is the three.js release the page imports.
const ThreeVersion = "0.160.0"

const threeOrigin = "https://unpkg.com"

// connection is one live panel and the channel its file events arrive on.
type connection struct {
	panel  *wsPanel
	events chan engine.Message
}

// post queues a file event without blocking. When the queue is full the oldest queued event
// gives way: every event rereads or closes the file, so the newest one supersedes it.
// Callers must be the only sender.
func (c *connection) post(msg engine.Message) (superseded engine.Message) {
	for {
		select {
		case c.events <- msg:
			return superseded
		default:
		}
		select {
		case superseded = <-c.events:
		default:
		}
	}
}

// Server serves one mesh file to any number of browser panels. Each panel gets its own
// Session; panels on the same file share the persisted camera state.
type Server struct {
	mu *sync.Mutex

	logger common.Logger
	doc    *fileDocument

	mux      *http.ServeMux
	page     *template.Template
	upgrader websocket.Upgrader
	registry *state.Registry

	frameRate      float64
	deleteGrace    time.Duration
	sessionOptions []engine.SessionBuilderOption

	panels map[uuid.UUID]*connection
}

var _ http.Handler = &Server{}

// NewServer creates a server for a mesh file.
//
// Parameters:
//   - path: the mesh file
//   - options: a variadic list of ServerBuilderOption functions
//
// Returns:
//   - *Server: the server
//   - error: error if the page template cannot be loaded
func NewServer(path string, options ...ServerBuilderOption) (*Server, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	s := &Server{
		mu:       &sync.Mutex{},
		logger:   common.NewNopLogger(),
		doc:      &fileDocument{path: abs, cfg: settings.DefaultConfig()},
		mux:      http.NewServeMux(),
		registry: state.NewRegistry(),
		panels:   make(map[uuid.UUID]*connection),
	}
	for _, opt := range options {
		opt(s)
	}

	s.page, err = template.ParseFS(assets, "assets/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to load page template: %w", err)
	}
	static, err := fs.Sub(assets, "assets")
	if err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}

	s.mux.HandleFunc("GET /{$}", s.servePage)
	s.mux.HandleFunc("GET /ws", s.serveSocket)
	s.mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(static)))
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Path returns the absolute path of the served file.
//
// Returns:
//   - string: the path
func (s *Server) Path() string {
	return s.doc.path
}

// Panels returns the number of connected panels.
//
// Returns:
//   - int: the panel count
func (s *Server) Panels() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.panels)
}

// Watch follows the served file until ctx is done, forwarding changes to every panel.
//
// Parameters:
//   - ctx: the context bounding the watch
//
// Returns:
//   - error: error if the file cannot be watched, nil once ctx is done
func (s *Server) Watch(ctx context.Context) error {
	w, err := NewWatcher(s.doc.path, s.deleteGrace, s.logger)
	if err != nil {
		return err
	}
	defer w.Close()
	s.forward(ctx, w)
	return nil
}

// forward relays watcher events to every panel until ctx is done or the watcher stops.
func (s *Server) forward(ctx context.Context, w *Watcher) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events():
			if !ok {
				return
			}
			if ev == FileDeleted {
				s.broadcast(engine.MsgFileDeleted{})
				// the document is gone; a later panel starts from a fresh camera
				s.registry.Close(s.doc.path)
				continue
			}
			s.broadcast(engine.MsgFileChanged{})
		}
	}
}

// Close disconnects every panel and drops the document's shared camera state.
func (s *Server) Close() {
	s.mu.Lock()
	conns := make([]*connection, 0, len(s.panels))
	for _, c := range s.panels {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		c.panel.shutdown()
	}
	s.registry.Close(s.doc.path)
}

func (s *Server) broadcast(msg engine.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.panels {
		if old := c.post(msg); old != nil {
			s.logger.Warnf("panel %s is not keeping up, %s superseded by %s", id, old.Name(), msg.Name())
		}
	}
}

type pageData struct {
	Title        string
	Nonce        string
	Settings     string
	ThreeVersion string
	ThreeOrigin  string
	Views        []string
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	vs, err := s.doc.cfg.Settings(nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	vs.Data = ""
	record, err := vs.Encode()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	nonce, err := uuid.NewV7()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Security-Policy", contentSecurityPolicy(nonce.String()))
	err = s.page.Execute(w, pageData{
		Title:        filepath.Base(s.doc.path),
		Nonce:        nonce.String(),
		Settings:     string(record),
		ThreeVersion: ThreeVersion,
		ThreeOrigin:  threeOrigin,
		Views:        Views(),
	})
	if err != nil {
		s.logger.Errorf("failed to render page: %v", err)
	}
}

func contentSecurityPolicy(nonce string) string {
	return fmt.Sprintf("default-src 'none'; img-src 'self' data:; style-src 'self'; "+
		"script-src 'nonce-%s' %s; connect-src 'self'", nonce, threeOrigin)
}

func (s *Server) serveSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warnf("websocket upgrade failed: %v", err)
		return
	}

	panel := newWSPanel(conn, s.logger)
	c := &connection{panel: panel, events: make(chan engine.Message, 8)}
	s.mu.Lock()
	s.panels[panel.id] = c
	s.mu.Unlock()

	store := s.registry.Acquire(s.doc.path)
	defer func() {
		s.mu.Lock()
		delete(s.panels, panel.id)
		s.mu.Unlock()
		s.registry.Release(s.doc.path, store)
		panel.shutdown()
		s.logger.Infof("panel %s disconnected", panel.id)
	}()

	s.logger.Infof("panel %s connected", panel.id)
	options := append([]engine.SessionBuilderOption{
		engine.WithLogger(s.logger),
		engine.WithStateStore(store),
	}, s.sessionOptions...)
	sess := engine.NewSession(s.doc, panel, options...)
	defer sess.Dispose()

	done := make(chan struct{})
	defer close(done)
	s.run(sess, c, s.read(panel, done))
}

// read pumps page messages into a channel until the connection fails or done is closed.
func (s *Server) read(p *wsPanel, done <-chan struct{}) <-chan engine.Message {
	out := make(chan engine.Message, 32)
	go func() {
		defer close(out)
		for {
			_, data, err := p.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					s.logger.Warnf("panel %s: %v", p.id, err)
				}
				return
			}
			msg, err := decodeMessage(data, time.Now())
			if err != nil {
				s.logger.Warnf("panel %s: %v", p.id, err)
				continue
			}
			select {
			case out <- msg:
			case <-done:
				return
			}
		}
	}()
	return out
}

// run is the session's only goroutine: page input, file events and server frames are
// dispatched from here in arrival order.
func (s *Server) run(sess engine.Session, c *connection, inbound <-chan engine.Message) {
	var frames <-chan time.Time
	if s.frameRate > 0 {
		ticker := engine.NewFrameTicker(s.frameRate)
		defer ticker.Stop()
		frames = ticker.C()
	}

	for {
		var msg engine.Message
		select {
		case <-sess.Done():
			return
		case m, ok := <-inbound:
			if !ok {
				return
			}
			msg = m
		case m := <-c.events:
			msg = m
		case now := <-frames:
			msg = engine.MsgFrame{Time: now}
		}

		if err := sess.Dispatch(msg); err != nil {
			return
		}
	}
}

// Views lists the view names the page offers, in button order.
//
// Returns:
//   - []string: the view names
func Views() []string {
	names := make([]string, len(framing.Views))
	for i, v := range framing.Views {
		names[i] = v.String()
	}
	return names
}
