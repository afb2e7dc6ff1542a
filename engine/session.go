package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/Carmen-Shannon/oxy-stl/common"
	"github.com/Carmen-Shannon/oxy-stl/engine/camera"
	"github.com/Carmen-Shannon/oxy-stl/engine/framing"
	"github.com/Carmen-Shannon/oxy-stl/engine/loader"
	"github.com/Carmen-Shannon/oxy-stl/engine/overlay"
	"github.com/Carmen-Shannon/oxy-stl/engine/profiler"
	"github.com/Carmen-Shannon/oxy-stl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-stl/engine/scene"
	"github.com/Carmen-Shannon/oxy-stl/engine/settings"
	"github.com/Carmen-Shannon/oxy-stl/engine/state"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Document is the file a session shows.
type Document interface {
	// Key identifies the document, typically by path.
	//
	// Returns:
	//   - string: the document key
	Key() string

	// Settings returns the current settings record, mesh payload included. An error matching
	// fs.ErrNotExist means the file is gone.
	//
	// Returns:
	//   - []byte: the JSON settings record
	//   - error: error if the record cannot be produced
	Settings() ([]byte, error)
}

// Panel is the host surface a session draws into.
type Panel interface {
	renderer.RendererBackend

	// ApplySettings lets the surface update its own controls, such as the view buttons.
	//
	// Parameters:
	//   - vs: the settings in effect
	ApplySettings(vs settings.ViewSettings)

	// ReportError shows a fatal error to the user in place of the scene.
	//
	// Parameters:
	//   - err: the error
	ReportError(err error)

	// Close closes the surface.
	Close()
}

// Status is the lifecycle stage of a Session.
type Status int

const (
	// StatusFailed means the last build failed; nothing is shown until the file changes.
	StatusFailed Status = iota
	// StatusReady means a scene is shown and frames render.
	StatusReady
	// StatusClosed means the session was disposed.
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusFailed:
		return "failed"
	case StatusReady:
		return "ready"
	case StatusClosed:
		return "closed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

type gestureKind int

const (
	gestureNone gestureKind = iota
	gestureRotate
	gesturePan
	gestureDolly
)

// session is the implementation of the Session interface.
type session struct {
	id     uuid.UUID
	logger common.Logger

	doc   Document
	panel Panel

	loader   loader.Loader
	renderer renderer.Renderer
	camera   camera.Camera
	bridge   *state.Bridge
	profiler *profiler.Profiler

	rendererOptions   []renderer.RendererBuilderOption
	controllerOptions []camera.CameraControllerOption
	store             state.StateStore

	status   Status
	err      error
	settings settings.ViewSettings
	scene    scene.Scene
	visible  bool

	width, height int
	resized       bool

	gesture gestureKind
	dollyY  float32
	seq     uint64

	quitChannel chan struct{}
	closed      bool
}

// Session is one viewer panel showing one document. It owns the camera, the renderer and the
// persistence bridge for that panel.
//
// A Session is not safe for concurrent use: the host delivers every message, file event and frame
// from a single goroutine, through Dispatch or Run.
type Session interface {
	// ID returns the session's unique identifier.
	//
	// Returns:
	//   - uuid.UUID: the identifier
	ID() uuid.UUID

	// Status returns the lifecycle stage.
	//
	// Returns:
	//   - Status: the status
	Status() Status

	// Err returns the error that failed the last build, or nil.
	//
	// Returns:
	//   - error: a *loader.MalformedMeshError, *settings.MissingSettingsError or nil
	Err() error

	// Settings returns the settings of the last successful parse.
	//
	// Returns:
	//   - settings.ViewSettings: the settings
	Settings() settings.ViewSettings

	// Scene returns the scene being shown, or nil when the last build failed.
	//
	// Returns:
	//   - scene.Scene: the scene or nil
	Scene() scene.Scene

	// Camera returns the session camera.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Dispatch handles one message.
	//
	// Parameters:
	//   - msg: the message
	//
	// Returns:
	//   - error: ErrSessionClosed after Dispose; otherwise errors are reported to the panel
	//     and nil is returned
	Dispatch(msg Message) error

	// Tick advances the camera and renders one frame. Hidden panels and failed builds skip
	// rendering.
	//
	// Parameters:
	//   - now: the frame time
	//
	// Returns:
	//   - error: ErrSessionClosed after Dispose
	Tick(now time.Time) error

	// Run renders one frame per value received from frames until ctx is done, frames is closed or
	// the session is disposed.
	//
	// Parameters:
	//   - ctx: the context bounding the loop
	//   - frames: the frame signal
	//
	// Returns:
	//   - error: ctx.Err() when cancelled, nil otherwise
	Run(ctx context.Context, frames <-chan time.Time) error

	// Done is closed when the session is disposed.
	//
	// Returns:
	//   - <-chan struct{}: the channel
	Done() <-chan struct{}

	// Dispose stops the session and releases the renderer. It is idempotent.
	Dispose()
}

var _ Session = &session{}

// NewSession creates a session for a document shown on a panel, and builds the first scene.
// A build failure is reported on the panel and recorded in Err; the session stays open so a later
// file change can recover it. A document that is already gone closes the panel at once.
//
// Parameters:
//   - doc: the document
//   - panel: the host surface
//   - options: a variadic list of SessionBuilderOption functions
//
// Returns:
//   - Session: the session
func NewSession(doc Document, panel Panel, options ...SessionBuilderOption) Session {
	if doc == nil || panel == nil {
		panic("engine: NewSession requires a document and a panel")
	}

	s := &session{
		id:          uuid.New(),
		logger:      common.NewNopLogger(),
		doc:         doc,
		panel:       panel,
		visible:     true,
		quitChannel: make(chan struct{}),
	}
	for _, opt := range options {
		opt(s)
	}

	if s.loader == nil {
		s.loader = loader.NewLoader(loader.BackendTypeSTL, loader.WithLogger(s.logger))
	}
	if s.store == nil {
		s.store = state.NewMemoryStore()
	}
	s.bridge = state.NewBridge(s.store, s.logger)
	s.renderer = renderer.NewRenderer(panel, append([]renderer.RendererBuilderOption{renderer.WithLogger(s.logger)}, s.rendererOptions...)...)
	s.camera = camera.NewCamera(camera.WithController(camera.NewCameraController(s.controllerOptions...)))
	s.profiler = profiler.NewProfiler(s.logger, time.Now())

	if s.width > 0 && s.height > 0 {
		s.resized = true
		s.reproject()
	}

	s.build()
	return s
}

func (s *session) ID() uuid.UUID {
	return s.id
}

func (s *session) Status() Status {
	return s.status
}

func (s *session) Err() error {
	return s.err
}

func (s *session) Settings() settings.ViewSettings {
	return s.settings
}

func (s *session) Scene() scene.Scene {
	return s.scene
}

func (s *session) Camera() camera.Camera {
	return s.camera
}

func (s *session) Done() <-chan struct{} {
	return s.quitChannel
}

func (s *session) Dispatch(msg Message) error {
	if s.closed {
		return ErrSessionClosed
	}
	ctrl := s.camera.Controller()

	switch m := msg.(type) {
	case MsgFrame:
		return s.Tick(m.Time)
	case MsgResize:
		if m.Width > 0 && m.Height > 0 && (m.Width != s.width || m.Height != s.height) {
			s.width, s.height = m.Width, m.Height
			s.resized = true
		}
	case MsgSelectView:
		s.selectView(m.View)
	case MsgPointerDown:
		s.startGesture(m)
	case MsgPointerMove:
		switch s.gesture {
		case gestureRotate:
			ctrl.RotateMove(m.X, m.Y)
		case gesturePan:
			ctrl.PanMove(m.X, m.Y)
		case gestureDolly:
			if dy := m.Y - s.dollyY; dy != 0 {
				ctrl.Dolly(dy)
				s.dollyY = m.Y
			}
		}
	case MsgPointerUp:
		s.gesture = gestureNone
		ctrl.EndGesture()
	case MsgWheel:
		ctrl.Dolly(m.DeltaY)
	case MsgFileChanged:
		s.logger.Infof("%s changed, rebuilding", s.doc.Key())
		s.build()
	case MsgFileDeleted:
		s.closeSilently()
	case MsgVisibility:
		if m.Visible && !s.visible {
			s.profiler.Reset(time.Now())
		}
		s.visible = m.Visible
	default:
		s.logger.Warnf("ignoring unknown message %T", msg)
	}
	return nil
}

func (s *session) Tick(now time.Time) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.status != StatusReady || !s.visible {
		return nil
	}

	s.camera.Controller().Update()
	if s.resized {
		s.reproject()
	}
	s.camera.Update()

	s.seq++
	if _, err := s.renderer.Render(s.frame(now)); err != nil {
		// a lost frame is redrawn on the next tick
		s.logger.Warnf("frame %d dropped: %v", s.seq, err)
	}

	if err := s.bridge.Save(state.CameraStateOf(s.camera.Position())); err != nil {
		s.logger.Warnf("failed to persist camera: %v", err)
	}

	s.profiler.Tick(now)
	if s.settings.ShowInfo {
		if err := s.renderer.Overlay(s.overlayText()); err != nil {
			s.logger.Warnf("failed to update overlay: %v", err)
		}
	}
	return nil
}

func (s *session) Run(ctx context.Context, frames <-chan time.Time) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorf("render loop recovered from panic: %v", r)
			s.Dispose()
			err = fmt.Errorf("render loop panic: %v", r)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.quitChannel:
			return nil
		case now, ok := <-frames:
			if !ok {
				return nil
			}
			if err := s.Tick(now); errors.Is(err, ErrSessionClosed) {
				return nil
			}
		}
	}
}

func (s *session) Dispose() {
	if s.closed {
		return
	}
	s.closed = true
	s.status = StatusClosed
	s.renderer.Release()
	close(s.quitChannel)
	s.logger.Debugf("session %s disposed", s.id)
}

// build reconstructs everything from a fresh settings record. Either the full scene is shown or
// none at all.
func (s *session) build() {
	vs, sc, err := s.assemble()
	if err != nil {
		if errors.Is(err, ErrResourceUnavailable) {
			s.logger.Infof("%v", err)
			s.closeSilently()
			return
		}
		s.fail(err)
		return
	}

	if err := s.renderer.SetScene(sc); err != nil {
		s.fail(err)
		return
	}

	s.settings = vs
	s.scene = sc
	s.status = StatusReady
	s.err = nil
	s.panel.ApplySettings(vs)
	if !vs.ShowInfo {
		if err := s.renderer.Overlay(""); err != nil {
			s.logger.Warnf("failed to clear overlay: %v", err)
		}
	}

	s.placeCamera()
	s.logger.Infof("showing %s: %d triangles", s.doc.Key(), sc.Mesh().Geometry.TriangleCount())
}

func (s *session) assemble() (settings.ViewSettings, scene.Scene, error) {
	record, err := s.doc.Settings()
	if errors.Is(err, fs.ErrNotExist) {
		return settings.ViewSettings{}, nil, &ResourceUnavailableError{Key: s.doc.Key(), Err: err}
	}
	if err != nil {
		return settings.ViewSettings{}, nil, &settings.MissingSettingsError{Reason: "document settings unavailable", Err: err}
	}

	vs, err := settings.Parse(record)
	if err != nil {
		return settings.ViewSettings{}, nil, err
	}

	mesh, err := s.loader.DecodeBase64(vs.Data)
	if err != nil {
		return settings.ViewSettings{}, nil, err
	}

	sc, err := scene.Assemble(mesh, vs, scene.WithLogger(s.logger))
	if err != nil {
		return settings.ViewSettings{}, nil, err
	}
	return vs, sc, nil
}

func (s *session) fail(err error) {
	s.logger.Errorf("cannot show %s: %v", s.doc.Key(), err)
	s.status = StatusFailed
	s.err = err
	s.scene = nil
	if clearErr := s.renderer.SetScene(nil); clearErr != nil {
		s.logger.Warnf("failed to clear scene: %v", clearErr)
	}
	s.panel.ReportError(err)
}

func (s *session) closeSilently() {
	s.panel.Close()
	s.Dispose()
}

// placeCamera restores the persisted position around the mesh centre, or frames the isometric
// view when nothing was persisted.
func (s *session) placeCamera() {
	ctrl := s.camera.Controller()
	if cs, ok := s.bridge.Load(); ok {
		framing.Apply(ctrl, framing.Placement{
			View:     framing.Isometric,
			Position: cs.Vec3(),
			Target:   s.scene.Bounds().Center(),
		})
		return
	}
	s.selectView(framing.Isometric)
}

func (s *session) selectView(v framing.NamedView) {
	if s.status != StatusReady {
		return
	}
	s.gesture = gestureNone
	framing.Apply(s.camera.Controller(), framing.Place(v, s.scene.Bounds(), s.settings.ViewOffset))
	s.logger.Debugf("view %s", v)
}

func (s *session) startGesture(m MsgPointerDown) {
	ctrl := s.camera.Controller()
	switch {
	case m.Button == ButtonPrimary && !m.Modifier:
		s.gesture = gestureRotate
		ctrl.RotateStart(m.X, m.Y)
	case m.Button == ButtonPrimary, m.Button == ButtonSecondary:
		s.gesture = gesturePan
		ctrl.PanStart(m.X, m.Y)
	case m.Button == ButtonMiddle:
		s.gesture = gestureDolly
		s.dollyY = m.Y
	}
}

func (s *session) reproject() {
	s.resized = false
	s.renderer.Resize(s.width, s.height)
	s.camera.Controller().SetViewport(s.width, s.height)
	s.camera.SetAspect(float32(s.width) / float32(s.height))
}

func (s *session) frame(now time.Time) renderer.Frame {
	return renderer.Frame{
		Sequence: s.seq,
		Time:     now,
		Position: s.camera.Position(),
		Target:   s.camera.Target(),
		Up:       s.camera.Up(),
		Fov:      mgl32.RadToDeg(s.camera.Fov()),
		Aspect:   s.camera.Aspect(),
		Near:     s.camera.Near(),
		Far:      s.camera.Far(),
	}
}

func (s *session) overlayText() string {
	return overlay.Text(overlay.Info{
		Position:  s.camera.Position(),
		Rotation:  s.camera.Rotation(),
		Bounds:    s.scene.Bounds(),
		Triangles: s.scene.Mesh().Geometry.TriangleCount(),
		FPS:       s.profiler.FPS(),
	})
}
