package viewer

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	conf "github.com/Dragunija/PPE-Data-Visualization/config"
	"github.com/Dragunija/PPE-Data-Visualization/model"
	"github.com/Dragunija/PPE-Data-Visualization/scene"
)

var log = conf.NamedLogger("viewer")

// Action is a user command changing the displayed event or view.
type Action int

// Actions bound to keys by front-ends.
const (
	NextEvent Action = iota + 1
	PreviousEvent
	MomentumView
	SpacetimeView
	// Retry fetches the requested state again, e.g. after a failed load.
	Retry
)

// Renderer draws the scene as seen by the camera.
type Renderer interface {
	Draw(s *scene.Scene, cam scene.Camera)
}

// App is the state of one event display: scene, camera, state machine,
// pointer and info text. It is not safe for concurrent use; front-ends call
// it from their event loop only and run Fetch elsewhere.
type App struct {
	scene      *scene.Scene
	camera     scene.Camera
	builder    scene.Builder
	controller *Controller
	fetcher    Fetcher
	renderer   Renderer

	// opened is set once the first event of the file is shown. Until then only
	// Retry is accepted.
	opened bool

	pickThreshold float64
	pointerX      float64
	pointerY      float64
	pickRequested bool

	info   string
	status string
}

// NewApp creates display configured by vc. Open selects the file to show.
func NewApp(vc *conf.ViewerConfig, fetcher Fetcher, renderer Renderer) *App {
	camera := scene.NewCamera(1)
	camera.Fov = vc.Camera.Fov
	camera.Position = r3.Vec{X: vc.Camera.X, Y: vc.Camera.Y, Z: vc.Camera.Z}

	return &App{
		scene:         scene.New(),
		camera:        camera,
		builder:       NewBuilder(vc),
		controller:    NewController("", 1, scene.Momentum),
		fetcher:       fetcher,
		renderer:      renderer,
		pickThreshold: vc.Display.PickThreshold,
	}
}

// NewBuilder returns a scene builder with the display scale and trajectory
// settings of vc.
func NewBuilder(vc *conf.ViewerConfig) scene.Builder {
	builder := scene.NewBuilder()
	builder.Scale = vc.Display.Scale
	builder.Integrator.TimeStep = vc.Trajectory.TimeStep
	builder.Integrator.Steps = vc.Trajectory.Steps
	builder.Integrator.Samples = vc.Trajectory.Samples
	builder.Integrator.Field = r3.Vec{X: vc.Trajectory.FieldX, Y: vc.Trajectory.FieldY, Z: vc.Trajectory.FieldZ}
	return builder
}

// Open switches the display to filename in mode and returns the request for its
// first event.
func (a *App) Open(filename string, mode scene.ViewMode) Request {
	a.controller = NewController(filename, 1, mode)
	a.opened = false
	a.status = fmt.Sprintf("loading %s", filename)
	return a.controller.Reload()
}

// Key applies action and returns the request to fetch, if any. Event and view
// changes are ignored until the first event of the file has been shown.
func (a *App) Key(action Action) (Request, bool) {
	if action == Retry {
		a.status = fmt.Sprintf("loading event %d", a.controller.Requested().Index)
		return a.controller.Reload(), true
	}
	if !a.opened {
		return Request{}, false
	}
	switch action {
	case NextEvent:
		return a.controller.NextEvent()
	case PreviousEvent:
		return a.controller.PreviousEvent()
	case MomentumView:
		return a.controller.MomentumView()
	case SpacetimeView:
		return a.controller.SpacetimeView()
	default:
		log.Errorf("[ASSERT] unknown action %d", action)
		return Request{}, false
	}
}

// Fetch retrieves the event of req. It blocks and does not touch the App state,
// so it may run outside the event loop.
func (a *App) Fetch(ctx context.Context, req Request) Response {
	payload, err := a.fetcher.Fetch(ctx, req.Filename, req.State.Index)
	return Response{Request: req, Payload: payload, Err: err}
}

// Loaded applies a fetched response. A stale response is ignored. A failed one
// leaves the scene untouched and reverts the requested state. Otherwise the
// particle lines are replaced in one step. The returned error reports a failure
// or the particles which could not be drawn.
func (a *App) Loaded(resp Response) (Outcome, error) {
	if !a.controller.Latest(resp.Request) {
		log.Debugf("discarding stale response for event %d (generation %d)",
			resp.Request.State.Index, resp.Request.Generation)
		return Stale, nil
	}
	if resp.Err == nil && resp.Payload == nil {
		resp.Err = fmt.Errorf("empty response for event %d", resp.Request.State.Index)
	}
	if resp.Err == nil {
		particles, vertices, decodeErr := resp.Payload.Decode()
		if decodeErr == nil {
			return a.rebuild(resp, particles, vertices)
		}
		resp.Err = decodeErr
	}

	outcome := a.controller.Resolve(resp)
	a.status = fmt.Sprintf("failed to load event %d: %s (r to retry)", resp.Request.State.Index, resp.Err.Error())
	log.Warn(a.status)
	return outcome, resp.Err
}

func (a *App) rebuild(resp Response, particles []model.Particle, vertices []model.Vertex) (Outcome, error) {
	outcome := a.controller.Resolve(resp)
	a.opened = true
	state := a.controller.Displayed()
	lines, buildErr := a.builder.Lines(state.Mode, particles, vertices)
	a.scene.Clear()
	a.scene.Add(lines...)
	a.info = ""
	a.status = fmt.Sprintf("%s  event %d/%d  %s view",
		a.controller.Filename(), state.Index, a.controller.Max(), state.Mode)
	if buildErr != nil {
		skipped := len(particles) - len(lines)
		a.status += fmt.Sprintf("  (%d particles not drawn)", skipped)
		log.Warnf("event %d: %s", state.Index, buildErr.Error())
	}
	return outcome, buildErr
}

// PointerMove records the pointer position in device coordinates, the
// drawing area being width by height with the origin at the top left.
func (a *App) PointerMove(x, y, width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	a.pointerX = x/width*2 - 1
	a.pointerY = -(y/height)*2 + 1
}

// Pointer returns the pointer in normalised coordinates, both in [-1, 1] and y up.
func (a *App) Pointer() (x, y float64) {
	return a.pointerX, a.pointerY
}

// Click requests a pick at the pointer on the next frame.
func (a *App) Click() {
	a.pickRequested = true
}

// Frame resolves a pending pick and draws the scene once.
func (a *App) Frame() {
	if a.pickRequested {
		a.pickRequested = false
		ray := a.camera.Ray(a.pointerX, a.pointerY)
		if line, ok := scene.Pick(a.scene, ray, a.pickThreshold); ok {
			a.info = line.Info.String()
		}
	}
	a.renderer.Draw(a.scene, a.camera)
}

// Resize updates the camera aspect ratio.
func (a *App) Resize(width, height float64) {
	if width > 0 && height > 0 {
		a.camera.Aspect = width / height
	}
}

// Orbit rotates the camera around its target by angle radians.
func (a *App) Orbit(angle float64) {
	a.camera.Orbit(angle)
}

// Zoom scales the camera distance to its target.
func (a *App) Zoom(factor float64) {
	a.camera.Zoom(factor)
}

// Scene ...
func (a *App) Scene() *scene.Scene {
	return a.scene
}

// Camera ...
func (a *App) Camera() scene.Camera {
	return a.camera
}

// Controller returns the event/view state machine.
func (a *App) Controller() *Controller {
	return a.controller
}

// Info returns the description of the last picked particle.
func (a *App) Info() string {
	return a.info
}

// Status returns a one-line summary of the displayed event or the last failure.
func (a *App) Status() string {
	return a.status
}
