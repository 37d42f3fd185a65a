// Package viewer holds the state of an interactive event display: the scene,
// the event/view-mode state machine and the per-frame picking and draw step.
package viewer

import (
	"github.com/Dragunija/PPE-Data-Visualization/model"
	"github.com/Dragunija/PPE-Data-Visualization/scene"
)

// State is the event index and view mode of the display.
type State struct {
	Index int
	Mode  scene.ViewMode
}

// Request asks for event Index of Filename to be shown in Mode.
// Generation identifies the transition that issued it.
type Request struct {
	Filename   string
	State      State
	Generation uint64
}

// Controller is the event/view-mode state machine.
//
// Transitions move the requested state and return a Request to fetch; the
// displayed state only follows once the matching response has been applied.
// Requests are stamped with a generation so a late response to an older
// request can be recognised and dropped.
type Controller struct {
	filename   string
	max        int
	displayed  State
	requested  State
	generation uint64
}

// NewController starts on event 1 of filename, which holds max events.
func NewController(filename string, max int, mode scene.ViewMode) *Controller {
	if max < 1 {
		max = 1
	}
	initial := State{Index: 1, Mode: mode}
	return &Controller{filename: filename, max: max, displayed: initial, requested: initial}
}

func (c *Controller) Filename() string {
	return c.filename
}

// Max returns the number of events in the file.
func (c *Controller) Max() int {
	return c.max
}

// Displayed returns the state of the scene currently shown.
func (c *Controller) Displayed() State {
	return c.displayed
}

// Requested returns the state of the latest transition.
func (c *Controller) Requested() State {
	return c.requested
}

// Pending reports whether a request has not been resolved yet.
func (c *Controller) Pending() bool {
	return c.requested != c.displayed
}

func (c *Controller) transition(next State) (Request, bool) {
	if next == c.requested {
		return Request{}, false
	}
	c.requested = next
	c.generation++
	return Request{Filename: c.filename, State: next, Generation: c.generation}, true
}

// NextEvent moves to the following event. It is a no-op on the last event.
func (c *Controller) NextEvent() (Request, bool) {
	if c.requested.Index >= c.max {
		return Request{}, false
	}
	return c.transition(State{Index: c.requested.Index + 1, Mode: c.requested.Mode})
}

// PreviousEvent moves to the preceding event. It is a no-op on event 1.
func (c *Controller) PreviousEvent() (Request, bool) {
	if c.requested.Index <= 1 {
		return Request{}, false
	}
	return c.transition(State{Index: c.requested.Index - 1, Mode: c.requested.Mode})
}

// MomentumView switches from spacetime to momentum view.
func (c *Controller) MomentumView() (Request, bool) {
	if c.requested.Mode != scene.Spacetime {
		return Request{}, false
	}
	return c.transition(State{Index: c.requested.Index, Mode: scene.Momentum})
}

// SpacetimeView switches from momentum to spacetime view.
func (c *Controller) SpacetimeView() (Request, bool) {
	if c.requested.Mode != scene.Momentum {
		return Request{}, false
	}
	return c.transition(State{Index: c.requested.Index, Mode: scene.Spacetime})
}

// Reload requests the current requested state again under a new generation,
// superseding any request in flight.
func (c *Controller) Reload() Request {
	c.generation++
	return Request{Filename: c.filename, State: c.requested, Generation: c.generation}
}

// Latest reports whether req is the most recent request.
func (c *Controller) Latest(req Request) bool {
	return req.Generation == c.generation && req.Filename == c.filename
}

// Commit records that req has been displayed. count updates the number of
// events in the file when positive.
func (c *Controller) Commit(req Request, count int) bool {
	if !c.Latest(req) {
		return false
	}
	c.displayed = req.State
	if count > 0 {
		c.max = count
	}
	return true
}

// Fail drops req, returning the requested state to the displayed one.
func (c *Controller) Fail(req Request) bool {
	if !c.Latest(req) {
		return false
	}
	c.requested = c.displayed
	return true
}

// Outcome of resolving a response.
type Outcome int

// Possible outcomes of Controller.Resolve.
const (
	// Stale responses answer a request superseded by a later transition.
	Stale Outcome = iota
	// Applied responses become the displayed state.
	Applied
	// Reverted responses failed; the requested state returned to the displayed one.
	Reverted
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Reverted:
		return "reverted"
	default:
		return "stale"
	}
}

// Response is the result of fetching a Request.
type Response struct {
	Request Request
	Payload *model.Payload
	Err     error
}

// Resolve settles resp against the state machine.
func (c *Controller) Resolve(resp Response) Outcome {
	if !c.Latest(resp.Request) {
		return Stale
	}
	if resp.Err != nil || resp.Payload == nil {
		c.Fail(resp.Request)
		return Reverted
	}
	c.Commit(resp.Request, resp.Payload.Count)
	return Applied
}
