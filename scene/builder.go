package scene

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Dragunija/PPE-Data-Visualization/model"
	"github.com/Dragunija/PPE-Data-Visualization/trajectory"
)

// ViewMode selects the projection used to draw particles.
type ViewMode int

// View modes.
const (
	// Momentum draws each particle as a ray from the origin along its momentum.
	Momentum ViewMode = 1
	// Spacetime draws the approximate trajectory of each particle.
	Spacetime ViewMode = 2
)

func (m ViewMode) String() string {
	switch m {
	case Momentum:
		return "momentum"
	case Spacetime:
		return "spacetime"
	default:
		return fmt.Sprintf("ViewMode(%d)", int(m))
	}
}

// ParseViewMode parses "momentum" / "spacetime" (or "1" / "2").
func ParseViewMode(s string) (ViewMode, error) {
	switch s {
	case "momentum", "1":
		return Momentum, nil
	case "spacetime", "2":
		return Spacetime, nil
	}
	return 0, fmt.Errorf("unknown view mode %q", s)
}

// ErrMissingVertex is returned for a particle whose production vertex is not
// part of the event.
var ErrMissingVertex = errors.New("start vertex not found")

// ParticleError reports a particle which could not be drawn.
type ParticleError struct {
	Barcode int
	PID     int
	Err     error
}

func (e *ParticleError) Error() string {
	return fmt.Sprintf("particle %d (pid %d): %s", e.Barcode, e.PID, e.Err.Error())
}

func (e *ParticleError) Unwrap() error {
	return e.Err
}

// Builder turns particles into lines.
type Builder struct {
	// Scale converts momenta (GeV) into display units in momentum view.
	Scale      float64
	Integrator trajectory.Integrator
}

// NewBuilder returns a Builder with unit scale and the default integrator.
func NewBuilder() Builder {
	return Builder{Scale: 1, Integrator: trajectory.NewIntegrator()}
}

// Lines returns one line per drawable particle. Particles which cannot be
// drawn are reported together in the returned error; the others are returned.
func (b Builder) Lines(mode ViewMode, particles []model.Particle, vertices []model.Vertex) ([]*Line, error) {
	lines := make([]*Line, 0, len(particles))
	errs := []error{}
	for _, p := range particles {
		points, err := b.points(mode, p, vertices)
		if err != nil {
			errs = append(errs, &ParticleError{Barcode: p.Barcode, PID: p.PID, Err: err})
			continue
		}
		lines = append(lines, &Line{
			Kind:   KindParticle,
			Points: points,
			Info: Info{
				Category: model.Classify(p.PID),
				PID:      p.PID,
				Barcode:  p.Barcode,
				Momentum: p.Momentum,
			},
		})
	}
	return lines, errors.Join(errs...)
}

func (b Builder) points(mode ViewMode, p model.Particle, vertices []model.Vertex) ([]r3.Vec, error) {
	switch mode {
	case Momentum:
		end := r3.Scale(b.Scale, r3.Vec{X: p.Momentum[0], Y: p.Momentum[1], Z: p.Momentum[2]})
		return []r3.Vec{{}, end}, nil
	case Spacetime:
		vertex, ok := model.FindVertex(vertices, p.StartVertex)
		if !ok {
			return nil, fmt.Errorf("vertex %d: %w", p.StartVertex, ErrMissingVertex)
		}
		start := r3.Vec{X: vertex.Position[0], Y: vertex.Position[1], Z: vertex.Position[2]}
		path, err := b.Integrator.Path(start, p.Momentum, p.Charge)
		if err != nil {
			return nil, err
		}
		return path.Points, nil
	default:
		return nil, fmt.Errorf("unknown view mode %d", int(mode))
	}
}

// Build adds the lines of particles to s. It does not clear s first. Lines are
// added even when some particles fail; the failures are returned.
func (b Builder) Build(s *Scene, mode ViewMode, particles []model.Particle, vertices []model.Vertex) error {
	lines, err := b.Lines(mode, particles, vertices)
	s.Add(lines...)
	return err
}
