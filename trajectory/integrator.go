// Package trajectory approximates the path of a particle through a uniform
// magnetic field for display.
//
// The stepping is a stylised visualisation aid and not a physically validated
// model: momentum is nudged by a damped Lorentz-like force each step while the
// energy is held fixed, which bends charged tracks plausibly but does not
// conserve anything in particular.
package trajectory

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Defaults of the reference event display. Lengths are in mm, times in s,
// momenta and energies in GeV and fields in T.
const (
	DefaultTimeStep     = 5e-10
	DefaultSteps        = 16
	DefaultSamples      = 100
	DefaultSpeedOfLight = 3e10
	DefaultForceDamping = 500
)

// DefaultField points along the vertical display axis so that tracks along the
// beam line bend too. Use (0, 0, 4) for a solenoid aligned with the beam.
var DefaultField = r3.Vec{X: 0, Y: 4, Z: 0}

// ErrNoEnergy is returned for particles without positive energy, which have
// no defined velocity.
var ErrNoEnergy = errors.New("particle has no positive energy")

// Integrator steps particles with a fixed time step for a fixed number of steps.
type Integrator struct {
	TimeStep     float64
	Steps        int
	Samples      int
	Field        r3.Vec
	SpeedOfLight float64
	ForceDamping float64
}

// NewIntegrator returns an Integrator with the default constants.
func NewIntegrator() Integrator {
	return Integrator{
		TimeStep:     DefaultTimeStep,
		Steps:        DefaultSteps,
		Samples:      DefaultSamples,
		Field:        DefaultField,
		SpeedOfLight: DefaultSpeedOfLight,
		ForceDamping: DefaultForceDamping,
	}
}

// Path is a drawable trajectory.
type Path struct {
	// Steps holds the start position followed by one position per step.
	Steps []r3.Vec
	// Points is the polyline to draw.
	Points []r3.Vec
	// Mass is the rest mass derived from the four-momentum, 0 for massless particles.
	Mass float64
}

// Mass returns sqrt(E^2 - |p|^2) when E exceeds |p|, and 0 otherwise.
func Mass(momentum [4]float64) float64 {
	p := r3.Vec{X: momentum[0], Y: momentum[1], Z: momentum[2]}
	e := momentum[3]
	p2 := r3.Dot(p, p)
	if e*e <= p2 {
		return 0
	}
	return math.Sqrt(e*e - p2)
}

// Step advances a particle from start for in.Steps steps and returns the
// visited positions, start included.
func (in Integrator) Step(start r3.Vec, momentum [4]float64, charge int) ([]r3.Vec, error) {
	e := momentum[3]
	if !(e > 0) {
		return nil, fmt.Errorf("energy %g: %w", e, ErrNoEnergy)
	}
	pos := start
	mom := r3.Vec{X: momentum[0], Y: momentum[1], Z: momentum[2]}
	points := make([]r3.Vec, 0, in.Steps+1)
	points = append(points, pos)
	for i := 0; i < in.Steps; i++ {
		vel := r3.Scale(in.SpeedOfLight/e, mom)
		pos = r3.Add(pos, r3.Scale(in.TimeStep, vel))
		if charge != 0 {
			force := r3.Scale(float64(charge), r3.Cross(vel, in.Field))
			mom = r3.Add(mom, r3.Scale(in.TimeStep/in.ForceDamping, force))
		}
		points = append(points, pos)
	}
	return points, nil
}

// Path steps the particle and turns the positions into a polyline. Two
// positions give a straight segment; more are joined by a Catmull-Rom curve
// sampled at in.Samples+1 points.
func (in Integrator) Path(start r3.Vec, momentum [4]float64, charge int) (Path, error) {
	steps, err := in.Step(start, momentum, charge)
	if err != nil {
		return Path{}, err
	}
	path := Path{Steps: steps, Mass: Mass(momentum)}
	if len(steps) <= 2 {
		path.Points = steps
	} else {
		path.Points = NewCatmullRom(steps).Points(in.Samples)
	}
	return path, nil
}
