// Package scene holds the line geometry of a displayed event: the permanent
// beam line and detector decoration plus one line per particle.
package scene

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Dragunija/PPE-Data-Visualization/model"
)

// Kind tells particle lines from decoration.
type Kind int

// Kinds of lines.
const (
	KindParticle Kind = iota
	KindBeam
	KindDetector
)

// Detector and beam dimensions, in mm.
const (
	BeamHalfLength   = 10000.0
	DetectorRadius   = 115.0
	DetectorLength   = 700.0
	detectorSegments = 64
	detectorStruts   = 8
)

// Info is the metadata attached to a particle line for picking.
type Info struct {
	Category model.Category
	PID      int
	Barcode  int
	Momentum [4]float64
}

// String renders info for the info panel.
func (i Info) String() string {
	return fmt.Sprintf("Type: %s\nID: %d\nMomentum: %s", i.Category, i.PID, formatMomentum(i.Momentum))
}

func formatMomentum(m [4]float64) string {
	parts := make([]string, len(m))
	for i, v := range m {
		parts[i] = fmt.Sprintf("%.4g", v)
	}
	return strings.Join(parts, ", ")
}

// Line is a drawable polyline.
type Line struct {
	Points []r3.Vec
	Kind   Kind
	Info   Info
}

// Permanent reports whether the line survives Clear.
func (l *Line) Permanent() bool {
	return l.Kind != KindParticle
}

// Scene is the set of lines to draw. It is not safe for concurrent use; the
// viewer mutates and draws it from a single goroutine.
type Scene struct {
	lines []*Line
}

// New creates a scene holding the beam line and the detector volume.
func New() *Scene {
	s := &Scene{}
	s.lines = append(s.lines, &Line{
		Kind:   KindBeam,
		Points: []r3.Vec{{Z: -BeamHalfLength}, {Z: BeamHalfLength}},
	})
	s.lines = append(s.lines, detectorLines()...)
	return s
}

// detectorLines draws the solenoid cylinder, aligned with the beam, as a
// wireframe of end rings, a central ring and axial struts.
func detectorLines() []*Line {
	halfLength := DetectorLength / 2
	lines := []*Line{}
	for _, z := range []float64{-halfLength, 0, halfLength} {
		ring := make([]r3.Vec, detectorSegments+1)
		for i := range ring {
			phi := 2 * math.Pi * float64(i) / detectorSegments
			ring[i] = r3.Vec{X: DetectorRadius * math.Cos(phi), Y: DetectorRadius * math.Sin(phi), Z: z}
		}
		lines = append(lines, &Line{Kind: KindDetector, Points: ring})
	}
	for i := 0; i < detectorStruts; i++ {
		phi := 2 * math.Pi * float64(i) / detectorStruts
		x, y := DetectorRadius*math.Cos(phi), DetectorRadius*math.Sin(phi)
		lines = append(lines, &Line{Kind: KindDetector, Points: []r3.Vec{
			{X: x, Y: y, Z: -halfLength},
			{X: x, Y: y, Z: halfLength},
		}})
	}
	return lines
}

// Add appends lines to the scene.
func (s *Scene) Add(lines ...*Line) {
	s.lines = append(s.lines, lines...)
}

// Clear removes every particle line and keeps the decoration.
func (s *Scene) Clear() {
	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.Permanent() {
			kept = append(kept, l)
		}
	}
	for i := len(kept); i < len(s.lines); i++ {
		s.lines[i] = nil
	}
	s.lines = kept
}

// Lines returns every line of the scene, decoration first.
func (s *Scene) Lines() []*Line {
	return s.lines
}

// Particles returns the particle lines of the scene.
func (s *Scene) Particles() []*Line {
	particles := []*Line{}
	for _, l := range s.lines {
		if !l.Permanent() {
			particles = append(particles, l)
		}
	}
	return particles
}
