package model

import (
	"math"
)

// Particle is one entry of a HepMC event record.
type Particle struct {
	Event       int        `json:"event" bson:"event"`
	Barcode     int        `json:"barcode" bson:"barcode"`
	PID         int        `json:"pid" bson:"pid"`
	Charge      int        `json:"charge" bson:"charge"`
	Mass        float64    `json:"mass" bson:"mass"`
	Momentum    [4]float64 `json:"momentum" bson:"momentum"`
	StartVertex int        `json:"start_vertex" bson:"start_vertex"`
	EndVertex   int        `json:"end_vertex" bson:"end_vertex"`
	Status      int        `json:"status" bson:"status"`
}

// MarshalJSON adds the "type" tag used to tell particles and vertices apart.
func (p Particle) MarshalJSON() ([]byte, error) {
	type plain Particle
	return marshalTyped("particle", plain(p))
}

// UnmarshalJSON ...
func (p *Particle) UnmarshalJSON(data []byte) error {
	type plain Particle
	return unmarshalTyped("particle", data, (*plain)(p))
}

// Energy returns the fourth momentum component.
func (p Particle) Energy() float64 {
	return p.Momentum[3]
}

// P returns the magnitude of the 3-momentum.
func (p Particle) P() float64 {
	return math.Sqrt(p.Momentum[0]*p.Momentum[0] + p.Momentum[1]*p.Momentum[1] + p.Momentum[2]*p.Momentum[2])
}

// PT returns the momentum transverse to the beam (z) axis.
func (p Particle) PT() float64 {
	return math.Hypot(p.Momentum[0], p.Momentum[1])
}

// Category is shorthand for Classify(p.PID).
func (p Particle) Category() Category {
	return Classify(p.PID)
}
