package model

import (
	"encoding/json"
	"fmt"
)

// Payload is the wire form of one event, as served to viewers.
// Particles and Vertices are kept raw so each can be decoded on its own.
type Payload struct {
	No        int             `json:"no"`
	Filename  string          `json:"filename"`
	Count     int             `json:"count"`
	Particles json.RawMessage `json:"particles"`
	Vertices  json.RawMessage `json:"vertices"`
}

// NewPayload encodes evt for a file holding count events.
func NewPayload(evt *Event, count int) (*Payload, error) {
	particles := evt.Particles
	if particles == nil {
		particles = []Particle{}
	}
	vertices := evt.Vertices
	if vertices == nil {
		vertices = []Vertex{}
	}
	particlesRaw, particlesErr := json.Marshal(particles)
	if particlesErr != nil {
		return nil, particlesErr
	}
	verticesRaw, verticesErr := json.Marshal(vertices)
	if verticesErr != nil {
		return nil, verticesErr
	}
	return &Payload{
		No:        evt.No,
		Filename:  evt.Filename,
		Count:     count,
		Particles: particlesRaw,
		Vertices:  verticesRaw,
	}, nil
}

// Decode returns the particles and vertices of the payload.
func (p *Payload) Decode() ([]Particle, []Vertex, error) {
	particles := []Particle{}
	if len(p.Particles) > 0 {
		if err := json.Unmarshal(p.Particles, &particles); err != nil {
			return nil, nil, fmt.Errorf("particles: %w", err)
		}
	}
	vertices := []Vertex{}
	if len(p.Vertices) > 0 {
		if err := json.Unmarshal(p.Vertices, &vertices); err != nil {
			return nil, nil, fmt.Errorf("vertices: %w", err)
		}
	}
	return particles, vertices, nil
}

// FileInfo describes an event file known to the server.
type FileInfo struct {
	Filename string `json:"filename" bson:"filename"`
	Count    int    `json:"count" bson:"count"`
}
