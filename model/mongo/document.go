package mongo

import (
	"sort"

	"github.com/Dragunija/PPE-Data-Visualization/model"
)

// EventDocument is an event header as stored in the events collection.
type EventDocument struct {
	model.Event `bson:",inline"`
}

// ParticleDocument is a particle tagged with the event it belongs to.
type ParticleDocument struct {
	Filename       string `bson:"filename"`
	No             int    `bson:"no"`
	model.Particle `bson:",inline"`
}

// VertexDocument is a vertex tagged with the event it belongs to.
type VertexDocument struct {
	Filename     string `bson:"filename"`
	No           int    `bson:"no"`
	model.Vertex `bson:",inline"`
}

// Documents splits events into the documents of each collection. Every event
// is stored under filename, whatever file it was read from.
func Documents(filename string, events []*model.Event) (evts, particles, vertices []interface{}) {
	evts = make([]interface{}, 0, len(events))
	for _, evt := range events {
		header := *evt
		header.Filename = filename
		header.Particles, header.Vertices = nil, nil
		evts = append(evts, EventDocument{Event: header})
		for _, p := range evt.Particles {
			particles = append(particles, ParticleDocument{Filename: filename, No: evt.No, Particle: p})
		}
		for _, v := range evt.Vertices {
			vertices = append(vertices, VertexDocument{Filename: filename, No: evt.No, Vertex: v})
		}
	}
	return evts, particles, vertices
}

// Assemble rebuilds an event from its stored documents. Particles and vertices
// are ordered by barcode, as in the HepMC file.
func Assemble(header EventDocument, particles []ParticleDocument, vertices []VertexDocument) *model.Event {
	evt := header.Event
	evt.Particles = make([]model.Particle, 0, len(particles))
	for _, p := range particles {
		evt.Particles = append(evt.Particles, p.Particle)
	}
	evt.Vertices = make([]model.Vertex, 0, len(vertices))
	for _, v := range vertices {
		evt.Vertices = append(evt.Vertices, v.Vertex)
	}
	sort.SliceStable(evt.Particles, func(i, j int) bool {
		return evt.Particles[i].Barcode < evt.Particles[j].Barcode
	})
	// Vertex barcodes are negative, counting down from -1.
	sort.SliceStable(evt.Vertices, func(i, j int) bool {
		return evt.Vertices[i].Barcode > evt.Vertices[j].Barcode
	})
	return &evt
}
