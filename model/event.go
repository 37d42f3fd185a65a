package model

// Event is one recorded collision: its header plus the particles and vertices
// belonging to it. No is the 1-based position of the event in its file.
type Event struct {
	No           int        `json:"no" bson:"no"`
	Number       int        `json:"barcode" bson:"number"`
	Filename     string     `json:"filename" bson:"filename"`
	Weights      []float64  `json:"weight" bson:"weight"`
	Units        [2]string  `json:"units" bson:"units"`
	CrossSection [2]float64 `json:"xsec" bson:"xsec"`
	Particles    []Particle `json:"-" bson:"-"`
	Vertices     []Vertex   `json:"-" bson:"-"`
}

// MarshalJSON ...
func (e Event) MarshalJSON() ([]byte, error) {
	type plain Event
	return marshalTyped("event", plain(e))
}

// UnmarshalJSON ...
func (e *Event) UnmarshalJSON(data []byte) error {
	type plain Event
	return unmarshalTyped("event", data, (*plain)(e))
}

// Vertex finds the vertex with the given barcode.
func (e *Event) Vertex(barcode int) (Vertex, bool) {
	return FindVertex(e.Vertices, barcode)
}

// FindVertex finds the vertex with the given barcode.
func FindVertex(vertices []Vertex, barcode int) (Vertex, bool) {
	for _, v := range vertices {
		if v.Barcode == barcode {
			return v, true
		}
	}
	return Vertex{}, false
}
