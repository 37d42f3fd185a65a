package model

// Vertex is a point where particles are produced or decay.
// Position holds x, y, z, t.
type Vertex struct {
	Event    int        `json:"event" bson:"event"`
	Barcode  int        `json:"barcode" bson:"barcode"`
	Position [4]float64 `json:"position" bson:"position"`
}

// MarshalJSON ...
func (v Vertex) MarshalJSON() ([]byte, error) {
	type plain Vertex
	return marshalTyped("vertex", plain(v))
}

// UnmarshalJSON ...
func (v *Vertex) UnmarshalJSON(data []byte) error {
	type plain Vertex
	return unmarshalTyped("vertex", data, (*plain)(v))
}
