package model

import "fmt"

// Color represent (R, G, B , A) color.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// NewColor construct new color from 0xRRGGBB value.
func NewColor(rgb uint32) Color {
	return Color{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 0xFF}
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var (
	// DetectorColor of the detector wireframe.
	DetectorColor = NewColor(0x9999ff)
	// BeamColor of the beam line.
	BeamColor = NewColor(0x666666)

	categoryColors = map[Category]Color{
		Photon:   NewColor(0x0099aa),
		Lepton:   NewColor(0xddbb00),
		Neutrino: NewColor(0x333333),
		Hadron:   NewColor(0x338833),
	}
)

// Color returns the display color of particles of category c.
func (c Category) Color() Color {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return categoryColors[Hadron]
}
