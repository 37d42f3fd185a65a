package model

// Category is the display class of a particle.
type Category string

// Categories of particles.
const (
	Photon   Category = "photon"
	Lepton   Category = "lepton"
	Neutrino Category = "neutrino"
	Hadron   Category = "hadron"
)

// Classify maps a PDG particle code to its Category.
// Codes which are not photons, charged leptons or neutrinos are hadrons.
func Classify(pid int) Category {
	switch pid {
	case 22:
		return Photon
	case 11, -11, 13, -13, 15, -15:
		return Lepton
	case 12, -12, 14, -14, 16, -16:
		return Neutrino
	default:
		return Hadron
	}
}
