package model

// charges of particles (not antiparticles) with integer charge, in units of e.
var charges = map[int]int{
	11:   -1, // e-
	13:   -1, // mu-
	15:   -1, // tau-
	24:   1,  // W+
	37:   1,  // H+
	211:  1,  // pi+
	213:  1,  // rho+
	321:  1,  // K+
	323:  1,  // K*+
	411:  1,  // D+
	413:  1,  // D*+
	431:  1,  // D_s+
	521:  1,  // B+
	523:  1,  // B*+
	541:  1,  // B_c+
	2212: 1,  // p
	2214: 1,  // Delta+
	2224: 2,  // Delta++
	1114: -1, // Delta-
	3112: -1, // Sigma-
	3222: 1,  // Sigma+
	3312: -1, // Xi-
	3334: -1, // Omega-
	4122: 1,  // Lambda_c+
	4222: 2,  // Sigma_c++
}

// ChargeOf returns the electric charge of the particle with the given PDG code.
// Unknown species and species with fractional charge (quarks) give 0.
func ChargeOf(pid int) int {
	if pid < 0 {
		return -charges[-pid]
	}
	return charges[pid]
}
