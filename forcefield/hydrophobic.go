package forcefield

import (
	"math"

	"github.com/lbt-cnrs/biospring/units"
)

// HydrophobicEnergy returns the hydrophobic coupling energy, in kJ.mol-1,
// between two particles of the given hydrophobicity a distance (in
// Angstrom) apart. The coupling decays exponentially with distance and is
// attractive for particles of like-signed hydrophobicity.
func HydrophobicEnergy(hydrophobicityI, hydrophobicityJ, distance float32) float32 {
	energy := -float64(hydrophobicityI*hydrophobicityJ) * math.Exp(-float64(distance))
	energy *= units.AvogadroNumber
	energy *= units.JouleToKJoule
	return float32(energy)
}

// HydrophobicForceModule returns the hydrophobic coupling force module
// between two particles of the given hydrophobicity a distance apart: the
// distance derivative of HydrophobicEnergy (kJ.mol-1 per Angstrom) scaled by
// a further units.JouleToKJoule factor. It is positive (an attraction) for
// like-signed hydrophobicity.
func HydrophobicForceModule(hydrophobicityI, hydrophobicityJ, distance float32) float32 {
	forceModule := float64(hydrophobicityI*hydrophobicityJ) * math.Exp(-float64(distance))
	forceModule *= units.AvogadroNumber * units.JouleToKJoule
	forceModule *= units.JouleToKJoule
	return float32(forceModule)
}
