package forcefield

import (
	"math"

	"github.com/lbt-cnrs/biospring/vector"
)

// IMPALA membrane model constants, from Ducarme et al.'s implicit membrane
// potential (https://doi.org/10.3390/membranes13030362).
const (
	impalaAlpha = 1.99  // A^-1
	impalaZ0    = 15.75 // A
	impalaAlip  = -0.018
)

func sign(v float32) float32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// impalaMembraneRadius converts a tube curvature (A^-1) into a tube radius
// (A); a flat membrane (zero curvature) is treated as an effectively
// infinite radius.
func impalaMembraneRadius(curvature float32) float32 {
	if curvature == 0.0 {
		return 1_000_000.0
	}
	return float32(math.Abs(float64(1.0 / curvature)))
}

// impalaInsertionZ projects a particle's z coordinate onto the membrane's
// local insertion axis, accounting for the membrane's tube curvature; a
// flat membrane (curvSign == 0) leaves z unchanged.
func impalaInsertionZ(position vector.Vector3, offset, curvature float32, curvSign float32) float32 {
	if curvSign == 0 {
		return position[2]
	}
	radius := impalaMembraneRadius(curvature)
	center := vector.New(0, position[1], offset-curvSign*radius)
	toCenter := position.Sub(center)
	if position[2] > center[2] {
		return curvSign*toCenter.Len() + offset - radius
	}
	return -curvSign*toCenter.Len() + offset - radius
}

func impalaCz(insertionZ, offset float32) float64 {
	return 0.5 - 1.0/(1.0+math.Exp(float64(impalaAlpha*(float32(math.Abs(float64(insertionZ-offset)))-impalaZ0))))
}

// ImpalaEnergy returns the IMPALA implicit membrane insertion energy, in
// kJ.mol-1, of a particle with the given solvent-accessible surface and
// water-to-lipid transfer energy located at position. uppermembOffset,
// lowermembOffset, upperTubeCurvature and lowerTubeCurvature default to
// zero for a single flat membrane; non-zero offsets/curvatures model a
// double, optionally tube-curved, membrane.
func ImpalaEnergy(position vector.Vector3, surface, transfer float32, upperOffset, lowerOffset, upperCurvature, lowerCurvature float32) float32 {
	upperSign := sign(upperCurvature)
	lowerSign := sign(lowerCurvature)

	zUpper := impalaInsertionZ(position, upperOffset, upperCurvature, upperSign)
	zLower := impalaInsertionZ(position, -lowerOffset, lowerCurvature, lowerSign)

	czUpper := impalaCz(zUpper, upperOffset)
	czLower := impalaCz(zLower, -lowerOffset)

	hydroUpper := -float64(surface*transfer) * czUpper
	hydroLower := -float64(surface*transfer) * czLower
	lipidUpper := float64(impalaAlip*surface) * czUpper
	lipidLower := float64(impalaAlip*surface) * czLower

	if upperOffset == 0 && lowerOffset == 0 && upperCurvature == 0 && lowerCurvature == 0 {
		return float32(hydroUpper + lipidUpper)
	}
	return float32(hydroUpper + lipidUpper + hydroLower + lipidLower)
}

func impalaDCz(insertionZ, offset float32) float64 {
	expo := math.Exp(float64(impalaAlpha * (float32(math.Abs(float64(insertionZ+offset))) - impalaZ0)))
	denom := math.Pow(expo+1, 2.0) * math.Abs(float64(insertionZ-offset))
	if denom == 0 {
		return 0
	}
	d := float64(impalaAlpha*(insertionZ-offset)) * expo / denom
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	return d
}

// ImpalaForceVector returns the IMPALA implicit membrane insertion force,
// in the engine's internal force units, acting on a particle with the
// given solvent-accessible surface and water-to-lipid transfer energy
// located at position. See ImpalaEnergy for the membrane parameters.
func ImpalaForceVector(position vector.Vector3, surface, transfer float32, upperOffset, lowerOffset, upperCurvature, lowerCurvature float32) vector.Vector3 {
	upperSign := sign(upperCurvature)
	lowerSign := sign(lowerCurvature)
	upperRadius := impalaMembraneRadius(upperCurvature)
	lowerRadius := impalaMembraneRadius(lowerCurvature)

	zUpper := impalaInsertionZ(position, upperOffset, upperCurvature, upperSign)
	zLower := impalaInsertionZ(position, -lowerOffset, lowerCurvature, lowerSign)

	dCzUpper := impalaDCz(zUpper, upperOffset)
	dCzLower := impalaDCz(zLower, -lowerOffset)

	hydroUpper := -float64(surface*transfer) * dCzUpper
	hydroLower := -float64(surface*transfer) * dCzLower
	lipidUpper := float64(impalaAlip*surface) * dCzUpper
	lipidLower := float64(impalaAlip*surface) * dCzLower

	upperCenter := vector.New(0, position[1], upperOffset-upperSign*upperRadius)
	lowerCenter := vector.New(0, position[1], -lowerOffset-lowerSign*lowerRadius)

	upperDir := vector.New(0, 0, 1)
	if upperSign != 0 {
		upperDir = vector.Normalize(position.Sub(upperCenter))
	}
	lowerDir := vector.New(0, 0, 1)
	if lowerSign != 0 {
		lowerDir = vector.Normalize(position.Sub(lowerCenter))
	}

	forceUpper := upperDir.Mul(float32((hydroUpper + lipidUpper) * ImpalaForceConvert))
	forceLower := lowerDir.Mul(float32((hydroLower + lipidLower) * ImpalaForceConvert))

	if upperOffset == 0 && lowerOffset == 0 && upperCurvature == 0 && lowerCurvature == 0 {
		return forceUpper
	}
	return forceUpper.Add(forceLower)
}
