package forcefield

import "github.com/lbt-cnrs/biospring/units"

// ElectrostaticEnergy returns the Coulomb interaction energy, in kJ.mol-1,
// between two charges (in electron units) a distance apart (in Angstrom),
// in a medium of the given relative dielectric. Returns zero below
// MinimalElectrostaticDistance.
func ElectrostaticEnergy(chargeI, chargeJ, distance, dielectric float32) float32 {
	if distance < MinimalElectrostaticDistance {
		return 0.0
	}

	qi := float64(chargeI) * units.ElementaryChargeCoulomb
	qj := float64(chargeJ) * units.ElementaryChargeCoulomb
	d := float64(distance) * units.AngstromToMeter

	energy := units.CoulombConstant * (qi * qj) / (float64(dielectric) * d)
	energy *= units.AvogadroNumber // J.mol-1
	energy *= units.JouleToKJoule  // kJ.mol-1
	return float32(energy)
}

// ElectrostaticForceModule returns the magnitude of the Coulomb force, in
// the engine's internal force units, between two charges (in electron
// units) a distance apart (in Angstrom), in a medium of the given relative
// dielectric. Returns zero below MinimalElectrostaticDistance.
func ElectrostaticForceModule(chargeI, chargeJ, distance, dielectric float32) float32 {
	if distance < MinimalElectrostaticDistance {
		return 0.0
	}
	forceModule := -(chargeI * chargeJ) / (4.0 * Pi * dielectric * distance * distance)
	return forceModule * float32(electrostaticForceConvert)
}
