// Package units holds the physical constants shared by the grid and
// force-field packages: Boltzmann's constant, Avogadro's number, and the
// unit conversions between the SI system and the engine's internal
// Dalton/Angstrom/femtosecond unit system.
package units

const (
	// BoltzmannJPerK is the Boltzmann constant in joules per kelvin.
	BoltzmannJPerK = 1.380649e-23

	// AvogadroNumber is Avogadro's number, in mol^-1.
	AvogadroNumber = 6.02214076e23

	// ElementaryChargeCoulomb is the elementary charge, in coulombs.
	ElementaryChargeCoulomb = 1.602176634e-19

	// CoulombConstant is Coulomb's constant (1/4*pi*epsilon0), in
	// N.m^2.C^-2.
	CoulombConstant = 8.9875517923e9

	// JouleToKJoule converts joules to kilojoules.
	JouleToKJoule = 1e-3

	// MeterToAngstrom converts meters to Angstroms.
	MeterToAngstrom = 1e10

	// AngstromToMeter converts Angstroms to meters.
	AngstromToMeter = 1e-10

	// DaltonToKg converts Daltons (unified atomic mass units) to kilograms.
	DaltonToKg = 1.66053906660e-27

	// FemtosecondToSecond converts femtoseconds to seconds.
	FemtosecondToSecond = 1e-15

	// NewtonToDaltonAngstromPerFemtosecond2 converts a force in newtons to
	// the engine's internal Dalton.Angstrom.femtosecond^-2 force unit:
	// 1 Da.Angstrom.fs^-2 = DaltonToKg kg . AngstromToMeter m / FemtosecondToSecond^2 s^2 = X newtons,
	// so 1 N = 1/X Da.Angstrom.fs^-2.
	NewtonToDaltonAngstromPerFemtosecond2 = 1.0 / (DaltonToKg * AngstromToMeter / (FemtosecondToSecond * FemtosecondToSecond))
)
