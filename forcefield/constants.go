// Package forcefield implements the pairwise and grid-sampled energy/force
// kernels: Hookean spring, Coulomb electrostatic, steric repulsion (linear
// and three Lennard-Jones 8-6 variants), IMPALA membrane potential, and
// hydrophobic coupling. Every kernel is a pure function returning an energy
// in kJ.mol-1 or a force in the engine's internal Dalton.Angstrom.
// femtosecond^-2 unit system.
package forcefield

import (
	"math"

	"github.com/lbt-cnrs/biospring/units"
)

const (
	// Pi is used directly by the electrostatic force kernel rather than
	// math.Pi so the formula reads the same as the energy literature.
	Pi = math.Pi

	// MinimalElectrostaticDistance is the distance, in Angstrom, below
	// which the Coulomb kernel returns zero energy and force rather than
	// diverging.
	MinimalElectrostaticDistance = 1e-3

	// MinimalStericDistance is the distance, in Angstrom, below which the
	// steric (van der Waals) kernels return zero energy and force rather
	// than diverging.
	MinimalStericDistance = 1e-3

	// energyGradientToInternalForce converts a derivative of a kJ.mol-1
	// energy with respect to an Angstrom distance into the engine's
	// internal Dalton.Angstrom.femtosecond^-2 force unit. Shared by every
	// kernel whose force is obtained by differentiating a molar energy:
	// 1 kJ.mol-1.A-1 = (1000/Avogadro) J per particle per Angstrom
	//                = (1000/(Avogadro*AngstromToMeter)) newton.
	energyGradientToInternalForce = (1000.0 / (units.AvogadroNumber * units.AngstromToMeter)) * units.NewtonToDaltonAngstromPerFemtosecond2

	// SpringForceConvert scales a raw stiffness*distance spring force term
	// into the internal force unit system.
	SpringForceConvert = energyGradientToInternalForce

	// ImpalaForceConvert scales a raw kJ.mol-1 IMPALA force derivative
	// into the internal force unit system.
	ImpalaForceConvert = energyGradientToInternalForce

	// electrostaticForceConvert scales the reduced-units Coulomb force
	// term -(q1*q2)/(4*pi*dielectric*distance^2), with charges in electron
	// units and distance in Angstrom, into the internal force unit system.
	electrostaticForceConvert = units.ElementaryChargeCoulomb * units.ElementaryChargeCoulomb * units.CoulombConstant /
		(units.AngstromToMeter * units.AngstromToMeter) * units.NewtonToDaltonAngstromPerFemtosecond2
)
