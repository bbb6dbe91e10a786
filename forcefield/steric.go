package forcefield

import "math"

// stericLinearStiffness is the fixed stiffness used by the linear steric
// kernel; unlike the spring kernel, steric stiffness is not a per-pair
// configurable value.
const stericLinearStiffness = 100.0

// StericEnergyLinear returns the steric repulsion energy, in kJ.mol-1,
// between two particles of the given radii a distance apart, modeled as a
// half-Hookean potential active only when the particles overlap (distance
// below the sum of their radii).
func StericEnergyLinear(radiusI, radiusJ, distance float32) float32 {
	equilibrium := radiusI + radiusJ
	d := distance - equilibrium
	if d >= 0 {
		return 0.0
	}
	return 0.5 * stericLinearStiffness * d * d
}

// StericForceModuleLinear returns the magnitude of the steric repulsion
// force, in the engine's internal force units, between two particles of
// the given radii a distance apart.
func StericForceModuleLinear(radiusI, radiusJ, distance float32) float32 {
	equilibrium := radiusI + radiusJ
	d := distance - equilibrium
	if d >= 0 {
		return 0.0
	}
	return -stericLinearStiffness * d * SpringForceConvert
}

// lennardJones86 evaluates the 8-6 Lennard-Jones potential
// V(r) = epsilon * ((sigma/r)^8 - 2*(sigma/r)^6) and its radial derivative,
// given combined well depth epsilon, combined contact radius sigma, and
// distance r.
func lennardJones86(epsilon, sigma, distance float32) (energy, dVdr float32) {
	ratio := float64(sigma / distance)
	p6 := math.Pow(ratio, 6)
	p8 := math.Pow(ratio, 8)
	energy = epsilon * float32(p8-2*p6)

	// d/dr [ (sigma/r)^n ] = -n * sigma^n / r^(n+1) = -(n/r) * (sigma/r)^n
	dVdr = epsilon * float32(-8.0/float64(distance)*p8+2*6.0/float64(distance)*p6)
	return energy, dVdr
}

// stericLennardJones86 evaluates a combined-parameter 8-6 Lennard-Jones
// steric interaction between two particles, returning its energy (kJ.mol-1)
// and the magnitude of its force (internal force units), given the
// combining rules used to derive the pairwise epsilon and sigma.
func stericLennardJones86(radiusI, radiusJ, epsilonI, epsilonJ, distance float32, combineEpsilon, combineRadius CombinationRule) (energy, forceModule float32) {
	if distance < MinimalStericDistance {
		return 0.0, 0.0
	}
	epsilon := combineEpsilon(epsilonI, epsilonJ)
	sigma := combineRadius(radiusI, radiusJ)
	energy, dVdr := lennardJones86(epsilon, sigma, distance)
	return energy, -dVdr * SpringForceConvert
}

// StericEnergyLewitt returns the Lennard-Jones 8-6 steric energy, in
// kJ.mol-1, combining epsilon via Lorentz-Berthelot and radius via
// Good-Hope.
func StericEnergyLewitt(radiusI, radiusJ, epsilonI, epsilonJ, distance float32) float32 {
	energy, _ := stericLennardJones86(radiusI, radiusJ, epsilonI, epsilonJ, distance, LorentzBerthelotEpsilon, GoodHopeRadius)
	return energy
}

// StericForceModuleLewitt returns the magnitude of the Lennard-Jones 8-6
// steric force, in the engine's internal force units, combining epsilon via
// Lorentz-Berthelot and radius via Good-Hope.
func StericForceModuleLewitt(radiusI, radiusJ, epsilonI, epsilonJ, distance float32) float32 {
	_, forceModule := stericLennardJones86(radiusI, radiusJ, epsilonI, epsilonJ, distance, LorentzBerthelotEpsilon, GoodHopeRadius)
	return forceModule
}

// StericEnergyZacharias returns the Lennard-Jones 8-6 steric energy, in
// kJ.mol-1, combining both epsilon and radius by plain product.
func StericEnergyZacharias(radiusI, radiusJ, epsilonI, epsilonJ, distance float32) float32 {
	energy, _ := stericLennardJones86(radiusI, radiusJ, epsilonI, epsilonJ, distance, ZachariasEpsilon, ZachariasRadius)
	return energy
}

// StericForceModuleZacharias returns the magnitude of the Lennard-Jones 8-6
// steric force, in the engine's internal force units, combining both
// epsilon and radius by plain product.
func StericForceModuleZacharias(radiusI, radiusJ, epsilonI, epsilonJ, distance float32) float32 {
	_, forceModule := stericLennardJones86(radiusI, radiusJ, epsilonI, epsilonJ, distance, ZachariasEpsilon, ZachariasRadius)
	return forceModule
}

// StericEnergyAmber returns the Lennard-Jones 8-6 steric energy, in
// kJ.mol-1, combining both epsilon and radius by arithmetic mean.
func StericEnergyAmber(radiusI, radiusJ, epsilonI, epsilonJ, distance float32) float32 {
	energy, _ := stericLennardJones86(radiusI, radiusJ, epsilonI, epsilonJ, distance, AmberEpsilon, AmberRadius)
	return energy
}

// StericForceModuleAmber returns the magnitude of the Lennard-Jones 8-6
// steric force, in the engine's internal force units, combining both
// epsilon and radius by arithmetic mean.
func StericForceModuleAmber(radiusI, radiusJ, epsilonI, epsilonJ, distance float32) float32 {
	_, forceModule := stericLennardJones86(radiusI, radiusJ, epsilonI, epsilonJ, distance, AmberEpsilon, AmberRadius)
	return forceModule
}
