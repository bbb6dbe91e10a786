package forcefield

// SpringEnergy returns the Hookean potential energy, in kJ.mol-1, of a
// spring of the given stiffness and equilibrium length stretched to
// distance.
func SpringEnergy(distance, stiffness, equilibrium float32) float32 {
	d := distance - equilibrium
	return 0.5 * stiffness * d * d
}

// SpringForceModule returns the magnitude of the restoring force, in the
// engine's internal force units, of a spring of the given stiffness and
// equilibrium length stretched to distance.
func SpringForceModule(distance, stiffness, equilibrium float32) float32 {
	return stiffness * (distance - equilibrium) * SpringForceConvert
}
