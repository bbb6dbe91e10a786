package engine

import (
	"github.com/lbt-cnrs/biospring/bioerr"
	"github.com/lbt-cnrs/biospring/forcefield"
)

// stericKernel is one steric mode's energy/force pair, closed over its own
// ε/σ combining rule (or ignoring it entirely, for the linear mode).
type stericKernel struct {
	energy      func(radiusI, radiusJ, epsilonI, epsilonJ, distance float32) float32
	forceModule func(radiusI, radiusJ, epsilonI, epsilonJ, distance float32) float32
}

// stericKernelFor resolves a configured steric mode name to its kernel.
// An unrecognized mode is a fatal configuration error.
func stericKernelFor(mode string) (stericKernel, error) {
	switch mode {
	case "linear":
		return stericKernel{
			energy:      func(ri, rj, _, _, d float32) float32 { return forcefield.StericEnergyLinear(ri, rj, d) },
			forceModule: func(ri, rj, _, _, d float32) float32 { return forcefield.StericForceModuleLinear(ri, rj, d) },
		}, nil
	case "lewitt":
		return stericKernel{energy: forcefield.StericEnergyLewitt, forceModule: forcefield.StericForceModuleLewitt}, nil
	case "zacharias":
		return stericKernel{energy: forcefield.StericEnergyZacharias, forceModule: forcefield.StericForceModuleZacharias}, nil
	case "amber":
		return stericKernel{energy: forcefield.StericEnergyAmber, forceModule: forcefield.StericForceModuleAmber}, nil
	}
	return stericKernel{}, fatal(bioerr.New(bioerr.KindConfiguration, "unknown steric mode %q", mode).WithStage("setup"))
}
