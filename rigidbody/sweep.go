package rigidbody

import (
	"gonum.org/v1/gonum/floats"

	"github.com/lbt-cnrs/biospring/vector"
)

// SweepRow is one orientation's result from an IMPALA automatic
// insertion-angle sweep: the angle swept to (degrees) and the minimum
// IMPALA energy observed across the rotations sampled at that angle.
type SweepRow struct {
	AngleDegrees float64
	MinEnergy    float32
}

// EnergyFunc evaluates total IMPALA energy for the system in its current
// orientation.
type EnergyFunc func() float32

// Sweep rotates body about axis through a full turn in stepDegrees
// increments; at each angle it additionally samples rotationsPerAngle
// random rolls about the insertion vector itself (via the supplied
// sampler) and records the minimum energy observed, then restores the
// body to its pre-sweep orientation.
func Sweep(body *Body, axis vector.Vector3, stepDegrees float64, rotationsPerAngle int, sampler *MonteCarloSampler, energy EnergyFunc) []SweepRow {
	saved := body.Orientation()
	defer body.SetOrientation(saved)

	if rotationsPerAngle < 1 {
		rotationsPerAngle = 1
	}

	var rows []SweepRow
	for angle := 0.0; angle < 360.0; angle += stepDegrees {
		body.SetOrientation(saved)
		body.Rotate(axis, float32(angle*degreesToRadians))

		samples := make([]float64, 0, rotationsPerAngle)
		rollSaved := body.Orientation()
		for i := 0; i < rotationsPerAngle; i++ {
			body.SetOrientation(rollSaved)
			if sampler != nil {
				roll := sampler.randomUnitVector()
				body.Rotate(roll, float32(sampler.angle.Rand()))
			}
			samples = append(samples, float64(energy()))
		}

		rows = append(rows, SweepRow{AngleDegrees: angle, MinEnergy: float32(floats.Min(samples))})
	}
	return rows
}

const degreesToRadians = 3.14159265358979323846 / 180.0
