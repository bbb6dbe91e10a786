package engine

import (
	"os"

	"github.com/gocarina/gocsv"

	"github.com/lbt-cnrs/biospring/bioerr"
	"github.com/lbt-cnrs/biospring/forcefield"
	"github.com/lbt-cnrs/biospring/rigidbody"
	"github.com/lbt-cnrs/biospring/vector"
)

// sweepCSVRecord is one insertion-angle sweep row, tagged for gocsv, mirroring
// trajectory's sampleRecord pattern.
type sweepCSVRecord struct {
	AngleDegrees float64 `csv:"AngleDegrees"`
	MinEnergy    float64 `csv:"MinEnergy"`
}

// RunImpalaSweep drives the IMPALA automatic insertion-angle sampling mode
// for one rigid body: it sweeps the body's orientation through a full turn
// about axis, recording at each orientation the minimum IMPALA energy seen
// across rotationsPerAngle random rolls, and writes one row per orientation
// to the configured CSV sampler. Other trajectory writers are silenced for
// the duration of the sweep, per the sampling mode's contract.
func (e *Engine) RunImpalaSweep(id rigidbody.ID, stepDegrees float64, rotationsPerAngle int) ([]rigidbody.SweepRow, error) {
	body, ok := e.rigidBodies[id]
	if !ok {
		return nil, bioerr.New(bioerr.KindDomainPrecondition, "no rigid body %d registered for insertion-angle sampling", id)
	}
	members := e.rigidMembers[id]

	axis := vector.New(0, 0, 1)
	if e.insertionTracker != nil {
		if result, err := e.insertionTracker.Compute(); err == nil {
			axis = vector.Normalize(result.Vector)
		}
	}

	sampler := e.monteCarlo
	if sampler == nil {
		sampler = rigidbody.NewMonteCarloSampler(0, float32(e.cfg.RigidBody.MonteCarloRotationNorm), 1, 1)
	}

	energyFn := func() float32 {
		var total float32
		for _, pid := range members {
			pos, _, ok := body.Propagate(pid)
			if !ok {
				continue
			}
			impala, err := e.topology.Particles.Impala(pid)
			if err != nil {
				continue
			}
			total += forcefield.ImpalaEnergy(pos, impala.SolventAccessibleSurface, impala.TransferEnergyByAccessibleSurface,
				float32(e.cfg.Impala.UpperOffset), float32(e.cfg.Impala.LowerOffset), float32(e.cfg.Impala.UpperCurvature), float32(e.cfg.Impala.LowerCurvature))
		}
		return total * float32(e.cfg.Impala.Scale)
	}

	rows := rigidbody.Sweep(body, axis, stepDegrees, rotationsPerAngle, sampler, energyFn)
	if err := e.writeSweepCSV(rows); err != nil {
		return rows, err
	}
	return rows, nil
}

// writeSweepCSV creates (or truncates) the configured CSV sampler path and
// writes a header plus one row per swept orientation, independent of the regular per-step trajectory.Manager dispatch
// (which is not driven during a sampling run).
func (e *Engine) writeSweepCSV(rows []rigidbody.SweepRow) error {
	if !e.cfg.CSVSampling.Enable {
		return nil
	}
	f, err := os.Create(e.cfg.CSVSampling.Path)
	if err != nil {
		return bioerr.Wrap(bioerr.KindResource, err, "opening CSV sampling file %q", e.cfg.CSVSampling.Path)
	}
	defer f.Close()

	records := make([]sweepCSVRecord, len(rows))
	for i, row := range rows {
		records[i] = sweepCSVRecord{AngleDegrees: row.AngleDegrees, MinEnergy: float64(row.MinEnergy)}
	}
	if err := gocsv.Marshal(records, f); err != nil {
		return bioerr.Wrap(bioerr.KindResource, err, "writing insertion-angle sweep CSV")
	}
	return nil
}
