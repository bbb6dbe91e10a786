package engine

import (
	"math"
	"time"

	"github.com/lbt-cnrs/biospring/bioerr"
	"github.com/lbt-cnrs/biospring/forcefield"
	"github.com/lbt-cnrs/biospring/rigidbody"
	"github.com/lbt-cnrs/biospring/topology"
	"github.com/lbt-cnrs/biospring/trajectory"
	"github.com/lbt-cnrs/biospring/vector"
)

// minimumPairDistance guards every pairwise kernel against a singular
// direction vector when two particles coincide.
const minimumPairDistance = 1e-6

// pairDirectionAndDistance returns the unit vector from a to b and the
// distance between them. Coincident points report a zero direction and
// zero distance, letting callers apply the distance guard uniformly.
func pairDirectionAndDistance(a, b vector.Vector3) (vector.Vector3, float32) {
	delta := b.Sub(a)
	d := delta.Len()
	if d < minimumPairDistance {
		return vector.Vector3{}, 0
	}
	return delta.Mul(1 / d), d
}

// ComputeStep executes one full simulation step per the engine's fixed
// ten-phase pipeline: interactor sync, bookkeeping, spring forces,
// per-particle force accumulation, constraints, rigid-body solve,
// integration, insertion-vector tracking, trajectory emission, and periodic
// logging.
func (e *Engine) ComputeStep() error {
	for e.paused {
		time.Sleep(time.Millisecond)
	}
	e.exchange.Publish(e.topology.Particles, e.interactors)
	e.applyExternalForces()

	e.energies = Energies{}
	e.step++
	if e.cfg.Simulation.NbSteps >= 0 && e.step >= e.cfg.Simulation.NbSteps {
		e.ended = true
	}

	e.applySpringForces()

	e.updateNeighborSearches()

	for _, body := range e.rigidBodies {
		body.Reset()
	}
	e.probe.force = vector.Vector3{}

	e.accumulateParticleForces()

	for _, c := range e.constraints {
		if err := c.Apply(); err != nil {
			return err
		}
	}

	if e.cfg.RigidBody.Enable && !e.cfg.RigidBody.EnableMonteCarlo && !e.cfg.RigidBody.EnableSampling {
		dt := float32(e.cfg.Simulation.Timestep)
		for _, body := range e.rigidBodies {
			body.Integrate(dt)
		}
	} else if e.cfg.RigidBody.Enable && e.cfg.RigidBody.EnableMonteCarlo {
		if err := e.stepMonteCarlo(); err != nil {
			return err
		}
	}

	if err := e.integratePositions(); err != nil {
		return err
	}

	if e.insertionTracker != nil {
		result, err := e.insertionTracker.Compute()
		if err != nil {
			return err
		}
		e.lastInsertion = result
	}

	if err := e.emitTrajectory(); err != nil {
		return err
	}

	if e.cfg.Simulation.SampleRate > 0 && e.step%e.cfg.Simulation.SampleRate == 0 {
		elapsed := time.Since(e.lastSampleTime).Seconds()
		if elapsed > 0 {
			e.frameRate = float64(e.cfg.Simulation.SampleRate) / elapsed
		}
		e.lastSampleTime = time.Now()
		logStepSummary(e.step, e.energies)
	}

	return nil
}

// applyExternalForces ingests forces staged by interactors during the
// publish above, each overwriting any prior external contribution for its
// particle.
func (e *Engine) applyExternalForces() {
	for id, force := range e.exchange.TakeExternalForces() {
		dyn, err := e.topology.Particles.Dynamics(id)
		if err != nil {
			continue
		}
		dyn.Force = dyn.Force.Add(force)
	}
}

// updateNeighborSearches rebuilds every active neighbor search against the
// current particle positions, serially and before any force loop reads it.
func (e *Engine) updateNeighborSearches() {
	if e.stericSearch != nil {
		e.stericSearch.Update()
	}
	if e.coulombSearch != nil {
		e.coulombSearch.Update()
	}
	if e.hydroSearch != nil {
		e.hydroSearch.Update()
	}
}

// applySpringForces applies every spring's Hookean restoring force to its
// two endpoints, unless both endpoints belong to the same active rigid
// body (in which case the spring is inert, per the data model's invariant).
func (e *Engine) applySpringForces() {
	if !e.cfg.Spring.Enable {
		return
	}
	scale := float32(e.cfg.Spring.Scale)
	e.topology.Springs.Each(func(s topology.Spring) {
		firstMeta, err1 := e.topology.Particles.Metadata(s.First)
		secondMeta, err2 := e.topology.Particles.Metadata(s.Second)
		if err1 == nil && err2 == nil && firstMeta.Rigid && secondMeta.Rigid && firstMeta.RigidBodyID == secondMeta.RigidBodyID {
			return
		}

		firstPos, err1 := e.topology.Particles.Position(s.First)
		secondPos, err2 := e.topology.Particles.Position(s.Second)
		if err1 != nil || err2 != nil {
			return
		}
		dir, d := pairDirectionAndDistance(firstPos.Vec, secondPos.Vec)
		if d == 0 {
			return
		}

		forceModule := forcefield.SpringForceModule(d, s.Stiffness, s.Equilibrium) * scale
		force := dir.Mul(forceModule)

		firstDyn, _ := e.topology.Particles.Dynamics(s.First)
		secondDyn, _ := e.topology.Particles.Dynamics(s.Second)
		firstDyn.Force = firstDyn.Force.Add(force)
		secondDyn.Force = secondDyn.Force.Sub(force)

		e.energies.Spring += forcefield.SpringEnergy(d, s.Stiffness, s.Equilibrium) * scale
	})
}

// accumulateParticleForces runs the per-dynamic-particle force
// accumulation phase of the pipeline, in the exact channel order the
// engine's per-step pipeline specifies.
func (e *Engine) accumulateParticleForces() {
	for i, p := range e.particles {
		if p.Metadata.Static {
			continue
		}

		if e.cfg.Coulomb.Enable && p.Physical.IsCharged() && e.coulombSearch != nil {
			e.accumulateCoulomb(i, p)
		}
		if e.cfg.PotentialGrid.Enable && e.potentialGrid != nil {
			e.accumulatePotentialGrid(p)
		}
		if e.cfg.DensityGrid.Enable && e.densityGrid != nil {
			e.accumulateDensityGrid(p)
		}
		if e.cfg.Steric.Enable && e.stericSearch != nil {
			e.accumulateSteric(i, p)
		}
		if e.cfg.Viscosity.Enable {
			p.Dynamics.Force = p.Dynamics.Force.Sub(p.Velocity.Vec.Mul(float32(e.cfg.Viscosity.Value)))
		}
		if e.probe.enable {
			e.accumulateProbeCoupling(p)
		}
		if e.cfg.Impala.Enable {
			e.accumulateImpala(p)
		}
		if e.cfg.RigidBody.Enable && p.Metadata.Rigid && !e.cfg.RigidBody.EnableMonteCarlo && !e.cfg.RigidBody.EnableSampling {
			if body, ok := e.rigidBodies[rigidbody.ID(p.Metadata.RigidBodyID)]; ok {
				body.Accumulate(rigidbody.Member{
					ID:       p.ID,
					Position: p.Position.Vec,
					Force:    p.Dynamics.Force,
					Mass:     p.Physical.Mass,
				})
			}
		}
		if e.cfg.Hydrophobicity.Enable && p.Physical.IsHydrophobic() && e.hydroSearch != nil {
			e.accumulateHydrophobic(i, p)
		}

		p.Dynamics.PreviousForce = p.Dynamics.Force
	}

	if e.probe.enable {
		e.integrateProbe()
	}
}

// halvedPairEnergy is added to a running total for a symmetric (full, not
// half) neighbor list: both directed visits of the pair contribute half the
// true pairwise energy each, so their sum recovers the pair's full energy
// exactly once.
func halvedPairEnergy(e float32) float32 { return 0.5 * e }

func (e *Engine) accumulateCoulomb(index int, p topology.ParticleView) {
	for _, j := range e.coulombSearch.Neighbors(index) {
		other := e.particles[j]
		dir, d := pairDirectionAndDistance(p.Position.Vec, other.Position.Vec)
		if d == 0 {
			continue
		}
		scale := float32(e.cfg.Coulomb.Scale)
		forceModule := forcefield.ElectrostaticForceModule(p.Physical.Charge, other.Physical.Charge, d, float32(e.cfg.Coulomb.Dielectric)) * scale
		p.Dynamics.Force = p.Dynamics.Force.Add(dir.Mul(forceModule))
		energy := forcefield.ElectrostaticEnergy(p.Physical.Charge, other.Physical.Charge, d, float32(e.cfg.Coulomb.Dielectric)) * scale
		e.energies.Electrostatic += halvedPairEnergy(energy)
	}
}

func (e *Engine) accumulatePotentialGrid(p topology.ParticleView) {
	cell, err := e.potentialGrid.AtPosition(p.Position.Vec)
	if err != nil {
		return
	}
	scale := float32(e.cfg.PotentialGrid.Scale)
	p.Dynamics.Force = p.Dynamics.Force.Add(cell.Vector.Mul(scale))
	e.energies.Electrostatic += cell.Scalar * p.Physical.Charge * float32(boltzmannKJPerMolK) * scale
}

func (e *Engine) accumulateDensityGrid(p topology.ParticleView) {
	cell, err := e.densityGrid.AtPosition(p.Position.Vec)
	if err != nil {
		return
	}
	p.Dynamics.Force = p.Dynamics.Force.Add(cell.Vector.Mul(float32(e.cfg.DensityGrid.Scale)))
}

func (e *Engine) accumulateSteric(index int, p topology.ParticleView) {
	for _, j := range e.stericSearch.Neighbors(index) {
		other := e.particles[j]
		dir, d := pairDirectionAndDistance(p.Position.Vec, other.Position.Vec)
		if d == 0 {
			continue
		}
		scale := float32(e.cfg.Steric.GridScale)
		forceModule := e.stericKernel.forceModule(p.Physical.Radius, other.Physical.Radius, p.Physical.Epsilon, other.Physical.Epsilon, d) * scale
		p.Dynamics.Force = p.Dynamics.Force.Sub(dir.Mul(forceModule))
		energy := e.stericKernel.energy(p.Physical.Radius, other.Physical.Radius, p.Physical.Epsilon, other.Physical.Epsilon, d) * scale
		e.energies.Steric += halvedPairEnergy(energy)
	}
}

func (e *Engine) accumulateHydrophobic(index int, p topology.ParticleView) {
	for _, j := range e.hydroSearch.Neighbors(index) {
		other := e.particles[j]
		if !other.Physical.IsHydrophobic() {
			continue
		}
		dir, d := pairDirectionAndDistance(p.Position.Vec, other.Position.Vec)
		if d == 0 {
			continue
		}
		scale := float32(e.cfg.Hydrophobicity.Scale)
		forceModule := forcefield.HydrophobicForceModule(p.Physical.Hydrophobicity, other.Physical.Hydrophobicity, d) * scale
		p.Dynamics.Force = p.Dynamics.Force.Add(dir.Mul(forceModule))
		energy := forcefield.HydrophobicEnergy(p.Physical.Hydrophobicity, other.Physical.Hydrophobicity, d) * scale
		e.energies.Hydrophobic += halvedPairEnergy(energy)
	}
}

func (e *Engine) accumulateImpala(p topology.ParticleView) {
	scale := float32(e.cfg.Impala.Scale)
	energy := forcefield.ImpalaEnergy(p.Position.Vec, p.Impala.SolventAccessibleSurface, p.Impala.TransferEnergyByAccessibleSurface,
		float32(e.cfg.Impala.UpperOffset), float32(e.cfg.Impala.LowerOffset), float32(e.cfg.Impala.UpperCurvature), float32(e.cfg.Impala.LowerCurvature))
	force := forcefield.ImpalaForceVector(p.Position.Vec, p.Impala.SolventAccessibleSurface, p.Impala.TransferEnergyByAccessibleSurface,
		float32(e.cfg.Impala.UpperOffset), float32(e.cfg.Impala.LowerOffset), float32(e.cfg.Impala.UpperCurvature), float32(e.cfg.Impala.LowerCurvature))
	p.Dynamics.Force = p.Dynamics.Force.Add(force.Mul(scale))
	e.energies.Impala += energy * scale
}

// accumulateProbeCoupling applies the symmetric Coulomb/steric coupling
// between a particle and the probe, adding the reaction force onto the
// probe's own accumulator (integrated once, after the particle loop).
func (e *Engine) accumulateProbeCoupling(p topology.ParticleView) {
	dir, d := pairDirectionAndDistance(p.Position.Vec, e.probe.position)
	if d == 0 {
		return
	}
	// total is positive when the pair repels: the Coulomb module is positive
	// for attraction, the steric one for repulsion.
	var total float32
	if e.probe.enableElectrostatic {
		total -= forcefield.ElectrostaticForceModule(p.Physical.Charge, e.probe.charge, d, float32(e.cfg.Coulomb.Dielectric))
	}
	if e.probe.enableSteric {
		total += e.stericKernel.forceModule(p.Physical.Radius, e.probe.radius, p.Physical.Epsilon, e.probe.epsilon, d)
	}
	force := dir.Mul(total)
	p.Dynamics.Force = p.Dynamics.Force.Sub(force)
	e.probe.force = e.probe.force.Add(force)
}

// integrateProbe Euler-integrates the free probe particle under the
// reaction force accumulated from every coupled particle this step.
func (e *Engine) integrateProbe() {
	dt := float32(e.cfg.Simulation.Timestep)
	if e.probe.mass <= 0 {
		return
	}
	e.probe.velocity = e.probe.velocity.Add(e.probe.force.Mul(dt / e.probe.mass))
	e.probe.position = e.probe.position.Add(e.probe.velocity.Mul(dt))
}

// integratePositions advances every dynamic particle: rigid members take
// their post-solve position/velocity from their rigid body, everything else
// Euler-integrates under its own accumulated force.
func (e *Engine) integratePositions() error {
	dt := float32(e.cfg.Simulation.Timestep)
	for _, p := range e.particles {
		if p.Metadata.Static {
			continue
		}

		if p.Metadata.Rigid && e.cfg.RigidBody.Enable {
			if body, ok := e.rigidBodies[rigidbody.ID(p.Metadata.RigidBodyID)]; ok {
				if pos, vel, ok := body.Propagate(p.ID); ok {
					p.Position.Vec = pos
					p.Velocity.Vec = vel
				}
			}
		} else {
			if p.Physical.Mass > 0 {
				p.Velocity.Vec = p.Velocity.Vec.Add(p.Dynamics.Force.Mul(dt / p.Physical.Mass))
			}
			p.Position.Vec = p.Position.Vec.Add(p.Velocity.Vec.Mul(dt))
		}

		if isNaNVector(p.Position.Vec) {
			return fatal(bioerr.New(bioerr.KindDomainPrecondition, "particle %d position diverged to NaN", p.ID).WithStage("integrate"))
		}

		speed := p.Velocity.Vec.Len()
		e.energies.Kinetic += 0.5 * p.Physical.Mass * speed * speed
		p.Dynamics.Force = vector.Vector3{}
	}
	return nil
}

func isNaNVector(v vector.Vector3) bool {
	return math.IsNaN(float64(v[0])) || math.IsNaN(float64(v[1])) || math.IsNaN(float64(v[2]))
}

// emitTrajectory builds the step's snapshot and dispatches it to every
// attached trajectory writer whose frequency divides the current step.
func (e *Engine) emitTrajectory() error {
	particles, springs := e.topology.ToSpringNetwork()
	snap := trajectory.Snapshot{
		Step:                   e.step,
		FrameRate:              e.frameRate,
		Particles:              particles,
		Springs:                springs,
		KineticEnergy:          float64(e.energies.Kinetic),
		SpringEnergy:           float64(e.energies.Spring),
		StericEnergy:           float64(e.energies.Steric),
		ElectrostaticEnergy:    float64(e.energies.Electrostatic),
		ImpalaEnergy:           float64(e.energies.Impala),
		SpringEnabled:          e.cfg.Spring.Enable,
		StericEnabled:          e.cfg.Steric.Enable,
		ElectrostaticEnabled:   e.cfg.Coulomb.Enable,
		ImpalaEnabled:          e.cfg.Impala.Enable,
		InsertionVectorEnabled: e.insertionTracker != nil,
	}
	if e.insertionTracker != nil {
		snap.InsertionAngle = float64(e.lastInsertion.AngleDegrees)
		snap.InsertionDepth = float64(e.lastInsertion.InsertionDepth)
	}
	return e.trajectories.WriteStep(e.step, snap)
}
