// Package engine implements the simulation engine: the per-step force-field
// pipeline, neighbor-list maintenance, rigid-body and Monte-Carlo solving,
// and trajectory/interactor dispatch, wired over the build-time topology and
// force-field packages.
package engine

import (
	"log/slog"
	"time"

	"github.com/lbt-cnrs/biospring/bioerr"
	"github.com/lbt-cnrs/biospring/config"
	"github.com/lbt-cnrs/biospring/constraint"
	"github.com/lbt-cnrs/biospring/grid"
	"github.com/lbt-cnrs/biospring/insertion"
	"github.com/lbt-cnrs/biospring/interactor"
	"github.com/lbt-cnrs/biospring/nsearch"
	"github.com/lbt-cnrs/biospring/rigidbody"
	"github.com/lbt-cnrs/biospring/topology"
	"github.com/lbt-cnrs/biospring/trajectory"
	"github.com/lbt-cnrs/biospring/units"
	"github.com/lbt-cnrs/biospring/vector"
)

// boltzmannKJPerMolK is Boltzmann's constant in kJ.mol-1.K-1, used to
// convert a grid's scalar potential into an energy contribution.
const boltzmannKJPerMolK = units.BoltzmannJPerK * units.AvogadroNumber * units.JouleToKJoule

// logger is the package-level structured logger every engine logs
// through. Override with SetLogger.
var logger = slog.Default()

// SetLogger overrides the package-level logger used for step summaries
// and fatal-error diagnostics.
func SetLogger(l *slog.Logger) { logger = l }

// fatal logs a fatal condition at slog.Error before returning it. Logging
// is a side effect recorded for observability; the decision to exit the
// process is left to the caller (a non-goal here), so this never calls
// os.Exit.
func fatal(err *bioerr.FatalError) *bioerr.FatalError {
	logger.Error("fatal error",
		slog.Group("error",
			"stage", err.Stage,
			"kind", err.Kind.String(),
			"context", err.Context,
		))
	return err
}

// Energies holds one step's per-channel energy totals.
type Energies struct {
	Spring        float32
	Steric        float32
	Electrostatic float32
	Impala        float32
	Hydrophobic   float32
	Kinetic       float32
}

// probe is the optional free particle used to sample interaction energies at
// a point without being part of the topology itself.
type probe struct {
	enable              bool
	enableElectrostatic bool
	enableSteric        bool
	position            vector.Vector3
	velocity            vector.Vector3
	mass                float32
	epsilon             float32
	radius              float32
	charge              float32
	force               vector.Vector3
}

// Engine owns the runtime particle/spring arrays and every subsystem that
// operates over them: neighbor searchers, grids, the rigid-body registry,
// constraints, the insertion-vector observer, attached interactors, and the
// trajectory manager.
type Engine struct {
	cfg      *config.Config
	topology *topology.Topology

	particles []topology.ParticleView

	stericKernel  stericKernel
	stericSearch  *nsearch.Dynamic[topology.ParticleView]
	coulombSearch *nsearch.Dynamic[topology.ParticleView]
	hydroSearch   *nsearch.Dynamic[topology.ParticleView]

	potentialGrid *grid.PotentialGrid
	densityGrid   *grid.PotentialGrid

	probe probe

	rigidBodies  map[rigidbody.ID]*rigidbody.Body
	rigidMembers map[rigidbody.ID][]topology.ParticleID
	monteCarlo   *rigidbody.MonteCarloSampler

	constraints []*constraint.Constraint

	insertionTracker *insertion.Tracker
	lastInsertion    insertion.Result

	interactors []interactor.Interactor
	exchange    *interactor.State

	trajectories *trajectory.Manager

	step     int
	paused   bool
	ended    bool
	energies Energies

	frameRate      float64
	lastSampleTime time.Time
}

// New builds an engine over the given run-time topology, without yet
// validating or wiring any configured subsystem; call Setup before Run.
func New(top *topology.Topology) *Engine {
	return &Engine{
		topology:       top,
		rigidBodies:    make(map[rigidbody.ID]*rigidbody.Body),
		rigidMembers:   make(map[rigidbody.ID][]topology.ParticleID),
		exchange:       interactor.NewState(),
		trajectories:   trajectory.NewManager(),
		lastSampleTime: time.Now(),
	}
}

// Setup validates the configuration, instantiates the force field matching
// the configured steric mode, allocates neighbor searchers with the
// configured cutoffs, groups particles into rigid bodies, and builds a
// Monte-Carlo sampler if configured, and opens the PDB and CSV trajectory
// writers enabled in configuration. The XTC writer, interactors and
// constraints are attached separately via the Attach* methods.
// AttachPotentialGrid/AttachDensityGrid must be called before Setup if the
// corresponding grid force is enabled in configuration: Setup treats a
// grid force enabled without a grid attached as a fatal resource error,
// since parsing the grid's source file is itself out of scope.
func (e *Engine) Setup(cfg *config.Config) error {
	e.cfg = cfg

	kernel, err := stericKernelFor(cfg.Steric.Mode)
	if err != nil {
		return err
	}
	e.stericKernel = kernel

	e.particles = make([]topology.ParticleView, 0, e.topology.Particles.Len())
	e.topology.Particles.Each(func(v topology.ParticleView) { e.particles = append(e.particles, v) })

	if cfg.Steric.Enable && len(e.particles) > 0 {
		s, err := nsearch.NewDynamic(e.particles, float32(cfg.Steric.Cutoff))
		if err != nil {
			return fatal(bioerr.Wrap(bioerr.KindDomainPrecondition, err, "building steric neighbor search").WithStage("setup"))
		}
		e.stericSearch = s
	}
	if cfg.Coulomb.Enable && len(e.particles) > 0 {
		s, err := nsearch.NewDynamic(e.particles, float32(cfg.Coulomb.Cutoff))
		if err != nil {
			return fatal(bioerr.Wrap(bioerr.KindDomainPrecondition, err, "building electrostatic neighbor search").WithStage("setup"))
		}
		e.coulombSearch = s
	}
	if cfg.Hydrophobicity.Enable && len(e.particles) > 0 {
		s, err := nsearch.NewDynamic(e.particles, float32(cfg.Hydrophobicity.Cutoff))
		if err != nil {
			return fatal(bioerr.Wrap(bioerr.KindDomainPrecondition, err, "building hydrophobic neighbor search").WithStage("setup"))
		}
		e.hydroSearch = s
	}

	if (cfg.PotentialGrid.Enable && e.potentialGrid == nil) || (cfg.DensityGrid.Enable && e.densityGrid == nil) {
		return fatal(bioerr.New(bioerr.KindResource, "grid-based force enabled in configuration but no grid was attached").WithStage("setup"))
	}

	if err := e.setupRigidBodies(); err != nil {
		return err
	}
	if cfg.RigidBody.EnableMonteCarlo {
		e.monteCarlo = rigidbody.NewMonteCarloSampler(
			float32(cfg.RigidBody.MonteCarloTranslationNorm),
			float32(cfg.RigidBody.MonteCarloRotationNorm),
			float32(cfg.RigidBody.MonteCarloTemperature),
			1,
		)
	}

	e.probe = probe{
		enable:              cfg.Probe.Enable,
		enableElectrostatic: cfg.Probe.EnableElectrostatic,
		enableSteric:        cfg.Probe.EnableSteric,
		position:            vector.New(float32(cfg.Probe.X), float32(cfg.Probe.Y), float32(cfg.Probe.Z)),
		mass:                float32(cfg.Probe.Mass),
		epsilon:             float32(cfg.Probe.Epsilon),
		radius:              float32(cfg.Probe.Radius),
		charge:              float32(cfg.Probe.Charge),
	}

	if cfg.PDBTrajectory.Enable {
		w := trajectory.NewPDBWriter(cfg.PDBTrajectory.Path, cfg.PDBTrajectory.Frequency)
		if err := w.Open(); err != nil {
			return err
		}
		e.trajectories.Add(w)
	}
	if cfg.CSVSampling.Enable {
		w := trajectory.NewCSVWriter(cfg.CSVSampling.Path, cfg.CSVSampling.Frequency)
		if err := w.Open(); err != nil {
			return err
		}
		e.trajectories.Add(w)
	}
	// XTC requires an injected Encoder (see AttachXTCWriter); the engine
	// does not build one itself, since the frame codec is out of scope.

	return nil
}

// setupRigidBodies groups particles flagged Metadata.Rigid by their
// Metadata.RigidBodyID (0 included) into rigidbody.Body instances.
func (e *Engine) setupRigidBodies() error {
	if !e.cfg.RigidBody.Enable {
		return nil
	}
	groups := make(map[rigidbody.ID][]rigidbody.Member)
	e.topology.Particles.Each(func(v topology.ParticleView) {
		if !v.Metadata.Rigid {
			return
		}
		id := rigidbody.ID(v.Metadata.RigidBodyID)
		groups[id] = append(groups[id], rigidbody.Member{
			ID:       v.ID,
			Position: v.Position.Vec,
			Velocity: v.Velocity.Vec,
			Mass:     v.Physical.Mass,
		})
		e.rigidMembers[id] = append(e.rigidMembers[id], v.ID)
	})
	for id, members := range groups {
		body, err := rigidbody.New(id, members)
		if err != nil {
			return err
		}
		e.rigidBodies[id] = body
	}
	return nil
}

// AttachPotentialGrid wires the electrostatic potential/gradient field.
func (e *Engine) AttachPotentialGrid(g *grid.PotentialGrid) { e.potentialGrid = g }

// AttachDensityGrid wires the density gradient field.
func (e *Engine) AttachDensityGrid(g *grid.PotentialGrid) { e.densityGrid = g }

// AttachXTCWriter adds an XTC trajectory writer using the given frame
// encoder, if XTC output is enabled in configuration.
func (e *Engine) AttachXTCWriter(encoder trajectory.Encoder) error {
	if !e.cfg.XTCTrajectory.Enable {
		return nil
	}
	w := trajectory.NewXTCWriter(e.cfg.XTCTrajectory.Path, e.cfg.XTCTrajectory.Frequency, encoder)
	if err := w.Open(); err != nil {
		return err
	}
	e.trajectories.Add(w)
	return nil
}

// AttachInteractor registers an external steering thread.
func (e *Engine) AttachInteractor(it interactor.Interactor) { e.interactors = append(e.interactors, it) }

// AttachConstraint registers a Selection-to-Selection constraint.
func (e *Engine) AttachConstraint(c *constraint.Constraint) { e.constraints = append(e.constraints, c) }

// SetInsertionVector enables per-step insertion-vector tracking between two
// particles.
func (e *Engine) SetInsertionVector(first, second topology.ParticleID) {
	e.insertionTracker = insertion.NewTracker(e.topology.Particles, first, second)
}

// SetPause sets the cooperative pause flag checked at the top of every step.
func (e *Engine) SetPause(pause bool) { e.paused = pause }

// GetPause reports the current pause flag.
func (e *Engine) GetPause() bool { return e.paused }

// SetEnd sets the cooperative termination flag.
func (e *Engine) SetEnd(end bool) { e.ended = end }

// IsEnd reports whether the step loop should stop.
func (e *Engine) IsEnd() bool { return e.ended }

// Energies returns the most recently computed per-channel energy totals.
func (e *Engine) Energies() Energies { return e.energies }

// Step returns the current step counter.
func (e *Engine) Step() int { return e.step }

// Run executes ComputeStep until IsEnd reports true.
func (e *Engine) Run() error {
	for !e.IsEnd() {
		if err := e.ComputeStep(); err != nil {
			return err
		}
	}
	return nil
}

// Close releases every attached trajectory writer's resources.
func (e *Engine) Close() error { return e.trajectories.Close() }

func logStepSummary(step int, e Energies) {
	logger.Info("step summary",
		slog.Group("step",
			"stage", "log",
			"step", step,
			"component", "energies",
			"spring", e.Spring,
			"steric", e.Steric,
			"electrostatic", e.Electrostatic,
			"impala", e.Impala,
			"hydrophobic", e.Hydrophobic,
			"kinetic", e.Kinetic,
		))
}
