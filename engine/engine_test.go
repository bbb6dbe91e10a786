package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lbt-cnrs/biospring/config"
	"github.com/lbt-cnrs/biospring/topology"
	"github.com/lbt-cnrs/biospring/vector"
)

func baseConfig() *config.Config {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}
	return cfg
}

func addDynamicParticle(top *topology.Topology, x, y, z float32, mass, charge float32) topology.ParticleID {
	return top.Particles.Add(
		topology.Position{Vec: vector.New(x, y, z)},
		topology.Velocity{},
		topology.Physical{Mass: mass, Charge: charge, Radius: 1.0, Epsilon: 0.1},
		topology.Impala{},
		topology.Metadata{},
	)
}

func TestSetupRejectsUnknownStericMode(t *testing.T) {
	top := topology.NewTopology(0)
	addDynamicParticle(top, 0, 0, 0, 1, 0)

	cfg := baseConfig()
	cfg.Steric.Mode = "not-a-real-mode"

	e := New(top)
	if err := e.Setup(cfg); err == nil {
		t.Fatal("expected an error for an unrecognized steric mode")
	}
}

func TestComputeStepIntegratesASpringPairTowardEquilibrium(t *testing.T) {
	top := topology.NewTopology(0)
	a := addDynamicParticle(top, -5, 0, 0, 1, 0)
	b := addDynamicParticle(top, 5, 0, 0, 1, 0)
	if _, err := top.AddSpring(a, b, 2.0, 1.0); err != nil {
		t.Fatal(err)
	}

	cfg := baseConfig()
	cfg.Spring.Enable = true
	cfg.Steric.Enable = false
	cfg.Coulomb.Enable = false
	cfg.Hydrophobicity.Enable = false
	cfg.Impala.Enable = false
	cfg.Simulation.NbSteps = 5
	cfg.Simulation.Timestep = 0.01

	e := New(top)
	if err := e.Setup(cfg); err != nil {
		t.Fatal(err)
	}
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}

	posA, err := top.Particles.Position(a)
	if err != nil {
		t.Fatal(err)
	}
	posB, err := top.Particles.Position(b)
	if err != nil {
		t.Fatal(err)
	}
	distance := posB.Vec.Sub(posA.Vec).Len()
	if distance >= 10.0 {
		t.Fatalf("expected spring to pull the pair closer than their initial separation, got distance %v", distance)
	}
	if e.Step() != 5 {
		t.Fatalf("got step %d, want 5", e.Step())
	}
	if !e.IsEnd() {
		t.Fatal("expected engine to end after reaching nbsteps")
	}
}

func TestComputeStepLeavesStaticParticlesInPlace(t *testing.T) {
	top := topology.NewTopology(0)
	static := top.Particles.Add(
		topology.Position{Vec: vector.New(0, 0, 0)},
		topology.Velocity{},
		topology.Physical{Mass: 1.0, Charge: 1.0, Radius: 1.0},
		topology.Impala{},
		topology.Metadata{Static: true},
	)
	addDynamicParticle(top, 1, 0, 0, 1, -1.0)

	cfg := baseConfig()
	cfg.Coulomb.Enable = true
	cfg.Coulomb.Cutoff = 0.1
	cfg.Simulation.NbSteps = 3
	cfg.Simulation.Timestep = 0.01

	e := New(top)
	if err := e.Setup(cfg); err != nil {
		t.Fatal(err)
	}
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}

	pos, err := top.Particles.Position(static)
	if err != nil {
		t.Fatal(err)
	}
	if !vector.Equal(pos.Vec, vector.New(0, 0, 0)) {
		t.Fatalf("expected static particle to stay at origin, got %v", pos.Vec)
	}
}

func TestComputeStepEmitsCSVTrajectoryAtConfiguredFrequency(t *testing.T) {
	top := topology.NewTopology(0)
	a := addDynamicParticle(top, 0, 0, 0, 1, 0)
	b := addDynamicParticle(top, 3, 0, 0, 1, 0)
	if _, err := top.AddSpring(a, b, 2.0, 1.0); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "sample.csv")

	cfg := baseConfig()
	cfg.Spring.Enable = true
	cfg.CSVSampling.Enable = true
	cfg.CSVSampling.Path = path
	cfg.CSVSampling.Frequency = 1
	cfg.Simulation.NbSteps = 2
	cfg.Simulation.Timestep = 0.01

	e := New(top)
	if err := e.Setup(cfg); err != nil {
		t.Fatal(err)
	}
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("expected the CSV sampler to have written output")
	}
}
