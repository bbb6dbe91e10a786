package insertion

import (
	"math"
	"testing"

	"github.com/lbt-cnrs/biospring/topology"
	"github.com/lbt-cnrs/biospring/vector"
)

func addParticle(t *testing.T, particles *topology.ParticleCollection, x, y, z float32) topology.ParticleID {
	t.Helper()
	return particles.Add(
		topology.Position{Vec: vector.New(x, y, z)},
		topology.Velocity{},
		topology.Physical{Mass: 1.0},
		topology.Impala{},
		topology.Metadata{},
	)
}

func TestComputeVerticalSegmentHasZeroTiltAngle(t *testing.T) {
	particles := topology.NewParticleCollection()
	a := addParticle(t, particles, 0, 0, -5)
	b := addParticle(t, particles, 0, 0, 5)

	tracker := NewTracker(particles, a, b)
	result, err := tracker.Compute()
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(float64(result.AngleDegrees)) > 1e-3 {
		t.Fatalf("got tilt angle %v, want ~0 for a membrane-normal-aligned segment", result.AngleDegrees)
	}
}

func TestComputeHorizontalSegmentHasNinetyDegreeTiltAngle(t *testing.T) {
	particles := topology.NewParticleCollection()
	a := addParticle(t, particles, -5, 0, 0)
	b := addParticle(t, particles, 5, 0, 0)

	tracker := NewTracker(particles, a, b)
	result, err := tracker.Compute()
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(float64(result.AngleDegrees-90)) > 1e-3 && math.Abs(float64(result.AngleDegrees+90)) > 1e-3 {
		t.Fatalf("got tilt angle %v, want +-90 for a membrane-plane-aligned segment", result.AngleDegrees)
	}
}

func TestComputeReportsCentroidDepth(t *testing.T) {
	particles := topology.NewParticleCollection()
	a := addParticle(t, particles, 0, 0, 2)
	b := addParticle(t, particles, 0, 0, 8)

	tracker := NewTracker(particles, a, b)
	result, err := tracker.Compute()
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(float64(result.InsertionDepth-5)) > 1e-3 {
		t.Fatalf("got insertion depth %v, want 5 (centroid of z=2 and z=8)", result.InsertionDepth)
	}
}

func TestComputeUnknownParticleFails(t *testing.T) {
	particles := topology.NewParticleCollection()
	a := addParticle(t, particles, 0, 0, 0)

	tracker := NewTracker(particles, a, 99)
	if _, err := tracker.Compute(); err == nil {
		t.Fatal("expected error referencing an unknown particle")
	}
}
