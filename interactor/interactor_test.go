package interactor

import (
	"testing"

	"github.com/lbt-cnrs/biospring/topology"
	"github.com/lbt-cnrs/biospring/vector"
)

type recordingInteractor struct {
	started, stopped bool
	seenPosition     vector.Vector3
	seenOK           bool
}

func (r *recordingInteractor) StartInteractionThread() error { r.started = true; return nil }
func (r *recordingInteractor) ContinueInteractionThread() bool { return !r.stopped }
func (r *recordingInteractor) StopInteractionThread()          { r.stopped = true }
func (r *recordingInteractor) SyncSystemStateData(state *State) {
	r.seenPosition, r.seenOK = state.Position(0)
	state.StageExternalForce(0, vector.New(1, 2, 3))
}

func TestPublishDeliversSnapshotToInteractors(t *testing.T) {
	particles := topology.NewParticleCollection()
	particles.Add(
		topology.Position{Vec: vector.New(5, 6, 7)},
		topology.Velocity{},
		topology.Physical{Mass: 1.0},
		topology.Impala{},
		topology.Metadata{},
	)

	state := NewState()
	rec := &recordingInteractor{}
	state.Publish(particles, []Interactor{rec})

	if !rec.seenOK {
		t.Fatal("expected interactor to see the published particle")
	}
	if !vector.Equal(rec.seenPosition, vector.New(5, 6, 7)) {
		t.Fatalf("got position %v, want (5,6,7)", rec.seenPosition)
	}
}

func TestTakeExternalForcesDrainsStagedForces(t *testing.T) {
	particles := topology.NewParticleCollection()
	particles.Add(
		topology.Position{Vec: vector.New(0, 0, 0)},
		topology.Velocity{},
		topology.Physical{Mass: 1.0},
		topology.Impala{},
		topology.Metadata{},
	)

	state := NewState()
	rec := &recordingInteractor{}
	state.Publish(particles, []Interactor{rec})

	forces := state.TakeExternalForces()
	if len(forces) != 1 {
		t.Fatalf("got %d staged forces, want 1", len(forces))
	}
	if !vector.Equal(forces[0], vector.New(1, 2, 3)) {
		t.Fatalf("got force %v, want (1,2,3)", forces[0])
	}

	drained := state.TakeExternalForces()
	if len(drained) != 0 {
		t.Fatal("expected staged forces to be cleared after TakeExternalForces")
	}
}
