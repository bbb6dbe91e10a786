// Package interactor specifies the contract between the simulation engine
// and an external steering thread: a producer of per-particle external
// forces and a consumer of the engine's per-step state snapshot. The wire
// encoding used to talk to any concrete interactor (MDDriver, a custom
// socket protocol, ...) is deliberately out of scope; only the
// synchronization contract is specified here.
package interactor

import (
	"sync"

	"github.com/lbt-cnrs/biospring/topology"
	"github.com/lbt-cnrs/biospring/vector"
)

// Interactor is an external steering thread's hook into the engine. The
// engine calls SyncSystemStateData once per step, with its state lock
// held; an interactor must not read or write engine state outside of that
// call.
type Interactor interface {
	// StartInteractionThread begins the interactor's background thread,
	// after one synchronized setup exchange.
	StartInteractionThread() error
	// ContinueInteractionThread is polled by the interactor's own thread
	// loop to know when to keep running.
	ContinueInteractionThread() bool
	// SyncSystemStateData is called by the engine inside a step, under
	// the shared state mutex: the interactor may read the current state
	// snapshot and stage external forces for the next step.
	SyncSystemStateData(state *State)
	// StopInteractionThread cooperatively shuts the interactor down.
	StopInteractionThread()
}

// State is the mutex-guarded exchange point between the engine and every
// attached interactor: a read-only snapshot of per-particle positions and
// forces, plus a write side where interactors stage external forces for
// the engine's next step.
type State struct {
	mu sync.Mutex

	positions map[topology.ParticleID]vector.Vector3
	forces    map[topology.ParticleID]vector.Vector3

	externalForces map[topology.ParticleID]vector.Vector3
}

// NewState builds an empty exchange state.
func NewState() *State {
	return &State{
		positions:      make(map[topology.ParticleID]vector.Vector3),
		forces:         make(map[topology.ParticleID]vector.Vector3),
		externalForces: make(map[topology.ParticleID]vector.Vector3),
	}
}

// Publish replaces the snapshot with the engine's current per-particle
// positions and forces, then calls every interactor's SyncSystemStateData
// while holding the lock, serializing the whole exchange.
func (s *State) Publish(particles *topology.ParticleCollection, interactors []Interactor) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.positions {
		delete(s.positions, id)
	}
	for id := range s.forces {
		delete(s.forces, id)
	}
	particles.Each(func(v topology.ParticleView) {
		s.positions[v.ID] = v.Position.Vec
		s.forces[v.ID] = v.Dynamics.Force
	})

	for _, it := range interactors {
		it.SyncSystemStateData(s)
	}
}

// Position returns the published position of the given particle, and
// whether it was present in the snapshot. Must be called with the state
// locked (i.e. from within an interactor's SyncSystemStateData).
func (s *State) Position(id topology.ParticleID) (vector.Vector3, bool) {
	p, ok := s.positions[id]
	return p, ok
}

// Force returns the published force of the given particle, and whether it
// was present in the snapshot. Must be called with the state locked.
func (s *State) Force(id topology.ParticleID) (vector.Vector3, bool) {
	f, ok := s.forces[id]
	return f, ok
}

// StageExternalForce records an external force for a particle, to be
// applied by the engine at the start of its next step. A later call for
// the same particle in the same exchange overwrites the prior value.
func (s *State) StageExternalForce(id topology.ParticleID, force vector.Vector3) {
	s.externalForces[id] = force
}

// TakeExternalForces returns and clears every force staged by interactors
// since the last call, for the engine to apply and then discard.
func (s *State) TakeExternalForces() map[topology.ParticleID]vector.Vector3 {
	s.mu.Lock()
	defer s.mu.Unlock()
	taken := s.externalForces
	s.externalForces = make(map[topology.ParticleID]vector.Vector3)
	return taken
}
