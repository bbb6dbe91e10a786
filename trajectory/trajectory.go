// Package trajectory dispatches per-step simulation output to one or more
// format-specific writers behind a common contract. The writers in this
// package handle the straightforward text formats (PDB, CSV) directly;
// binary formats that require an external compression codec (XTC) accept
// an injected Encoder instead of reimplementing the codec.
package trajectory

import "github.com/lbt-cnrs/biospring/topology"

// Snapshot is the per-step system state a writer needs: the flattened
// particle/spring arrays plus the scalar energies and counters the engine
// tracks over the course of a run.
type Snapshot struct {
	Step       int
	FrameRate  float64
	Particles  []topology.RunTimeParticle
	Springs    []topology.RunTimeSpring

	KineticEnergy       float64
	SpringEnergy        float64
	StericEnergy        float64
	ElectrostaticEnergy float64
	ImpalaEnergy        float64

	SpringEnabled        bool
	StericEnabled        bool
	ElectrostaticEnabled bool
	ImpalaEnabled        bool

	InsertionVectorEnabled bool
	InsertionAngle         float64
	InsertionDepth         float64
}

// Writer is the contract every trajectory output format implements.
type Writer interface {
	// Open prepares the writer's destination (creating a file, writing a
	// header) and must be called before the first WriteStep.
	Open() error
	// WriteStep appends one frame to the trajectory.
	WriteStep(snap Snapshot) error
	// Close flushes and releases the writer's destination.
	Close() error
	// Frequency returns the number of steps between frames; a frequency
	// of zero means "disabled", and the manager skips this writer.
	Frequency() int
}

// Manager fans a single simulation step out to every registered writer,
// each according to its own frequency.
type Manager struct {
	writers []Writer
}

// NewManager builds an empty writer dispatch manager.
func NewManager() *Manager {
	return &Manager{}
}

// Add registers a writer. The writer must already have had Open called.
func (m *Manager) Add(w Writer) {
	m.writers = append(m.writers, w)
}

// WriteStep writes snap to every writer whose frequency divides the given
// frame number. A frequency of zero disables a writer entirely.
func (m *Manager) WriteStep(frame int, snap Snapshot) error {
	for _, w := range m.writers {
		freq := w.Frequency()
		if freq <= 0 {
			continue
		}
		if frame%freq != 0 {
			continue
		}
		if err := w.WriteStep(snap); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every registered writer, returning the first error
// encountered while still attempting to close the rest.
func (m *Manager) Close() error {
	var firstErr error
	for _, w := range m.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
