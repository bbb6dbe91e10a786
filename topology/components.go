// Package topology implements the build-time particle/spring data model:
// an ark-ECS-backed ParticleCollection carrying the per-particle physical
// and bookkeeping state, a plain SpringCollection of Hookean links between
// particles, and a Topology type assembling both plus the cutoff-based
// spring-generation and merge operations used to build a run-time system.
package topology

import "github.com/lbt-cnrs/biospring/vector"

// Position is a particle's current location.
type Position struct {
	Vec vector.Vector3
}

// Velocity is a particle's current velocity.
type Velocity struct {
	Vec vector.Vector3
}

// Dynamics holds the per-step force accumulator and the state needed by
// the integrator between steps.
type Dynamics struct {
	Force            vector.Vector3
	PreviousForce    vector.Vector3
	PreviousPosition vector.Vector3
}

// Physical holds the force-field parameters of a particle.
type Physical struct {
	Mass              float32
	Charge            float32
	Radius            float32
	Epsilon           float32
	Hydrophobicity    float32
	Burying           float32
	Occupancy         float32
	TemperatureFactor float32
}

// Impala holds the IMPALA membrane-insertion parameters of a particle.
type Impala struct {
	TransferEnergyByAccessibleSurface float32
	SolventAccessibleSurface          float32
}

// Metadata holds the descriptive and bookkeeping fields of a particle that
// are not consumed by the force-field kernels but are needed to resolve
// selections, merges, and trajectory output.
type Metadata struct {
	Name        string
	ResidueName string
	ChainName   string
	ElementName string
	ResidueID   int
	AtomID      int
	TopologyID  uint64
	Static      bool
	Rigid       bool
	RigidBodyID uint64
}

// IsCharged reports whether charge magnitude exceeds the floating-point
// equality epsilon, mirroring the original's is_charged() predicate.
func (p Physical) IsCharged() bool { return absF32(p.Charge) > 1e-6 }

// IsHydrophobic reports whether hydrophobicity magnitude exceeds the
// floating-point equality epsilon, mirroring the original's
// is_hydrophobic() predicate.
func (p Physical) IsHydrophobic() bool { return absF32(p.Hydrophobicity) > 1e-6 }

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
