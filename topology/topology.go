package topology

import "github.com/lbt-cnrs/biospring/vector"

// Topology is the build-time representation of a system: a particle
// collection and a spring collection over it, plus the topology id this
// instance was assigned (distinct topology ids let Merge and
// AddSpringsBetweenTopologiesFromCutoff distinguish particles that
// originated from different source systems once concatenated).
type Topology struct {
	Particles *ParticleCollection
	Springs   *SpringCollection
	id        uint64
}

// NewTopology builds an empty topology with the given topology id.
func NewTopology(id uint64) *Topology {
	particles := NewParticleCollection()
	return &Topology{Particles: particles, Springs: NewSpringCollection(particles), id: id}
}

// ID returns this topology's assigned id.
func (t *Topology) ID() uint64 { return t.id }

// AddSpring connects two particles with a spring of the given equilibrium
// length and stiffness, measuring the equilibrium from the particles'
// current positions when equilibrium is negative.
func (t *Topology) AddSpring(first, second ParticleID, equilibrium, stiffness float32) (Spring, error) {
	if equilibrium < 0 {
		p1, err := t.Particles.Position(first)
		if err != nil {
			return Spring{}, err
		}
		p2, err := t.Particles.Position(second)
		if err != nil {
			return Spring{}, err
		}
		equilibrium = p1.Vec.Sub(p2.Vec).Len()
	}
	return t.Springs.Add(first, second, equilibrium, stiffness)
}

// AddSpringsFromCutoff adds a spring, with equilibrium length set to the
// particles' current distance and unit stiffness, between every pair of
// particles whose distance does not exceed cutoff.
func (t *Topology) AddSpringsFromCutoff(cutoff float32) error {
	ids, positions := t.Particles.Positions()
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			d := positions[i].Sub(positions[j]).Len()
			if d <= cutoff {
				if _, err := t.Springs.Add(ids[i], ids[j], d, 1.0); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// AddSpringsBetweenTopologiesFromCutoff adds a spring, with equilibrium
// length set to the particles' current distance and unit stiffness,
// between every pair of particles whose distance does not exceed cutoff
// and whose topology ids differ. Unlike AddSpringsFromCutoff, it never
// connects two particles from the same source topology; callers
// typically invoke it after Merge to link the previously independent
// systems now sharing t's ParticleCollection.
func (t *Topology) AddSpringsBetweenTopologiesFromCutoff(cutoff float32) error {
	type entry struct {
		id       ParticleID
		position vector.Vector3
		topology uint64
	}
	entries := make([]entry, 0, t.Particles.Len())
	t.Particles.Each(func(v ParticleView) {
		entries = append(entries, entry{id: v.ID, position: v.Position.Vec, topology: v.Metadata.TopologyID})
	})

	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			if entries[i].topology == entries[j].topology {
				continue
			}
			d := entries[i].position.Sub(entries[j].position).Len()
			if d <= cutoff {
				if _, err := t.Springs.Add(entries[i].id, entries[j].id, d, 1.0); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Merge concatenates other's particles and springs into t, tagging each of
// other's particles with other's topology id and re-indexing other's springs against the newly
// inserted particle ids. The original other is left untouched; all new
// state lands in t.
func (t *Topology) Merge(other *Topology) error {
	remap := make(map[ParticleID]ParticleID, other.Particles.Len())

	other.Particles.Each(func(v ParticleView) {
		meta := *v.Metadata
		meta.TopologyID = other.id
		newID := t.Particles.Add(*v.Position, *v.Velocity, *v.Physical, *v.Impala, meta)
		remap[v.ID] = newID
	})

	var mergeErr error
	other.Springs.Each(func(s Spring) {
		if mergeErr != nil {
			return
		}
		_, err := t.Springs.Add(remap[s.First], remap[s.Second], s.Equilibrium, s.Stiffness)
		if err != nil {
			mergeErr = err
		}
	})
	return mergeErr
}

// RunTimeParticle is one particle's full state as projected into a
// run-time system by ToSpringNetwork.
type RunTimeParticle struct {
	ID       ParticleID
	Position vector.Vector3
	Velocity vector.Vector3
	Physical Physical
	Impala   Impala
	Metadata Metadata
}

// RunTimeSpring is one spring's state as projected into a run-time system
// by ToSpringNetwork.
type RunTimeSpring struct {
	First, Second ParticleID
	Equilibrium   float32
	Stiffness     float32
}

// ToSpringNetwork projects this build-time topology into the flattened
// particle/spring arrays the run-time engine operates on.
func (t *Topology) ToSpringNetwork() ([]RunTimeParticle, []RunTimeSpring) {
	particles := make([]RunTimeParticle, 0, t.Particles.Len())
	t.Particles.Each(func(v ParticleView) {
		particles = append(particles, RunTimeParticle{
			ID:       v.ID,
			Position: v.Position.Vec,
			Velocity: v.Velocity.Vec,
			Physical: *v.Physical,
			Impala:   *v.Impala,
			Metadata: *v.Metadata,
		})
	})

	springs := make([]RunTimeSpring, 0, t.Springs.Len())
	t.Springs.Each(func(s Spring) {
		springs = append(springs, RunTimeSpring{
			First:       s.First,
			Second:      s.Second,
			Equilibrium: s.Equilibrium,
			Stiffness:   s.Stiffness,
		})
	})

	return particles, springs
}
