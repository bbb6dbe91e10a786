// Package constraint links two groups of particles (Selections) with a
// fixed-modulus attractive force between their centroids, the run-time
// counterpart of the build-time spring/topology model for particle groups
// that should track each other without a literal spring between every
// member.
package constraint

import (
	"github.com/lbt-cnrs/biospring/bioerr"
	"github.com/lbt-cnrs/biospring/topology"
	"github.com/lbt-cnrs/biospring/vector"
)

// Selection is a named, ordered group of particles from one particle
// collection. AddForce distributes a force equally across every member.
type Selection struct {
	Name      string
	particles *topology.ParticleCollection
	members   []topology.ParticleID
}

// NewSelection builds an empty named selection over particles.
func NewSelection(name string, particles *topology.ParticleCollection) *Selection {
	return &Selection{Name: name, particles: particles}
}

// Add appends a particle to the selection.
func (s *Selection) Add(id topology.ParticleID) {
	s.members = append(s.members, id)
}

// Centroid returns the mean position of the selection's members.
func (s *Selection) Centroid() (vector.Vector3, error) {
	if len(s.members) == 0 {
		return vector.Vector3{}, bioerr.New(bioerr.KindDomainPrecondition, "selection %q has no members", s.Name)
	}
	var sum vector.Vector3
	for _, id := range s.members {
		pos, err := s.particles.Position(id)
		if err != nil {
			return vector.Vector3{}, err
		}
		sum = sum.Add(pos.Vec)
	}
	return sum.Mul(1.0 / float32(len(s.members))), nil
}

// AddForce distributes force equally across every member of the
// selection, adding the per-member share to each particle's accumulated
// force.
func (s *Selection) AddForce(force vector.Vector3) error {
	if len(s.members) == 0 {
		return bioerr.New(bioerr.KindDomainPrecondition, "selection %q has no members", s.Name)
	}
	share := force.Mul(1.0 / float32(len(s.members)))
	for _, id := range s.members {
		dyn, err := s.particles.Dynamics(id)
		if err != nil {
			return err
		}
		dyn.Force = dyn.Force.Add(share)
	}
	return nil
}

// Constraint links two selections with a force of fixed modulus pulling
// each selection's centroid toward the other's.
type Constraint struct {
	First, Second *Selection
	Modulus       float32
	distance      float32
}

// New builds a constraint between two selections, measuring the initial
// centroid-to-centroid distance.
func New(first, second *Selection, modulus float32) (*Constraint, error) {
	c := &Constraint{First: first, Second: second, Modulus: modulus}
	if err := c.UpdateDistance(); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateDistance recomputes the distance between the two selections'
// centroids.
func (c *Constraint) UpdateDistance() error {
	a, err := c.First.Centroid()
	if err != nil {
		return err
	}
	b, err := c.Second.Centroid()
	if err != nil {
		return err
	}
	c.distance = a.Sub(b).Len()
	return nil
}

// Distance returns the distance computed by the most recent Apply or
// UpdateDistance call.
func (c *Constraint) Distance() float32 { return c.distance }

// Apply computes the centroid-to-centroid direction and pushes each
// selection's centroid toward the other's with a force of magnitude
// Modulus.
func (c *Constraint) Apply() error {
	a, err := c.First.Centroid()
	if err != nil {
		return err
	}
	b, err := c.Second.Centroid()
	if err != nil {
		return err
	}

	delta := b.Sub(a)
	c.distance = delta.Len()
	direction := vector.Normalize(delta)
	force := direction.Mul(c.Modulus)

	if err := c.First.AddForce(force); err != nil {
		return err
	}
	return c.Second.AddForce(force.Mul(-1))
}
