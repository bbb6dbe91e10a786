package topology

import "github.com/lbt-cnrs/biospring/bioerr"

// SpringID identifies a spring by the unordered pair of unique ids of the
// particles it connects.
type SpringID struct {
	First, Second ParticleID
}

// springKey normalizes a pair of particle ids so that a spring between a
// and b is found regardless of the order they were given in.
func springKey(a, b ParticleID) SpringID {
	if a <= b {
		return SpringID{a, b}
	}
	return SpringID{b, a}
}

// Spring connects two particles with a Hookean restoring force toward an
// equilibrium length.
type Spring struct {
	First, Second ParticleID
	Equilibrium   float32
	Stiffness     float32
}

// SpringCollection owns the springs of a system, keyed by the unordered
// pair of particle ids they connect so that the same pair can never be
// linked twice. It is built over a fixed ParticleCollection: every spring
// added must connect two particles that collection actually owns.
type SpringCollection struct {
	particles *ParticleCollection
	springs   map[SpringID]Spring
}

// NewSpringCollection builds an empty spring collection over the given
// particle collection.
func NewSpringCollection(particles *ParticleCollection) *SpringCollection {
	return &SpringCollection{particles: particles, springs: make(map[SpringID]Spring)}
}

// Len returns the number of springs in the collection.
func (c *SpringCollection) Len() int { return len(c.springs) }

// Has reports whether a spring already connects the two given particles.
func (c *SpringCollection) Has(first, second ParticleID) bool {
	_, ok := c.springs[springKey(first, second)]
	return ok
}

// Add connects first and second with a spring of the given equilibrium
// length and stiffness. A negative equilibrium defers to the caller's
// measured current distance, mirroring the original's "use current
// distance if unset" default. Adding a spring between a particle and
// itself, duplicating an existing spring, or referencing a particle not
// owned by this collection's ParticleCollection, is a domain
// precondition violation.
func (c *SpringCollection) Add(first, second ParticleID, equilibrium, stiffness float32) (Spring, error) {
	if first == second {
		return Spring{}, bioerr.New(bioerr.KindDomainPrecondition, "cannot add a spring between a particle and itself")
	}
	if !c.particles.Has(first) {
		return Spring{}, bioerr.New(bioerr.KindDomainPrecondition, "particle %d is not owned by this collection", first)
	}
	if !c.particles.Has(second) {
		return Spring{}, bioerr.New(bioerr.KindDomainPrecondition, "particle %d is not owned by this collection", second)
	}
	key := springKey(first, second)
	if _, exists := c.springs[key]; exists {
		return Spring{}, bioerr.New(bioerr.KindDomainPrecondition, "a spring already connects particles %d and %d", first, second)
	}
	s := Spring{First: first, Second: second, Equilibrium: equilibrium, Stiffness: stiffness}
	c.springs[key] = s
	return s, nil
}

// Remove deletes the spring connecting first and second, if any.
func (c *SpringCollection) Remove(first, second ParticleID) {
	delete(c.springs, springKey(first, second))
}

// Each calls fn for every spring in the collection.
func (c *SpringCollection) Each(fn func(Spring)) {
	for _, s := range c.springs {
		fn(s)
	}
}

// All returns every spring in the collection, in unspecified order.
func (c *SpringCollection) All() []Spring {
	out := make([]Spring, 0, len(c.springs))
	for _, s := range c.springs {
		out = append(out, s)
	}
	return out
}
