package topology

import (
	"testing"

	"github.com/lbt-cnrs/biospring/vector"
)

func addParticle(t *testing.T, top *Topology, x, y, z float32) ParticleID {
	t.Helper()
	return top.Particles.Add(
		Position{Vec: vector.New(x, y, z)},
		Velocity{},
		Physical{Mass: 1.0, Radius: 0.5},
		Impala{},
		Metadata{Name: "CA"},
	)
}

func TestParticleIDsAreMonotoneAndNeverReused(t *testing.T) {
	top := NewTopology(0)
	a := addParticle(t, top, 0, 0, 0)
	b := addParticle(t, top, 1, 0, 0)
	if err := top.Particles.Remove(a); err != nil {
		t.Fatal(err)
	}
	c := addParticle(t, top, 2, 0, 0)
	if a == b || b == c || a == c {
		t.Fatalf("expected three distinct ids, got %d %d %d", a, b, c)
	}
	if c <= b {
		t.Fatalf("expected new id %d to exceed removed id's successor %d", c, b)
	}
	if top.Particles.Has(a) {
		t.Fatal("expected removed particle id to no longer exist")
	}
}

func TestAddCoercesNonPositiveMassToOne(t *testing.T) {
	top := NewTopology(0)
	id := top.Particles.Add(
		Position{Vec: vector.New(0, 0, 0)},
		Velocity{},
		Physical{Mass: 0, Radius: 0.5},
		Impala{},
		Metadata{Name: "CA"},
	)
	physical, err := top.Particles.Physical(id)
	if err != nil {
		t.Fatal(err)
	}
	if physical.Mass != 1 {
		t.Fatalf("expected zero mass to be coerced to 1, got %v", physical.Mass)
	}
}

func TestAddSpringRejectsSelfSpring(t *testing.T) {
	top := NewTopology(0)
	a := addParticle(t, top, 0, 0, 0)
	if _, err := top.AddSpring(a, a, 1.0, 1.0); err == nil {
		t.Fatal("expected error adding a spring between a particle and itself")
	}
}

func TestAddSpringRejectsDuplicate(t *testing.T) {
	top := NewTopology(0)
	a := addParticle(t, top, 0, 0, 0)
	b := addParticle(t, top, 1, 0, 0)
	if _, err := top.AddSpring(a, b, 1.0, 1.0); err != nil {
		t.Fatal(err)
	}
	if _, err := top.AddSpring(b, a, 1.0, 1.0); err == nil {
		t.Fatal("expected error adding a duplicate spring, regardless of particle order")
	}
}

func TestAddSpringsFromCutoffProducesCompleteGraph(t *testing.T) {
	top := NewTopology(0)
	for i := 0; i < 10; i++ {
		addParticle(t, top, float32(i), 0, 0)
	}
	if err := top.AddSpringsFromCutoff(100.0); err != nil {
		t.Fatal(err)
	}
	want := 10 * 9 / 2
	if got := top.Springs.Len(); got != want {
		t.Fatalf("got %d springs, want %d", got, want)
	}
	top.Springs.Each(func(s Spring) {
		if s.Stiffness != 1.0 {
			t.Fatalf("expected stiffness 1.0, got %v", s.Stiffness)
		}
	})
}

func TestAddSpringsFromCutoffRespectsDistance(t *testing.T) {
	top := NewTopology(0)
	a := addParticle(t, top, 0, 0, 0)
	_ = a
	addParticle(t, top, 1, 0, 0)
	addParticle(t, top, 100, 0, 0)
	if err := top.AddSpringsFromCutoff(5.0); err != nil {
		t.Fatal(err)
	}
	if got := top.Springs.Len(); got != 1 {
		t.Fatalf("got %d springs, want 1", got)
	}
}

func TestMergeReindexesParticlesAndSprings(t *testing.T) {
	left := NewTopology(0)
	l1 := addParticle(t, left, 0, 0, 0)
	l2 := addParticle(t, left, 1, 0, 0)
	if _, err := left.AddSpring(l1, l2, -1, 1.0); err != nil {
		t.Fatal(err)
	}

	right := NewTopology(1)
	addParticle(t, right, 5, 0, 0)
	addParticle(t, right, 6, 0, 0)

	if err := left.Merge(right); err != nil {
		t.Fatal(err)
	}

	if got, want := left.Particles.Len(), 4; got != want {
		t.Fatalf("got %d particles after merge, want %d", got, want)
	}
	if got, want := left.Springs.Len(), 1; got != want {
		t.Fatalf("got %d springs after merge, want %d", got, want)
	}
}

func TestAddSpringsBetweenTopologiesFromCutoffSkipsWithinTopology(t *testing.T) {
	left := NewTopology(0)
	addParticle(t, left, 0, 0, 0)
	addParticle(t, left, 1, 0, 0)

	right := NewTopology(1)
	addParticle(t, right, 0.5, 0, 0)

	if err := left.Merge(right); err != nil {
		t.Fatal(err)
	}

	if err := left.AddSpringsBetweenTopologiesFromCutoff(10.0); err != nil {
		t.Fatal(err)
	}
	// Two particles from the left topology, one from the merged-in right
	// topology: exactly 2 cross springs, never a left-left spring.
	if got, want := left.Springs.Len(), 2; got != want {
		t.Fatalf("got %d springs, want %d", got, want)
	}
}

func TestToSpringNetworkProjectsEveryParticleAndSpring(t *testing.T) {
	top := NewTopology(0)
	a := addParticle(t, top, 0, 0, 0)
	b := addParticle(t, top, 1, 0, 0)
	if _, err := top.AddSpring(a, b, -1, 2.0); err != nil {
		t.Fatal(err)
	}

	particles, springs := top.ToSpringNetwork()
	if len(particles) != 2 {
		t.Fatalf("got %d particles, want 2", len(particles))
	}
	if len(springs) != 1 {
		t.Fatalf("got %d springs, want 1", len(springs))
	}
	if springs[0].Stiffness != 2.0 {
		t.Fatalf("got stiffness %v, want 2.0", springs[0].Stiffness)
	}
}
