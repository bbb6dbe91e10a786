package rigidbody

import (
	"math"
	"testing"

	"github.com/lbt-cnrs/biospring/vector"
)

func twoMassMembers() []Member {
	return []Member{
		{ID: 0, Position: vector.New(-1, 0, 0), Mass: 1.0},
		{ID: 1, Position: vector.New(1, 0, 0), Mass: 1.0},
	}
}

func TestNewComputesCentroidReferenceAndRejectsEmptyOrMassless(t *testing.T) {
	body, err := New(1, twoMassMembers())
	if err != nil {
		t.Fatal(err)
	}
	if !vector.Equal(body.Reference(), vector.New(0, 0, 0)) {
		t.Fatalf("got reference %v, want origin", body.Reference())
	}

	if _, err := New(2, nil); err == nil {
		t.Fatal("expected error for a rigid body with no members")
	}
	if _, err := New(3, []Member{{ID: 0, Position: vector.New(0, 0, 0), Mass: 0}}); err == nil {
		t.Fatal("expected error for a rigid body with zero total mass")
	}
}

func TestIntegrateTranslatesUnderConstantForce(t *testing.T) {
	body, err := New(1, twoMassMembers())
	if err != nil {
		t.Fatal(err)
	}
	body.Reset()
	body.Accumulate(Member{ID: 0, Position: vector.New(-1, 0, 0), Force: vector.New(1, 0, 0), Mass: 1.0})
	body.Accumulate(Member{ID: 1, Position: vector.New(1, 0, 0), Force: vector.New(1, 0, 0), Mass: 1.0})

	body.Integrate(1.0)

	ref := body.Reference()
	if ref[0] <= 0 {
		t.Fatalf("expected body to translate along +x, got reference %v", ref)
	}
}

func TestIntegrateRotatesUnderOpposingForces(t *testing.T) {
	body, err := New(1, twoMassMembers())
	if err != nil {
		t.Fatal(err)
	}
	body.Reset()
	// Equal and opposite forces at opposite ends: zero net force, nonzero torque.
	body.Accumulate(Member{ID: 0, Position: vector.New(-1, 0, 0), Force: vector.New(0, 1, 0), Mass: 1.0})
	body.Accumulate(Member{ID: 1, Position: vector.New(1, 0, 0), Force: vector.New(0, -1, 0), Mass: 1.0})

	body.Integrate(1.0)

	pos0, _, ok := body.Propagate(0)
	if !ok {
		t.Fatal("expected member 0 to propagate")
	}
	if vector.Equal(pos0, vector.New(-1, 0, 0)) {
		t.Fatal("expected member 0 to move under the applied torque")
	}
}

func TestPropagateUnknownMemberFails(t *testing.T) {
	body, _ := New(1, twoMassMembers())
	if _, _, ok := body.Propagate(99); ok {
		t.Fatal("expected propagate of an unknown member id to fail")
	}
}

func TestMonteCarloAcceptAlwaysAcceptsNonPositiveDeltaEnergy(t *testing.T) {
	sampler := NewMonteCarloSampler(1.0, 0.1, 300.0, 42)
	if !sampler.Accept(0) {
		t.Fatal("expected zero energy change to always accept")
	}
	if !sampler.Accept(-5) {
		t.Fatal("expected negative energy change to always accept")
	}
}

func TestMonteCarloProposeAndRejectRestoresState(t *testing.T) {
	body, _ := New(1, twoMassMembers())
	sampler := NewMonteCarloSampler(1.0, 0.1, 300.0, 7)

	before := body.Reference()
	saved := sampler.Propose(body)
	sampler.Reject(body, saved)

	if !vector.Equal(body.Reference(), before) {
		t.Fatalf("expected reference restored to %v, got %v", before, body.Reference())
	}
}

func TestSweepCoversFullTurnAndTracksMinimum(t *testing.T) {
	body, _ := New(1, twoMassMembers())
	axis := vector.New(0, 0, 1)

	callCount := 0
	energy := func() float32 {
		callCount++
		return 1.0
	}

	rows := Sweep(body, axis, 90.0, 1, nil, energy)
	if len(rows) != 4 {
		t.Fatalf("got %d sweep rows, want 4", len(rows))
	}
	for _, r := range rows {
		if r.MinEnergy != 1.0 {
			t.Fatalf("got min energy %v, want 1.0", r.MinEnergy)
		}
	}
	if callCount != 4 {
		t.Fatalf("expected energy evaluated once per angle, got %d calls", callCount)
	}
}

func TestRotationMatrixIsOrthonormalForAxisAngle(t *testing.T) {
	q := axisAngleQuat(vector.New(0, 0, 1), float32(math.Pi/2))
	m := rotationMatrix(q)
	v := rotateVector(m, vector.New(1, 0, 0))
	if !vector.Equal(v, vector.New(0, 1, 0)) {
		t.Fatalf("got %v, want a 90-degree rotation of (1,0,0) about z to (0,1,0)", v)
	}
}
