// Package rigidbody groups particles sharing a rigid-body id into a single
// integrated body: translation of a reference point, rotation of an
// orientation quaternion, and the accumulated force/torque that drive
// both. It also hosts the two alternative ways a rigid body advances
// through a step instead of direct force integration: Monte-Carlo
// Metropolis sampling of random rigid moves, and the IMPALA automatic
// insertion-angle sweep.
package rigidbody

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"github.com/lbt-cnrs/biospring/bioerr"
	"github.com/lbt-cnrs/biospring/topology"
	"github.com/lbt-cnrs/biospring/vector"
)

// Member is one particle's contribution to its rigid body: the data the
// body needs to accumulate force/torque against and to propagate a new
// position/velocity back onto.
type Member struct {
	ID       topology.ParticleID
	Position vector.Vector3
	Velocity vector.Vector3
	Force    vector.Vector3
	Mass     float32
}

// Body is a rigid collection of particles sharing one rigid-body id. It
// tracks translation of a reference point (the body's center of mass at
// construction), rotation via an orientation quaternion, and the force and
// torque accumulated from its members over the current step.
type Body struct {
	ID ID

	reference vector.Vector3
	mass      float32
	// invInertia is the inverse of the body's inertia tensor about its
	// reference point, computed once at construction from the initial
	// member offsets and held fixed in the body frame for the life of the
	// simulation (the engine never re-diagonalizes it against the rotated
	// frame; see DESIGN.md).
	invInertia [3][3]float32

	orientation     quat.Number
	angularVelocity vector.Vector3
	linearVelocity  vector.Vector3

	accForce  vector.Vector3
	accTorque vector.Vector3

	offsets map[topology.ParticleID]vector.Vector3
}

// ID identifies a rigid body, matching the particle metadata's rigid-body
// id grouping key.
type ID uint64

// New builds a rigid body from its initial members, computing the
// reference point as their mass-weighted centroid and the inertia tensor
// about that point.
func New(id ID, members []Member) (*Body, error) {
	if len(members) == 0 {
		return nil, bioerr.New(bioerr.KindDomainPrecondition, "rigid body %d has no members", id)
	}

	var totalMass float32
	var weighted vector.Vector3
	for _, m := range members {
		totalMass += m.Mass
		weighted = weighted.Add(m.Position.Mul(m.Mass))
	}
	if totalMass <= 0 {
		return nil, bioerr.New(bioerr.KindDomainPrecondition, "rigid body %d has non-positive total mass", id)
	}
	reference := weighted.Mul(1.0 / totalMass)

	inertia := mat.NewDense(3, 3, nil)
	offsets := make(map[topology.ParticleID]vector.Vector3, len(members))
	for _, m := range members {
		r := m.Position.Sub(reference)
		offsets[m.ID] = r
		addParticleInertia(inertia, r, m.Mass)
	}

	var invDense mat.Dense
	if err := invDense.Inverse(inertia); err != nil {
		// Singular for collinear or single-particle bodies: invert the non-degenerate axes only.
		var eig mat.EigenSym
		if !eig.Factorize(mat.NewSymDense(3, inertia.RawMatrix().Data), true) {
			return nil, bioerr.Wrap(bioerr.KindDomainPrecondition, err, "rigid body %d has an inertia tensor that cannot be diagonalized", id)
		}
		var axes mat.Dense
		eig.VectorsTo(&axes)
		values := eig.Values(nil)
		inverseValues := mat.NewDiagDense(3, nil)
		for i, v := range values {
			if v > 1e-9*values[2] {
				inverseValues.SetDiag(i, 1/v)
			}
		}
		invDense.Product(&axes, inverseValues, axes.T())
	}

	var invInertia [3][3]float32
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			invInertia[i][j] = float32(invDense.At(i, j))
		}
	}

	return &Body{
		ID:          id,
		reference:   reference,
		mass:        totalMass,
		invInertia:  invInertia,
		orientation: identityQuat,
		offsets:     offsets,
	}, nil
}

// addParticleInertia adds one particle's contribution m*(|r|^2*I - r*r^T)
// to the running inertia tensor about the reference point.
func addParticleInertia(inertia *mat.Dense, r vector.Vector3, mass float32) {
	r2 := float64(r.Dot(r))
	rf := [3]float64{float64(r[0]), float64(r[1]), float64(r[2])}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v := -float64(mass) * rf[i] * rf[j]
			if i == j {
				v += float64(mass) * r2
			}
			inertia.Set(i, j, inertia.At(i, j)+v)
		}
	}
}

// Reset zeroes the accumulated force and torque ahead of a new step's
// per-particle force accumulation.
func (b *Body) Reset() {
	b.accForce = vector.Vector3{}
	b.accTorque = vector.Vector3{}
}

// Accumulate adds one member's current force and its torque contribution
// about the body's reference point.
func (b *Body) Accumulate(m Member) {
	b.accForce = b.accForce.Add(m.Force)
	r := m.Position.Sub(b.reference)
	b.accTorque = b.accTorque.Add(r.Cross(m.Force))
}

// Reference returns the body's current reference point.
func (b *Body) Reference() vector.Vector3 { return b.reference }

// Integrate advances the body's translational and angular velocity, and
// its reference point and orientation, by one timestep using the
// accumulated force and torque.
func (b *Body) Integrate(dt float32) {
	b.linearVelocity = b.linearVelocity.Add(b.accForce.Mul(dt / b.mass))

	torqueResponse := vector.New(
		b.invInertia[0][0]*b.accTorque[0]+b.invInertia[0][1]*b.accTorque[1]+b.invInertia[0][2]*b.accTorque[2],
		b.invInertia[1][0]*b.accTorque[0]+b.invInertia[1][1]*b.accTorque[1]+b.invInertia[1][2]*b.accTorque[2],
		b.invInertia[2][0]*b.accTorque[0]+b.invInertia[2][1]*b.accTorque[1]+b.invInertia[2][2]*b.accTorque[2],
	)
	b.angularVelocity = b.angularVelocity.Add(torqueResponse.Mul(dt))

	b.orientation = integrateOrientation(b.orientation, b.angularVelocity, dt)
	b.reference = b.reference.Add(b.linearVelocity.Mul(dt))
}

// Propagate computes a member's new position and velocity after
// Integrate, by rigidly rotating its original offset from the reference
// point and adding the body's linear and angular velocity contributions.
func (b *Body) Propagate(id topology.ParticleID) (position, velocity vector.Vector3, ok bool) {
	offset, exists := b.offsets[id]
	if !exists {
		return vector.Vector3{}, vector.Vector3{}, false
	}
	r := rotationMatrix(b.orientation)
	rotatedOffset := rotateVector(r, offset)
	position = b.reference.Add(rotatedOffset)
	velocity = b.linearVelocity.Add(b.angularVelocity.Cross(rotatedOffset))
	return position, velocity, true
}

// Translate rigidly displaces the body's reference point by delta,
// without touching orientation. Used by the Monte-Carlo proposal, which
// moves the whole body at once rather than integrating forces.
func (b *Body) Translate(delta vector.Vector3) {
	b.reference = b.reference.Add(delta)
}

// Rotate rigidly rotates the body about axis by angle (radians), applied
// on top of the current orientation. Used by the Monte-Carlo proposal.
func (b *Body) Rotate(axis vector.Vector3, angle float32) {
	b.orientation = normalizeQuat(quat.Mul(axisAngleQuat(axis, angle), b.orientation))
}

// Orientation returns the body's current orientation quaternion, so a
// Monte-Carlo proposal can be rejected by restoring a saved value.
func (b *Body) Orientation() quat.Number { return b.orientation }

// SetOrientation restores a previously saved orientation, used to reject a
// Monte-Carlo proposal.
func (b *Body) SetOrientation(q quat.Number) { b.orientation = q }

// SetReference restores a previously saved reference point, used to reject
// a Monte-Carlo proposal.
func (b *Body) SetReference(p vector.Vector3) { b.reference = p }
