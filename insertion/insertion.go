// Package insertion tracks a system's insertion vector: the directed
// segment between two user-chosen particles, its tilt angle off the
// membrane normal, its roll angle about the vector itself, and the
// insertion depth of the system's centroid.
package insertion

import (
	"math"

	"github.com/lbt-cnrs/biospring/topology"
	"github.com/lbt-cnrs/biospring/vector"
)

const radiansToDegrees = 180.0 / math.Pi

// Result is one step's computed insertion-vector observation.
type Result struct {
	Vector         vector.Vector3
	AngleDegrees   float32
	RollDegrees    float32
	InsertionDepth float32
}

// Tracker observes the insertion vector between two fixed particles of a
// particle collection, relative to that collection's centroid.
type Tracker struct {
	particles *topology.ParticleCollection
	first     topology.ParticleID
	second    topology.ParticleID
}

// NewTracker builds a tracker for the segment from first to second within
// particles.
func NewTracker(particles *topology.ParticleCollection, first, second topology.ParticleID) *Tracker {
	return &Tracker{particles: particles, first: first, second: second}
}

// Compute recomputes the insertion vector, its tilt and roll angles, and
// the system's insertion depth.
func (t *Tracker) Compute() (Result, error) {
	p1, err := t.particles.Position(t.first)
	if err != nil {
		return Result{}, err
	}
	p2, err := t.particles.Position(t.second)
	if err != nil {
		return Result{}, err
	}

	_, positions := t.particles.Positions()
	centroid := vector.Centroid(positionsAsLocatable(positions))

	segment := p2.Vec.Sub(p1.Vec)

	angle := float32(math.Acos(float64(segment[2]/segment.Len()))) * radiansToDegrees

	roll := rollAngle(centroid, p1.Vec, p2.Vec, segment)

	return Result{
		Vector:         segment,
		AngleDegrees:   angle,
		RollDegrees:    roll,
		InsertionDepth: centroid[2],
	}, nil
}

// point is a bare vector.Vector3 wrapped to satisfy vector.Locatable.
type point vector.Vector3

func (p point) X() float32 { return p[0] }
func (p point) Y() float32 { return p[1] }
func (p point) Z() float32 { return p[2] }

func positionsAsLocatable(positions []vector.Vector3) []point {
	out := make([]point, len(positions))
	for i, p := range positions {
		out[i] = point(p)
	}
	return out
}

// rollAngle computes the roll angle (0-360 degrees) of the system's
// centroid about the insertion vector, following the original's
// reference-circle construction: project the centroid onto the insertion
// vector, build two orthogonal in-plane axes, and measure the angle to the
// point on that circle with minimum z.
func rollAngle(centroid, p1, p2, segment vector.Vector3) float32 {
	segmentLenSq := segment.Dot(segment)
	if segmentLenSq < 1e-12 {
		return 0
	}

	projFactor := (centroid.Sub(p1)).Dot(segment) / segmentLenSq
	proj := p1.Add(segment.Mul(projFactor))

	n1 := vector.Normalize(proj.Sub(centroid))
	n3 := vector.Normalize(n1.Cross(segment))

	radius := proj.Sub(centroid).Len()
	am := float32(math.Atan2(float64(n3[2]), float64(n1[2]))) - math.Pi

	refPoint := proj.Add(n1.Mul(radius * float32(math.Cos(float64(am))))).Add(n3.Mul(radius * float32(math.Sin(float64(am)))))
	n2 := vector.Normalize(proj.Sub(refPoint))

	cosAngle := n1.Dot(n2)
	if cosAngle > 1 {
		cosAngle = 1
	} else if cosAngle < -1 {
		cosAngle = -1
	}
	angleRad := float32(math.Acos(float64(cosAngle)))

	side := n1.Cross(n2).Dot(p2.Sub(proj))

	angleDeg := angleRad * radiansToDegrees
	if side > 0 {
		angleDeg = 360 - angleDeg
	}
	return angleDeg
}
