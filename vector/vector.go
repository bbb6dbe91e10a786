// Package vector provides the three-component float vector algebra and
// bounding-box primitives shared by the grid, force-field and topology
// packages.
package vector

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vector3 is a three-component single-precision vector used for positions,
// velocities and forces throughout the engine.
type Vector3 = mgl32.Vec3

// equalityEpsilon is the tolerance used by Equal.
const equalityEpsilon = 1e-6

// normalizeEpsilon is the norm below which Normalize zeroes the vector
// instead of dividing by it.
const normalizeEpsilon = 1e-40

// New builds a Vector3 from its three components.
func New(x, y, z float32) Vector3 {
	return Vector3{x, y, z}
}

// Normalize returns v scaled to unit length, or the zero vector if v's norm
// is below 1e-40 (guards against division by a near-zero length).
func Normalize(v Vector3) Vector3 {
	n := v.Len()
	if n < normalizeEpsilon {
		return Vector3{}
	}
	return v.Mul(1.0 / n)
}

// Equal reports whether a and b are equal within an epsilon of 1e-6 on every
// component.
func Equal(a, b Vector3) bool {
	return nearlyEqual(a[0], b[0]) && nearlyEqual(a[1], b[1]) && nearlyEqual(a[2], b[2])
}

func nearlyEqual(a, b float32) bool {
	return float32(math.Abs(float64(a-b))) < equalityEpsilon
}

// Locatable is satisfied by anything exposing its position as three
// accessors, mirroring the original C++ `Locatable` concept so that
// Distance and Centroid can operate over particles, grid cells, or bare
// vectors alike.
type Locatable interface {
	X() float32
	Y() float32
	Z() float32
}

// Position extracts a Vector3 out of any Locatable.
func Position[T Locatable](v T) Vector3 {
	return Vector3{v.X(), v.Y(), v.Z()}
}

// Distance returns the Euclidean distance between two locatable values.
func Distance[T Locatable](a, b T) float32 {
	return Position(a).Sub(Position(b)).Len()
}

// Centroid returns the mean position of a non-empty container of locatable
// values. Panics if items is empty, mirroring the original's undefined
// behaviour on an empty system (callers must not invoke it on an empty
// collection).
func Centroid[T Locatable](items []T) Vector3 {
	if len(items) == 0 {
		panic("vector: centroid of an empty container")
	}
	var sum Vector3
	for _, it := range items {
		sum = sum.Add(Position(it))
	}
	return sum.Mul(1.0 / float32(len(items)))
}
