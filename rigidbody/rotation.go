package rigidbody

import (
	"math"

	"gonum.org/v1/gonum/num/quat"

	"github.com/lbt-cnrs/biospring/vector"
)

// identityQuat is the zero-rotation orientation.
var identityQuat = quat.Number{Real: 1}

// axisAngleQuat builds a unit rotation quaternion from a unit axis and an
// angle in radians.
func axisAngleQuat(axis vector.Vector3, angle float32) quat.Number {
	half := float64(angle) / 2
	s := math.Sin(half)
	return quat.Number{
		Real: math.Cos(half),
		Imag: float64(axis[0]) * s,
		Jmag: float64(axis[1]) * s,
		Kmag: float64(axis[2]) * s,
	}
}

// normalizeQuat returns q scaled to unit norm, or the identity if q's norm
// is too small to normalize safely.
func normalizeQuat(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n < 1e-12 {
		return identityQuat
	}
	inv := 1 / n
	return quat.Scale(inv, q)
}

// integrateOrientation advances orientation q by the small-angle rotation
// implied by angular velocity omega over dt, following the standard
// quaternion kinematic equation q' = q + 0.5*(0,omega)*q*dt, renormalized.
func integrateOrientation(q quat.Number, omega vector.Vector3, dt float32) quat.Number {
	omegaQuat := quat.Number{Imag: float64(omega[0]), Jmag: float64(omega[1]), Kmag: float64(omega[2])}
	dq := quat.Scale(0.5*float64(dt), quat.Mul(omegaQuat, q))
	return normalizeQuat(quat.Add(q, dq))
}

// rotationMatrix converts a unit quaternion into its equivalent 3x3
// rotation matrix, mirroring the R*I*R^T world-space inertia composition
// pattern used for rigid-body rotation elsewhere in the corpus, expressed
// here over plain float32 arrays instead of a dedicated matrix type.
func rotationMatrix(q quat.Number) [3][3]float32 {
	w, x, y, z := float32(q.Real), float32(q.Imag), float32(q.Jmag), float32(q.Kmag)
	return [3][3]float32{
		{1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w)},
		{2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w)},
		{2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y)},
	}
}

// rotateVector applies a rotation matrix to a vector.
func rotateVector(m [3][3]float32, v vector.Vector3) vector.Vector3 {
	return vector.New(
		m[0][0]*v[0]+m[0][1]*v[1]+m[0][2]*v[2],
		m[1][0]*v[0]+m[1][1]*v[1]+m[1][2]*v[2],
		m[2][0]*v[0]+m[2][1]*v[1]+m[2][2]*v[2],
	)
}
