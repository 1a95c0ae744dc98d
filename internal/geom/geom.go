// Package geom provides the small set of 3D vector primitives used by the
// bend-angle estimator. It wraps gonum's r3 vector type so the rest of the
// codebase never touches raw coordinate math directly.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 is a position or direction in 3-space, in the site frame (meters).
type Vec3 = r3.Vec

// V constructs a Vec3 from its components.
func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Norm returns the Euclidean magnitude of v.
func Norm(v Vec3) float64 {
	return r3.Norm(v)
}

// Distance returns the Euclidean distance between two positions.
func Distance(a, b Vec3) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// AngleDeg returns the opening angle between u and v in degrees, in [0, 180].
// The cosine is clamped to [-1, 1] before the arccosine so accumulated
// floating-point drift cannot produce a NaN. The second return is false when
// either vector has zero magnitude, in which case no angle exists.
func AngleDeg(u, v Vec3) (float64, bool) {
	nu := r3.Norm(u)
	nv := r3.Norm(v)
	if nu == 0 || nv == 0 {
		return 0, false
	}
	cos := r3.Dot(u, v) / (nu * nv)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos) * 180 / math.Pi, true
}
