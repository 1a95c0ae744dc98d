// Package track implements bend-angle estimation and corner selection over
// ordered 3D point sequences sampled from a trajectory. The estimator slides
// an isosceles triangle along the sequence and measures the apex angle; the
// selector keeps local angle minima below a sharpness threshold.
package track

import (
	"errors"

	"github.com/banshee-data/corner.report/internal/geom"
)

// ErrInvalidArgument reports a caller-contract violation (bad window, bad
// input shape). All other degenerate inputs degrade to undefined angles
// rather than failing.
var ErrInvalidArgument = errors.New("invalid argument")

// Point is one trajectory sample in the site frame (meters).
type Point = geom.Vec3

// Track is an ordered sequence of samples along a continuous path. The slice
// index is the sample order and is semantically meaningful.
type Track []Point

// Angle is a bend-angle reading at one sample. Valid is false when the angle
// could not be computed, either because the sample sits too close to a
// boundary to form a full triangle or because a chord collapsed to zero
// length. An invalid reading is distinct from a genuine 180° one.
type Angle struct {
	Degrees float64
	Valid   bool
}

// AngleSeries holds one Angle per track sample, same indexing as the Track.
type AngleSeries []Angle

// Corner identifies a selected high-curvature sample.
type Corner struct {
	Index        int     `json:"index"`
	Point        Point   `json:"point"`
	AngleDegrees float64 `json:"angle_degrees"`
}
