package track

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/corner.report/internal/geom"
)

const (
	// DefaultWindow is the default number of samples between the triangle
	// apex and each arm.
	DefaultWindow = 10

	// DefaultThresholdDeg is the default maximum bend angle still considered
	// a corner.
	DefaultThresholdDeg = 125.0

	// straightAngleDeg is the reading of a locally straight path, substituted
	// for undefined entries during corner comparison.
	straightAngleDeg = 180.0
)

// ComputeBendAngles estimates a bend angle at every sample of trk.
//
// The angle at sample i is the apex angle of the isosceles triangle formed by
// samples i-window, i, and i+window: 180° means the path runs straight
// through i over the window span, small values mean a sharp bend. Samples
// closer than window to either end of the track get an undefined reading, as
// do samples where a chord degenerates to zero length (duplicate points).
//
// A track shorter than 2*window+1 samples yields an all-undefined series of
// the same length, not an error. A non-positive window is a contract
// violation and returns ErrInvalidArgument.
//
// The window must be tuned to the track's sampling density: too wide smooths
// away sharp corners, too narrow amplifies sampling jitter into spurious
// ones.
func ComputeBendAngles(trk Track, window int) (AngleSeries, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: window must be positive, got %d", ErrInvalidArgument, window)
	}

	angles := make(AngleSeries, len(trk))
	for i := range trk {
		if i < window || i+window > len(trk)-1 {
			continue
		}
		apex := trk[i]
		deg, ok := geom.AngleDeg(r3.Sub(trk[i-window], apex), r3.Sub(trk[i+window], apex))
		if !ok {
			// Duplicate samples collapsed a chord; no angle exists here.
			continue
		}
		angles[i] = Angle{Degrees: deg, Valid: true}
	}
	return angles, nil
}
