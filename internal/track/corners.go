package track

import "fmt"

// SelectCorners scans an angle series and returns the samples where the path
// bends sharply: the angle must be at or below thresholdDeg and must be a
// local minimum relative to its immediate neighbours (ties count). The
// local-minimum rule keeps a single monotonic dip from producing a corner on
// each of its shoulders.
//
// Undefined readings are compared as if they were 180° (straight); the
// caller's series is never mutated. The first and last samples have no
// neighbour on one side and are never selected. Corners are returned in
// ascending index order; the result may be empty.
//
// The series must have one entry per track sample, otherwise
// ErrInvalidArgument is returned.
func SelectCorners(trk Track, angles AngleSeries, thresholdDeg float64) ([]Corner, error) {
	if len(angles) != len(trk) {
		return nil, fmt.Errorf("%w: angle series length %d does not match track length %d",
			ErrInvalidArgument, len(angles), len(trk))
	}

	var corners []Corner
	for i := 1; i < len(angles)-1; i++ {
		b := substitute(angles[i])
		if b > thresholdDeg {
			continue
		}
		if substitute(angles[i-1]) < b || substitute(angles[i+1]) < b {
			continue
		}
		corners = append(corners, Corner{Index: i, Point: trk[i], AngleDegrees: b})
	}
	return corners, nil
}

// substitute maps an undefined reading to a straight line for comparison.
func substitute(a Angle) float64 {
	if !a.Valid {
		return straightAngleDeg
	}
	return a.Degrees
}
