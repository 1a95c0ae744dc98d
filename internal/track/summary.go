package track

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/corner.report/internal/geom"
)

// RunSummary aggregates one detection pass for reporting and persistence.
type RunSummary struct {
	PointCount   int     `json:"point_count"`
	DefinedCount int     `json:"defined_count"`
	CornerCount  int     `json:"corner_count"`
	MinAngleDeg  float64 `json:"min_angle_deg"`
	MeanAngleDeg float64 `json:"mean_angle_deg"`
	PathLengthM  float64 `json:"path_length_m"`
	Straightness float64 `json:"straightness"`
}

// Summarize derives summary statistics from a detection pass. Min and mean
// cover only the defined readings; both are zero when nothing was defined.
// Straightness is direct start-to-end distance over total path length
// (0=folded back, 1=perfectly straight).
func Summarize(trk Track, angles AngleSeries, corners []Corner) RunSummary {
	s := RunSummary{
		PointCount:  len(trk),
		CornerCount: len(corners),
	}

	defined := make([]float64, 0, len(angles))
	for _, a := range angles {
		if a.Valid {
			defined = append(defined, a.Degrees)
		}
	}
	s.DefinedCount = len(defined)
	if len(defined) > 0 {
		s.MinAngleDeg = floats.Min(defined)
		s.MeanAngleDeg = stat.Mean(defined, nil)
	}

	if len(trk) >= 2 {
		for i := 1; i < len(trk); i++ {
			s.PathLengthM += geom.Distance(trk[i-1], trk[i])
		}
		if s.PathLengthM > 0 {
			s.Straightness = geom.Distance(trk[0], trk[len(trk)-1]) / s.PathLengthM
		}
	}
	return s
}
