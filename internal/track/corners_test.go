package track

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/corner.report/internal/geom"
)

func TestSelectCorners(t *testing.T) {
	t.Parallel()

	t.Run("length mismatch is a contract violation", func(t *testing.T) {
		t.Parallel()
		trk := straightTrack(10)
		_, err := SelectCorners(trk, make(AngleSeries, 9), 125)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("straight track has no corners", func(t *testing.T) {
		t.Parallel()
		trk := straightTrack(40)
		angles, err := ComputeBendAngles(trk, 10)
		require.NoError(t, err)

		corners, err := SelectCorners(trk, angles, 125)
		require.NoError(t, err)
		assert.Empty(t, corners)

		// Any threshold below 180 stays empty.
		corners, err = SelectCorners(trk, angles, 179.9)
		require.NoError(t, err)
		assert.Empty(t, corners)
	})

	t.Run("single sharp bend yields exactly one corner at the fold", func(t *testing.T) {
		t.Parallel()
		trk := veeTrack()
		angles, err := ComputeBendAngles(trk, 5)
		require.NoError(t, err)

		corners, err := SelectCorners(trk, angles, 125)
		require.NoError(t, err)
		require.Len(t, corners, 1)
		assert.Equal(t, 10, corners[0].Index)
		assert.Less(t, corners[0].AngleDegrees, 5.0)
		assert.Equal(t, trk[10], corners[0].Point)
	})

	t.Run("boundary indices are never selected", func(t *testing.T) {
		t.Parallel()
		trk := straightTrack(5)
		// Hand-built series with sharp readings at both ends.
		angles := AngleSeries{
			{Degrees: 10, Valid: true},
			{Degrees: 170, Valid: true},
			{Degrees: 170, Valid: true},
			{Degrees: 170, Valid: true},
			{Degrees: 10, Valid: true},
		}
		corners, err := SelectCorners(trk, angles, 125)
		require.NoError(t, err)
		assert.Empty(t, corners)
	})

	t.Run("no corner above the threshold", func(t *testing.T) {
		t.Parallel()
		trk := veeTrack()
		angles, err := ComputeBendAngles(trk, 5)
		require.NoError(t, err)

		corners, err := SelectCorners(trk, angles, 125)
		require.NoError(t, err)
		for _, c := range corners {
			assert.LessOrEqual(t, c.AngleDegrees, 125.0)
		}

		// A threshold sharper than the sharpest reading yields nothing.
		corners, err = SelectCorners(trk, angles, 0.1)
		require.NoError(t, err)
		assert.Empty(t, corners)
	})

	t.Run("undefined entries compare as straight", func(t *testing.T) {
		t.Parallel()
		trk := straightTrack(5)
		angles := AngleSeries{
			{},
			{},
			{Degrees: 90, Valid: true},
			{},
			{},
		}
		corners, err := SelectCorners(trk, angles, 125)
		require.NoError(t, err)
		require.Len(t, corners, 1)
		assert.Equal(t, 2, corners[0].Index)

		// The caller's series is untouched.
		assert.False(t, angles[1].Valid)
		assert.False(t, angles[3].Valid)
	})

	t.Run("shoulders of a monotonic dip are not corners", func(t *testing.T) {
		t.Parallel()
		trk := straightTrack(7)
		angles := AngleSeries{
			{Degrees: 180, Valid: true},
			{Degrees: 120, Valid: true},
			{Degrees: 100, Valid: true},
			{Degrees: 80, Valid: true},
			{Degrees: 100, Valid: true},
			{Degrees: 120, Valid: true},
			{Degrees: 180, Valid: true},
		}
		corners, err := SelectCorners(trk, angles, 125)
		require.NoError(t, err)
		require.Len(t, corners, 1)
		assert.Equal(t, 3, corners[0].Index)
	})

	t.Run("ties with equal neighbours still count", func(t *testing.T) {
		t.Parallel()
		trk := straightTrack(5)
		angles := AngleSeries{
			{Degrees: 180, Valid: true},
			{Degrees: 90, Valid: true},
			{Degrees: 90, Valid: true},
			{Degrees: 90, Valid: true},
			{Degrees: 180, Valid: true},
		}
		corners, err := SelectCorners(trk, angles, 125)
		require.NoError(t, err)
		require.Len(t, corners, 3)
		assert.Equal(t, []int{1, 2, 3}, []int{corners[0].Index, corners[1].Index, corners[2].Index})
	})

	t.Run("idempotent and order-stable", func(t *testing.T) {
		t.Parallel()
		trk := veeTrack()
		angles, err := ComputeBendAngles(trk, 5)
		require.NoError(t, err)

		first, err := SelectCorners(trk, angles, 125)
		require.NoError(t, err)
		second, err := SelectCorners(trk, angles, 125)
		require.NoError(t, err)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("corner selection not stable (-first +second):\n%s", diff)
		}
		for i := 1; i < len(first); i++ {
			assert.Greater(t, first[i].Index, first[i-1].Index)
		}
	})
}

func TestDetector(t *testing.T) {
	t.Parallel()

	t.Run("defaults applied to zero-value config", func(t *testing.T) {
		t.Parallel()
		d := NewDetector(DetectorConfig{})
		assert.Equal(t, DefaultWindow, d.Config().Window)
		assert.Equal(t, DefaultThresholdDeg, d.Config().ThresholdDeg)
	})

	t.Run("runs both stages", func(t *testing.T) {
		t.Parallel()
		d := NewDetector(DetectorConfig{Window: 5, ThresholdDeg: 125})
		angles, corners, err := d.Detect(veeTrack())
		require.NoError(t, err)
		assert.Len(t, angles, 21)
		require.Len(t, corners, 1)
		assert.Equal(t, 10, corners[0].Index)
	})

	t.Run("propagates contract violations", func(t *testing.T) {
		t.Parallel()
		d := NewDetector(DetectorConfig{Window: -1, ThresholdDeg: 125})
		_, _, err := d.Detect(veeTrack())
		require.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	t.Run("straight track", func(t *testing.T) {
		t.Parallel()
		trk := Track{geom.V(0, 0, 0), geom.V(1, 0, 0), geom.V(2, 0, 0), geom.V(3, 0, 0), geom.V(4, 0, 0)}
		angles, err := ComputeBendAngles(trk, 1)
		require.NoError(t, err)
		corners, err := SelectCorners(trk, angles, 125)
		require.NoError(t, err)

		s := Summarize(trk, angles, corners)
		assert.Equal(t, 5, s.PointCount)
		assert.Equal(t, 3, s.DefinedCount)
		assert.Equal(t, 0, s.CornerCount)
		assert.InDelta(t, 180.0, s.MinAngleDeg, 1e-9)
		assert.InDelta(t, 180.0, s.MeanAngleDeg, 1e-9)
		assert.InDelta(t, 4.0, s.PathLengthM, 1e-12)
		assert.InDelta(t, 1.0, s.Straightness, 1e-12)
	})

	t.Run("folded track", func(t *testing.T) {
		t.Parallel()
		trk := veeTrack()
		angles, err := ComputeBendAngles(trk, 5)
		require.NoError(t, err)
		corners, err := SelectCorners(trk, angles, 125)
		require.NoError(t, err)

		s := Summarize(trk, angles, corners)
		assert.Equal(t, 21, s.PointCount)
		assert.Equal(t, 1, s.CornerCount)
		assert.Less(t, s.MinAngleDeg, 5.0)
		// Out 10m and back ~10m; the fold leaves almost no direct distance.
		assert.Less(t, s.Straightness, 0.1)
	})

	t.Run("degenerate inputs", func(t *testing.T) {
		t.Parallel()
		s := Summarize(Track{}, AngleSeries{}, nil)
		assert.Equal(t, RunSummary{}, s)

		one := Track{geom.V(1, 1, 1)}
		s = Summarize(one, AngleSeries{{}}, nil)
		assert.Equal(t, 1, s.PointCount)
		assert.Zero(t, s.PathLengthM)
	})
}
