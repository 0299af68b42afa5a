package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sportplus/backend/internal/model"
)

func fp(v float64) *float64 { return &v }

func TestRecomputeEmptyActivitySet(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s := Recompute(7, nil, now)

	require.Equal(t, uint64(7), s.UserID)
	require.Zero(t, s.TotalWorkouts)
	require.Zero(t, s.TotalDistance)
	require.Zero(t, s.TotalDuration)
	require.Zero(t, s.MaxDistance)
	require.Zero(t, s.AverageSpeed)
	require.Nil(t, s.FastestPace)
	require.Equal(t, now, s.LastUpdated)
}

func TestRecomputeTotalsAndMax(t *testing.T) {
	activities := []model.Activity{
		{Distance: 5.0, Duration: 30},
		{Distance: 10.0, Duration: 55},
		{Distance: 0.0, Duration: 15},
	}

	s := Recompute(1, activities, time.Now().UTC())

	require.Equal(t, 3, s.TotalWorkouts)
	require.InDelta(t, 15.0, s.TotalDistance, 1e-9)
	require.InDelta(t, 10.0, s.MaxDistance, 1e-9)
	require.InDelta(t, 100.0, s.TotalDuration, 1e-9)
}

func TestRecomputeAverageSpeedSkipsZeroAndMissing(t *testing.T) {
	activities := []model.Activity{
		{AverageSpeed: fp(0)},
		{AverageSpeed: fp(8.0)},
		{AverageSpeed: nil},
		{AverageSpeed: fp(12.0)},
	}

	s := Recompute(1, activities, time.Now().UTC())

	// Mean of {8, 12} only; the zero and the missing speed are not
	// counted as zero contributions.
	require.InDelta(t, 10.0, s.AverageSpeed, 1e-9)
}

func TestRecomputeAverageSpeedAllMissing(t *testing.T) {
	activities := []model.Activity{
		{AverageSpeed: nil},
		{AverageSpeed: fp(0)},
	}

	s := Recompute(1, activities, time.Now().UTC())

	require.Zero(t, s.AverageSpeed)
}

func TestRecomputeFastestPaceSkipsZeroAndMissing(t *testing.T) {
	activities := []model.Activity{
		{Pace: nil},
		{Pace: fp(5.5)},
		{Pace: fp(0)},
		{Pace: fp(4.0)},
	}

	s := Recompute(1, activities, time.Now().UTC())

	require.NotNil(t, s.FastestPace)
	require.InDelta(t, 4.0, *s.FastestPace, 1e-9)
}

func TestRecomputeFastestPaceNilWhenNonePositive(t *testing.T) {
	activities := []model.Activity{
		{Pace: nil},
		{Pace: fp(0)},
	}

	s := Recompute(1, activities, time.Now().UTC())

	require.Nil(t, s.FastestPace)
}

func TestRecomputeDeterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	activities := []model.Activity{
		{Distance: 3.2, Duration: 21, Pace: fp(6.5), AverageSpeed: fp(9.2)},
		{Distance: 12.1, Duration: 65, Pace: fp(5.4), AverageSpeed: fp(11.1)},
	}

	a := Recompute(4, activities, now)
	b := Recompute(4, activities, now)

	require.Equal(t, a, b)
}
