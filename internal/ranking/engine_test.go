package ranking

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func TestParseSortKey(t *testing.T) {
	require.Equal(t, ByTotalDistance, ParseSortKey("totaldistance"))
	require.Equal(t, ByTotalDistance, ParseSortKey("TotalDistance"))
	require.Equal(t, ByTotalDuration, ParseSortKey(" totalduration "))
	require.Equal(t, ByFastestPace, ParseSortKey("FastestPace"))
	require.Equal(t, ByAverageSpeed, ParseSortKey("averagespeed"))

	// Anything unrecognized falls back to workout count.
	require.Equal(t, ByTotalWorkouts, ParseSortKey(""))
	require.Equal(t, ByTotalWorkouts, ParseSortKey("totalworkouts"))
	require.Equal(t, ByTotalWorkouts, ParseSortKey("banana"))
}

func TestRankDescendingByWorkouts(t *testing.T) {
	entries := []Entry{
		{UserID: 1, TotalWorkouts: 2},
		{UserID: 2, TotalWorkouts: 9},
		{UserID: 3, TotalWorkouts: 5},
	}

	got := Rank(entries, ByTotalWorkouts)

	require.Len(t, got, 3)
	require.Equal(t, uint64(2), got[0].UserID)
	require.Equal(t, uint64(3), got[1].UserID)
	require.Equal(t, uint64(1), got[2].UserID)
}

func TestRankByFastestPaceAscendingAndExcludesNil(t *testing.T) {
	entries := []Entry{
		{UserID: 1, FastestPace: fp(5.5)},
		{UserID: 2, FastestPace: nil},
		{UserID: 3, FastestPace: fp(4.0)},
		{UserID: 4, FastestPace: nil},
	}

	got := Rank(entries, ByFastestPace)

	// Users without a fastest pace are gone entirely, not placed last.
	require.Len(t, got, 2)
	require.Equal(t, uint64(3), got[0].UserID)
	require.Equal(t, uint64(1), got[1].UserID)
}

func TestRankByDistanceAndSpeed(t *testing.T) {
	entries := []Entry{
		{UserID: 1, TotalDistance: 10, AverageSpeed: 12},
		{UserID: 2, TotalDistance: 30, AverageSpeed: 8},
	}

	byDist := Rank(entries, ByTotalDistance)
	require.Equal(t, uint64(2), byDist[0].UserID)

	bySpeed := Rank(entries, ByAverageSpeed)
	require.Equal(t, uint64(1), bySpeed[0].UserID)
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	entries := []Entry{
		{UserID: 10, TotalWorkouts: 3},
		{UserID: 20, TotalWorkouts: 3},
		{UserID: 30, TotalWorkouts: 3},
	}

	got := Rank(entries, ByTotalWorkouts)

	require.Equal(t, uint64(10), got[0].UserID)
	require.Equal(t, uint64(20), got[1].UserID)
	require.Equal(t, uint64(30), got[2].UserID)
}

func TestRankDoesNotMutateInput(t *testing.T) {
	entries := []Entry{
		{UserID: 1, TotalWorkouts: 1},
		{UserID: 2, TotalWorkouts: 2},
	}

	_ = Rank(entries, ByTotalWorkouts)

	require.Equal(t, uint64(1), entries[0].UserID)
	require.Equal(t, uint64(2), entries[1].UserID)
}
