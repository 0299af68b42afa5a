// Package ranking projects freshly recomputed user statistics into a
// leaderboard ordered by a caller-selected metric.
package ranking

import (
	"sort"
	"strings"

	"github.com/sportplus/backend/internal/model"
)

// SortKey is the closed set of supported ranking metrics. Anything the
// parser does not recognize falls back to ByTotalWorkouts, so an
// unsupported key is an explicit, tested branch rather than a silent
// fallthrough.
type SortKey int

const (
	ByTotalWorkouts SortKey = iota
	ByTotalDistance
	ByTotalDuration
	ByFastestPace
	ByAverageSpeed
)

// ParseSortKey maps a query-string value onto a SortKey,
// case-insensitively. Unknown values default to ByTotalWorkouts.
func ParseSortKey(s string) SortKey {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "totaldistance":
		return ByTotalDistance
	case "totalduration":
		return ByTotalDuration
	case "fastestpace":
		return ByFastestPace
	case "averagespeed":
		return ByAverageSpeed
	default:
		return ByTotalWorkouts
	}
}

// Entry is one account's row in the leaderboard view.
type Entry struct {
	UserID        uint64   `json:"userId"`
	Email         string   `json:"email"`
	TotalWorkouts int      `json:"totalWorkouts"`
	TotalDistance float64  `json:"totalDistance"`
	TotalDuration float64  `json:"totalDuration"`
	FastestPace   *float64 `json:"fastestPace"`
	AverageSpeed  float64  `json:"averageSpeed"`
}

// NewEntry projects a stats row plus the owner's email into a
// leaderboard entry.
func NewEntry(email string, s model.UserStats) Entry {
	return Entry{
		UserID:        s.UserID,
		Email:         email,
		TotalWorkouts: s.TotalWorkouts,
		TotalDistance: s.TotalDistance,
		TotalDuration: s.TotalDuration,
		FastestPace:   s.FastestPace,
		AverageSpeed:  s.AverageSpeed,
	}
}

// Rank orders entries by the requested key. Count, distance, duration
// and speed rank descending. Fastest pace ranks ascending (lower pace
// is faster) and drops entries with no recorded pace entirely; they do
// not appear last, they do not appear at all. The sort is stable, so
// ties keep their input order.
func Rank(entries []Entry, key SortKey) []Entry {
	out := make([]Entry, 0, len(entries))
	if key == ByFastestPace {
		for _, e := range entries {
			if e.FastestPace != nil {
				out = append(out, e)
			}
		}
		sort.SliceStable(out, func(i, j int) bool {
			return *out[i].FastestPace < *out[j].FastestPace
		})
		return out
	}

	out = append(out, entries...)
	var less func(i, j int) bool
	switch key {
	case ByTotalDistance:
		less = func(i, j int) bool { return out[i].TotalDistance > out[j].TotalDistance }
	case ByTotalDuration:
		less = func(i, j int) bool { return out[i].TotalDuration > out[j].TotalDuration }
	case ByAverageSpeed:
		less = func(i, j int) bool { return out[i].AverageSpeed > out[j].AverageSpeed }
	default:
		less = func(i, j int) bool { return out[i].TotalWorkouts > out[j].TotalWorkouts }
	}
	sort.SliceStable(out, less)
	return out
}
