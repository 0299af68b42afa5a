// Package stats derives the cached per-user summary from the user's
// full activity set. Recompute is a pure function of its inputs so the
// summary can be rebuilt at any time and two runs over the same
// activities always agree (timestamp aside).
package stats

import (
	"time"

	"github.com/sportplus/backend/internal/model"
)

// Recompute builds a UserStats value from the complete set of the
// user's activities. With no activities every total is zero and
// FastestPace is nil; that is the defined empty state, not an error.
//
// AverageSpeed is the mean over only the activities that carry a speed
// strictly greater than zero. A zero or absent speed means "not
// measured" and must not drag the mean toward zero, so those
// activities are excluded from the mean rather than counted as zero
// contributions. FastestPace applies the same filter and takes the
// minimum, since a lower pace is faster.
func Recompute(userID uint64, activities []model.Activity, now time.Time) model.UserStats {
	s := model.UserStats{UserID: userID, LastUpdated: now}
	if len(activities) == 0 {
		return s
	}

	s.TotalWorkouts = len(activities)

	var speedSum float64
	var speedCount int
	for _, a := range activities {
		s.TotalDistance += a.Distance
		s.TotalDuration += a.Duration
		if a.Distance > s.MaxDistance {
			s.MaxDistance = a.Distance
		}
		if a.AverageSpeed != nil && *a.AverageSpeed > 0 {
			speedSum += *a.AverageSpeed
			speedCount++
		}
		if a.Pace != nil && *a.Pace > 0 {
			if s.FastestPace == nil || *a.Pace < *s.FastestPace {
				p := *a.Pace
				s.FastestPace = &p
			}
		}
	}
	if speedCount > 0 {
		s.AverageSpeed = speedSum / float64(speedCount)
	}
	return s
}
