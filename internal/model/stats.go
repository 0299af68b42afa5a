package model

import "time"

// UserStats is the cached per-user summary stored in the
// `user_stats` table, one row per user. It is always derived from
// the user's current activity set by the aggregator and rewritten
// wholesale on every recompute; it is a cache, never a source of
// truth, and may be transiently stale between an activity mutation
// and the next recompute.
//
// Fields:
//  UserID        – owner of the summary (unique).
//  TotalWorkouts – count of all activities.
//  TotalDistance – sum of distances in kilometres.
//  AverageSpeed  – mean of the positive average speeds, 0 when none.
//  MaxDistance   – largest single-activity distance.
//  TotalDuration – sum of durations in minutes.
//  FastestPace   – minimum positive pace, nil when no activity has one.
//  LastUpdated   – UTC instant of the last recompute.
type UserStats struct {
	UserID        uint64    // user_stats.user_id
	TotalWorkouts int       // user_stats.total_workouts
	TotalDistance float64   // user_stats.total_distance
	AverageSpeed  float64   // user_stats.average_speed
	MaxDistance   float64   // user_stats.max_distance
	TotalDuration float64   // user_stats.total_duration
	FastestPace   *float64  // user_stats.fastest_pace (nullable)
	LastUpdated   time.Time // user_stats.last_updated
}
