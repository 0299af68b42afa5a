package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sportplus/backend/internal/model"
)

// StatsRepo stores the derived per-user summary in the 'user_stats'
// table, one row per user. The row is rewritten wholesale on every
// recompute; a row's write is atomic, which is all the serialization
// the aggregation layer relies on from the database.
type StatsRepo struct{ DB *sql.DB }

func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{DB: db} }

// Upsert inserts or replaces the summary row for the user.
func (r *StatsRepo) Upsert(ctx context.Context, s model.UserStats) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO user_stats
			(user_id, total_workouts, total_distance, average_speed, max_distance, total_duration, fastest_pace, last_updated)
		VALUES (?,?,?,?,?,?,?,?)
		ON DUPLICATE KEY UPDATE
			total_workouts=VALUES(total_workouts),
			total_distance=VALUES(total_distance),
			average_speed=VALUES(average_speed),
			max_distance=VALUES(max_distance),
			total_duration=VALUES(total_duration),
			fastest_pace=VALUES(fastest_pace),
			last_updated=VALUES(last_updated)`,
		s.UserID, s.TotalWorkouts, s.TotalDistance, s.AverageSpeed,
		s.MaxDistance, s.TotalDuration, s.FastestPace, s.LastUpdated)
	return err
}

// GetByUser fetches the stored summary for one user.
func (r *StatsRepo) GetByUser(ctx context.Context, userID uint64) (model.UserStats, error) {
	var s model.UserStats
	err := r.DB.QueryRowContext(ctx,
		`SELECT user_id, total_workouts, total_distance, average_speed, max_distance, total_duration, fastest_pace, last_updated
		FROM user_stats WHERE user_id=? LIMIT 1`, userID).
		Scan(&s.UserID, &s.TotalWorkouts, &s.TotalDistance, &s.AverageSpeed,
			&s.MaxDistance, &s.TotalDuration, &s.FastestPace, &s.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return model.UserStats{}, ErrNotFound
	}
	return s, err
}
