package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sportplus/backend/internal/model"
)

// ActivityRepo provides CRUD operations for the 'activities' table.
// Every read is scoped to the owning user; an activity id from another
// account behaves exactly like a missing row.
type ActivityRepo struct{ DB *sql.DB }

func NewActivityRepo(db *sql.DB) *ActivityRepo { return &ActivityRepo{DB: db} }

const activityColumns = "id,user_id,name,type,duration_min,distance_km,pace,average_speed,gps_track,note,created_at"

// Create inserts an activity and returns its ID. CreatedAt is set here
// so the stored instant does not depend on session time zone settings.
func (r *ActivityRepo) Create(ctx context.Context, a *model.Activity) (uint64, error) {
	a.CreatedAt = time.Now().UTC()
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO activities
			(user_id, name, type, duration_min, distance_km, pace, average_speed, gps_track, note, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		a.UserID, a.Name, a.Type, a.Duration, a.Distance, a.Pace, a.AverageSpeed, a.GpsTrack, a.Note, a.CreatedAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	a.ID = uint64(id)
	return a.ID, nil
}

// GetForUser fetches one activity owned by the given user.
func (r *ActivityRepo) GetForUser(ctx context.Context, id, userID uint64) (model.Activity, error) {
	return scanActivity(r.DB.QueryRowContext(ctx,
		"SELECT "+activityColumns+" FROM activities WHERE id=? AND user_id=? LIMIT 1", id, userID))
}

// ListByUser returns all of a user's activities, newest first.
func (r *ActivityRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Activity, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+activityColumns+" FROM activities WHERE user_id=? ORDER BY created_at DESC, id DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Activity
	for rows.Next() {
		a, err := scanActivityRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Update rewrites the mutable content of an owned activity. Identity
// columns (id, user_id, created_at) are never touched.
func (r *ActivityRepo) Update(ctx context.Context, a model.Activity) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE activities SET
			name=?, type=?, duration_min=?, distance_km=?, pace=?, average_speed=?, gps_track=?, note=?
		WHERE id=? AND user_id=?`,
		a.Name, a.Type, a.Duration, a.Distance, a.Pace, a.AverageSpeed, a.GpsTrack, a.Note,
		a.ID, a.UserID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes an owned activity.
func (r *ActivityRepo) Delete(ctx context.Context, id, userID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM activities WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Count returns the total number of activities across all users.
func (r *ActivityRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM activities").Scan(&n)
	return n, err
}

// TotalDistance sums distance_km across all users.
func (r *ActivityRepo) TotalDistance(ctx context.Context) (float64, error) {
	var d float64
	err := r.DB.QueryRowContext(ctx, "SELECT COALESCE(SUM(distance_km),0) FROM activities").Scan(&d)
	return d, err
}

// requireRow maps "zero rows touched" onto ErrNotFound so update/delete
// against a foreign or missing activity reads like a missing row.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActivity(row *sql.Row) (model.Activity, error) {
	a, err := scanActivityRows(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Activity{}, ErrNotFound
	}
	return a, err
}

func scanActivityRows(s rowScanner) (model.Activity, error) {
	var a model.Activity
	err := s.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.Duration, &a.Distance,
		&a.Pace, &a.AverageSpeed, &a.GpsTrack, &a.Note, &a.CreatedAt)
	return a, err
}
