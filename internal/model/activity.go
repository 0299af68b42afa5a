package model

import "time"

// Activity records a single workout session owned by one user.
// The GPS track is kept as opaque text exactly as uploaded by the
// client; it is only parsed when an export is requested.
//
// Fields:
//  ID           – primary key identifier.
//  UserID       – owner of the activity (never changes after creation).
//  Name         – display name of the workout.
//  Type         – category such as "run", "ride" or "swim".
//  Duration     – duration in minutes, must be >= 0.
//  Distance     – distance in kilometres, must be >= 0.
//  Pace         – optional pace in minutes per kilometre (nullable).
//  AverageSpeed – optional average speed in km/h (nullable).
//  GpsTrack     – optional serialized track, a JSON array of
//                 {lat, lon} points stored verbatim (nullable).
//  Note         – optional free-form note (nullable).
//  CreatedAt    – creation timestamp in UTC.
type Activity struct {
	ID           uint64    // activities.id
	UserID       uint64    // activities.user_id
	Name         string    // activities.name
	Type         string    // activities.type
	Duration     float64   // activities.duration_min
	Distance     float64   // activities.distance_km
	Pace         *float64  // activities.pace (nullable)
	AverageSpeed *float64  // activities.average_speed (nullable)
	GpsTrack     *string   // activities.gps_track (nullable)
	Note         *string   // activities.note (nullable)
	CreatedAt    time.Time // activities.created_at
}
