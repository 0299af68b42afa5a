package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. The json tags are omitted here because these structs
// are primarily used internally by the repository layer; handlers
// define separate response types with appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – name of the role (USER or ADMIN).
//  FirstName    – optional given name shown on the profile.
//  LastName     – optional family name shown on the profile.
//  BirthDate    – optional date of birth (nullable).
//  Gender       – optional free-form gender string (nullable).
//  HeightCm     – optional height in centimetres (nullable).
//  WeightKg     – optional weight in kilograms (nullable).
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64     // users.id
	Email        string     // users.email
	PasswordHash string     // users.password_hash
	Role         string     // users.role
	FirstName    *string    // users.first_name (nullable)
	LastName     *string    // users.last_name (nullable)
	BirthDate    *time.Time // users.birth_date (nullable)
	Gender       *string    // users.gender (nullable)
	HeightCm     *float64   // users.height_cm (nullable)
	WeightKg     *float64   // users.weight_kg (nullable)
	CreatedAt    time.Time  // users.created_at
}

// Roles stored in users.role. ADMIN accounts are created only by the
// startup bootstrap; registration always produces USER.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)
