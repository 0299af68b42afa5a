package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/sportplus/backend/internal/model"
)

// UserRepo provides keyed access to the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,email,password_hash,role,first_name,last_name,birth_date,gender,height_cm,weight_kg,created_at"

// Create inserts a user with an already-hashed password and returns its ID.
func (r *UserRepo) Create(ctx context.Context, email, passwordHash, role string) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, role) VALUES (?,?,?)",
		email, passwordHash, role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// UpdatePasswordHash overwrites the stored credential for one account.
func (r *UserRepo) UpdatePasswordHash(ctx context.Context, id uint64, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=? WHERE id=?", passwordHash, id)
	return err
}

// UpdateProfile applies the non-nil profile fields. Nil pointers leave
// the stored value untouched (COALESCE keeps the current column).
func (r *UserRepo) UpdateProfile(ctx context.Context, u model.User) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE users SET
			first_name = COALESCE(?, first_name),
			last_name  = COALESCE(?, last_name),
			birth_date = COALESCE(?, birth_date),
			gender     = COALESCE(?, gender),
			height_cm  = COALESCE(?, height_cm),
			weight_kg  = COALESCE(?, weight_kg)
		WHERE id = ?`,
		u.FirstName, u.LastName, u.BirthDate, u.Gender, u.HeightCm, u.WeightKg, u.ID)
	return err
}

// ListAll returns every account's id, email and role, ordered by id.
// The ranking view walks this list and recomputes each user in turn.
func (r *UserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, email, role FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Role); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Count returns the total number of accounts.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role,
		&u.FirstName, &u.LastName, &u.BirthDate, &u.Gender,
		&u.HeightCm, &u.WeightKg, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}
