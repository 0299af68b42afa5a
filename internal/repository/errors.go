// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific errors or message text.
package repository

import "errors"

// ErrEmailExists is returned when an insert collides with the unique
// email index. Handlers should translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a keyed lookup matches no row. It wraps
// the sql.ErrNoRows case so callers outside this package do not need to
// import database/sql to branch on absence.
var ErrNotFound = errors.New("not found")
