// Package bootstrap holds one-time startup procedures.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/sportplus/backend/internal/model"
	"github.com/sportplus/backend/internal/repository"
	"github.com/sportplus/backend/internal/utils"
)

// EnsureAdmin guarantees that exactly one administrative account with
// the configured email exists. Run once at process start; it is
// idempotent, so restarting the server never creates a second admin or
// touches an existing one's password.
func EnsureAdmin(ctx context.Context, users *repository.UserRepo, email, password string, bcryptCost int) error {
	_, err := users.GetByEmail(ctx, email)
	if err == nil {
		return nil // already present, nothing to do
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("lookup admin account: %w", err)
	}

	hash, err := utils.HashPassword(password, bcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if _, err := users.Create(ctx, email, hash, model.RoleAdmin); err != nil {
		// A concurrent replica may have won the race; that still
		// satisfies "exactly one admin exists".
		if errors.Is(err, repository.ErrEmailExists) {
			return nil
		}
		return fmt.Errorf("create admin account: %w", err)
	}
	log.Printf("bootstrap: administrator account %s created", email)
	return nil
}
