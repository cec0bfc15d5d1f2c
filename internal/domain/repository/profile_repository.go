// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"samity/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProfileNotFound is returned when an account has no profile yet.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository defines the standard operations for profile persistence.
// Profiles are strictly one-per-account; Save is an insert-or-update keyed
// by the owning account.
type ProfileRepository interface {
	// FindByAccount retrieves the profile belonging to the given account.
	FindByAccount(ctx context.Context, accountID uuid.UUID) (*entity.Profile, error)

	// Save persists the profile, inserting it on first edit and updating it afterwards.
	Save(ctx context.Context, profile *entity.Profile) error
}
