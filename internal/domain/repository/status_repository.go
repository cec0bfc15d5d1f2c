// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"samity/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrStatusNotFound is returned when an account has no status record.
var ErrStatusNotFound = errors.New("account status not found")

// StatusRepository defines the standard operations for moderation-status persistence.
type StatusRepository interface {
	// GetOrCreate returns the status record for the given account, materializing
	// a default action-required record if none exists. The create-if-absent step
	// must be idempotent under concurrent callers; the unique account constraint
	// backs this up at the storage layer.
	GetOrCreate(ctx context.Context, accountID uuid.UUID) (*entity.AccountStatus, error)

	// ListByStatus retrieves every status record currently in the given state.
	ListByStatus(ctx context.Context, status entity.Status) ([]*entity.AccountStatus, error)

	// Update persists a changed status record.
	Update(ctx context.Context, status *entity.AccountStatus) error
}
