// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"samity/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for profile-schema persistence.
var (
	// ErrFieldDefinitionNotFound is returned when a field definition is not found.
	ErrFieldDefinitionNotFound = errors.New("profile field definition not found")
	// ErrDuplicateFieldName is returned when a definition name collides with an existing one.
	ErrDuplicateFieldName = errors.New("profile field name already exists")
)

// SchemaRepository defines the operations for the admin-configurable
// profile field registry and the per-account values submitted against it.
type SchemaRepository interface {
	// ListDefinitions retrieves field definitions ordered by display order.
	// With activeOnly set, deactivated definitions are skipped.
	ListDefinitions(ctx context.Context, activeOnly bool) ([]*entity.ProfileFieldDefinition, error)

	// FindDefinitionByID retrieves a single field definition by its ID.
	FindDefinitionByID(ctx context.Context, id uuid.UUID) (*entity.ProfileFieldDefinition, error)

	// FindDefinitionByName retrieves a single field definition by its unique name.
	FindDefinitionByName(ctx context.Context, name string) (*entity.ProfileFieldDefinition, error)

	// CreateDefinition persists a new field definition.
	CreateDefinition(ctx context.Context, def *entity.ProfileFieldDefinition) error

	// UpdateDefinition modifies an existing field definition.
	UpdateDefinition(ctx context.Context, def *entity.ProfileFieldDefinition) error

	// UpsertValue stores a submitted value, overwriting any previous value
	// for the same (account, field) pair.
	UpsertValue(ctx context.Context, value *entity.ProfileFieldValue) error

	// ListValues retrieves every value the given account has submitted.
	ListValues(ctx context.Context, accountID uuid.UUID) ([]*entity.ProfileFieldValue, error)
}
