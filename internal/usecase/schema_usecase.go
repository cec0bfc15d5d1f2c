// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"samity/internal/domain/entity"

	"github.com/google/uuid"
)

// SchemaUsecase defines the interface for the admin-configurable profile
// field registry and the values members submit against it.
type SchemaUsecase interface {
	// ListFieldDefinitions lists definitions ordered by display order.
	ListFieldDefinitions(ctx context.Context, activeOnly bool) ([]*entity.ProfileFieldDefinition, error)

	// CreateFieldDefinition registers a new field definition.
	CreateFieldDefinition(ctx context.Context, input *FieldDefinitionInput) (*entity.ProfileFieldDefinition, error)

	// UpdateFieldDefinition modifies an existing field definition.
	UpdateFieldDefinition(ctx context.Context, id uuid.UUID, input *FieldDefinitionInput) (*entity.ProfileFieldDefinition, error)

	// DeactivateFieldDefinition retires a definition without deleting the
	// values already submitted against it.
	DeactivateFieldDefinition(ctx context.Context, id uuid.UUID) error

	// SubmitFieldValues upserts the given name-to-value pairs for one account.
	// Unknown or inactive field names are rejected; required fields may not
	// be blanked.
	SubmitFieldValues(ctx context.Context, accountID uuid.UUID, values map[string]string) error

	// ListFieldValues lists the account's submitted values joined with their
	// definitions, in display order.
	ListFieldValues(ctx context.Context, accountID uuid.UUID) ([]*FieldValueOutput, error)
}

// --- Input DTOs ---

// FieldDefinitionInput defines the data required to create or update a field definition.
type FieldDefinitionInput struct {
	Name         string `json:"name" form:"name" validate:"required,max=100"`
	Label        string `json:"label" form:"label" validate:"required,max=200"`
	Type         string `json:"type" form:"type" validate:"required"`
	Required     bool   `json:"required" form:"required"`
	Choices      string `json:"choices" form:"choices"`
	DisplayOrder int    `json:"display_order" form:"display_order"`
}

// --- Output DTOs ---

// FieldValueOutput joins a submitted value with the definition it answers.
type FieldValueOutput struct {
	Definition *entity.ProfileFieldDefinition `json:"definition"`
	Value      string                         `json:"value"`
}
