// Package entity contains the core business objects of the project.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// FieldType represents the input type of an admin-defined profile field.
type FieldType string

const (
	// FieldTypeText is a single-line text input.
	FieldTypeText FieldType = "text"
	// FieldTypeTextarea is a multi-line text input.
	FieldTypeTextarea FieldType = "textarea"
	// FieldTypeDate is a calendar date input.
	FieldTypeDate FieldType = "date"
	// FieldTypeSelect is a single-select input backed by a choice list.
	FieldTypeSelect FieldType = "select"
	// FieldTypeEmail is an email address input.
	FieldTypeEmail FieldType = "email"
	// FieldTypeNumber is a numeric input.
	FieldTypeNumber FieldType = "number"
)

// String returns the string representation of the FieldType.
func (t FieldType) String() string {
	return string(t)
}

// IsValid checks if the FieldType is a valid value.
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeDate, FieldTypeSelect, FieldTypeEmail, FieldTypeNumber:
		return true
	default:
		return false
	}
}

// ProfileFieldDefinition describes one admin-defined extra profile attribute.
// Definitions are ordered by DisplayOrder and can be deactivated without
// deleting the values already submitted against them.
type ProfileFieldDefinition struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the definition.
	Name         string    // Machine name, unique across all definitions.
	Label        string    // Human-readable label shown next to the input.
	Type         FieldType // The input type.
	Required     bool      // Whether a value must be supplied.
	Choices      string    // Comma-separated choices; meaningful only for the select type.
	DisplayOrder int       // Ascending display position.
	IsActive     bool      // Whether the field is currently offered.
	CreatedAt    time.Time // Timestamp of when the definition was created.
	UpdatedAt    time.Time // Timestamp of the last modification.
}

// ChoiceList splits the comma-separated Choices into trimmed options.
// It returns nil when no choices are configured.
func (d *ProfileFieldDefinition) ChoiceList() []string {
	if strings.TrimSpace(d.Choices) == "" {
		return nil
	}

	parts := strings.Split(d.Choices, ",")
	choices := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			choices = append(choices, trimmed)
		}
	}

	return choices
}

// ProfileFieldValue is one submitted value for one (Account, field) pair.
// At most one value exists per field per account.
type ProfileFieldValue struct {
	ID        uuid.UUID // The Global Unique Identifier (GUID) for the value record.
	AccountID uuid.UUID // The Account the value belongs to.
	FieldID   uuid.UUID // The ProfileFieldDefinition the value answers.
	Value     string    // The submitted value, stored as text regardless of field type.
	CreatedAt time.Time // Timestamp of the first submission.
	UpdatedAt time.Time // Timestamp of the last overwrite.
}
