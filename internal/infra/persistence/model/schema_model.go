package model

import (
	"time"

	"github.com/google/uuid"
)

// ProfileFieldDefinitionModel mirrors the 'profile_field_definitions' table.
type ProfileFieldDefinitionModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name         string    `gorm:"type:varchar(100);unique;not null"`
	Label        string    `gorm:"type:varchar(200);not null"`
	Type         string    `gorm:"type:varchar(20);not null"`
	Required     bool      `gorm:"not null;default:false"`
	Choices      string    `gorm:"type:text"`
	DisplayOrder int       `gorm:"not null;default:0"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProfileFieldDefinitionModel) TableName() string {
	return "profile_field_definitions"
}

// ProfileFieldValueModel mirrors the 'profile_field_values' table.
// One value per account and field.
type ProfileFieldValueModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_field_values_account_field"`
	FieldID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_field_values_account_field"`
	Value     string    `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProfileFieldValueModel) TableName() string {
	return "profile_field_values"
}
