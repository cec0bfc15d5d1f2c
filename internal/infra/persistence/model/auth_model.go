package model

import (
	"time"

	"github.com/google/uuid"
)

// CredentialModel mirrors the 'account_credentials' table.
type CredentialModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AccountID    uuid.UUID `gorm:"type:uuid;not null"`
	Provider     string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_credentials_provider_identifier"`
	Identifier   string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_credentials_provider_identifier"`
	PasswordHash string    `gorm:"type:varchar(255)"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (CredentialModel) TableName() string {
	return "account_credentials"
}

// RefreshTokenModel mirrors the 'refresh_tokens' table.
type RefreshTokenModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AccountID uuid.UUID `gorm:"type:uuid;not null"`
	TokenHash string    `gorm:"type:varchar(255);unique;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}
