package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. PostgreSQL generates UUIDs via gen_random_uuid().
type AccountModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username  string    `gorm:"type:varchar(150);unique;not null"`
	Email     string    `gorm:"type:varchar(255);unique;not null"`
	IsActive  bool      `gorm:"not null;default:false"`
	IsAdmin   bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Profile     *ProfileModel       `gorm:"foreignKey:AccountID"`
	Status      *AccountStatusModel `gorm:"foreignKey:AccountID"`
	Credentials []CredentialModel   `gorm:"foreignKey:AccountID"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
