package model

import (
	"time"

	"github.com/google/uuid"
)

// ProfileModel mirrors the 'profiles' table. One row per account.
type ProfileModel struct {
	AccountID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name             string    `gorm:"type:varchar(100);not null"`
	FatherName       string    `gorm:"type:varchar(100)"`
	MotherName       string    `gorm:"type:varchar(100)"`
	DateOfBirth      time.Time `gorm:"type:date"`
	BirthPlace       string `gorm:"type:varchar(100)"`
	PermanentAddress string `gorm:"type:text"`
	BloodGroup       string `gorm:"type:varchar(10)"`
	PostCode         string `gorm:"type:varchar(20)"`
	PostOffice       string `gorm:"type:varchar(100)"`
	Upazila          string `gorm:"type:varchar(100)"`
	District         string `gorm:"type:varchar(100)"`
	City             string `gorm:"type:varchar(100)"`
	Role             string `gorm:"type:varchar(20);not null"`
	PhotoPath        string `gorm:"type:varchar(255)"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}

// AccountStatusModel mirrors the 'account_statuses' table. One row per account,
// created lazily the first time a moderator views the account.
type AccountStatusModel struct {
	AccountID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status    string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountStatusModel) TableName() string {
	return "account_statuses"
}
