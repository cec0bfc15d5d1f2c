// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"samity/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileUsecase defines the interface for profile-related business operations.
type ProfileUsecase interface {
	// GetProfile retrieves the member's profile together with its owning account.
	GetProfile(ctx context.Context, accountID uuid.UUID) (*ProfileOutput, error)

	// UpdateProfile validates and saves profile fields, normalizing and
	// storing the photo when one is supplied. A photo that cannot be
	// decoded aborts the whole save.
	UpdateProfile(ctx context.Context, accountID uuid.UUID, input *UpdateProfileInput) (*entity.Profile, error)

	// MemberCard renders the member's card QR code as a PNG.
	MemberCard(ctx context.Context, accountID uuid.UUID) ([]byte, error)
}

// --- Input DTOs ---

// UpdateProfileInput defines the data required to save a profile.
// DateOfBirth is the raw form value and must parse as 2006-01-02.
type UpdateProfileInput struct {
	Name             string `json:"name" form:"name" validate:"required,max=100"`
	FatherName       string `json:"father_name" form:"father_name" validate:"max=100"`
	MotherName       string `json:"mother_name" form:"mother_name" validate:"max=100"`
	DateOfBirth      string `json:"date_of_birth" form:"date_of_birth" validate:"required"`
	BirthPlace       string `json:"birth_place" form:"birth_place" validate:"max=100"`
	PermanentAddress string `json:"permanent_address" form:"permanent_address"`
	BloodGroup       string `json:"blood_group" form:"blood_group" validate:"max=10"`
	PostCode         string `json:"post_code" form:"post_code" validate:"max=20"`
	PostOffice       string `json:"post_office" form:"post_office" validate:"max=100"`
	Upazila          string `json:"upazila" form:"upazila" validate:"max=100"`
	District         string `json:"district" form:"district" validate:"max=100"`
	City             string `json:"city" form:"city" validate:"max=100"`
	Role             string `json:"role" form:"role" validate:"required"`

	// Photo is the raw uploaded file, nil when the member keeps the
	// existing photo. PhotoFilename is the submitted file name.
	Photo         []byte `json:"-"`
	PhotoFilename string `json:"-"`
}

// --- Output DTOs ---

// ProfileOutput bundles a profile with its account and resolved photo URL.
type ProfileOutput struct {
	Account  *entity.Account `json:"account"`
	Profile  *entity.Profile `json:"profile"`
	PhotoURL string          `json:"photo_url,omitempty"`
}
