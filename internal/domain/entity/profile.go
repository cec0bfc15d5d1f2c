// Package entity contains the core business objects of the project.
package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Role represents the position a member holds in the organization.
type Role string

const (
	// RolePresident indicates the organization's president.
	RolePresident Role = "president"
	// RoleChairman indicates the organization's chairman.
	RoleChairman Role = "chairman"
	// RoleMember indicates a regular member.
	RoleMember Role = "member"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RolePresident, RoleChairman, RoleMember:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// Profile holds the biographical record for an Account. Exactly one exists
// per Account, created lazily the first time the member edits it.
type Profile struct {
	AccountID        uuid.UUID // Foreign key that links this profile to its Account.
	Name             string    // The member's full name.
	FatherName       string    // The member's father's name.
	MotherName       string    // The member's mother's name.
	DateOfBirth      time.Time // Date of birth; only the calendar date is meaningful.
	BirthPlace       string    // Place of birth.
	PermanentAddress string    // The member's permanent address.
	BloodGroup       string    // Blood group, e.g. "O+".
	PostCode         string    // Postal code of the present address.
	PostOffice       string    // Post office of the present address.
	Upazila          string    // Upazila (sub-district) of the present address.
	District         string    // District of the present address.
	City             string    // City of the present address.
	Role             Role      // The member's position in the organization.
	PhotoPath        string    // Media-store key of the normalized profile photo, empty if none.
	CreatedAt        time.Time // Timestamp of when this profile was first saved.
	UpdatedAt        time.Time // Timestamp of the last modification.
}
