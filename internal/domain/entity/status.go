// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the moderation state of an Account.
type Status string

const (
	// StatusActionRequired is the initial state of every new status record.
	StatusActionRequired Status = "action"
	// StatusPending indicates the account is awaiting review.
	StatusPending Status = "pending"
	// StatusAccepted indicates the account has been approved.
	StatusAccepted Status = "accept"
	// StatusRejected indicates the account has been rejected.
	StatusRejected Status = "reject"
)

// String returns the string representation of the Status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks if the Status is a valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusActionRequired, StatusPending, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

// Display returns the human-readable label for the Status.
func (s Status) Display() string {
	switch s {
	case StatusActionRequired:
		return "Action Required"
	case StatusPending:
		return "Pending"
	case StatusAccepted:
		return "Accepted"
	case StatusRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// Icon returns the display icon derived purely from the status value.
func (s Status) Icon() string {
	switch s {
	case StatusActionRequired:
		return "⚠️"
	case StatusPending:
		return "⏳"
	case StatusAccepted:
		return "✅"
	case StatusRejected:
		return "❌"
	default:
		return "❓"
	}
}

// AllStatuses lists every valid Status, in display order.
func AllStatuses() []Status {
	return []Status{StatusActionRequired, StatusPending, StatusAccepted, StatusRejected}
}

// AccountStatus is the moderation record for an Account. Exactly one exists
// per Account; it is materialized with StatusActionRequired the first time
// the moderation surface touches an account that lacks one.
type AccountStatus struct {
	AccountID uuid.UUID // Foreign key that links this record to its Account.
	Status    Status    // The current moderation state.
	CreatedAt time.Time // Timestamp of when this record was materialized.
	UpdatedAt time.Time // Timestamp of the last status change.
}

// Icon returns the display icon for the record's current status.
func (s *AccountStatus) Icon() string {
	return s.Status.Icon()
}
