package service

import (
	"github.com/google/uuid"
)

// MemberCardService defines the interface for member card QR code generation and parsing
type MemberCardService interface {
	// GenerateCardQR generates a QR code encoding a member card reference
	GenerateCardQR(accountID uuid.UUID) ([]byte, error)

	// ParseCardQR parses QR code data and returns the account ID
	ParseCardQR(qrData string) (uuid.UUID, error)
}
