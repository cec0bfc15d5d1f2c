package membercard

import (
	"encoding/json"
	"fmt"

	"samity/config"
	"samity/internal/domain/service"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const defaultSize = 256

type memberCardService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// CardData represents the QR code data structure
type CardData struct {
	AccountID string `json:"account_id"`
	Type      string `json:"type"`
}

// NewMemberCardService creates a new member card service instance
func NewMemberCardService(cfg *config.Config) service.MemberCardService {
	size := defaultSize
	levelName := ""
	if cfg.MemberCard != nil {
		if cfg.MemberCard.Size > 0 {
			size = cfg.MemberCard.Size
		}
		levelName = cfg.MemberCard.ErrorCorrectionLevel
	}

	// Set error correction level
	var level qrcode.RecoveryLevel
	switch levelName {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &memberCardService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GenerateCardQR generates a QR code encoding a member card reference
func (s *memberCardService) GenerateCardQR(accountID uuid.UUID) ([]byte, error) {
	data := CardData{
		AccountID: accountID.String(),
		Type:      "member_card",
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal card data: %w", err)
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseCardQR parses QR code data and returns the account ID
func (s *memberCardService) ParseCardQR(qrData string) (uuid.UUID, error) {
	var data CardData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return uuid.Nil, fmt.Errorf("failed to unmarshal card data: %w", err)
	}

	if data.Type != "member_card" {
		return uuid.Nil, fmt.Errorf("invalid card type: %s", data.Type)
	}

	accountID, err := uuid.Parse(data.AccountID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse account ID: %w", err)
	}

	return accountID, nil
}
