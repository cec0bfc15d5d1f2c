package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"samity/config"
	"samity/internal/domain/service"
)

// activationService signs activation links with an HMAC keyed by a
// dedicated secret. References are base64 so raw account IDs never
// appear in mailed URLs.
type activationService struct {
	secret []byte
}

// NewActivationService is the constructor for activationService.
func NewActivationService(cfg *config.Config) (service.ActivationService, error) {
	if cfg.SecretKey.Activation == "" {
		return nil, errors.New("activation secret must be provided")
	}

	return &activationService{secret: []byte(cfg.SecretKey.Activation)}, nil
}

// EncodeRef turns an account ID into an opaque URL-safe reference.
func (s *activationService) EncodeRef(accountID uuid.UUID) string {
	return base64.RawURLEncoding.EncodeToString([]byte(accountID.String()))
}

// DecodeRef reverses EncodeRef. Malformed input returns an error.
func (s *activationService) DecodeRef(ref string) (uuid.UUID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(ref)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "decode account ref")
	}

	accountID, err := uuid.Parse(string(raw))
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "parse account ref")
	}

	return accountID, nil
}

// MakeToken produces a signed activation token for the account.
func (s *activationService) MakeToken(accountID uuid.UUID) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte("activate:" + accountID.String()))

	return hex.EncodeToString(mac.Sum(nil))
}

// CheckToken reports whether token is a valid activation token for the account.
func (s *activationService) CheckToken(accountID uuid.UUID, token string) bool {
	want := s.MakeToken(accountID)

	return hmac.Equal([]byte(want), []byte(token))
}
