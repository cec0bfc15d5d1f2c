package service

import "github.com/google/uuid"

// ActivationService issues and verifies the single-use links mailed out
// after registration. A link carries an opaque account reference plus a
// signed token so the raw account ID never appears in a URL.
type ActivationService interface {
	// EncodeRef turns an account ID into an opaque URL-safe reference.
	EncodeRef(accountID uuid.UUID) string

	// DecodeRef reverses EncodeRef. Malformed input returns an error.
	DecodeRef(ref string) (uuid.UUID, error)

	// MakeToken produces a signed activation token for the account.
	MakeToken(accountID uuid.UUID) string

	// CheckToken reports whether token is a valid activation token for the account.
	CheckToken(accountID uuid.UUID, token string) bool
}
