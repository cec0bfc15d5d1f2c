// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the core entity in the system, representing one registered
// member identity. Role-specific and biographical data lives on the
// associated Profile; moderation state lives on the AccountStatus.
type Account struct {
	ID        uuid.UUID      // The Global Unique Identifier (GUID) for the account.
	Username  string         // The unique login name chosen at registration.
	Email     string         // The account's contact email, unique across all accounts.
	IsActive  bool           // Whether the account may log in. New registrations are active immediately.
	IsAdmin   bool           // Whether the account is privileged for the moderation surface.
	Profile   *Profile       // The biographical profile. Nil until the member fills it in.
	Status    *AccountStatus // The moderation status record. Nil until lazily materialized.
	CreatedAt time.Time      // Timestamp of when this account was created.
	UpdatedAt time.Time      // Timestamp of the last modification to this account.
}

// Credential represents a single way of logging in to an Account.
// The password credential keyed by username is the only provider today,
// but the shape leaves room for external identity providers.
type Credential struct {
	ID           uuid.UUID // The unique ID for this credential record itself.
	AccountID    uuid.UUID // Links this credential to the Account it belongs to.
	Provider     string    // The credential provider, currently always "password".
	Identifier   string    // The provider-scoped login identifier (the username).
	PasswordHash string    // The bcrypt-hashed password, only used for the "password" provider.
	CreatedAt    time.Time // Timestamp of when this credential was created.
}

// ProviderPassword is the provider tag for username/password credentials.
const ProviderPassword = "password"

// RefreshToken represents a long-lived, authorized login session.
// It is used to obtain a new access token after the old one expires.
type RefreshToken struct {
	ID        uuid.UUID // The unique ID for this refresh token record.
	AccountID uuid.UUID // Links this session to the Account it belongs to.
	TokenHash string    // SHA-256 hash of the raw refresh token for secure comparison.
	ExpiresAt time.Time // When this refresh token becomes invalid.
	CreatedAt time.Time // When this session was created (i.e., when the member logged in).
}
