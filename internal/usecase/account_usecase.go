// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"samity/internal/domain/entity"
)

// AccountUsecase defines the interface for registration and session business operations.
type AccountUsecase interface {
	// Register creates a new account with a password credential.
	// It does not sign the caller in.
	Register(ctx context.Context, input *RegisterInput) (*entity.Account, error)

	// Login verifies a password credential and opens a token session.
	Login(ctx context.Context, input *LoginInput) (*SessionOutput, error)

	// Activate verifies a mailed activation link, marks the account active
	// and signs the caller in. Any malformed or stale link yields the soft
	// activation-invalid outcome with no state change.
	Activate(ctx context.Context, ref string, token string) (*SessionOutput, error)

	// RefreshSession rotates a refresh token into a fresh token pair.
	RefreshSession(ctx context.Context, refreshToken string) (*TokenPair, error)

	// Logout ends the session identified by the refresh token.
	Logout(ctx context.Context, refreshToken string) error
}

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username             string `json:"username" form:"username" validate:"required,min=3,max=150"`
	Email                string `json:"email" form:"email" validate:"required,email"`
	Password             string `json:"password" form:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation" validate:"required"`
}

// LoginInput defines the data required to log in.
// Login accepts either the username or the email address.
type LoginInput struct {
	Login    string `json:"login" form:"login" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// --- Output DTOs ---

// TokenPair carries one issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SessionOutput is the result of a successful login or activation.
// HasProfile lets the handler route first-time members to the profile
// edit form instead of the profile view.
type SessionOutput struct {
	Account    *entity.Account `json:"account"`
	Tokens     TokenPair       `json:"tokens"`
	HasProfile bool            `json:"has_profile"`
}
