// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"samity/internal/domain/entity"

	"github.com/google/uuid"
)

// StatusFilterAll lists every account regardless of moderation state.
const StatusFilterAll = "all"

// ModerationUsecase defines the interface for the privileged moderation surface.
// Authorization is enforced at the delivery layer; these operations assume a
// privileged caller.
type ModerationUsecase interface {
	// ListAccounts lists accounts with their moderation status, materializing
	// a default status record for any account that lacks one. A filter other
	// than StatusFilterAll restricts the list to that status.
	ListAccounts(ctx context.Context, filter string) ([]*ModeratedAccount, error)

	// AccountDetail retrieves one account with its status and profile.
	// The profile may legitimately be absent.
	AccountDetail(ctx context.Context, accountID uuid.UUID) (*ModeratedAccount, error)

	// TransitionStatus overwrites the account's moderation status. Values
	// outside the known set are ignored and the current record is returned
	// unchanged.
	TransitionStatus(ctx context.Context, accountID uuid.UUID, action string) (*entity.AccountStatus, error)
}

// --- Output DTOs ---

// ModeratedAccount pairs an account with its materialized moderation status.
type ModeratedAccount struct {
	Account *entity.Account       `json:"account"`
	Status  *entity.AccountStatus `json:"status"`
	Icon    string                `json:"icon"`
}
