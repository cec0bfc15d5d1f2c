// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "samity/internal/delivery/context"
	"samity/internal/domain/entity"
	domainerrors "samity/internal/domain/errors"
	"samity/internal/domain/repository"
	"samity/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// moderationService implements the ModerationUsecase interface.
type moderationService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// ModerationServiceParams holds dependencies for moderationService, injected by Fx.
type ModerationServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewModerationService is the constructor for moderationService.
func NewModerationService(params ModerationServiceParams) usecase.ModerationUsecase {
	return &moderationService{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *moderationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListAccounts lists accounts with their moderation status. Accounts without
// a status record get one materialized with the default state, so the panel
// never shows a hole.
func (srv *moderationService) ListAccounts(ctx context.Context, filter string) ([]*usecase.ModeratedAccount, error) {
	srv.log(ctx).Debug("Listing accounts for moderation", slog.String("filter", filter))

	var listed []*usecase.ModeratedAccount

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()
		statusRepo := repoFactory.StatusRepo()

		var accounts []*entity.Account
		var listErr error

		status := entity.Status(filter)
		switch {
		case filter == "" || filter == usecase.StatusFilterAll:
			accounts, listErr = accountRepo.List(ctx)
		case status.IsValid():
			// A status filter can only match accounts whose status record
			// already exists; unmaterialized accounts are by definition not
			// in the requested state.
			records, recErr := statusRepo.ListByStatus(ctx, status)
			if recErr != nil {
				return errors.Wrap(recErr, "failed to list statuses")
			}
			ids := make([]uuid.UUID, 0, len(records))
			for _, record := range records {
				ids = append(ids, record.AccountID)
			}
			accounts, listErr = accountRepo.FindByIDs(ctx, ids)
		default:
			return domainerrors.ErrValidationFailed.
				WithDetails("status").
				WrapMessage("unknown status filter")
		}
		if listErr != nil {
			return errors.Wrap(listErr, "failed to list accounts")
		}

		listed = make([]*usecase.ModeratedAccount, 0, len(accounts))
		for _, account := range accounts {
			record, statusErr := statusRepo.GetOrCreate(ctx, account.ID)
			if statusErr != nil {
				return errors.Wrap(statusErr, "failed to materialize account status")
			}
			account.Status = record

			listed = append(listed, &usecase.ModeratedAccount{
				Account: account,
				Status:  record,
				Icon:    record.Icon(),
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return listed, nil
}

// AccountDetail retrieves one account with its status and profile.
func (srv *moderationService) AccountDetail(ctx context.Context, accountID uuid.UUID) (*usecase.ModeratedAccount, error) {
	srv.log(ctx).Debug("Getting account detail", slog.Any("accountID", accountID))

	var detail *usecase.ModeratedAccount

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		account, findErr := repoFactory.AccountRepo().FindByID(ctx, accountID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound
			}

			return errors.Wrap(findErr, "failed to find account")
		}

		record, statusErr := repoFactory.StatusRepo().GetOrCreate(ctx, accountID)
		if statusErr != nil {
			return errors.Wrap(statusErr, "failed to materialize account status")
		}
		account.Status = record

		detail = &usecase.ModeratedAccount{
			Account: account,
			Status:  record,
			Icon:    record.Icon(),
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return detail, nil
}

// TransitionStatus overwrites the account's moderation status. An action
// outside the known set leaves the record untouched and returns it as-is.
func (srv *moderationService) TransitionStatus(ctx context.Context, accountID uuid.UUID, action string) (*entity.AccountStatus, error) {
	srv.log(ctx).Info("Transitioning account status", slog.Any("accountID", accountID), slog.String("action", action))

	var result *entity.AccountStatus

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		statusRepo := repoFactory.StatusRepo()

		record, statusErr := statusRepo.GetOrCreate(ctx, accountID)
		if statusErr != nil {
			if errors.Is(statusErr, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound
			}

			return errors.Wrap(statusErr, "failed to materialize account status")
		}

		next := entity.Status(action)
		if !next.IsValid() {
			// Unknown actions are deliberately ignored.
			srv.log(ctx).Warn("Ignoring unknown status action", slog.Any("accountID", accountID), slog.String("action", action))
			result = record

			return nil
		}

		record.Status = next
		if updateErr := statusRepo.Update(ctx, record); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update account status")
		}
		result = record

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
