// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "samity/internal/delivery/context"
	"samity/internal/domain/entity"
	domainerrors "samity/internal/domain/errors"
	"samity/internal/domain/repository"
	"samity/internal/domain/service"
	"samity/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager         repository.TransactionManager
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	activationService service.ActivationService
	logger            *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager         repository.TransactionManager
	Hasher            service.PasswordHasher
	TokenService      service.TokenService
	ActivationService service.ActivationService
	Logger            *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:         params.TxManager,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		activationService: params.ActivationService,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account with a password credential.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.Account, error) {
	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username), slog.String("email", input.Email))

	if input.Password != input.PasswordConfirmation {
		return nil, domainerrors.ErrPasswordMismatch
	}

	// Hash outside the transaction (bcrypt is CPU-bound).
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	var registered *entity.Account
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()
		authRepo := repoFactory.AuthRepo()

		// Uniqueness pre-checks give field-scoped outcomes; the DB unique
		// constraints still back them up against races.
		if _, findErr := accountRepo.FindByUsername(ctx, input.Username); findErr == nil {
			return domainerrors.ErrUsernameTaken
		} else if !errors.Is(findErr, repository.ErrAccountNotFound) {
			return errors.Wrap(findErr, "failed to check username uniqueness")
		}

		if _, findErr := accountRepo.FindByEmail(ctx, input.Email); findErr == nil {
			return domainerrors.ErrEmailTaken
		} else if !errors.Is(findErr, repository.ErrAccountNotFound) {
			return errors.Wrap(findErr, "failed to check email uniqueness")
		}

		newAccount := &entity.Account{
			Username: input.Username,
			Email:    input.Email,
			IsActive: true,
		}
		if createErr := accountRepo.Create(ctx, newAccount); createErr != nil {
			return errors.Wrap(createErr, "failed to create account during registration")
		}

		newCredential := &entity.Credential{
			AccountID:    newAccount.ID,
			Provider:     entity.ProviderPassword,
			Identifier:   input.Username,
			PasswordHash: hashedPassword,
		}
		if createErr := authRepo.CreateCredential(ctx, newCredential); createErr != nil {
			return errors.Wrap(createErr, "failed to create credential during registration")
		}

		registered = newAccount

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("accountID", registered.ID))

	return registered, nil
}

// Login verifies a password credential and opens a token session.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.SessionOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("login", input.Login))

	credential, err := srv.resolveCredential(ctx, input.Login)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("login", input.Login), slog.Any("error", err))

		return nil, err
	}

	// Check password outside transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, credential.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("login", input.Login))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	account, err := srv.loadAccount(ctx, credential.AccountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		srv.log(ctx).Warn("Login rejected for inactive account", slog.Any("accountID", account.ID))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "account is not active")
	}

	session, err := srv.openSession(ctx, account)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("login", input.Login), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Login completed", slog.Any("accountID", account.ID))

	return session, nil
}

// Activate verifies a mailed activation link, marks the account active and
// signs the caller in. Every failure collapses into the activation-invalid
// outcome so the link leaks nothing about existing accounts.
func (srv *accountService) Activate(ctx context.Context, ref string, token string) (*usecase.SessionOutput, error) {
	accountID, err := srv.activationService.DecodeRef(ref)
	if err != nil {
		srv.log(ctx).Warn("Activation failed on malformed ref", slog.Any("error", err))

		return nil, domainerrors.ErrActivationInvalid
	}

	if !srv.activationService.CheckToken(accountID, token) {
		srv.log(ctx).Warn("Activation failed on token check", slog.Any("accountID", accountID))

		return nil, domainerrors.ErrActivationInvalid
	}

	var account *entity.Account
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		found, findErr := accountRepo.FindByID(ctx, accountID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrAccountNotFound) {
				return domainerrors.ErrActivationInvalid
			}

			return errors.Wrap(findErr, "failed to find account for activation")
		}

		if !found.IsActive {
			found.IsActive = true
			if updateErr := accountRepo.Update(ctx, found); updateErr != nil {
				return errors.Wrap(updateErr, "failed to activate account")
			}
		}
		account = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	session, err := srv.openSession(ctx, account)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Account activated", slog.Any("accountID", account.ID))

	return session, nil
}

// RefreshSession rotates a refresh token into a fresh token pair.
func (srv *accountService) RefreshSession(ctx context.Context, refreshToken string) (*usecase.TokenPair, error) {
	claims, err := srv.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, err.Error())
	}

	account, err := srv.loadAccount(ctx, claims.AccountID)
	if err != nil {
		return nil, err
	}

	newAccess, newRefresh, err := srv.tokenService.GenerateTokens(account.ID, rolesForAccount(account))
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	oldHash := srv.tokenService.HashToken(refreshToken)
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		authRepo := repoFactory.AuthRepo()

		stored, findErr := authRepo.FindRefreshTokenByHash(ctx, oldHash)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrTokenNotFound) {
				return domainerrors.ErrRefreshTokenInvalid
			}

			return errors.Wrap(findErr, "failed to find refresh token")
		}
		if time.Now().After(stored.ExpiresAt) {
			// Expired sessions are removed on sight.
			if delErr := authRepo.DeleteRefreshTokenByHash(ctx, oldHash); delErr != nil && !errors.Is(delErr, repository.ErrTokenNotFound) {
				return errors.Wrap(delErr, "failed to delete expired refresh token")
			}

			return domainerrors.ErrRefreshTokenInvalid
		}

		// Rotate: the old session ends the moment the new one begins.
		if delErr := authRepo.DeleteRefreshTokenByHash(ctx, oldHash); delErr != nil && !errors.Is(delErr, repository.ErrTokenNotFound) {
			return errors.Wrap(delErr, "failed to delete rotated refresh token")
		}

		newToken := &entity.RefreshToken{
			AccountID: account.ID,
			TokenHash: srv.tokenService.HashToken(newRefresh),
			ExpiresAt: time.Now().Add(srv.tokenService.GetRefreshTokenDuration()),
		}
		if createErr := authRepo.CreateRefreshToken(ctx, newToken); createErr != nil {
			return errors.Wrap(createErr, "failed to create rotated refresh token")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Session refresh failed", slog.Any("error", err))

		return nil, err
	}

	return &usecase.TokenPair{AccessToken: newAccess, RefreshToken: newRefresh}, nil
}

// Logout ends the session identified by the refresh token.
// Logging out an already-ended session succeeds.
func (srv *accountService) Logout(ctx context.Context, refreshToken string) error {
	hash := srv.tokenService.HashToken(refreshToken)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if delErr := repoFactory.AuthRepo().DeleteRefreshTokenByHash(ctx, hash); delErr != nil && !errors.Is(delErr, repository.ErrTokenNotFound) {
			return errors.Wrap(delErr, "failed to delete refresh token")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Logout failed", slog.Any("error", err))

		return err
	}

	return nil
}

// resolveCredential resolves the password credential for a login value,
// trying the username first and the email address second.
func (srv *accountService) resolveCredential(ctx context.Context, login string) (*entity.Credential, error) {
	var credential *entity.Credential

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		authRepo := repoFactory.AuthRepo()
		accountRepo := repoFactory.AccountRepo()

		found, findErr := authRepo.FindCredential(ctx, entity.ProviderPassword, login)
		if findErr == nil {
			credential = found

			return nil
		}
		if !errors.Is(findErr, repository.ErrCredentialNotFound) {
			return errors.Wrap(findErr, "failed to find credential")
		}

		if !strings.Contains(login, "@") {
			return errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		account, findErr := accountRepo.FindByEmail(ctx, login)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrAccountNotFound) {
				return errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
			}

			return errors.Wrap(findErr, "failed to find account by email")
		}

		found, findErr = authRepo.FindCredential(ctx, entity.ProviderPassword, account.Username)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrCredentialNotFound) {
				return errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
			}

			return errors.Wrap(findErr, "failed to find credential by email account")
		}
		credential = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return credential, nil
}

func (srv *accountService) loadAccount(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	var account *entity.Account

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, findErr := repoFactory.AccountRepo().FindByID(ctx, accountID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound
			}

			return errors.Wrap(findErr, "failed to find account by id")
		}
		account = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// openSession issues a token pair for the account and persists the refresh
// token hash.
func (srv *accountService) openSession(ctx context.Context, account *entity.Account) (*usecase.SessionOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(account.ID, rolesForAccount(account))
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	newToken := &entity.RefreshToken{
		AccountID: account.ID,
		TokenHash: srv.tokenService.HashToken(refreshToken),
		ExpiresAt: time.Now().Add(srv.tokenService.GetRefreshTokenDuration()),
	}
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if createErr := repoFactory.AuthRepo().CreateRefreshToken(ctx, newToken); createErr != nil {
			return errors.Wrap(createErr, "failed to create refresh token")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &usecase.SessionOutput{
		Account:    account,
		Tokens:     usecase.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken},
		HasProfile: account.Profile != nil,
	}, nil
}

// rolesForAccount derives the role claims carried by the account's tokens.
func rolesForAccount(account *entity.Account) []string {
	var roles []string
	if account.Profile != nil && account.Profile.Role.IsValid() {
		roles = append(roles, account.Profile.Role.String())
	}
	if account.IsAdmin {
		roles = append(roles, "admin")
	}

	return roles
}
