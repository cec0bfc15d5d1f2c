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

// contentService implements the ContentUsecase interface.
type contentService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// ContentServiceParams holds dependencies for contentService, injected by Fx.
type ContentServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewContentService is the constructor for contentService.
func NewContentService(params ContentServiceParams) usecase.ContentUsecase {
	return &contentService{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *contentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// LatestArticle retrieves the newest article. No article yet is a valid
// outcome and returns nil.
func (srv *contentService) LatestArticle(ctx context.Context) (*entity.Article, error) {
	var article *entity.Article

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, findErr := repoFactory.ContentRepo().FindLatestArticle(ctx)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrArticleNotFound) {
				return nil
			}

			return errors.Wrap(findErr, "failed to find latest article")
		}
		article = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return article, nil
}

// CreateArticle publishes a new article.
func (srv *contentService) CreateArticle(ctx context.Context, input *usecase.ArticleInput) (*entity.Article, error) {
	srv.log(ctx).Info("Publishing article", slog.String("title", input.Title))

	article := &entity.Article{
		Title:   input.Title,
		Content: input.Content,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if createErr := repoFactory.ContentRepo().CreateArticle(ctx, article); createErr != nil {
			return errors.Wrap(createErr, "failed to create article")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return article, nil
}

// ListNotifications lists an account's notifications, newest first.
func (srv *contentService) ListNotifications(ctx context.Context, accountID uuid.UUID) ([]*entity.Notification, error) {
	var notifications []*entity.Notification

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, listErr := repoFactory.ContentRepo().ListNotificationsByAccount(ctx, accountID)
		if listErr != nil {
			return errors.Wrap(listErr, "failed to list notifications")
		}
		notifications = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

// CreateNotification sends a notification to one account.
func (srv *contentService) CreateNotification(ctx context.Context, input *usecase.NotificationInput) (*entity.Notification, error) {
	srv.log(ctx).Info("Creating notification", slog.Any("accountID", input.AccountID))

	notification := &entity.Notification{
		AccountID: input.AccountID,
		Title:     input.Title,
		Message:   input.Message,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		// The addressee must exist; a dangling notification helps nobody.
		if _, findErr := repoFactory.AccountRepo().FindByID(ctx, input.AccountID); findErr != nil {
			if errors.Is(findErr, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound
			}

			return errors.Wrap(findErr, "failed to find notification addressee")
		}

		if createErr := repoFactory.ContentRepo().CreateNotification(ctx, notification); createErr != nil {
			return errors.Wrap(createErr, "failed to create notification")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return notification, nil
}
