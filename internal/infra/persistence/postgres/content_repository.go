// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"samity/internal/domain/entity"
	domainerrors "samity/internal/domain/errors"
	"samity/internal/domain/repository"
	"samity/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// contentRepository implements the repository.ContentRepository interface.
type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository is the constructor for contentRepository.
func NewContentRepository(db *gorm.DB) repository.ContentRepository {
	return &contentRepository{
		db: db,
	}
}

// CreateNotification persists a new notification addressed to an account.
func (repo *contentRepository) CreateNotification(ctx context.Context, notification *entity.Notification) error {
	notificationM := fromContentNotificationDomain(notification)

	if err := repo.db.WithContext(ctx).Create(notificationM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrAccountNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required notification information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create notification")
	}

	notification.ID = notificationM.ID
	notification.CreatedAt = notificationM.CreatedAt

	return nil
}

// ListNotificationsByAccount retrieves an account's notifications, newest first.
func (repo *contentRepository) ListNotificationsByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Notification, error) {
	var notificationModels []*model.NotificationModel

	if err := repo.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&notificationModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list notifications by account")
	}

	notifications := make([]*entity.Notification, 0, len(notificationModels))
	for _, notificationM := range notificationModels {
		notifications = append(notifications, toContentNotificationDomain(notificationM))
	}

	return notifications, nil
}

// CreateArticle persists a new article.
func (repo *contentRepository) CreateArticle(ctx context.Context, article *entity.Article) error {
	articleM := fromArticleDomain(article)

	if err := repo.db.WithContext(ctx).Create(articleM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required article information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create article")
	}

	article.ID = articleM.ID
	article.CreatedAt = articleM.CreatedAt

	return nil
}

// FindLatestArticle retrieves the most recently created article.
func (repo *contentRepository) FindLatestArticle(ctx context.Context) (*entity.Article, error) {
	var articleM model.ArticleModel

	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		First(&articleM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrArticleNotFound
		}

		return nil, errors.Wrap(err, "failed to find latest article")
	}

	return toArticleDomain(&articleM), nil
}

// --- Mapper Functions ---

// toContentNotificationDomain converts a GORM NotificationModel to a domain Notification entity.
func toContentNotificationDomain(data *model.NotificationModel) *entity.Notification {
	if data == nil {
		return nil
	}

	return &entity.Notification{
		ID:        data.ID,
		AccountID: data.AccountID,
		Title:     data.Title,
		Message:   data.Message,
		IsRead:    data.IsRead,
		CreatedAt: data.CreatedAt,
	}
}

// fromContentNotificationDomain converts a domain Notification entity to a GORM NotificationModel.
func fromContentNotificationDomain(data *entity.Notification) *model.NotificationModel {
	if data == nil {
		return nil
	}

	return &model.NotificationModel{
		ID:        data.ID,
		AccountID: data.AccountID,
		Title:     data.Title,
		Message:   data.Message,
		IsRead:    data.IsRead,
		CreatedAt: data.CreatedAt,
	}
}

// toArticleDomain converts a GORM ArticleModel to a domain Article entity.
func toArticleDomain(data *model.ArticleModel) *entity.Article {
	if data == nil {
		return nil
	}

	return &entity.Article{
		ID:        data.ID,
		Title:     data.Title,
		Content:   data.Content,
		CreatedAt: data.CreatedAt,
	}
}

// fromArticleDomain converts a domain Article entity to a GORM ArticleModel.
func fromArticleDomain(data *entity.Article) *model.ArticleModel {
	if data == nil {
		return nil
	}

	return &model.ArticleModel{
		ID:        data.ID,
		Title:     data.Title,
		Content:   data.Content,
		CreatedAt: data.CreatedAt,
	}
}
