// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"samity/internal/domain/entity"

	"github.com/google/uuid"
)

// ContentUsecase defines the interface for articles and notifications.
// Both record types are append-only.
type ContentUsecase interface {
	// LatestArticle retrieves the newest article. It returns nil without an
	// error when no article has been published yet.
	LatestArticle(ctx context.Context) (*entity.Article, error)

	// CreateArticle publishes a new article.
	CreateArticle(ctx context.Context, input *ArticleInput) (*entity.Article, error)

	// ListNotifications lists an account's notifications, newest first.
	ListNotifications(ctx context.Context, accountID uuid.UUID) ([]*entity.Notification, error)

	// CreateNotification sends a notification to one account.
	CreateNotification(ctx context.Context, input *NotificationInput) (*entity.Notification, error)
}

// --- Input DTOs ---

// ArticleInput defines the data required to publish an article.
type ArticleInput struct {
	Title   string `json:"title" form:"title" validate:"required,max=200"`
	Content string `json:"content" form:"content" validate:"required"`
}

// NotificationInput defines the data required to send a notification.
type NotificationInput struct {
	AccountID uuid.UUID `json:"account_id" form:"account_id" validate:"required"`
	Title     string    `json:"title" form:"title" validate:"required,max=200"`
	Message   string    `json:"message" form:"message" validate:"required"`
}
