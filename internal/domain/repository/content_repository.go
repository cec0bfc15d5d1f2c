// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"samity/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrArticleNotFound is returned when no article exists yet.
var ErrArticleNotFound = errors.New("article not found")

// ContentRepository defines the operations for notifications and articles.
// Both record types are append-only.
type ContentRepository interface {
	// CreateNotification persists a new notification addressed to an account.
	CreateNotification(ctx context.Context, notification *entity.Notification) error

	// ListNotificationsByAccount retrieves an account's notifications, newest first.
	ListNotificationsByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Notification, error)

	// CreateArticle persists a new article.
	CreateArticle(ctx context.Context, article *entity.Article) error

	// FindLatestArticle retrieves the most recently created article.
	FindLatestArticle(ctx context.Context) (*entity.Article, error)
}
