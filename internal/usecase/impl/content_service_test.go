package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	domainerrors "samity/internal/domain/errors"
	"samity/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContentService(store *memoryStore) usecase.ContentUsecase {
	return NewContentService(ContentServiceParams{
		TxManager: store,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestContentService_LatestArticleEmpty(t *testing.T) {
	store := newMemoryStore()
	svc := newContentService(store)

	article, err := svc.LatestArticle(context.Background())
	require.NoError(t, err)
	assert.Nil(t, article)
}

func TestContentService_LatestArticlePicksNewest(t *testing.T) {
	store := newMemoryStore()
	svc := newContentService(store)

	older, err := svc.CreateArticle(context.Background(), &usecase.ArticleInput{
		Title: "Annual General Meeting", Content: "The AGM is on Friday.",
	})
	require.NoError(t, err)
	older.CreatedAt = older.CreatedAt.Add(-time.Hour)

	newest, err := svc.CreateArticle(context.Background(), &usecase.ArticleInput{
		Title: "Meeting Postponed", Content: "The AGM moves to Saturday.",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, newest.ID)

	latest, err := svc.LatestArticle(context.Background())
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, newest.ID, latest.ID)
	assert.Equal(t, "Meeting Postponed", latest.Title)
}

func TestContentService_Notifications(t *testing.T) {
	store := newMemoryStore()
	svc := newContentService(store)
	account := store.seedAccount("rahim", "rahim@example.com", true, false)
	other := store.seedAccount("karim", "karim@example.com", true, false)

	first, err := svc.CreateNotification(context.Background(), &usecase.NotificationInput{
		AccountID: account.ID, Title: "Welcome", Message: "Your account is ready.",
	})
	require.NoError(t, err)
	first.CreatedAt = first.CreatedAt.Add(-time.Minute)

	_, err = svc.CreateNotification(context.Background(), &usecase.NotificationInput{
		AccountID: other.ID, Title: "Welcome", Message: "Your account is ready.",
	})
	require.NoError(t, err)

	second, err := svc.CreateNotification(context.Background(), &usecase.NotificationInput{
		AccountID: account.ID, Title: "Status Update", Message: "Your membership was accepted.",
	})
	require.NoError(t, err)

	listed, err := svc.ListNotifications(context.Background(), account.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	// Newest first, and only the addressee's notifications.
	assert.Equal(t, second.ID, listed[0].ID)
	assert.Equal(t, first.ID, listed[1].ID)
}

func TestContentService_NotificationToUnknownAccount(t *testing.T) {
	store := newMemoryStore()
	svc := newContentService(store)

	_, err := svc.CreateNotification(context.Background(), &usecase.NotificationInput{
		AccountID: uuid.New(), Title: "Hello", Message: "Anyone there?",
	})
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
	assert.Empty(t, store.notifs)
}
