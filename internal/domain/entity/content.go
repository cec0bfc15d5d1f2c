// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an append-only message shown to one Account.
// Notifications are listed newest-first; no update or delete exists.
type Notification struct {
	ID        uuid.UUID `json:"id"`         // The Global Unique Identifier (GUID) for the notification.
	AccountID uuid.UUID `json:"account_id"` // The Account the notification is addressed to.
	Title     string    `json:"title"`      // Short headline.
	Message   string    `json:"message"`    // Full message body.
	IsRead    bool      `json:"is_read"`    // Whether the member has seen it.
	CreatedAt time.Time `json:"created_at"` // Timestamp of when it was created.
}

// Article is a site-wide announcement. The landing page shows only the
// most recently created one.
type Article struct {
	ID        uuid.UUID `json:"id"`         // The Global Unique Identifier (GUID) for the article.
	Title     string    `json:"title"`      // Headline.
	Content   string    `json:"content"`    // Body text.
	CreatedAt time.Time `json:"created_at"` // Timestamp of when it was published.
}
