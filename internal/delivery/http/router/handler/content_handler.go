package handler

import (
	"log/slog"
	"net/http"

	"samity/internal/delivery/http/response"
	"samity/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ContentHandler holds dependencies for the public and member content handlers.
type ContentHandler struct {
	uc     usecase.ContentUsecase
	logger *slog.Logger
}

// NewContentHandler is the constructor for ContentHandler, injected by Fx.
func NewContentHandler(uc usecase.ContentUsecase, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		uc:     uc,
		logger: logger,
	}
}

// Home renders the landing page data: the newest article, if any.
func (h *ContentHandler) Home(c echo.Context) error {
	article, err := h.uc.LatestArticle(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"article": article}, "")
}

// ListNotifications lists the caller's notifications, newest first.
func (h *ContentHandler) ListNotifications(c echo.Context) error {
	accountID, ok := accountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Session required")
	}

	notifications, err := h.uc.ListNotifications(c.Request().Context(), accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, notifications, "")
}
