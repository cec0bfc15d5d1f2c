package handler

import (
	"log/slog"
	"net/http"

	"samity/internal/delivery/http/response"
	domainerrors "samity/internal/domain/errors"
	"samity/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler holds dependencies for the moderation panel handlers.
type AdminHandler struct {
	moderationUC usecase.ModerationUsecase
	schemaUC     usecase.SchemaUsecase
	contentUC    usecase.ContentUsecase
	logger       *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(
	moderationUC usecase.ModerationUsecase,
	schemaUC usecase.SchemaUsecase,
	contentUC usecase.ContentUsecase,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		moderationUC: moderationUC,
		schemaUC:     schemaUC,
		contentUC:    contentUC,
		logger:       logger,
	}
}

// ListAccounts renders the moderation panel, optionally filtered by status.
func (h *AdminHandler) ListAccounts(c echo.Context) error {
	accounts, err := h.moderationUC.ListAccounts(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, accounts, "")
}

// AccountDetail renders one account's moderation view.
func (h *AdminHandler) AccountDetail(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("account_id"))
	if err != nil {
		return domainerrors.ErrAccountNotFound
	}

	detail, err := h.moderationUC.AccountDetail(c.Request().Context(), accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, detail, "")
}

// TransitionStatus applies a status action and sends the admin back to the
// panel, so the detail view never confirms the change inline.
func (h *AdminHandler) TransitionStatus(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("account_id"))
	if err != nil {
		return domainerrors.ErrAccountNotFound
	}

	if _, err := h.moderationUC.TransitionStatus(c.Request().Context(), accountID, c.FormValue("action")); err != nil {
		return errors.WithStack(err)
	}

	return c.Redirect(http.StatusSeeOther, "/admin_panel/")
}

// ListFieldDefinitions lists every definition, active or not.
func (h *AdminHandler) ListFieldDefinitions(c echo.Context) error {
	defs, err := h.schemaUC.ListFieldDefinitions(c.Request().Context(), false)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, defs, "")
}

// CreateFieldDefinition registers a new profile field.
func (h *AdminHandler) CreateFieldDefinition(c echo.Context) error {
	var input usecase.FieldDefinitionInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid field definition input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	def, err := h.schemaUC.CreateFieldDefinition(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, def, "Field definition created")
}

// UpdateFieldDefinition modifies an existing profile field.
func (h *AdminHandler) UpdateFieldDefinition(c echo.Context) error {
	fieldID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrFieldNotFound
	}

	var input usecase.FieldDefinitionInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid field definition input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	def, err := h.schemaUC.UpdateFieldDefinition(c.Request().Context(), fieldID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, def, "Field definition updated")
}

// DeactivateFieldDefinition retires a profile field.
func (h *AdminHandler) DeactivateFieldDefinition(c echo.Context) error {
	fieldID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrFieldNotFound
	}

	if err := h.schemaUC.DeactivateFieldDefinition(c.Request().Context(), fieldID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Field definition deactivated"}, "Field definition deactivated")
}

// CreateArticle publishes a site-wide announcement.
func (h *AdminHandler) CreateArticle(c echo.Context) error {
	var input usecase.ArticleInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid article input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	article, err := h.contentUC.CreateArticle(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, article, "Article published")
}

// CreateNotification sends a notification to one member.
func (h *AdminHandler) CreateNotification(c echo.Context) error {
	var input usecase.NotificationInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid notification input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	notification, err := h.contentUC.CreateNotification(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, notification, "Notification sent")
}
