package handler

import (
	"io"
	"log/slog"
	"net/http"

	"samity/internal/delivery/http/middleware"
	"samity/internal/delivery/http/response"
	"samity/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler holds dependencies for the member-facing profile handlers.
type ProfileHandler struct {
	uc       usecase.ProfileUsecase
	schemaUC usecase.SchemaUsecase
	logger   *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase, schemaUC usecase.SchemaUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		uc:       uc,
		schemaUC: schemaUC,
		logger:   logger,
	}
}

// accountIDFromContext reads the caller's account ID placed by the auth middleware.
func accountIDFromContext(c echo.Context) (uuid.UUID, bool) {
	accountID, ok := c.Get(middleware.ContextKeyAccountID).(uuid.UUID)

	return accountID, ok
}

// GetProfile renders the member's own profile.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	accountID, ok := accountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Session required")
	}

	output, err := h.uc.GetProfile(c.Request().Context(), accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// EditProfile saves the member's profile from a multipart form. The photo
// file part is optional; when present it is normalized before storage.
func (h *ProfileHandler) EditProfile(c echo.Context) error {
	accountID, ok := accountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Session required")
	}

	var input usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if fileHeader, err := c.FormFile("photo"); err == nil {
		file, openErr := fileHeader.Open()
		if openErr != nil {
			return response.BindingError(c, "INVALID_INPUT", "Could not read uploaded photo")
		}
		data, readErr := io.ReadAll(file)
		file.Close()
		if readErr != nil {
			return response.BindingError(c, "INVALID_INPUT", "Could not read uploaded photo")
		}
		input.Photo = data
		input.PhotoFilename = fileHeader.Filename
	}

	profile, err := h.uc.UpdateProfile(c.Request().Context(), accountID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"profile": profile,
		"next":    "/profile/",
	}, "Profile saved")
}

// MemberCard streams the member's card QR code as a PNG.
func (h *ProfileHandler) MemberCard(c echo.Context) error {
	accountID, ok := accountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Session required")
	}

	png, err := h.uc.MemberCard(c.Request().Context(), accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// GetFieldValues lists the member's answers to the admin-defined extra fields.
func (h *ProfileHandler) GetFieldValues(c echo.Context) error {
	accountID, ok := accountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Session required")
	}

	values, err := h.schemaUC.ListFieldValues(c.Request().Context(), accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, values, "")
}

// SubmitFieldValues saves the member's answers to the admin-defined extra fields.
func (h *ProfileHandler) SubmitFieldValues(c echo.Context) error {
	accountID, ok := accountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Session required")
	}

	var values map[string]string
	if err := c.Bind(&values); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid field values")
	}

	if err := h.schemaUC.SubmitFieldValues(c.Request().Context(), accountID, values); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Field values saved"}, "Field values saved")
}
