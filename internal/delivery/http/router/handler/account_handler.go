// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"samity/config"
	"samity/internal/delivery/http/response"
	"samity/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const defaultSessionCookie = "samity_session"

// AccountHandler holds dependencies for registration and session handlers.
type AccountHandler struct {
	uc            usecase.AccountUsecase
	logger        *slog.Logger
	sessionCookie string
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger, cfg *config.Config) *AccountHandler {
	cookie := defaultSessionCookie
	if cfg.Auth != nil && cfg.Auth.SessionCookie != "" {
		cookie = cfg.Auth.SessionCookie
	}

	return &AccountHandler{
		uc:            uc,
		logger:        logger,
		sessionCookie: cookie,
	}
}

// refreshInput carries the refresh token for rotation and logout.
type refreshInput struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token" validate:"required"`
}

// Register handles the registration request.
func (h *AccountHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	account, err := h.uc.Register(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, account, "Account registered successfully")
}

// Login handles the login request. The access token is additionally set as
// an HttpOnly cookie so browser redirect flows keep the session.
func (h *AccountHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookie(c, output.Tokens.AccessToken)

	return response.Success(c, http.StatusOK, sessionResponse(output), "Login successful")
}

// Activate handles the mailed activation link and signs the caller in.
func (h *AccountHandler) Activate(c echo.Context) error {
	output, err := h.uc.Activate(c.Request().Context(), c.Param("ref"), c.Param("token"))
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookie(c, output.Tokens.AccessToken)

	return response.Success(c, http.StatusOK, sessionResponse(output), "Account activated")
}

// RefreshToken rotates a refresh token into a fresh pair.
func (h *AccountHandler) RefreshToken(c echo.Context) error {
	var input refreshInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid refresh token input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	tokens, err := h.uc.RefreshSession(c.Request().Context(), input.RefreshToken)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookie(c, tokens.AccessToken)

	return response.Success(c, http.StatusOK, tokens, "Token refreshed successfully")
}

// Logout ends the session and clears the session cookie.
func (h *AccountHandler) Logout(c echo.Context) error {
	var input refreshInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid logout input")
	}

	if input.RefreshToken != "" {
		if err := h.uc.Logout(c.Request().Context(), input.RefreshToken); err != nil {
			return errors.WithStack(err)
		}
	}

	h.clearSessionCookie(c)

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}

// sessionResponse augments the session output with the next page for
// browser clients: first-time members go to the edit form.
func sessionResponse(output *usecase.SessionOutput) map[string]any {
	next := "/profile/"
	if !output.HasProfile {
		next = "/profile/edit/"
	}

	return map[string]any{
		"account":     output.Account,
		"tokens":      output.Tokens,
		"has_profile": output.HasProfile,
		"next":        next,
	}
}

func (h *AccountHandler) setSessionCookie(c echo.Context, accessToken string) {
	c.SetCookie(&http.Cookie{
		Name:     h.sessionCookie,
		Value:    accessToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// HealthCheck reports service liveness.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

func (h *AccountHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
