package middleware

import (
	"net/http"
	"slices"
	"strings"

	"samity/config"
	"samity/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const defaultSessionCookie = "samity_session"

// ContextKeyAccountID is where Authenticate stores the caller's account ID.
const ContextKeyAccountID = "accountID"

// ContextKeyRoles is where Authenticate stores the caller's role claims.
const ContextKeyRoles = "roles"

// AdminRole is the claim that opens the moderation surface.
const AdminRole = "admin"

// AuthMiddleware provides middleware for session authentication and authorization.
type AuthMiddleware struct {
	tokenSvc      service.TokenService
	sessionCookie string
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, cfg *config.Config) *AuthMiddleware {
	cookie := defaultSessionCookie
	if cfg.Auth != nil && cfg.Auth.SessionCookie != "" {
		cookie = cfg.Auth.SessionCookie
	}

	return &AuthMiddleware{tokenSvc: tokenSvc, sessionCookie: cookie}
}

// SessionCookieName returns the cookie the session is carried in.
func (m *AuthMiddleware) SessionCookieName() string {
	return m.sessionCookie
}

// Authenticate validates the access token carried either as a Bearer header
// or in the session cookie set at login.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := m.extractToken(c)
		if tokenString == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing credentials"})
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		c.Set(ContextKeyAccountID, claims.AccountID)
		c.Set(ContextKeyRoles, claims.Roles)

		return next(c)
	}
}

// RequireAdmin gates the moderation surface. Non-admin callers are bounced
// to the landing page rather than shown an error.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		roles, ok := c.Get(ContextKeyRoles).([]string)
		if !ok || !slices.Contains(roles, AdminRole) {
			return c.Redirect(http.StatusSeeOther, "/")
		}

		return next(c)
	}
}

// RequireRole is a middleware factory that checks if the caller has a specific role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, ok := c.Get(ContextKeyRoles).([]string)
			if !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: role information missing"})
			}

			if !slices.Contains(roles, requiredRole) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: require '" + requiredRole + "' role"})
			}

			return next(c)
		}
	}
}

// extractToken prefers the Authorization header and falls back to the
// session cookie.
func (m *AuthMiddleware) extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString != authHeader {
			return tokenString
		}

		return ""
	}

	cookie, err := c.Cookie(m.sessionCookie)
	if err != nil || cookie.Value == "" {
		return ""
	}

	return cookie.Value
}
