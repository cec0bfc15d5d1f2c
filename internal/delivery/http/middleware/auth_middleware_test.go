package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"samity/config"
	"samity/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTokenService accepts exactly one token string.
type stubTokenService struct {
	accepted string
	claims   *service.Claims
}

func (s *stubTokenService) GenerateTokens(uuid.UUID, []string) (string, string, error) {
	return "", "", nil
}

func (s *stubTokenService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	if tokenString != s.accepted {
		return nil, echo.ErrUnauthorized
	}

	return s.claims, nil
}

func (s *stubTokenService) ValidateRefreshToken(string) (*service.Claims, error) {
	return nil, echo.ErrUnauthorized
}

func (s *stubTokenService) HashToken(token string) string { return token }

func (s *stubTokenService) GetRefreshTokenDuration() time.Duration { return time.Hour }

func newTestAuthMiddleware(roles []string) (*AuthMiddleware, uuid.UUID) {
	accountID := uuid.New()
	tokenSvc := &stubTokenService{
		accepted: "valid-token",
		claims:   &service.Claims{AccountID: accountID, Roles: roles, Type: "access"},
	}

	return NewAuthMiddleware(tokenSvc, &config.Config{}), accountID
}

func performRequest(m *AuthMiddleware, decorate func(*http.Request), handlers ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/profile/", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	chain := next
	for i := len(handlers) - 1; i >= 0; i-- {
		chain = handlers[i](chain)
	}
	_ = m.Authenticate(chain)(c)

	return rec, c
}

func TestAuthenticateWithBearerHeader(t *testing.T) {
	m, accountID := newTestAuthMiddleware([]string{"member"})

	rec, c := performRequest(m, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer valid-token")
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, accountID, c.Get(ContextKeyAccountID))
	assert.Equal(t, []string{"member"}, c.Get(ContextKeyRoles))
}

func TestAuthenticateWithSessionCookie(t *testing.T) {
	m, accountID := newTestAuthMiddleware([]string{"member"})

	rec, c := performRequest(m, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: m.SessionCookieName(), Value: "valid-token"})
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, accountID, c.Get(ContextKeyAccountID))
}

func TestAuthenticateRejections(t *testing.T) {
	m, _ := newTestAuthMiddleware(nil)

	cases := []struct {
		name     string
		decorate func(*http.Request)
	}{
		{"no credentials", nil},
		{"malformed header", func(req *http.Request) { req.Header.Set("Authorization", "valid-token") }},
		{"bad token", func(req *http.Request) { req.Header.Set("Authorization", "Bearer nope") }},
		{"bad cookie", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: m.SessionCookieName(), Value: "nope"})
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := performRequest(m, tc.decorate)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireAdminRedirectsNonAdmins(t *testing.T) {
	m, _ := newTestAuthMiddleware([]string{"member"})

	rec, _ := performRequest(m, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer valid-token")
	}, m.RequireAdmin)

	// Silent bounce to the landing page, no error shown.
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRequireAdminPassesAdmins(t *testing.T) {
	m, _ := newTestAuthMiddleware([]string{"member", AdminRole})

	rec, _ := performRequest(m, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer valid-token")
	}, m.RequireAdmin)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionCookieNameConfigurable(t *testing.T) {
	tokenSvc := &stubTokenService{accepted: "t", claims: &service.Claims{}}
	m := NewAuthMiddleware(tokenSvc, &config.Config{Auth: &config.AuthConfig{SessionCookie: "member_session"}})
	require.Equal(t, "member_session", m.SessionCookieName())
}
