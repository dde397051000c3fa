package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtpkg "github.com/adityarama/equipviz/internal/pkg/jwt"
	"github.com/adityarama/equipviz/internal/pkg/models"
)

func jwtTestConfig() models.JWTConfig {
	return models.JWTConfig{
		Secret:            "middleware-test-secret",
		Issuer:            "equipviz-test",
		AccessExpiration:  15,
		RefreshExpiration: 1440,
	}
}

func protectedEcho(cfg models.JWTConfig) *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		userID := c.Get("user_id").(uuid.UUID)
		return c.String(http.StatusOK, userID.String())
	}, JWTAuthMiddleware(cfg))
	return e
}

func TestJWTAuthMiddleware_ValidAccessToken(t *testing.T) {
	cfg := jwtTestConfig()
	userID := uuid.New()

	pair, err := jwtpkg.IssuePair(userID, "mira@example.com", cfg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.Access)
	rec := httptest.NewRecorder()
	protectedEcho(cfg).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), rec.Body.String())
}

func TestJWTAuthMiddleware_MissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	protectedEcho(jwtTestConfig()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMiddleware_BadFormat(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")
	rec := httptest.NewRecorder()
	protectedEcho(jwtTestConfig()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMiddleware_RejectsRefreshToken(t *testing.T) {
	cfg := jwtTestConfig()

	pair, err := jwtpkg.IssuePair(uuid.New(), "mira@example.com", cfg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.Refresh)
	rec := httptest.NewRecorder()
	protectedEcho(cfg).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	e := echo.New()
	e.Use(RequestIDMiddleware())
	e.GET("/", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// Generated when absent.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	// Preserved when supplied.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "trace-123")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "trace-123", rec.Header().Get("X-Request-ID"))
}
