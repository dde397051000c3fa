package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	jwtpkg "github.com/adityarama/equipviz/internal/pkg/jwt"
	"github.com/adityarama/equipviz/internal/pkg/models"
	"github.com/adityarama/equipviz/internal/utils"
)

// JWTAuthMiddleware creates a middleware for JWT authentication.
// Only access tokens pass; refresh tokens presented as bearer
// credentials are rejected.
func JWTAuthMiddleware(config models.JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Get the Authorization header
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}

			// Check if the Authorization header has the correct format
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return utils.UnauthorizedResponse(c, "Invalid authorization format")
			}

			userID, err := jwtpkg.VerifyAccess(parts[1], config)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid or expired token")
			}

			// Set the user ID in the context for the handlers
			c.Set("user_id", userID)

			return next(c)
		}
	}
}
