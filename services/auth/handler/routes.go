package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/adityarama/equipviz/internal/pkg/database"
	"github.com/adityarama/equipviz/internal/pkg/middleware"
	"github.com/adityarama/equipviz/internal/pkg/models"
	"github.com/adityarama/equipviz/services/auth/handler/http"
)

// Handler coordinates the protocol handlers for the auth service
type Handler struct {
	authHandler *http.AuthHandler
	redisClient *database.RedisClient
	cfg         *models.Config
}

// NewHandler creates and initializes all handlers
func NewHandler(
	authHandler *http.AuthHandler,
	redisClient *database.RedisClient,
	cfg *models.Config,
) *Handler {
	return &Handler{
		authHandler: authHandler,
		redisClient: redisClient,
		cfg:         cfg,
	}
}

// RegisterRoutes registers the auth endpoints. All paths carry a
// trailing slash; echo redirects the bare form. The whole group sits
// behind a per-IP throttle.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	throttle := middleware.IPRateLimiter(
		h.cfg.OTP.ThrottleLimit,
		time.Duration(h.cfg.OTP.ThrottlePeriod)*time.Second,
		h.redisClient.GetClient(),
	)

	authGroup := e.Group("/auth", throttle)
	authGroup.POST("/register/", h.authHandler.Register)
	authGroup.POST("/verify-signup-otp/", h.authHandler.VerifyOTP)
	authGroup.POST("/login/", h.authHandler.Login)
	authGroup.POST("/refresh/", h.authHandler.Refresh)
	authGroup.POST("/request-password-reset/", h.authHandler.RequestPasswordReset)
	authGroup.POST("/verify-reset-otp/", h.authHandler.VerifyResetOTP)
	authGroup.POST("/reset-password/", h.authHandler.ResetPassword)
	authGroup.POST("/resend-otp/", h.authHandler.ResendOTP)

	// Protected routes
	authGroup.GET("/me/", h.authHandler.Me, middleware.JWTAuthMiddleware(h.cfg.JWT))
}
