package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/adityarama/equipviz/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/adityarama/equipviz/services/auth AuthUC

// AuthUC represents the auth usecase interface
type AuthUC interface {
	// registration
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	VerifySignupOTP(ctx context.Context, email, code string) (*models.AuthResult, error)

	// sessions
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*models.AuthResult, error)
	Me(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)

	// password reset
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyResetOTP(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error

	// OTP redelivery
	ResendOTP(ctx context.Context, email, purpose string) error
}
