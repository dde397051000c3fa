package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/adityarama/equipviz/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/adityarama/equipviz/services/auth UserRepo,OTPRepo

// UserRepo defines the user repository interface
type UserRepo interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateUnverifiedUser(ctx context.Context, user *models.User) error
	ActivateUser(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

// OTPRepo defines the OTP challenge store interface. Storing a challenge
// replaces any unconsumed challenge for the same (email, purpose) pair.
type OTPRepo interface {
	StoreOTP(ctx context.Context, challenge *models.OTPChallenge) error
	VerifyOTP(ctx context.Context, email, purpose, code string, consume bool) error
	CooldownRemaining(ctx context.Context, email, purpose string) (time.Duration, error)
}
