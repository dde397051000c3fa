package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/adityarama/equipviz/internal/pkg/autherrors"
	jwtpkg "github.com/adityarama/equipviz/internal/pkg/jwt"
	"github.com/adityarama/equipviz/internal/pkg/logger"
	"github.com/adityarama/equipviz/internal/pkg/models"
	"github.com/adityarama/equipviz/internal/utils"
)

// Login checks the credentials and issues a token pair. An unknown email
// and a wrong password both return ErrInvalidCredentials; only an
// unverified account with the correct state is told apart, after the
// account is known to exist.
func (u *AuthUC) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	email = utils.NormalizeEmail(email)

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, autherrors.ErrInvalidCredentials
	}

	if !user.Verified {
		return nil, autherrors.ErrNotVerified
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, autherrors.ErrInvalidCredentials
	}

	tokens, err := jwtpkg.IssuePair(user.ID, user.Email, u.cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	logger.Info("User logged in",
		logger.String("user_id", user.ID.String()))

	return &models.AuthResult{User: user.Profile(), Tokens: tokens}, nil
}

// Refresh exchanges a valid refresh token for a brand new pair. The old
// pair keeps working until it expires; tokens are stateless.
func (u *AuthUC) Refresh(ctx context.Context, refreshToken string) (*models.AuthResult, error) {
	userID, err := jwtpkg.VerifyRefresh(refreshToken, u.cfg.JWT)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	tokens, err := jwtpkg.IssuePair(user.ID, user.Email, u.cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return &models.AuthResult{User: user.Profile(), Tokens: tokens}, nil
}

// Me returns the profile of the authenticated user.
func (u *AuthUC) Me(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	user, err := u.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return user.Profile(), nil
}
