package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/adityarama/equipviz/internal/pkg/autherrors"
	"github.com/adityarama/equipviz/internal/pkg/logger"
	"github.com/adityarama/equipviz/internal/pkg/models"
	"github.com/adityarama/equipviz/internal/utils"
)

// RequestPasswordReset issues a reset challenge for a verified account.
// It reports success for unknown emails, unverified accounts, and active
// cooldowns alike so responses cannot reveal which accounts exist.
func (u *AuthUC) RequestPasswordReset(ctx context.Context, email string) error {
	email = utils.NormalizeEmail(email)

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, autherrors.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if !user.Verified {
		return nil
	}

	if err := u.issueChallenge(ctx, email, models.OTPPurposePasswordReset, false); err != nil {
		return err
	}

	logger.Info("Password reset challenge issued",
		logger.String("user_id", user.ID.String()))

	return nil
}

// VerifyResetOTP checks a reset code without consuming it. A client can
// confirm the code before asking the user for a new password; the same
// code is then consumed by ResetPassword.
func (u *AuthUC) VerifyResetOTP(ctx context.Context, email, code string) error {
	email = utils.NormalizeEmail(email)
	return u.otpRepo.VerifyOTP(ctx, email, models.OTPPurposePasswordReset, code, false)
}

// ResetPassword consumes the reset challenge and replaces the password.
func (u *AuthUC) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	email := utils.NormalizeEmail(req.Email)

	if err := u.otpRepo.VerifyOTP(ctx, email, models.OTPPurposePasswordReset, req.OTP, true); err != nil {
		return err
	}

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := u.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	logger.Info("Password reset completed",
		logger.String("user_id", user.ID.String()))

	return nil
}
